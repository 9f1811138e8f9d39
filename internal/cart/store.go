package cart

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"tiffinbox/internal/domain"
)

type MySQLStore struct {
	db *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

type storedLine struct {
	ProductID uint    `json:"productId"`
	SellerID  uint    `json:"sellerId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageRef  *string `json:"imageRef,omitempty"`
}

func (s *MySQLStore) Load(ctx context.Context, userID uint) (domain.Cart, error) {
	cart := domain.Cart{UserID: userID}

	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT lines FROM carts WHERE userId = ?`, userID).Scan(&raw)
	if err == sql.ErrNoRows {
		return cart, nil
	}
	if err != nil {
		return cart, fmt.Errorf("querying cart: %w", err)
	}

	var lines []storedLine
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &lines); err != nil {
			return cart, fmt.Errorf("decoding cart lines: %w", err)
		}
	}
	for _, l := range lines {
		cart.Lines = append(cart.Lines, domain.CartLine{
			ProductID: l.ProductID,
			SellerID:  l.SellerID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
			ImageRef:  l.ImageRef,
		})
	}

	return cart, nil
}

func (s *MySQLStore) Save(ctx context.Context, cart domain.Cart) error {
	lines := make([]storedLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, storedLine{
			ProductID: l.ProductID,
			SellerID:  l.SellerID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
			ImageRef:  l.ImageRef,
		})
	}

	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encoding cart lines: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO carts (userId, lines)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE lines = VALUES(lines)`,
		cart.UserID, raw,
	)
	if err != nil {
		return fmt.Errorf("saving cart: %w", err)
	}

	return nil
}
