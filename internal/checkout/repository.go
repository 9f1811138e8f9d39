package checkout

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"tiffinbox/internal/domain"
	apperrors "tiffinbox/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

// Insert persists the order and its line-item snapshots in one transaction.
func (r *MySQLOrderRepository) Insert(ctx context.Context, order domain.Order) (uint, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning order transaction: %w", err)
	}
	defer tx.Rollback()

	var lat, lng interface{}
	if order.GPSLocation != nil {
		lat = order.GPSLocation.Latitude
		lng = order.GPSLocation.Longitude
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO orders (userId, sellerId, totalPrice, deliveryAddress,
			gpsLatitude, gpsLongitude, paymentStatus, deliveryStatus,
			gatewayOrderId, idempotencyKey)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.UserID, order.SellerID, order.TotalPrice, order.DeliveryAddress,
		lat, lng, string(order.PaymentStatus), string(order.DeliveryStatus),
		order.GatewayOrderID, order.IdempotencyKey,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting inserted order id: %w", err)
	}

	for _, item := range order.LineItems {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (orderId, productId, name, price, quantity, imageRef)
			VALUES (?, ?, ?, ?, ?, ?)`,
			orderID, item.ProductID, item.Name, item.Price, item.Quantity, item.ImageRef,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing order: %w", err)
	}

	return uint(orderID), nil
}

func (r *MySQLOrderRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	query := `
		SELECT id, userId, sellerId, totalPrice, deliveryAddress,
		       paymentStatus, deliveryStatus, gatewayOrderId, gatewayPaymentId,
		       idempotencyKey, createdAt, updatedAt
		FROM orders
		WHERE idempotencyKey = ?
	`

	var order domain.Order
	err := r.db.QueryRowContext(ctx, query, key).Scan(
		&order.ID, &order.UserID, &order.SellerID, &order.TotalPrice,
		&order.DeliveryAddress, &order.PaymentStatus, &order.DeliveryStatus,
		&order.GatewayOrderID, &order.GatewayPaymentID, &order.IdempotencyKey,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("no order for idempotency key")
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by idempotency key: %w", err)
	}

	return &order, nil
}

func (r *MySQLOrderRepository) MarkPaid(ctx context.Context, gatewayOrderID, gatewayPaymentID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET paymentStatus = ?, gatewayPaymentId = ?
		WHERE gatewayOrderId = ?`,
		string(domain.PaymentCompleted), gatewayPaymentID, gatewayOrderID,
	)
	if err != nil {
		return 0, fmt.Errorf("marking orders paid: %w", err)
	}

	matched, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}

	return matched, nil
}

type MySQLProductReader struct {
	db *sql.DB
}

func NewMySQLProductReader(db *sql.DB) *MySQLProductReader {
	return &MySQLProductReader{db: db}
}

func (r *MySQLProductReader) FindByIDs(ctx context.Context, ids []uint) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT id, sellerId, name, price, addedCost
		FROM products
		WHERE id IN (%s)`,
		strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products by ids: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.SellerID, &p.Name, &p.Price, &p.AddedCost); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}

	return products, nil
}

type MySQLUserRepository struct {
	db *sql.DB
}

func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

func (r *MySQLUserRepository) UpdatePhone(ctx context.Context, userID uint, phone string) error {
	// RowsAffected is zero both for a missing user and for an unchanged
	// phone, so existence is checked up front.
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, userID).Scan(&exists); err != nil {
		return fmt.Errorf("checking user existence: %w", err)
	}
	if !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("user with id %d not found", userID))
	}

	if _, err := r.db.ExecContext(ctx, `UPDATE users SET phone = ? WHERE id = ?`, phone, userID); err != nil {
		return fmt.Errorf("updating user phone: %w", err)
	}

	return nil
}
