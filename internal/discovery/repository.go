package discovery

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"tiffinbox/internal/domain"
	apperrors "tiffinbox/internal/errors"
)

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

const sellerColumns = `
	s.id, s.displayName, s.restaurantName, s.speciality, s.address, s.phone,
	s.profileImageRef, s.latitude, s.longitude, s.isActive,
	(SELECT COUNT(*) FROM products p WHERE p.sellerId = s.id) AS productCount,
	s.createdAt, s.updatedAt`

func (r *MySQLRepository) FindActiveSellers(ctx context.Context, f SellerFilter) ([]domain.Seller, error) {
	conds := []string{"s.isActive = 1"}
	args := []interface{}{}

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		conds = append(conds, "(s.displayName LIKE ? OR s.restaurantName LIKE ? OR s.address LIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM sellers s
		WHERE %s
		ORDER BY COALESCE(s.restaurantName, s.displayName) ASC, s.id ASC
		LIMIT ? OFFSET ?`,
		sellerColumns, strings.Join(conds, " AND "),
	)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sellers: %w", err)
	}
	defer rows.Close()

	var sellers []domain.Seller
	for rows.Next() {
		seller, err := scanSeller(rows)
		if err != nil {
			return nil, err
		}
		sellers = append(sellers, *seller)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sellers: %w", err)
	}

	return sellers, nil
}

func (r *MySQLRepository) FindSellerByID(ctx context.Context, id uint) (*domain.Seller, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM sellers s
		WHERE s.id = ? AND s.isActive = 1`,
		sellerColumns,
	)

	seller, err := scanSeller(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("seller with id %d not found", id))
	}
	if err != nil {
		return nil, err
	}

	return seller, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSeller(row rowScanner) (*domain.Seller, error) {
	var s domain.Seller
	var lat, lng sql.NullFloat64

	err := row.Scan(
		&s.ID, &s.DisplayName, &s.RestaurantName, &s.Speciality, &s.Address,
		&s.Phone, &s.ProfileImageRef, &lat, &lng, &s.IsActive,
		&s.ProductCount, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning seller: %w", err)
	}

	if lat.Valid && lng.Valid {
		s.Location = &domain.Coordinate{Latitude: lat.Float64, Longitude: lng.Float64}
	}

	return &s, nil
}

const productColumns = `
	p.id, p.sellerId, p.name, p.price, p.addedCost, p.description,
	p.imageRefs, p.categories, p.category, s.latitude, s.longitude,
	p.createdAt, p.updatedAt`

func (r *MySQLRepository) FindActiveProducts(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	conds := []string{"s.isActive = 1"}
	args := []interface{}{}

	if f.SellerID != 0 {
		conds = append(conds, "p.sellerId = ?")
		args = append(args, f.SellerID)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		conds = append(conds, "(p.name LIKE ? OR p.description LIKE ?)")
		args = append(args, pattern, pattern)
	}
	if f.Category != "" {
		// Rows written before categories became a list carry the value in
		// the scalar column instead.
		conds = append(conds, "(JSON_CONTAINS(p.categories, JSON_QUOTE(?)) OR p.category = ?)")
		args = append(args, f.Category, f.Category)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN sellers s ON s.id = p.sellerId
		WHERE %s
		ORDER BY p.name ASC, p.id ASC
		LIMIT ? OFFSET ?`,
		productColumns, strings.Join(conds, " AND "),
	)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}

	return products, nil
}

func (r *MySQLRepository) FindProductByID(ctx context.Context, id uint) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN sellers s ON s.id = p.sellerId
		WHERE p.id = ? AND s.isActive = 1`,
		productColumns,
	)

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, err
	}

	return product, nil
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var imageRefs, categories []byte
	var lat, lng sql.NullFloat64

	err := row.Scan(
		&p.ID, &p.SellerID, &p.Name, &p.Price, &p.AddedCost, &p.Description,
		&imageRefs, &categories, &p.Category, &lat, &lng,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning product: %w", err)
	}

	if len(imageRefs) > 0 {
		if err := json.Unmarshal(imageRefs, &p.ImageRefs); err != nil {
			return nil, fmt.Errorf("decoding product imageRefs: %w", err)
		}
	}
	if len(categories) > 0 {
		if err := json.Unmarshal(categories, &p.Categories); err != nil {
			return nil, fmt.Errorf("decoding product categories: %w", err)
		}
	}
	if lat.Valid && lng.Valid {
		p.SellerLocation = &domain.Coordinate{Latitude: lat.Float64, Longitude: lng.Float64}
	}

	return &p, nil
}
