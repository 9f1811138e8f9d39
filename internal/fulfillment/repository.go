package fulfillment

import (
	"context"
	"database/sql"
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

const orderColumns = `
	o.id, o.userId, o.sellerId, o.totalPrice, o.deliveryAddress,
	o.gpsLatitude, o.gpsLongitude, o.paymentStatus, o.deliveryStatus,
	o.gatewayOrderId, o.gatewayPaymentId, o.idempotencyKey,
	o.createdAt, o.updatedAt`

func (r *MySQLRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders o WHERE o.id = ?`, orderColumns)

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *MySQLRepository) UpdateDeliveryStatus(ctx context.Context, id uint, status domain.DeliveryStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE orders SET deliveryStatus = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("updating delivery status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

func (r *MySQLRepository) FindBySeller(ctx context.Context, sellerID uint, f OrderFilter) ([]domain.Order, error) {
	conds := []string{"o.sellerId = ?"}
	args := []interface{}{sellerID}
	return r.findOrders(ctx, conds, args, f)
}

func (r *MySQLRepository) FindByUser(ctx context.Context, userID uint, f OrderFilter) ([]domain.Order, error) {
	conds := []string{"o.userId = ?"}
	args := []interface{}{userID}
	if f.SellerID != 0 {
		conds = append(conds, "o.sellerId = ?")
		args = append(args, f.SellerID)
	}
	return r.findOrders(ctx, conds, args, f)
}

func (r *MySQLRepository) findOrders(ctx context.Context, conds []string, args []interface{}, f OrderFilter) ([]domain.Order, error) {
	if f.Status != "" {
		conds = append(conds, "o.deliveryStatus = ?")
		args = append(args, f.Status)
	}
	if f.Search != "" {
		conds = append(conds, "o.deliveryAddress LIKE ?")
		args = append(args, "%"+f.Search+"%")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		WHERE %s
		ORDER BY o.createdAt DESC, o.id DESC`,
		orderColumns, strings.Join(conds, " AND "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}

	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}

	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *MySQLRepository) loadItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[uint]*domain.Order, len(orders))
	placeholders := make([]string, 0, len(orders))
	args := make([]interface{}, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		placeholders = append(placeholders, "?")
		args = append(args, o.ID)
	}

	query := fmt.Sprintf(`
		SELECT orderId, productId, name, price, quantity, imageRef
		FROM order_items
		WHERE orderId IN (%s)
		ORDER BY id ASC`,
		strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID uint
		var item domain.CartLineSnapshot
		if err := rows.Scan(&orderID, &item.ProductID, &item.Name, &item.Price, &item.Quantity, &item.ImageRef); err != nil {
			return fmt.Errorf("scanning order item: %w", err)
		}
		if order, ok := byID[orderID]; ok {
			order.LineItems = append(order.LineItems, item)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating order items: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	var lat, lng sql.NullFloat64

	err := row.Scan(
		&o.ID, &o.UserID, &o.SellerID, &o.TotalPrice, &o.DeliveryAddress,
		&lat, &lng, &o.PaymentStatus, &o.DeliveryStatus,
		&o.GatewayOrderID, &o.GatewayPaymentID, &o.IdempotencyKey,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning order: %w", err)
	}

	if lat.Valid && lng.Valid {
		o.GPSLocation = &domain.Coordinate{Latitude: lat.Float64, Longitude: lng.Float64}
	}

	return &o, nil
}
