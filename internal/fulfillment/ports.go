package fulfillment

import (
	"context"

	"tiffinbox/internal/domain"
)

type ListQuery struct {
	// Status narrows results to a single delivery status when set.
	Status string
	// Search is a case-insensitive substring match against the delivery
	// address.
	Search string
	// SellerID narrows a user's order history to one restaurant.
	SellerID uint
}

type UseCase interface {
	UpdateStatus(ctx context.Context, sellerID, orderID uint, status domain.DeliveryStatus) error
	ListSellerOrders(ctx context.Context, sellerID uint, q ListQuery) (*OrdersResponse, error)
	ListUserOrders(ctx context.Context, userID uint, q ListQuery) (*OrdersResponse, error)
}

type OrderFilter struct {
	Status   string
	Search   string
	SellerID uint
}

type Repository interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	UpdateDeliveryStatus(ctx context.Context, id uint, status domain.DeliveryStatus) error
	FindBySeller(ctx context.Context, sellerID uint, f OrderFilter) ([]domain.Order, error)
	FindByUser(ctx context.Context, userID uint, f OrderFilter) ([]domain.Order, error)
}
