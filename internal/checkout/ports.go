package checkout

import (
	"context"

	"tiffinbox/internal/domain"
)

type UseCase interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error)
	// VerifyPayment checks the gateway payment signature and, on a match,
	// confirms the payment.
	VerifyPayment(ctx context.Context, req VerifyPaymentRequest) error
	// ConfirmPayment is the shared completion step behind both ingress
	// paths (synchronous verification and the gateway webhook).
	ConfirmPayment(ctx context.Context, gatewayOrderID, gatewayPaymentID string) error
}

type OrderRepository interface {
	Insert(ctx context.Context, order domain.Order) (uint, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)
	MarkPaid(ctx context.Context, gatewayOrderID, gatewayPaymentID string) (int64, error)
}

type ProductReader interface {
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Product, error)
}

type UserRepository interface {
	UpdatePhone(ctx context.Context, userID uint, phone string) error
}
