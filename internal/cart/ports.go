package cart

import (
	"context"

	"tiffinbox/internal/domain"
)

type UseCase interface {
	Get(ctx context.Context, userID uint) (*CartResponse, error)
	AddItem(ctx context.Context, userID uint, req AddItemRequest) (*CartResponse, error)
	DecrementItem(ctx context.Context, userID uint, productID uint) (*CartResponse, error)
	RemoveItem(ctx context.Context, userID uint, productID uint) (*CartResponse, error)
}

// Store persists cart snapshots. Implementations must return an empty cart,
// not an error, for users with nothing saved yet.
type Store interface {
	Load(ctx context.Context, userID uint) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
}
