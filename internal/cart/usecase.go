package cart

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"tiffinbox/internal/domain"
	apperrors "tiffinbox/internal/errors"
)

type useCase struct {
	store  Store
	logger *zap.Logger
}

func NewUseCase(store Store, logger *zap.Logger) UseCase {
	return &useCase{
		store:  store,
		logger: logger,
	}
}

func (uc *useCase) Get(ctx context.Context, userID uint) (*CartResponse, error) {
	cart, err := uc.store.Load(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("loading cart", err)
	}
	return cartResponse(cart), nil
}

func (uc *useCase) AddItem(ctx context.Context, userID uint, req AddItemRequest) (*CartResponse, error) {
	if req.ProductID == 0 || req.SellerID == 0 {
		return nil, apperrors.NewValidationError("invalid cart item", apperrors.ValidationDetail{
			Field:   "productId,sellerId",
			Message: "productId and sellerId must be positive integers",
		})
	}

	cart, err := uc.store.Load(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("loading cart", err)
	}

	next, err := cart.Add(domain.CartLine{
		ProductID: req.ProductID,
		SellerID:  req.SellerID,
		Name:      req.Name,
		Price:     req.Price,
		Quantity:  req.Quantity,
		ImageRef:  req.ImageRef,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMixedSellers) {
			return nil, apperrors.NewValidationError("cart is limited to one restaurant", apperrors.ValidationDetail{
				Field:   "sellerId",
				Message: "remove the current items before ordering from another restaurant",
			})
		}
		if errors.Is(err, domain.ErrInvalidQuantity) {
			return nil, apperrors.NewValidationError("invalid quantity", apperrors.ValidationDetail{
				Field:   "quantity",
				Message: "quantity must be at least 1",
			})
		}
		return nil, apperrors.NewInternalError("adding cart item", err)
	}

	if err := uc.store.Save(ctx, next); err != nil {
		return nil, apperrors.NewInternalError("saving cart", err)
	}

	return cartResponse(next), nil
}

func (uc *useCase) DecrementItem(ctx context.Context, userID uint, productID uint) (*CartResponse, error) {
	cart, err := uc.store.Load(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("loading cart", err)
	}

	next := cart.Decrement(productID)
	if err := uc.store.Save(ctx, next); err != nil {
		return nil, apperrors.NewInternalError("saving cart", err)
	}

	return cartResponse(next), nil
}

func (uc *useCase) RemoveItem(ctx context.Context, userID uint, productID uint) (*CartResponse, error) {
	cart, err := uc.store.Load(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("loading cart", err)
	}

	next := cart.RemoveAll(productID)
	if err := uc.store.Save(ctx, next); err != nil {
		return nil, apperrors.NewInternalError("saving cart", err)
	}

	return cartResponse(next), nil
}

func cartResponse(cart domain.Cart) *CartResponse {
	lines := make([]CartLineDTO, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, CartLineDTO{
			ProductID: l.ProductID,
			SellerID:  l.SellerID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
			ImageRef:  l.ImageRef,
		})
	}
	return &CartResponse{
		Lines:    lines,
		Subtotal: cart.Subtotal(),
	}
}
