package fulfillment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tiffinbox/internal/domain"
	apperrors "tiffinbox/internal/errors"
)

type useCase struct {
	repo   Repository
	logger *zap.Logger
}

func NewUseCase(repo Repository, logger *zap.Logger) UseCase {
	return &useCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *useCase) UpdateStatus(ctx context.Context, sellerID, orderID uint, status domain.DeliveryStatus) error {
	if !status.Known() {
		return apperrors.NewValidationError("unknown delivery status", apperrors.ValidationDetail{
			Field:   "status",
			Message: fmt.Sprintf("%q is not a delivery status", string(status)),
		})
	}

	order, err := uc.repo.FindByID(ctx, orderID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return err
		}
		return apperrors.NewInternalError("fetching order", err)
	}

	if !order.OwnedBySeller(sellerID) {
		return apperrors.NewForbiddenError("order belongs to a different seller")
	}

	if !domain.CanTransition(order.DeliveryStatus, status) {
		return apperrors.NewValidationError("illegal delivery status transition", apperrors.ValidationDetail{
			Field:   "status",
			Message: fmt.Sprintf("cannot move from %s to %s", order.DeliveryStatus, status),
		})
	}

	if err := uc.repo.UpdateDeliveryStatus(ctx, orderID, status); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return err
		}
		return apperrors.NewInternalError("updating delivery status", err)
	}

	uc.logger.Info("delivery status updated",
		zap.Uint("orderId", orderID),
		zap.Uint("sellerId", sellerID),
		zap.String("from", string(order.DeliveryStatus)),
		zap.String("to", string(status)),
	)

	return nil
}

func (uc *useCase) ListSellerOrders(ctx context.Context, sellerID uint, q ListQuery) (*OrdersResponse, error) {
	if err := validateStatusFilter(q.Status); err != nil {
		return nil, err
	}

	orders, err := uc.repo.FindBySeller(ctx, sellerID, OrderFilter{Status: q.Status, Search: q.Search})
	if err != nil {
		return nil, apperrors.NewInternalError("listing seller orders", err)
	}

	return ordersResponse(orders), nil
}

func (uc *useCase) ListUserOrders(ctx context.Context, userID uint, q ListQuery) (*OrdersResponse, error) {
	if err := validateStatusFilter(q.Status); err != nil {
		return nil, err
	}

	orders, err := uc.repo.FindByUser(ctx, userID, OrderFilter{
		Status:   q.Status,
		Search:   q.Search,
		SellerID: q.SellerID,
	})
	if err != nil {
		return nil, apperrors.NewInternalError("listing user orders", err)
	}

	return ordersResponse(orders), nil
}

func validateStatusFilter(status string) error {
	if status != "" && !domain.DeliveryStatus(status).Known() {
		return apperrors.NewValidationError("unknown delivery status", apperrors.ValidationDetail{
			Field:   "status",
			Message: fmt.Sprintf("%q is not a delivery status", status),
		})
	}
	return nil
}

func ordersResponse(orders []domain.Order) *OrdersResponse {
	dtos := make([]OrderDTO, 0, len(orders))
	for _, o := range orders {
		items := make([]LineItemDTO, 0, len(o.LineItems))
		for _, item := range o.LineItems {
			items = append(items, LineItemDTO{
				ProductID: item.ProductID,
				Name:      item.Name,
				Price:     item.Price,
				Quantity:  item.Quantity,
				ImageRef:  item.ImageRef,
			})
		}
		dtos = append(dtos, OrderDTO{
			ID:               o.ID,
			UserID:           o.UserID,
			SellerID:         o.SellerID,
			LineItems:        items,
			TotalPrice:       o.TotalPrice,
			DeliveryAddress:  o.DeliveryAddress,
			PaymentStatus:    string(o.PaymentStatus),
			DeliveryStatus:   string(o.DeliveryStatus),
			GatewayOrderID:   o.GatewayOrderID,
			GatewayPaymentID: o.GatewayPaymentID,
			CreatedAt:        o.CreatedAt,
		})
	}
	return &OrdersResponse{Orders: dtos}
}
