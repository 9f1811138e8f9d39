package checkout

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tiffinbox/internal/config"
	"tiffinbox/internal/domain"
	apperrors "tiffinbox/internal/errors"
	"tiffinbox/internal/infrastructure/payment"
)

type useCase struct {
	orders     OrderRepository
	products   ProductReader
	users      UserRepository
	gateway    payment.Gateway
	delivery   config.DeliveryConfig
	hmacSecret string
	logger     *zap.Logger
}

func NewUseCase(
	orders OrderRepository,
	products ProductReader,
	users UserRepository,
	gateway payment.Gateway,
	delivery config.DeliveryConfig,
	hmacSecret string,
	logger *zap.Logger,
) UseCase {
	return &useCase{
		orders:     orders,
		products:   products,
		users:      users,
		gateway:    gateway,
		delivery:   delivery,
		hmacSecret: hmacSecret,
		logger:     logger,
	}
}

func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (uc *useCase) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	if err := validateCreateOrder(&req); err != nil {
		return nil, err
	}

	// A retried submission with the same key must not create a second
	// gateway order.
	if req.IdempotencyKey != "" {
		existing, err := uc.orders.FindByIdempotencyKey(ctx, req.IdempotencyKey)
		if err != nil {
			if _, ok := apperrors.IsNotFoundError(err); !ok {
				return nil, apperrors.NewInternalError("order creation failed", err)
			}
		}
		if existing != nil {
			uc.logger.Info("idempotency key replay, returning existing order",
				zap.String("gatewayOrderId", existing.GatewayOrderID),
			)
			return &CreateOrderResponse{
				OrderID:  existing.GatewayOrderID,
				Amount:   minorUnits(existing.TotalPrice),
				Currency: uc.delivery.Currency,
			}, nil
		}
	}

	sellerID, err := uc.resolveSeller(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	// The client-supplied total is untrusted input: it must equal the
	// recomputed line-item total plus the delivery charge.
	itemsMinor := int64(0)
	for _, item := range req.Items {
		itemsMinor += minorUnits(item.Price) * int64(item.Quantity)
	}
	totalMinor := itemsMinor + uc.delivery.ChargeMinor
	if minorUnits(req.TotalAmount) != totalMinor {
		return nil, apperrors.NewValidationError("totalAmount does not match order contents", apperrors.ValidationDetail{
			Field:   "totalAmount",
			Message: fmt.Sprintf("expected total of %d minor units including delivery charge", totalMinor),
		})
	}

	gatewayOrder, err := uc.gateway.CreateOrder(ctx, payment.CreateOrderRequest{
		AmountMinor: totalMinor,
		Currency:    uc.delivery.Currency,
		Receipt:     uuid.New().String(),
		Notes: map[string]string{
			"email":    req.Email,
			"phone":    req.Phone,
			"address":  req.Address,
			"sellerId": strconv.FormatUint(uint64(sellerID), 10),
			"items":    summarizeItems(req.Items),
		},
	})
	if err != nil {
		uc.logger.Error("gateway order creation failed", zap.Error(err))
		return nil, apperrors.NewInternalError("order creation failed", err)
	}
	if gatewayOrder.Status != payment.OrderStatusCreated {
		// No domain order without a live payment intent behind it.
		return nil, apperrors.NewInternalError("order creation failed",
			fmt.Errorf("gateway order in unexpected status %q", gatewayOrder.Status))
	}

	if req.Phone != "" {
		if err := uc.users.UpdatePhone(ctx, req.UserID, req.Phone); err != nil {
			return nil, apperrors.NewInternalError("order creation failed", err)
		}
	}

	order := domain.Order{
		UserID:          req.UserID,
		SellerID:        sellerID,
		LineItems:       snapshotItems(req.Items),
		TotalPrice:      float64(totalMinor) / 100,
		DeliveryAddress: strings.TrimSpace(req.Address),
		PaymentStatus:   domain.PaymentPending,
		DeliveryStatus:  domain.DeliveryProcessing,
		GatewayOrderID:  gatewayOrder.ID,
	}
	if req.GPSLocation != nil {
		order.GPSLocation = &domain.Coordinate{
			Latitude:  req.GPSLocation.Latitude,
			Longitude: req.GPSLocation.Longitude,
		}
	}
	if req.IdempotencyKey != "" {
		key := req.IdempotencyKey
		order.IdempotencyKey = &key
	}

	orderID, err := uc.orders.Insert(ctx, order)
	if err != nil {
		// The gateway order is left to expire; no compensation is
		// attempted.
		uc.logger.Error("persisting order failed",
			zap.String("gatewayOrderId", gatewayOrder.ID),
			zap.Error(err),
		)
		return nil, apperrors.NewInternalError("order creation failed", err)
	}

	uc.logger.Info("order created",
		zap.Uint("orderId", orderID),
		zap.Uint("sellerId", sellerID),
		zap.String("gatewayOrderId", gatewayOrder.ID),
		zap.Int64("amountMinor", totalMinor),
	)

	return &CreateOrderResponse{
		OrderID:  gatewayOrder.ID,
		Amount:   gatewayOrder.AmountMinor,
		Currency: gatewayOrder.Currency,
	}, nil
}

func validateCreateOrder(req *CreateOrderRequest) error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(req.Address) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "address",
			Message: "delivery address must not be empty",
		})
	}
	if req.UserID == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "userId",
			Message: "userId is required",
		})
	}
	if len(req.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}
	for i, item := range req.Items {
		field := fmt.Sprintf("items[%d]", i)
		if item.ID == 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   field + ".id",
				Message: "item id must be a positive integer",
			})
		}
		if strings.TrimSpace(item.Name) == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   field + ".name",
				Message: "item name must not be empty",
			})
		}
		if item.Price < 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   field + ".price",
				Message: "item price must not be negative",
			})
		}
		if item.Quantity < 1 {
			details = append(details, apperrors.ValidationDetail{
				Field:   field + ".quantity",
				Message: "item quantity must be at least 1",
			})
		}
		if len(item.ImageRefs) == 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   field + ".imageRefs",
				Message: "item must carry at least one image reference",
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("invalid order request", details...)
	}
	return nil
}

// resolveSeller maps the submitted items to catalog products and enforces the
// single-restaurant invariant.
func (uc *useCase) resolveSeller(ctx context.Context, items []OrderItemRequest) (uint, error) {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	products, err := uc.products.FindByIDs(ctx, ids)
	if err != nil {
		return 0, apperrors.NewInternalError("order creation failed", err)
	}

	bySeller := make(map[uint]struct{})
	found := make(map[uint]struct{}, len(products))
	for _, p := range products {
		found[p.ID] = struct{}{}
		bySeller[p.SellerID] = struct{}{}
	}

	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return 0, apperrors.NewValidationError("unknown product in order", apperrors.ValidationDetail{
				Field:   "items",
				Message: fmt.Sprintf("product %d does not exist", id),
			})
		}
	}
	if len(bySeller) != 1 {
		return 0, apperrors.NewValidationError("order items must belong to a single restaurant", apperrors.ValidationDetail{
			Field:   "items",
			Message: "all items must come from the same seller",
		})
	}

	for sellerID := range bySeller {
		return sellerID, nil
	}
	return 0, nil
}

func snapshotItems(items []OrderItemRequest) []domain.CartLineSnapshot {
	snapshots := make([]domain.CartLineSnapshot, 0, len(items))
	for _, item := range items {
		snapshot := domain.CartLineSnapshot{
			ProductID: item.ID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
		if len(item.ImageRefs) > 0 {
			ref := item.ImageRefs[0]
			snapshot.ImageRef = &ref
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots
}

func summarizeItems(items []OrderItemRequest) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
	}
	return strings.Join(parts, "; ")
}

func (uc *useCase) VerifyPayment(ctx context.Context, req VerifyPaymentRequest) error {
	if !payment.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature, uc.hmacSecret) {
		uc.logger.Warn("payment signature mismatch",
			zap.String("gatewayOrderId", req.GatewayOrderID),
			zap.String("gatewayPaymentId", req.GatewayPaymentID),
		)
		return apperrors.NewVerificationError("payment signature verification failed")
	}

	return uc.ConfirmPayment(ctx, req.GatewayOrderID, req.GatewayPaymentID)
}

func (uc *useCase) ConfirmPayment(ctx context.Context, gatewayOrderID, gatewayPaymentID string) error {
	matched, err := uc.orders.MarkPaid(ctx, gatewayOrderID, gatewayPaymentID)
	if err != nil {
		return apperrors.NewInternalError("payment confirmation failed", err)
	}

	if matched == 0 {
		// Either a repeat confirmation or a webhook racing a slow order
		// write; both are safe to acknowledge.
		uc.logger.Warn("payment confirmation matched no pending orders",
			zap.String("gatewayOrderId", gatewayOrderID),
		)
	} else {
		uc.logger.Info("payment completed",
			zap.String("gatewayOrderId", gatewayOrderID),
			zap.String("gatewayPaymentId", gatewayPaymentID),
		)
	}

	return nil
}
