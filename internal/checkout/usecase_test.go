package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tiffinbox/internal/config"
	"tiffinbox/internal/domain"
	apperrors "tiffinbox/internal/errors"
	"tiffinbox/internal/infrastructure/payment"
)

// Mock implementations

type mockOrderRepository struct {
	InsertFunc               func(ctx context.Context, order domain.Order) (uint, error)
	FindByIdempotencyKeyFunc func(ctx context.Context, key string) (*domain.Order, error)
	MarkPaidFunc             func(ctx context.Context, gatewayOrderID, gatewayPaymentID string) (int64, error)
}

func (m *mockOrderRepository) Insert(ctx context.Context, order domain.Order) (uint, error) {
	return m.InsertFunc(ctx, order)
}

func (m *mockOrderRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	if m.FindByIdempotencyKeyFunc == nil {
		return nil, apperrors.NewNotFoundError("order not found")
	}
	return m.FindByIdempotencyKeyFunc(ctx, key)
}

func (m *mockOrderRepository) MarkPaid(ctx context.Context, gatewayOrderID, gatewayPaymentID string) (int64, error) {
	return m.MarkPaidFunc(ctx, gatewayOrderID, gatewayPaymentID)
}

type mockProductReader struct {
	FindByIDsFunc func(ctx context.Context, ids []uint) ([]domain.Product, error)
}

func (m *mockProductReader) FindByIDs(ctx context.Context, ids []uint) ([]domain.Product, error) {
	return m.FindByIDsFunc(ctx, ids)
}

type mockUserRepository struct {
	UpdatePhoneFunc func(ctx context.Context, userID uint, phone string) error
}

func (m *mockUserRepository) UpdatePhone(ctx context.Context, userID uint, phone string) error {
	if m.UpdatePhoneFunc == nil {
		return nil
	}
	return m.UpdatePhoneFunc(ctx, userID, phone)
}

type mockGateway struct {
	CreateOrderFunc func(ctx context.Context, req payment.CreateOrderRequest) (*payment.GatewayOrder, error)
	calls           int
}

func (m *mockGateway) CreateOrder(ctx context.Context, req payment.CreateOrderRequest) (*payment.GatewayOrder, error) {
	m.calls++
	if m.CreateOrderFunc == nil {
		return nil, errors.New("unexpected gateway call")
	}
	return m.CreateOrderFunc(ctx, req)
}

const testHMACSecret = "test_hmac_secret"

var testDelivery = config.DeliveryConfig{
	MaxDistanceKm: 5.0,
	ChargeMinor:   2000,
	Currency:      "INR",
}

func validRequest() CreateOrderRequest {
	return CreateOrderRequest{
		Address: "12 MG Road, Pune",
		UserID:  42,
		Email:   "rahul@example.com",
		Phone:   "+919800000000",
		Items: []OrderItemRequest{
			{ID: 1, Name: "Misal Pav", Price: 90, Quantity: 2, ImageRefs: []string{"misal.jpg"}},
			{ID: 2, Name: "Solkadhi", Price: 40, Quantity: 1, ImageRefs: []string{"solkadhi.jpg"}},
		},
		// 2*9000 + 4000 + 2000 delivery = 24000 minor units.
		TotalAmount: 240,
	}
}

func catalogProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, SellerID: 7, Name: "Misal Pav", Price: 90},
		{ID: 2, SellerID: 7, Name: "Solkadhi", Price: 40},
	}
}

func newCheckoutUseCase(orders OrderRepository, products ProductReader, users UserRepository, gw payment.Gateway) UseCase {
	return NewUseCase(orders, products, users, gw, testDelivery, testHMACSecret, zap.NewNop())
}

// Tests

func TestCreateOrder_ValidationFailureSkipsGateway(t *testing.T) {
	gw := &mockGateway{}
	uc := newCheckoutUseCase(&mockOrderRepository{}, &mockProductReader{}, &mockUserRepository{}, gw)

	req := validRequest()
	req.Address = "   "
	req.Items[0].Quantity = 0

	_, err := uc.CreateOrder(context.Background(), req)

	require.Error(t, err)
	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	fields := make([]string, 0, len(ve.Details))
	for _, d := range ve.Details {
		fields = append(fields, d.Field)
	}
	assert.Contains(t, fields, "address")
	assert.Contains(t, fields, "items[0].quantity")
	assert.Zero(t, gw.calls)
}

func TestCreateOrder_RejectsUnknownProduct(t *testing.T) {
	gw := &mockGateway{}
	products := &mockProductReader{
		FindByIDsFunc: func(ctx context.Context, ids []uint) ([]domain.Product, error) {
			return catalogProducts()[:1], nil
		},
	}
	uc := newCheckoutUseCase(&mockOrderRepository{}, products, &mockUserRepository{}, gw)

	_, err := uc.CreateOrder(context.Background(), validRequest())

	require.Error(t, err)
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
	assert.Zero(t, gw.calls)
}

func TestCreateOrder_RejectsItemsFromMultipleSellers(t *testing.T) {
	gw := &mockGateway{}
	products := &mockProductReader{
		FindByIDsFunc: func(ctx context.Context, ids []uint) ([]domain.Product, error) {
			return []domain.Product{
				{ID: 1, SellerID: 7},
				{ID: 2, SellerID: 8},
			}, nil
		},
	}
	uc := newCheckoutUseCase(&mockOrderRepository{}, products, &mockUserRepository{}, gw)

	_, err := uc.CreateOrder(context.Background(), validRequest())

	require.Error(t, err)
	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Message, "single restaurant")
	assert.Zero(t, gw.calls)
}

func TestCreateOrder_RejectsTotalMismatch(t *testing.T) {
	gw := &mockGateway{}
	products := &mockProductReader{
		FindByIDsFunc: func(ctx context.Context, ids []uint) ([]domain.Product, error) {
			return catalogProducts(), nil
		},
	}
	uc := newCheckoutUseCase(&mockOrderRepository{}, products, &mockUserRepository{}, gw)

	req := validRequest()
	req.TotalAmount = 220 // drops the delivery charge

	_, err := uc.CreateOrder(context.Background(), req)

	require.Error(t, err)
	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	require.Len(t, ve.Details, 1)
	assert.Equal(t, "totalAmount", ve.Details[0].Field)
	assert.Zero(t, gw.calls)
}

func TestCreateOrder_GatewayFailureLeavesNoOrder(t *testing.T) {
	inserted := false
	orders := &mockOrderRepository{
		InsertFunc: func(ctx context.Context, order domain.Order) (uint, error) {
			inserted = true
			return 1, nil
		},
	}
	products := &mockProductReader{
		FindByIDsFunc: func(ctx context.Context, ids []uint) ([]domain.Product, error) {
			return catalogProducts(), nil
		},
	}
	gw := &mockGateway{
		CreateOrderFunc: func(ctx context.Context, req payment.CreateOrderRequest) (*payment.GatewayOrder, error) {
			return nil, errors.New("gateway unavailable")
		},
	}
	uc := newCheckoutUseCase(orders, products, &mockUserRepository{}, gw)

	_, err := uc.CreateOrder(context.Background(), validRequest())

	require.Error(t, err)
	_, ok := apperrors.IsInternalError(err)
	assert.True(t, ok)
	assert.False(t, inserted)
}

func TestCreateOrder_RejectsGatewayOrderNotCreated(t *testing.T) {
	inserted := false
	orders := &mockOrderRepository{
		InsertFunc: func(ctx context.Context, order domain.Order) (uint, error) {
			inserted = true
			return 1, nil
		},
	}
	products := &mockProductReader{
		FindByIDsFunc: func(ctx context.Context, ids []uint) ([]domain.Product, error) {
			return catalogProducts(), nil
		},
	}
	gw := &mockGateway{
		CreateOrderFunc: func(ctx context.Context, req payment.CreateOrderRequest) (*payment.GatewayOrder, error) {
			return &payment.GatewayOrder{ID: "order_x", Status: "attempted"}, nil
		},
	}
	uc := newCheckoutUseCase(orders, products, &mockUserRepository{}, gw)

	_, err := uc.CreateOrder(context.Background(), validRequest())

	require.Error(t, err)
	_, ok := apperrors.IsInternalError(err)
	assert.True(t, ok)
	assert.False(t, inserted)
}

func TestCreateOrder_Success(t *testing.T) {
	var persisted domain.Order
	orders := &mockOrderRepository{
		InsertFunc: func(ctx context.Context, order domain.Order) (uint, error) {
			persisted = order
			return 101, nil
		},
	}
	products := &mockProductReader{
		FindByIDsFunc: func(ctx context.Context, ids []uint) ([]domain.Product, error) {
			assert.ElementsMatch(t, []uint{1, 2}, ids)
			return catalogProducts(), nil
		},
	}
	var phoneUpdatedFor uint
	users := &mockUserRepository{
		UpdatePhoneFunc: func(ctx context.Context, userID uint, phone string) error {
			phoneUpdatedFor = userID
			assert.Equal(t, "+919800000000", phone)
			return nil
		},
	}
	var gatewayReq payment.CreateOrderRequest
	gw := &mockGateway{
		CreateOrderFunc: func(ctx context.Context, req payment.CreateOrderRequest) (*payment.GatewayOrder, error) {
			gatewayReq = req
			return &payment.GatewayOrder{
				ID:          "order_abc123",
				AmountMinor: req.AmountMinor,
				Currency:    req.Currency,
				Status:      payment.OrderStatusCreated,
			}, nil
		},
	}
	uc := newCheckoutUseCase(orders, products, users, gw)

	req := validRequest()
	req.IdempotencyKey = "retry-key-1"
	req.GPSLocation = &LocationDTO{Latitude: 18.52, Longitude: 73.85}

	resp, err := uc.CreateOrder(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "order_abc123", resp.OrderID)
	assert.Equal(t, int64(24000), resp.Amount)
	assert.Equal(t, "INR", resp.Currency)

	assert.Equal(t, int64(24000), gatewayReq.AmountMinor)
	assert.Equal(t, "INR", gatewayReq.Currency)
	assert.NotEmpty(t, gatewayReq.Receipt)
	assert.Equal(t, "7", gatewayReq.Notes["sellerId"])
	assert.Contains(t, gatewayReq.Notes["items"], "Misal Pav x2")

	assert.Equal(t, uint(42), phoneUpdatedFor)

	assert.Equal(t, uint(42), persisted.UserID)
	assert.Equal(t, uint(7), persisted.SellerID)
	assert.Equal(t, "order_abc123", persisted.GatewayOrderID)
	assert.Equal(t, domain.PaymentPending, persisted.PaymentStatus)
	assert.Equal(t, domain.DeliveryProcessing, persisted.DeliveryStatus)
	assert.InDelta(t, 240.0, persisted.TotalPrice, 1e-9)
	require.NotNil(t, persisted.IdempotencyKey)
	assert.Equal(t, "retry-key-1", *persisted.IdempotencyKey)
	require.NotNil(t, persisted.GPSLocation)
	assert.InDelta(t, 18.52, persisted.GPSLocation.Latitude, 1e-9)
	require.Len(t, persisted.LineItems, 2)
	require.NotNil(t, persisted.LineItems[0].ImageRef)
	assert.Equal(t, "misal.jpg", *persisted.LineItems[0].ImageRef)
}

func TestCreateOrder_IdempotencyKeyReplaySkipsGateway(t *testing.T) {
	gw := &mockGateway{}
	key := "retry-key-1"
	orders := &mockOrderRepository{
		FindByIdempotencyKeyFunc: func(ctx context.Context, k string) (*domain.Order, error) {
			assert.Equal(t, key, k)
			return &domain.Order{
				ID:             101,
				GatewayOrderID: "order_abc123",
				TotalPrice:     240,
				IdempotencyKey: &key,
			}, nil
		},
	}
	uc := newCheckoutUseCase(orders, &mockProductReader{}, &mockUserRepository{}, gw)

	req := validRequest()
	req.IdempotencyKey = key

	resp, err := uc.CreateOrder(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "order_abc123", resp.OrderID)
	assert.Equal(t, int64(24000), resp.Amount)
	assert.Equal(t, "INR", resp.Currency)
	assert.Zero(t, gw.calls)
}

func TestVerifyPayment_RejectsBadSignature(t *testing.T) {
	markPaidCalled := false
	orders := &mockOrderRepository{
		MarkPaidFunc: func(ctx context.Context, gatewayOrderID, gatewayPaymentID string) (int64, error) {
			markPaidCalled = true
			return 1, nil
		},
	}
	uc := newCheckoutUseCase(orders, &mockProductReader{}, &mockUserRepository{}, &mockGateway{})

	err := uc.VerifyPayment(context.Background(), VerifyPaymentRequest{
		GatewayOrderID:   "order_abc123",
		GatewayPaymentID: "pay_xyz789",
		GatewaySignature: "deadbeef",
	})

	require.Error(t, err)
	_, ok := apperrors.IsVerificationError(err)
	assert.True(t, ok)
	assert.False(t, markPaidCalled)
}

func TestVerifyPayment_Success(t *testing.T) {
	var markedOrder, markedPayment string
	orders := &mockOrderRepository{
		MarkPaidFunc: func(ctx context.Context, gatewayOrderID, gatewayPaymentID string) (int64, error) {
			markedOrder = gatewayOrderID
			markedPayment = gatewayPaymentID
			return 1, nil
		},
	}
	uc := newCheckoutUseCase(orders, &mockProductReader{}, &mockUserRepository{}, &mockGateway{})

	err := uc.VerifyPayment(context.Background(), VerifyPaymentRequest{
		GatewayOrderID:   "order_abc123",
		GatewayPaymentID: "pay_xyz789",
		GatewaySignature: payment.Sign("order_abc123", "pay_xyz789", testHMACSecret),
	})

	require.NoError(t, err)
	assert.Equal(t, "order_abc123", markedOrder)
	assert.Equal(t, "pay_xyz789", markedPayment)
}

func TestVerifyPayment_RepeatConfirmationIsIdempotent(t *testing.T) {
	matched := int64(1)
	orders := &mockOrderRepository{
		MarkPaidFunc: func(ctx context.Context, gatewayOrderID, gatewayPaymentID string) (int64, error) {
			m := matched
			matched = 0
			return m, nil
		},
	}
	uc := newCheckoutUseCase(orders, &mockProductReader{}, &mockUserRepository{}, &mockGateway{})

	req := VerifyPaymentRequest{
		GatewayOrderID:   "order_abc123",
		GatewayPaymentID: "pay_xyz789",
		GatewaySignature: payment.Sign("order_abc123", "pay_xyz789", testHMACSecret),
	}

	require.NoError(t, uc.VerifyPayment(context.Background(), req))
	// The second verification matches no pending rows but still succeeds.
	require.NoError(t, uc.VerifyPayment(context.Background(), req))
}

func TestConfirmPayment_RepositoryError(t *testing.T) {
	orders := &mockOrderRepository{
		MarkPaidFunc: func(ctx context.Context, gatewayOrderID, gatewayPaymentID string) (int64, error) {
			return 0, errors.New("deadlock")
		},
	}
	uc := newCheckoutUseCase(orders, &mockProductReader{}, &mockUserRepository{}, &mockGateway{})

	err := uc.ConfirmPayment(context.Background(), "order_abc123", "pay_xyz789")

	require.Error(t, err)
	_, ok := apperrors.IsInternalError(err)
	assert.True(t, ok)
}
