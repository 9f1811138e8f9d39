package checkout

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiffinbox/internal/domain"
	apperrors "tiffinbox/internal/errors"
	"tiffinbox/internal/testutil"
)

func sampleOrder(key string) domain.Order {
	imageRef := "misal.jpg"
	order := domain.Order{
		UserID:          42,
		SellerID:        7,
		TotalPrice:      240,
		DeliveryAddress: "12 MG Road, Pune",
		PaymentStatus:   domain.PaymentPending,
		DeliveryStatus:  domain.DeliveryProcessing,
		GatewayOrderID:  "order_abc123",
		GPSLocation:     &domain.Coordinate{Latitude: 18.52, Longitude: 73.85},
		LineItems: []domain.CartLineSnapshot{
			{ProductID: 1, Name: "Misal Pav", Price: 90, Quantity: 2, ImageRef: &imageRef},
			{ProductID: 2, Name: "Solkadhi", Price: 40, Quantity: 1},
		},
	}
	if key != "" {
		order.IdempotencyKey = &key
	}
	return order
}

func TestMySQLOrderRepository_InsertAndFindByIdempotencyKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLOrderRepository(db)

	orderID, err := repo.Insert(context.Background(), sampleOrder("retry-key-1"))
	require.NoError(t, err)
	assert.NotZero(t, orderID)

	var itemCount int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM order_items WHERE orderId = ?`, orderID,
	).Scan(&itemCount))
	assert.Equal(t, 2, itemCount)

	found, err := repo.FindByIdempotencyKey(context.Background(), "retry-key-1")
	require.NoError(t, err)
	assert.Equal(t, orderID, found.ID)
	assert.Equal(t, "order_abc123", found.GatewayOrderID)
	assert.Equal(t, domain.PaymentPending, found.PaymentStatus)

	_, err = repo.FindByIdempotencyKey(context.Background(), "never-used")
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestMySQLOrderRepository_InsertRejectsDuplicateIdempotencyKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLOrderRepository(db)

	_, err := repo.Insert(context.Background(), sampleOrder("retry-key-1"))
	require.NoError(t, err)

	_, err = repo.Insert(context.Background(), sampleOrder("retry-key-1"))
	assert.Error(t, err)
}

func TestMySQLOrderRepository_MarkPaid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLOrderRepository(db)

	orderID, err := repo.Insert(context.Background(), sampleOrder(""))
	require.NoError(t, err)

	matched, err := repo.MarkPaid(context.Background(), "order_abc123", "pay_xyz789")
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	var paymentStatus string
	var gatewayPaymentID sql.NullString
	require.NoError(t, db.QueryRow(
		`SELECT paymentStatus, gatewayPaymentId FROM orders WHERE id = ?`, orderID,
	).Scan(&paymentStatus, &gatewayPaymentID))
	assert.Equal(t, string(domain.PaymentCompleted), paymentStatus)
	require.True(t, gatewayPaymentID.Valid)
	assert.Equal(t, "pay_xyz789", gatewayPaymentID.String)

	matched, err = repo.MarkPaid(context.Background(), "order_unknown", "pay_xyz789")
	require.NoError(t, err)
	assert.Zero(t, matched)
}

func TestMySQLProductReader_FindByIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	_, err := db.Exec(`
		INSERT INTO products (id, sellerId, name, price, addedCost)
		VALUES (1, 7, 'Misal Pav', 90, 10), (2, 7, 'Solkadhi', 40, 0), (3, 8, 'Vada Pav', 30, 0)`)
	require.NoError(t, err)

	reader := NewMySQLProductReader(db)

	products, err := reader.FindByIDs(context.Background(), []uint{1, 2, 999})
	require.NoError(t, err)
	require.Len(t, products, 2)

	none, err := reader.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestMySQLUserRepository_UpdatePhone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	_, err := db.Exec(`INSERT INTO users (id, name, email) VALUES (42, 'Rahul', 'rahul@example.com')`)
	require.NoError(t, err)

	repo := NewMySQLUserRepository(db)

	require.NoError(t, repo.UpdatePhone(context.Background(), 42, "+919800000000"))

	var phone sql.NullString
	require.NoError(t, db.QueryRow(`SELECT phone FROM users WHERE id = 42`).Scan(&phone))
	require.True(t, phone.Valid)
	assert.Equal(t, "+919800000000", phone.String)

	err = repo.UpdatePhone(context.Background(), 999, "+919800000000")
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
