package checkout

type LocationDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type OrderItemRequest struct {
	ID        uint     `json:"id"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Quantity  int      `json:"quantity"`
	ImageRefs []string `json:"imageRefs"`
}

type CreateOrderRequest struct {
	Address        string             `json:"address"`
	Items          []OrderItemRequest `json:"items"`
	UserID         uint               `json:"userId"`
	TotalAmount    float64            `json:"totalAmount"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	GPSLocation    *LocationDTO       `json:"gpsLocation"`
	IdempotencyKey string             `json:"idempotencyKey,omitempty"`
}

// CreateOrderResponse carries the gateway-side identifiers the client needs
// to drive the payment UI. Amount is in minor currency units.
type CreateOrderResponse struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"gatewayOrderId"`
	GatewayPaymentID string `json:"gatewayPaymentId"`
	GatewaySignature string `json:"gatewaySignature"`
}

type VerifyPaymentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type WebhookEvent struct {
	Event   string         `json:"event"`
	Payload WebhookPayload `json:"payload"`
}

type WebhookPayload struct {
	GatewayOrderID   string `json:"orderId"`
	GatewayPaymentID string `json:"paymentId"`
}
