package fulfillment

import "time"

type LineItemDTO struct {
	ProductID uint    `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageRef  *string `json:"imageRef,omitempty"`
}

type OrderDTO struct {
	ID               uint          `json:"id"`
	UserID           uint          `json:"userId"`
	SellerID         uint          `json:"sellerId"`
	LineItems        []LineItemDTO `json:"lineItems"`
	TotalPrice       float64       `json:"totalPrice"`
	DeliveryAddress  string        `json:"deliveryAddress"`
	PaymentStatus    string        `json:"paymentStatus"`
	DeliveryStatus   string        `json:"deliveryStatus"`
	GatewayOrderID   string        `json:"gatewayOrderId"`
	GatewayPaymentID *string       `json:"gatewayPaymentId,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
}

type OrdersResponse struct {
	Orders []OrderDTO `json:"orders"`
}

type UpdateStatusRequest struct {
	OrderID uint   `json:"orderId"`
	Status  string `json:"status"`
}
