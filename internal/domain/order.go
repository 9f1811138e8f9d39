package domain

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

type DeliveryStatus string

const (
	DeliveryProcessing DeliveryStatus = "PROCESSING"
	DeliveryOnTheWay   DeliveryStatus = "ON_THE_WAY"
	DeliveryDelivered  DeliveryStatus = "DELIVERED"
	DeliveryCancelled  DeliveryStatus = "CANCELLED"
)

func (s DeliveryStatus) Known() bool {
	switch s {
	case DeliveryProcessing, DeliveryOnTheWay, DeliveryDelivered, DeliveryCancelled:
		return true
	}
	return false
}

var deliveryTransitions = map[DeliveryStatus][]DeliveryStatus{
	DeliveryProcessing: {DeliveryOnTheWay, DeliveryCancelled},
	DeliveryOnTheWay:   {DeliveryDelivered, DeliveryCancelled},
}

// CanTransition reports whether a delivery status change is legal.
// DELIVERED and CANCELLED are terminal.
func CanTransition(from, to DeliveryStatus) bool {
	for _, next := range deliveryTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CartLineSnapshot is a copy of product details captured at order time, kept
// stable even if the product is later edited or deleted.
type CartLineSnapshot struct {
	ProductID uint
	Name      string
	Price     float64
	Quantity  int
	ImageRef  *string
}

func (l CartLineSnapshot) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}

type Order struct {
	ID               uint
	UserID           uint
	SellerID         uint
	LineItems        []CartLineSnapshot
	TotalPrice       float64
	DeliveryAddress  string
	GPSLocation      *Coordinate
	PaymentStatus    PaymentStatus
	DeliveryStatus   DeliveryStatus
	GatewayOrderID   string
	GatewayPaymentID *string
	IdempotencyKey   *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (o Order) OwnedBySeller(sellerID uint) bool {
	return o.SellerID == sellerID
}
