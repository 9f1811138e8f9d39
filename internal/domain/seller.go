package domain

import "time"

type Seller struct {
	ID              uint
	DisplayName     string
	RestaurantName  *string
	Speciality      *string
	Address         *string
	Phone           *string
	ProfileImageRef *string
	Location        *Coordinate
	IsActive        bool
	ProductCount    int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DistanceFrom returns the delivery distance from the viewer to the seller.
// ok is false when the seller has no usable location on record.
func (s Seller) DistanceFrom(viewer Coordinate) (km float64, ok bool) {
	if s.Location == nil {
		return 0, false
	}
	return Distance(viewer, *s.Location)
}
