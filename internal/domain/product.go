package domain

import "time"

type Product struct {
	ID          uint
	SellerID    uint
	Name        string
	Price       float64
	AddedCost   float64
	Description *string
	ImageRefs   []string
	Categories  []string
	// Category is the legacy single-value column still present on rows
	// created before categories became a list.
	Category *string
	// SellerLocation is denormalized onto product reads so distance can be
	// computed without a second seller lookup.
	SellerLocation *Coordinate
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EffectivePrice is the unit price the buyer pays: base price plus the
// optional surcharge.
func (p Product) EffectivePrice() float64 {
	return p.Price + p.AddedCost
}

func (p Product) DistanceFrom(viewer Coordinate) (km float64, ok bool) {
	if p.SellerLocation == nil {
		return 0, false
	}
	return Distance(viewer, *p.SellerLocation)
}
