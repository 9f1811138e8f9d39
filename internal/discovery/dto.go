package discovery

type SellerDTO struct {
	ID              uint     `json:"id"`
	DisplayName     string   `json:"displayName"`
	RestaurantName  *string  `json:"restaurantName,omitempty"`
	Speciality      *string  `json:"speciality,omitempty"`
	Address         *string  `json:"address,omitempty"`
	Phone           *string  `json:"phone,omitempty"`
	ProfileImageRef *string  `json:"profileImageRef,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	ProductCount    int      `json:"productCount"`
	DistanceKm      float64  `json:"distanceKm"`
}

type ProductDTO struct {
	ID             uint     `json:"id"`
	SellerID       uint     `json:"sellerId"`
	Name           string   `json:"name"`
	Price          float64  `json:"price"`
	AddedCost      float64  `json:"addedCost"`
	EffectivePrice float64  `json:"effectivePrice"`
	Description    *string  `json:"description,omitempty"`
	ImageRefs      []string `json:"imageRefs"`
	Categories     []string `json:"categories"`
	DistanceKm     float64  `json:"distanceKm"`
}

type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	HasNextPage bool `json:"hasNextPage"`
}

type SellersResponse struct {
	FormattedSellers []SellerDTO `json:"formattedSellers"`
	Pagination       Pagination  `json:"pagination"`
}

type ProductsResponse struct {
	FormattedProducts []ProductDTO `json:"formattedProducts"`
	Pagination        Pagination   `json:"pagination"`
}
