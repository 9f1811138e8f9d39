package cart

type AddItemRequest struct {
	ProductID uint    `json:"productId"`
	SellerID  uint    `json:"sellerId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageRef  *string `json:"imageRef,omitempty"`
}

type CartLineDTO struct {
	ProductID uint    `json:"productId"`
	SellerID  uint    `json:"sellerId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageRef  *string `json:"imageRef,omitempty"`
}

type CartResponse struct {
	Lines    []CartLineDTO `json:"lines"`
	Subtotal float64       `json:"subtotal"`
}
