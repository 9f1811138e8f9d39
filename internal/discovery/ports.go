package discovery

import (
	"context"

	"tiffinbox/internal/domain"
)

type SearchSellersQuery struct {
	Viewer domain.Coordinate
	Search string
	Page   int
	Limit  int
}

type SearchProductsQuery struct {
	Viewer   domain.Coordinate
	Search   string
	Category string
	SellerID uint
	Page     int
	Limit    int
}

type UseCase interface {
	SearchSellers(ctx context.Context, q SearchSellersQuery) (*SellersResponse, error)
	GetSeller(ctx context.Context, id uint, viewer domain.Coordinate) (*SellerDTO, error)
	SearchProducts(ctx context.Context, q SearchProductsQuery) (*ProductsResponse, error)
	GetProduct(ctx context.Context, id uint, viewer domain.Coordinate) (*ProductDTO, error)
}

type SellerFilter struct {
	Search string
	Limit  int
	Offset int
}

type ProductFilter struct {
	Search   string
	Category string
	SellerID uint
	Limit    int
	Offset   int
}

type Repository interface {
	FindActiveSellers(ctx context.Context, f SellerFilter) ([]domain.Seller, error)
	FindSellerByID(ctx context.Context, id uint) (*domain.Seller, error)
	FindActiveProducts(ctx context.Context, f ProductFilter) ([]domain.Product, error)
	FindProductByID(ctx context.Context, id uint) (*domain.Product, error)
}
