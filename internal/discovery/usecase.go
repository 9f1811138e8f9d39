package discovery

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"tiffinbox/internal/domain"
	apperrors "tiffinbox/internal/errors"
)

const (
	DefaultSellerLimit  = 9
	DefaultProductLimit = 8
)

type useCase struct {
	repo          Repository
	maxDistanceKm float64
	logger        *zap.Logger
}

func NewUseCase(repo Repository, maxDistanceKm float64, logger *zap.Logger) UseCase {
	return &useCase{
		repo:          repo,
		maxDistanceKm: maxDistanceKm,
		logger:        logger,
	}
}

func locationRequired() error {
	return apperrors.NewValidationError("viewer location is required", apperrors.ValidationDetail{
		Field:   "lat,lng",
		Message: "lat and lng must be finite numbers",
	})
}

func normalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

func (uc *useCase) SearchSellers(ctx context.Context, q SearchSellersQuery) (*SellersResponse, error) {
	if !q.Viewer.Valid() {
		return nil, locationRequired()
	}
	page, limit := normalizePage(q.Page, q.Limit, DefaultSellerLimit)

	// Over-fetch one row so a next page is detectable without a count query.
	sellers, err := uc.repo.FindActiveSellers(ctx, SellerFilter{
		Search: q.Search,
		Limit:  limit + 1,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, apperrors.NewInternalError("searching sellers", err)
	}

	hasNextPage := len(sellers) > limit
	if hasNextPage {
		sellers = sellers[:limit]
	}

	// Distance filtering happens after pagination, so a page may come back
	// short even when more in-range rows exist further on.
	type scored struct {
		seller domain.Seller
		km     float64
	}
	inRange := make([]scored, 0, len(sellers))
	for _, s := range sellers {
		km, known := s.DistanceFrom(q.Viewer)
		if !domain.WithinRadius(km, known, uc.maxDistanceKm) {
			continue
		}
		inRange = append(inRange, scored{seller: s, km: km})
	}
	sort.SliceStable(inRange, func(i, j int) bool { return inRange[i].km < inRange[j].km })

	dtos := make([]SellerDTO, 0, len(inRange))
	for _, sc := range inRange {
		dtos = append(dtos, sellerDTO(sc.seller, sc.km))
	}

	return &SellersResponse{
		FormattedSellers: dtos,
		Pagination:       Pagination{Page: page, Limit: limit, HasNextPage: hasNextPage},
	}, nil
}

func (uc *useCase) GetSeller(ctx context.Context, id uint, viewer domain.Coordinate) (*SellerDTO, error) {
	if !viewer.Valid() {
		return nil, locationRequired()
	}

	seller, err := uc.repo.FindSellerByID(ctx, id)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, err
		}
		return nil, apperrors.NewInternalError("fetching seller", err)
	}

	km, known := seller.DistanceFrom(viewer)
	if !domain.WithinRadius(km, known, uc.maxDistanceKm) {
		// The restaurant page must not reveal an undeliverable listing.
		return nil, apperrors.NewOutOfRangeError("seller is outside the delivery radius")
	}

	dto := sellerDTO(*seller, km)
	return &dto, nil
}

func (uc *useCase) SearchProducts(ctx context.Context, q SearchProductsQuery) (*ProductsResponse, error) {
	if !q.Viewer.Valid() {
		return nil, locationRequired()
	}
	page, limit := normalizePage(q.Page, q.Limit, DefaultProductLimit)

	products, err := uc.repo.FindActiveProducts(ctx, ProductFilter{
		Search:   q.Search,
		Category: q.Category,
		SellerID: q.SellerID,
		Limit:    limit + 1,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		return nil, apperrors.NewInternalError("searching products", err)
	}

	hasNextPage := len(products) > limit
	if hasNextPage {
		products = products[:limit]
	}

	type scored struct {
		product domain.Product
		km      float64
	}
	inRange := make([]scored, 0, len(products))
	for _, p := range products {
		km, known := p.DistanceFrom(q.Viewer)
		if !domain.WithinRadius(km, known, uc.maxDistanceKm) {
			continue
		}
		inRange = append(inRange, scored{product: p, km: km})
	}
	sort.SliceStable(inRange, func(i, j int) bool { return inRange[i].km < inRange[j].km })

	dtos := make([]ProductDTO, 0, len(inRange))
	for _, sc := range inRange {
		dtos = append(dtos, productDTO(sc.product, sc.km))
	}

	return &ProductsResponse{
		FormattedProducts: dtos,
		Pagination:        Pagination{Page: page, Limit: limit, HasNextPage: hasNextPage},
	}, nil
}

func (uc *useCase) GetProduct(ctx context.Context, id uint, viewer domain.Coordinate) (*ProductDTO, error) {
	if !viewer.Valid() {
		return nil, locationRequired()
	}

	product, err := uc.repo.FindProductByID(ctx, id)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, err
		}
		return nil, apperrors.NewInternalError("fetching product", err)
	}

	km, known := product.DistanceFrom(viewer)
	if !domain.WithinRadius(km, known, uc.maxDistanceKm) {
		return nil, apperrors.NewOutOfRangeError("product is outside the delivery radius")
	}

	dto := productDTO(*product, km)
	return &dto, nil
}

func sellerDTO(s domain.Seller, km float64) SellerDTO {
	dto := SellerDTO{
		ID:              s.ID,
		DisplayName:     s.DisplayName,
		RestaurantName:  s.RestaurantName,
		Speciality:      s.Speciality,
		Address:         s.Address,
		Phone:           s.Phone,
		ProfileImageRef: s.ProfileImageRef,
		ProductCount:    s.ProductCount,
		DistanceKm:      km,
	}
	if s.Location != nil {
		dto.Latitude = &s.Location.Latitude
		dto.Longitude = &s.Location.Longitude
	}
	return dto
}

func productDTO(p domain.Product, km float64) ProductDTO {
	imageRefs := p.ImageRefs
	if imageRefs == nil {
		imageRefs = []string{}
	}
	categories := p.Categories
	if categories == nil {
		categories = []string{}
	}
	return ProductDTO{
		ID:             p.ID,
		SellerID:       p.SellerID,
		Name:           p.Name,
		Price:          p.Price,
		AddedCost:      p.AddedCost,
		EffectivePrice: p.EffectivePrice(),
		Description:    p.Description,
		ImageRefs:      imageRefs,
		Categories:     categories,
		DistanceKm:     km,
	}
}
