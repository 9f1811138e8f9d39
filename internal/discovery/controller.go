package discovery

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tiffinbox/internal/domain"
	apperrors "tiffinbox/internal/errors"
)

type Controller struct {
	useCase UseCase
	logger  *zap.Logger
}

func NewController(useCase UseCase, logger *zap.Logger) *Controller {
	return &Controller{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *Controller) HandleSearchSellers(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	viewer, err := parseViewer(r)
	if err != nil {
		c.writeError(w, logger, err)
		return
	}

	resp, err := c.useCase.SearchSellers(r.Context(), SearchSellersQuery{
		Viewer: viewer,
		Search: r.URL.Query().Get("searchQuery"),
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
	})
	if err != nil {
		c.writeError(w, logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) HandleGetSeller(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	id, err := parseID(r, "id")
	if err != nil {
		c.writeError(w, logger, err)
		return
	}
	viewer, err := parseViewer(r)
	if err != nil {
		c.writeError(w, logger, err)
		return
	}

	dto, err := c.useCase.GetSeller(r.Context(), id, viewer)
	if err != nil {
		c.writeError(w, logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, dto)
}

func (c *Controller) HandleSearchProducts(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	viewer, err := parseViewer(r)
	if err != nil {
		c.writeError(w, logger, err)
		return
	}

	var sellerID uint
	if raw := r.URL.Query().Get("sellerId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.writeError(w, logger, apperrors.NewValidationError("invalid sellerId", apperrors.ValidationDetail{
				Field:   "sellerId",
				Message: "sellerId must be a positive integer",
			}))
			return
		}
		sellerID = uint(parsed)
	}

	resp, err := c.useCase.SearchProducts(r.Context(), SearchProductsQuery{
		Viewer:   viewer,
		Search:   r.URL.Query().Get("searchQuery"),
		Category: r.URL.Query().Get("category"),
		SellerID: sellerID,
		Page:     queryInt(r, "page"),
		Limit:    queryInt(r, "limit"),
	})
	if err != nil {
		c.writeError(w, logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	id, err := parseID(r, "id")
	if err != nil {
		c.writeError(w, logger, err)
		return
	}
	viewer, err := parseViewer(r)
	if err != nil {
		c.writeError(w, logger, err)
		return
	}

	dto, err := c.useCase.GetProduct(r.Context(), id, viewer)
	if err != nil {
		c.writeError(w, logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, dto)
}

// parseViewer extracts the required lat/lng query params. Missing or
// unparsable values surface as the location-required validation error.
func parseViewer(r *http.Request) (domain.Coordinate, error) {
	latRaw := r.URL.Query().Get("lat")
	lngRaw := r.URL.Query().Get("lng")
	if latRaw == "" || lngRaw == "" {
		return domain.Coordinate{}, locationRequired()
	}

	lat, latErr := strconv.ParseFloat(latRaw, 64)
	lng, lngErr := strconv.ParseFloat(lngRaw, 64)
	if latErr != nil || lngErr != nil || math.IsNaN(lat) || math.IsNaN(lng) {
		return domain.Coordinate{}, locationRequired()
	}

	return domain.Coordinate{Latitude: lat, Longitude: lng}, nil
}

func parseID(r *http.Request, param string) (uint, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("invalid "+param, apperrors.ValidationDetail{
			Field:   param,
			Message: param + " must be a positive integer",
		})
	}
	return uint(id), nil
}

func queryInt(r *http.Request, param string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(param))
	if err != nil {
		return 0
	}
	return v
}

func (c *Controller) writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "VALIDATION_ERROR",
			"message": ve.Message,
			"details": ve.Details,
		})
		return
	}
	if ore, ok := apperrors.IsOutOfRangeError(err); ok {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "OUT_OF_RANGE",
			"message": ore.Message,
		})
		return
	}
	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": nfe.Message,
		})
		return
	}

	logger.Error("discovery request failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
