package cart

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "tiffinbox/internal/errors"
)

const userIDHeader = "X-User-ID"

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

func (c *Controller) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	userID, err := callerID(r)
	if err != nil {
		c.writeError(w, logger, err)
		return
	}

	resp, err := c.useCase.Get(r.Context(), userID)
	if err != nil {
		c.writeError(w, logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	userID, err := callerID(r)
	if err != nil {
		c.writeError(w, logger, err)
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeError(w, logger, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		}))
		return
	}

	resp, err := c.useCase.AddItem(r.Context(), userID, req)
	if err != nil {
		c.writeError(w, logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) HandleDecrementItem(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	userID, err := callerID(r)
	if err != nil {
		c.writeError(w, logger, err)
		return
	}

	var req struct {
		ProductID uint `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == 0 {
		c.writeError(w, logger, apperrors.NewValidationError("productId is required", apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId must be a positive integer",
		}))
		return
	}

	resp, err := c.useCase.DecrementItem(r.Context(), userID, req.ProductID)
	if err != nil {
		c.writeError(w, logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	userID, err := callerID(r)
	if err != nil {
		c.writeError(w, logger, err)
		return
	}

	raw := chi.URLParam(r, "productId")
	productID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || productID == 0 {
		c.writeError(w, logger, apperrors.NewValidationError("invalid productId", apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId must be a positive integer",
		}))
		return
	}

	resp, err := c.useCase.RemoveItem(r.Context(), userID, uint(productID))
	if err != nil {
		c.writeError(w, logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func callerID(r *http.Request) (uint, error) {
	raw := r.Header.Get(userIDHeader)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("missing caller identity", apperrors.ValidationDetail{
			Field:   userIDHeader,
			Message: userIDHeader + " header must carry a positive integer id",
		})
	}
	return uint(id), nil
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

	logger.Error("cart request failed", zap.Error(err))
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
