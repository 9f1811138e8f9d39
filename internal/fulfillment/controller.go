package fulfillment

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tiffinbox/internal/domain"
	apperrors "tiffinbox/internal/errors"
)

// Identity headers are injected by the upstream auth layer; session handling
// itself is out of scope here.
const (
	sellerIDHeader = "X-Seller-ID"
	userIDHeader   = "X-User-ID"
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

func (c *Controller) HandleListSellerOrders(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	sellerID, err := identityHeader(r, sellerIDHeader)
	if err != nil {
		c.writeError(w, logger, err)
		return
	}

	resp, err := c.useCase.ListSellerOrders(r.Context(), sellerID, ListQuery{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	})
	if err != nil {
		c.writeError(w, logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	sellerID, err := identityHeader(r, sellerIDHeader)
	if err != nil {
		c.writeError(w, logger, err)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeError(w, logger, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		}))
		return
	}
	if req.OrderID == 0 {
		c.writeError(w, logger, apperrors.NewValidationError("orderId is required", apperrors.ValidationDetail{
			Field:   "orderId",
			Message: "orderId must be a positive integer",
		}))
		return
	}

	if err := c.useCase.UpdateStatus(r.Context(), sellerID, req.OrderID, domain.DeliveryStatus(req.Status)); err != nil {
		c.writeError(w, logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{
		"message": "delivery status updated",
	})
}

func (c *Controller) HandleListUserOrders(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	userID, err := identityHeader(r, userIDHeader)
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

	resp, err := c.useCase.ListUserOrders(r.Context(), userID, ListQuery{
		Status:   r.URL.Query().Get("status"),
		Search:   r.URL.Query().Get("search"),
		SellerID: sellerID,
	})
	if err != nil {
		c.writeError(w, logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func identityHeader(r *http.Request, header string) (uint, error) {
	raw := r.Header.Get(header)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("missing caller identity", apperrors.ValidationDetail{
			Field:   header,
			Message: header + " header must carry a positive integer id",
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
	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": nfe.Message,
		})
		return
	}
	if fe, ok := apperrors.IsForbiddenError(err); ok {
		c.writeJSON(w, http.StatusForbidden, map[string]string{
			"error":   "FORBIDDEN",
			"message": fe.Message,
		})
		return
	}

	logger.Error("fulfillment request failed", zap.Error(err))
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
