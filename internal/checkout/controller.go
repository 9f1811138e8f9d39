package checkout

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "tiffinbox/internal/errors"
	"tiffinbox/internal/infrastructure/payment"
)

type Controller struct {
	useCase       UseCase
	webhookSecret string
	logger        *zap.Logger
}

func NewController(useCase UseCase, webhookSecret string, logger *zap.Logger) *Controller {
	return &Controller{
		useCase:       useCase,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

func (c *Controller) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "VALIDATION_ERROR",
			"message": "request body must be valid JSON",
		})
		return
	}

	resp, err := c.useCase.CreateOrder(r.Context(), req)
	if err != nil {
		if ve, ok := apperrors.IsValidationError(err); ok {
			c.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":   "VALIDATION_ERROR",
				"message": ve.Message,
				"details": ve.Details,
			})
			return
		}
		logger.Error("order creation failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "ORDER_CREATION_FAILED",
			"message": "order could not be created",
		})
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) HandleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	var req VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeJSON(w, http.StatusBadRequest, VerifyPaymentResponse{
			Success: false,
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.useCase.VerifyPayment(r.Context(), req); err != nil {
		if ve, ok := apperrors.IsVerificationError(err); ok {
			c.writeJSON(w, http.StatusBadRequest, VerifyPaymentResponse{
				Success: false,
				Message: ve.Message,
			})
			return
		}
		logger.Error("payment verification failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, VerifyPaymentResponse{
			Success: false,
			Message: "payment verification failed",
		})
		return
	}

	c.writeJSON(w, http.StatusOK, VerifyPaymentResponse{
		Success: true,
		Message: "payment verified",
	})
}

// HandleWebhook is the asynchronous ingress for gateway events. The raw body
// is authenticated against the webhook secret before anything is trusted;
// payment-captured events then share the synchronous confirmation path.
func (c *Controller) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		logger.Warn("reading webhook body failed", zap.Error(err))
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"status": "rejected"})
		return
	}

	signature := r.Header.Get("X-Webhook-Signature")
	if !payment.VerifyWebhookSignature(body, signature, c.webhookSecret) {
		logger.Warn("webhook signature verification failed")
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"status": "rejected"})
		return
	}

	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		logger.Warn("invalid webhook payload", zap.Error(err))
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"status": "rejected"})
		return
	}

	switch event.Event {
	case "payment.captured":
		if err := c.useCase.ConfirmPayment(r.Context(), event.Payload.GatewayOrderID, event.Payload.GatewayPaymentID); err != nil {
			logger.Error("webhook payment confirmation failed", zap.Error(err))
			c.writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error"})
			return
		}
	default:
		logger.Info("ignoring webhook event", zap.String("event", event.Event))
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
