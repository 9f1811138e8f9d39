package checkout

import (
	"database/sql"

	"go.uber.org/zap"

	"tiffinbox/internal/config"
	"tiffinbox/internal/infrastructure/payment"
)

func NewModule(db *sql.DB, cfg *config.Config, gateway payment.Gateway, logger *zap.Logger) *Controller {
	orders := NewMySQLOrderRepository(db)
	products := NewMySQLProductReader(db)
	users := NewMySQLUserRepository(db)

	uc := NewUseCase(orders, products, users, gateway, cfg.Delivery, cfg.Gateway.HMACSecret, logger)

	return NewController(uc, cfg.Gateway.WebhookSecret, logger)
}
