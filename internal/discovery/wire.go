package discovery

import (
	"database/sql"

	"go.uber.org/zap"

	"tiffinbox/internal/config"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *Controller {
	repo := NewMySQLRepository(db)
	uc := NewUseCase(repo, cfg.Delivery.MaxDistanceKm, logger)
	return NewController(uc, logger)
}
