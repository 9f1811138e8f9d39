package fulfillment

import (
	"database/sql"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := NewMySQLRepository(db)
	uc := NewUseCase(repo, logger)
	return NewController(uc, logger)
}
