package cart

import (
	"database/sql"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	store := NewMySQLStore(db)
	uc := NewUseCase(store, logger)
	return NewController(uc, logger)
}
