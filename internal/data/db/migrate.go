package db

import (
	types "github.com/tatarby/backend/internal/domain"
	"gorm.io/gorm"
)

// AutoMigrateAll creates or updates every table. Foreign-key constraints are
// not emitted during migration (see gorm.Config); cascade deletes are
// performed explicitly by the services as ordered deletes in a transaction.
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// identity + auth
		&types.User{},
		&types.UserToken{},

		// dialogs and their question graph
		&types.Dialog{},
		&types.Vote{},
		&types.Question{},
		&types.Answer{},

		// per-user progress
		&types.UserAnswer{},
		&types.UserDialogQuestion{},
	)
}
