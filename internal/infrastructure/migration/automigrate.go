package migration

import (
	"github.com/fixora-app/fixora/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists the tables owned by the application. casbin_rule
// is created by the casbin adapter itself.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.ComplaintModel{},
		&models.ComplaintVoteModel{},
	}
}
