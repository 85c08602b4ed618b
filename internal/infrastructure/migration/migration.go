package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/fixora-app/fixora/internal/shared/config"
	"github.com/fixora-app/fixora/internal/shared/constants"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

// Manager runs the migration strategy chosen for a database.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks goose for MySQL outside development and AutoMigrate
// everywhere else.
func NewManager(environment string, db *config.DatabaseConfig) *Manager {
	var strategy Strategy
	if db != nil && !db.IsSQLite() && environment != constants.EnvDevelopment {
		strategy = NewGooseStrategy()
	} else {
		strategy = NewGormAutoMigrateStrategy()
	}
	return NewManagerWithStrategy(strategy)
}

func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewComponentLogger("migration.manager"),
	}
}

func (m *Manager) Migrate(db *gorm.DB, models ...interface{}) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db, models...); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
