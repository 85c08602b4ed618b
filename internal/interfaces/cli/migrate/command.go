package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fixora-app/fixora/internal/infrastructure/config"
	"github.com/fixora-app/fixora/internal/infrastructure/database"
	"github.com/fixora-app/fixora/internal/infrastructure/migration"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

var (
	env   string
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long: `Manage database migrations. MySQL uses the embedded goose scripts;
SQLite databases are migrated from the persistence models.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func initEnv() (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, false); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// requireGoose rejects SQLite, whose schema has no version table.
func requireGoose(cfg *config.Config, op string) error {
	if cfg.Database.IsSQLite() {
		return fmt.Errorf("%s is only supported for MySQL databases", op)
	}
	return nil
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "environment", cfg.Environment, "driver", cfg.Database.Driver)

	var strategy migration.Strategy = migration.NewGooseStrategy()
	if cfg.Database.IsSQLite() {
		strategy = migration.NewGormAutoMigrateStrategy()
	}

	manager := migration.NewManagerWithStrategy(strategy)
	if err := manager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
		return err
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	if err := requireGoose(cfg, "down migration"); err != nil {
		return err
	}

	log.Infow("running down migrations", "environment", cfg.Environment, "steps", steps)

	if err := migration.NewGooseStrategy().MigrateDown(database.Get(), steps); err != nil {
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, _, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	if err := requireGoose(cfg, "status check"); err != nil {
		return err
	}

	strategy := migration.NewGooseStrategy()
	version, err := strategy.GetVersion(database.Get())
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration Status:\n")
	fmt.Fprintf(out, "  Environment:     %s\n", cfg.Environment)
	fmt.Fprintf(out, "  Current Version: %d\n", version)

	return strategy.Status(database.Get())
}
