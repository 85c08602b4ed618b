package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fixora-app/fixora/internal/application/user/usecases"
	"github.com/fixora-app/fixora/internal/infrastructure/auth"
	"github.com/fixora-app/fixora/internal/infrastructure/config"
	"github.com/fixora-app/fixora/internal/infrastructure/database"
	"github.com/fixora-app/fixora/internal/infrastructure/repository"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

var env string

// NewCommand returns the command that provisions warden and staff accounts
// from a YAML file. Students register themselves.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed <accounts.yaml>",
		Short: "Create warden and staff accounts",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	file, err := usecases.ParseSeedFile(f)
	if err != nil {
		return err
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, false); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	uc := usecases.NewSeedAccountsUseCase(
		repository.NewUserRepository(database.Get()),
		auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost),
		logger.NewComponentLogger("seed"),
	)

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	result, err := uc.Execute(ctx, file)
	if result != nil {
		out := cmd.OutOrStdout()
		for _, email := range result.Created {
			fmt.Fprintf(out, "created  %s\n", email)
		}
		for _, email := range result.Skipped {
			fmt.Fprintf(out, "skipped  %s\n", email)
		}
	}
	return err
}
