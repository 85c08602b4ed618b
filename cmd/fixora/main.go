package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fixora-app/fixora/internal/interfaces/cli/migrate"
	"github.com/fixora-app/fixora/internal/interfaces/cli/seed"
	"github.com/fixora-app/fixora/internal/interfaces/cli/server"
	"github.com/fixora-app/fixora/internal/shared/version"
)

//go:generate swag init -g main.go -d ./,../../internal/interfaces/http/handlers -o ../../docs --parseInternal --parseDependency

// @title Fixora API
// @version 1.0
// @description Hostel maintenance complaints: submission, visibility, voting and the approve/fix lifecycle.
// @BasePath /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	rootCmd := &cobra.Command{
		Use:          "fixora",
		Short:        "Fixora - hostel maintenance complaints",
		Long:         `Fixora tracks hostel maintenance complaints from submission through approval to repair.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
		newVersionCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Get()
			fmt.Fprintf(cmd.OutOrStdout(), "fixora %s (commit %s, built %s)\n", info.Version, info.Commit, info.BuildTime)
		},
	}
}
