// catalogctl - công cụ vận hành: migrate, seed user, smoke test
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"book-catalog/internal/config"
	"book-catalog/pkg/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "catalogctl",
		Short: "Operate the book catalog service",
		Long: `catalogctl chạy các tác vụ vận hành của book catalog.

Available subcommands:
  migrate - Apply database migrations for the configured storage driver
  seed    - Ensure the seed user exists
  smoke   - Run the API smoke scenarios against a running server`,
		SilenceUsage: true,
	}

	root.AddCommand(newMigrateCmd(), newSeedCmd(), newSmokeCmd())
	return root
}

// loadConfig đọc .env (nếu có) rồi environment variables
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.App.Environment)
	return cfg, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
