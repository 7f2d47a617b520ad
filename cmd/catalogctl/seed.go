package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"book-catalog/pkg/container"
)

func newSeedCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Ensure the seed user exists",
		Long: `Tạo user nếu chưa có. Mặc định dùng SEED_USERNAME/SEED_PASSWORD;
password được lưu theo PASSWORD_SCHEME.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if username != "" {
				cfg.Auth.SeedUsername = username
			}
			if password != "" {
				cfg.Auth.SeedPassword = password
			}

			// NewContainer migrate (nếu bật) và seed user
			c, err := container.NewContainer(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer c.Cleanup()

			fmt.Fprintf(cmd.OutOrStdout(), "user %q is ready\n", cfg.Auth.SeedUsername)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username to seed (default SEED_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "password to seed (default SEED_PASSWORD)")
	return cmd
}
