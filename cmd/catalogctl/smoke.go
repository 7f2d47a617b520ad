package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"book-catalog/internal/harness/smoke"
)

func newSmokeCmd() *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Run the API smoke scenarios against a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			report, err := smoke.Run(ctx, baseURL, smoke.DefaultScenarios())
			if err != nil {
				return err
			}

			report.Write(cmd.OutOrStdout())
			if n := report.Failed(); n > 0 {
				return fmt.Errorf("%d smoke scenario(s) failed", n)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:5000", "catalog base URL")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout")
	return cmd
}
