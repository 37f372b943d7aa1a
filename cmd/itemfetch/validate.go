package main

import (
	"fmt"

	"github.com/spf13/cobra"

	itemfetch "github.com/caldera-labs/itemfetch"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a config file (JSON/YAML)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := itemfetch.LoadConfig(args[0])
			if err != nil {
				return err
			}
			if err := itemfetch.ValidateConfig(*cfg); err != nil {
				return err
			}

			fmt.Println("✓ Config is valid")
			fmt.Printf("  Base path:   %s\n", cfg.BasePath)
			fmt.Printf("  Retry count: %d\n", cfg.RetryCount)
			fmt.Printf("  Caching:     %v\n", cfg.Cache.Enabled)
			if cfg.Breaker != nil {
				fmt.Printf("  Breaker:     opens after %d failures\n", cfg.Breaker.FailureThreshold)
			}
			if cfg.FetchLog != nil {
				fmt.Printf("  Fetch log:   %s\n", cfg.FetchLog.Driver)
			}
			return nil
		},
	}
}
