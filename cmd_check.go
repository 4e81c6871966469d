package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"englishhero/provider"
)

// checkCmd verifies the tutor is reachable with the configured credential
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the tutor is reachable",
	Long: `Pings the configured provider with the configured credential.

For the ollama provider it also lists the models pulled on the server.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := provider.FromConfig(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Provider: %s\nModel:    %s\n", cfg.Provider, p.GetModel())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if op, ok := p.(*provider.OllamaProvider); ok {
		models, err := op.ListModels(ctx)
		if err == nil {
			fmt.Fprintln(out, "Installed models:")
			for _, m := range models {
				fmt.Fprintf(out, "  %s (%.1f GB)\n", m.Name, float64(m.Size)/1e9)
			}
		}
	}

	if err := provider.Check(ctx, p); err != nil {
		return err
	}
	fmt.Fprintln(out, "✓ Tutor is reachable")
	return nil
}
