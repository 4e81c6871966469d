package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"englishhero/config"
	"englishhero/ui"
)

const (
	Version = "v0.01.00"
	License = "Apache-2.0"
)

var rootCmd = &cobra.Command{
	Use:   "englishhero",
	Short: "EnglishHero - Zero to Hero English for Thai beginners",
	Long: `EnglishHero is a terminal English course for Thai beginners.

It walks through a five-stage curriculum with short lessons and quizzes,
and an AI tutor you can chat with or practice a topic with.

Run without arguments to start the interactive interface.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func init() {
	rootCmd.AddCommand(
		askCmd,
		practiceCmd,
		progressCmd,
		curriculumCmd,
		historyCmd,
		checkCmd,
		keyCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and starts the debug log.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	config.InitDebugLog(cfg.DataDir())
	return cfg, nil
}

func runTUI() error {
	cfg, err := loadConfig()
	if err != nil {
		return showError("Configuration Error", err.Error())
	}

	if cfg.NeedsPassphrase() {
		p := tea.NewProgram(ui.NewPassphraseModal(cfg), tea.WithAltScreen())
		final, err := p.Run()
		if err != nil {
			return err
		}
		if pm, ok := final.(ui.PassphraseModal); !ok || !pm.Unlocked() {
			return nil
		}
	}

	a, err := openApp(cfg, true)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, config.ErrNoAPIKey) {
			msg += "\n\nStore one with: englishhero key set"
		}
		return showError("Tutor Unavailable", msg)
	}
	defer a.Close()

	p := tea.NewProgram(ui.NewAppView(a.model, a.provider), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interface: %w", err)
	}
	return nil
}

// showError blocks on an error screen until the user dismisses it.
func showError(title, message string) error {
	p := tea.NewProgram(ui.NewErrorModal(title, message), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("%s: %s", title, message)
	}
	return nil
}
