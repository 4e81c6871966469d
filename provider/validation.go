package provider

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"englishhero/config"
	"englishhero/model"
)

// PingTimeout bounds a connectivity check, retries included.
const PingTimeout = 30 * time.Second

// PingProviderMsg is sent when a provider ping completes
type PingProviderMsg struct {
	Model string
	Err   error
}

// Check pings p under PingTimeout.
func Check(ctx context.Context, p model.Provider) error {
	ctx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()

	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	return nil
}

// PingProvider checks the provider in the background so the TUI can show
// whether the tutor is reachable.
func PingProvider(p model.Provider) tea.Cmd {
	return func() tea.Msg {
		err := Check(context.Background(), p)

		if config.DebugLog != nil {
			if err != nil {
				config.DebugLog.Debug().Err(err).Str("model", p.GetModel()).Msg("provider ping failed")
			} else {
				config.DebugLog.Debug().Str("model", p.GetModel()).Msg("provider ping successful")
			}
		}

		return PingProviderMsg{Model: p.GetModel(), Err: err}
	}
}
