package provider

import (
	"net/http"

	"englishhero/config"
	"englishhero/model"
	"englishhero/transport"
)

// FromConfig builds the provider selected in the user config.
//
// It is the single entry point the CLI and TUI use. It wires:
//   - the retry transport, using the [retry] policy and the debug logger
//   - the API key, resolved now from env or the credential store (never
//     for Ollama, which is keyless)
//   - the provider ID to factory type mapping
func FromConfig(cfg *config.Config) (model.Provider, error) {
	providerType := MapProviderIDToType(cfg.Provider)

	apiKey := ""
	if RequiresAPIKey(providerType) {
		key, err := cfg.APIKey()
		if err != nil {
			return nil, err
		}
		apiKey = key
	}

	rt := transport.New(nil, cfg.RetryPolicy())
	rt.Logger = config.Logger()

	p, err := NewProvider(Config{
		Type:       providerType,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.Model,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Transport: rt},
	})
	if err != nil {
		return nil, err
	}

	if config.DebugLog != nil {
		config.DebugLog.Debug().
			Str("provider", cfg.Provider).
			Str("type", string(providerType)).
			Str("model", p.GetModel()).
			Msg("provider initialized")
	}

	return p, nil
}
