package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"englishhero/transport"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type TutorConfig struct {
	Provider       string   `toml:"provider"`
	Model          string   `toml:"model"`
	BaseURL        string   `toml:"base_url"`
	Persona        string   `toml:"persona,omitempty"`
	RequestTimeout Duration `toml:"request_timeout"`
}

type RetryConfig struct {
	MaxAttempts       int      `toml:"max_attempts"`
	InitialDelay      Duration `toml:"initial_delay"`
	BackoffMultiplier float64  `toml:"backoff_multiplier"`
}

type SecurityConfig struct {
	Method     SecurityMethod `toml:"method"`
	SSHKeyPath string         `toml:"ssh_key_path"`
}

type UserConfig struct {
	Tutor    TutorConfig    `toml:"tutor"`
	Retry    RetryConfig    `toml:"retry"`
	Security SecurityConfig `toml:"security"`
}

type Config struct {
	DataDirectory  string
	Provider       string
	Model          string
	BaseURL        string
	Persona        string
	RequestTimeout time.Duration
	Retry          RetryConfig
	Security       SecurityConfig

	// SSHPassphrase unlocks an encrypted SSH key. It is only ever set at
	// runtime, from a prompt or ENGLISHHERO_SSH_PASSPHRASE.
	SSHPassphrase string
}

// DebugLog is nil unless ENGLISHHERO_DEBUG is set.
var DebugLog *zerolog.Logger

// Logger returns the debug logger, or a no-op logger when debugging is off.
func Logger() zerolog.Logger {
	if DebugLog == nil {
		return zerolog.Nop()
	}
	return *DebugLog
}

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// RetryPolicy converts the [retry] section for the transport.
func (c *Config) RetryPolicy() transport.RetryPolicy {
	return transport.RetryPolicy{
		MaxAttempts:       c.Retry.MaxAttempts,
		InitialDelay:      c.Retry.InitialDelay.Duration,
		BackoffMultiplier: c.Retry.BackoffMultiplier,
	}
}

func (c *Config) applyUserConfig(userCfg *UserConfig) {
	c.Provider = userCfg.Tutor.Provider
	c.Model = userCfg.Tutor.Model
	c.BaseURL = userCfg.Tutor.BaseURL
	c.Persona = userCfg.Tutor.Persona
	c.RequestTimeout = userCfg.Tutor.RequestTimeout.Duration
	c.Retry = userCfg.Retry
	c.Security = userCfg.Security
	if c.Security.Method == "" {
		c.Security.Method = SecurityPlainText
	}
}

func (c *Config) applyEnvOverrides() {
	if provider := os.Getenv("ENGLISHHERO_PROVIDER"); provider != "" {
		c.Provider = provider
	}
	if model := os.Getenv("ENGLISHHERO_MODEL"); model != "" {
		c.Model = model
	}
	if baseURL := os.Getenv("ENGLISHHERO_BASE_URL"); baseURL != "" {
		c.BaseURL = baseURL
	}
}

func CheckDebug() bool {
	debug := os.Getenv("ENGLISHHERO_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	logPath := filepath.Join(dataDir, "debug.log")

	// Create debug log with secure permissions (0600 - may contain sensitive debug info)
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	logger := zerolog.New(f).With().Timestamp().Caller().Logger()
	DebugLog = &logger
	DebugLog.Info().Str("ENGLISHHERO_DEBUG", os.Getenv("ENGLISHHERO_DEBUG")).Str("path", logPath).Msg("debug logging started")
}

func Load() (*Config, error) {
	cfg := &Config{
		DataDirectory: GetDefaultDataDir(),
	}

	if dataDir := os.Getenv("ENGLISHHERO_DATA_DIR"); dataDir != "" {
		cfg.DataDirectory = dataDir
	} else {
		systemCfg, err := LoadSystemConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load system config: %w", err)
		}
		cfg.DataDirectory = systemCfg.DataDirectory
	}

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// Ensure data directory has correct permissions (fix if needed)
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	cfg.applyUserConfig(userCfg)
	cfg.applyEnvOverrides()

	if cfg.Security.Method == SecuritySSHKey && cfg.Security.SSHKeyPath == "" {
		if keys, err := FindSSHKeys(); err == nil && len(keys) > 0 {
			cfg.Security.SSHKeyPath = keys[0]
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the tutor cannot run with.
func (c *Config) Validate() error {
	switch c.Provider {
	case "gemini", "gemini-sdk", "genai", "openai", "openrouter", "anthropic", "claude", "ollama":
	default:
		return fmt.Errorf("unknown tutor provider %q", c.Provider)
	}
	if c.Retry.MaxAttempts < 0 {
		return fmt.Errorf("retry.max_attempts must not be negative, got %d", c.Retry.MaxAttempts)
	}
	if c.Retry.InitialDelay.Duration < 0 {
		return fmt.Errorf("retry.initial_delay must not be negative, got %s", c.Retry.InitialDelay)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("tutor.request_timeout must not be negative, got %s", c.RequestTimeout)
	}
	switch c.Security.Method {
	case SecurityPlainText:
	case SecuritySSHKey:
		if strings.TrimSpace(c.Security.SSHKeyPath) == "" {
			return fmt.Errorf("security.ssh_key_path is required for method %q", SecuritySSHKey)
		}
	default:
		return fmt.Errorf("unknown security method %q", c.Security.Method)
	}
	return nil
}
