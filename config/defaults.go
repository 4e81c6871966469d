package config

import "time"

const (
	DefaultProvider = "gemini"
	DefaultModel    = "gemini-2.5-flash-preview-09-2025"
)

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/englishhero",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Tutor: TutorConfig{
			Provider: DefaultProvider,
			Model:    DefaultModel,
		},
		Retry: RetryConfig{
			MaxAttempts:       6,
			InitialDelay:      Duration{time.Second},
			BackoffMultiplier: 2,
		},
		Security: SecurityConfig{
			Method: SecurityPlainText,
		},
	}
}

func GenerateSystemConfigTemplate() string {
	return `# EnglishHero System Configuration
# Location: ~/.config/englishhero/settings.toml
# This file uses TOML format: https://toml.io

# Directory where progress, transcripts and user config are stored
data_directory = "~/.local/share/englishhero"
`
}

func GenerateUserConfigTemplate() string {
	return `# EnglishHero User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io
#
# API keys never go in this file. Export ENGLISHHERO_API_KEY (or GEMINI_API_KEY,
# OPENAI_API_KEY, OPENROUTER_API_KEY, ANTHROPIC_API_KEY), or store one with
# "englishhero key set <provider>".

[tutor]
# gemini | gemini-sdk | openai | openrouter | anthropic | ollama
provider = "gemini"
model = "gemini-2.5-flash-preview-09-2025"

# Override the API root (optional)
base_url = ""

# Custom tutor persona (empty = built-in tutor for Thai beginners)
persona = ""

# Deadline for one tutor request including retries (0s = none)
request_timeout = "0s"

[retry]
# Total attempts for throttled (HTTP 429) or failed connections
max_attempts = 6
initial_delay = "1s"
backoff_multiplier = 2.0

[security]
# plaintext | ssh_key
method = "plaintext"
ssh_key_path = ""
`
}
