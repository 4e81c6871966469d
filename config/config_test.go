package config

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

// isolate points HOME at a temp dir and clears every variable Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, name := range []string{
		"ENGLISHHERO_DATA_DIR", "ENGLISHHERO_PROVIDER", "ENGLISHHERO_MODEL",
		"ENGLISHHERO_BASE_URL", "ENGLISHHERO_DEBUG", "ENGLISHHERO_API_KEY",
		"ENGLISHHERO_SSH_PASSPHRASE", "GEMINI_API_KEY", "OPENAI_API_KEY",
		"OPENROUTER_API_KEY", "ANTHROPIC_API_KEY",
	} {
		t.Setenv(name, "")
	}
	return home
}

func TestLoadFirstRunWritesTemplates(t *testing.T) {
	home := isolate(t)
	dataDir := filepath.Join(home, "data")
	t.Setenv("ENGLISHHERO_DATA_DIR", dataDir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, dataDir, cfg.DataDir())
	assert.Equal(t, DefaultProvider, cfg.Provider)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, 6, cfg.Retry.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Retry.InitialDelay.Duration)
	assert.Equal(t, SecurityPlainText, cfg.Security.Method)

	info, err := os.Stat(UserConfigPath(dataDir))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	dirInfo, err := os.Stat(dataDir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), dirInfo.Mode().Perm())
}

func TestUserConfigTemplateParsesToDefaults(t *testing.T) {
	var parsed UserConfig
	_, err := toml.Decode(GenerateUserConfigTemplate(), &parsed)
	require.NoError(t, err)

	assert.Equal(t, *DefaultUserConfig(), parsed)
}

func TestLoadSystemSettings(t *testing.T) {
	home := isolate(t)
	require.NoError(t, SaveSystemConfig(&SystemConfig{DataDirectory: "~/hero"}))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "hero"), cfg.DataDir())
}

func TestLoadUserConfigAndEnvOverrides(t *testing.T) {
	home := isolate(t)
	dataDir := filepath.Join(home, "data")
	t.Setenv("ENGLISHHERO_DATA_DIR", dataDir)

	userCfg := DefaultUserConfig()
	userCfg.Tutor.Provider = "openai"
	userCfg.Tutor.Model = "gpt-4o-mini"
	userCfg.Tutor.RequestTimeout = Duration{90 * time.Second}
	userCfg.Retry = RetryConfig{MaxAttempts: 3, InitialDelay: Duration{250 * time.Millisecond}, BackoffMultiplier: 3}
	require.NoError(t, SaveUserConfig(userCfg, dataDir))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 90*time.Second, cfg.RequestTimeout)

	policy := cfg.RetryPolicy()
	assert.Equal(t, 3, policy.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, policy.InitialDelay)
	assert.Equal(t, 3.0, policy.BackoffMultiplier)

	t.Setenv("ENGLISHHERO_PROVIDER", "ollama")
	t.Setenv("ENGLISHHERO_MODEL", "llama3.1")
	t.Setenv("ENGLISHHERO_BASE_URL", "http://gpu-box:11434")

	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.Provider)
	assert.Equal(t, "llama3.1", cfg.Model)
	assert.Equal(t, "http://gpu-box:11434", cfg.BaseURL)
}

func TestLoadPartialUserConfigKeepsDefaults(t *testing.T) {
	home := isolate(t)
	dataDir := filepath.Join(home, "data")
	t.Setenv("ENGLISHHERO_DATA_DIR", dataDir)
	require.NoError(t, EnsureDir(dataDir))
	require.NoError(t, os.WriteFile(UserConfigPath(dataDir), []byte("[retry]\nmax_attempts = 2\n"), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Retry.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Retry.InitialDelay.Duration)
	assert.Equal(t, DefaultProvider, cfg.Provider)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Provider: "gemini", Security: SecurityConfig{Method: SecurityPlainText}}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"unknown provider", func(c *Config) { c.Provider = "bard" }, true},
		{"negative attempts", func(c *Config) { c.Retry.MaxAttempts = -1 }, true},
		{"zero attempts allowed", func(c *Config) { c.Retry.MaxAttempts = 0 }, false},
		{"negative delay", func(c *Config) { c.Retry.InitialDelay = Duration{-time.Second} }, true},
		{"negative timeout", func(c *Config) { c.RequestTimeout = -time.Second }, true},
		{"ssh without key", func(c *Config) { c.Security.Method = SecuritySSHKey }, true},
		{"ssh with key", func(c *Config) {
			c.Security = SecurityConfig{Method: SecuritySSHKey, SSHKeyPath: "~/.ssh/id_ed25519"}
		}, false},
		{"unknown security", func(c *Config) { c.Security.Method = "vault" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, 90*time.Second, d.Duration)

	require.NoError(t, d.UnmarshalText(nil))
	assert.Zero(t, d.Duration)

	assert.Error(t, d.UnmarshalText([]byte("soon")))

	text, err := Duration{500 * time.Millisecond}.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "500ms", string(text))
}

func TestAPIKeyResolutionOrder(t *testing.T) {
	home := isolate(t)
	cfg := &Config{
		DataDirectory: filepath.Join(home, "data"),
		Provider:      "gemini",
		Security:      SecurityConfig{Method: SecurityPlainText},
	}
	require.NoError(t, EnsureDir(cfg.DataDir()))

	_, err := cfg.APIKey()
	require.ErrorIs(t, err, ErrNoAPIKey)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")

	store := NewCredentialStore(SecurityPlainText, "")
	store.Set("gemini", "from-store")
	require.NoError(t, store.Save(cfg.DataDir()))

	key, err := cfg.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "from-store", key)

	t.Setenv("GEMINI_API_KEY", "from-vendor-env")
	key, err = cfg.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "from-vendor-env", key)

	t.Setenv("ENGLISHHERO_API_KEY", "from-app-env")
	key, err = cfg.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "from-app-env", key)
}

func TestAPIKeySharedAcrossGeminiBackends(t *testing.T) {
	isolate(t)
	t.Setenv("GEMINI_API_KEY", "g")

	cfg := &Config{DataDirectory: t.TempDir(), Provider: "gemini-sdk", Security: SecurityConfig{Method: SecurityPlainText}}
	key, err := cfg.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "g", key)
}

func TestCredentialID(t *testing.T) {
	assert.Equal(t, "gemini", CredentialID(""))
	assert.Equal(t, "gemini", CredentialID("gemini-sdk"))
	assert.Equal(t, "anthropic", CredentialID("claude"))
	assert.Equal(t, "openrouter", CredentialID("openrouter"))
}

func TestPlainTextCredentialStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewCredentialStore(SecurityPlainText, "")
	store.Set("openai", "sk-1")
	store.Set("anthropic", "sk-2")
	require.NoError(t, store.Save(dir))

	info, err := os.Stat(filepath.Join(dir, "credentials.toml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded := NewCredentialStore(SecurityPlainText, "")
	require.NoError(t, loaded.Load(dir))
	assert.Equal(t, "sk-1", loaded.Get("openai"))
	assert.Equal(t, []string{"anthropic", "openai"}, loaded.IDs())

	loaded.Delete("openai")
	assert.Empty(t, loaded.Get("openai"))
}

func writeTestSSHKey(t *testing.T, passphrase string) string {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	var block *pem.Block
	if passphrase == "" {
		block, err = ssh.MarshalPrivateKey(priv, "test")
	} else {
		block, err = ssh.MarshalPrivateKeyWithPassphrase(priv, "test", []byte(passphrase))
	}
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "id_ed25519")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0600))
	return path
}

func TestSSHEncryptedCredentialStoreRoundTrip(t *testing.T) {
	keyPath := writeTestSSHKey(t, "")
	dir := t.TempDir()

	store := NewCredentialStore(SecuritySSHKey, keyPath)
	store.Set("gemini", "AIza-secret")
	require.NoError(t, store.Save(dir))

	raw, err := os.ReadFile(filepath.Join(dir, "credentials.enc"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "AIza-secret")

	loaded := NewCredentialStore(SecuritySSHKey, keyPath)
	require.NoError(t, loaded.Load(dir))
	assert.Equal(t, "AIza-secret", loaded.Get("gemini"))
}

func TestSSHEncryptedKeyNeedsPassphrase(t *testing.T) {
	keyPath := writeTestSSHKey(t, "hunter2")

	encrypted, err := IsSSHKeyEncrypted(keyPath)
	require.NoError(t, err)
	assert.True(t, encrypted)

	store := NewCredentialStore(SecuritySSHKey, keyPath)
	store.Set("gemini", "k")
	assert.Error(t, store.Save(t.TempDir()))

	store.SetPassphrase("hunter2")
	assert.NoError(t, store.Save(t.TempDir()))
}

func TestSealerRejectsTampering(t *testing.T) {
	seal, err := newSealer(make([]byte, 32))
	require.NoError(t, err)

	sealed, err := seal.Seal([]byte("hello"))
	require.NoError(t, err)
	opened, err := seal.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(opened))

	sealed[len(sealed)-1] ^= 0xff
	_, err = seal.Open(sealed)
	assert.Error(t, err)

	_, err = seal.Open([]byte("short"))
	assert.Error(t, err)
}

func TestSSHKeyWrongPassphrase(t *testing.T) {
	keyPath := writeTestSSHKey(t, "hunter2")

	_, err := parseSSHKey(keyPath, "")
	assert.ErrorIs(t, err, ErrPassphraseRequired)

	_, err = parseSSHKey(keyPath, "wrong")
	assert.Error(t, err)

	_, err = parseSSHKey(keyPath, "hunter2")
	assert.NoError(t, err)
}

func TestExpandPath(t *testing.T) {
	home := isolate(t)
	assert.Equal(t, filepath.Join(home, "x", "y"), ExpandPath("~/x/y"))
	assert.Equal(t, "", ExpandPath(""))
}

func TestNeedsPassphrase(t *testing.T) {
	isolate(t)
	keyPath := writeTestSSHKey(t, "hunter2")
	cfg := &Config{
		DataDirectory: t.TempDir(),
		Provider:      "gemini",
		Security:      SecurityConfig{Method: SecuritySSHKey, SSHKeyPath: keyPath},
	}

	// Nothing saved yet, so nothing to unlock
	assert.False(t, cfg.NeedsPassphrase())

	store := NewCredentialStore(SecuritySSHKey, keyPath)
	store.SetPassphrase("hunter2")
	store.Set("gemini", "k")
	require.NoError(t, store.Save(cfg.DataDir()))

	assert.True(t, cfg.NeedsPassphrase())

	cfg.SSHPassphrase = "hunter2"
	assert.False(t, cfg.NeedsPassphrase())
	key, err := cfg.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "k", key)
}
