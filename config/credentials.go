package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

// SecurityMethod defines the credential storage method
type SecurityMethod string

const (
	SecurityPlainText SecurityMethod = "plaintext"
	SecuritySSHKey    SecurityMethod = "ssh_key"
)

// ErrNoAPIKey is returned when no credential is configured for a provider.
var ErrNoAPIKey = errors.New("no API key configured")

// CredentialStore manages encrypted or plain-text API credentials
type CredentialStore struct {
	method      SecurityMethod
	credentials map[string]string // credential ID → API key
	sshKeyPath  string
	passphrase  string
	seal        *sealer
}

// NewCredentialStore creates a new credential store
func NewCredentialStore(method SecurityMethod, sshKeyPath string) *CredentialStore {
	return &CredentialStore{
		method:      method,
		credentials: make(map[string]string),
		sshKeyPath:  ExpandPath(sshKeyPath),
	}
}

// SetPassphrase sets the passphrase for decrypting the SSH key
func (c *CredentialStore) SetPassphrase(passphrase string) {
	c.passphrase = passphrase
	c.seal = nil
}

// Load loads credentials from disk based on the configured security method
func (c *CredentialStore) Load(dataDir string) error {
	var (
		creds map[string]string
		err   error
	)
	switch c.method {
	case SecurityPlainText:
		creds, err = loadPlainText(dataDir)
	case SecuritySSHKey:
		creds, err = c.loadSSHEncrypted(dataDir)
	default:
		return fmt.Errorf("unknown security method: %s", c.method)
	}
	if err != nil {
		return err
	}
	if creds == nil {
		creds = make(map[string]string)
	}
	c.credentials = creds
	return nil
}

// Save saves credentials to disk based on the configured security method
func (c *CredentialStore) Save(dataDir string) error {
	switch c.method {
	case SecurityPlainText:
		return savePlainText(dataDir, c.credentials)
	case SecuritySSHKey:
		return c.saveSSHEncrypted(dataDir)
	default:
		return fmt.Errorf("unknown security method: %s", c.method)
	}
}

// Get retrieves a credential
func (c *CredentialStore) Get(id string) string {
	return c.credentials[id]
}

// Set stores a credential
func (c *CredentialStore) Set(id string, apiKey string) {
	c.credentials[id] = apiKey
}

// Delete removes a credential
func (c *CredentialStore) Delete(id string) {
	delete(c.credentials, id)
}

// IDs lists stored credential IDs, sorted.
func (c *CredentialStore) IDs() []string {
	ids := make([]string, 0, len(c.credentials))
	for id := range c.credentials {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GetMethod returns the current security method
func (c *CredentialStore) GetMethod() SecurityMethod {
	return c.method
}

func credentialsPath(dataDir string) string {
	return filepath.Join(dataDir, "credentials.toml")
}

func encryptedCredentialsPath(dataDir string) string {
	return filepath.Join(dataDir, "credentials.enc")
}

// ===== Plain Text Storage =====

type credentialsFile struct {
	Credentials map[string]string `toml:"credentials"`
}

// loadPlainText loads credentials from plain text TOML file
func loadPlainText(dataDir string) (map[string]string, error) {
	path := credentialsPath(dataDir)
	if !FileExists(path) {
		return make(map[string]string), nil
	}

	var cf credentialsFile
	if _, err := toml.DecodeFile(path, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	return cf.Credentials, nil
}

// savePlainText saves credentials to plain text TOML file with 0600 permissions
func savePlainText(dataDir string, creds map[string]string) error {
	if err := writeTOML(credentialsPath(dataDir), credentialsFile{Credentials: creds}); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	return nil
}

// ===== SSH Key Encrypted Storage =====

func (c *CredentialStore) sealer() (*sealer, error) {
	if c.seal != nil {
		return c.seal, nil
	}
	seal, err := sealerFromSSHKey(c.sshKeyPath, c.passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize encryption: %w", err)
	}
	c.seal = seal
	return seal, nil
}

// loadSSHEncrypted loads and decrypts credentials using SSH key encryption
func (c *CredentialStore) loadSSHEncrypted(dataDir string) (map[string]string, error) {
	path := encryptedCredentialsPath(dataDir)
	if !FileExists(path) {
		return make(map[string]string), nil
	}

	seal, err := c.sealer()
	if err != nil {
		return nil, err
	}

	encryptedData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read encrypted credentials: %w", err)
	}

	decryptedData, err := seal.Open(encryptedData)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt credentials: %w", err)
	}

	var creds map[string]string
	if err := json.Unmarshal(decryptedData, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse decrypted credentials: %w", err)
	}
	return creds, nil
}

// saveSSHEncrypted encrypts and saves credentials using SSH key encryption
func (c *CredentialStore) saveSSHEncrypted(dataDir string) error {
	seal, err := c.sealer()
	if err != nil {
		return err
	}

	jsonData, err := json.Marshal(c.credentials)
	if err != nil {
		return fmt.Errorf("failed to serialize credentials: %w", err)
	}

	encryptedData, err := seal.Seal(jsonData)
	if err != nil {
		return fmt.Errorf("failed to encrypt credentials: %w", err)
	}

	if err := os.WriteFile(encryptedCredentialsPath(dataDir), encryptedData, 0600); err != nil {
		return fmt.Errorf("failed to write encrypted credentials: %w", err)
	}
	return nil
}

// ===== Resolution =====

// CredentialID maps a provider ID to the key it is stored under. Both Gemini
// backends share one key.
func CredentialID(provider string) string {
	switch provider {
	case "", "gemini", "gemini-sdk", "genai":
		return "gemini"
	case "claude":
		return "anthropic"
	default:
		return provider
	}
}

// providerKeyEnv lists the conventional per-vendor environment variables.
var providerKeyEnv = map[string]string{
	"gemini":     "GEMINI_API_KEY",
	"openai":     "OPENAI_API_KEY",
	"openrouter": "OPENROUTER_API_KEY",
	"anthropic":  "ANTHROPIC_API_KEY",
}

// OpenCredentialStore loads the store configured in [security]. The SSH key
// passphrase, if any, comes from SSHPassphrase or ENGLISHHERO_SSH_PASSPHRASE.
func (c *Config) OpenCredentialStore() (*CredentialStore, error) {
	store := NewCredentialStore(c.Security.Method, c.Security.SSHKeyPath)
	if c.SSHPassphrase != "" {
		store.SetPassphrase(c.SSHPassphrase)
	} else if pass := os.Getenv("ENGLISHHERO_SSH_PASSPHRASE"); pass != "" {
		store.SetPassphrase(pass)
	}
	if err := store.Load(c.DataDir()); err != nil {
		return nil, err
	}
	return store, nil
}

// APIKey resolves the credential for the configured provider at call time:
// ENGLISHHERO_API_KEY, then the vendor variable (e.g. GEMINI_API_KEY), then
// the credential store. It returns ErrNoAPIKey when none is set.
func (c *Config) APIKey() (string, error) {
	if key := os.Getenv("ENGLISHHERO_API_KEY"); key != "" {
		return key, nil
	}

	id := CredentialID(c.Provider)
	if env, ok := providerKeyEnv[id]; ok {
		if key := os.Getenv(env); key != "" {
			return key, nil
		}
	}

	store, err := c.OpenCredentialStore()
	if err != nil {
		return "", fmt.Errorf("failed to load credentials: %w", err)
	}
	if key := store.Get(id); key != "" {
		return key, nil
	}

	if env, ok := providerKeyEnv[id]; ok {
		return "", fmt.Errorf("%w for %s (set ENGLISHHERO_API_KEY or %s)", ErrNoAPIKey, id, env)
	}
	return "", fmt.Errorf("%w for %s (set ENGLISHHERO_API_KEY)", ErrNoAPIKey, id)
}

// NeedsPassphrase reports whether opening the credential store would need a
// passphrase nobody has supplied yet.
func (c *Config) NeedsPassphrase() bool {
	if c.Security.Method != SecuritySSHKey || c.SSHPassphrase != "" || os.Getenv("ENGLISHHERO_SSH_PASSPHRASE") != "" {
		return false
	}
	if !FileExists(encryptedCredentialsPath(c.DataDir())) {
		return false
	}
	encrypted, err := IsSSHKeyEncrypted(ExpandPath(c.Security.SSHKeyPath))
	return err == nil && encrypted
}
