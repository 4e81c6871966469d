package config

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ssh"
)

// keyDerivationMessage is signed to derive the AES key. Changing it makes
// existing credentials.enc files unreadable.
const keyDerivationMessage = "englishhero-encryption-key-derivation-v1"

// sshKeyNames are the keys FindSSHKeys looks for, most specific first. Only
// ed25519 and RSA sign deterministically, so only they give a stable key.
var sshKeyNames = []string{"englishhero_ed25519", "id_ed25519", "id_rsa"}

// ErrPassphraseRequired is returned when an SSH key is encrypted and no
// passphrase was supplied.
var ErrPassphraseRequired = errors.New("SSH key is encrypted - set ENGLISHHERO_SSH_PASSPHRASE")

// sealer encrypts secrets with AES-256-GCM. Sealed data is the nonce
// followed by the ciphertext and tag.
type sealer struct {
	aead cipher.AEAD
}

func newSealer(key []byte) (*sealer, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &sealer{aead: aead}, nil
}

// sealerFromSSHKey derives the AES key from a signature made with the
// private key at keyPath.
func sealerFromSSHKey(keyPath, passphrase string) (*sealer, error) {
	signer, err := parseSSHKey(keyPath, passphrase)
	if err != nil {
		return nil, err
	}

	sig, err := signer.Sign(rand.Reader, []byte(keyDerivationMessage))
	if err != nil {
		return nil, fmt.Errorf("failed to derive encryption key: %w", err)
	}

	if DebugLog != nil {
		DebugLog.Debug().Str("key", keyPath).Str("type", signer.PublicKey().Type()).Msg("derived credential encryption key")
	}

	sum := sha256.Sum256(sig.Blob)
	return newSealer(sum[:])
}

func (s *sealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (s *sealer) Open(sealed []byte) ([]byte, error) {
	n := s.aead.NonceSize()
	if len(sealed) < n {
		return nil, errors.New("ciphertext too short")
	}
	plaintext, err := s.aead.Open(nil, sealed[:n], sealed[n:], nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}
	return plaintext, nil
}

// parseSSHKey loads the private key at keyPath. passphrase is only used
// when the key is encrypted.
func parseSSHKey(keyPath, passphrase string) (ssh.Signer, error) {
	data, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read SSH key: %w", err)
	}

	signer, err := ssh.ParsePrivateKey(data)
	if err == nil {
		return signer, nil
	}

	var missing *ssh.PassphraseMissingError
	if !errors.As(err, &missing) {
		return nil, fmt.Errorf("invalid SSH key: %w", err)
	}
	if passphrase == "" {
		return nil, ErrPassphraseRequired
	}

	signer, err = ssh.ParsePrivateKeyWithPassphrase(data, []byte(passphrase))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SSH key (wrong passphrase?): %w", err)
	}
	return signer, nil
}

// IsSSHKeyEncrypted reports whether the key at keyPath needs a passphrase.
func IsSSHKeyEncrypted(keyPath string) (bool, error) {
	_, err := parseSSHKey(keyPath, "")
	switch {
	case errors.Is(err, ErrPassphraseRequired):
		return true, nil
	case err != nil:
		return false, err
	default:
		return false, nil
	}
}

// FindSSHKeys lists the private keys in ~/.ssh usable for credential
// encryption.
func FindSSHKeys() ([]string, error) {
	dir := filepath.Join(GetHomeDir(), ".ssh")
	var found []string
	for _, name := range sshKeyNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if bytes.Contains(data, []byte("PRIVATE KEY")) {
			found = append(found, path)
		}
	}
	return found, nil
}
