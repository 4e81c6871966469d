package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"englishhero/config"
)

// PassphraseModal asks for the SSH key passphrase before the tutor starts,
// so saved API keys can be decrypted.
type PassphraseModal struct {
	cfg       *config.Config
	input     textinput.Model
	err       string
	width     int
	height    int
	cancelled bool
	unlocked  bool
}

func NewPassphraseModal(cfg *config.Config) PassphraseModal {
	input := textinput.New()
	input.Placeholder = "Enter passphrase"
	input.Width = 50
	input.CharLimit = 200
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'
	input.Focus()

	return PassphraseModal{cfg: cfg, input: input}
}

func (m PassphraseModal) Init() tea.Cmd {
	return textinput.Blink
}

func (m PassphraseModal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			pass := m.input.Value()
			if pass == "" {
				m.err = "Passphrase cannot be empty"
				return m, nil
			}
			if err := unlockCredentials(m.cfg, pass); err != nil {
				if config.DebugLog != nil {
					config.DebugLog.Debug().Err(err).Msg("passphrase rejected")
				}
				m.err = "Incorrect passphrase. Please try again."
				m.input.SetValue("")
				return m, nil
			}
			m.unlocked = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// unlockCredentials keeps pass on cfg when it decrypts the credential store.
func unlockCredentials(cfg *config.Config, pass string) error {
	prev := cfg.SSHPassphrase
	cfg.SSHPassphrase = pass
	if _, err := cfg.OpenCredentialStore(); err != nil {
		cfg.SSHPassphrase = prev
		return err
	}
	return nil
}

func (m PassphraseModal) View() string {
	body := []string{
		"Your saved API keys are encrypted with an SSH key.",
		fmt.Sprintf("Key: %s", m.cfg.Security.SSHKeyPath),
		"",
		m.input.View(),
	}
	if m.err != "" {
		body = append(body, "", ErrorStyle.Render("⚠ "+m.err))
	}
	return renderModal("SSH Key Passphrase Required", accentColor, body,
		"Enter Continue  |  Esc Cancel", m.width, m.height)
}

// Unlocked reports whether the entered passphrase opened the credential store.
func (m PassphraseModal) Unlocked() bool {
	return m.unlocked && !m.cancelled
}
