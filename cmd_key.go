package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"englishhero/config"
)

// keyCmd manages API keys in the credential store
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage stored API keys",
	Long: `Stores API keys in the credential store configured under [security].

Keys in ENGLISHHERO_API_KEY or the vendor variables (GEMINI_API_KEY,
OPENAI_API_KEY, ...) take precedence over stored keys.

Available subcommands:
  set    - Store a key, read from stdin
  delete - Remove a stored key
  list   - List providers that have a stored key`,
}

var keySetCmd = &cobra.Command{
	Use:   "set [provider]",
	Short: "Store an API key read from stdin",
	Long: `Reads one line from stdin and stores it as the API key for provider,
or for the configured provider when none is given.

Example:
  echo "$KEY" | englishhero key set gemini`,
	Args: cobra.MaximumNArgs(1),
	RunE: runKeySet,
}

var keyDeleteCmd = &cobra.Command{
	Use:   "delete [provider]",
	Short: "Remove a stored API key",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runKeyDelete,
}

var keyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List providers with a stored API key",
	Args:  cobra.NoArgs,
	RunE:  runKeyList,
}

func init() {
	keyCmd.AddCommand(keySetCmd, keyDeleteCmd, keyListCmd)
}

// keyTarget returns the credential ID named by args, or the configured one.
func keyTarget(cfg *config.Config, args []string) string {
	if len(args) > 0 {
		return config.CredentialID(args[0])
	}
	return config.CredentialID(cfg.Provider)
}

func runKeySet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	id := keyTarget(cfg, args)

	fmt.Fprintf(cmd.ErrOrStderr(), "API key for %s: ", id)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	key := strings.TrimSpace(line)
	if key == "" {
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
		return fmt.Errorf("empty key")
	}

	store, err := cfg.OpenCredentialStore()
	if err != nil {
		return err
	}
	store.Set(id, key)
	if err := store.Save(cfg.DataDir()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Stored key for %s\n", id)
	return nil
}

func runKeyDelete(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	id := keyTarget(cfg, args)

	store, err := cfg.OpenCredentialStore()
	if err != nil {
		return err
	}
	store.Delete(id)
	if err := store.Save(cfg.DataDir()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed key for %s\n", id)
	return nil
}

func runKeyList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := cfg.OpenCredentialStore()
	if err != nil {
		return err
	}
	for _, id := range store.IDs() {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}
