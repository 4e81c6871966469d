package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	historySearch string
	historyDelete string
)

// historyCmd lists, searches or deletes saved conversations
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, search or delete saved conversations",
	Long: `Lists saved conversations, newest first.

  --search QUERY  find messages containing QUERY in every conversation
  --delete ID     delete one conversation`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historySearch, "search", "", "text to search for")
	historyCmd.Flags().StringVar(&historyDelete, "delete", "", "ID of the conversation to delete")
	historyCmd.MarkFlagsMutuallyExclusive("search", "delete")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := openApp(cfg, false)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()

	if historyDelete != "" {
		if err := a.transcripts.Delete(historyDelete); err != nil {
			return fmt.Errorf("failed to delete %s: %w", historyDelete, err)
		}
		fmt.Fprintf(out, "Deleted %s\n", historyDelete)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	defer w.Flush()

	if historySearch != "" {
		matches, err := a.model.SearchIndex.Search(historySearch)
		if err != nil {
			return err
		}
		for _, m := range matches {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.TranscriptID, m.TranscriptName, m.Speaker, m.Preview)
		}
		return nil
	}

	list, err := a.transcripts.List()
	if err != nil {
		return err
	}
	for _, t := range list {
		fmt.Fprintf(w, "%s\t%s\t%d messages\t%s\n", t.ID, t.UpdatedAt.Format("2006-01-02 15:04"), t.MessageCount, t.Name)
	}
	return nil
}
