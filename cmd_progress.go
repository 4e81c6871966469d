package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"englishhero/curriculum"
)

var (
	toggleTopic   string
	resetProgress bool
)

// progressCmd shows or changes which topics are done
var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or change your course progress",
	Long: `Shows how much of the course is complete.

  --toggle TITLE  mark a topic done, or not done if it already is
  --reset         clear all progress`,
	Args: cobra.NoArgs,
	RunE: runProgress,
}

// curriculumCmd lists the course
var curriculumCmd = &cobra.Command{
	Use:   "curriculum",
	Short: "List every stage and topic",
	Args:  cobra.NoArgs,
	RunE:  runCurriculum,
}

func init() {
	progressCmd.Flags().StringVar(&toggleTopic, "toggle", "", "topic title to mark done or not done")
	progressCmd.Flags().BoolVar(&resetProgress, "reset", false, "clear all progress")
	progressCmd.MarkFlagsMutuallyExclusive("toggle", "reset")
}

func runProgress(cmd *cobra.Command, args []string) error {
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

	switch {
	case resetProgress:
		if err := a.progress.Reset(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Progress cleared.")
	case toggleTopic != "":
		topic, ok := curriculum.FindTopic(toggleTopic)
		if !ok {
			return fmt.Errorf("no topic named %q", toggleTopic)
		}
		done, err := a.progress.Toggle(topic.Title)
		if err != nil {
			return err
		}
		if done {
			fmt.Fprintf(out, "✓ %s\n", topic.Title)
		} else {
			fmt.Fprintf(out, "○ %s\n", topic.Title)
		}
	}

	total := curriculum.TotalTopics()
	completed := a.progress.Completed()
	fmt.Fprintf(out, "Progress: %d/%d topics (%d%%)\n", len(completed), total, a.progress.Percent(total))
	for _, title := range completed {
		fmt.Fprintf(out, "  ✓ %s\n", title)
	}
	return nil
}

func runCurriculum(cmd *cobra.Command, args []string) error {
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
	for _, stage := range curriculum.Stages() {
		fmt.Fprintf(out, "%s  %s\n", stage.Title, stage.Subtitle)
		fmt.Fprintf(out, "  %s\n", stage.Description)
		for _, t := range stage.Topics {
			mark := "○"
			if a.progress.IsComplete(t.Title) {
				mark = "✓"
			}
			fmt.Fprintf(out, "  %s %-28s %s\n", mark, t.Title, t.Desc)
		}
		fmt.Fprintln(out, strings.Repeat("-", 40))
	}
	return nil
}
