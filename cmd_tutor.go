package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"englishhero/curriculum"
	"englishhero/model"
	"englishhero/tutor"
)

// askCmd sends one message and prints the tutor's reply
var askCmd = &cobra.Command{
	Use:   "ask [text]",
	Short: "Send one message to the tutor",
	Long: `Sends one message to the tutor and prints the reply.

The exchange is added to the conversation the interactive interface resumes,
so earlier turns are part of the context.

Example:
  englishhero ask "I go to school yesterday"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

// practiceCmd opens a practice session on one curriculum topic
var practiceCmd = &cobra.Command{
	Use:   "practice [topic title]",
	Short: "Start practicing a curriculum topic with the tutor",
	Long: `Asks the tutor to open a practice session on a topic and prints its
first question. Titles match case-insensitively.

Example:
  englishhero practice "past simple tense"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPractice,
}

func runAsk(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if !tutor.ValidUserText(text) {
		return fmt.Errorf("nothing to send")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := openApp(cfg, true)
	if err != nil {
		return err
	}
	defer a.Close()

	reply := a.model.SendMessage(text)().(model.TutorReplyMsg)
	a.model.HandleReply(reply.Log, reply.Turn)
	fmt.Fprintln(cmd.OutOrStdout(), reply.Turn.Text)

	return a.save()
}

func runPractice(cmd *cobra.Command, args []string) error {
	topic, ok := curriculum.FindTopic(strings.Join(args, " "))
	if !ok {
		return fmt.Errorf("no topic named %q (see: englishhero curriculum)", strings.Join(args, " "))
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := openApp(cfg, true)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	started := a.model.StartPractice(topic.Title, topic.Desc)
	announcement, _ := a.model.Log.Last(model.SpeakerModel)
	fmt.Fprintln(out, announcement.Text)
	fmt.Fprintln(out)

	msg := started().(model.PracticeStartedMsg)
	a.model.HandleReply(msg.Log, msg.Turn)
	fmt.Fprintln(out, msg.Turn.Text)

	return a.save()
}
