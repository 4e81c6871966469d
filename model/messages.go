package model

import (
	"englishhero/storage"
)

// TutorReplyMsg carries the tutor's answer to one user turn.
// Log is the conversation the request was sent from.
type TutorReplyMsg struct {
	Log  *ConversationLog
	Turn ChatTurn
}

// PracticeStartedMsg carries the tutor's opening question for a topic.
type PracticeStartedMsg struct {
	Log   *ConversationLog
	Title string
	Turn  ChatTurn
}

type TranscriptSavedMsg struct {
	Transcript *storage.Transcript
	Err        error
}

type TranscriptsListMsg struct {
	Transcripts []storage.TranscriptMetadata
	Err         error
}

type TranscriptLoadedMsg struct {
	Transcript *storage.Transcript
	Err        error
}

type TranscriptDeletedMsg struct {
	ID  string
	Err error
}

type SearchResultsMsg struct {
	Query   string
	Matches []storage.MessageMatch
	Err     error
}

type ProgressToggledMsg struct {
	Title string
	Done  bool
	Err   error
}

type ProgressResetMsg struct {
	Err error
}

type FlashTickMsg struct{}
