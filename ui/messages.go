package ui

import (
	"englishhero/model"
	"englishhero/provider"
)

// Message type aliases - these are defined in the model package
type tutorReplyMsg = model.TutorReplyMsg
type practiceStartedMsg = model.PracticeStartedMsg
type transcriptSavedMsg = model.TranscriptSavedMsg
type transcriptsListMsg = model.TranscriptsListMsg
type transcriptLoadedMsg = model.TranscriptLoadedMsg
type transcriptDeletedMsg = model.TranscriptDeletedMsg
type searchResultsMsg = model.SearchResultsMsg
type progressToggledMsg = model.ProgressToggledMsg
type progressResetMsg = model.ProgressResetMsg
type flashTickMsg = model.FlashTickMsg
type pingProviderMsg = provider.PingProviderMsg

type screen int

const (
	screenCurriculum screen = iota
	screenLesson
	screenChat
	screenHistory
)
