package main

import (
	"errors"
	"fmt"

	"englishhero/config"
	"englishhero/model"
	"englishhero/provider"
	"englishhero/storage"
	"englishhero/tutor"
)

// app holds everything one command needs to talk to the tutor and the
// local stores.
type app struct {
	cfg         *config.Config
	provider    model.Provider
	transcripts *storage.TranscriptStorage
	store       *storage.ProgressStore
	progress    *storage.Progress
	model       *model.Model
}

// openApp builds the stores and, when withTutor is set, the provider and
// tutor. Commands that only read local data skip the provider so they work
// without an API key.
func openApp(cfg *config.Config, withTutor bool) (*app, error) {
	a := &app{cfg: cfg}

	transcripts, err := storage.NewTranscriptStorage(cfg.DataDir())
	if err != nil {
		return nil, fmt.Errorf("failed to open transcripts: %w", err)
	}
	a.transcripts = transcripts

	store, err := storage.NewProgressStore(cfg.DataDir())
	if err != nil {
		return nil, fmt.Errorf("failed to open progress: %w", err)
	}
	store.Logger = config.Logger()
	a.store = store

	progress, err := storage.NewProgress(store)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	a.progress = progress

	modelName := cfg.Model
	if withTutor {
		p, err := provider.FromConfig(cfg)
		if err != nil {
			store.Close()
			return nil, err
		}
		a.provider = p
		modelName = p.GetModel()
	}

	t := tutor.New(a.provider, cfg.Persona)
	t.Logger = config.Logger()

	a.model = model.NewModel(cfg, t, modelName, transcripts, progress, transcripts.LoadCurrent(), Version)
	return a, nil
}

// save writes the conversation and records it as the one to resume.
func (a *app) save() error {
	cmd := a.model.SaveTranscript()
	if cmd == nil {
		return nil
	}
	msg, ok := cmd().(model.TranscriptSavedMsg)
	if !ok {
		return errors.New("unexpected save result")
	}
	a.model.HandleTranscriptSaved(msg)
	return msg.Err
}

func (a *app) Close() error {
	return a.store.Close()
}
