package model

import (
	"context"
	"io"

	"catui/classify"
	"catui/config"
)

// Analyzer is the outbound boundary to the classification service.
// classify.Client implements it; tests substitute a mock.
type Analyzer interface {
	Analyze(ctx context.Context, text string) ([]classify.Category, error)
	Upload(ctx context.Context, fileName string, file io.Reader) ([]classify.Category, error)
}

// Model holds the core application data and business logic state
type Model struct {
	// Core dependencies
	Config     *config.Config
	Classifier Analyzer

	// Application data
	Conversation *Conversation

	// Runtime state (not UI)
	InFlight    bool // at most one outbound call at a time
	PendingFile string
	Quitting    bool

	// Application metadata
	Version string
	License string
}

// NewModel creates a new Model with the given configuration
func NewModel(cfg *config.Config, version, license string) *Model {
	client, err := classify.NewClient(cfg.ServiceURL)
	if err != nil {
		// Don't panic - the user gets an error bubble on first submit
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Model] classify client creation failed: %v (running disconnected)", err)
		}
		client = nil
	}

	m := &Model{
		Config:       cfg,
		Conversation: NewConversation(),
		InFlight:     false,
		Version:      version,
		License:      license,
	}
	if client != nil {
		m.Classifier = client
	}

	return m
}

// AttachFile records a single pending document selection, replacing any
// previous one.
func (m *Model) AttachFile(path string) {
	m.PendingFile = path
}

// ClearFile drops the pending document selection.
func (m *Model) ClearFile() {
	m.PendingFile = ""
}
