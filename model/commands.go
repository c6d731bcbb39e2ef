package model

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"catui/classify"
	"catui/config"
)

// Submit turns the pending input into exactly one outbound request.
// It appends the user message and a loading reply placeholder, marks
// the model in flight, and returns the command that performs the call.
//
// Returns nil (a no-op) when both inputs are empty or a request is
// already in flight. When both text and a file are present the file
// wins; the text stays in the caller's input for the next submission.
func (m *Model) Submit(text, filePath string) tea.Cmd {
	text = strings.TrimSpace(text)
	if text == "" && filePath == "" {
		return nil
	}
	if m.InFlight {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Model] Submit blocked - request already in flight")
		}
		return nil
	}

	userID := uuid.NewString()
	replyID := uuid.NewString()
	now := time.Now()

	userMsg := Message{
		ID:        userID,
		IsUser:    true,
		Timestamp: now,
	}
	if filePath != "" {
		fileName := filepath.Base(filePath)
		userMsg.Text = fmt.Sprintf("📎 Sent document: %s", fileName)
		userMsg.FileName = fileName
	} else {
		userMsg.Text = text
	}

	if err := m.Conversation.Append(userMsg); err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Model] Submit: appending user message failed: %v", err)
		}
		return nil
	}

	m.PendingFile = ""
	m.InFlight = true

	if err := m.Conversation.Append(Message{
		ID:        replyID,
		IsLoading: true,
		Timestamp: now,
	}); err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Model] Submit: appending reply placeholder failed: %v", err)
		}
		m.InFlight = false
		return nil
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Model] Submit: user=%s reply=%s file=%q", userID, replyID, filePath)
	}

	if filePath != "" {
		return m.uploadCmd(replyID, filePath)
	}
	return m.analyzeCmd(replyID, text)
}

// ResolveAnalysis folds a settled call back into the conversation. The
// in-flight flag is released on every path, resolved or not.
func (m *Model) ResolveAnalysis(id string, res Resolution) {
	m.InFlight = false

	// A successful call with nothing to report still settles the reply.
	if res.Err == "" && res.Categories == nil {
		res.Categories = []classify.Category{}
	}

	if err := m.Conversation.UpdateByID(id, res); err != nil {
		// A reply can only settle once; a second settlement for the
		// same id is a bug worth a trace, not a crash.
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Model] ResolveAnalysis: %v", err)
		}
	}
}

func (m *Model) analyzeCmd(replyID, text string) tea.Cmd {
	classifier := m.Classifier
	timeout := m.Config.AnalyzeTimeout

	return func() tea.Msg {
		if classifier == nil {
			return AnalysisErrorMsg{ID: replyID, Err: "classification service is not configured"}
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		categories, err := classifier.Analyze(ctx, text)
		if err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[Model] analyze failed after %v: %v", time.Since(start), err)
			}
			return AnalysisErrorMsg{ID: replyID, Err: userMessage(err)}
		}

		if config.DebugLog != nil {
			config.DebugLog.Printf("[Model] analyze done after %v - %d categories", time.Since(start), len(categories))
		}
		return AnalysisCompleteMsg{ID: replyID, Categories: categories}
	}
}

func (m *Model) uploadCmd(replyID, filePath string) tea.Cmd {
	classifier := m.Classifier
	timeout := m.Config.UploadTimeout

	return func() tea.Msg {
		if classifier == nil {
			return AnalysisErrorMsg{ID: replyID, Err: "classification service is not configured"}
		}

		f, err := os.Open(filePath)
		if err != nil {
			cErr := &classify.Error{Kind: classify.KindRequestFailed, Err: err}
			return AnalysisErrorMsg{ID: replyID, Err: cErr.UserMessage()}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		categories, err := classifier.Upload(ctx, filepath.Base(filePath), f)
		if err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[Model] upload failed after %v: %v", time.Since(start), err)
			}
			return AnalysisErrorMsg{ID: replyID, Err: userMessage(err)}
		}

		if config.DebugLog != nil {
			config.DebugLog.Printf("[Model] upload done after %v - %d categories", time.Since(start), len(categories))
		}
		return AnalysisCompleteMsg{ID: replyID, Categories: categories}
	}
}

// PingService checks service reachability in the background at startup.
func (m *Model) PingService() tea.Cmd {
	client, ok := m.Classifier.(*classify.Client)
	if !ok {
		return nil
	}
	return func() tea.Msg {
		err := client.Ping(context.Background())
		return PingResultMsg{Err: err}
	}
}

// userMessage maps any settlement error to the text shown in the failed
// reply bubble.
func userMessage(err error) string {
	var cErr *classify.Error
	if errors.As(err, &cErr) {
		return cErr.UserMessage()
	}
	if err.Error() != "" {
		return err.Error()
	}
	return "unknown error"
}
