package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func readyAppView(t *testing.T) AppView {
	t.Helper()

	a := NewAppView(testConfig(), "test", "Apache-2.0")
	m, _ := a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m.(AppView)
}

func TestEnterSubmitsAndClearsInput(t *testing.T) {
	a := readyAppView(t)
	a.textarea.SetValue("hello")

	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = m.(AppView)

	if cmd == nil {
		t.Fatal("Enter with text should fire a command")
	}
	if !a.dataModel.InFlight {
		t.Error("submission should mark the model in flight")
	}
	if a.textarea.Value() != "" {
		t.Errorf("textarea should be cleared, has %q", a.textarea.Value())
	}
	if got := a.dataModel.Conversation.Len(); got != 2 {
		t.Errorf("conversation length = %d, want user message plus placeholder", got)
	}
}

func TestEnterWithEmptyInputIsNoop(t *testing.T) {
	a := readyAppView(t)

	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = m.(AppView)

	if cmd != nil {
		t.Error("Enter with no input should not fire a command")
	}
	if a.dataModel.Conversation.Len() != 0 {
		t.Error("no messages should be appended")
	}
}

func TestEnterWithAttachmentKeepsTypedText(t *testing.T) {
	a := readyAppView(t)
	a.dataModel.AttachFile("/tmp/report.txt")
	a.textarea.SetValue("notes for later")

	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = m.(AppView)

	if cmd == nil {
		t.Fatal("Enter with attachment should fire a command")
	}
	if a.textarea.Value() != "notes for later" {
		t.Errorf("typed text should survive a document send, has %q", a.textarea.Value())
	}
	if a.dataModel.PendingFile != "" {
		t.Error("attachment should be consumed by the send")
	}
}

func TestAnalysisCompleteSettlesPlaceholder(t *testing.T) {
	a := readyAppView(t)
	a.textarea.SetValue("hello")

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = m.(AppView)

	messages := a.dataModel.Conversation.Messages()
	replyID := messages[1].ID

	m, _ = a.Update(analysisCompleteMsg{ID: replyID, Categories: []Category{{Name: "Care", Probability: 72.5}}})
	a = m.(AppView)

	if a.dataModel.InFlight {
		t.Error("settlement should release the in-flight flag")
	}
	reply, ok := a.dataModel.Conversation.Get(replyID)
	if !ok {
		t.Fatal("reply disappeared")
	}
	if reply.IsLoading {
		t.Error("reply should be settled")
	}
	if len(reply.Categories) != 1 || reply.Categories[0].Name != "Care" {
		t.Errorf("reply categories = %v", reply.Categories)
	}
}

func TestAnalysisErrorSettlesPlaceholder(t *testing.T) {
	a := readyAppView(t)
	a.textarea.SetValue("hello")

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = m.(AppView)

	replyID := a.dataModel.Conversation.Messages()[1].ID

	m, _ = a.Update(analysisErrorMsg{ID: replyID, Err: "no response from the classification service, check connectivity"})
	a = m.(AppView)

	if a.dataModel.InFlight {
		t.Error("settlement should release the in-flight flag")
	}
	reply, _ := a.dataModel.Conversation.Get(replyID)
	if reply.Err == "" {
		t.Error("reply should carry the failure text")
	}

	// A new submission is possible after the error
	a.textarea.SetValue("again")
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("a failed exchange should not block the next one")
	}
}

func TestAltUClearsAttachment(t *testing.T) {
	a := readyAppView(t)
	a.dataModel.AttachFile("/tmp/report.txt")

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}, Alt: true})
	a = m.(AppView)

	if a.dataModel.PendingFile != "" {
		t.Error("Alt+U should clear the pending attachment")
	}
}

func TestPingFailureSetsNotice(t *testing.T) {
	a := readyAppView(t)

	m, _ := a.Update(pingResultMsg{Err: errNotReachable{}})
	a = m.(AppView)

	if a.serviceNotice == "" {
		t.Error("failed ping should surface a notice")
	}

	m, _ = a.Update(pingResultMsg{Err: nil})
	a = m.(AppView)
	if a.serviceNotice != "" {
		t.Error("successful ping should clear the notice")
	}
}

type errNotReachable struct{}

func (errNotReachable) Error() string { return "connection refused" }
