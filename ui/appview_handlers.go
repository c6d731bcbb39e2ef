package ui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"catui/config"
)

func (a AppView) handleDocumentPickerMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		a.documentPicker.Reset()
		return a, nil
	}

	// Update picker with the KeyMsg FIRST
	a.documentPicker.Picker, cmd = a.documentPicker.Picker.Update(msg)

	// Check if Path was set and it's a FILE (not directory)
	if a.documentPicker.Picker.Path != "" {
		// Verify it's actually a file, not a directory
		if info, err := os.Stat(a.documentPicker.Picker.Path); err == nil && !info.IsDir() {
			path := a.documentPicker.Picker.Path

			if config.DebugLog != nil {
				config.DebugLog.Printf("[UI] document selected: %s", path)
			}

			a.dataModel.AttachFile(path)
			a.documentPicker.Reset()
			return a, nil
		}
		// If it's a directory, clear Path so we don't trigger again
		a.documentPicker.Picker.Path = ""
	}

	return a, cmd
}

func (a AppView) handleMessageSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		a.showMessageSearch = false
		a.messageSearchInput.Blur()
		return a, nil

	case "alt+j", "down":
		if a.selectedSearchIdx < len(a.messageSearchResults)-1 {
			a.selectedSearchIdx++
			if a.selectedSearchIdx >= a.messageSearchScrollIdx+maxVisibleSearchResults(a.height) {
				a.messageSearchScrollIdx++
			}
		}
		return a, nil

	case "alt+k", "up":
		if a.selectedSearchIdx > 0 {
			a.selectedSearchIdx--
			if a.selectedSearchIdx < a.messageSearchScrollIdx {
				a.messageSearchScrollIdx--
			}
		}
		return a, nil

	case "enter":
		if len(a.messageSearchResults) == 0 {
			return a, nil
		}

		match := a.messageSearchResults[a.selectedSearchIdx]
		a.showMessageSearch = false
		a.messageSearchInput.Blur()

		// Jump the viewport to the matched message
		a.updateViewportContent(false)
		if match.Index < len(a.messageLineOffsets) {
			a.viewport.SetYOffset(a.messageLineOffsets[match.Index])
		}
		return a, nil
	}

	a.messageSearchInput, cmd = a.messageSearchInput.Update(msg)

	searchValue := a.messageSearchInput.Value()
	if searchValue == "" {
		a.messageSearchResults = []MessageMatch{}
		a.selectedSearchIdx = 0
		a.messageSearchScrollIdx = 0
		return a, cmd
	}

	messages := a.dataModel.Conversation.Messages()
	targets := make([]string, len(messages))
	for i, m := range messages {
		targets[i] = searchableText(m)
	}

	matches := fuzzy.Find(searchValue, targets)
	a.messageSearchResults = make([]MessageMatch, len(matches))
	for i, match := range matches {
		a.messageSearchResults[i] = MessageMatch{
			Index:     match.Index,
			IsUser:    messages[match.Index].IsUser,
			Preview:   previewText(targets[match.Index]),
			Timestamp: messages[match.Index].Timestamp,
		}
	}

	if a.selectedSearchIdx >= len(a.messageSearchResults) {
		a.selectedSearchIdx = 0
		a.messageSearchScrollIdx = 0
	}

	return a, cmd
}

// searchableText flattens a message for fuzzy matching.
func searchableText(m Message) string {
	if m.IsUser {
		return m.Text
	}
	return plainResult(m)
}

func previewText(s string) string {
	s = firstLine(s)
	const maxPreview = 80
	// Truncate on a rune boundary so multibyte text stays valid.
	runes := []rune(s)
	if len(runes) > maxPreview {
		return string(runes[:maxPreview]) + "…"
	}
	return s
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
