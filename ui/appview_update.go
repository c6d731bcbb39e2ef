package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"catui/config"
	appmodel "catui/model"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	// Update spinner FIRST to handle TickMsg before anything else
	if a.dataModel.InFlight {
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		cmds = append(cmds, cmd)
		// Update viewport to show animated spinner
		a.updateViewportContent(true)
	}

	// Update file picker if active (needs to receive ALL message types EXCEPT KeyMsg)
	// KeyMsg is handled in handleDocumentPickerMode to check the selection first
	if a.documentPicker.Active {
		switch msg.(type) {
		case tea.KeyMsg:
			// Skip - handled in handleDocumentPickerMode
		default:
			// Forward non-KeyMsg (like readDirMsg)
			a.documentPicker.Picker, cmd = a.documentPicker.Picker.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		// Reserve space for title (1 line), separator (1 line), textarea (3 lines), and status bar (1 line)
		viewportHeight := a.height - 6
		a.viewport.Width = a.width
		a.viewport.Height = viewportHeight
		a.textarea.SetWidth(a.width)

		a.ready = true
		a.updateViewportContent(true)

		return a, nil

	case tea.KeyMsg:
		// PRIORITY 0: Always-global shortcuts (quit, help toggle)
		if msg.String() == "alt+q" {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[UI] Alt+Q pressed - quitting")
			}
			a.dataModel.Quitting = true
			return a, tea.Quit
		}

		// PRIORITY 1: Modal toggle shortcuts (close current modal, open new one)
		switch msg.String() {
		case "alt+h":
			a.showHelp = !a.showHelp
			return a, nil

		case "alt+o":
			wasOpen := a.documentPicker.Active
			a.closeAllModals()
			if !wasOpen {
				a.documentPicker.Activate()
				return a, a.documentPicker.Picker.Init()
			}
			return a, nil

		case "alt+f":
			wasOpen := a.showMessageSearch
			a.closeAllModals()
			a.showMessageSearch = !wasOpen
			if a.showMessageSearch {
				a.messageSearchInput.Focus()
				a.messageSearchInput.SetValue("")
				a.messageSearchResults = []MessageMatch{}
				a.selectedSearchIdx = 0
				a.messageSearchScrollIdx = 0
				return a, textinput.Blink
			}
			return a, nil

		case "alt+a":
			wasOpen := a.showAbout
			a.closeAllModals()
			a.showAbout = !wasOpen
			return a, nil
		}

		// PRIORITY 2: Modal-specific key handling (order matches View rendering)
		if a.showHelp {
			if msg.String() == "esc" {
				a.showHelp = false
			}
			return a, nil
		}

		if a.documentPicker.Active {
			return a.handleDocumentPickerMode(msg)
		}

		if a.showMessageSearch {
			return a.handleMessageSearchMode(msg)
		}

		if a.showAbout {
			if msg.String() == "esc" {
				a.showAbout = false
			}
			return a, nil
		}

		// PRIORITY 3: Tab handling (chat input)
		if msg.String() == "tab" {
			a.textarea.InsertString("   ")
			return a, nil
		}

		// Handle Enter for sending - DON'T let textarea process it
		// But allow Alt+Enter to pass through for newlines
		if msg.Type == tea.KeyEnter && !msg.Alt {
			hadFile := a.dataModel.PendingFile != ""

			sendCmd := a.dataModel.Submit(a.textarea.Value(), a.dataModel.PendingFile)
			if sendCmd == nil {
				// Empty input or a request already in flight
				return a, nil
			}

			// A document submission leaves typed text in the input for
			// the next send
			if !hadFile {
				a.textarea.Reset()
			}

			// Initialize and start spinner
			a.loadingSpinner = spinner.New()
			a.loadingSpinner.Spinner = spinner.Dot
			a.loadingSpinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("15")) // Bright white

			a.updateViewportContent(true)

			if config.DebugLog != nil {
				config.DebugLog.Printf("[UI] Enter pressed - firing submission Cmd")
			}

			return a, tea.Batch(
				sendCmd,
				a.loadingSpinner.Tick,
			)
		}

		switch msg.String() {
		case "alt+u":
			// Drop the pending document attachment
			a.dataModel.ClearFile()
			return a, nil

		case "alt+y":
			// Copy last settled result
			messages := a.dataModel.Conversation.Messages()
			for i := len(messages) - 1; i >= 0; i-- {
				if !messages[i].IsUser && messages[i].Terminal() {
					clipboard.WriteAll(plainResult(messages[i]))
					return a, nil
				}
			}
			return a, nil

		case "alt+c":
			// Copy the whole transcript
			var allText strings.Builder
			for _, m := range a.dataModel.Conversation.Messages() {
				role := "Service"
				if m.IsUser {
					role = "You"
				}
				allText.WriteString(fmt.Sprintf("[%s] %s:\n%s\n\n",
					m.Timestamp.Format("15:04"),
					role,
					plainResult(m)))
			}
			clipboard.WriteAll(allText.String())
			return a, nil

		case "alt+j", "alt+down":
			a.viewport.HalfPageDown()
			return a, nil

		case "alt+k", "alt+up":
			a.viewport.HalfPageUp()
			return a, nil

		case "alt+J", "pgdown":
			a.viewport.PageDown()
			return a, nil

		case "alt+K", "pgup":
			a.viewport.PageUp()
			return a, nil

		case "alt+g":
			a.viewport.GotoTop()
			return a, nil

		case "alt+G":
			a.viewport.GotoBottom()
			return a, nil
		}

	case analysisCompleteMsg:
		if config.DebugLog != nil {
			config.DebugLog.Printf("[UI] analysisCompleteMsg received - %d categories", len(msg.Categories))
		}
		a.dataModel.ResolveAnalysis(msg.ID, appmodel.Resolution{Categories: msg.Categories})
		a.updateViewportContent(true)
		return a, nil

	case analysisErrorMsg:
		if config.DebugLog != nil {
			config.DebugLog.Printf("[UI] analysisErrorMsg received: %s", msg.Err)
		}
		a.dataModel.ResolveAnalysis(msg.ID, appmodel.Resolution{Err: msg.Err})
		a.updateViewportContent(true)
		return a, nil

	case pingResultMsg:
		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[UI] startup ping failed: %v", msg.Err)
			}
			a.serviceNotice = "service unreachable"
		} else {
			a.serviceNotice = ""
		}
		return a, nil
	}

	// Pass remaining messages to textarea (typing, cursor blink)
	if !a.documentPicker.Active && !a.showMessageSearch {
		a.textarea, cmd = a.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}
