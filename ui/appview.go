package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"catui/config"
	appmodel "catui/model"
)

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model

	// UI Components
	viewport viewport.Model
	textarea textarea.Model

	// Window state
	width  int
	height int
	ready  bool

	showHelp  bool
	showAbout bool

	// Loading spinner (bubbles/spinner)
	loadingSpinner spinner.Model

	// Document attachment picker
	documentPicker FilePickerState

	// Message search
	showMessageSearch      bool
	messageSearchInput     textinput.Model
	messageSearchResults   []MessageMatch
	selectedSearchIdx      int
	messageSearchScrollIdx int

	// Set when the startup reachability check fails
	serviceNotice string

	// First viewport line of each message, rebuilt with the content.
	// Lets search jumps land on the right message.
	messageLineOffsets []int
}

func NewAppView(cfg *config.Config, version, license string) AppView {
	ta := textarea.New()
	ta.Placeholder = "Type text to classify or press Alt+O to attach a document..."
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Custom KeyMap: Alt+Enter for newline, Enter alone does nothing (handled separately)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	// Set dynamic prompt: "> " for first line, "| " for subsequent lines
	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	vp := viewport.New(0, 0)

	documentPicker := NewFilePickerState(FilePickerConfig{
		Title:          "Attach Document",
		AllowedTypes:   cfg.AllowedFileTypes,
		StartDirectory: "",
		ShowHidden:     false,
	})

	messageSearchInput := textinput.New()
	messageSearchInput.Prompt = "Search: "
	messageSearchInput.CharLimit = 100

	dataModel := appmodel.NewModel(cfg, version, license)

	return AppView{
		dataModel:          dataModel,
		textarea:           ta,
		viewport:           vp,
		ready:              false,
		showHelp:           false,
		showAbout:          false,
		documentPicker:     documentPicker,
		messageSearchInput: messageSearchInput,
	}
}

func (a AppView) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		a.dataModel.PingService(),
	)
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading CATUI..."
	}

	// Modal rendering order (top to bottom layers):
	// 1. Help (always on top - can peek while in other modals)
	// 2. Document picker
	// 3. Message search
	// 4. About

	if a.showHelp {
		return renderHelpModal(a.width, a.height)
	}

	if a.documentPicker.Active {
		return RenderFilePickerModal(a.documentPicker, a.width, a.height)
	}

	if a.showMessageSearch {
		return renderMessageSearch(a.messageSearchInput, a.messageSearchResults, a.selectedSearchIdx, a.messageSearchScrollIdx, a.width, a.height)
	}

	if a.showAbout {
		return renderAboutModal(a.width, a.height, a.dataModel.Version, a.dataModel.License)
	}

	// Title bar - "CATUI - service URL | 📎 pending file"
	catuiText := ReplyStyle.Render("CATUI")
	serviceText := TitleStyle.Render(fmt.Sprintf(" - %s", a.dataModel.Config.ServiceURL))

	attachText := ""
	if a.dataModel.PendingFile != "" {
		attachText = UserStyle.Render(fmt.Sprintf(" | 📎 %s", a.dataModel.PendingFile))
	}

	noticeText := ""
	if a.serviceNotice != "" {
		noticeText = ErrorStyle.Render(fmt.Sprintf(" | ⚠ %s", a.serviceNotice))
	}

	title := catuiText + serviceText + attachText + noticeText

	// Separator with bottom margin for header (empty line forces spacing)
	separator := ""

	// Viewport with messages
	viewportView := a.viewport.View()

	// Input area
	inputView := a.textarea.View()

	// Status bar with bold user green descriptions
	descStyle := lipgloss.NewStyle().Foreground(successColor).Bold(true)
	statusBar := fmt.Sprintf("Alt+Q %s  Alt+O %s  Alt+F %s  Alt+Enter %s  Enter %s  Alt+Y %s  Alt+H %s",
		descStyle.Render("Quit"),
		descStyle.Render("Attach"),
		descStyle.Render("Search"),
		descStyle.Render("New Line"),
		descStyle.Render("Send"),
		descStyle.Render("Copy"),
		descStyle.Render("Help"),
	)
	statusBar = StatusStyle.Render(statusBar)

	// Combine all parts
	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		separator,
		viewportView,
		inputView,
		statusBar,
	)
}

func (a *AppView) closeAllModals() {
	a.showHelp = false
	a.showAbout = false
	a.showMessageSearch = false
	a.documentPicker.Reset()

	if a.messageSearchInput.Focused() {
		a.messageSearchInput.Blur()
	}
}
