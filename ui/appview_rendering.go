package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const categoryBarWidth = 24

func (a *AppView) updateViewportContent(gotoBottom bool) {
	messages := a.dataModel.Conversation.Messages()

	if len(messages) == 0 {
		a.viewport.SetContent("No submissions yet. Type text or attach a document to classify!")
		a.messageLineOffsets = nil
		return
	}

	var content strings.Builder
	a.messageLineOffsets = make([]int, len(messages))
	lineCount := 0

	for i, msg := range messages {
		a.messageLineOffsets[i] = lineCount

		timestamp := DimStyle.Render(msg.Timestamp.Format("[15:04]"))

		var block string
		switch {
		case msg.IsUser:
			block = formatUserMessage(timestamp, UserStyle.Render("You"), msg.Text)

		case msg.IsLoading:
			block = fmt.Sprintf("%s %s\n%s Analyzing...\n\n", timestamp, ReplyStyle.Render("Service"), a.loadingSpinner.View())

		case msg.Err != "":
			block = fmt.Sprintf("%s %s\n%s\n\n", timestamp, ReplyStyle.Render("Service"), ErrorStyle.Render("✗ "+msg.Err))

		default:
			block = fmt.Sprintf("%s %s\n%s\n\n", timestamp, ReplyStyle.Render("Service"), renderCategories(msg.Categories))
		}

		content.WriteString(block)
		lineCount += strings.Count(block, "\n")
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

func formatUserMessage(timestamp, role, content string) string {
	greenBold := "\x1b[32;1m"
	reset := "\x1b[0m"
	bar := greenBold + "┃" + reset

	lines := strings.Split(content, "\n")

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s %s %s\n", bar, timestamp, role))

	for _, line := range lines {
		result.WriteString(fmt.Sprintf("%s %s\n", bar, line))
	}

	result.WriteString("\n")

	return result.String()
}

// renderCategories lays the category probabilities out as aligned bars.
// Probabilities outside [0, 100] are clamped before the bar is sized so
// a misbehaving server can't overflow the row.
func renderCategories(categories []Category) string {
	if len(categories) == 0 {
		return DimStyle.Render("(no categories returned)")
	}

	nameWidth := 0
	for _, c := range categories {
		if w := runewidth.StringWidth(c.Name); w > nameWidth {
			nameWidth = w
		}
	}

	var b strings.Builder
	for i, c := range categories {
		p := c.Probability
		if p < 0 {
			p = 0
		}
		if p > 100 {
			p = 100
		}

		filled := int(p/100*categoryBarWidth + 0.5)
		bar := strings.Repeat("█", filled) + strings.Repeat("░", categoryBarWidth-filled)

		b.WriteString(fmt.Sprintf("%s  %5.1f%%  %s",
			runewidth.FillRight(c.Name, nameWidth),
			p,
			ReplyStyle.Render(bar),
		))
		if i < len(categories)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// plainResult renders a message as clipboard-friendly plain text.
func plainResult(msg Message) string {
	if msg.IsUser {
		return msg.Text
	}
	if msg.IsLoading {
		return "Analyzing..."
	}
	if msg.Err != "" {
		return "Error: " + msg.Err
	}

	var b strings.Builder
	for i, c := range msg.Categories {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%s: %.1f%%", c.Name, c.Probability))
	}
	return b.String()
}
