package ui

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"catui/classify"
	"catui/config"
)

func TestRenderCategoriesBarWidths(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		wantFilled  int
	}{
		{"zero", 0, 0},
		{"full", 100, categoryBarWidth},
		{"half", 50, categoryBarWidth / 2},
		{"negative clamped", -10, 0},
		{"overflow clamped", 150, categoryBarWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderCategories([]Category{{Name: "Care", Probability: tt.probability}})

			filled := strings.Count(out, "█")
			if filled != tt.wantFilled {
				t.Errorf("filled cells = %d, want %d", filled, tt.wantFilled)
			}
			if total := filled + strings.Count(out, "░"); total != categoryBarWidth {
				t.Errorf("total bar cells = %d, want %d", total, categoryBarWidth)
			}
		})
	}
}

func TestRenderCategoriesShowsEveryCategory(t *testing.T) {
	out := renderCategories([]Category{
		{Name: "Care", Probability: 72.5},
		{Name: "Fairness", Probability: 27.5},
	})

	for _, want := range []string{"Care", "Fairness", "72.5%", "27.5%"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if lines := strings.Count(out, "\n") + 1; lines != 2 {
		t.Errorf("output has %d lines, want 2", lines)
	}
}

func TestRenderCategoriesEmpty(t *testing.T) {
	out := renderCategories(nil)
	if !strings.Contains(out, "no categories") {
		t.Errorf("empty result should say so, got %q", out)
	}
}

func TestFormatUserMessagePrefixesEveryLine(t *testing.T) {
	out := formatUserMessage("[12:00]", "You", "first line\nsecond line")

	// Header plus one bar per content line
	if bars := strings.Count(out, "┃"); bars != 3 {
		t.Errorf("bar count = %d, want 3", bars)
	}
	if !strings.Contains(out, "first line") || !strings.Contains(out, "second line") {
		t.Errorf("content lines missing:\n%s", out)
	}
}

func TestPlainResult(t *testing.T) {
	ts := time.Now()

	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{
			"user text",
			Message{ID: "1", IsUser: true, Text: "hello", Timestamp: ts},
			"hello",
		},
		{
			"failed reply",
			Message{ID: "2", Err: "no response from the classification service, check connectivity", Timestamp: ts},
			"Error: no response from the classification service, check connectivity",
		},
		{
			"categories",
			Message{ID: "3", Categories: []classify.Category{
				{Name: "Care", Probability: 72.5},
				{Name: "Loyalty", Probability: 27.5},
			}, Timestamp: ts},
			"Care: 72.5%\nLoyalty: 27.5%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := plainResult(tt.msg); got != tt.want {
				t.Errorf("plainResult = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSearchableTextCoversBothSides(t *testing.T) {
	user := Message{ID: "1", IsUser: true, Text: "classify this"}
	if got := searchableText(user); got != "classify this" {
		t.Errorf("user searchable text = %q", got)
	}

	reply := Message{ID: "2", Categories: []classify.Category{{Name: "Authority", Probability: 90}}}
	if got := searchableText(reply); !strings.Contains(got, "Authority") {
		t.Errorf("reply searchable text missing category name: %q", got)
	}
}

func TestPreviewTextTruncates(t *testing.T) {
	long := strings.Repeat("a", 200)
	got := previewText(long)
	if len(got) > 84 {
		t.Errorf("preview too long: %d bytes", len(got))
	}
	if !strings.HasSuffix(got, "…") {
		t.Error("truncated preview should end with ellipsis")
	}

	if got := previewText("line one\nline two"); got != "line one" {
		t.Errorf("preview should stop at first line, got %q", got)
	}

	multibyte := strings.Repeat("é", 200)
	got = previewText(multibyte)
	if !utf8.ValidString(got) {
		t.Errorf("truncated preview is not valid UTF-8: %q", got)
	}
	if utf8.RuneCountInString(got) != 81 {
		t.Errorf("expected 80 runes plus ellipsis, got %d", utf8.RuneCountInString(got))
	}
}

func TestWordWrap(t *testing.T) {
	out := wordWrap("one two three four five", 9)
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 9 {
			t.Errorf("line %q exceeds width", line)
		}
	}
	if strings.ReplaceAll(out, "\n", " ") != "one two three four five" {
		t.Errorf("wrap lost words: %q", out)
	}
}

func TestUpdateViewportContentTracksMessageOffsets(t *testing.T) {
	cfg := testConfig()
	a := NewAppView(cfg, "test", "Apache-2.0")
	a.width = 80
	a.height = 24
	a.ready = true

	conv := a.dataModel.Conversation
	base := time.Now()
	if err := conv.Append(Message{ID: "u1", IsUser: true, Text: "hello", Timestamp: base}); err != nil {
		t.Fatal(err)
	}
	if err := conv.Append(Message{ID: "r1", Categories: []classify.Category{{Name: "Care", Probability: 50}}, Timestamp: base}); err != nil {
		t.Fatal(err)
	}
	if err := conv.Append(Message{ID: "u2", IsUser: true, Text: "again", Timestamp: base}); err != nil {
		t.Fatal(err)
	}

	a.updateViewportContent(false)

	if len(a.messageLineOffsets) != 3 {
		t.Fatalf("offsets for %d messages, want 3", len(a.messageLineOffsets))
	}
	if a.messageLineOffsets[0] != 0 {
		t.Errorf("first message offset = %d, want 0", a.messageLineOffsets[0])
	}
	for i := 1; i < len(a.messageLineOffsets); i++ {
		if a.messageLineOffsets[i] <= a.messageLineOffsets[i-1] {
			t.Errorf("offsets not strictly increasing: %v", a.messageLineOffsets)
		}
	}
}

func testConfig() *config.Config {
	return &config.Config{
		ServiceURL:       "http://localhost:8000",
		AnalyzeTimeout:   time.Second,
		UploadTimeout:    time.Second,
		AllowedFileTypes: []string{".txt"},
	}
}
