package model

import (
	"testing"
	"time"

	"catui/classify"
)

func TestConversationPreservesInsertionOrder(t *testing.T) {
	c := NewConversation()

	ids := []string{"a", "b", "c", "d"}
	for _, id := range ids {
		if err := c.Append(Message{ID: id, Text: id, IsUser: true, Timestamp: time.Now()}); err != nil {
			t.Fatalf("unexpected error appending %s: %v", id, err)
		}
	}

	msgs := c.Messages()
	if len(msgs) != len(ids) {
		t.Fatalf("expected %d messages, got %d", len(ids), len(msgs))
	}
	for i, id := range ids {
		if msgs[i].ID != id {
			t.Errorf("position %d: expected id %s, got %s", i, id, msgs[i].ID)
		}
	}
}

func TestConversationRejectsDuplicateAndEmptyIDs(t *testing.T) {
	c := NewConversation()

	if err := c.Append(Message{ID: "x", IsUser: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Append(Message{ID: "x", IsUser: true}); err == nil {
		t.Error("expected error on duplicate id, got nil")
	}
	if err := c.Append(Message{}); err == nil {
		t.Error("expected error on empty id, got nil")
	}
	if c.Len() != 1 {
		t.Errorf("expected length 1, got %d", c.Len())
	}
}

func TestUpdateByIDResolvesPlaceholderOnce(t *testing.T) {
	c := NewConversation()
	if err := c.Append(Message{ID: "reply", IsLoading: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := Resolution{Categories: []classify.Category{{Name: "Care", Probability: 72.5}}}
	if err := c.UpdateByID("reply", res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg, ok := c.Get("reply")
	if !ok {
		t.Fatal("message disappeared")
	}
	if msg.IsLoading {
		t.Error("message still loading after resolution")
	}
	if len(msg.Categories) != 1 || msg.Categories[0].Name != "Care" {
		t.Errorf("unexpected categories: %+v", msg.Categories)
	}
	if msg.Err != "" {
		t.Errorf("error set on successful resolution: %q", msg.Err)
	}

	// Second resolution must be rejected.
	if err := c.UpdateByID("reply", Resolution{Err: "late failure"}); err == nil {
		t.Error("expected error on second resolution, got nil")
	}
	msg, _ = c.Get("reply")
	if msg.Err != "" {
		t.Error("second resolution mutated a terminal message")
	}
}

func TestUpdateByIDIllegalTargets(t *testing.T) {
	c := NewConversation()
	c.Append(Message{ID: "user", IsUser: true, Text: "hello"})
	c.Append(Message{ID: "reply", IsLoading: true})

	tests := []struct {
		name string
		id   string
		res  Resolution
	}{
		{name: "unknown id", id: "nope", res: Resolution{Err: "x"}},
		{name: "user message", id: "user", res: Resolution{Err: "x"}},
		{name: "neither categories nor error", id: "reply", res: Resolution{}},
		{name: "both categories and error", id: "reply", res: Resolution{
			Categories: []classify.Category{{Name: "Care", Probability: 1}},
			Err:        "x",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.UpdateByID(tt.id, tt.res); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}

	// The placeholder must still be resolvable after the rejected updates.
	if err := c.UpdateByID("reply", Resolution{Err: "final"}); err != nil {
		t.Errorf("placeholder no longer resolvable: %v", err)
	}
}

func TestMessagesReturnsSnapshot(t *testing.T) {
	c := NewConversation()
	c.Append(Message{ID: "a", IsUser: true, Text: "original"})

	snapshot := c.Messages()
	snapshot[0].Text = "mutated"

	msg, _ := c.Get("a")
	if msg.Text != "original" {
		t.Error("mutating the snapshot changed the store")
	}
}
