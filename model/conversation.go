package model

import (
	"fmt"

	"catui/classify"
)

// Resolution is the terminal content applied to a loading placeholder.
// Exactly one of Categories and Err must be set.
type Resolution struct {
	Categories []classify.Category
	Err        string
}

// Conversation is the insertion-ordered message store. Append-only,
// except that each loading placeholder may be resolved in place exactly
// once. No entry is ever removed or reordered.
type Conversation struct {
	messages []Message
	index    map[string]int // id → position, so resolving is a keyed lookup
}

func NewConversation() *Conversation {
	return &Conversation{
		index: make(map[string]int),
	}
}

func (c *Conversation) Append(msg Message) error {
	if msg.ID == "" {
		return fmt.Errorf("message has no id")
	}
	if _, exists := c.index[msg.ID]; exists {
		return fmt.Errorf("duplicate message id %s", msg.ID)
	}

	c.index[msg.ID] = len(c.messages)
	c.messages = append(c.messages, msg)
	return nil
}

// UpdateByID resolves the loading placeholder with the given id. The
// only legal transition is loading → terminal; anything else (unknown
// id, user message, already-resolved reply, ambiguous resolution) is an
// error and leaves the store untouched.
func (c *Conversation) UpdateByID(id string, res Resolution) error {
	pos, ok := c.index[id]
	if !ok {
		return fmt.Errorf("no message with id %s", id)
	}

	msg := &c.messages[pos]
	if msg.IsUser {
		return fmt.Errorf("message %s is a user message", id)
	}
	if !msg.IsLoading {
		return fmt.Errorf("message %s is already resolved", id)
	}

	hasCategories := res.Categories != nil
	hasErr := res.Err != ""
	if hasCategories == hasErr {
		return fmt.Errorf("resolution for %s must carry categories or an error, not both or neither", id)
	}

	msg.IsLoading = false
	msg.Categories = res.Categories
	msg.Err = res.Err
	return nil
}

// Messages returns a snapshot of the conversation in insertion order.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) Len() int {
	return len(c.messages)
}

// Get returns the message with the given id.
func (c *Conversation) Get(id string) (Message, bool) {
	pos, ok := c.index[id]
	if !ok {
		return Message{}, false
	}
	return c.messages[pos], true
}
