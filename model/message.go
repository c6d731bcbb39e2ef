package model

import (
	"time"

	"catui/classify"
)

// Message is a single entry in the conversation. User messages are
// terminal from birth; service replies start as a loading placeholder
// and settle exactly once into categories or an error.
type Message struct {
	ID         string
	Text       string
	IsUser     bool
	IsLoading  bool
	Categories []classify.Category // set only on a successful reply
	Err        string              // set only on a failed reply
	FileName   string              // set when the submission was a file
	Timestamp  time.Time
}

// Terminal reports whether the message can no longer change.
func (m Message) Terminal() bool {
	return m.IsUser || !m.IsLoading
}
