package classify

import "fmt"

// Kind sorts a failed call into the four buckets the UI reports.
type Kind int

const (
	// KindServerRejected: the service answered with a non-success status.
	KindServerRejected Kind = iota
	// KindUnreachable: the call was sent but no response arrived
	// (network down, connection refused, deadline exceeded).
	KindUnreachable
	// KindRequestFailed: the request could not even be built or
	// dispatched (bad input, unreadable file).
	KindRequestFailed
	// KindUnknown: anything else, including an undecodable success body.
	KindUnknown
)

// Error is the single error type every Client call returns. Exactly one
// exchange maps to at most one Error; the Kind decides the user-visible
// text via UserMessage.
type Error struct {
	Kind       Kind
	StatusCode int    // set for KindServerRejected
	ServerMsg  string // service-supplied message, may be empty
	Err        error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	return e.UserMessage()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage renders the error the way it appears inside the failed
// reply bubble. Never empty.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindServerRejected:
		if e.ServerMsg != "" {
			return fmt.Sprintf("service rejected the request (status %d): %s", e.StatusCode, e.ServerMsg)
		}
		return fmt.Sprintf("service rejected the request (status %d)", e.StatusCode)
	case KindUnreachable:
		return "no response from the classification service, check connectivity"
	case KindRequestFailed:
		if e.Err != nil {
			return fmt.Sprintf("could not send request: %v", e.Err)
		}
		return "could not send request"
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "unknown error"
	}
}
