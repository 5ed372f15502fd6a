package chatform

import (
	"github.com/Er-rdhtiwari/ai-app/internal/services/chat/models"
)

// DisplayState is the view a renderer should show for a snapshot.
type DisplayState int

const (
	// Idle means no call has been made or the previous result was cleared.
	Idle DisplayState = iota
	// Loading means a call is in flight.
	Loading
	// Settled means the last submission ended with exactly one of an error or a response.
	Settled
)

func (d DisplayState) String() string {
	switch d {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Settled:
		return "settled"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of the form state. LastError is empty and LastResponse
// nil when absent.
type Snapshot struct {
	InputText    string               `json:"input_text"`
	Submitting   bool                 `json:"submitting"`
	LastError    string               `json:"last_error,omitempty"`
	LastResponse *models.ChatResponse `json:"last_response,omitempty"`
}

// Display derives the display state.
func (s Snapshot) Display() DisplayState {
	switch {
	case s.Submitting:
		return Loading
	case s.LastError != "" || s.LastResponse != nil:
		return Settled
	default:
		return Idle
	}
}

// Failed reports whether the snapshot is settled on an error.
func (s Snapshot) Failed() bool {
	return !s.Submitting && s.LastError != ""
}

// Succeeded reports whether the snapshot is settled on a response.
func (s Snapshot) Succeeded() bool {
	return !s.Submitting && s.LastResponse != nil
}

func (s Snapshot) clone() Snapshot {
	if s.LastResponse != nil {
		resp := *s.LastResponse
		s.LastResponse = &resp
	}
	return s
}
