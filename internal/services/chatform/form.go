package chatform

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Er-rdhtiwari/ai-app/internal/services/chat/models"
	"github.com/rs/zerolog/log"
)

// EmptyInputMessage is shown when the input is empty or whitespace only.
const EmptyInputMessage = "Please enter a message"

var (
	// ErrEmptyInput is returned by Submit for empty or whitespace-only input.
	ErrEmptyInput = errors.New("empty input")
	// ErrSubmitInFlight is returned by Submit while another call is pending.
	ErrSubmitInFlight = errors.New("submission already in flight")

	errNoResponse = errors.New("no response received")
)

// Client performs the single network call behind a submission.
type Client interface {
	Chat(ctx context.Context, message string) (*models.ChatResponse, error)
}

// Observer is called with a copy of the state after every transition.
type Observer func(Snapshot)

type Option func(*Form)

// WithObserver registers fn to be called after each state transition.
func WithObserver(fn Observer) Option {
	return func(f *Form) {
		if fn != nil {
			f.observers = append(f.observers, fn)
		}
	}
}

// Form owns the state of one chat form session. It is safe for concurrent use;
// the network call runs without holding the lock so readers see Loading.
type Form struct {
	mu        sync.RWMutex
	state     Snapshot
	client    Client
	observers []Observer
}

// New creates a form in the Idle state.
func New(client Client, opts ...Option) *Form {
	return Restore(Snapshot{}, client, opts...)
}

// Restore creates a form from a previously captured snapshot.
func Restore(state Snapshot, client Client, opts ...Option) *Form {
	f := &Form{
		state:  state.clone(),
		client: client,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Snapshot returns a copy of the current state.
func (f *Form) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state.clone()
}

// SetInput updates the input text without submitting.
func (f *Form) SetInput(text string) {
	f.mu.Lock()
	f.state.InputText = text
	f.mu.Unlock()
}

// Reset clears the previous result. It is a no-op while a call is in flight.
func (f *Form) Reset() {
	f.mu.Lock()
	if f.state.Submitting {
		f.mu.Unlock()
		return
	}
	f.state.LastError = ""
	f.state.LastResponse = nil
	snap := f.state.clone()
	f.mu.Unlock()

	f.notify(snap)
}

// Submit validates input and, when it is non-empty, issues exactly one chat
// call. The form always ends with Submitting false and exactly one of
// LastError or LastResponse set. The returned error is the reason the
// submission failed, or nil on success.
func (f *Form) Submit(ctx context.Context, input string) error {
	f.mu.Lock()
	if f.state.Submitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}

	f.state.InputText = input

	if strings.TrimSpace(input) == "" {
		f.state.LastError = EmptyInputMessage
		f.state.LastResponse = nil
		snap := f.state.clone()
		f.mu.Unlock()

		log.Debug().Msg("Rejected empty chat form submission")
		f.notify(snap)
		return ErrEmptyInput
	}

	f.state.Submitting = true
	f.state.LastError = ""
	f.state.LastResponse = nil
	snap := f.state.clone()
	f.mu.Unlock()

	f.notify(snap)

	var (
		resp *models.ChatResponse
		err  error
	)
	defer func() {
		if err == nil && resp == nil {
			err = errNoResponse
		}

		f.mu.Lock()
		f.state.Submitting = false
		if err != nil {
			f.state.LastError = "Error: " + err.Error()
		} else {
			f.state.LastResponse = resp
		}
		settled := f.state.clone()
		f.mu.Unlock()

		f.notify(settled)
	}()

	resp, err = f.client.Chat(ctx, input)
	if err == nil && resp == nil {
		err = errNoResponse
	}
	if err != nil {
		log.Warn().Err(err).Int("message_length", len(input)).Msg("Chat form submission failed")
		return err
	}

	log.Info().Str("trace_id", resp.TraceID).Msg("Chat form submission succeeded")
	return nil
}

func (f *Form) notify(snap Snapshot) {
	for _, fn := range f.observers {
		fn(snap)
	}
}
