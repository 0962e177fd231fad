package wizard

import (
	"errors"
	"time"

	"outreach-backend/internal/llm"
	"outreach-backend/internal/outreach"
)

// Session is the single mutable owner of one wizard run. All step data is
// retained across back navigation; only a fresh resume upload resets the
// parse cycle.
type Session struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Step   Step   `json:"step"`

	University string `json:"university"`
	Department string `json:"department"`
	Purpose    string `json:"purpose"`

	ResumeID string           `json:"resumeId"`
	Facts    *llm.ResumeFacts `json:"facts,omitempty"`

	Contacts []llm.Contact   `json:"contacts"`
	Selected map[string]bool `json:"selected"`

	Drafts []outreach.Draft `json:"drafts"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SelectedContacts returns the selected contacts in original discovery
// order, which fixes both draft order and dispatch order.
func (s *Session) SelectedContacts() []llm.Contact {
	var out []llm.Contact
	for _, c := range s.Contacts {
		if s.Selected[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

var (
	ErrNotFound = errors.New("session not found")
	// ErrBusy means another action on this session is still in flight.
	ErrBusy = errors.New("session busy")
	// ErrValidation covers missing preconditions; surfaced inline, no AI
	// call is attempted.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidTransition covers step-graph violations.
	ErrInvalidTransition = errors.New("invalid step transition")
	// ErrNoEmail rejects selecting a contact without an email address.
	ErrNoEmail = errors.New("contact has no email address")
	// ErrAlreadySent rejects editing a dispatched draft.
	ErrAlreadySent = errors.New("draft already sent")
)
