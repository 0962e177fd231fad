package wizard

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"outreach-backend/internal/llm"
	"outreach-backend/internal/outreach"
	"outreach-backend/internal/resumes"
	"outreach-backend/internal/shared/telemetry"
)

// Service owns all session mutation. Every action acquires the session's
// busy guard first, so a double-clicked button gets ErrBusy instead of a
// second in-flight AI call.
type Service struct {
	Repo       Repo
	Resumes    *resumes.Service
	LLM        llm.Client
	Drafter    *outreach.Drafter
	Dispatcher *outreach.Dispatcher
}

// Create starts a new session at the Input step.
func (s *Service) Create(ctx context.Context, userID string) (Session, error) {
	now := time.Now().UTC()
	sess := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Step:      StepInput,
		Contacts:  []llm.Contact{},
		Selected:  map[string]bool{},
		Drafts:    []outreach.Draft{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Get returns the current session state.
func (s *Service) Get(ctx context.Context, userID, sessionID string) (Session, error) {
	return s.Repo.Get(ctx, userID, sessionID)
}

// UploadResume stores a new resume and runs fact extraction. A fresh upload
// resets the parse cycle: facts, contacts, selection, and drafts are
// discarded and the session returns to Input. University, department, and
// purpose are kept for the user to reuse.
func (s *Service) UploadResume(ctx context.Context, userID, sessionID, fileName string, r io.Reader) (Session, error) {
	return s.withSession(ctx, userID, sessionID, func(sess *Session) error {
		res, data, text, err := s.Resumes.Upload(ctx, userID, fileName, r)
		if err != nil {
			return err
		}

		facts, err := s.LLM.ExtractResumeFacts(ctx, llm.Document{
			FileName: res.FileName,
			MimeType: res.MimeType,
			Data:     data,
			Text:     text,
		})
		if err != nil {
			return err
		}

		sess.ResumeID = res.ID
		sess.Facts = &facts
		sess.Contacts = []llm.Contact{}
		sess.Selected = map[string]bool{}
		sess.Drafts = []outreach.Draft{}
		sess.Step = StepInput
		return nil
	})
}

// Discover runs contact discovery and advances Input → Select. Preconditions
// are checked before any AI call.
func (s *Service) Discover(ctx context.Context, userID, sessionID, university, department string) (Session, error) {
	return s.withSession(ctx, userID, sessionID, func(sess *Session) error {
		if sess.Step != StepInput {
			return fmt.Errorf("%w: discovery runs from %s, session is at %s", ErrInvalidTransition, StepInput, sess.Step)
		}
		university = strings.TrimSpace(university)
		department = strings.TrimSpace(department)
		if sess.Facts == nil {
			return fmt.Errorf("%w: upload a resume first", ErrValidation)
		}
		if university == "" {
			return fmt.Errorf("%w: university is required", ErrValidation)
		}
		if department == "" {
			return fmt.Errorf("%w: department is required", ErrValidation)
		}

		contacts, err := s.LLM.DiscoverContacts(ctx, llm.DiscoverInput{
			University: university,
			Department: department,
			Facts:      *sess.Facts,
		})
		if err != nil {
			return err
		}
		for i := range contacts {
			contacts[i].ID = uuid.NewString()
		}

		sess.University = university
		sess.Department = department
		sess.Contacts = contacts
		sess.Selected = map[string]bool{}
		sess.Drafts = []outreach.Draft{}
		sess.Step = StepSelect

		telemetry.Info("wizard.discovered", map[string]any{
			"session_id": sess.ID,
			"contacts":   len(contacts),
		})
		return nil
	})
}

// ToggleSelect flips one contact in or out of the selection set. Contacts
// without an email address can never enter it.
func (s *Service) ToggleSelect(ctx context.Context, userID, sessionID, contactID string) (Session, error) {
	return s.withSession(ctx, userID, sessionID, func(sess *Session) error {
		if sess.Step != StepSelect {
			return fmt.Errorf("%w: selection happens at %s, session is at %s", ErrInvalidTransition, StepSelect, sess.Step)
		}

		var contact *llm.Contact
		for i := range sess.Contacts {
			if sess.Contacts[i].ID == contactID {
				contact = &sess.Contacts[i]
				break
			}
		}
		if contact == nil {
			return fmt.Errorf("%w: unknown contact", ErrValidation)
		}

		if sess.Selected[contactID] {
			delete(sess.Selected, contactID)
			return nil
		}
		if strings.TrimSpace(contact.Email) == "" {
			return ErrNoEmail
		}
		sess.Selected[contactID] = true
		return nil
	})
}

// Draft generates one email per selected contact concurrently and advances
// Select → Review. The batch is all-or-nothing.
func (s *Service) Draft(ctx context.Context, userID, sessionID, purpose string) (Session, error) {
	return s.withSession(ctx, userID, sessionID, func(sess *Session) error {
		if sess.Step != StepSelect {
			return fmt.Errorf("%w: drafting runs from %s, session is at %s", ErrInvalidTransition, StepSelect, sess.Step)
		}
		purpose = strings.TrimSpace(purpose)
		if purpose == "" {
			return fmt.Errorf("%w: purpose is required", ErrValidation)
		}
		selected := sess.SelectedContacts()
		if len(selected) == 0 {
			return fmt.Errorf("%w: select at least one contact", ErrValidation)
		}

		drafts, err := s.Drafter.DraftAll(ctx, selected, purpose, *sess.Facts)
		if err != nil {
			return err
		}

		sess.Purpose = purpose
		sess.Drafts = drafts
		sess.Step = StepReview

		telemetry.Info("wizard.drafted", map[string]any{
			"session_id": sess.ID,
			"drafts":     len(drafts),
		})
		return nil
	})
}

// EditDraft replaces the body of a not-yet-sent draft.
func (s *Service) EditDraft(ctx context.Context, userID, sessionID, contactID, body string) (Session, error) {
	return s.withSession(ctx, userID, sessionID, func(sess *Session) error {
		if sess.Step != StepReview {
			return fmt.Errorf("%w: drafts are editable at %s, session is at %s", ErrInvalidTransition, StepReview, sess.Step)
		}
		if strings.TrimSpace(body) == "" {
			return fmt.Errorf("%w: body must not be empty", ErrValidation)
		}
		for i := range sess.Drafts {
			if sess.Drafts[i].ContactID == contactID {
				if sess.Drafts[i].Sent {
					return ErrAlreadySent
				}
				sess.Drafts[i].Body = body
				return nil
			}
		}
		return fmt.Errorf("%w: unknown draft", ErrValidation)
	})
}

// Dispatch sends every unsent draft through the dispatcher, in list order.
// Sent flags are persisted even when a later item fails, so a retry picks
// up where the batch stopped.
func (s *Service) Dispatch(ctx context.Context, userID, sessionID string, launch outreach.Launcher) (Session, []outreach.Dispatched, error) {
	sess, err := s.Repo.Acquire(ctx, userID, sessionID)
	if err != nil {
		return Session{}, nil, err
	}
	defer s.release(ctx, userID, sessionID)

	if sess.Step != StepReview {
		return Session{}, nil, fmt.Errorf("%w: dispatch runs from %s, session is at %s", ErrInvalidTransition, StepReview, sess.Step)
	}

	launched, dispatchErr := s.Dispatcher.Dispatch(ctx, userID, sess.Drafts, launch)

	sess.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, sess); err != nil {
		return Session{}, nil, err
	}
	if dispatchErr != nil {
		return Session{}, nil, dispatchErr
	}

	telemetry.Info("wizard.dispatched", map[string]any{
		"session_id": sess.ID,
		"launched":   len(launched),
	})
	return sess, launched, nil
}

// GoBack moves the session one step back. No data is discarded.
func (s *Service) GoBack(ctx context.Context, userID, sessionID string) (Session, error) {
	return s.withSession(ctx, userID, sessionID, func(sess *Session) error {
		to, ok := Back(sess.Step)
		if !ok {
			return fmt.Errorf("%w: no step before %s", ErrInvalidTransition, sess.Step)
		}
		sess.Step = to
		return nil
	})
}

// withSession runs fn under the busy guard and persists the session when fn
// succeeds.
func (s *Service) withSession(ctx context.Context, userID, sessionID string, fn func(*Session) error) (Session, error) {
	sess, err := s.Repo.Acquire(ctx, userID, sessionID)
	if err != nil {
		return Session{}, err
	}
	defer s.release(ctx, userID, sessionID)

	if err := fn(&sess); err != nil {
		return Session{}, err
	}

	sess.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// release runs even when the request context is already canceled; a leaked
// busy flag would wedge the session until its TTL.
func (s *Service) release(ctx context.Context, userID, sessionID string) {
	if err := s.Repo.Release(context.WithoutCancel(ctx), userID, sessionID); err != nil {
		telemetry.Error("wizard.release_failed", map[string]any{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
}
