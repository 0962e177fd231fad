package outreach

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"outreach-backend/internal/llm"
)

// Draft is one generated email awaiting dispatch. Body is user-editable
// until Sent flips true; Sent never reverts.
type Draft struct {
	ContactID string `json:"contactId"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Sent      bool   `json:"sent"`
}

// Drafter fans one drafting request out per contact.
type Drafter struct {
	LLM llm.Client
}

// DraftAll issues every per-contact request concurrently and waits for all
// of them. The batch is all-or-nothing: any failure discards every result
// and reports a single error. Result order matches the contact order.
func (d *Drafter) DraftAll(ctx context.Context, contacts []llm.Contact, purpose string, facts llm.ResumeFacts) ([]Draft, error) {
	drafts := make([]Draft, len(contacts))

	p := pool.New().WithContext(ctx).WithCancelOnError()
	for i, contact := range contacts {
		p.Go(func(ctx context.Context) error {
			email, err := d.LLM.DraftEmail(ctx, llm.DraftInput{
				Contact: contact,
				Purpose: purpose,
				Facts:   facts,
			})
			if err != nil {
				return err
			}
			drafts[i] = Draft{
				ContactID: contact.ID,
				Recipient: contact.Email,
				Subject:   email.Subject,
				Body:      email.Body,
			}
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return drafts, nil
}
