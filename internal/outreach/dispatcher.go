package outreach

import (
	"context"
	"time"

	"github.com/google/uuid"

	"outreach-backend/internal/history"
)

// Launcher hands one composition URI to whatever opens it for the user.
// The HTTP handler collects URIs into the response; a desktop shell could
// open them directly instead.
type Launcher interface {
	Launch(ctx context.Context, uri string) error
}

// LauncherFunc adapts a function to the Launcher interface.
type LauncherFunc func(ctx context.Context, uri string) error

func (f LauncherFunc) Launch(ctx context.Context, uri string) error { return f(ctx, uri) }

// Dispatched reports one launched composition.
type Dispatched struct {
	ContactID string `json:"contactId"`
	Recipient string `json:"recipient"`
	MailtoURI string `json:"mailtoUri"`
}

// Dispatcher processes a draft list strictly sequentially, pausing Delay
// between items. The pause is throttling only, there to keep the host from
// blocking rapid-fire external window opens; it carries no correctness
// weight and sits between items, never after the last one.
type Dispatcher struct {
	History *history.Service
	Delay   time.Duration
}

// Dispatch walks drafts in list order. Already-sent drafts are skipped.
// Each unsent draft is launched, marked sent in place, and recorded; the
// history batch is persisted once at the end (and on early failure, for
// whatever was already launched). Returns the launched set.
func (d *Dispatcher) Dispatch(ctx context.Context, userID string, drafts []Draft, launch Launcher) ([]Dispatched, error) {
	var (
		launched []Dispatched
		records  []history.Record
	)

	flush := func() error {
		if d.History == nil || len(records) == 0 {
			return nil
		}
		return d.History.Append(ctx, userID, records)
	}

	first := true
	for i := range drafts {
		if drafts[i].Sent {
			continue
		}
		if !first {
			if err := d.pause(ctx); err != nil {
				_ = flush()
				return launched, err
			}
		}
		first = false

		uri := BuildMailtoURI(drafts[i].Recipient, drafts[i].Subject, drafts[i].Body)
		if err := launch.Launch(ctx, uri); err != nil {
			_ = flush()
			return launched, err
		}

		drafts[i].Sent = true
		launched = append(launched, Dispatched{
			ContactID: drafts[i].ContactID,
			Recipient: drafts[i].Recipient,
			MailtoURI: uri,
		})
		records = append(records, history.Record{
			ID:        uuid.NewString(),
			Recipient: drafts[i].Recipient,
			Subject:   drafts[i].Subject,
			Body:      drafts[i].Body,
			SentAt:    time.Now().UTC(),
		})
	}

	if err := flush(); err != nil {
		return launched, err
	}
	return launched, nil
}

func (d *Dispatcher) pause(ctx context.Context) error {
	if d.Delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d.Delay):
		return nil
	}
}
