package outreach

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"outreach-backend/internal/llm"
)

type stubDraftClient struct {
	llm.PlaceholderClient
	draft func(ctx context.Context, in llm.DraftInput) (llm.EmailDraft, error)
}

func (s *stubDraftClient) DraftEmail(ctx context.Context, in llm.DraftInput) (llm.EmailDraft, error) {
	return s.draft(ctx, in)
}

func draftContacts() []llm.Contact {
	return []llm.Contact{
		{ID: "c1", Name: "One", Email: "one@uni.edu"},
		{ID: "c2", Name: "Two", Email: "two@uni.edu"},
		{ID: "c3", Name: "Three", Email: "three@uni.edu"},
	}
}

func TestDraftAllPreservesContactOrder(t *testing.T) {
	d := &Drafter{LLM: &stubDraftClient{
		draft: func(ctx context.Context, in llm.DraftInput) (llm.EmailDraft, error) {
			return llm.EmailDraft{Subject: "To " + in.Contact.Name, Body: "b"}, nil
		},
	}}

	drafts, err := d.DraftAll(context.Background(), draftContacts(), "purpose", llm.ResumeFacts{})
	if err != nil {
		t.Fatalf("draft all: %v", err)
	}
	if len(drafts) != 3 {
		t.Fatalf("drafts = %d, want 3", len(drafts))
	}
	for i, want := range []string{"c1", "c2", "c3"} {
		if drafts[i].ContactID != want {
			t.Fatalf("drafts[%d] = %s, want %s", i, drafts[i].ContactID, want)
		}
	}
	if drafts[0].Recipient != "one@uni.edu" || drafts[0].Subject != "To One" {
		t.Fatalf("draft fields wrong: %+v", drafts[0])
	}
}

func TestDraftAllIsAllOrNothing(t *testing.T) {
	wantErr := errors.New("model overloaded")
	var calls atomic.Int32
	d := &Drafter{LLM: &stubDraftClient{
		draft: func(ctx context.Context, in llm.DraftInput) (llm.EmailDraft, error) {
			calls.Add(1)
			if in.Contact.ID == "c2" {
				return llm.EmailDraft{}, wantErr
			}
			return llm.EmailDraft{Subject: "s", Body: "b"}, nil
		},
	}}

	drafts, err := d.DraftAll(context.Background(), draftContacts(), "purpose", llm.ResumeFacts{})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	if drafts != nil {
		t.Fatalf("partial failure returned drafts: %+v", drafts)
	}
}

func TestDraftAllEmptySelection(t *testing.T) {
	d := &Drafter{LLM: &stubDraftClient{
		draft: func(ctx context.Context, in llm.DraftInput) (llm.EmailDraft, error) {
			t.Fatal("no request expected")
			return llm.EmailDraft{}, nil
		},
	}}
	drafts, err := d.DraftAll(context.Background(), nil, "purpose", llm.ResumeFacts{})
	if err != nil || len(drafts) != 0 {
		t.Fatalf("drafts = %v, err = %v", drafts, err)
	}
}
