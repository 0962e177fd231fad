package llm

import (
	"context"
	"errors"
)

// Client abstracts the generative-AI provider behind the wizard's three
// operations. Implementations are stateless with respect to each other and
// never retry internally; retries are user re-invocations of the step.
type Client interface {
	ExtractResumeFacts(ctx context.Context, doc Document) (ResumeFacts, error)
	DiscoverContacts(ctx context.Context, input DiscoverInput) ([]Contact, error)
	DraftEmail(ctx context.Context, input DraftInput) (EmailDraft, error)
}

// Document is the uploaded resume attached to an extraction request.
type Document struct {
	FileName string
	MimeType string
	Data     []byte
	// Text is the locally-extracted plain text, used by providers that
	// cannot attach binary documents.
	Text string
}

// ResumeFacts is the structured summary extracted from a resume.
type ResumeFacts struct {
	Name      string   `json:"name"`
	FileType  string   `json:"fileType"`
	Skills    []string `json:"skills"`
	Education string   `json:"education"`
	Projects  []string `json:"projects"`
}

// Contact is one discovered faculty or lab contact. Email and the link
// fields may be empty when the model could not find them.
type Contact struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Email       string `json:"email"`
	Interests   string `json:"interests"`
	LabURL      string `json:"labUrl"`
	Publication string `json:"publication"`
	ProfileURL  string `json:"profileUrl"`
}

// DiscoverInput carries the inputs of a contact-discovery request.
type DiscoverInput struct {
	University string
	Department string
	Facts      ResumeFacts
}

// DraftInput carries the inputs of a single email-drafting request.
type DraftInput struct {
	Contact Contact
	Purpose string
	Facts   ResumeFacts
}

// EmailDraft is the subject/body pair produced by a drafting request.
// The caller attaches the recipient address.
type EmailDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM provider not configured")

// PlaceholderClient is used when no provider is configured.
type PlaceholderClient struct{}

func (PlaceholderClient) ExtractResumeFacts(ctx context.Context, doc Document) (ResumeFacts, error) {
	_ = ctx
	_ = doc
	return ResumeFacts{}, ErrNotConfigured
}

func (PlaceholderClient) DiscoverContacts(ctx context.Context, input DiscoverInput) ([]Contact, error) {
	_ = ctx
	_ = input
	return nil, ErrNotConfigured
}

func (PlaceholderClient) DraftEmail(ctx context.Context, input DraftInput) (EmailDraft, error) {
	_ = ctx
	_ = input
	return EmailDraft{}, ErrNotConfigured
}

var _ Client = PlaceholderClient{}
