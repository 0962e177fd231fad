package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"outreach-backend/internal/llm"
)

const defaultModel = "gemini-2.5-flash"

// Client implements llm.Client using the Gemini API. The resume PDF is
// attached inline on extraction requests, so the model reads the document
// itself rather than a lossy text dump.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient constructs a Gemini-backed client.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	return &Client{client: gc, model: model}, nil
}

func (c *Client) ExtractResumeFacts(ctx context.Context, doc llm.Document) (llm.ResumeFacts, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(doc.Data, doc.MimeType),
		genai.NewPartFromText(llm.ExtractPrompt()),
	}
	raw, err := c.generate(ctx, []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)})
	if err != nil {
		return llm.ResumeFacts{}, err
	}

	facts, err := llm.TranslateFacts(raw)
	if err != nil {
		return llm.ResumeFacts{}, err
	}
	facts.FileType = doc.MimeType
	return facts, nil
}

func (c *Client) DiscoverContacts(ctx context.Context, input llm.DiscoverInput) ([]llm.Contact, error) {
	raw, err := c.generate(ctx, genai.Text(llm.DiscoverPrompt(input)))
	if err != nil {
		return nil, err
	}
	return llm.TranslateContacts(raw)
}

func (c *Client) DraftEmail(ctx context.Context, input llm.DraftInput) (llm.EmailDraft, error) {
	raw, err := c.generate(ctx, genai.Text(llm.DraftPrompt(input)))
	if err != nil {
		return llm.EmailDraft{}, err
	}
	return llm.TranslateDraft(raw)
}

func (c *Client) generate(ctx context.Context, contents []*genai.Content) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("gemini response empty content")
	}
	return text, nil
}

var _ llm.Client = (*Client)(nil)
