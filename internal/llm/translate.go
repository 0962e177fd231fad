package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Model output is untrusted free text even when a structured schema was
// requested. Translation runs in two stages: slice out the first balanced
// JSON value, then parse and shape-check it. The two failure modes stay
// distinct so callers can tell a garbled reply from a well-formed one with
// missing fields.
var (
	// ErrParse means the extracted payload was not valid JSON.
	ErrParse = errors.New("response not parseable")
	// ErrSchema means the payload parsed but lacked required fields.
	ErrSchema = errors.New("response missing required fields")
)

const fieldNotFound = "Not found"

// ExtractJSON returns the first balanced JSON value buried in text: it
// locates the first opening brace or bracket and slices through the last
// matching closer. Markdown fences and surrounding commentary fall away as
// a side effect. If no bracket exists at all, the trimmed text is returned
// unchanged.
func ExtractJSON(text string) string {
	trimmed := strings.TrimSpace(text)

	openBrace := strings.Index(trimmed, "{")
	openBracket := strings.Index(trimmed, "[")

	open, closer := openBrace, "}"
	if openBrace < 0 || (openBracket >= 0 && openBracket < openBrace) {
		open, closer = openBracket, "]"
	}
	if open < 0 {
		return trimmed
	}

	end := strings.LastIndex(trimmed, closer)
	if end <= open {
		return trimmed
	}
	return trimmed[open : end+1]
}

// TranslateFacts parses a resume-extraction reply. Missing fields default
// rather than fail; only a payload that is not JSON at all is an error.
func TranslateFacts(raw string) (ResumeFacts, error) {
	payload := ExtractJSON(raw)

	var facts ResumeFacts
	if err := json.Unmarshal([]byte(payload), &facts); err != nil {
		return ResumeFacts{}, fmt.Errorf("%w: resume facts: %v", ErrParse, err)
	}

	if strings.TrimSpace(facts.Name) == "" {
		facts.Name = fieldNotFound
	}
	if strings.TrimSpace(facts.Education) == "" {
		facts.Education = fieldNotFound
	}
	if facts.Skills == nil {
		facts.Skills = []string{}
	}
	if facts.Projects == nil {
		facts.Projects = []string{}
	}
	if len(facts.Projects) > 3 {
		facts.Projects = facts.Projects[:3]
	}
	return facts, nil
}

// TranslateContacts parses a discovery reply. An empty list is a valid
// outcome; a non-empty list with any element missing name, title, or
// research interests fails the whole batch.
func TranslateContacts(raw string) ([]Contact, error) {
	payload := ExtractJSON(raw)

	var contacts []Contact
	if err := json.Unmarshal([]byte(payload), &contacts); err != nil {
		return nil, fmt.Errorf("%w: contacts: %v", ErrParse, err)
	}

	for i := range contacts {
		if strings.TrimSpace(contacts[i].Name) == "" ||
			strings.TrimSpace(contacts[i].Title) == "" ||
			strings.TrimSpace(contacts[i].Interests) == "" {
			return nil, fmt.Errorf("%w: contact %d lacks name/title/interests", ErrSchema, i)
		}
	}
	return contacts, nil
}

// TranslateDraft parses a drafting reply into a subject/body pair.
func TranslateDraft(raw string) (EmailDraft, error) {
	payload := ExtractJSON(raw)

	var draft EmailDraft
	if err := json.Unmarshal([]byte(payload), &draft); err != nil {
		return EmailDraft{}, fmt.Errorf("%w: draft: %v", ErrParse, err)
	}
	if strings.TrimSpace(draft.Subject) == "" || strings.TrimSpace(draft.Body) == "" {
		return EmailDraft{}, fmt.Errorf("%w: draft needs subject and body", ErrSchema)
	}
	return draft, nil
}
