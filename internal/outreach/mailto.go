package outreach

import (
	"net/url"
	"strings"
)

// attachReminder is appended to every dispatched body. The system never
// touches the resume file at send time, so the user has to attach it
// themselves in their mail client.
const attachReminder = "\n\n[Remember to attach your resume/CV before sending!]"

// BuildMailtoURI composes a mailto URI for the user's own mail client.
// Subject and body are percent-encoded; QueryEscape's "+" for spaces is
// rewritten because many mail clients take it literally.
func BuildMailtoURI(recipient, subject, body string) string {
	var b strings.Builder
	b.WriteString("mailto:")
	b.WriteString(recipient)
	b.WriteString("?subject=")
	b.WriteString(encodeComponent(subject))
	b.WriteString("&body=")
	b.WriteString(encodeComponent(body + attachReminder))
	return b.String()
}

func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
