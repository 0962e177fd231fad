package llm

import (
	"fmt"
	"strings"
)

// Prompt builders shared by all providers. Each asks for bare JSON; the
// translation layer still defends against commentary and fences because no
// provider reliably honors that.

// ExtractPrompt instructs the model to pull structured facts from the
// attached (or inlined) resume.
func ExtractPrompt() string {
	return strings.TrimSpace(`
Read the attached resume and return ONLY a JSON object with this shape:
{"name": string, "skills": [string], "education": string, "projects": [string]}
- "name": the applicant's full name.
- "skills": technical and research skills listed on the resume.
- "education": the single highest education level (e.g. "BSc Computer Science, 3rd year").
- "projects": up to three one-sentence summaries of the most notable projects.
Use "Not found" for any string you cannot determine. Do not wrap the JSON in markdown.`)
}

// DiscoverPrompt instructs the model to search for matching faculty contacts.
func DiscoverPrompt(in DiscoverInput) string {
	return strings.TrimSpace(fmt.Sprintf(`
You are helping a student find academic mentors. Using web knowledge of %s,
department of %s, list faculty members or lab leads whose research matches the
student's background below.

Student skills: %s
Student education: %s
Student projects: %s

Return ONLY a JSON array. Each element:
{"name": string, "title": string, "email": string or null,
 "interests": string (one sentence on their research),
 "labUrl": string or null, "publication": string or null, "profileUrl": string or null}
Return [] if you find no good matches. Do not invent email addresses. Do not
wrap the JSON in markdown.`,
		in.University, in.Department,
		strings.Join(in.Facts.Skills, ", "),
		in.Facts.Education,
		strings.Join(in.Facts.Projects, "; ")))
}

// DraftPrompt instructs the model to write one personalized outreach email.
func DraftPrompt(in DraftInput) string {
	return strings.TrimSpace(fmt.Sprintf(`
Write a concise, personalized cold-outreach email from a student to an
academic contact.

Contact: %s, %s. Research interests: %s
Student name: %s
Student education: %s
Student skills: %s
Student projects: %s
Purpose of outreach: %s

Keep it under 180 words, specific to the contact's research, no flattery
filler. Return ONLY a JSON object: {"subject": string, "body": string}.
Do not wrap the JSON in markdown.`,
		in.Contact.Name, in.Contact.Title, in.Contact.Interests,
		in.Facts.Name,
		in.Facts.Education,
		strings.Join(in.Facts.Skills, ", "),
		strings.Join(in.Facts.Projects, "; "),
		in.Purpose))
}
