package resumes

import (
	"errors"
	"time"
)

// Resume is an uploaded resume file owned by a user.
type Resume struct {
	ID         string
	UserID     string
	FileName   string
	MimeType   string
	SizeBytes  int64
	StorageKey string
	CreatedAt  time.Time
}

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	// ErrNotPDF rejects any upload that is not a PDF document.
	ErrNotPDF = errors.New("only PDF resumes are supported")
)
