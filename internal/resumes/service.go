package resumes

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"outreach-backend/internal/shared/storage/object"
	"outreach-backend/internal/shared/telemetry"
)

const mimePDF = "application/pdf"

// Service handles resume intake: PDF validation, object-store persistence,
// and local plain-text extraction.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
}

// Upload validates and stores a resume, returning the record, the raw file
// bytes, and the locally-extracted plain text. Text extraction is
// best-effort: the Gemini provider reads the PDF itself, so a resume whose
// text layer cannot be decoded is still accepted.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (Resume, []byte, string, error) {
	if strings.TrimSpace(fileName) == "" {
		return Resume{}, nil, "", ErrInvalidInput
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Resume{}, nil, "", err
	}
	if !isPDF(data) {
		return Resume{}, nil, "", ErrNotPDF
	}

	storageKey, size, _, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		return Resume{}, nil, "", err
	}

	res := Resume{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   fileName,
		MimeType:   mimePDF,
		SizeBytes:  size,
		StorageKey: storageKey,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, res); err != nil {
		return Resume{}, nil, "", err
	}

	text, err := ExtractText(data)
	if err != nil {
		telemetry.Info("resume.text_extraction_skipped", map[string]any{
			"resume_id": res.ID,
			"reason":    err.Error(),
		})
		text = ""
	}

	return res, data, text, nil
}

// isPDF checks the file magic. MIME sniffing alone is not enough: browsers
// send application/octet-stream for some PDFs and a spoofed content type for
// anything.
func isPDF(data []byte) bool {
	return len(data) > 4 && bytes.HasPrefix(data, []byte("%PDF"))
}
