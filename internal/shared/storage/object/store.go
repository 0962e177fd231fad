package object

import (
	"context"
	"io"
)

// ObjectStore abstracts where uploaded resume files live.
type ObjectStore interface {
	// Save persists the reader under the user's namespace and returns the
	// storage key, byte size, and sniffed MIME type.
	Save(ctx context.Context, userID string, fileName string, r io.Reader) (string, int64, string, error)
	// Open returns a reader for a previously stored object.
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
