package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"outreach-backend/internal/shared/telemetry"
	"outreach-backend/internal/shared/util"
)

// FileRepo stores each user's history as one JSON file under baseDir.
// A corrupt or missing file degrades silently to an empty history; it is
// rewritten wholesale on every append batch and on clear.
type FileRepo struct {
	baseDir string
	mu      sync.Mutex
}

// NewFileRepo constructs a FileRepo rooted at baseDir.
func NewFileRepo(baseDir string) *FileRepo {
	return &FileRepo{baseDir: baseDir}
}

func (r *FileRepo) Append(ctx context.Context, userID string, recs []Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(recs) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.load(userID)
	merged := append(prependOrder(recs), existing...)
	return r.write(userID, merged)
}

func (r *FileRepo) List(ctx context.Context, userID string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(userID), nil
}

func (r *FileRepo) Clear(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(userID, []Record{})
}

func (r *FileRepo) path(userID string) string {
	return filepath.Join(r.baseDir, "history", util.HashUserKey(userID)+".json")
}

func (r *FileRepo) load(userID string) []Record {
	raw, err := os.ReadFile(r.path(userID))
	if err != nil {
		return []Record{}
	}
	var recs []Record
	if err := json.Unmarshal(raw, &recs); err != nil {
		// Corrupt history is reset, not surfaced.
		telemetry.Error("history.file_corrupt", map[string]any{"error": err.Error()})
		return []Record{}
	}
	return recs
}

func (r *FileRepo) write(userID string, recs []Record) error {
	path := r.path(userID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

var _ Repo = (*FileRepo)(nil)
