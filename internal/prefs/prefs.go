package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"outreach-backend/internal/shared/util"
)

// Theme is the UI theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ErrInvalidTheme rejects anything outside the two-value enum.
var ErrInvalidTheme = errors.New("theme must be \"dark\" or \"light\"")

// ParseTheme validates a raw theme string.
func ParseTheme(raw string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(raw))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", ErrInvalidTheme
}

// Store keeps per-user preferences in JSON files under baseDir. Corrupt or
// missing data degrades to defaults, never to an error.
type Store struct {
	baseDir string
	mu      sync.Mutex
}

// NewStore constructs a Store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

type stored struct {
	Theme Theme `json:"theme"`
}

// GetTheme returns the user's theme, defaulting to light.
func (s *Store) GetTheme(ctx context.Context, userID string) Theme {
	if err := ctx.Err(); err != nil {
		return ThemeLight
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path(userID))
	if err != nil {
		return ThemeLight
	}
	var p stored
	if err := json.Unmarshal(raw, &p); err != nil {
		return ThemeLight
	}
	if p.Theme != ThemeDark && p.Theme != ThemeLight {
		return ThemeLight
	}
	return p.Theme
}

// SetTheme persists the user's theme.
func (s *Store) SetTheme(ctx context.Context, userID string, theme Theme) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(userID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(stored{Theme: theme})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) path(userID string) string {
	return filepath.Join(s.baseDir, "prefs", util.HashUserKey(userID)+".json")
}
