package state

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// PageState represents the last successful build of a single content file
type PageState struct {
	MTime  int64  `json:"mtime"`
	Hash   string `json:"hash"`
	Output string `json:"output"`
	Title  string `json:"title"`
}

// State represents the build manifest
type State struct {
	Pages        map[string]*PageState `json:"pages"` // content path -> page
	TemplateHash string                `json:"template_hash"`
	LastBuild    time.Time             `json:"last_build"`
	LastBuildID  string                `json:"last_build_id"`
}

// NewState creates a new empty state
func NewState() *State {
	return &State{
		Pages: make(map[string]*PageState),
	}
}

// Load reads state from the state file
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	if state.Pages == nil {
		state.Pages = make(map[string]*PageState)
	}

	return &state, nil
}

// Save writes state to the state file
func (s *State) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// ComputeHash computes SHA256 hash of a file
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", h.Sum(nil)), nil
}

// HasChanged reports whether a content file needs to be regenerated.
// Uses hybrid mtime + hash approach, and treats a missing output as a change.
func (s *State) HasChanged(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	page, exists := s.Pages[path]
	if !exists {
		// New file
		return true, nil
	}

	if _, err := os.Stat(page.Output); os.IsNotExist(err) {
		return true, nil
	}

	// Fast path: check mtime first
	if info.ModTime().Unix() == page.MTime {
		return false, nil
	}

	// mtime changed, compute hash to check for actual content changes
	hash, err := ComputeHash(path)
	if err != nil {
		return false, err
	}

	return hash != page.Hash, nil
}

// Update records a successful build of a content file
func (s *State) Update(path, output, title string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	hash, err := ComputeHash(path)
	if err != nil {
		return err
	}

	s.Pages[path] = &PageState{
		MTime:  info.ModTime().Unix(),
		Hash:   hash,
		Output: output,
		Title:  title,
	}

	return nil
}

// Forget drops a content file, e.g. after it failed to build or was removed
func (s *State) Forget(path string) {
	delete(s.Pages, path)
}

// GetMTime returns the recorded modification time for a content file
func (s *State) GetMTime(path string) time.Time {
	if page, exists := s.Pages[path]; exists {
		return time.Unix(page.MTime, 0)
	}
	return time.Time{}
}
