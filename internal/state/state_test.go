package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewState(t *testing.T) {
	s := NewState()

	if s.Pages == nil {
		t.Error("Pages map should be initialized")
	}
	if len(s.Pages) != 0 {
		t.Error("Pages map should be empty")
	}
	if s.TemplateHash != "" {
		t.Error("TemplateHash should be empty")
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	statePath := filepath.Join(tmpDir, "state.json")

	state := NewState()
	state.Pages["content/index.md"] = &PageState{
		MTime:  123456789,
		Hash:   "sha256:abc123",
		Output: "public/index.html",
		Title:  "Tolkien Fan Club",
	}
	state.TemplateHash = "sha256:def456"
	state.LastBuildID = "build-1"

	if err := state.Save(statePath); err != nil {
		t.Fatalf("Failed to save state: %v", err)
	}

	loaded, err := Load(statePath)
	if err != nil {
		t.Fatalf("Failed to load state: %v", err)
	}

	if len(loaded.Pages) != 1 {
		t.Errorf("Expected 1 page, got %d", len(loaded.Pages))
	}
	page := loaded.Pages["content/index.md"]
	if page == nil {
		t.Fatal("Page state not found")
	}
	if *page != *state.Pages["content/index.md"] {
		t.Errorf("Page mismatch: got %+v, want %+v", page, state.Pages["content/index.md"])
	}
	if loaded.TemplateHash != "sha256:def456" {
		t.Errorf("TemplateHash mismatch: got %s", loaded.TemplateHash)
	}
	if loaded.LastBuildID != "build-1" {
		t.Errorf("LastBuildID mismatch: got %s", loaded.LastBuildID)
	}
}

func TestLoadNonExistent(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "nonexistent.json")

	// Should return empty state, not error
	state, err := Load(statePath)
	if err != nil {
		t.Fatalf("Load should not error on missing file: %v", err)
	}
	if state == nil || len(state.Pages) != 0 {
		t.Error("State should be empty")
	}
}

func TestLoadCorrupt(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(statePath, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write state: %v", err)
	}

	if _, err := Load(statePath); err == nil {
		t.Error("Expected error for corrupt state file")
	}
}

func TestComputeHash(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.md")

	if err := os.WriteFile(testFile, []byte("# Hello"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	hash, err := ComputeHash(testFile)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}
	if hash[:7] != "sha256:" {
		t.Errorf("Hash should start with 'sha256:', got: %s", hash)
	}

	hash2, err := ComputeHash(testFile)
	if err != nil {
		t.Fatalf("Second ComputeHash failed: %v", err)
	}
	if hash != hash2 {
		t.Error("Hash should be deterministic")
	}

	if err := os.WriteFile(testFile, []byte("# Goodbye"), 0644); err != nil {
		t.Fatalf("Failed to update test file: %v", err)
	}
	hash3, err := ComputeHash(testFile)
	if err != nil {
		t.Fatalf("Third ComputeHash failed: %v", err)
	}
	if hash == hash3 {
		t.Error("Hash should change when content changes")
	}
}

func TestHasChanged(t *testing.T) {
	tmpDir := t.TempDir()
	source := filepath.Join(tmpDir, "index.md")
	output := filepath.Join(tmpDir, "index.html")

	if err := os.WriteFile(source, []byte("# Initial"), 0644); err != nil {
		t.Fatalf("Failed to create source: %v", err)
	}
	if err := os.WriteFile(output, []byte("<html></html>"), 0644); err != nil {
		t.Fatalf("Failed to create output: %v", err)
	}

	state := NewState()

	// New file - should be changed
	changed, err := state.HasChanged(source)
	if err != nil {
		t.Fatalf("HasChanged failed: %v", err)
	}
	if !changed {
		t.Error("New file should be marked as changed")
	}

	if err := state.Update(source, output, "Initial"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	changed, err = state.HasChanged(source)
	if err != nil {
		t.Fatalf("HasChanged failed: %v", err)
	}
	if changed {
		t.Error("Unchanged file should not be marked as changed")
	}

	// Touch file (change mtime but not content)
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(source, later, later); err != nil {
		t.Fatalf("Failed to touch file: %v", err)
	}
	changed, err = state.HasChanged(source)
	if err != nil {
		t.Fatalf("HasChanged failed after touch: %v", err)
	}
	if changed {
		t.Error("File with only mtime change should not be marked as changed")
	}

	// Actually change content
	if err := os.WriteFile(source, []byte("# Updated"), 0644); err != nil {
		t.Fatalf("Failed to update file: %v", err)
	}
	evenLater := later.Add(time.Hour)
	if err := os.Chtimes(source, evenLater, evenLater); err != nil {
		t.Fatalf("Failed to touch file: %v", err)
	}
	changed, err = state.HasChanged(source)
	if err != nil {
		t.Fatalf("HasChanged failed after content change: %v", err)
	}
	if !changed {
		t.Error("File with content change should be marked as changed")
	}
}

func TestHasChangedMissingOutput(t *testing.T) {
	tmpDir := t.TempDir()
	source := filepath.Join(tmpDir, "index.md")

	if err := os.WriteFile(source, []byte("# Page"), 0644); err != nil {
		t.Fatalf("Failed to create source: %v", err)
	}

	state := NewState()
	if err := state.Update(source, filepath.Join(tmpDir, "gone.html"), "Page"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	changed, err := state.HasChanged(source)
	if err != nil {
		t.Fatalf("HasChanged failed: %v", err)
	}
	if !changed {
		t.Error("Page with missing output should be marked as changed")
	}
}

func TestUpdateAndForget(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.md")
	if err := os.WriteFile(testFile, []byte("# Test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	state := NewState()
	if err := state.Update(testFile, "public/test.html", "Test"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	page := state.Pages[testFile]
	if page == nil {
		t.Fatal("Page state not found after update")
	}
	if page.MTime == 0 {
		t.Error("MTime should be set")
	}
	if page.Hash == "" {
		t.Error("Hash should be set")
	}
	if page.Output != "public/test.html" || page.Title != "Test" {
		t.Errorf("Unexpected page state: %+v", page)
	}

	state.Forget(testFile)
	if _, ok := state.Pages[testFile]; ok {
		t.Error("Page should be removed after Forget")
	}

	if err := state.Update(filepath.Join(t.TempDir(), "missing.md"), "", ""); err == nil {
		t.Error("Update should fail for a missing file")
	}
}

func TestGetMTime(t *testing.T) {
	state := NewState()

	if mtime := state.GetMTime("nonexistent.md"); !mtime.IsZero() {
		t.Error("MTime for non-existent file should be zero")
	}

	state.Pages["test.md"] = &PageState{
		MTime: 1234567890,
		Hash:  "sha256:test",
	}

	if mtime := state.GetMTime("test.md"); mtime.Unix() != 1234567890 {
		t.Errorf("MTime mismatch: got %d, want 1234567890", mtime.Unix())
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "nested", "dir", "state.json")

	state := NewState()
	if err := state.Save(statePath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(statePath); os.IsNotExist(err) {
		t.Error("State file was not created")
	}
}
