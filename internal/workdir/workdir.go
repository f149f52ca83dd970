// Package workdir manages the transient on-disk workspace for extraction
// runs. Every run gets its own directory under a shared base, so concurrent
// requests cannot clobber each other's frames.
package workdir

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Dwij1704/Visual-Review-Extractor/internal/logger"
)

const runPrefix = "run-"

// Run is the isolated working directory for a single extraction.
type Run struct {
	id   string
	path string
}

// New creates a fresh, empty run directory under base. Any leftover
// directory with the same id is removed first, so a run never inherits
// frames from an earlier use of its path.
func New(base string) (*Run, error) {
	id, err := newRunID()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(base, runPrefix+id)
	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("clearing run dir: %w", err)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("creating run dir: %w", err)
	}

	logger.Debug("run directory created", "run_id", id, "path", path)
	return &Run{id: id, path: path}, nil
}

// ID returns the generated run identifier.
func (r *Run) ID() string { return r.id }

// Path returns the absolute or base-relative directory path.
func (r *Run) Path() string { return r.path }

// FramePath returns the persisted filename for a frame index. Zero-padding
// keeps lexical order equal to capture order.
func (r *Run) FramePath(index int) string {
	return filepath.Join(r.path, fmt.Sprintf("frame-%04d.png", index))
}

// WriteFrame persists one captured frame image.
func (r *Run) WriteFrame(index int, data []byte) (string, error) {
	path := r.FramePath(index)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing frame %d: %w", index, err)
	}
	return path, nil
}

// WriteErrorDump persists the raw payload of a failed vision-model call
// for postmortem inspection.
func (r *Run) WriteErrorDump(payload string) error {
	path := filepath.Join(r.path, "extraction-error.txt")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		return fmt.Errorf("writing error dump: %w", err)
	}
	logger.Debug("extraction error payload persisted", "run_id", r.id, "path", path)
	return nil
}

// Remove deletes the run directory and everything in it.
func (r *Run) Remove() error {
	return os.RemoveAll(r.path)
}

// Prune removes all run directories under base. Called at startup so
// frames from a previous process never survive a restart.
func Prune(base string) error {
	entries, err := os.ReadDir(base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading workdir base: %w", err)
	}

	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), runPrefix) {
			continue
		}
		stale := filepath.Join(base, e.Name())
		if err := os.RemoveAll(stale); err != nil {
			return fmt.Errorf("pruning %s: %w", stale, err)
		}
		logger.Debug("pruned stale run directory", "path", stale)
	}
	return nil
}

func newRunID() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating run id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
