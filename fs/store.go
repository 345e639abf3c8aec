package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docview"
)

// Store writes a generated directory with atomic replace semantics.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit,
// so outputs whose source disappeared do not survive a rebuild.
type Store struct {
	baseDir string
	name    string
}

// NewStore creates a new Store.
func NewStore(baseDir, name string) *Store {
	return &Store{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *Store) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

// Dir returns the final output directory.
func (s *Store) Dir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes content to relPath inside the pending directory.
func (s *Store) Save(ctx context.Context, relPath, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	clean := filepath.Clean(filepath.FromSlash(relPath))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return docview.Errorf(docview.EINVALID, "path traversal in %q", relPath)
	}

	fullPath := filepath.Join(s.tempDir(), clean)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// Commit replaces the output directory with the pending one.
func (s *Store) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(s.Dir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.Dir())
}

// Abort discards the pending directory.
func (s *Store) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// WriteFileAtomic writes data to path through a temporary file and rename.
func WriteFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
