// Package fs provides file-system backed implementations for reading and
// writing documentation sites.
package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path"
	"strings"

	"github.com/fwojciec/docview"
)

// Ensure Source implements docview.Source at compile time.
var _ docview.Source = (*Source)(nil)

// Source reads site files from a directory tree.
type Source struct {
	fsys iofs.FS
}

// NewSource creates a Source over fsys.
func NewSource(fsys iofs.FS) *Source {
	return &Source{fsys: fsys}
}

// NewDirSource creates a Source rooted at dir.
func NewDirSource(dir string) (*Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, docview.Errorf(docview.ENOTFOUND, "site directory %q not found", dir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, docview.Errorf(docview.EINVALID, "%q is not a directory", dir)
	}
	return NewSource(os.DirFS(dir)), nil
}

// Fetch reads name from the directory. Any query string is ignored.
func (s *Source) Fetch(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name, _, _ = strings.Cut(name, "?")
	name = path.Clean(name)
	if !iofs.ValidPath(name) {
		return "", docview.Errorf(docview.EINVALID, "invalid file name %q", name)
	}

	data, err := iofs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return "", docview.Errorf(docview.ENOTFOUND, "file %q not found", name)
		}
		return "", err
	}
	return string(data), nil
}
