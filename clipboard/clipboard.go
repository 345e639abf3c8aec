// Package clipboard writes copied code blocks to the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
	"github.com/fwojciec/docview"
)

// Ensure Clipboard implements docview.Clipboard at compile time.
var _ docview.Clipboard = (*Clipboard)(nil)

// Clipboard is the system clipboard.
type Clipboard struct{}

// NewClipboard returns the system clipboard.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// Available reports whether a clipboard utility exists on this system.
func (c *Clipboard) Available() bool {
	return !clipboard.Unsupported
}

// WriteAll replaces the clipboard contents with text.
func (c *Clipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return docview.Errorf(docview.EINTERNAL, "clipboard unavailable")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return docview.Errorf(docview.EINTERNAL, "write clipboard: %v", err)
	}
	return nil
}
