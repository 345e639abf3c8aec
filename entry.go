package docview

import (
	"encoding/json"
	"strings"
)

// EntryType distinguishes documents from folders in the index tree.
type EntryType string

// EntryType constants.
const (
	EntryFile   EntryType = "file"
	EntryFolder EntryType = "folder"
)

// Entry is a node of the document index. Files carry a unique Path that is
// used as cache key and location fragment; folders carry ordered Children.
type Entry struct {
	Type     EntryType `json:"type"`
	Name     string    `json:"name"`
	Title    string    `json:"title,omitempty"`
	Path     string    `json:"path,omitempty"`
	Children []*Entry  `json:"children,omitempty"`
}

// IsFile reports whether the entry is a document.
func (e *Entry) IsFile() bool { return e.Type == EntryFile }

// IsFolder reports whether the entry is a folder.
func (e *Entry) IsFolder() bool { return e.Type == EntryFolder }

// DisplayTitle returns the title, falling back to the name.
func (e *Entry) DisplayTitle() string {
	if e.Title != "" {
		return e.Title
	}
	return e.Name
}

// ParseIndex decodes an index.json document and validates it.
func ParseIndex(data []byte) ([]*Entry, error) {
	var entries []*Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, Errorf(EINVALID, "invalid index: %v", err)
	}
	if err := ValidateIndex(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ValidateIndex returns an error if any file lacks a path or two files share one.
func ValidateIndex(entries []*Entry) error {
	seen := make(map[string]bool)
	for _, e := range Flatten(entries) {
		if e.Path == "" {
			return Errorf(EINVALID, "index entry %q has no path", e.Name)
		}
		if seen[e.Path] {
			return Errorf(EINVALID, "duplicate index path %q", e.Path)
		}
		seen[e.Path] = true
	}
	return nil
}

// Flatten returns the file entries of the tree in depth-first order.
func Flatten(entries []*Entry) []*Entry {
	return flatten(entries, nil)
}

func flatten(entries []*Entry, result []*Entry) []*Entry {
	for _, e := range entries {
		switch {
		case e.IsFile():
			result = append(result, e)
		case e.IsFolder() && e.Children != nil:
			result = flatten(e.Children, result)
		}
	}
	return result
}

// CountFiles returns the total number of files under entries, recursively.
func CountFiles(entries []*Entry) int {
	count := 0
	for _, e := range entries {
		switch {
		case e.IsFile():
			count++
		case e.IsFolder():
			count += CountFiles(e.Children)
		}
	}
	return count
}

// IsHTML reports whether the document at path is pre-rendered HTML that is
// displayed verbatim.
func IsHTML(path string) bool {
	return strings.HasSuffix(path, ".html")
}

// MarshalIndex encodes entries in the index.json format.
func MarshalIndex(entries []*Entry) ([]byte, error) {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, Errorf(EINTERNAL, "encode index: %v", err)
	}
	return append(data, '\n'), nil
}
