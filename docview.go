// Package docview provides a viewer for pre-built static documentation sites.
// A site holds an index.json tree of documents, an optional config.json and
// a docs/ folder of raw markdown, text or HTML files. The viewer renders a
// navigable sidebar, search, theme and cached document loading on top of it.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goldmark/, sqlite/, bubbletea/).
package docview
