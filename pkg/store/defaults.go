package store

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-screenfmt/pkg/formatter"
)

// Defaults serves the shipped default formatter documents, one <code>.json
// per screen code.
type Defaults struct {
	fsys fs.FS
}

// NewDefaults wraps the filesystem the default documents live in.
func NewDefaults(fsys fs.FS) *Defaults {
	return &Defaults{fsys: fsys}
}

// NewDefaultsDir wraps an on-disk defaults directory.
func NewDefaultsDir(dir string) *Defaults {
	return &Defaults{fsys: os.DirFS(dir)}
}

// Load reads and decodes the default document for a screen code. A missing
// file surfaces ErrNotFound.
func (d *Defaults) Load(code string) (formatter.Document, error) {
	if d == nil || d.fsys == nil {
		return formatter.Document{}, fmt.Errorf("store: defaults source not configured: %w", ErrNotFound)
	}

	data, err := fs.ReadFile(d.fsys, code+".json")
	if err != nil {
		return formatter.Document{}, fmt.Errorf("store: default formatter for %q: %w", code, ErrNotFound)
	}

	doc, err := formatter.Decode(data)
	if err != nil {
		return formatter.Document{}, fmt.Errorf("store: default formatter for %q: %w", code, err)
	}
	doc.Source = formatter.SourceDefault
	return doc, nil
}
