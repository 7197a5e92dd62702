// Package syllabus turns syllabus documents into plain text for topic
// extraction.
package syllabus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnreadable marks a document that cannot be opened or decoded.
var ErrUnreadable = errors.New("unreadable document")

// Format defines a file format reader for extracting syllabus text.
type Format interface {
	Name() string
	Extensions() []string
	Extract(filename string) (string, error)
}

var registry []Format

// Register adds a format reader to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

// ExtractText extracts text from a file, using a registered format or
// plain text fallback. Markdown and plain-text syllabi need no special
// handling: the topic rules already understand bullets, numbering, and
// indentation.
func ExtractText(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range registry {
		for _, e := range f.Extensions() {
			if ext == e {
				return f.Extract(filename)
			}
		}
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return string(data), nil
}

// SupportedExtensions returns every extension a registered format
// handles, plus the plain-text fallbacks.
func SupportedExtensions() []string {
	out := []string{}
	for _, f := range registry {
		out = append(out, f.Extensions()...)
	}
	return append(out, ".txt", ".md")
}

// SupportedFormats returns registered format names with their extensions.
func SupportedFormats() []string {
	var out []string
	for _, f := range registry {
		out = append(out, f.Name()+" ("+strings.Join(f.Extensions(), ", ")+")")
	}
	return out
}
