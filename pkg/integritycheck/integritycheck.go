package integritycheck

import (
	"github.com/diegomarinho/jabref/internal/bib"
	"github.com/diegomarinho/jabref/internal/integrity"
	"github.com/diegomarinho/jabref/internal/model"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type Message = integrity.Message
type Options = integrity.Options
type Entry = model.Entry
type Field = model.Field

// Parse reads BibTeX source into entries.
func Parse(src []byte) ([]*Entry, error) {
	return bib.Parse(src)
}

// Check is the stable entrypoint for other programs.
func Check(entries []*Entry, opts Options) []Message {
	return integrity.Run(entries, opts)
}

// CheckSource parses BibTeX source and runs all enabled checks in one step.
func CheckSource(src []byte, opts Options) ([]Message, error) {
	entries, err := bib.Parse(src)
	if err != nil {
		return nil, err
	}
	return integrity.Run(entries, opts), nil
}

// CheckerIDs returns the list of configured checker IDs.
// This is exposed for convenience to avoid importing internals directly.
func CheckerIDs() []string { return integrity.CheckerIDs() }
