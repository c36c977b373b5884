package integrity

import (
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"

	"github.com/diegomarinho/jabref/internal/model"
)

// Options narrows which checks run and which entries they see.
type Options struct {
	// IgnoreKeys skips entries whose citation key matches any glob.
	IgnoreKeys []string
	// Enable restricts the run to the listed checker IDs when non-empty.
	Enable []string
	// Disable removes the listed checker IDs from the run.
	Disable []string
}

func (o Options) checkerEnabled(id string) bool {
	for _, d := range o.Disable {
		if d == id {
			return false
		}
	}
	if len(o.Enable) == 0 {
		return true
	}
	for _, e := range o.Enable {
		if e == id {
			return true
		}
	}
	return false
}

func (o Options) entryIgnored(e *model.Entry) bool {
	key := e.CitationKey()
	if key == "" {
		return false
	}
	for _, g := range o.IgnoreKeys {
		if ok, _ := doublestar.Match(g, key); ok {
			return true
		}
	}
	return false
}

// Run executes every enabled checker over the entries, in entry order, and
// appends the library-level duplicate key check. The returned order is
// stable: callers hold it unchanged for the lifetime of a results dialog.
func Run(entries []*model.Entry, opts Options) []Message {
	var out []Message
	for _, e := range entries {
		if opts.entryIgnored(e) {
			continue
		}
		for _, c := range all {
			if !opts.checkerEnabled(c.ID) {
				continue
			}
			out = append(out, c.Check(e)...)
		}
	}
	if opts.checkerEnabled("duplicate_key") {
		out = append(out, duplicateKeys(entries, opts)...)
	}
	return out
}

// duplicateKeys flags every entry that shares its citation key with an
// earlier one. Comparison is case-insensitive, matching BibTeX resolution.
func duplicateKeys(entries []*model.Entry, opts Options) []Message {
	seen := map[string]bool{}
	var out []Message
	for _, e := range entries {
		if opts.entryIgnored(e) || e.Key == "" {
			continue
		}
		k := strings.ToLower(e.Key)
		if seen[k] {
			out = append(out, Message{Entry: e, Field: model.FieldKey, Text: "duplicate citation key"})
		}
		seen[k] = true
	}
	return out
}
