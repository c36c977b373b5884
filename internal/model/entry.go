package model

import "strings"

// Field identifies one attribute of a bibliography entry by its normalized
// (lower-case) BibTeX name.
type Field string

const (
	FieldAuthor    Field = "author"
	FieldTitle     Field = "title"
	FieldYear      Field = "year"
	FieldEdition   Field = "edition"
	FieldJournal   Field = "journal"
	FieldBooktitle Field = "booktitle"
	FieldPublisher Field = "publisher"
	FieldPages     Field = "pages"
	FieldDOI       Field = "doi"
	FieldURL       Field = "url"
	FieldISBN      Field = "isbn"
	FieldISSN      Field = "issn"

	// FieldKey stands in for problems with the citation key itself rather
	// than any real field of the entry.
	FieldKey Field = "citationkey"
)

// displayNames covers fields whose display form is not just a capitalized
// field name.
var displayNames = map[Field]string{
	FieldKey:       "Citation key",
	FieldBooktitle: "Book title",
	FieldDOI:       "DOI",
	FieldURL:       "URL",
	FieldISBN:      "ISBN",
	FieldISSN:      "ISSN",
}

// DisplayName returns the human-readable form of the field name.
func (f Field) DisplayName() string {
	if n, ok := displayNames[f]; ok {
		return n
	}
	s := string(f)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Entry is one bibliography record parsed from a .bib file.
type Entry struct {
	Type   string           `json:"type"`           // entry type, e.g. "article"
	Key    string           `json:"key,omitempty"`  // citation key, may be empty
	Line   int              `json:"line,omitempty"` // 1-based line in the source file, 0 if unknown
	Fields map[Field]string `json:"fields"`

	// Raw is the original BibTeX source of the entry when available.
	Raw string `json:"-"`

	order []Field
}

// NewEntry constructs an entry with an empty field map.
func NewEntry(entryType, key string) *Entry {
	return &Entry{
		Type:   entryType,
		Key:    key,
		Fields: map[Field]string{},
	}
}

// CitationKey returns the entry's citation key, or "" when it has none.
func (e *Entry) CitationKey() string {
	if e == nil {
		return ""
	}
	return e.Key
}

// SetField records a field value, preserving first-seen field order.
func (e *Entry) SetField(f Field, value string) {
	if _, seen := e.Fields[f]; !seen {
		e.order = append(e.order, f)
	}
	e.Fields[f] = value
}

// GetField returns the value of f and whether the entry carries it.
func (e *Entry) GetField(f Field) (string, bool) {
	v, ok := e.Fields[f]
	return v, ok
}

// FieldOrder returns the entry's fields in source order.
func (e *Entry) FieldOrder() []Field {
	out := make([]Field, len(e.order))
	copy(out, e.order)
	return out
}

// SetFieldOrder replaces the recorded field order. Fields not present on
// the entry are dropped; present fields missing from the argument keep
// their old relative position at the end.
func (e *Entry) SetFieldOrder(fields []Field) {
	seen := map[Field]bool{}
	var order []Field
	for _, f := range fields {
		if _, ok := e.Fields[f]; ok && !seen[f] {
			order = append(order, f)
			seen[f] = true
		}
	}
	for _, f := range e.order {
		if !seen[f] {
			order = append(order, f)
			seen[f] = true
		}
	}
	e.order = order
}
