package integrity

import "github.com/diegomarinho/jabref/internal/model"

// Message is one integrity finding: which entry, which field, and a
// human-readable description. Messages are immutable once produced and the
// slice returned by Run keeps a stable order for the lifetime of a dialog.
type Message struct {
	Entry *model.Entry `json:"-"`
	Field model.Field  `json:"field"`
	Text  string       `json:"message"`
}

// Key returns the citation key of the implicated entry, or "" when the entry
// has none. Missing keys are a display concern, never an error.
func (m Message) Key() string {
	return m.Entry.CitationKey()
}

// FieldName returns the display name of the implicated field.
func (m Message) FieldName() string {
	return m.Field.DisplayName()
}
