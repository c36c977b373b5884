package integrity

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/diegomarinho/jabref/internal/model"
)

// Checker inspects a single entry and reports zero or more messages.
type Checker struct {
	ID    string
	Check func(e *model.Entry) []Message
}

var all = []Checker{
	{ID: "citation_key", Check: CitationKey},
	{ID: "empty_field", Check: EmptyFields},
	{ID: "required_fields", Check: RequiredFields},
	{ID: "year", Check: Year},
	{ID: "edition", Check: Edition},
	{ID: "pages", Check: Pages},
	{ID: "braces", Check: Braces},
	{ID: "title_case", Check: TitleCase},
	{ID: "url", Check: URL},
	{ID: "issn", Check: ISSN},
}

// CheckerIDs returns the IDs of all registered per-entry checkers plus the
// library-level duplicate key check.
func CheckerIDs() []string {
	ids := make([]string, 0, len(all)+1)
	for _, c := range all {
		ids = append(ids, c.ID)
	}
	ids = append(ids, "duplicate_key")
	return ids
}

var (
	reYear     = regexp.MustCompile(`^\d{4}$`)
	reEdition  = regexp.MustCompile(`^([0-9]+|[A-Z][a-z]+)$`)
	rePages    = regexp.MustCompile(`^[A-Za-z]?\d+(\+|-{2}[A-Za-z]?\d+)?([,;]\s*[A-Za-z]?\d+(\+|-{2}[A-Za-z]?\d+)?)*$`)
	reValidKey = regexp.MustCompile(`^[A-Za-z0-9:._+/\-]+$`)
	reISSN     = regexp.MustCompile(`^\d{4}-\d{3}[\dxX]$`)
)

// CitationKey flags missing or malformed citation keys.
func CitationKey(e *model.Entry) []Message {
	if e.Key == "" {
		return []Message{{Entry: e, Field: model.FieldKey, Text: "empty citation key"}}
	}
	if !reValidKey.MatchString(e.Key) {
		return []Message{{Entry: e, Field: model.FieldKey, Text: "citation key contains invalid characters"}}
	}
	return nil
}

// EmptyFields flags fields that are present but blank.
func EmptyFields(e *model.Entry) []Message {
	var out []Message
	for _, f := range e.FieldOrder() {
		if v, _ := e.GetField(f); strings.TrimSpace(v) == "" {
			out = append(out, Message{Entry: e, Field: f, Text: "should not be empty"})
		}
	}
	return out
}

// requiredByType lists the minimal field set per entry type. Types not
// listed here carry no requirement.
var requiredByType = map[string][]model.Field{
	"article":       {model.FieldAuthor, model.FieldTitle, model.FieldJournal, model.FieldYear},
	"book":          {model.FieldAuthor, model.FieldTitle, model.FieldPublisher, model.FieldYear},
	"inproceedings": {model.FieldAuthor, model.FieldTitle, model.FieldBooktitle, model.FieldYear},
	"incollection":  {model.FieldAuthor, model.FieldTitle, model.FieldBooktitle, model.FieldYear},
	"phdthesis":     {model.FieldAuthor, model.FieldTitle, model.FieldYear},
	"mastersthesis": {model.FieldAuthor, model.FieldTitle, model.FieldYear},
}

// RequiredFields flags fields the entry type demands but the entry lacks.
func RequiredFields(e *model.Entry) []Message {
	var out []Message
	for _, f := range requiredByType[strings.ToLower(e.Type)] {
		if _, ok := e.GetField(f); !ok {
			out = append(out, Message{Entry: e, Field: f, Text: fmt.Sprintf("required field for %s is missing", strings.ToLower(e.Type))})
		}
	}
	return out
}

// Year flags year values that are not a four digit number.
func Year(e *model.Entry) []Message {
	v, ok := e.GetField(model.FieldYear)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	if !reYear.MatchString(strings.TrimSpace(v)) {
		return []Message{{Entry: e, Field: model.FieldYear, Text: "should contain a four digit number"}}
	}
	return nil
}

// Edition flags editions that are neither an integer nor a capitalized word.
func Edition(e *model.Entry) []Message {
	v, ok := e.GetField(model.FieldEdition)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	v = strings.TrimSpace(v)
	if v == "1" {
		return []Message{{Entry: e, Field: model.FieldEdition, Text: "no need to mention the edition for a first edition"}}
	}
	if !reEdition.MatchString(v) {
		return []Message{{Entry: e, Field: model.FieldEdition, Text: "should contain an integer or a capitalized word"}}
	}
	return nil
}

// Pages flags page values outside the 1--10 style accepted by BibTeX.
func Pages(e *model.Entry) []Message {
	v, ok := e.GetField(model.FieldPages)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	if !rePages.MatchString(strings.TrimSpace(v)) {
		return []Message{{Entry: e, Field: model.FieldPages, Text: "should contain a valid page number or page range"}}
	}
	return nil
}

// Braces flags unbalanced curly braces in any field value.
func Braces(e *model.Entry) []Message {
	var out []Message
	for _, f := range e.FieldOrder() {
		v, _ := e.GetField(f)
		depth := 0
		unexpected := false
		for _, r := range v {
			switch r {
			case '{':
				depth++
			case '}':
				depth--
				if depth < 0 {
					unexpected = true
				}
			}
		}
		switch {
		case unexpected:
			out = append(out, Message{Entry: e, Field: f, Text: "unexpected closing curly bracket"})
		case depth > 0:
			out = append(out, Message{Entry: e, Field: f, Text: "unexpected opening curly bracket"})
		}
	}
	return out
}

// TitleCase flags capital letters inside a title that are not protected by
// curly braces, so they survive BibTeX's lower-casing. The leading capital
// of the title is exempt.
func TitleCase(e *model.Entry) []Message {
	v, ok := e.GetField(model.FieldTitle)
	if !ok || v == "" {
		return nil
	}
	depth := 0
	for i, r := range v {
		switch r {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		default:
			// Only capitals starting a mid-title word count; the leading
			// capital of the title is accepted.
			if i > 0 && depth == 0 && r >= 'A' && r <= 'Z' && (v[i-1] == ' ' || v[i-1] == '-') {
				return []Message{{Entry: e, Field: model.FieldTitle, Text: "capital letters are not masked using curly brackets {}"}}
			}
		}
	}
	return nil
}

// URL flags url values without a protocol or containing whitespace.
func URL(e *model.Entry) []Message {
	v, ok := e.GetField(model.FieldURL)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	v = strings.TrimSpace(v)
	if strings.ContainsAny(v, " \t") {
		return []Message{{Entry: e, Field: model.FieldURL, Text: "should not contain whitespace"}}
	}
	if !strings.Contains(v, "://") {
		return []Message{{Entry: e, Field: model.FieldURL, Text: "should start with a protocol, e.g. https://"}}
	}
	return nil
}

// ISSN flags ISSNs with a bad shape or checksum.
func ISSN(e *model.Entry) []Message {
	v, ok := e.GetField(model.FieldISSN)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	v = strings.TrimSpace(v)
	if !reISSN.MatchString(v) {
		return []Message{{Entry: e, Field: model.FieldISSN, Text: "incorrect format"}}
	}
	digits := strings.ReplaceAll(v, "-", "")
	sum := 0
	for i := 0; i < 7; i++ {
		sum += int(digits[i]-'0') * (8 - i)
	}
	check := (11 - sum%11) % 11
	last := digits[7]
	got := -1
	switch {
	case last >= '0' && last <= '9':
		got = int(last - '0')
	case last == 'x' || last == 'X':
		got = 10
	}
	if got != check {
		return []Message{{Entry: e, Field: model.FieldISSN, Text: "incorrect control digit"}}
	}
	return nil
}
