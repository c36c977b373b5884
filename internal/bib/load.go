// Package bib loads BibTeX libraries into model entries, preserving file
// order and recovering source line numbers for editor navigation.
package bib

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/nickng/bibtex"

	"github.com/diegomarinho/jabref/internal/model"
)

// The leading whitespace class must not include \n: with \s* a blank line
// before an entry would be swallowed into the match, shifting the recorded
// line one up and prefixing Raw with a newline.
var reEntryStart = regexp.MustCompile(`(?m)^[ \t]*@\s*([A-Za-z]+)\s*[{(]\s*([^,\s{}()]*)`)

// LoadFile parses the .bib file at path.
func LoadFile(path string) ([]*model.Entry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	entries, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return entries, nil
}

// Parse converts raw BibTeX source into model entries in file order. An
// empty library is valid and yields no entries.
func Parse(src []byte) ([]*model.Entry, error) {
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, nil
	}
	bt, err := bibtex.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}

	starts := entryStarts(src)
	out := make([]*model.Entry, 0, len(bt.Entries))
	for _, be := range bt.Entries {
		e := model.NewEntry(strings.ToLower(be.Type), be.CiteName)
		for name, val := range be.Fields {
			e.SetField(model.Field(strings.ToLower(name)), val.String())
		}
		if s, ok := takeStart(starts, e.Key); ok {
			e.Line = s.line
			e.Raw = s.raw
		}
		sortFieldOrder(e)
		out = append(out, e)
	}
	return out, nil
}

type start struct {
	key  string
	line int
	raw  string
	used bool
}

// entryStarts scans the raw source for entry openings, recording the
// 1-based line and the raw text up to the next entry opening.
func entryStarts(src []byte) []*start {
	locs := reEntryStart.FindAllSubmatchIndex(src, -1)
	var out []*start
	for i, loc := range locs {
		typ := strings.ToLower(string(src[loc[2]:loc[3]]))
		if typ == "string" || typ == "preamble" || typ == "comment" {
			continue
		}
		end := len(src)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		out = append(out, &start{
			key:  string(src[loc[4]:loc[5]]),
			line: 1 + bytes.Count(src[:loc[0]], []byte("\n")),
			raw:  strings.TrimRight(string(src[loc[0]:end]), "\n \t"),
		})
	}
	return out
}

func takeStart(starts []*start, key string) (*start, bool) {
	for _, s := range starts {
		if !s.used && s.key == key {
			s.used = true
			return s, true
		}
	}
	return nil, false
}

// sortFieldOrder rewrites the entry's field order to match its raw source
// text where known. The parser hands fields back as a map, so insertion
// order is not meaningful on its own.
func sortFieldOrder(e *model.Entry) {
	fields := e.FieldOrder()
	if len(fields) < 2 {
		return
	}
	raw := strings.ToLower(e.Raw)
	pos := func(f model.Field) int {
		if i := strings.Index(raw, string(f)); i >= 0 {
			return i
		}
		return int(^uint(0) >> 1)
	}
	sort.SliceStable(fields, func(i, j int) bool { return pos(fields[i]) < pos(fields[j]) })
	e.SetFieldOrder(fields)
}
