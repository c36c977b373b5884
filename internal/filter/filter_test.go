package filter

import (
	"testing"

	"github.com/diegomarinho/jabref/internal/integrity"
	"github.com/diegomarinho/jabref/internal/model"
)

func msg(key string, field model.Field, text string) integrity.Message {
	return integrity.Message{Entry: model.NewEntry("article", key), Field: field, Text: text}
}

func sampleRows() []integrity.Message {
	return []integrity.Message{
		msg("doe2020", model.FieldTitle, "empty title"),
		msg("doe2020", model.FieldYear, "invalid year"),
		msg("lee2019", model.FieldTitle, "empty title"),
	}
}

func TestDefaultsAllVisible(t *testing.T) {
	rows := sampleRows()
	e := NewEngine(rows)
	for i, r := range rows {
		if !e.Visible(r) {
			t.Errorf("row %d hidden by default", i)
		}
	}
	for _, c := range Columns {
		if e.Active(c) {
			t.Errorf("column %v reports active filter by default", c)
		}
	}
}

func TestDomainsCollapseDuplicates(t *testing.T) {
	e := NewEngine(sampleRows())

	keys := e.Options(ColumnKey)
	if len(keys) != 2 || keys[0].Value != "doe2020" || keys[1].Value != "lee2019" {
		t.Fatalf("unexpected key domain: %v", keys)
	}
	msgs := e.Options(ColumnMessage)
	if len(msgs) != 2 {
		t.Fatalf("duplicate messages not collapsed: %v", msgs)
	}
	for _, o := range msgs {
		if !o.Selected {
			t.Errorf("option %q not selected by default", o.Value)
		}
	}
}

func TestToggleHidesMatchingRowsOnly(t *testing.T) {
	rows := sampleRows()
	e := NewEngine(rows)

	e.Toggle(ColumnMessage, "invalid year")

	if e.Visible(rows[1]) {
		t.Error("row with deselected message still visible")
	}
	if !e.Visible(rows[0]) || !e.Visible(rows[2]) {
		t.Error("rows with other messages affected by toggle")
	}
	if !e.Active(ColumnMessage) {
		t.Error("message column should report an active filter")
	}

	// Toggling back restores visibility.
	e.Toggle(ColumnMessage, "invalid year")
	if !e.Visible(rows[1]) {
		t.Error("re-selected value still hidden")
	}
}

// Filtering is a conjunction across columns: restricting the message column
// to "empty title" and the key column to "lee2019" must leave only row 3.
func TestConjunctionAcrossColumns(t *testing.T) {
	rows := sampleRows()
	e := NewEngine(rows)

	e.Toggle(ColumnMessage, "invalid year") // only "empty title" passes
	e.Toggle(ColumnKey, "doe2020")          // only "lee2019" passes

	visible := make([]int, 0, len(rows))
	for i, r := range rows {
		if e.Visible(r) {
			visible = append(visible, i)
		}
	}
	if len(visible) != 1 || visible[0] != 2 {
		t.Fatalf("expected only row 2 visible, got %v", visible)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	rows := sampleRows()
	e := NewEngine(rows)

	e.Toggle(ColumnMessage, "empty title")
	e.Toggle(ColumnKey, "doe2020")
	e.Toggle(ColumnField, "Year")
	e.Reset()

	for i, r := range rows {
		if !e.Visible(r) {
			t.Errorf("row %d still hidden after reset", i)
		}
	}
	for _, c := range Columns {
		if e.Active(c) {
			t.Errorf("column %v still active after reset", c)
		}
	}

	// Reset is idempotent.
	e.Reset()
	for i, r := range rows {
		if !e.Visible(r) {
			t.Errorf("row %d hidden after second reset", i)
		}
	}
}

func TestToggleUnknownValueIgnored(t *testing.T) {
	rows := sampleRows()
	e := NewEngine(rows)
	e.Toggle(ColumnKey, "nope")
	for i, r := range rows {
		if !e.Visible(r) {
			t.Errorf("row %d hidden by unknown toggle", i)
		}
	}
}

func TestEmptyRowSet(t *testing.T) {
	e := NewEngine(nil)
	for _, c := range Columns {
		if opts := e.Options(c); len(opts) != 0 {
			t.Errorf("column %v has non-empty menu: %v", c, opts)
		}
	}
}

func TestMissingKeyRendersEmpty(t *testing.T) {
	rows := []integrity.Message{msg("", model.FieldTitle, "empty title")}
	e := NewEngine(rows)
	opts := e.Options(ColumnKey)
	if len(opts) != 1 || opts[0].Value != "" {
		t.Fatalf("missing key should appear as empty string option: %v", opts)
	}
	if !e.Visible(rows[0]) {
		t.Error("row with empty key hidden by default")
	}
}
