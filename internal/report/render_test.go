package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegomarinho/jabref/internal/integrity"
	"github.com/diegomarinho/jabref/internal/model"
)

func sampleMessages() []integrity.Message {
	e1 := model.NewEntry("article", "doe2020")
	e2 := model.NewEntry("article", "")
	return []integrity.Message{
		{Entry: e1, Field: model.FieldTitle, Text: "empty title"},
		{Entry: e2, Field: model.FieldYear, Text: "should contain a four digit number"},
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, sampleMessages(), Metadata{Library: "refs.bib", Branch: "main", Commit: "abcdef0123456789"})
	out := buf.String()

	assert.Contains(t, out, "refs.bib")
	assert.Contains(t, out, "main")
	assert.Contains(t, out, "abcdef01")
	assert.Contains(t, out, "doe2020")
	assert.Contains(t, out, "empty title")
	assert.Contains(t, out, "Problems: 2")
}

func TestPrintTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, nil, Metadata{})
	assert.Contains(t, buf.String(), "No integrity problems found")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleMessages()))

	var doc struct {
		Messages []struct {
			Key     string `json:"key"`
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Messages, 2)
	assert.Equal(t, "doe2020", doc.Messages[0].Key)
	assert.Equal(t, "Title", doc.Messages[0].Field)
	// A record without a key renders as empty, never as an error.
	assert.Equal(t, "", doc.Messages[1].Key)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleMessages()))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"key", "field", "message"}, records[0])
	assert.Equal(t, []string{"doe2020", "Title", "empty title"}, records[1])
}
