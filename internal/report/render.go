// Package report renders integrity messages for non-interactive runs and
// for in-dialog export.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/diegomarinho/jabref/internal/integrity"
)

// Metadata describes the checked library for report headers.
type Metadata struct {
	Library   string    `json:"library"`
	Repo      string    `json:"repo,omitempty"`
	Commit    string    `json:"commit,omitempty"`
	Branch    string    `json:"branch,omitempty"`
	Generated time.Time `json:"generated"`
}

// PrintTable writes a plain-text table of messages, one row per message.
func PrintTable(w io.Writer, msgs []integrity.Message, meta Metadata) {
	if meta.Library != "" {
		fmt.Fprintf(w, "Library: %s", meta.Library)
		if meta.Branch != "" {
			fmt.Fprintf(w, " (%s", meta.Branch)
			if meta.Commit != "" {
				fmt.Fprintf(w, "@%.8s", meta.Commit)
			}
			fmt.Fprint(w, ")")
		}
		fmt.Fprintln(w)
	}

	if len(msgs) == 0 {
		fmt.Fprintln(w, "No integrity problems found")
		return
	}

	t := tablewriter.NewTable(w)
	t.Header("Key", "Field", "Message")
	for _, m := range msgs {
		_ = t.Append(m.Key(), m.FieldName(), m.Text)
	}
	_ = t.Render()

	fmt.Fprintf(w, "\nProblems: %d\n", len(msgs))
}

type jsonMessage struct {
	Key     string `json:"key"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

type jsonReport struct {
	Metadata *Metadata     `json:"metadata,omitempty"`
	Messages []jsonMessage `json:"messages"`
}

func toJSONMessages(msgs []integrity.Message) []jsonMessage {
	out := make([]jsonMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, jsonMessage{Key: m.Key(), Field: m.FieldName(), Message: m.Text})
	}
	return out
}

// WriteJSON writes the messages as a JSON document, in order.
func WriteJSON(w io.Writer, msgs []integrity.Message) error {
	return WriteJSONWithMetadata(w, msgs, nil)
}

// WriteJSONWithMetadata writes the messages with an optional header block.
func WriteJSONWithMetadata(w io.Writer, msgs []integrity.Message, meta *Metadata) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{Metadata: meta, Messages: toJSONMessages(msgs)})
}

// WriteCSV writes the messages as key,field,message rows with a header.
func WriteCSV(w io.Writer, msgs []integrity.Message) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"key", "field", "message"}); err != nil {
		return err
	}
	for _, m := range msgs {
		if err := cw.Write([]string{m.Key(), m.FieldName(), m.Text}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
