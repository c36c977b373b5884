package integritycheck

import (
	"encoding/json"
	"io"
)

// MarshalMessages pretty-prints messages as JSON for humans or pipelines.
func MarshalMessages(w io.Writer, msgs []Message) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(msgs)
}

// UnmarshalMessages decodes messages JSON, useful for ingestion tests.
func UnmarshalMessages(r io.Reader) ([]Message, error) {
	var ms []Message
	if err := json.NewDecoder(r).Decode(&ms); err != nil {
		return nil, err
	}
	return ms, nil
}
