package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/diegomarinho/jabref/internal/integrity"
)

// CheckRecord is one line of the check history: what was checked, when, and
// how many problems each field contributed.
type CheckRecord struct {
	Timestamp     time.Time        `json:"timestamp"`
	CheckID       string           `json:"check_id"`
	Library       string           `json:"library"`
	TotalProblems int              `json:"total_problems"`
	FieldCounts   map[string]int   `json:"field_counts"`
	Duration      string           `json:"duration"`
	TopProblems   []ProblemSummary `json:"top_problems,omitempty"`
}

// ProblemSummary is a compact view of one problem for the history log.
type ProblemSummary struct {
	Key     string `json:"key"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Log appends check records to a JSONL file next to the library, preferring
// the .git directory so the history never gets committed by accident.
type Log struct {
	logPath string
}

func NewLog(library string) *Log {
	dir := filepath.Dir(library)
	gitDir := filepath.Join(dir, ".git")
	logPath := filepath.Join(dir, ".jabref_audit.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		logPath = filepath.Join(gitDir, "jabref_audit.jsonl")
	}
	return &Log{logPath: logPath}
}

// LoadHistory returns past check records, newest first. The log is one JSON
// record per line; lines that fail to decode are skipped so one corrupt
// write cannot hide the rest of the history.
func (a *Log) LoadHistory() ([]CheckRecord, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []CheckRecord
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		var record CheckRecord
		if err := json.Unmarshal(sc.Bytes(), &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// LogCheck appends one record to the history.
func (a *Log) LogCheck(record CheckRecord) error {
	if record.CheckID == "" {
		record.CheckID = fmt.Sprintf("check_%d", time.Now().Unix())
	}

	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	if err := encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// CreateCheckRecord summarizes one check run for the history log. At most
// ten problems are carried verbatim.
func CreateCheckRecord(library string, msgs []integrity.Message, duration time.Duration) CheckRecord {
	fieldCounts := make(map[string]int)
	for _, m := range msgs {
		fieldCounts[m.FieldName()]++
	}

	top := make([]ProblemSummary, 0, 10)
	for i, m := range msgs {
		if i >= 10 {
			break
		}
		top = append(top, ProblemSummary{
			Key:     m.Key(),
			Field:   m.FieldName(),
			Message: m.Text,
		})
	}

	return CheckRecord{
		Timestamp:     time.Now(),
		Library:       filepath.Base(library),
		TotalProblems: len(msgs),
		FieldCounts:   fieldCounts,
		Duration:      duration.String(),
		TopProblems:   top,
	}
}
