package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Record is one cached problem, flattened so results survive a reload
// without re-running the checks.
type Record struct {
	Key     string `json:"key"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Results stores the problems and metadata from the last check of a library.
type Results struct {
	Hash      string    `json:"hash"`
	Library   string    `json:"library"`
	Timestamp time.Time `json:"timestamp"`
	Count     int       `json:"count"`
	Records   []Record  `json:"records"`
}

// ContentKey hashes library content for cache validation.
func ContentKey(b []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(b))
}

// ResultsKey hashes library content together with the option strings that
// shaped the check run. Changing either the file or the options yields a
// different key, so stale results are never served for a new option set.
func ResultsKey(content []byte, opts ...string) string {
	d := xxhash.New()
	_, _ = d.Write(content)
	for _, o := range opts {
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(o)
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

func resultsPath(library string) string {
	dir := filepath.Dir(library)
	// Prefer storing cache under .git to avoid accidental commits
	// Fall back to the library directory if .git does not exist
	gitDir := filepath.Join(dir, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "jabref_last_check.json")
	}
	return filepath.Join(dir, ".jabref_last_check.json")
}

// Save writes check results for a library to cache.
func Save(library, hash string, records []Record) error {
	results := Results{
		Hash:      hash,
		Library:   filepath.Base(library),
		Timestamp: time.Now(),
		Count:     len(records),
		Records:   records,
	}
	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(resultsPath(library), b, 0644)
}

// Load reads the last cached check results for a library. The caller is
// responsible for comparing Results.Hash against the current content key.
func Load(library string) (Results, error) {
	var results Results
	f, err := os.ReadFile(resultsPath(library))
	if err != nil {
		return results, err
	}
	if err := json.Unmarshal(f, &results); err != nil {
		return results, err
	}
	return results, nil
}
