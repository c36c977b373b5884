package jabref

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/diegomarinho/jabref/internal/audit"
	"github.com/diegomarinho/jabref/internal/bib"
	"github.com/diegomarinho/jabref/internal/cache"
	"github.com/diegomarinho/jabref/internal/config"
	"github.com/diegomarinho/jabref/internal/git"
	"github.com/diegomarinho/jabref/internal/integrity"
	"github.com/diegomarinho/jabref/internal/model"
	"github.com/diegomarinho/jabref/internal/report"
	"github.com/diegomarinho/jabref/internal/tui"
	"github.com/diegomarinho/jabref/internal/update"
)

var (
	flagEnable       string
	flagDisable      string
	flagIgnoreKeys   string
	flagActivationMS int
)

func init() {
	cmd := &cobra.Command{
		Use:   "check [library.bib]",
		Short: "Run integrity checks on a BibTeX library",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCheck,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagEnable, "enable", "", "only run these checkers (comma-separated IDs)")
	cmd.Flags().StringVar(&flagDisable, "disable", "", "disable these checkers (comma-separated IDs)")
	cmd.Flags().StringVar(&flagIgnoreKeys, "ignore-keys", "", "comma-separated citation-key globs to skip")
	cmd.Flags().IntVar(&flagActivationMS, "double-activation-ms", 0, "double-activation window of the results dialog in milliseconds")
}

func runCheck(_ *cobra.Command, args []string) error {
	if flagSelfUpdate {
		if err := selfUpdate(); err != nil {
			return fmt.Errorf("self-update: %w", err)
		}
		_, _ = fmt.Fprintln(os.Stderr, "updated to latest; re-run command")
		return nil
	}

	library, err := resolveLibrary(args)
	if err != nil {
		return err
	}
	abs, _ := filepath.Abs(library)

	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(filepath.Dir(abs)); err == nil {
		lcfg = c
	}

	src, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("read library: %w", err)
	}
	entries, err := bib.Parse(src)
	if err != nil {
		return fmt.Errorf("parse %s: %w", library, err)
	}

	opts := integrity.Options{
		IgnoreKeys: splitList(flagIgnoreKeys),
		Enable:     splitList(pickString(flagEnable, lcfg.Enable, gcfg.Enable)),
		Disable:    splitList(pickString(flagDisable, lcfg.Disable, gcfg.Disable)),
	}
	opts.IgnoreKeys = append(opts.IgnoreKeys, lcfg.IgnoreKeys...)
	opts.IgnoreKeys = append(opts.IgnoreKeys, gcfg.IgnoreKeys...)

	if pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor) {
		// lipgloss and chroma both honor the NO_COLOR convention
		_ = os.Setenv("NO_COLOR", "1")
	}

	noCache := pickBool(flagNoCache, lcfg.NoCache, gcfg.NoCache)
	key := cache.ResultsKey(src, optionsFingerprint(opts)...)

	var msgs []integrity.Message
	fromCache := false
	if !noCache {
		if res, err := cache.Load(abs); err == nil && res.Hash == key {
			if rebuilt, ok := messagesFromCache(res.Records, entries); ok {
				msgs = rebuilt
				fromCache = true
			}
		}
	}
	if !fromCache {
		started := time.Now()
		msgs = integrity.Run(entries, opts)
		if !noCache {
			_ = cache.Save(abs, key, recordsForCache(msgs))
		}
		_ = audit.NewLog(abs).LogCheck(audit.CreateCheckRecord(abs, msgs, time.Since(started)))
	}

	interactive := !flagJSON && !flagCSV && !flagTable &&
		term.IsTerminal(int(os.Stdout.Fd()))

	if interactive && !flagNoUpdateCheck {
		if latest, newer, _ := update.Check(version, false); newer && latest != "" {
			_, _ = fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'jabref --self-update' to upgrade\n", latest)
		}
	}

	switch {
	case flagJSON:
		repo, commit, branch := git.RepoMetadata(filepath.Dir(abs))
		meta := report.Metadata{
			Library:   filepath.Base(abs),
			Repo:      repo,
			Commit:    commit,
			Branch:    branch,
			Generated: time.Now(),
		}
		if err := report.WriteJSONWithMetadata(os.Stdout, msgs, &meta); err != nil {
			return err
		}
	case flagCSV:
		if err := report.WriteCSV(os.Stdout, msgs); err != nil {
			return err
		}
	case interactive:
		ms := flagActivationMS
		if ms == 0 {
			ms = pickInt(0, lcfg.DoubleActivationMS, gcfg.DoubleActivationMS)
		}
		return tui.Run(msgs, abs, ms)
	default:
		meta := report.Metadata{Library: filepath.Base(abs), Generated: time.Now()}
		report.PrintTable(os.Stdout, msgs, meta)
	}

	if len(msgs) > 0 {
		os.Exit(1)
	}
	return nil
}

// resolveLibrary picks the library path from args or falls back to the
// single .bib file in the working directory.
func resolveLibrary(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	matches, _ := filepath.Glob("*.bib")
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no .bib file found; pass a library path")
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("multiple .bib files found; pass a library path")
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// optionsFingerprint flattens the check options into stable strings for the
// cache key, so a changed enable/disable/ignore set invalidates the cache
// even when the library itself is unchanged.
func optionsFingerprint(opts integrity.Options) []string {
	return []string{
		"ignore=" + strings.Join(opts.IgnoreKeys, ","),
		"enable=" + strings.Join(opts.Enable, ","),
		"disable=" + strings.Join(opts.Disable, ","),
	}
}

func recordsForCache(msgs []integrity.Message) []cache.Record {
	records := make([]cache.Record, 0, len(msgs))
	for _, m := range msgs {
		records = append(records, cache.Record{
			Key:     m.Key(),
			Field:   string(m.Field),
			Message: m.Text,
		})
	}
	return records
}

// messagesFromCache rebuilds messages against the freshly parsed entries so
// the dialog can still navigate to records on a cache hit. Cached records
// reference entries by citation key, so a library with duplicate or missing
// keys cannot be rebound unambiguously; it reports ok=false and the caller
// re-runs the checks.
func messagesFromCache(records []cache.Record, entries []*model.Entry) ([]integrity.Message, bool) {
	byKey := make(map[string]*model.Entry, len(entries))
	for _, e := range entries {
		k := e.CitationKey()
		if k == "" {
			return nil, false
		}
		if _, dup := byKey[k]; dup {
			return nil, false
		}
		byKey[k] = e
	}
	msgs := make([]integrity.Message, 0, len(records))
	for _, r := range records {
		msgs = append(msgs, integrity.Message{
			Entry: byKey[r.Key],
			Field: model.Field(r.Field),
			Text:  r.Message,
		})
	}
	return msgs, true
}
