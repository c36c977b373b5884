package update

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	semver "github.com/blang/semver/v4"
)

const (
	repoLatestURL = "https://api.github.com/repos/diegomarinho/jabref/releases/latest"
	cacheFileName = "update.json"
	cacheMaxAge   = 24 * time.Hour
)

type cached struct {
	LastChecked time.Time `json:"last_checked"`
	Latest      string    `json:"latest"`
}

// store persists the last answer so the GitHub API is hit at most once per
// cacheMaxAge. An empty path disables persistence.
type store struct {
	path string
}

func newStore() store {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return store{path: filepath.Join(base, "jabref", cacheFileName)}
	}
	home, _ := os.UserHomeDir()
	if home == "" {
		return store{}
	}
	return store{path: filepath.Join(home, ".config", "jabref", cacheFileName)}
}

func (s store) load() cached {
	var c cached
	if s.path == "" {
		return c
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		return c
	}
	_ = json.Unmarshal(b, &c)
	return c
}

func (s store) save(c cached) {
	if s.path == "" {
		return
	}
	_ = os.MkdirAll(filepath.Dir(s.path), 0755)
	b, _ := json.MarshalIndent(c, "", "  ")
	_ = os.WriteFile(s.path, b, 0644)
}

func (c cached) fresh() bool {
	return c.Latest != "" && time.Since(c.LastChecked) <= cacheMaxAge
}

func latestVersionOnline() (string, error) {
	client := &http.Client{Timeout: 2 * time.Second}
	req, _ := http.NewRequest("GET", repoLatestURL, nil)
	req.Header.Set("User-Agent", "jabref-updater")
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	var obj struct {
		TagName string `json:"tag_name"`
		Name    string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&obj); err != nil {
		return "", err
	}
	if obj.TagName != "" {
		return obj.TagName, nil
	}
	return obj.Name, nil
}

// Check returns (latest, isNewer, error). It uses a 24h cache and skips in CI.
func Check(current string, noNetwork bool) (string, bool, error) {
	if os.Getenv("CI") != "" || noNetwork {
		return "", false, nil
	}
	s := newStore()
	c := s.load()
	if !c.fresh() {
		v, err := latestVersionOnline()
		if err != nil {
			return c.Latest, false, nil
		}
		c = cached{LastChecked: time.Now(), Latest: normalize(v)}
		s.save(c)
	}
	return c.Latest, isNewer(c.Latest, current), nil
}

func normalize(v string) string {
	return strings.TrimPrefix(strings.TrimSpace(v), "v")
}

// isNewer reports whether latest is a strictly newer semantic version than
// current. Unparseable versions never report newer.
func isNewer(latest, current string) bool {
	lv, err := semver.ParseTolerant(normalize(latest))
	if err != nil {
		return false
	}
	cv, err := semver.ParseTolerant(normalize(current))
	if err != nil {
		return false
	}
	return lv.GT(cv)
}
