// Package git extracts best-effort repository metadata for report headers.
package git

import (
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// RepoMetadata returns (repo, commit, branch) for the repository containing
// root, walking up to find the work tree. Every value is best effort; empty
// strings are returned on any failure, never an error. A library outside a
// repository is a perfectly normal state.
func RepoMetadata(root string) (repo, commit, branch string) {
	r, err := gogit.PlainOpenWithOptions(root, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", "", ""
	}

	if head, err := r.Head(); err == nil {
		commit = head.Hash().String()
		if head.Name().IsBranch() {
			branch = head.Name().Short()
		}
	}

	if remote, err := r.Remote("origin"); err == nil {
		urls := remote.Config().URLs
		if len(urls) > 0 {
			repo = shortRemote(urls[0])
		}
	}
	return repo, commit, branch
}

// shortRemote reduces a remote URL to owner/name when possible.
func shortRemote(url string) string {
	s := strings.TrimSuffix(url, ".git")
	if i := strings.LastIndex(s, ":"); i != -1 && !strings.Contains(s[i:], "/") {
		// scp-like syntax with no path after the colon
		return s
	}
	if i := strings.Index(s, "://"); i != -1 {
		s = s[i+3:]
		if j := strings.Index(s, "/"); j != -1 {
			s = s[j+1:]
		}
		return s
	}
	if i := strings.LastIndex(s, ":"); i != -1 {
		return s[i+1:]
	}
	return s
}
