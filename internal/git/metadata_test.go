package git

import "testing"

func TestRepoMetadataOutsideRepo(t *testing.T) {
	repo, commit, branch := RepoMetadata(t.TempDir())
	if repo != "" || commit != "" || branch != "" {
		t.Errorf("expected empty metadata outside a repository, got %q %q %q", repo, commit, branch)
	}
}

func TestShortRemote(t *testing.T) {
	cases := map[string]string{
		"https://github.com/diegomarinho/jabref.git": "diegomarinho/jabref",
		"git@github.com:diegomarinho/jabref.git":     "diegomarinho/jabref",
		"https://example.com/owner/repo":             "owner/repo",
	}
	for in, want := range cases {
		if got := shortRemote(in); got != want {
			t.Errorf("shortRemote(%q) = %q, want %q", in, got, want)
		}
	}
}
