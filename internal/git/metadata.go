// Package git reads repository details recorded alongside redaction runs.
package git

import (
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// Metadata identifies the checkout a screenshots directory lives in.
type Metadata struct {
	Repo   string `json:"repo,omitempty"`
	Commit string `json:"commit,omitempty"`
	Branch string `json:"branch,omitempty"`
}

// RepoMetadata returns best-effort metadata for the repository enclosing
// dir. Fields are empty when dir is not inside a repository or HEAD is
// unborn.
func RepoMetadata(dir string) Metadata {
	var m Metadata
	if strings.ContainsRune(dir, 0) {
		return m
	}
	abs, err := filepath.Abs(filepath.Clean(dir))
	if err != nil {
		return m
	}
	repo, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return m
	}
	if remote, err := repo.Remote("origin"); err == nil && len(remote.Config().URLs) > 0 {
		m.Repo = shortRepo(remote.Config().URLs[0])
	}
	head, err := repo.Head()
	if err != nil {
		return m
	}
	m.Commit = head.Hash().String()
	if head.Name().IsBranch() {
		m.Branch = head.Name().Short()
	}
	return m
}

// shortRepo reduces a remote URL to owner/name when it can.
func shortRepo(url string) string {
	s := strings.TrimSuffix(strings.TrimSpace(url), ".git")
	if i := strings.Index(s, "github.com/"); i >= 0 {
		return s[i+len("github.com/"):]
	}
	if i := strings.LastIndex(s, ":"); i >= 0 && !strings.Contains(s[i:], "//") {
		s = s[i+1:]
	}
	return s
}
