package enrich

import (
	"strings"
	"time"
)

// Metadata is the normalized popularity shape shown on cards and
// panels. Forks and Stars are never negative.
type Metadata struct {
	Forks     int       `json:"forks"`
	Stars     int       `json:"stars"`
	UpdatedOn time.Time `json:"updatedOn"`
}

const githubPrefix = "https://github.com/"

// ParseRepoURL derives the {owner, repo} identity from an entry's
// source URL. Anything that is not a github.com repository URL yields
// ok=false; the caller renders without metadata, silently.
func ParseRepoURL(sourceURL string) (owner, repo string, ok bool) {
	lowered := strings.ToLower(strings.TrimSpace(sourceURL))
	if !strings.HasPrefix(lowered, githubPrefix) {
		return "", "", false
	}

	path := strings.Trim(strings.TrimPrefix(lowered, githubPrefix), "/")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// RepoID joins owner and repo into the cache key form "owner/repo".
func RepoID(owner, repo string) string {
	return owner + "/" + repo
}
