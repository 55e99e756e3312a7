// Package github fetches repository popularity metadata from the
// GitHub REST API. Every call is best-effort: the gallery renders fine
// without it.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/showcasehub/gallery/internal/utils"
)

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

// ErrRateLimited signals an HTTP 429 from the API. Callers must not
// cache a negative result for it; the next render retries.
var ErrRateLimited = errors.New("github: rate limited")

// RepoInfo is the normalized popularity shape consumed by the gallery.
type RepoInfo struct {
	Forks     int       `json:"forks"`
	Stars     int       `json:"stars"`
	UpdatedOn time.Time `json:"updatedOn"`
}

// apiRepo is the raw response from the GitHub repos endpoint.
type apiRepo struct {
	ForksCount      int       `json:"forks_count"`
	StargazersCount int       `json:"stargazers_count"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client. token may be empty for unauthenticated
// calls; baseURL "" selects the public API.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchRepo retrieves metadata for owner/repo and normalizes it.
func (c *Client) FetchRepo(ctx context.Context, owner, repo string) (RepoInfo, error) {
	url := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return RepoInfo{}, fmt.Errorf("build request for %s/%s: %w", owner, repo, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return RepoInfo{}, fmt.Errorf("fetch %s/%s: %w", owner, repo, err)
	}
	defer utils.Close(resp.Body)

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return RepoInfo{}, ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return RepoInfo{}, fmt.Errorf("fetch %s/%s: status %d", owner, repo, resp.StatusCode)
	}

	var raw apiRepo
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return RepoInfo{}, fmt.Errorf("decode %s/%s: %w", owner, repo, err)
	}

	return RepoInfo{
		Forks:     raw.ForksCount,
		Stars:     raw.StargazersCount,
		UpdatedOn: raw.UpdatedAt,
	}, nil
}
