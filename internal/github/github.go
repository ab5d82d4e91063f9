// Package github lists a user's public repositories via the GitHub REST API.
//
// Profiles carry a GitHub username so the frontend can show the user's
// latest open-source work. This client fetches the five most recently
// created public repos for that handle.
//
// AUTHENTICATED VS ANONYMOUS:
// Anonymous GitHub API calls are rate-limited to 60/hour per IP, which a
// busy profile page burns through quickly. When a token is configured we
// build the HTTP client from oauth2.StaticTokenSource, which attaches
// "Authorization: Bearer <token>" to every request and raises the limit to
// 5000/hour. Without a token we fall back to a plain http.Client and accept
// the lower limit.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/sakif/devconnector/internal/apperror"
)

const apiBaseURL = "https://api.github.com"

// Repo is the portion of the GitHub repository object we care about.
// GitHub returns a much larger object — we only unmarshal the fields the
// profile page displays.
type Repo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	HTMLURL     string `json:"html_url"`
	Stars       int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
}

// Client calls the GitHub REST API.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient builds a Client. token may be empty (anonymous access).
func NewClient(token string) *Client {
	httpClient := &http.Client{Timeout: 10 * time.Second}
	if token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), src)
		httpClient.Timeout = 10 * time.Second
	}
	return &Client{http: httpClient, baseURL: apiBaseURL}
}

// NewClientForTest builds a Client pointed at a test server instead of the
// real GitHub API.
func NewClientForTest(baseURL string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}
}

// ListRepos returns the five most recently created public repositories for
// the given GitHub username, newest first.
//
// An unknown username returns apperror.ErrNotFound with the message the
// profile page expects; any other non-200 response is an internal failure.
func (c *Client) ListRepos(ctx context.Context, username string) ([]Repo, error) {
	endpoint := fmt.Sprintf(
		"%s/users/%s/repos?per_page=5&sort=created&direction=desc",
		c.baseURL, url.PathEscape(username),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("github: building request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github: fetching repos for %s: %w", username, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperror.NotFound("No Github profile found")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github: unexpected status %d fetching repos for %s",
			resp.StatusCode, username)
	}

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("github: decoding repos response: %w", err)
	}

	return repos, nil
}
