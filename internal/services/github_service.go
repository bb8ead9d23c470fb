package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/joshua-takyi/devlink/internal/cache"
	"github.com/joshua-takyi/devlink/internal/models"
)

const (
	GithubAPIURL    = "https://api.github.com"
	githubRepoCount = 5
	githubCacheTTL  = 10 * time.Minute
)

var (
	ErrGithubUserNotFound = errors.New("github user not found")
	ErrGithubUnavailable  = errors.New("github api unavailable")
)

type GithubService struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	cache        *cache.Cache
}

func NewGithubService(httpClient *http.Client, baseURL, clientID, clientSecret string, c *cache.Cache) *GithubService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = GithubAPIURL
	}
	return &GithubService{
		httpClient:   httpClient,
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		cache:        c,
	}
}

// LatestRepos returns the user's five oldest-first repositories, served from
// the cache when possible.
func (gs *GithubService) LatestRepos(ctx context.Context, username string) ([]models.GithubRepo, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrGithubUserNotFound
	}

	var repos []models.GithubRepo
	err := gs.cache.CacheAside(ctx, "github:repos:"+strings.ToLower(username), &repos, githubCacheTTL, func() error {
		fetched, err := gs.fetchRepos(ctx, username)
		if err != nil {
			return err
		}
		repos = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return repos, nil
}

func (gs *GithubService) fetchRepos(ctx context.Context, username string) ([]models.GithubRepo, error) {
	q := url.Values{}
	q.Set("per_page", fmt.Sprint(githubRepoCount))
	q.Set("sort", "created")
	q.Set("direction", "asc")

	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", gs.baseURL, url.PathEscape(username), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build github request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if gs.clientID != "" && gs.clientSecret != "" {
		req.SetBasicAuth(gs.clientID, gs.clientSecret)
	}

	resp, err := gs.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGithubUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrGithubUserNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrGithubUnavailable, resp.StatusCode)
	}

	repos := []models.GithubRepo{}
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("failed to decode github response: %w", err)
	}
	return repos, nil
}
