// Package client is the consumer side of the API: a typed HTTP client, a
// state container driven by typed actions, and the action dispatchers that
// connect the two.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/joshua-takyi/devlink/internal/models"
	"github.com/joshua-takyi/devlink/internal/validation"
)

// APIError is a non-2xx answer. Fields holds the field-message map the API
// puts in every 4xx body.
type APIError struct {
	Status int
	Fields map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	parts := make([]string, 0, len(e.Fields))
	for k, v := range e.Fields {
		parts = append(parts, k+": "+v)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, strings.Join(parts, "; "))
}

// Client talks to the REST API. The auth token, once set, is sent on every
// request.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// SetToken sets the Authorization header value, "Bearer <jwt>" as returned
// by Login. An empty token stops sending the header.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return apiErr
	}
	apiErr.Fields = make(map[string]string, len(raw))
	for k, v := range raw {
		apiErr.Fields[k] = fmt.Sprint(v)
	}
	return apiErr
}

func (c *Client) Register(ctx context.Context, in validation.RegisterInput) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/api/users/register", in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login returns the "Bearer <jwt>" token. It does not install it; see
// SetToken.
func (c *Client) Login(ctx context.Context, in validation.LoginInput) (string, error) {
	var res models.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/login", in, &res); err != nil {
		return "", err
	}
	return res.Token, nil
}

func (c *Client) CurrentUser(ctx context.Context) (*models.CurrentUserResponse, error) {
	var res models.CurrentUserResponse
	if err := c.do(ctx, http.MethodGet, "/api/users/current", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) profile(ctx context.Context, method, path string, body any) (*models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, method, path, body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CurrentProfile(ctx context.Context) (*models.Profile, error) {
	return c.profile(ctx, http.MethodGet, "/api/profile", nil)
}

func (c *Client) Profiles(ctx context.Context) ([]*models.Profile, error) {
	var profiles []*models.Profile
	if err := c.do(ctx, http.MethodGet, "/api/profile/all", nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (c *Client) ProfileByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	return c.profile(ctx, http.MethodGet, "/api/profile/handle/"+url.PathEscape(handle), nil)
}

func (c *Client) ProfileByUser(ctx context.Context, userID string) (*models.Profile, error) {
	return c.profile(ctx, http.MethodGet, "/api/profile/user/"+url.PathEscape(userID), nil)
}

func (c *Client) SaveProfile(ctx context.Context, in validation.ProfileInput) (*models.Profile, error) {
	return c.profile(ctx, http.MethodPost, "/api/profile", in)
}

func (c *Client) AddExperience(ctx context.Context, in validation.ExperienceInput) (*models.Profile, error) {
	return c.profile(ctx, http.MethodPost, "/api/profile/experience", in)
}

func (c *Client) AddEducation(ctx context.Context, in validation.EducationInput) (*models.Profile, error) {
	return c.profile(ctx, http.MethodPost, "/api/profile/education", in)
}

func (c *Client) DeleteExperience(ctx context.Context, id string) (*models.Profile, error) {
	return c.profile(ctx, http.MethodDelete, "/api/profile/experience/"+url.PathEscape(id), nil)
}

func (c *Client) DeleteEducation(ctx context.Context, id string) (*models.Profile, error) {
	return c.profile(ctx, http.MethodDelete, "/api/profile/education/"+url.PathEscape(id), nil)
}

func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/profile", nil, nil)
}

func (c *Client) GithubRepos(ctx context.Context, username string) ([]models.GithubRepo, error) {
	var repos []models.GithubRepo
	if err := c.do(ctx, http.MethodGet, "/api/profile/github/"+url.PathEscape(username), nil, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

func (c *Client) post(ctx context.Context, method, path string, body any) (*models.Post, error) {
	var p models.Post
	if err := c.do(ctx, method, path, body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Posts(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	if err := c.do(ctx, http.MethodGet, "/api/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) Post(ctx context.Context, id string) (*models.Post, error) {
	return c.post(ctx, http.MethodGet, "/api/posts/"+url.PathEscape(id), nil)
}

func (c *Client) CreatePost(ctx context.Context, in validation.PostInput) (*models.Post, error) {
	return c.post(ctx, http.MethodPost, "/api/posts", in)
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/posts/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Like(ctx context.Context, id string) (*models.Post, error) {
	return c.post(ctx, http.MethodPost, "/api/posts/like/"+url.PathEscape(id), nil)
}

func (c *Client) Unlike(ctx context.Context, id string) (*models.Post, error) {
	return c.post(ctx, http.MethodPost, "/api/posts/unlike/"+url.PathEscape(id), nil)
}

func (c *Client) Comment(ctx context.Context, postID string, in validation.PostInput) (*models.Post, error) {
	return c.post(ctx, http.MethodPost, "/api/posts/comment/"+url.PathEscape(postID), in)
}

func (c *Client) DeleteComment(ctx context.Context, postID, commentID string) (*models.Post, error) {
	return c.post(ctx, http.MethodDelete, "/api/posts/comment/"+url.PathEscape(postID)+"/"+url.PathEscape(commentID), nil)
}
