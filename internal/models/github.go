package models

import "time"

// GithubRepo is the subset of the GitHub repository payload shown on a
// profile page.
type GithubRepo struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	HTMLURL     string    `json:"html_url"`
	Description string    `json:"description"`
	Stars       int       `json:"stargazers_count"`
	Watchers    int       `json:"watchers_count"`
	Forks       int       `json:"forks_count"`
	CreatedAt   time.Time `json:"created_at"`
}
