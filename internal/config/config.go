package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Port               string
	MongoDBURI         string
	MongoDBPassword    string
	MongoDBDatabase    string
	JWTSecret          string
	RedisURL           string
	Environment        string
	LogLevel           string
	AllowedOrigins     []string
	GithubClientID     string
	GithubClientSecret string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:               getEnvWithDefault("PORT", "5000"),
		MongoDBURI:         os.Getenv("MONGODB_URI"),
		MongoDBPassword:    os.Getenv("MONGODB_PASSWORD"),
		MongoDBDatabase:    getEnvWithDefault("MONGODB_DATABASE", "devlink"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		RedisURL:           os.Getenv("REDIS_URL"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		AllowedOrigins:     splitList(getEnvWithDefault("ALLOWED_ORIGINS", "http://localhost:3000")),
		GithubClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		GithubClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
	}

	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// MongoDBConnectionURI fills the "<password>" placeholder Atlas puts in
// copied connection strings.
func (c *Config) MongoDBConnectionURI() string {
	return strings.Replace(c.MongoDBURI, "<password>", c.MongoDBPassword, 1)
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
