package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/joshua-takyi/devlink/internal/helpers"
	"github.com/joshua-takyi/devlink/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DEVLINK_API_URL", "http://api.test:9000")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://api.test:9000", cfg.APIURL)
	assert.Equal(t, "token", filepath.Base(cfg.TokenFile))
}

func TestLoginWhoamiLogout(t *testing.T) {
	tokens := helpers.NewTokenManager("secret")
	userID := primitive.NewObjectID()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		token, _ := tokens.Issue(userID.Hex(), "Ann", "//avatar")
		_ = json.NewEncoder(w).Encode(models.TokenResponse{Success: true, Token: "Bearer " + token})
	}))
	defer srv.Close()

	cfg := &cliConfig{APIURL: srv.URL, TokenFile: filepath.Join(t.TempDir(), "token")}
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, run(ctx, cfg, []string{"whoami"}, &out))
	assert.Equal(t, "not logged in\n", out.String())

	out.Reset()
	require.NoError(t, run(ctx, cfg, []string{"login", "-email", "ann@x.com", "-password", "secret123"}, &out))
	assert.Equal(t, "logged in as Ann\n", out.String())

	out.Reset()
	require.NoError(t, run(ctx, cfg, []string{"whoami"}, &out))
	assert.Contains(t, out.String(), "Ann ("+userID.Hex()+")")

	out.Reset()
	require.NoError(t, run(ctx, cfg, []string{"logout"}, &out))
	out.Reset()
	require.NoError(t, run(ctx, cfg, []string{"whoami"}, &out))
	assert.Equal(t, "not logged in\n", out.String())
}

func TestPostRequiresLogin(t *testing.T) {
	cfg := &cliConfig{APIURL: "http://127.0.0.1:1", TokenFile: filepath.Join(t.TempDir(), "token")}
	err := run(context.Background(), cfg, []string{"post", "hello", "world"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "not logged in")
}

func TestUnknownCommand(t *testing.T) {
	cfg := &cliConfig{APIURL: "http://127.0.0.1:1", TokenFile: filepath.Join(t.TempDir(), "token")}
	var out bytes.Buffer
	err := run(context.Background(), cfg, []string{"dance"}, &out)
	assert.ErrorContains(t, err, "unknown command")
	assert.Contains(t, out.String(), "usage:")
}
