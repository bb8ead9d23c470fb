package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/joshua-takyi/devlink/internal/helpers"
	"github.com/joshua-takyi/devlink/internal/models"
	"github.com/joshua-takyi/devlink/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeAPI answers a handful of routes the way the server does.
type fakeAPI struct {
	tokens *helpers.TokenManager
	userID primitive.ObjectID
	posts  []*models.Post
	likes  int
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) authorized(r *http.Request) bool {
	token, ok := helpers.BearerToken(r.Header.Get("Authorization"))
	if !ok {
		return false
	}
	_, err := f.tokens.Verify(token)
	return err == nil
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/users/login":
		var in validation.LoginInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Password != "secret123" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"password": "Password incorrect"})
			return
		}
		token, _ := f.tokens.Issue(f.userID.Hex(), "Ann", "//avatar")
		writeJSON(w, http.StatusOK, models.TokenResponse{Success: true, Token: "Bearer " + token})

	case r.Method == http.MethodGet && r.URL.Path == "/api/profile":
		if !f.authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"noProfile": "There is no profile for this user."})

	case r.Method == http.MethodGet && r.URL.Path == "/api/posts":
		writeJSON(w, http.StatusOK, f.posts)

	case r.Method == http.MethodPost && r.URL.Path == "/api/posts":
		if !f.authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var in validation.PostInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		if res := validation.ValidatePost(in); !res.IsValid {
			writeJSON(w, http.StatusBadRequest, res.Errors)
			return
		}
		p := &models.Post{ID: primitive.NewObjectID(), UserID: f.userID, Text: in.Text, Name: "Ann"}
		f.posts = append([]*models.Post{p}, f.posts...)
		writeJSON(w, http.StatusOK, p)

	case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/api/posts/like/"):
		f.likes++
		if f.likes > 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"alreadyLiked": "User already liked this post"})
			return
		}
		f.posts[0].Likes = append(f.posts[0].Likes, models.Like{ID: primitive.NewObjectID(), UserID: f.userID})
		writeJSON(w, http.StatusOK, f.posts[0])

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newActions(t *testing.T) (*Actions, *Store, *MemoryStorage, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{tokens: helpers.NewTokenManager("secret"), userID: primitive.NewObjectID()}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	store := NewStore()
	storage := &MemoryStorage{}
	return NewActions(New(srv.URL, srv.Client()), store, storage), store, storage, api
}

func TestLoginPersistsTokenAndSetsUser(t *testing.T) {
	actions, store, storage, api := newActions(t)
	ctx := context.Background()

	require.NoError(t, actions.LoginUser(ctx, validation.LoginInput{Email: "ann@x.com", Password: "secret123"}))

	s := store.State()
	require.True(t, s.Auth.IsAuthenticated)
	assert.Equal(t, api.userID.Hex(), s.Auth.User.ID)
	saved, _ := storage.Load()
	assert.Equal(t, actions.api.Token(), saved)

	actions.LogoutUser()
	assert.False(t, store.State().Auth.IsAuthenticated)
	saved, _ = storage.Load()
	assert.Empty(t, saved)
	assert.Empty(t, actions.api.Token())
}

func TestLoginFailureDispatchesFieldErrors(t *testing.T) {
	actions, store, _, _ := newActions(t)

	err := actions.LoginUser(context.Background(), validation.LoginInput{Email: "ann@x.com", Password: "nope"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, map[string]string{"password": "Password incorrect"}, store.State().Errors)
	assert.False(t, store.State().Auth.IsAuthenticated)
}

func TestCurrentProfileNotFoundMeansNoProfileYet(t *testing.T) {
	actions, store, _, _ := newActions(t)
	ctx := context.Background()
	require.NoError(t, actions.LoginUser(ctx, validation.LoginInput{Email: "ann@x.com", Password: "secret123"}))

	require.NoError(t, actions.GetCurrentProfile(ctx))
	s := store.State()
	assert.Nil(t, s.Profile.Profile)
	assert.False(t, s.Profile.Loading)
	assert.Empty(t, s.Errors)
}

func TestPostFlow(t *testing.T) {
	actions, store, _, _ := newActions(t)
	ctx := context.Background()
	require.NoError(t, actions.LoginUser(ctx, validation.LoginInput{Email: "ann@x.com", Password: "secret123"}))

	err := actions.AddPost(ctx, "short")
	require.Error(t, err)
	assert.Equal(t, "Post must be between 10-300 characters.", store.State().Errors["text"])

	require.NoError(t, actions.AddPost(ctx, "Hello everyone, first post"))
	assert.Empty(t, store.State().Errors)
	require.Len(t, store.State().Post.Posts, 1)
	postID := store.State().Post.Posts[0].ID.Hex()

	require.NoError(t, actions.AddLike(ctx, postID))
	require.Len(t, store.State().Post.Posts, 1)
	assert.Len(t, store.State().Post.Posts[0].Likes, 1)

	require.Error(t, actions.AddLike(ctx, postID))
	assert.Contains(t, store.State().Errors, "alreadyLiked")
}

func TestBootstrap(t *testing.T) {
	t.Run("no stored token", func(t *testing.T) {
		actions, store, _, _ := newActions(t)
		ok, err := actions.Bootstrap()
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, store.State().Auth.IsAuthenticated)
	})

	t.Run("live token", func(t *testing.T) {
		actions, store, storage, api := newActions(t)
		token, err := api.tokens.Issue(api.userID.Hex(), "Ann", "//avatar")
		require.NoError(t, err)
		require.NoError(t, storage.Save("Bearer "+token))

		ok, err := actions.Bootstrap()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Ann", store.State().Auth.User.Name)
		assert.Equal(t, "Bearer "+token, actions.api.Token())
	})

	t.Run("expired token logs out", func(t *testing.T) {
		actions, store, storage, api := newActions(t)
		token, err := api.tokens.Issue(api.userID.Hex(), "Ann", "//avatar")
		require.NoError(t, err)
		require.NoError(t, storage.Save("Bearer "+token))
		store.Dispatch(GetProfile{Profile: &models.Profile{Handle: "stale"}})
		actions.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

		ok, err := actions.Bootstrap()
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, store.State().Auth.IsAuthenticated)
		assert.Nil(t, store.State().Profile.Profile)
		saved, _ := storage.Load()
		assert.Empty(t, saved)
	})
}
