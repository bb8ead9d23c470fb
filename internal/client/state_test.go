package client

import (
	"testing"

	"github.com/joshua-takyi/devlink/internal/helpers"
	"github.com/joshua-takyi/devlink/internal/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestReduceAuth(t *testing.T) {
	user := &helpers.Claims{ID: primitive.NewObjectID().Hex(), Name: "Ann"}

	s := Reduce(State{}, SetCurrentUser{User: user})
	assert.True(t, s.Auth.IsAuthenticated)
	assert.Equal(t, user, s.Auth.User)

	s = Reduce(s, SetCurrentUser{})
	assert.False(t, s.Auth.IsAuthenticated)
	assert.Nil(t, s.Auth.User)
}

func TestReduceProfileLoadingCycle(t *testing.T) {
	s := Reduce(State{}, ProfileLoading{})
	assert.True(t, s.Profile.Loading)

	p := &models.Profile{Handle: "ann"}
	s = Reduce(s, GetProfile{Profile: p})
	assert.False(t, s.Profile.Loading)
	assert.Equal(t, p, s.Profile.Profile)

	s = Reduce(s, ClearCurrentProfile{})
	assert.Nil(t, s.Profile.Profile)

	s = Reduce(Reduce(s, ProfileLoading{}), GetProfiles{Profiles: []*models.Profile{p}})
	assert.False(t, s.Profile.Loading)
	assert.Len(t, s.Profile.Profiles, 1)
}

func TestReducePostsDoesNotMutateInput(t *testing.T) {
	first := &models.Post{ID: primitive.NewObjectID(), Text: "first post text"}
	second := &models.Post{ID: primitive.NewObjectID(), Text: "second post text"}
	before := Reduce(State{}, GetPosts{Posts: []*models.Post{first}})

	after := Reduce(before, AddPost{Post: second})
	assert.Equal(t, []*models.Post{second, first}, after.Post.Posts)
	assert.Equal(t, []*models.Post{first}, before.Post.Posts)

	deleted := Reduce(after, DeletePost{ID: first.ID})
	assert.Equal(t, []*models.Post{second}, deleted.Post.Posts)
	assert.Len(t, after.Post.Posts, 2)
}

func TestReduceErrors(t *testing.T) {
	s := Reduce(State{}, GetErrors{Errors: map[string]string{"email": "Email already exists"}})
	assert.Equal(t, "Email already exists", s.Errors["email"])

	s = Reduce(s, ClearErrors{})
	assert.Empty(t, s.Errors)
}

func TestStoreSubscribe(t *testing.T) {
	st := NewStore()
	var seen []bool
	unsubscribe := st.Subscribe(func(s State) { seen = append(seen, s.Post.Loading) })

	st.Dispatch(PostLoading{})
	st.Dispatch(GetPosts{})
	unsubscribe()
	st.Dispatch(PostLoading{})

	assert.Equal(t, []bool{true, false}, seen)
	assert.True(t, st.State().Post.Loading)
}
