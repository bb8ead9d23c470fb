package client

import (
	"sync"

	"github.com/joshua-takyi/devlink/internal/helpers"
	"github.com/joshua-takyi/devlink/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthState struct {
	IsAuthenticated bool
	User            *helpers.Claims
}

type ProfileState struct {
	// Profile is nil both before loading and when the user has none yet.
	Profile  *models.Profile
	Profiles []*models.Profile
	Loading  bool
}

type PostState struct {
	Posts   []*models.Post
	Post    *models.Post
	Loading bool
}

type State struct {
	Auth    AuthState
	Profile ProfileState
	Post    PostState
	Errors  map[string]string
}

// Action is a state transition. The set is closed: only the types below
// implement it.
type Action interface {
	action()
}

type (
	// SetCurrentUser with a nil User logs out.
	SetCurrentUser      struct{ User *helpers.Claims }
	ProfileLoading      struct{}
	GetProfile          struct{ Profile *models.Profile }
	GetProfiles         struct{ Profiles []*models.Profile }
	ClearCurrentProfile struct{}
	PostLoading         struct{}
	GetPosts            struct{ Posts []*models.Post }
	GetPost             struct{ Post *models.Post }
	AddPost             struct{ Post *models.Post }
	DeletePost          struct{ ID primitive.ObjectID }
	GetErrors           struct{ Errors map[string]string }
	ClearErrors         struct{}
)

func (SetCurrentUser) action()      {}
func (ProfileLoading) action()      {}
func (GetProfile) action()          {}
func (GetProfiles) action()         {}
func (ClearCurrentProfile) action() {}
func (PostLoading) action()         {}
func (GetPosts) action()            {}
func (GetPost) action()             {}
func (AddPost) action()             {}
func (DeletePost) action()          {}
func (GetErrors) action()           {}
func (ClearErrors) action()         {}

// Reduce returns the state after a. It never mutates s; slices are copied
// before they change.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetCurrentUser:
		s.Auth = AuthState{IsAuthenticated: a.User != nil, User: a.User}
	case ProfileLoading:
		s.Profile.Loading = true
	case GetProfile:
		s.Profile.Profile = a.Profile
		s.Profile.Loading = false
	case GetProfiles:
		s.Profile.Profiles = a.Profiles
		s.Profile.Loading = false
	case ClearCurrentProfile:
		s.Profile.Profile = nil
	case PostLoading:
		s.Post.Loading = true
	case GetPosts:
		s.Post.Posts = a.Posts
		s.Post.Loading = false
	case GetPost:
		s.Post.Post = a.Post
		s.Post.Loading = false
	case AddPost:
		posts := make([]*models.Post, 0, len(s.Post.Posts)+1)
		posts = append(posts, a.Post)
		s.Post.Posts = append(posts, s.Post.Posts...)
	case DeletePost:
		posts := make([]*models.Post, 0, len(s.Post.Posts))
		for _, p := range s.Post.Posts {
			if p.ID != a.ID {
				posts = append(posts, p)
			}
		}
		s.Post.Posts = posts
	case GetErrors:
		s.Errors = a.Errors
	case ClearErrors:
		s.Errors = nil
	}
	return s
}

// Store holds the current State and notifies subscribers after every
// dispatch.
type Store struct {
	mu          sync.RWMutex
	state       State
	nextID      int
	subscribers map[int]func(State)
}

func NewStore() *Store {
	return &Store{subscribers: map[int]func(State){}}
}

func (st *Store) State() State {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state
}

func (st *Store) Dispatch(a Action) {
	st.mu.Lock()
	st.state = Reduce(st.state, a)
	state := st.state
	subs := make([]func(State), 0, len(st.subscribers))
	for _, fn := range st.subscribers {
		subs = append(subs, fn)
	}
	st.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}

// Subscribe registers fn and returns a func that removes it.
func (st *Store) Subscribe(fn func(State)) func() {
	st.mu.Lock()
	id := st.nextID
	st.nextID++
	st.subscribers[id] = fn
	st.mu.Unlock()

	return func() {
		st.mu.Lock()
		delete(st.subscribers, id)
		st.mu.Unlock()
	}
}
