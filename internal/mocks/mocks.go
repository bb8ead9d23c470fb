// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/joshua-takyi/devlink/internal/models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockUserRepo struct {
	mock.Mock
}

// CreateUser accepts either a *models.User or a func echoing the input as its
// first return value.
func (m *MockUserRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if fn, ok := args.Get(0).(func(context.Context, *models.User) *models.User); ok {
		return fn(ctx, user), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) profile(args mock.Arguments) (*models.Profile, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepo) GetProfileByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	return m.profile(m.Called(ctx, userID))
}

func (m *MockProfileRepo) GetProfileByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	return m.profile(m.Called(ctx, handle))
}

func (m *MockProfileRepo) ListProfiles(ctx context.Context) ([]*models.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Profile), args.Error(1)
}

func (m *MockProfileRepo) HandleExists(ctx context.Context, handle string) (bool, error) {
	args := m.Called(ctx, handle)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfileRepo) CreateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	args := m.Called(ctx, profile)
	if fn, ok := args.Get(0).(func(context.Context, *models.Profile) *models.Profile); ok {
		return fn(ctx, profile), args.Error(1)
	}
	return m.profile(args)
}

func (m *MockProfileRepo) UpdateProfile(ctx context.Context, userID primitive.ObjectID, fields models.ProfileFields) (*models.Profile, error) {
	return m.profile(m.Called(ctx, userID, fields))
}

func (m *MockProfileRepo) AddExperience(ctx context.Context, userID primitive.ObjectID, exp models.Experience) (*models.Profile, error) {
	return m.profile(m.Called(ctx, userID, exp))
}

func (m *MockProfileRepo) AddEducation(ctx context.Context, userID primitive.ObjectID, edu models.Education) (*models.Profile, error) {
	return m.profile(m.Called(ctx, userID, edu))
}

func (m *MockProfileRepo) RemoveExperience(ctx context.Context, userID primitive.ObjectID, expID primitive.ObjectID) (*models.Profile, error) {
	return m.profile(m.Called(ctx, userID, expID))
}

func (m *MockProfileRepo) RemoveEducation(ctx context.Context, userID primitive.ObjectID, eduID primitive.ObjectID) (*models.Profile, error) {
	return m.profile(m.Called(ctx, userID, eduID))
}

func (m *MockProfileRepo) DeleteProfileByUser(ctx context.Context, userID primitive.ObjectID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockPostRepo struct {
	mock.Mock
}

func (m *MockPostRepo) post(args mock.Arguments) (*models.Post, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepo) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	args := m.Called(ctx, post)
	if fn, ok := args.Get(0).(func(context.Context, *models.Post) *models.Post); ok {
		return fn(ctx, post), args.Error(1)
	}
	return m.post(args)
}

func (m *MockPostRepo) ListPosts(ctx context.Context) ([]*models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepo) GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return m.post(m.Called(ctx, id))
}

func (m *MockPostRepo) DeletePost(ctx context.Context, id, ownerID primitive.ObjectID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockPostRepo) AddLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.Post, error) {
	return m.post(m.Called(ctx, postID, userID))
}

func (m *MockPostRepo) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.Post, error) {
	return m.post(m.Called(ctx, postID, userID))
}

func (m *MockPostRepo) AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) (*models.Post, error) {
	return m.post(m.Called(ctx, postID, comment))
}

func (m *MockPostRepo) RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) (*models.Post, error) {
	return m.post(m.Called(ctx, postID, commentID))
}
