package services

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/joshua-takyi/devlink/internal/helpers"
	"github.com/joshua-takyi/devlink/internal/mocks"
	"github.com/joshua-takyi/devlink/internal/models"
	"github.com/joshua-takyi/devlink/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func claimsFor(id primitive.ObjectID) *helpers.Claims {
	return &helpers.Claims{ID: id.Hex(), Name: gofakeit.Name(), Avatar: "//www.gravatar.com/avatar/x"}
}

func TestCreatePostUsesTokenIdentity(t *testing.T) {
	repo := new(mocks.MockPostRepo)
	svc := NewPostService(repo)
	ctx := context.Background()
	author := claimsFor(primitive.NewObjectID())

	repo.On("CreatePost", ctx, mock.MatchedBy(func(p *models.Post) bool {
		return p.Name == author.Name && p.Avatar == author.Avatar && p.UserID.Hex() == author.ID && p.Text == "Hello world from Ann"
	})).Return(func(_ context.Context, p *models.Post) *models.Post { return p }, nil)

	post, err := svc.Create(ctx, author, validation.PostInput{Text: "  Hello world from Ann "})
	require.NoError(t, err)
	assert.Equal(t, author.Name, post.Name)
	repo.AssertExpectations(t)
}

func TestCreatePostRejectsMalformedClaims(t *testing.T) {
	svc := NewPostService(new(mocks.MockPostRepo))
	_, err := svc.Create(context.Background(), &helpers.Claims{ID: "nope"}, validation.PostInput{Text: "Hello world from Ann"})
	assert.ErrorIs(t, err, models.ErrNotAuthorized)
}

func TestGetPostMalformedIDIsNotFound(t *testing.T) {
	repo := new(mocks.MockPostRepo)
	svc := NewPostService(repo)

	_, err := svc.Get(context.Background(), "xyz")
	assert.ErrorIs(t, err, models.ErrPostNotFound)
	repo.AssertNotCalled(t, "GetPostByID", mock.Anything, mock.Anything)
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()
	postID := primitive.NewObjectID()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	repo := new(mocks.MockPostRepo)
	repo.On("DeletePost", ctx, postID, owner).Return(nil)
	repo.On("DeletePost", ctx, postID, stranger).Return(models.ErrNotAuthorized)
	svc := NewPostService(repo)

	assert.NoError(t, svc.Delete(ctx, owner, postID.Hex()))
	assert.ErrorIs(t, svc.Delete(ctx, stranger, postID.Hex()), models.ErrNotAuthorized)
}

func TestLikeAndUnlike(t *testing.T) {
	ctx := context.Background()
	postID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	repo := new(mocks.MockPostRepo)
	liked := &models.Post{ID: postID, Likes: []models.Like{{ID: primitive.NewObjectID(), UserID: userID}}}
	repo.On("AddLike", ctx, postID, userID).Return(liked, nil).Once()
	repo.On("AddLike", ctx, postID, userID).Return(nil, models.ErrAlreadyLiked).Once()
	repo.On("RemoveLike", ctx, postID, userID).Return(&models.Post{ID: postID}, nil).Once()
	repo.On("RemoveLike", ctx, postID, userID).Return(nil, models.ErrNotLiked).Once()
	svc := NewPostService(repo)

	p, err := svc.Like(ctx, userID, postID.Hex())
	require.NoError(t, err)
	assert.True(t, p.LikedBy(userID))

	_, err = svc.Like(ctx, userID, postID.Hex())
	assert.ErrorIs(t, err, models.ErrAlreadyLiked)

	p, err = svc.Unlike(ctx, userID, postID.Hex())
	require.NoError(t, err)
	assert.False(t, p.LikedBy(userID))

	_, err = svc.Unlike(ctx, userID, postID.Hex())
	assert.ErrorIs(t, err, models.ErrNotLiked)
}

func TestCommentCarriesAuthor(t *testing.T) {
	ctx := context.Background()
	postID := primitive.NewObjectID()
	authorID := primitive.NewObjectID()
	author := claimsFor(authorID)

	repo := new(mocks.MockPostRepo)
	repo.On("AddComment", ctx, postID, mock.MatchedBy(func(c models.Comment) bool {
		return c.UserID == authorID && c.Name == author.Name && !c.ID.IsZero() && !c.Date.IsZero()
	})).Return(&models.Post{ID: postID}, nil)
	svc := NewPostService(repo)

	_, err := svc.Comment(ctx, author, postID.Hex(), validation.PostInput{Text: "Nice post, thanks!"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDeleteComment(t *testing.T) {
	ctx := context.Background()
	owner := primitive.NewObjectID()
	commenter := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	commentID := primitive.NewObjectID()
	post := &models.Post{
		ID:       primitive.NewObjectID(),
		UserID:   owner,
		Comments: []models.Comment{{ID: commentID, UserID: commenter, Text: "first comment here"}},
	}

	tests := []struct {
		name      string
		caller    primitive.ObjectID
		commentID string
		wantErr   error
	}{
		{name: "comment author", caller: commenter, commentID: commentID.Hex()},
		{name: "post owner", caller: owner, commentID: commentID.Hex()},
		{name: "stranger", caller: stranger, commentID: commentID.Hex(), wantErr: models.ErrNotAuthorized},
		{name: "unknown comment", caller: commenter, commentID: primitive.NewObjectID().Hex(), wantErr: models.ErrCommentNotFound},
		{name: "malformed comment id", caller: commenter, commentID: "zzz", wantErr: models.ErrCommentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockPostRepo)
			repo.On("GetPostByID", ctx, post.ID).Return(post, nil)
			repo.On("RemoveComment", ctx, post.ID, commentID).Return(&models.Post{ID: post.ID}, nil)
			svc := NewPostService(repo)

			_, err := svc.DeleteComment(ctx, claimsFor(tt.caller), post.ID.Hex(), tt.commentID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "RemoveComment", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			repo.AssertCalled(t, "RemoveComment", ctx, post.ID, commentID)
		})
	}
}
