package services

import (
	"context"
	"time"

	"github.com/joshua-takyi/devlink/internal/helpers"
	"github.com/joshua-takyi/devlink/internal/models"
	"github.com/joshua-takyi/devlink/internal/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostService struct {
	postRepo models.PostRepo
}

func NewPostService(postRepo models.PostRepo) *PostService {
	return &PostService{
		postRepo: postRepo,
	}
}

// Create publishes a post under the caller's token identity.
func (ps *PostService) Create(ctx context.Context, author *helpers.Claims, in validation.PostInput) (*models.Post, error) {
	userID, err := author.UserID()
	if err != nil {
		return nil, models.ErrNotAuthorized
	}
	post := &models.Post{
		UserID: userID,
		Text:   helpers.StringTrim(in.Text),
		Name:   author.Name,
		Avatar: author.Avatar,
	}
	return ps.postRepo.CreatePost(ctx, post)
}

func (ps *PostService) List(ctx context.Context) ([]*models.Post, error) {
	return ps.postRepo.ListPosts(ctx)
}

func (ps *PostService) Get(ctx context.Context, postIDHex string) (*models.Post, error) {
	postID, err := parseID(postIDHex, models.ErrPostNotFound)
	if err != nil {
		return nil, err
	}
	return ps.postRepo.GetPostByID(ctx, postID)
}

// Delete removes a post; only its author may do so.
func (ps *PostService) Delete(ctx context.Context, userID primitive.ObjectID, postIDHex string) error {
	postID, err := parseID(postIDHex, models.ErrPostNotFound)
	if err != nil {
		return err
	}
	return ps.postRepo.DeletePost(ctx, postID, userID)
}

func (ps *PostService) Like(ctx context.Context, userID primitive.ObjectID, postIDHex string) (*models.Post, error) {
	postID, err := parseID(postIDHex, models.ErrPostNotFound)
	if err != nil {
		return nil, err
	}
	return ps.postRepo.AddLike(ctx, postID, userID)
}

func (ps *PostService) Unlike(ctx context.Context, userID primitive.ObjectID, postIDHex string) (*models.Post, error) {
	postID, err := parseID(postIDHex, models.ErrPostNotFound)
	if err != nil {
		return nil, err
	}
	return ps.postRepo.RemoveLike(ctx, postID, userID)
}

func (ps *PostService) Comment(ctx context.Context, author *helpers.Claims, postIDHex string, in validation.PostInput) (*models.Post, error) {
	postID, err := parseID(postIDHex, models.ErrPostNotFound)
	if err != nil {
		return nil, err
	}
	userID, err := author.UserID()
	if err != nil {
		return nil, models.ErrNotAuthorized
	}
	comment := models.Comment{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Text:   helpers.StringTrim(in.Text),
		Name:   author.Name,
		Avatar: author.Avatar,
		Date:   time.Now().UTC(),
	}
	return ps.postRepo.AddComment(ctx, postID, comment)
}

// DeleteComment lets the comment's author or the post's owner remove it.
func (ps *PostService) DeleteComment(ctx context.Context, caller *helpers.Claims, postIDHex, commentIDHex string) (*models.Post, error) {
	post, err := ps.Get(ctx, postIDHex)
	if err != nil {
		return nil, err
	}
	commentID, err := parseID(commentIDHex, models.ErrCommentNotFound)
	if err != nil {
		return nil, err
	}

	comment, ok := post.FindComment(commentID)
	if !ok {
		return nil, models.ErrCommentNotFound
	}
	if !caller.IsOwner(comment.UserID) && !caller.IsOwner(post.UserID) {
		return nil, models.ErrNotAuthorized
	}
	return ps.postRepo.RemoveComment(ctx, post.ID, commentID)
}
