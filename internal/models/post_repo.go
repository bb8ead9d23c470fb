package models

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *Post) (*Post, error)
	ListPosts(ctx context.Context) ([]*Post, error)
	GetPostByID(ctx context.Context, id primitive.ObjectID) (*Post, error)
	DeletePost(ctx context.Context, id, ownerID primitive.ObjectID) error
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) (*Post, error)
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) (*Post, error)
	AddComment(ctx context.Context, postID primitive.ObjectID, comment Comment) (*Post, error)
	RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) (*Post, error)
}

func (mdb *MongodbRepo) CreatePost(ctx context.Context, post *Post) (*Post, error) {
	if err := post.BeforeCreate(); err != nil {
		return nil, fmt.Errorf("failed to prepare post for creation: %w", err)
	}
	col, err := mdb.GetCollection(PostsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}
	if _, err := col.InsertOne(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}
	return post, nil
}

func (mdb *MongodbRepo) ListPosts(ctx context.Context) ([]*Post, error) {
	col, err := mdb.GetCollection(PostsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []*Post{}
	for cursor.Next(ctx) {
		var post Post
		if err := cursor.Decode(&post); err != nil {
			return nil, fmt.Errorf("error decoding post: %w", err)
		}
		posts = append(posts, &post)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return posts, nil
}

func (mdb *MongodbRepo) GetPostByID(ctx context.Context, id primitive.ObjectID) (*Post, error) {
	col, err := mdb.GetCollection(PostsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var post Post
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("error finding post: %w", err)
	}
	return &post, nil
}

// DeletePost removes the post only when ownerID owns it.
func (mdb *MongodbRepo) DeletePost(ctx context.Context, id, ownerID primitive.ObjectID) error {
	col, err := mdb.GetCollection(PostsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id, "user": ownerID})
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		if _, err := mdb.GetPostByID(ctx, id); err != nil {
			return err
		}
		return ErrNotAuthorized
	}
	return nil
}

// AddLike is guarded in the filter, so a user can never hold two likes on
// the same post even under concurrent requests.
func (mdb *MongodbRepo) AddLike(ctx context.Context, postID, userID primitive.ObjectID) (*Post, error) {
	filter := bson.M{"_id": postID, "likes.user": bson.M{"$ne": userID}}
	update := bson.M{
		"$push": bson.M{
			"likes": bson.M{
				"$each":     bson.A{Like{ID: primitive.NewObjectID(), UserID: userID}},
				"$position": 0,
			},
		},
	}
	return mdb.updatePost(ctx, postID, filter, update, ErrAlreadyLiked)
}

func (mdb *MongodbRepo) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) (*Post, error) {
	filter := bson.M{"_id": postID, "likes.user": userID}
	update := bson.M{"$pull": bson.M{"likes": bson.M{"user": userID}}}
	return mdb.updatePost(ctx, postID, filter, update, ErrNotLiked)
}

func (mdb *MongodbRepo) AddComment(ctx context.Context, postID primitive.ObjectID, comment Comment) (*Post, error) {
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	update := bson.M{
		"$push": bson.M{
			"comments": bson.M{
				"$each":     bson.A{comment},
				"$position": 0,
			},
		},
	}
	return mdb.updatePost(ctx, postID, bson.M{"_id": postID}, update, ErrPostNotFound)
}

func (mdb *MongodbRepo) RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) (*Post, error) {
	filter := bson.M{"_id": postID, "comments._id": commentID}
	update := bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}}
	return mdb.updatePost(ctx, postID, filter, update, ErrCommentNotFound)
}

// updatePost applies update to the post matched by filter. When nothing
// matches, it tells a missing post apart from a failed guard (missErr).
func (mdb *MongodbRepo) updatePost(ctx context.Context, postID primitive.ObjectID, filter, update bson.M, missErr error) (*Post, error) {
	col, err := mdb.GetCollection(PostsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post Post
	err = col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&post)
	if err == nil {
		return &post, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("error updating post: %w", err)
	}

	if _, err := mdb.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}
	return nil, missErr
}
