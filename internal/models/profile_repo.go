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

type ProfileRepo interface {
	GetProfileByUser(ctx context.Context, userID primitive.ObjectID) (*Profile, error)
	GetProfileByHandle(ctx context.Context, handle string) (*Profile, error)
	ListProfiles(ctx context.Context) ([]*Profile, error)
	HandleExists(ctx context.Context, handle string) (bool, error)
	CreateProfile(ctx context.Context, profile *Profile) (*Profile, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, fields ProfileFields) (*Profile, error)
	AddExperience(ctx context.Context, userID primitive.ObjectID, exp Experience) (*Profile, error)
	AddEducation(ctx context.Context, userID primitive.ObjectID, edu Education) (*Profile, error)
	RemoveExperience(ctx context.Context, userID primitive.ObjectID, expID primitive.ObjectID) (*Profile, error)
	RemoveEducation(ctx context.Context, userID primitive.ObjectID, eduID primitive.ObjectID) (*Profile, error)
	DeleteProfileByUser(ctx context.Context, userID primitive.ObjectID) error
}

// profilePipeline joins each matched profile with the public fields of its owner.
func profilePipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.M{
			"from":         UsersColName,
			"localField":   "user",
			"foreignField": "_id",
			"as":           "owner",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$owner", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.M{"owner.email": 0, "owner.password": 0, "owner.date": 0}}},
	}
}

func (mdb *MongodbRepo) aggregateProfiles(ctx context.Context, match bson.M) ([]*Profile, error) {
	col, err := mdb.GetCollection(ProfilesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	cursor, err := col.Aggregate(ctx, profilePipeline(match))
	if err != nil {
		return nil, fmt.Errorf("error finding profiles: %w", err)
	}
	defer cursor.Close(ctx)

	profiles := []*Profile{}
	for cursor.Next(ctx) {
		var p Profile
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("error decoding profile: %w", err)
		}
		profiles = append(profiles, &p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return profiles, nil
}

func (mdb *MongodbRepo) findOnePopulated(ctx context.Context, match bson.M) (*Profile, error) {
	profiles, err := mdb.aggregateProfiles(ctx, match)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, ErrProfileNotFound
	}
	return profiles[0], nil
}

func (mdb *MongodbRepo) GetProfileByUser(ctx context.Context, userID primitive.ObjectID) (*Profile, error) {
	return mdb.findOnePopulated(ctx, bson.M{"user": userID})
}

func (mdb *MongodbRepo) GetProfileByHandle(ctx context.Context, handle string) (*Profile, error) {
	return mdb.findOnePopulated(ctx, bson.M{"handle": handle})
}

func (mdb *MongodbRepo) ListProfiles(ctx context.Context) ([]*Profile, error) {
	return mdb.aggregateProfiles(ctx, bson.M{})
}

func (mdb *MongodbRepo) HandleExists(ctx context.Context, handle string) (bool, error) {
	col, err := mdb.GetCollection(ProfilesColName)
	if err != nil {
		return false, fmt.Errorf("error getting collection: %w", err)
	}
	n, err := col.CountDocuments(ctx, bson.M{"handle": handle}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("error counting profiles: %w", err)
	}
	return n > 0, nil
}

func (mdb *MongodbRepo) CreateProfile(ctx context.Context, profile *Profile) (*Profile, error) {
	if err := profile.BeforeCreate(); err != nil {
		return nil, fmt.Errorf("failed to prepare profile for creation: %w", err)
	}
	col, err := mdb.GetCollection(ProfilesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	if _, err := col.InsertOne(ctx, profile); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateHandle
		}
		return nil, fmt.Errorf("failed to insert profile: %w", err)
	}
	return profile, nil
}

func (mdb *MongodbRepo) UpdateProfile(ctx context.Context, userID primitive.ObjectID, fields ProfileFields) (*Profile, error) {
	set := bson.M{"social": fields.Social}
	for k, v := range fields.Set {
		set[k] = v
	}

	profile, err := mdb.updateProfile(ctx, userID, bson.M{"$set": set})
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicateHandle
	}
	return profile, err
}

func (mdb *MongodbRepo) AddExperience(ctx context.Context, userID primitive.ObjectID, exp Experience) (*Profile, error) {
	if exp.ID.IsZero() {
		exp.ID = primitive.NewObjectID()
	}
	return mdb.pushFront(ctx, userID, "experience", exp)
}

func (mdb *MongodbRepo) AddEducation(ctx context.Context, userID primitive.ObjectID, edu Education) (*Profile, error) {
	if edu.ID.IsZero() {
		edu.ID = primitive.NewObjectID()
	}
	return mdb.pushFront(ctx, userID, "education", edu)
}

func (mdb *MongodbRepo) RemoveExperience(ctx context.Context, userID primitive.ObjectID, expID primitive.ObjectID) (*Profile, error) {
	return mdb.updateProfile(ctx, userID, bson.M{"$pull": bson.M{"experience": bson.M{"_id": expID}}})
}

func (mdb *MongodbRepo) RemoveEducation(ctx context.Context, userID primitive.ObjectID, eduID primitive.ObjectID) (*Profile, error) {
	return mdb.updateProfile(ctx, userID, bson.M{"$pull": bson.M{"education": bson.M{"_id": eduID}}})
}

// pushFront inserts value at the head of the named array so lists stay
// most-recent-first.
func (mdb *MongodbRepo) pushFront(ctx context.Context, userID primitive.ObjectID, field string, value interface{}) (*Profile, error) {
	return mdb.updateProfile(ctx, userID, pushFrontUpdate(field, value))
}

func pushFrontUpdate(field string, value interface{}) bson.M {
	return bson.M{
		"$push": bson.M{
			field: bson.M{
				"$each":     bson.A{value},
				"$position": 0,
			},
		},
	}
}

func (mdb *MongodbRepo) updateProfile(ctx context.Context, userID primitive.ObjectID, update bson.M) (*Profile, error) {
	col, err := mdb.GetCollection(ProfilesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var result Profile
	err = col.FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	return &result, nil
}

func (mdb *MongodbRepo) DeleteProfileByUser(ctx context.Context, userID primitive.ObjectID) error {
	col, err := mdb.GetCollection(ProfilesColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}
	if _, err := col.DeleteOne(ctx, bson.M{"user": userID}); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}
