package services

import "go.mongodb.org/mongo-driver/bson/primitive"

// parseID maps a malformed id to notFound: a bad id can't match anything.
func parseID(hex string, notFound error) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, notFound
	}
	return id, nil
}
