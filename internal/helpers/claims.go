package helpers

import (
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Claims is the payload of an access token: who the caller is and what to
// show for them without a database round trip.
type Claims struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.ID)
}

func (c *Claims) IsOwner(userID primitive.ObjectID) bool {
	return c.ID == userID.Hex()
}
