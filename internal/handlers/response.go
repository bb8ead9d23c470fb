package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/devlink/internal/helpers"
	"github.com/joshua-takyi/devlink/internal/middleware"
	"github.com/joshua-takyi/devlink/internal/models"
	"github.com/joshua-takyi/devlink/internal/services"
	"github.com/joshua-takyi/devlink/internal/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgNoProfile        = "There is no profile for this user"
	msgNoProfiles       = "There are no profiles."
	msgHandleTaken      = "That handle already exists."
	msgNoPost           = "No post found with that ID"
	msgNotAuthorized    = "User not authorized"
	msgAlreadyLiked     = "User already liked this post"
	msgNotLiked         = "You have not yet liked this post"
	msgCommentNotExists = "Comment does not exist"
)

// errorResponses maps domain errors to the status and single-field body the
// client expects. Order matters only for errors wrapping one another.
var errorResponses = []struct {
	err    error
	status int
	body   models.FieldErrors
}{
	{models.ErrDuplicateEmail, http.StatusBadRequest, models.FieldError("email", "Email already exists")},
	{models.ErrUserNotFound, http.StatusNotFound, models.FieldError("email", "User not found")},
	{models.ErrInvalidPassword, http.StatusBadRequest, models.FieldError("password", "Password incorrect")},
	{models.ErrProfileNotFound, http.StatusNotFound, models.FieldError("noProfile", msgNoProfile)},
	{models.ErrDuplicateHandle, http.StatusBadRequest, models.FieldError("handle", msgHandleTaken)},
	{models.ErrPostNotFound, http.StatusNotFound, models.FieldError("noPostFound", msgNoPost)},
	{models.ErrCommentNotFound, http.StatusNotFound, models.FieldError("commentNotExists", msgCommentNotExists)},
	{models.ErrNotAuthorized, http.StatusUnauthorized, models.FieldError("notAuthorized", msgNotAuthorized)},
	{models.ErrAlreadyLiked, http.StatusBadRequest, models.FieldError("alreadyLiked", msgAlreadyLiked)},
	{models.ErrNotLiked, http.StatusBadRequest, models.FieldError("notLiked", msgNotLiked)},
	{services.ErrGithubUserNotFound, http.StatusNotFound, models.FieldError("github", "GitHub user not found")},
	{services.ErrGithubUnavailable, http.StatusBadGateway, models.FieldError("github", "GitHub is unavailable, try again later")},
}

// respondError writes the mapped client error, or hands unknown errors to
// the ErrorHandler middleware as a 500.
func respondError(c *gin.Context, err error) {
	for _, r := range errorResponses {
		if errors.Is(err, r.err) {
			c.JSON(r.status, r.body)
			return
		}
	}
	_ = c.Error(err)
}

// bindBody decodes a JSON body into dest. An empty body is left to the
// validators, which report the missing fields.
func bindBody(c *gin.Context, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "message": "invalid request payload"})
		return false
	}
	return true
}

func rejectInvalid(c *gin.Context, res validation.Result) bool {
	if res.IsValid {
		return false
	}
	c.JSON(http.StatusBadRequest, res.Errors)
	return true
}

// caller returns the authenticated identity. It answers 401 itself when the
// claims are absent or carry a malformed id.
func caller(c *gin.Context) (*helpers.Claims, primitive.ObjectID, bool) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, primitive.NilObjectID, false
	}
	id, err := claims.UserID()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, primitive.NilObjectID, false
	}
	return claims, id, true
}
