package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/devlink/internal/models"
	"github.com/joshua-takyi/devlink/internal/services"
	"github.com/joshua-takyi/devlink/internal/validation"
)

func RegisterUser(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in validation.RegisterInput
		if !bindBody(c, &in) {
			return
		}
		if rejectInvalid(c, validation.ValidateRegister(in)) {
			return
		}

		user, err := us.Register(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func LoginUser(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in validation.LoginInput
		if !bindBody(c, &in) {
			return
		}
		if rejectInvalid(c, validation.ValidateLogin(in)) {
			return
		}

		token, err := us.Login(c.Request.Context(), in.Email, in.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.TokenResponse{Success: true, Token: token})
	}
}

// GetCurrentUser echoes the caller's account. A token whose user has been
// deleted is treated as invalid.
func GetCurrentUser(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}

		user, err := us.GetUser(c.Request.Context(), userID)
		if errors.Is(err, models.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.CurrentUserResponse{
			ID:    user.ID.Hex(),
			Name:  user.Name,
			Email: user.Email,
		})
	}
}
