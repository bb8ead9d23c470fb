package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/devlink/internal/models"
	"github.com/joshua-takyi/devlink/internal/services"
	"github.com/joshua-takyi/devlink/internal/validation"
)

func ListPosts(ps *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := ps.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

func GetPost(ps *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := ps.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

func CreatePost(ps *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _, ok := caller(c)
		if !ok {
			return
		}
		var in validation.PostInput
		if !bindBody(c, &in) {
			return
		}
		if rejectInvalid(c, validation.ValidatePost(in)) {
			return
		}

		post, err := ps.Create(c.Request.Context(), claims, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

func DeletePost(ps *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}

		if err := ps.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
	}
}

func LikePost(ps *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}

		post, err := ps.Like(c.Request.Context(), userID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

func UnlikePost(ps *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}

		post, err := ps.Unlike(c.Request.Context(), userID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

func AddComment(ps *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _, ok := caller(c)
		if !ok {
			return
		}
		var in validation.PostInput
		if !bindBody(c, &in) {
			return
		}
		if rejectInvalid(c, validation.ValidatePost(in)) {
			return
		}

		post, err := ps.Comment(c.Request.Context(), claims, c.Param("id"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

func DeleteComment(ps *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _, ok := caller(c)
		if !ok {
			return
		}

		post, err := ps.DeleteComment(c.Request.Context(), claims, c.Param("id"), c.Param("comment_id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}
