package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/devlink/internal/models"
	"github.com/joshua-takyi/devlink/internal/services"
	"github.com/joshua-takyi/devlink/internal/validation"
)

func GetCurrentProfile(ps *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}

		profile, err := ps.GetCurrent(c.Request.Context(), userID)
		if errors.Is(err, models.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, models.FieldError("noProfile", msgNoProfile+"."))
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

func GetAllProfiles(ps *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profiles, err := ps.ListProfiles(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if len(profiles) == 0 {
			c.JSON(http.StatusNotFound, models.FieldError("noProfiles", msgNoProfiles))
			return
		}
		c.JSON(http.StatusOK, profiles)
	}
}

func GetProfileByHandle(ps *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := ps.GetByHandle(c.Request.Context(), c.Param("handle"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

func GetProfileByUser(ps *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := ps.GetByUserID(c.Request.Context(), c.Param("user_id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// SaveProfile creates the caller's profile or updates the fields present in
// the body.
func SaveProfile(ps *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}
		var in validation.ProfileInput
		if !bindBody(c, &in) {
			return
		}
		if rejectInvalid(c, validation.ValidateProfile(in)) {
			return
		}

		profile, err := ps.Save(c.Request.Context(), userID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

func AddExperience(ps *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}
		var in validation.ExperienceInput
		if !bindBody(c, &in) {
			return
		}
		if rejectInvalid(c, validation.ValidateExperience(in)) {
			return
		}

		profile, err := ps.AddExperience(c.Request.Context(), userID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

func AddEducation(ps *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}
		var in validation.EducationInput
		if !bindBody(c, &in) {
			return
		}
		if rejectInvalid(c, validation.ValidateEducation(in)) {
			return
		}

		profile, err := ps.AddEducation(c.Request.Context(), userID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

func DeleteExperience(ps *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}

		profile, err := ps.RemoveExperience(c.Request.Context(), userID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

func DeleteEducation(ps *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}

		profile, err := ps.RemoveEducation(c.Request.Context(), userID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// DeleteAccount removes the caller's profile and then the user itself.
func DeleteAccount(ps *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}

		if err := ps.DeleteAccount(c.Request.Context(), userID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
	}
}

func GetGithubRepos(gs *services.GithubService) gin.HandlerFunc {
	return func(c *gin.Context) {
		repos, err := gs.LatestRepos(c.Request.Context(), c.Param("username"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, repos)
	}
}
