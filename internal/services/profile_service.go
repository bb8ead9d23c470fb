package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joshua-takyi/devlink/internal/helpers"
	"github.com/joshua-takyi/devlink/internal/models"
	"github.com/joshua-takyi/devlink/internal/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProfileService struct {
	profileRepo models.ProfileRepo
	userRepo    models.UserRepo
	logger      *slog.Logger
}

func NewProfileService(profileRepo models.ProfileRepo, userRepo models.UserRepo, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (ps *ProfileService) GetCurrent(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	return ps.profileRepo.GetProfileByUser(ctx, userID)
}

func (ps *ProfileService) ListProfiles(ctx context.Context) ([]*models.Profile, error) {
	return ps.profileRepo.ListProfiles(ctx)
}

func (ps *ProfileService) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	return ps.profileRepo.GetProfileByHandle(ctx, helpers.StringTrim(handle))
}

func (ps *ProfileService) GetByUserID(ctx context.Context, userIDHex string) (*models.Profile, error) {
	userID, err := parseID(helpers.StringTrim(userIDHex), models.ErrProfileNotFound)
	if err != nil {
		return nil, err
	}
	return ps.profileRepo.GetProfileByUser(ctx, userID)
}

// BuildProfileFields keeps only the fields present in the form. Social links
// are always rewritten as a whole, as the edit form submits all of them.
func BuildProfileFields(in validation.ProfileInput) models.ProfileFields {
	set := map[string]interface{}{}
	put := func(key, value string) {
		if v := helpers.StringTrim(value); v != "" {
			set[key] = v
		}
	}

	put("handle", in.Handle)
	put("company", in.Company)
	put("website", in.Website)
	put("location", in.Location)
	put("bio", in.Bio)
	put("status", in.Status)
	put("githubUsername", in.GithubUsername)
	if in.Skills != nil {
		set["skills"] = helpers.SplitSkills(*in.Skills)
	}

	return models.ProfileFields{
		Set: set,
		Social: models.Social{
			Youtube:   helpers.StringTrim(in.Youtube),
			Twitter:   helpers.StringTrim(in.Twitter),
			Facebook:  helpers.StringTrim(in.Facebook),
			LinkedIn:  helpers.StringTrim(in.LinkedIn),
			Instagram: helpers.StringTrim(in.Instagram),
		},
	}
}

// Save updates the caller's profile in place, or creates it when the caller
// has none yet. A handle held by another profile fails with
// ErrDuplicateHandle and nothing is written.
func (ps *ProfileService) Save(ctx context.Context, userID primitive.ObjectID, in validation.ProfileInput) (*models.Profile, error) {
	fields := BuildProfileFields(in)

	_, err := ps.profileRepo.GetProfileByUser(ctx, userID)
	switch {
	case err == nil:
		return ps.profileRepo.UpdateProfile(ctx, userID, fields)
	case !errors.Is(err, models.ErrProfileNotFound):
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	handle, _ := fields.Set["handle"].(string)
	taken, err := ps.profileRepo.HandleExists(ctx, handle)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.ErrDuplicateHandle
	}

	profile := newProfile(userID, fields)
	return ps.profileRepo.CreateProfile(ctx, profile)
}

func newProfile(userID primitive.ObjectID, fields models.ProfileFields) *models.Profile {
	str := func(key string) string {
		v, _ := fields.Set[key].(string)
		return v
	}
	skills, _ := fields.Set["skills"].([]string)

	return &models.Profile{
		UserID:         userID,
		Handle:         str("handle"),
		Company:        str("company"),
		Website:        str("website"),
		Location:       str("location"),
		Status:         str("status"),
		Bio:            str("bio"),
		GithubUsername: str("githubUsername"),
		Skills:         skills,
		Social:         fields.Social,
	}
}

func (ps *ProfileService) AddExperience(ctx context.Context, userID primitive.ObjectID, in validation.ExperienceInput) (*models.Profile, error) {
	from, to, err := parseRange(in.From, in.To)
	if err != nil {
		return nil, err
	}
	exp := models.Experience{
		ID:          primitive.NewObjectID(),
		Title:       helpers.StringTrim(in.Title),
		Company:     helpers.StringTrim(in.Company),
		Location:    helpers.StringTrim(in.Location),
		From:        from,
		To:          to,
		Current:     in.Current,
		Description: in.Description,
	}
	return ps.profileRepo.AddExperience(ctx, userID, exp)
}

func (ps *ProfileService) AddEducation(ctx context.Context, userID primitive.ObjectID, in validation.EducationInput) (*models.Profile, error) {
	from, to, err := parseRange(in.From, in.To)
	if err != nil {
		return nil, err
	}
	edu := models.Education{
		ID:           primitive.NewObjectID(),
		School:       helpers.StringTrim(in.School),
		Degree:       helpers.StringTrim(in.Degree),
		FieldOfStudy: helpers.StringTrim(in.FieldOfStudy),
		From:         from,
		To:           to,
		Current:      in.Current,
		Description:  in.Description,
	}
	return ps.profileRepo.AddEducation(ctx, userID, edu)
}

func parseRange(fromRaw, toRaw string) (time.Time, *time.Time, error) {
	from, err := validation.ParseDate(fromRaw)
	if err != nil {
		return time.Time{}, nil, err
	}
	if helpers.StringTrim(toRaw) == "" {
		return from, nil, nil
	}
	to, err := validation.ParseDate(toRaw)
	if err != nil {
		return time.Time{}, nil, err
	}
	return from, &to, nil
}

// RemoveExperience drops the entry with the given id. An unknown id leaves
// the profile untouched and still returns it.
func (ps *ProfileService) RemoveExperience(ctx context.Context, userID primitive.ObjectID, expIDHex string) (*models.Profile, error) {
	expID, err := primitive.ObjectIDFromHex(helpers.StringTrim(expIDHex))
	if err != nil {
		return ps.profileRepo.GetProfileByUser(ctx, userID)
	}
	return ps.profileRepo.RemoveExperience(ctx, userID, expID)
}

func (ps *ProfileService) RemoveEducation(ctx context.Context, userID primitive.ObjectID, eduIDHex string) (*models.Profile, error) {
	eduID, err := primitive.ObjectIDFromHex(helpers.StringTrim(eduIDHex))
	if err != nil {
		return ps.profileRepo.GetProfileByUser(ctx, userID)
	}
	return ps.profileRepo.RemoveEducation(ctx, userID, eduID)
}

// DeleteAccount removes the caller's profile and then the user. The two
// deletes are not atomic.
func (ps *ProfileService) DeleteAccount(ctx context.Context, userID primitive.ObjectID) error {
	if err := ps.profileRepo.DeleteProfileByUser(ctx, userID); err != nil {
		return err
	}
	if err := ps.userRepo.DeleteUser(ctx, userID); err != nil {
		ps.logger.Error("Profile deleted but user remains", "user_id", userID.Hex(), "error", err)
		return err
	}
	return nil
}
