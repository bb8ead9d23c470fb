package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/joshua-takyi/devlink/internal/models"
	"github.com/joshua-takyi/devlink/internal/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Actions pairs each API call with the state transitions it causes. Every
// method makes one request and dispatches on a single success or failure
// branch; the returned error is the same failure for callers that want it.
type Actions struct {
	api     *Client
	store   *Store
	storage TokenStorage
	now     func() time.Time
}

func NewActions(api *Client, store *Store, storage TokenStorage) *Actions {
	if storage == nil {
		storage = &MemoryStorage{}
	}
	return &Actions{api: api, store: store, storage: storage, now: time.Now}
}

// fail publishes err as field errors: the API's own map when it sent one.
func (a *Actions) fail(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		a.store.Dispatch(GetErrors{Errors: apiErr.Fields})
	} else {
		a.store.Dispatch(GetErrors{Errors: map[string]string{"error": err.Error()}})
	}
	return err
}

func isNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Bootstrap restores a persisted session. An expired token logs out and
// clears the profile. It reports whether a live session was restored.
func (a *Actions) Bootstrap() (bool, error) {
	token, err := a.storage.Load()
	if err != nil {
		return false, err
	}
	if token == "" {
		return false, nil
	}

	claims, err := DecodeToken(token)
	if err != nil {
		a.LogoutUser()
		return false, nil
	}
	a.api.SetToken(token)
	a.store.Dispatch(SetCurrentUser{User: claims})

	if Expired(claims, a.now()) {
		a.LogoutUser()
		a.store.Dispatch(ClearCurrentProfile{})
		return false, nil
	}
	return true, nil
}

func (a *Actions) RegisterUser(ctx context.Context, in validation.RegisterInput) (*models.User, error) {
	user, err := a.api.Register(ctx, in)
	if err != nil {
		return nil, a.fail(err)
	}
	a.store.Dispatch(ClearErrors{})
	return user, nil
}

// LoginUser persists the token, installs it on the client and sets the
// current user from its claims.
func (a *Actions) LoginUser(ctx context.Context, in validation.LoginInput) error {
	token, err := a.api.Login(ctx, in)
	if err != nil {
		return a.fail(err)
	}
	claims, err := DecodeToken(token)
	if err != nil {
		return a.fail(err)
	}
	if err := a.storage.Save(token); err != nil {
		return a.fail(fmt.Errorf("failed to persist session: %w", err))
	}
	a.api.SetToken(token)
	a.store.Dispatch(ClearErrors{})
	a.store.Dispatch(SetCurrentUser{User: claims})
	return nil
}

func (a *Actions) LogoutUser() {
	_ = a.storage.Clear()
	a.api.SetToken("")
	a.store.Dispatch(SetCurrentUser{User: nil})
}

// GetCurrentProfile treats a 404 as "no profile yet", not as a failure.
func (a *Actions) GetCurrentProfile(ctx context.Context) error {
	a.store.Dispatch(ProfileLoading{})
	profile, err := a.api.CurrentProfile(ctx)
	if err != nil {
		a.store.Dispatch(GetProfile{Profile: nil})
		if isNotFound(err) {
			return nil
		}
		return err
	}
	a.store.Dispatch(GetProfile{Profile: profile})
	return nil
}

func (a *Actions) GetProfiles(ctx context.Context) error {
	a.store.Dispatch(ProfileLoading{})
	profiles, err := a.api.Profiles(ctx)
	if err != nil {
		a.store.Dispatch(GetProfiles{Profiles: nil})
		return err
	}
	a.store.Dispatch(GetProfiles{Profiles: profiles})
	return nil
}

func (a *Actions) GetProfileByHandle(ctx context.Context, handle string) error {
	a.store.Dispatch(ProfileLoading{})
	profile, err := a.api.ProfileByHandle(ctx, handle)
	if err != nil {
		a.store.Dispatch(GetProfile{Profile: nil})
		return err
	}
	a.store.Dispatch(GetProfile{Profile: profile})
	return nil
}

func (a *Actions) ClearCurrentProfile() {
	a.store.Dispatch(ClearCurrentProfile{})
}

// profileResult dispatches the outcome of a call that answers with the
// caller's updated profile.
func (a *Actions) profileResult(profile *models.Profile, err error) error {
	if err != nil {
		return a.fail(err)
	}
	a.store.Dispatch(ClearErrors{})
	a.store.Dispatch(GetProfile{Profile: profile})
	return nil
}

func (a *Actions) CreateProfile(ctx context.Context, in validation.ProfileInput) error {
	return a.profileResult(a.api.SaveProfile(ctx, in))
}

func (a *Actions) AddExperience(ctx context.Context, in validation.ExperienceInput) error {
	return a.profileResult(a.api.AddExperience(ctx, in))
}

func (a *Actions) AddEducation(ctx context.Context, in validation.EducationInput) error {
	return a.profileResult(a.api.AddEducation(ctx, in))
}

func (a *Actions) DeleteExperience(ctx context.Context, id string) error {
	return a.profileResult(a.api.DeleteExperience(ctx, id))
}

func (a *Actions) DeleteEducation(ctx context.Context, id string) error {
	return a.profileResult(a.api.DeleteEducation(ctx, id))
}

// DeleteAccount removes the account and ends the session.
func (a *Actions) DeleteAccount(ctx context.Context) error {
	if err := a.api.DeleteAccount(ctx); err != nil {
		return a.fail(err)
	}
	a.store.Dispatch(ClearCurrentProfile{})
	a.LogoutUser()
	return nil
}

func (a *Actions) AddPost(ctx context.Context, text string) error {
	a.store.Dispatch(ClearErrors{})
	post, err := a.api.CreatePost(ctx, validation.PostInput{Text: text})
	if err != nil {
		return a.fail(err)
	}
	a.store.Dispatch(AddPost{Post: post})
	return nil
}

func (a *Actions) GetPosts(ctx context.Context) error {
	a.store.Dispatch(PostLoading{})
	posts, err := a.api.Posts(ctx)
	if err != nil {
		a.store.Dispatch(GetPosts{Posts: nil})
		return err
	}
	a.store.Dispatch(GetPosts{Posts: posts})
	return nil
}

func (a *Actions) GetPost(ctx context.Context, id string) error {
	a.store.Dispatch(PostLoading{})
	post, err := a.api.Post(ctx, id)
	if err != nil {
		a.store.Dispatch(GetPost{Post: nil})
		return err
	}
	a.store.Dispatch(GetPost{Post: post})
	return nil
}

func (a *Actions) DeletePost(ctx context.Context, id string) error {
	if err := a.api.DeletePost(ctx, id); err != nil {
		return a.fail(err)
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err == nil {
		a.store.Dispatch(DeletePost{ID: oid})
	}
	return nil
}

// AddLike and RemoveLike refresh the post list afterwards so like counts
// stay in step with the server.
func (a *Actions) AddLike(ctx context.Context, id string) error {
	if _, err := a.api.Like(ctx, id); err != nil {
		return a.fail(err)
	}
	return a.GetPosts(ctx)
}

func (a *Actions) RemoveLike(ctx context.Context, id string) error {
	if _, err := a.api.Unlike(ctx, id); err != nil {
		return a.fail(err)
	}
	return a.GetPosts(ctx)
}

func (a *Actions) AddComment(ctx context.Context, postID, text string) error {
	a.store.Dispatch(ClearErrors{})
	post, err := a.api.Comment(ctx, postID, validation.PostInput{Text: text})
	if err != nil {
		return a.fail(err)
	}
	a.store.Dispatch(GetPost{Post: post})
	return nil
}

func (a *Actions) DeleteComment(ctx context.Context, postID, commentID string) error {
	post, err := a.api.DeleteComment(ctx, postID, commentID)
	if err != nil {
		return a.fail(err)
	}
	a.store.Dispatch(GetPost{Post: post})
	return nil
}
