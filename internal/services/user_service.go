package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/joshua-takyi/devlink/internal/helpers"
	"github.com/joshua-takyi/devlink/internal/models"
	"github.com/joshua-takyi/devlink/internal/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const PasswordHashCost = 10

type UserService struct {
	userRepo models.UserRepo
	tokens   *helpers.TokenManager
}

func NewUserService(userRepo models.UserRepo, tokens *helpers.TokenManager) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register stores a new user with a bcrypt hash of the password. The
// returned record carries the hash, never the plaintext.
func (us *UserService) Register(ctx context.Context, in validation.RegisterInput) (*models.User, error) {
	email := strings.TrimSpace(in.Email)

	_, err := us.userRepo.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, models.ErrDuplicateEmail
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: string(hash),
		Avatar:   helpers.GravatarURL(email),
	}
	return us.userRepo.CreateUser(ctx, user)
}

// Login returns a "Bearer <jwt>" string for valid credentials.
func (us *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := us.userRepo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", models.ErrInvalidPassword
	}

	token, err := us.tokens.Issue(user.ID.Hex(), user.Name, user.Avatar)
	if err != nil {
		return "", err
	}
	return helpers.BearerPrefix + token, nil
}

func (us *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return us.userRepo.GetUserByID(ctx, id)
}
