package container

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/joshua-takyi/devlink/internal/cache"
	"github.com/joshua-takyi/devlink/internal/config"
	"github.com/joshua-takyi/devlink/internal/helpers"
	"github.com/joshua-takyi/devlink/internal/middleware"
	"github.com/joshua-takyi/devlink/internal/models"
	"github.com/joshua-takyi/devlink/internal/services"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	MongoDBClient *mongo.Client
	Redis         *redis.Client
	Repo          *models.MongodbRepo
	Tokens        *helpers.TokenManager

	UserService    *services.UserService
	ProfileService *services.ProfileService
	PostService    *services.PostService
	GithubService  *services.GithubService

	LoginLimiter *middleware.RateLimiter
	PostLimiter  *middleware.RateLimiter
}

// NewContainer wires repositories into services. redisClient may be nil.
func NewContainer(cfg *config.Config, logger *slog.Logger, mongoDBClient *mongo.Client, redisClient *redis.Client) *Container {
	repo := models.MongodbNewRepo(mongoDBClient, cfg.MongoDBDatabase)
	tokens := helpers.NewTokenManager(cfg.JWTSecret)
	responses := cache.New(redisClient, "devlink")

	return &Container{
		Config:         cfg,
		Logger:         logger,
		MongoDBClient:  mongoDBClient,
		Redis:          redisClient,
		Repo:           repo,
		Tokens:         tokens,
		UserService:    services.NewUserService(repo, tokens),
		ProfileService: services.NewProfileService(repo, repo, logger),
		PostService:    services.NewPostService(repo),
		GithubService: services.NewGithubService(
			&http.Client{Timeout: 10 * time.Second},
			services.GithubAPIURL,
			cfg.GithubClientID,
			cfg.GithubClientSecret,
			responses,
		),
		LoginLimiter: middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    time.Minute,
			Limit:     10,
			KeyPrefix: "devlink:rl:login",
		}, logger),
		PostLimiter: middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    time.Hour,
			Limit:     30,
			KeyPrefix: "devlink:rl:posts",
		}, logger),
	}
}
