package v1

import (
	"time"

	"corp-social-backend/config"
	"corp-social-backend/internal/delivery/http/middleware"
	"corp-social-backend/internal/domain"
	"corp-social-backend/internal/usecase"
	"corp-social-backend/pkg/locale"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type RouterDeps struct {
	AuthUC     domain.AuthUsecase
	UserUC     domain.UserUsecase
	BirthdayUC domain.BirthdayUsecase
	PostUC     domain.PostUsecase
	CommentUC  domain.CommentUsecase
	GroupUC    domain.GroupUsecase
	HealthUC   usecase.HealthUsecase
	Verifier   middleware.TokenVerifier
	Translator *locale.Translator
	Redis      *goredis.Client // optional; rate limiting falls back to memory
	AccessLog  *zap.Logger
	Config     *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cfg := deps.Config

	accessLog := deps.AccessLog
	if accessLog == nil {
		accessLog = zap.NewNop()
	}

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL, cfg.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLog(accessLog))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RateLimitMiddleware(deps.Redis, middleware.DefaultRateLimitConfig(
		cfg.RateLimitGlobalThreshold,
		time.Duration(cfg.RateLimitWindowSeconds)*time.Second,
	)))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	NewHealthHandler(v1, deps.HealthUC)
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	pagination := Pagination{DefaultLimit: cfg.DefaultPageLimit, MaxLimit: cfg.MaxPageLimit}

	// Token only: first login creates the profile
	tokenOnly := v1.Group("")
	tokenOnly.Use(middleware.Authenticate(deps.Verifier))
	NewAuthHandler(tokenOnly, deps.AuthUC)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.Authenticate(deps.Verifier), middleware.RequireUser(deps.AuthUC))
	{
		NewUserHandler(protected, deps.UserUC, deps.PostUC, pagination)
		NewBirthdayHandler(protected, deps.BirthdayUC, deps.Translator)
		NewAddressBookHandler(protected, deps.UserUC, pagination)
		NewPostHandler(protected, deps.PostUC, pagination)
		NewCommentHandler(protected, deps.CommentUC, pagination)
		NewGroupHandler(protected, deps.GroupUC, pagination)
	}

	return r
}
