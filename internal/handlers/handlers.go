package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"ethraa/internal/cache"
	"ethraa/internal/config"
	"ethraa/internal/mail"
	"ethraa/internal/middleware"
	"ethraa/internal/models"
	"ethraa/internal/repository"
	"ethraa/internal/service"
	"ethraa/internal/storage"
)

// Services groups the domain services the handlers call.
type Services struct {
	Auth      *service.AuthService
	Users     *service.UserService
	Graph     *service.GraphService
	Posts     *service.PostService
	Bookmarks *service.BookmarkService
	Stats     *service.StatsService
	Upload    *service.UploadService
}

// HealthCheck pings one dependency for /healthz.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

type HandlerSet struct {
	log            zerolog.Logger
	cfg            *config.AppConfig
	auth           *service.AuthService
	users          *service.UserService
	graph          *service.GraphService
	posts          *service.PostService
	bookmarks      *service.BookmarkService
	stats          *service.StatsService
	upload         *service.UploadService
	limiter        middleware.Counter
	checks         []HealthCheck
	maxUploadBytes int64
}

func NewHandlerSet(log zerolog.Logger, cfg *config.AppConfig, db *pgxpool.Pool, rdb *redis.Client, store *storage.ObjectStore, mailer mail.Mailer) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	postRepo := repository.NewPostRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	svc := Services{
		Auth:      service.NewAuthService(userRepo, mailer, cfg, log),
		Users:     service.NewUserService(userRepo, log),
		Graph:     service.NewGraphService(userRepo, followRepo, log),
		Posts:     service.NewPostService(postRepo, userRepo, log),
		Bookmarks: service.NewBookmarkService(bookmarkRepo, log),
		Stats:     service.NewStatsService(statsRepo),
		Upload:    service.NewUploadService(userRepo, store, cfg.HTTP.MaxUploadBytes, log),
	}

	var limiter middleware.Counter
	if cfg.RateLimit.Enabled {
		limiter = cache.NewWindowCounter(rdb, "ethraa:ratelimit")
	}

	return New(log, cfg, svc, limiter,
		HealthCheck{Name: "database", Ping: db.Ping},
		HealthCheck{Name: "cache", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		HealthCheck{Name: "storage", Ping: store.Ping},
	)
}

// New builds a handler set over already constructed services. limiter may
// be nil to disable rate limiting.
func New(log zerolog.Logger, cfg *config.AppConfig, svc Services, limiter middleware.Counter, checks ...HealthCheck) HandlerSet {
	registerValidators()

	maxUpload := cfg.HTTP.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = service.DefaultMaxAvatarBytes
	}

	return HandlerSet{
		log:            log,
		cfg:            cfg,
		auth:           svc.Auth,
		users:          svc.Users,
		graph:          svc.Graph,
		posts:          svc.Posts,
		bookmarks:      svc.Bookmarks,
		stats:          svc.Stats,
		upload:         svc.Upload,
		limiter:        limiter,
		checks:         checks,
		maxUploadBytes: maxUpload,
	}
}

func (h HandlerSet) rateLimit(name string, rule config.RateLimitRule) gin.HandlerFunc {
	return middleware.RateLimit(h.limiter, h.log, name, rule)
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	authn := middleware.Auth(h.auth)
	admin := middleware.RequireRoles(models.UserRoleAdmin)

	auth := router.Group("/auth")
	{
		auth.POST("/signup", h.rateLimit("signup", h.cfg.RateLimit.Signup), h.Signup)
		auth.POST("/login", h.rateLimit("login", h.cfg.RateLimit.Login), h.Login)
		auth.POST("/forgot-password", h.rateLimit("forgot", h.cfg.RateLimit.Forgot), h.ForgotPassword)
		auth.PATCH("/reset-password", h.ResetPassword)
		auth.POST("/verify-account-token", authn, h.VerifyAccountToken)
		auth.PATCH("/activate-account", authn, h.ActivateAccount)
	}

	users := router.Group("/users")
	users.Use(authn)
	{
		users.GET("", h.ListUsers)
		users.GET("/top-liked-posts-users", h.TopLikedUsers)
		users.GET("/suggest-following", h.SuggestFollowing)
		users.GET("/me", h.Me)
		users.PATCH("/update-me", h.UpdateMe)
		users.PATCH("/update-me-password", h.UpdateMePassword)
		users.DELETE("/delete-me", h.DeleteMe)
		users.PATCH("/update-theme", h.UpdateTheme)
		users.PATCH("/update-language", h.UpdateLanguage)
		users.GET("/user-followers/:username", h.Followers)
		users.GET("/user-following/:username", h.Following)
		users.PATCH("/deactivate", h.Deactivate)
		users.PATCH("/upload-avatar/:username", h.UploadAvatar)
		users.GET("/for-users/:username", h.GetForUsers)
		users.PATCH("/follow/:username", h.Follow)

		users.PATCH("/update-password/:username", admin, h.AdminSetPassword)
		users.GET("/:username", admin, h.AdminGetUser)
		users.PATCH("/:username", admin, h.AdminUpdateUser)
		users.DELETE("/:username", admin, h.AdminDeleteUser)
		users.DELETE("", admin, h.AdminDeleteAllUsers)
	}

	posts := router.Group("/posts")
	posts.Use(authn)
	{
		posts.GET("/top-fifty-posts", h.TopPosts)
		posts.GET("", admin, h.ListPosts)
		posts.GET("/for-users", h.ListPostsForUsers)
		posts.GET("/following-posts", h.ListFollowingPosts)
		posts.GET("/for-user/:username", h.ListPostsForUser)
		posts.GET("/:id", admin, h.GetPost)
		posts.POST("", h.CreatePost)
		posts.PATCH("/:id", h.UpdatePost)
		posts.PATCH("/:id/like", h.LikePost)
		posts.PATCH("/:id/dislike", h.DislikePost)
		posts.DELETE("/:id", h.DeletePost)
		posts.DELETE("", admin, h.DeleteAllPosts)
	}

	bookmarks := router.Group("/bookmarks")
	bookmarks.Use(authn)
	{
		bookmarks.GET("", admin, h.ListBookmarks)
		bookmarks.GET("/find-for-user", h.ListMyBookmarks)
		bookmarks.POST("", h.ToggleBookmark)
		bookmarks.DELETE("/all", admin, h.DeleteAllBookmarks)
		bookmarks.DELETE("/:id", h.DeleteBookmark)
	}
}
