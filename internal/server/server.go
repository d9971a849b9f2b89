// Package server contains the HTTP handlers and routing for the application.
package server

import (
	"context"
	"fmt"
	"time"

	"netlife/internal/cache"
	"netlife/internal/config"
	"netlife/internal/database"
	"netlife/internal/mailer"
	"netlife/internal/middleware"
	"netlife/internal/repository"
	"netlife/internal/service"
	"netlife/internal/storage"
	"netlife/internal/token"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	sessions       *session.Store
	media          *storage.MediaStore
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	profileRepo    repository.ProfileRepository
	postRepo       repository.PostRepository
	followRepo     repository.FollowRepository
	accountService *service.AccountService
	contentService *service.ContentService
	socialService  *service.SocialService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	media, err := storage.NewMediaStore(cfg.MediaDir)
	if err != nil {
		return nil, fmt.Errorf("media store init failed: %w", err)
	}

	sender, err := mailer.FromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("mailer init failed: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)

	tokens := token.NewActivationMaker(cfg.SecretKey)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		sessions:       newSessionStore(),
		media:          media,
		promMiddleware: fiberprometheus.New("netlife"),
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		postRepo:       postRepo,
		followRepo:     followRepo,
		accountService: service.NewAccountService(userRepo, profileRepo, sender, tokens, cfg.BaseURL, time.Now),
		contentService: service.NewContentService(postRepo, media, time.Now),
		socialService:  service.NewSocialService(userRepo, profileRepo, postRepo, followRepo, media),
	}

	return server, nil
}

// NewApp builds the Fiber application with the server-side template engine.
func (s *Server) NewApp() *fiber.App {
	engine := html.New("./templates", ".html")
	return fiber.New(fiber.Config{
		AppName:   "NetLife",
		Views:     engine,
		BodyLimit: 32 * 1024 * 1024,
	})
}

// SetupMiddleware configures global middleware for the application.
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for log correlation
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Tracing
	app.Use(middleware.TracingMiddleware())

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// Global rate limiting (200 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        200,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).SendString("Too many requests, please try again later.")
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Uploaded media and static assets
	app.Static("/media", s.media.BaseDir())
	app.Static("/static", "./static")

	// Public routes: registration, login, activation
	app.Get("/register/", s.RegisterPage)
	app.Post("/register/", middleware.RateLimit(s.redis, 3, 10*time.Minute, "register"), s.Register)
	app.Get("/login/", s.LoginPage)
	app.Post("/login/", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	app.Get("/activate/:uid/:token/", s.Activate)

	// Everything else requires a session
	protected := app.Group("", s.AuthRequired())
	protected.Get("/", s.Home)
	protected.Post("/liked/:post_id", s.ToggleLike)
	protected.Get("/login_via_accounts/", s.EnsureProfile)
	protected.Get("/logout/", s.Logout)
	protected.Get("/create/", s.CreatePostPage)
	protected.Post("/create/", s.CreatePost)
	protected.Get("/post/:id", s.PostDetail)
	protected.Get("/profile/:username", s.Profile)
	protected.Get("/update_profile", s.UpdateProfilePage)
	protected.Post("/update_profile", s.UpdateProfile)
	protected.Post("/follow/:follower/:user", s.Follow)
	protected.Get("/following_accounts/:username", s.FollowingAccounts)
	protected.Get("/followers_accounts/:username", s.FollowersAccounts)
}

// LivenessCheck reports that the process is up.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck reports whether the database is reachable.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Context())
	}
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
