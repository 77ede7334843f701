// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"swipebite/internal/cache"
	"swipebite/internal/config"
	"swipebite/internal/database"
	"swipebite/internal/images"
	"swipebite/internal/middleware"
	"swipebite/internal/models"
	"swipebite/internal/repository"
	"swipebite/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo       repository.UserRepository
	dishRepo       repository.DishRepository
	swipeRepo      repository.SwipeRepository
	favoriteRepo   repository.FavoriteRepository
	reviewRepo     repository.ReviewRepository
	rankingRepo    repository.RankingRepository
	badgeRepo      repository.BadgeRepository
	assistantRepo  repository.AssistantRepository
	restaurantRepo repository.RestaurantRepository

	imageStore *images.Store

	userService       *service.UserService
	dishService       *service.DishService
	swipeService      *service.SwipeService
	favoriteService   *service.FavoriteService
	reviewService     *service.ReviewService
	statsService      *service.StatsService
	trendingService   *service.TrendingService
	rankingService    *service.RankingService
	badgeService      *service.BadgeService
	assistantService  *service.AssistantService
	restaurantService *service.RestaurantService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: fiberprometheus.New("swipebite-api"),
		userRepo:       repository.NewUserRepository(db),
		dishRepo:       repository.NewDishRepository(db),
		swipeRepo:      repository.NewSwipeRepository(db),
		favoriteRepo:   repository.NewFavoriteRepository(db),
		reviewRepo:     repository.NewReviewRepository(db),
		rankingRepo:    repository.NewRankingRepository(db),
		badgeRepo:      repository.NewBadgeRepository(db),
		assistantRepo:  repository.NewAssistantRepository(db),
		restaurantRepo: repository.NewRestaurantRepository(db),
		imageStore:     images.NewStore(cfg.UploadDir, cfg.MaxUploadSizeMB),
	}

	badgeRules, err := loadBadgeRules(cfg.BadgeRulesFile)
	if err != nil {
		return nil, err
	}

	s.userService = service.NewUserService(s.userRepo)
	s.dishService = service.NewDishService(s.dishRepo, s.imageStore)
	s.swipeService = service.NewSwipeService(s.swipeRepo, s.dishRepo, s.favoriteRepo)
	s.favoriteService = service.NewFavoriteService(s.favoriteRepo, s.dishRepo)
	s.reviewService = service.NewReviewService(s.reviewRepo, s.dishRepo)
	s.statsService = service.NewStatsService(s.dishRepo, s.swipeRepo, s.favoriteRepo, s.reviewRepo)
	s.trendingService = service.NewTrendingService(s.rankingRepo, s.dishRepo,
		cfg.TrendingWindowHours, cfg.TrendingHalfLifeHours)
	s.rankingService = service.NewRankingService(s.rankingRepo, cfg.WeeklyTopN, cfg.TrendingHalfLifeHours)
	s.badgeService = service.NewBadgeService(s.badgeRepo, s.userRepo, badgeRules)
	s.assistantService = service.NewAssistantService(s.dishRepo, s.reviewRepo, s.rankingRepo,
		s.userRepo, s.assistantRepo, cfg.RecommendDefaultK)
	s.restaurantService = service.NewRestaurantService(s.restaurantRepo, s.dishRepo)

	return s, nil
}

// loadBadgeRules reads the badge rule file when one is configured.
// Without a file the compiled-in defaults apply.
func loadBadgeRules(path string) ([]service.BadgeRule, error) {
	if path == "" {
		return nil, nil
	}
	rules, err := service.LoadBadgeRules(path)
	if err != nil {
		return nil, fmt.Errorf("loading badge rules from %s: %w", path, err)
	}
	return rules, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// OpenTelemetry spans per request
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "SwipeBite Metrics Dashboard",
	}))

	// Dish photos written by the upload pipeline
	app.Get("/media/dishes/*", s.ServeDishMedia)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Public dish browsing
	publicDishes := api.Group("/dishes")
	publicDishes.Get("/", s.GetDishes)
	publicDishes.Get("/trending", s.GetTrending)
	publicDishes.Get("/:id/stats", s.GetDishStats)
	publicDishes.Get("/:id/similar", s.GetSimilarDishes)
	publicDishes.Get("/:id/reviews", s.GetDishReviews)
	publicDishes.Get("/:id/reviews/distribution", s.GetReviewDistribution)
	publicDishes.Get("/:id/restaurants", s.GetDishRestaurants)
	publicDishes.Get("/:id", s.GetDish)

	// Public restaurant browsing
	restaurants := api.Group("/restaurants")
	restaurants.Get("/", s.GetRestaurants)
	restaurants.Get("/:id/dishes", s.GetRestaurantMenu)
	restaurants.Get("/:id", s.GetRestaurant)

	// Public weekly rankings
	rankings := api.Group("/rankings")
	rankings.Get("/weekly", s.GetCurrentWeekRanking)
	rankings.Get("/weekly/weeks", s.GetRankedWeeks)
	rankings.Get("/weekly/:date", s.GetWeekRanking)

	// Public leaderboard
	api.Get("/leaderboard", s.GetLeaderboard)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	// Profile routes
	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Get("/me/stats", s.GetMyStats)
	users.Get("/me/badges", s.GetMyBadges)
	users.Get("/me/badges/progress", s.GetMyBadgeProgress)
	users.Post("/me/badges/evaluate", s.EvaluateMyBadges)
	users.Get("/:id", s.GetUserProfile)

	// Swipe routes
	swipes := protected.Group("/swipes")
	swipes.Post("/", s.CreateSwipe)
	swipes.Get("/", s.GetSwipeHistory)
	swipes.Get("/stats", s.GetSwipeStats)
	swipes.Get("/:dishId", s.GetSwipeVerdict)

	// Discovery feed for the swipe deck
	protected.Get("/feed", s.GetDiscoveryFeed)

	// Favorite routes
	favorites := protected.Group("/favorites")
	favorites.Post("/", s.AddFavorite)
	favorites.Get("/", s.GetFavorites)
	favorites.Get("/:dishId", s.GetFavoriteStatus)
	favorites.Delete("/:dishId", s.RemoveFavorite)

	// Review routes
	reviews := protected.Group("/reviews")
	reviews.Post("/", middleware.RateLimit(
		s.redis, 5, time.Minute, "create_review"), s.CreateReview)
	reviews.Get("/me", s.GetMyReviews)
	reviews.Post("/:id/helpful", s.ToggleReviewHelpful)
	reviews.Put("/:id", s.UpdateReview)
	reviews.Delete("/:id", s.DeleteReview)

	// Assistant routes
	assistant := protected.Group("/assistant")
	assistant.Post("/recommend", s.Recommend)
	assistant.Post("/chat", middleware.RateLimit(
		s.redis, 20, time.Minute, "assistant_chat"), s.AssistantChat)
	assistant.Get("/history", s.GetAssistantHistory)

	// Staff-only catalog and ranking management
	staff := protected.Group("", middleware.StaffRequired)
	staffDishes := staff.Group("/dishes")
	staffDishes.Post("/", s.CreateDish)
	staffDishes.Post("/:id/photo", s.UploadDishPhoto)
	staffDishes.Delete("/:id", s.DeactivateDish)
	staffRestaurants := staff.Group("/restaurants")
	staffRestaurants.Post("/", s.CreateRestaurant)
	staffRestaurants.Post("/:id/dishes", s.AttachRestaurantDish)
	staff.Post("/trending/compute", s.ComputeTrending)
	staff.Post("/rankings/weekly/build", s.BuildWeekRanking)
	staff.Post("/rankings/weekly/rebuild", s.RebuildWeekRanking)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The API degrades without Redis (no caching, no rate limit
		// keys), so its absence only dents readiness, not liveness.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status":  overall,
		"version": "1.0.0",
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "SwipeBite API",
		BodyLimit: (s.config.MaxUploadSizeMB + 1) * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
