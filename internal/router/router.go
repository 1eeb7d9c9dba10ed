package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/handler"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Video        *handler.VideoHandler
	Comment      *handler.CommentHandler
	UserBlock    *handler.UserBlockHandler
	CreatorBlock *handler.CreatorBlockHandler
	VideoBlock   *handler.VideoBlockHandler
	Health       *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins, jwtSecret string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Health and metrics (before API group, no auth needed)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	requireAuth := middleware.NewRequireAuth(jwtSecret)
	optionalAuth := middleware.NewOptionalAuth(jwtSecret)

	// Shared limiter instances so POST and DELETE draw from the same bucket.
	mutationLimit := middleware.NewBlockMutationRateLimiter().Handler()
	blockListLimit := middleware.NewBlockListingRateLimiter().Handler()

	// API routes
	api := app.Group("/api")

	// Video listing routes — anonymous browsing allowed, personalized
	// filtering kicks in when a valid token is present.
	videos := api.Group("/videos", optionalAuth, middleware.NewListingRateLimiter().Handler())
	videos.Get("/", h.Video.List)
	videos.Get("/search", h.Video.Search)
	videos.Get("/random", h.Video.Random)
	videos.Get("/saved", h.Video.Saved, requireAuth)
	videos.Get("/:videoId/comments", h.Comment.List)

	// User block routes
	userBlock := api.Group("/user-block", requireAuth)
	userBlock.Post("/block/:userId", h.UserBlock.Block, mutationLimit)
	userBlock.Delete("/block/:userId", h.UserBlock.Unblock, mutationLimit)
	userBlock.Get("/blocked", h.UserBlock.ListBlocked, blockListLimit)

	// Creator block routes
	blockCreator := api.Group("/block-creator", requireAuth)
	blockCreator.Post("/block/:creatorId", h.CreatorBlock.Block, mutationLimit)
	blockCreator.Delete("/block/:blockId", h.CreatorBlock.Unblock, mutationLimit)
	blockCreator.Get("/blocked", h.CreatorBlock.ListBlocked, blockListLimit)

	// Video block routes
	videoBlock := api.Group("/video-block", requireAuth)
	videoBlock.Post("/block/:videoId", h.VideoBlock.Block, mutationLimit)
	videoBlock.Delete("/block/:blockId", h.VideoBlock.Unblock, mutationLimit)
	videoBlock.Get("/blocked", h.VideoBlock.ListBlocked, blockListLimit)
}
