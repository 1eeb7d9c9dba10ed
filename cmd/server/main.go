package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/config"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/db"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/handler"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/middleware"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/repository"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/router"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/service"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "clipnest-api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, db.Options{MaxConns: cfg.DBMaxConns, MinConns: cfg.DBMinConns})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	// Repositories
	userRepo := repository.NewUserRepo(pool)
	videoRepo := repository.NewVideoRepo(pool)
	userBlockRepo := repository.NewUserBlockRepo(pool)
	creatorBlockRepo := repository.NewCreatorBlockRepo(pool)
	videoBlockRepo := repository.NewVideoBlockRepo(pool)
	commentRepo := repository.NewCommentRepo(pool)

	// Services
	resolver := service.NewResolverService(creatorBlockRepo, videoBlockRepo, cache)
	filter := service.NewFilterService(resolver)
	userBlockSvc := service.NewUserBlockService(userBlockRepo, userRepo)
	creatorBlockSvc := service.NewCreatorBlockService(creatorBlockRepo, userRepo, cache)
	videoBlockSvc := service.NewVideoBlockService(videoBlockRepo, videoRepo, cache)
	videoSvc := service.NewVideoService(videoRepo, filter)
	commentSvc := service.NewCommentService(commentRepo, videoRepo, filter)

	// Cross-instance cache invalidation via Postgres NOTIFY
	worker := service.NewBlockCacheWorker(pool, cache)
	go worker.Start(ctx)

	handler.InitMetrics(pool)

	h := &router.Handlers{
		Video:        handler.NewVideoHandler(videoSvc),
		Comment:      handler.NewCommentHandler(commentSvc),
		UserBlock:    handler.NewUserBlockHandler(userBlockSvc),
		CreatorBlock: handler.NewCreatorBlockHandler(creatorBlockSvc, resolver),
		VideoBlock:   handler.NewVideoBlockHandler(videoBlockSvc, resolver),
		Health:       handler.NewHealthHandler(pool, cache.Client()),
	}

	app := fiber.New(fiber.Config{
		AppName:      "ClipNest API",
		ServerHeader: "ClipNest",
	})
	router.Setup(app, h, cfg.CORSOrigins, cfg.JWTSecret)

	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("ClipNest Go backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
