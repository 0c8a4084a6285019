package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"trailspot/internal/config"
	"trailspot/internal/database"
	"trailspot/internal/handler"
	"trailspot/internal/metrics"
	"trailspot/internal/queue"
	"trailspot/internal/repository"
	"trailspot/internal/router"
	"trailspot/internal/security"
	"trailspot/internal/storage"
	"trailspot/internal/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(database.URL(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	rdb := config.NewRedisClient() // nil when Redis is unreachable; middleware degrades

	users := repository.NewUserRepo(db)
	spots := repository.NewSpotRepo(db)
	hiking := repository.NewHikingSpotRepo(db)

	tokens := utils.NewTokenService(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	collector := metrics.NewCollector()
	sanitizer := security.NewSanitizer()

	var store storage.ImageStore
	serveDir := ""
	switch cfg.StorageDriver {
	case "cloudinary":
		store, err = storage.NewCloudinaryStore(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Fatalf("cloudinary: %v", err)
		}
	default:
		local, err := storage.NewLocalStore(cfg.UploadDir)
		if err != nil {
			log.Fatalf("local storage: %v", err)
		}
		store = local
		serveDir = cfg.UploadDir
	}

	go func() {
		if err := queue.StartSpotConsumer(); err != nil {
			log.Printf("spot consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true

	router.Register(e, router.Deps{
		Auth:     handler.NewAuthHandler(cfg, users, spots, hiking, tokens, collector),
		Spots:    handler.NewSpotHandler(spots, store, sanitizer, collector),
		Hiking:   handler.NewHikingSpotHandler(hiking, store, sanitizer, collector),
		Search:   handler.NewSearchHandler(spots, hiking, collector),
		Tokens:   tokens,
		Accounts: users,
		Metrics:  collector,
		Redis:    rdb,
		CacheCfg: config.LoadCacheConfig(),
		LimitCfg: config.LoadRateLimitConfig(),
		ServeDir: serveDir,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
