// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"trailspot/internal/config"
	"trailspot/internal/handler"
	"trailspot/internal/metrics"
	"trailspot/internal/middleware"
	"trailspot/internal/model"
	"trailspot/internal/utils"
)

// Deps carries everything the routes need. Router stays free of
// construction logic; main builds these.
type Deps struct {
	Auth     *handler.AuthHandler
	Spots    *handler.SpotHandler
	Hiking   *handler.HikingSpotHandler
	Search   *handler.SearchHandler
	Tokens   *utils.TokenService
	Accounts middleware.AccountDirectory
	Metrics  *metrics.Collector
	Redis    *redis.Client
	CacheCfg config.CacheConfig
	LimitCfg config.RateLimitConfig
	ServeDir string // local upload dir, empty when another driver serves images
}

// Register mounts every route. Reads and search are public; writes need a
// bearer token; per-record writes additionally check ownership in the
// handlers; account administration needs the ADMIN role.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	if d.ServeDir != "" {
		e.Static("/uploads", d.ServeDir)
	}

	protect := middleware.BearerAuth(d.Tokens, d.Accounts)
	limit := middleware.RateLimit(d.LimitCfg, d.Redis)
	cache := middleware.ResponseCache(d.CacheCfg, d.Redis)

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", d.Auth.Register, limit)
	auth.POST("/authenticate", d.Auth.Authenticate, limit)
	auth.GET("/validate", d.Auth.Validate, limit)
	auth.POST("/logout", d.Auth.Logout)
	auth.GET("/me", d.Auth.Me, protect)

	admin := api.Group("/auth/users", protect, middleware.RequireRole(model.RoleAdmin))
	admin.GET("", d.Auth.ListUsers)
	admin.GET("/:id", d.Auth.GetUser)
	admin.DELETE("/:id", d.Auth.DeleteUser)

	spots := api.Group("/spots")
	spots.GET("/get/:id", d.Spots.Get, cache)
	spots.GET("/get/all", d.Spots.GetAll, cache)
	spots.POST("/search", d.Search.SearchSpots, cache)
	spots.POST("/create", d.Spots.Create, protect)
	spots.PUT("/update/:id", d.Spots.Update, protect)
	spots.DELETE("/delete/:id", d.Spots.Delete, protect)

	hiking := api.Group("/hikingspot")
	hiking.GET("/get/:id", d.Hiking.Get, cache)
	hiking.GET("/get/all", d.Hiking.GetAll, cache)
	hiking.POST("/search", d.Search.SearchHikingSpots, cache)
	hiking.POST("/create", d.Hiking.Create, protect)
	hiking.PUT("/update/:id", d.Hiking.Update, protect)
	hiking.DELETE("/delete/:id", d.Hiking.Delete, protect)
}
