package router

import (
	"context"
	"time"

	"github.com/NamelessIII/api-webscrap/internal/cache"
	"github.com/NamelessIII/api-webscrap/internal/config"
	"github.com/NamelessIII/api-webscrap/internal/handler"
	"github.com/NamelessIII/api-webscrap/internal/infra"
	"github.com/NamelessIII/api-webscrap/internal/middleware"
	"github.com/NamelessIII/api-webscrap/internal/repository"
	"github.com/NamelessIII/api-webscrap/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB, Service ← Cache ← Redis.
// rdb may be nil, which disables the response cache. Background work started
// here (rate limiter purge) stops when ctx is done.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())

	// ── Cache ────────────────────────────────────────────────────────────────
	var (
		historicoCache service.HistoricoCache
		cacheBreaker   *infra.Breaker
	)
	if rdb != nil && cfg.HistoricoCacheTTL > 0 {
		cacheBreaker = infra.NewBreaker(infra.BreakerConfig{
			MaxFailures:  5,
			Successes:    1,
			OpenDuration: 30 * time.Second,
		})
		historicoCache = cache.NewHistoricoCache(rdb, cfg.HistoricoCacheTTL, cacheBreaker)
	}

	// ── Repositories / Services / Handlers ───────────────────────────────────
	historicoRepo := repository.NewHistoricoRepository(db)
	historicoSvc := service.NewHistoricoService(historicoRepo, historicoCache)
	historicoH := handler.NewHistoricoHandler(historicoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb, cacheBreaker))
	r.GET("/metrics", gin.WrapH(middleware.MetricsHandler()))

	api := r.Group("/api", middleware.RateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst))
	{
		api.GET("/historico", historicoH.Consultar)
	}

	// Swagger UI outside production only
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
