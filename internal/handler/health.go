package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/NamelessIII/api-webscrap/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health returns a JSON health check response.
// The database is required; Redis and its breaker are reported only when the
// cache is configured. Never exposes credentials or internals.
func Health(db *gorm.DB, rdb *redis.Client, breaker *infra.Breaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		body := gin.H{}
		ok := true

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
			ok = false
		}
		body["db"] = dbStatus

		if rdb != nil {
			redisStatus := "connected"
			if rdb.Ping(ctx).Err() != nil {
				redisStatus = "error"
				ok = false
			}
			body["redis"] = redisStatus
		}
		if breaker != nil {
			body["cache_breaker"] = breaker.State().String()
		}

		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		body["ok"] = ok
		c.JSON(status, body)
	}
}
