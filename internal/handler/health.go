package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports liveness plus the state of the DB and Redis connections.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{"status": "ok"}

		dbStatus := "ok"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			dbStatus = "down"
			status["status"] = "degraded"
		}
		status["database"] = dbStatus

		redisStatus := "ok"
		if rdb == nil {
			redisStatus = "disabled"
		} else if rdb.Ping(c.Request.Context()).Err() != nil {
			redisStatus = "down"
			status["status"] = "degraded"
		}
		status["redis"] = redisStatus

		code := http.StatusOK
		if status["status"] != "ok" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	}
}
