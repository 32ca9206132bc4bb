package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/torgmarket/catalog-api/internal/config"
	"github.com/torgmarket/catalog-api/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// HealthResponse reports the overall status and the status of each dependency
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

const healthCacheKey = "health:status"

// HealthCheck godoc
// @Summary Health check
// @Description Checks the health of the API and its dependencies (MongoDB and Redis). Returns a per-service status.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "All services are healthy"
// @Failure 503 {object} HealthResponse "One or more services are unavailable"
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "HealthCheck")
	defer span.End()

	span.SetAttributes(attribute.String("operation", "health_check"))
	logger := observability.Logger()

	if cached, err := config.Redis.Get(ctx, healthCacheKey).Result(); err == nil {
		var health HealthResponse
		if err := json.Unmarshal([]byte(cached), &health); err == nil {
			observability.CacheHits.WithLabelValues("health_check").Inc()
			writeHealth(c, health)
			return
		}
		logger.Warn("failed to unmarshal cached health data", zap.Error(err))
	}

	health := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Services:  make(map[string]string),
	}

	if err := config.MongoDB.Client().Ping(ctx, nil); err != nil {
		health.Status = "unhealthy"
		health.Services["mongodb"] = "unhealthy"
	} else {
		health.Services["mongodb"] = "healthy"
	}

	if err := config.Redis.Ping(ctx).Err(); err != nil {
		health.Status = "unhealthy"
		health.Services["redis"] = "unhealthy"
	} else {
		health.Services["redis"] = "healthy"
	}

	// Unhealthy results get a shorter TTL so recovery is noticed quickly.
	if healthJSON, err := json.Marshal(health); err == nil {
		ttl := 5 * time.Second
		if health.Status == "unhealthy" {
			ttl = 1 * time.Second
		}
		if err := config.Redis.Set(ctx, healthCacheKey, healthJSON, ttl).Err(); err != nil {
			logger.Warn("failed to cache health status", zap.Error(err))
		}
	}

	span.SetAttributes(
		attribute.String("health.status", health.Status),
		attribute.String("health.mongodb", health.Services["mongodb"]),
		attribute.String("health.redis", health.Services["redis"]),
	)

	writeHealth(c, health)
}

func writeHealth(c *gin.Context, health HealthResponse) {
	if health.Status == "healthy" {
		c.JSON(http.StatusOK, health)
		return
	}
	c.JSON(http.StatusServiceUnavailable, health)
}
