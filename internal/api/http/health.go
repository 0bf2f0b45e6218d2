package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carrylink/carrylink-backend/internal/ratelimit"
)

type HealthResponse struct {
	OK        bool      `json:"ok"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	DB        string    `json:"db"`
	Limiter   string    `json:"limiter"`
}

type HealthHandler struct {
	serviceName string
	version     string
	db          *pgxpool.Pool
	limiter     ratelimit.CounterStore
}

func NewHealthHandler(serviceName, version string, db *pgxpool.Pool, limiter ratelimit.CounterStore) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		db:          db,
		limiter:     limiter,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	dbStatus := "disabled"
	if h.db != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.db.Ping(pingCtx); err != nil {
			dbStatus = "down"
		} else {
			dbStatus = "up"
		}
	}

	limiterBackend := "disabled"
	switch h.limiter.(type) {
	case *ratelimit.RedisStore:
		limiterBackend = "redis"
	case *ratelimit.MemoryStore:
		limiterBackend = "memory"
	}

	c.JSON(http.StatusOK, HealthResponse{
		OK:        true,
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		DB:        dbStatus,
		Limiter:   limiterBackend,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
