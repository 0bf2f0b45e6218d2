package bootstrap

import (
	"time"

	httpapi "github.com/carrylink/carrylink-backend/internal/api/http"
	"github.com/carrylink/carrylink-backend/internal/api/http/middleware"
	"github.com/carrylink/carrylink-backend/internal/auth"
	"github.com/carrylink/carrylink-backend/internal/messages"
	"github.com/carrylink/carrylink-backend/internal/ratelimit"
	"github.com/carrylink/carrylink-backend/internal/requests"
	"github.com/carrylink/carrylink-backend/internal/users"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RouterDeps struct {
	ServiceName     string
	Version         string
	DB              *pgxpool.Pool
	Sessions        *auth.SessionCodec
	BcryptCost      int
	AllowAPIKeyAuth bool
	RateLimitStore  ratelimit.CounterStore
	RateLimitMax    int
	RateLimitWindow time.Duration
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "x-api-key"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.RateLimitStore)
	healthHandler.RegisterRoutes(r)

	userRepo := users.NewRepo(dep.DB)
	requestRepo := requests.NewRepo(dep.DB)
	messageRepo := messages.NewRepo(dep.DB)

	// Session cookie wins over the api key when both are present; the api
	// key path is a dev/test convenience and is gated out of production.
	chain := auth.Chain{auth.NewSessionResolver(dep.Sessions, userRepo)}
	if dep.AllowAPIKeyAuth {
		chain = append(chain, auth.NewAPIKeyResolver(userRepo))
	}

	api := r.Group("/api/v1")

	auth.Register(api.Group("/auth"), userRepo, dep.Sessions, chain, dep.BcryptCost)

	publicGroup := api.Group("/requests")
	publicGroup.Use(ratelimit.Limit(dep.RateLimitStore, dep.RateLimitMax, dep.RateLimitWindow))
	requests.RegisterPublic(publicGroup, requestRepo)

	requestsGroup := api.Group("/requests")
	requestsGroup.Use(auth.RequireUser(chain))
	requests.Register(requestsGroup, requestRepo)
	messages.Register(requestsGroup, messageRepo)

	return r
}
