package server

import (
	"github.com/gin-gonic/gin"

	"menshealth-backend/internal/audit"
	googleauth "menshealth-backend/internal/auth"
	"menshealth-backend/internal/patients"
	"menshealth-backend/internal/services/health"
	"menshealth-backend/internal/shared/config"
	"menshealth-backend/internal/shared/metrics"
	"menshealth-backend/internal/shared/server/middleware"
	"menshealth-backend/internal/surveyrecs"
	"menshealth-backend/internal/surveys"
	"menshealth-backend/internal/users"
)

// Rate limit groups.
const (
	RateGroupAuth    = "AUTH"
	RateGroupSubmit  = "SUBMIT"
	RateGroupDefault = "DEFAULT"
)

// DefaultRateLimits throttles logins hardest and anonymous submissions next.
var DefaultRateLimits = map[string]middleware.RateLimitRule{
	RateGroupAuth:    {Rate: 0.2, Burst: 5},
	RateGroupSubmit:  {Rate: 1, Burst: 10},
	RateGroupDefault: {Rate: 10, Burst: 50},
}

// RouterDeps carries everything NewRouter wires. Nil handlers are skipped.
type RouterDeps struct {
	Config          config.Config
	Tokens          middleware.TokenVerifier
	Health          *health.Service
	Users           *users.Handler
	Patients        *patients.Handler
	Surveys         *surveys.Handler
	Recommendations *surveyrecs.Handler
	Audit           *audit.Handler
	GoogleAuth      *googleauth.GoogleService
	RateLimits      map[string]middleware.RateLimitRule
	RateLimiter     *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if !deps.Config.IsDevLike() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	limits := deps.RateLimits
	if limits == nil {
		limits = DefaultRateLimits
	}
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.OptionalAuth(deps.Tokens),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules:        limits,
			DefaultGroup: RateGroupDefault,
			GroupFor: middleware.GroupByRoute(map[string]string{
				"POST /api/v1/auth/login":          RateGroupAuth,
				"GET /api/v1/auth/google/callback": RateGroupAuth,
				"POST /api/v1/surveys":             RateGroupSubmit,
				"POST /api/v1/scores/preview":      RateGroupSubmit,
			}),
			Limiter: deps.RateLimiter,
		}),
	)

	api := r.Group("/api/v1")
	if deps.Health != nil {
		deps.Health.RegisterRoutes(api)
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.Users != nil {
		deps.Users.RegisterPublicRoutes(api)
	}
	if deps.Surveys != nil {
		deps.Surveys.RegisterPublicRoutes(api)
	}

	protected := api.Group("", middleware.Auth(deps.Tokens))
	protected.GET("/metrics", metrics.Handler())
	if deps.Users != nil {
		deps.Users.RegisterRoutes(protected)
	}
	if deps.Patients != nil {
		deps.Patients.RegisterRoutes(protected)
	}
	if deps.Surveys != nil {
		deps.Surveys.RegisterRoutes(protected)
	}
	if deps.Recommendations != nil {
		deps.Recommendations.RegisterRoutes(protected)
	}
	if deps.Audit != nil {
		deps.Audit.RegisterRoutes(protected)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
