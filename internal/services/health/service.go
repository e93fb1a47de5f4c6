package health

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"menshealth-backend/internal/shared/server/respond"
	"menshealth-backend/internal/shared/telemetry"
)

// Pinger is the storage dependency checked by the health endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	DB      Pinger
	Timeout time.Duration
}

// Status is the health payload.
type Status struct {
	OK       bool   `json:"ok"`
	Storage  string `json:"storage"`
	Database string `json:"database,omitempty"`
}

// NewService constructs a health service. A nil db means in-memory storage.
func NewService(db *sql.DB) *Service {
	s := &Service{Timeout: 2 * time.Second}
	if db != nil {
		s.DB = db
	}
	return s
}

// Status pings the database when one is configured.
func (s *Service) Status(ctx context.Context) Status {
	if s.DB == nil {
		return Status{OK: true, Storage: "memory"}
	}
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		telemetry.Error("health.db_ping_failed", map[string]any{"error": err})
		return Status{OK: false, Storage: "postgres", Database: "unreachable"}
	}
	return Status{OK: true, Storage: "postgres", Database: "ok"}
}

// RegisterRoutes attaches GET /health.
func (s *Service) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", func(c *gin.Context) {
		status := s.Status(c.Request.Context())
		code := http.StatusOK
		if !status.OK {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
}
