package audit

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"menshealth-backend/internal/shared/server/middleware"
	"menshealth-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the admin-only audit log listing.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/audit-logs", middleware.RequireRole("admin"), h.list)
}

func (h *Handler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	entries, err := h.Svc.List(c.Request.Context(), Filter{
		EntityType: c.Query("entityType"),
		EntityID:   c.Query("entityId"),
		Limit:      limit,
	})
	if err != nil {
		respond.Internal(c, err)
		return
	}
	respond.OK(c, entries)
}

// FromRequest builds an entry stamped with the caller's identity and client info.
func FromRequest(c *gin.Context, action, entityType, entityID string, details map[string]any) Entry {
	return Entry{
		UserID:     middleware.UserIDFromContext(c),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	}
}
