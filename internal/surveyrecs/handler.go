package surveyrecs

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"menshealth-backend/internal/audit"
	"menshealth-backend/internal/shared/server/middleware"
	"menshealth-backend/internal/shared/server/respond"
	"menshealth-backend/internal/shared/validation"
)

var validate = validation.MustNew()

// Auditor records clinically relevant changes.
type Auditor interface {
	Record(ctx context.Context, e audit.Entry)
}

type Handler struct {
	Svc   *Service
	Audit Auditor
}

func NewHandler(svc *Service, auditor Auditor) *Handler {
	return &Handler{Svc: svc, Audit: auditor}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/surveys/:id/recommendations", h.generate)
	rg.GET("/surveys/:id/recommendations", h.list)
	rg.PATCH("/recommendations/:id/status", h.updateStatus)
	rg.PATCH("/recommendations/:id", h.updateText)
	rg.DELETE("/recommendations/:id", h.delete)
}

func (h *Handler) generate(c *gin.Context) {
	surveyID := c.Param("id")
	c.Set(middleware.SurveyIDKey, surveyID)
	recs, err := h.Svc.Generate(c.Request.Context(), surveyID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.record(c, audit.ActionRecommendationsGenerated, "survey", surveyID, map[string]any{
		"count": len(recs),
	})
	respond.Created(c, recs)
}

func (h *Handler) list(c *gin.Context) {
	surveyID := c.Param("id")
	c.Set(middleware.SurveyIDKey, surveyID)
	recs, err := h.Svc.ListBySurvey(c.Request.Context(), surveyID)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, recs)
}

func (h *Handler) updateStatus(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.RecommendationIDKey, id)
	var req StatusInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body", nil)
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.BadRequest(c, "invalid status update", err)
		return
	}
	before, after, err := h.Svc.UpdateStatus(c.Request.Context(), id, req, middleware.UserIDFromContext(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	details := map[string]any{
		"surveyId": after.SurveyID,
		"from":     string(before.Status),
		"to":       string(after.Status),
	}
	if after.Recommendation != before.Recommendation {
		details["textChanged"] = true
	}
	h.record(c, audit.ActionRecommendationStatusChanged, "recommendation", id, details)
	respond.OK(c, after)
}

func (h *Handler) updateText(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.RecommendationIDKey, id)
	var req TextInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body", nil)
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.BadRequest(c, "invalid recommendation", err)
		return
	}
	before, after, err := h.Svc.UpdateText(c.Request.Context(), id, req.Recommendation, middleware.UserIDFromContext(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.record(c, audit.ActionRecommendationTextModified, "recommendation", id, map[string]any{
		"surveyId":     after.SurveyID,
		"previousText": before.Recommendation,
	})
	respond.OK(c, after)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.RecommendationIDKey, id)
	rec, err := h.Svc.Delete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.record(c, audit.ActionRecommendationDeleted, "recommendation", id, map[string]any{
		"surveyId": rec.SurveyID,
		"section":  string(rec.Section),
	})
	respond.OK(c, gin.H{"success": true})
}

func (h *Handler) record(c *gin.Context, action, entityType, entityID string, details map[string]any) {
	if h.Audit == nil {
		return
	}
	h.Audit.Record(c.Request.Context(), audit.FromRequest(c, action, entityType, entityID, details))
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Recommendation not found", nil)
	case errors.Is(err, ErrSurveyNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Survey not found", nil)
	case errors.Is(err, ErrInvalidScores):
		respond.Error(c, http.StatusUnprocessableEntity, "invalid_scores", "Survey scores cannot be evaluated", gin.H{"reason": err.Error()})
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid input", nil)
	default:
		respond.Internal(c, err)
	}
}
