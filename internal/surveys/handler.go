package surveys

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"menshealth-backend/internal/shared/server/middleware"
	"menshealth-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes attaches routes patients use without an account.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/surveys", h.submit)
	rg.POST("/scores/preview", h.preview)
}

// RegisterRoutes attaches clinician routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/surveys", h.list)
	rg.GET("/surveys/:id", h.get)
	rg.GET("/patients/:id/surveys", h.byPatient)
	rg.GET("/patients/:id/trend", h.trend)
}

func (h *Handler) submit(c *gin.Context) {
	var req SubmitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body", nil)
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.BadRequest(c, "invalid survey", err)
		return
	}
	c.Set(middleware.PatientIDKey, req.PatientID)

	survey, err := h.Svc.Submit(c.Request.Context(), req, middleware.UserIDFromContext(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set(middleware.SurveyIDKey, survey.ID)
	respond.Created(c, survey)
}

func (h *Handler) preview(c *gin.Context) {
	var req PreviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body", nil)
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.BadRequest(c, "invalid answers", err)
		return
	}
	respond.OK(c, h.Svc.Preview(req.Answers))
}

func (h *Handler) list(c *gin.Context) {
	q := ListQuery{PatientID: c.Query("patientId")}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > MaxLimit {
			respond.Error(c, http.StatusBadRequest, "invalid_request", "limit must be between 1 and 100", nil)
			return
		}
		q.Limit = limit
	}
	if v := c.Query("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			respond.Error(c, http.StatusBadRequest, "invalid_request", "offset must be non-negative", nil)
			return
		}
		q.Offset = offset
	}
	items, err := h.Svc.List(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.SurveyIDKey, id)
	detail, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, detail)
}

func (h *Handler) byPatient(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.PatientIDKey, id)
	items, err := h.Svc.ByPatient(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, items)
}

func (h *Handler) trend(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.PatientIDKey, id)
	points, err := h.Svc.Trend(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, points)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Survey not found", nil)
	case errors.Is(err, ErrPatientNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Patient not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
	default:
		respond.Internal(c, err)
	}
}
