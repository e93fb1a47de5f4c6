package patients

import (
	"context"
	"errors"
	"net/http"
	"strconv"

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

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc   *Service
	Audit Auditor
}

func NewHandler(svc *Service, auditor Auditor) *Handler {
	return &Handler{Svc: svc, Audit: auditor}
}

// RegisterRoutes attaches patient routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/patients", h.list)
	rg.POST("/patients", h.create)
	rg.GET("/patients/:id", h.get)
	rg.PATCH("/patients/:id", h.update)
	rg.DELETE("/patients/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	q := ListQuery{Search: c.Query("search")}
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
		respond.Internal(c, err)
		return
	}
	respond.OK(c, items)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body", nil)
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.BadRequest(c, "invalid patient", err)
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set(middleware.PatientIDKey, p.ID)
	respond.Created(c, p)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.PatientIDKey, id)
	p, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, p)
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.PatientIDKey, id)
	var req UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body", nil)
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.BadRequest(c, "invalid patient", err)
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, p)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.PatientIDKey, id)
	p, err := h.Svc.Delete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if h.Audit != nil {
		h.Audit.Record(c.Request.Context(), audit.FromRequest(c, audit.ActionPatientDeleted, "patient", id, map[string]any{
			"patientNumber": p.PatientNumber,
		}))
	}
	respond.OK(c, gin.H{"success": true})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Patient not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "invalid_request", "firstName and lastName are required", nil)
	case errors.Is(err, ErrDuplicateNumber):
		respond.Error(c, http.StatusConflict, "conflict", "Patient number already in use", nil)
	default:
		respond.Internal(c, err)
	}
}
