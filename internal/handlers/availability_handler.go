package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucAvailability "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/availability"
)

// ======================================================
// DEPENDENCIES
// ======================================================

type AvailabilityCreator interface {
	Execute(ctx context.Context, in ucAvailability.CreateAvailabilityInput) (*dto.AvailabilitySummary, error)
}

type AvailabilityGetter interface {
	Execute(ctx context.Context, id uuid.UUID) (*dto.AvailabilitySummary, error)
}

type AvailabilityLister interface {
	Execute(ctx context.Context, doctorID uuid.UUID) ([]dto.AvailabilitySummary, error)
}

type AvailabilityDeleter interface {
	Execute(ctx context.Context, id uuid.UUID) error
}

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	create AvailabilityCreator
	get    AvailabilityGetter
	list   AvailabilityLister
	remove AvailabilityDeleter
	loc    *time.Location
}

// NewAvailabilityHandler interprets slot times without an offset in loc.
func NewAvailabilityHandler(
	create AvailabilityCreator,
	get AvailabilityGetter,
	list AvailabilityLister,
	remove AvailabilityDeleter,
	loc *time.Location,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		create: create,
		get:    get,
		list:   list,
		remove: remove,
		loc:    loc,
	}
}

type CreateAvailabilityRequest struct {
	DoctorID        string `json:"doctor_id" binding:"required,uuid"`
	SlotDateTime    string `json:"slot_date_time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,gt=0,max=1440"`
}

func (h *AvailabilityHandler) Create(c *gin.Context) {
	var req CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	start, err := timezone.ParseDateTime(req.SlotDateTime, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_slot_date_time", "slot_date_time must be an ISO-8601 date-time.")
		return
	}

	out, err := h.create.Execute(c.Request.Context(), ucAvailability.CreateAvailabilityInput{
		DoctorID:        uuid.MustParse(req.DoctorID),
		SlotDateTime:    start,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, out)
}

func (h *AvailabilityHandler) GetByID(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	out, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *AvailabilityHandler) ListByDoctor(c *gin.Context) {
	doctorID, ok := uuidParam(c, "doctorId")
	if !ok {
		return
	}

	list, err := h.list.Execute(c.Request.Context(), doctorID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}

// uuidParam writes a 400 and returns false when the path param is not a uuid.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, "invalid_"+name, name+" must be a valid uuid.")
		return uuid.Nil, false
	}
	return id, true
}
