package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// DEPENDENCIES
// ======================================================

type AppointmentCreator interface {
	Execute(ctx context.Context, in ucAppointment.CreateAppointmentInput) (*dto.AppointmentDetail, error)
}

type AppointmentGetter interface {
	Execute(ctx context.Context, id uuid.UUID) (*dto.AppointmentDetail, error)
}

type AppointmentLister interface {
	Execute(ctx context.Context, ownerID uuid.UUID) ([]dto.AppointmentDetail, error)
}

type AppointmentUpdater interface {
	Execute(ctx context.Context, in ucAppointment.UpdateAppointmentInput) error
}

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       AppointmentCreator
	get          AppointmentGetter
	listByClient AppointmentLister
	listByDoctor AppointmentLister
	update       AppointmentUpdater
}

func NewAppointmentHandler(
	create AppointmentCreator,
	get AppointmentGetter,
	listByClient AppointmentLister,
	listByDoctor AppointmentLister,
	update AppointmentUpdater,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		get:          get,
		listByClient: listByClient,
		listByDoctor: listByDoctor,
		update:       update,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	AvailabilityID string  `json:"availability_id" binding:"required,uuid"`
	Notes          *string `json:"notes" binding:"omitempty,max=500"`
}

type UpdateAppointmentRequest struct {
	Notes  *string      `json:"notes" binding:"omitempty,max=500"`
	Status *StatusValue `json:"status" binding:"omitempty,appointment_status"`
}

// StatusValue accepts a status name or its numeric code.
type StatusValue string

func (s *StatusValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = StatusValue(str)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = StatusValue(n.String())
	return nil
}

// ======================================================
// HANDLERS
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	clientID, ok := uuidParam(c, "clientId")
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	out, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientID:       clientID,
		AvailabilityID: uuid.MustParse(req.AvailabilityID),
		Notes:          req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, out)
}

func (h *AppointmentHandler) GetByID(c *gin.Context) {
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

func (h *AppointmentHandler) ListByClient(c *gin.Context) {
	h.listBy(c, "clientId", h.listByClient)
}

func (h *AppointmentHandler) ListByDoctor(c *gin.Context) {
	h.listBy(c, "doctorId", h.listByDoctor)
}

func (h *AppointmentHandler) listBy(c *gin.Context, param string, uc AppointmentLister) {
	ownerID, ok := uuidParam(c, param)
	if !ok {
		return
	}

	list, err := uc.Execute(c.Request.Context(), ownerID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

// Update handles PATCH /appointment?Id={id}.
func (h *AppointmentHandler) Update(c *gin.Context) {
	raw := c.Query("Id")
	if raw == "" {
		raw = c.Query("id")
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Id query parameter must be a valid uuid.")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	in := ucAppointment.UpdateAppointmentInput{ID: id, Notes: req.Notes}
	if req.Status != nil {
		s := string(*req.Status)
		in.Status = &s
	}

	if err := h.update.Execute(c.Request.Context(), in); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}
