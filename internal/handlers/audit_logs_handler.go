package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

type auditLogFilter struct {
	Action   string
	Entity   string
	EntityID *uuid.UUID
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}

func parseAuditLogFilter(c *gin.Context) auditLogFilter {
	f := auditLogFilter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
	}

	if id, err := uuid.Parse(c.Query("entity_id")); err == nil {
		f.EntityID = &id
	}

	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if f.Page <= 0 {
		f.Page = 1
	}

	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}

	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		f.From = &from
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		end := to.Add(24 * time.Hour)
		f.To = &end
	}

	return f
}

func (f auditLogFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.EntityID != nil {
		q = q.Where("entity_id = ?", *f.EntityID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}
	return q
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	f := parseAuditLogFilter(c)

	q := f.apply(h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{}))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		_ = c.Error(err)
		httperr.Internal(c, "audit_count_failed", "Could not count audit logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error; err != nil {

		_ = c.Error(err)
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	httpresp.Page(c, logs, f.Page, f.Limit, total)
}
