package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/phone-reserve/internal/auth"
	"github.com/BruksfildServices01/phone-reserve/internal/httperr"
	"github.com/BruksfildServices01/phone-reserve/internal/httpresp"
	"github.com/BruksfildServices01/phone-reserve/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List shows a seller their own store's log; admins see everything and may
// filter by store_id.
func (h *AuditLogsHandler) List(c *gin.Context) {
	session := auth.MustSession(c)

	page, limit, offset := pageParams(c)

	// --------------------------------------------------
	// Scope
	// --------------------------------------------------

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	if session.Role == auth.RoleAdmin {
		if v, err := strconv.ParseUint(c.Query("store_id"), 10, 64); err == nil {
			q = q.Where("store_id = ?", v)
		}
	} else {
		q = q.Where("store_id = ?", session.StoreID)
	}

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		q = q.Where("created_at >= ?", from)
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		q = q.Where("created_at < ?", to.Add(24*time.Hour))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "로그 개수를 조회하지 못했습니다.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "로그를 조회하지 못했습니다.")
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
