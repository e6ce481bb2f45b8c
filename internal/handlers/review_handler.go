package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/phone-reserve/internal/audit"
	"github.com/BruksfildServices01/phone-reserve/internal/auth"
	domain "github.com/BruksfildServices01/phone-reserve/internal/domain/reservation"
	"github.com/BruksfildServices01/phone-reserve/internal/httperr"
	"github.com/BruksfildServices01/phone-reserve/internal/httpresp"
	"github.com/BruksfildServices01/phone-reserve/internal/models"
)

type ReviewHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewReviewHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *ReviewHandler {
	return &ReviewHandler{db: db, audit: dispatcher}
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Content string `json:"content" binding:"required,max=1000"`
}

// Create accepts one review per store, only from customers who picked up a
// reservation there.
func (h *ReviewHandler) Create(c *gin.Context) {
	session := auth.MustSession(c)

	storeID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var completed int64
	if err := db.Model(&models.Reservation{}).
		Where("user_id = ? AND store_id = ? AND status = ?", session.UserID, storeID, domain.StatusCompleted).
		Count(&completed).Error; err != nil {

		writeError(c, err)
		return
	}
	if completed == 0 {
		httperr.Forbidden(c, "review_requires_completed_reservation", "매장 방문을 완료한 예약이 있어야 리뷰를 작성할 수 있습니다.")
		return
	}

	var user models.User
	if err := db.First(&user, session.UserID).Error; err != nil {
		writeError(c, err)
		return
	}

	review := models.Review{
		UserID:     session.UserID,
		StoreID:    storeID,
		AuthorName: user.Name,
		Rating:     req.Rating,
		Content:    strings.TrimSpace(req.Content),
	}

	if err := db.Create(&review).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "review_already_exists", "이미 이 매장에 리뷰를 작성했습니다.")
			return
		}
		writeError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		StoreID:  storeID,
		UserID:   &session.UserID,
		Action:   "review_created",
		Entity:   "review",
		EntityID: &review.ID,
		Metadata: map[string]any{"rating": review.Rating},
	})

	httpresp.Created(c, review)
}

func (h *ReviewHandler) ListMine(c *gin.Context) {
	session := auth.MustSession(c)

	var reviews []models.Review
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", session.UserID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {

		writeError(c, err)
		return
	}

	httpresp.List(c, reviews)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	session := auth.MustSession(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var review models.Review
	if err := db.Where("id = ? AND user_id = ?", id, session.UserID).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "review_not_found", "리뷰를 찾을 수 없습니다.")
			return
		}
		writeError(c, err)
		return
	}

	if err := db.Delete(&review).Error; err != nil {
		writeError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		StoreID:  review.StoreID,
		UserID:   &session.UserID,
		Action:   "review_deleted",
		Entity:   "review",
		EntityID: &review.ID,
	})

	c.Status(http.StatusNoContent)
}
