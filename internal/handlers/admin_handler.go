package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/phone-reserve/internal/audit"
	"github.com/BruksfildServices01/phone-reserve/internal/auth"
	"github.com/BruksfildServices01/phone-reserve/internal/httperr"
	"github.com/BruksfildServices01/phone-reserve/internal/httpresp"
	"github.com/BruksfildServices01/phone-reserve/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAdminHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *AdminHandler {
	return &AdminHandler{db: db, audit: dispatcher}
}

type SellerView struct {
	User  gin.H         `json:"user"`
	Store *models.Store `json:"store,omitempty"`
}

// ======================================================
// SELLERS
// ======================================================

func (h *AdminHandler) ListSellers(c *gin.Context) {
	status := c.DefaultQuery("status", models.SellerStatusPending)
	switch status {
	case models.SellerStatusPending, models.SellerStatusApproved, models.SellerStatusRejected:
	default:
		httperr.BadRequest(c, "invalid_status", "상태 값이 올바르지 않습니다.")
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var users []models.User
	if err := db.
		Where("role = ? AND seller_status = ?", auth.RoleSeller, status).
		Order("created_at ASC").
		Find(&users).Error; err != nil {

		writeError(c, err)
		return
	}

	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	var stores []models.Store
	if len(ids) > 0 {
		if err := db.Where("owner_id IN ?", ids).Find(&stores).Error; err != nil {
			writeError(c, err)
			return
		}
	}
	byOwner := make(map[uint]*models.Store, len(stores))
	for i := range stores {
		byOwner[stores[i].OwnerID] = &stores[i]
	}

	out := make([]SellerView, 0, len(users))
	for i := range users {
		out = append(out, SellerView{User: userView(&users[i]), Store: byOwner[users[i].ID]})
	}

	httpresp.List(c, out)
}

func (h *AdminHandler) ApproveSeller(c *gin.Context) {
	h.setSellerStatus(c, models.SellerStatusApproved)
}

func (h *AdminHandler) RejectSeller(c *gin.Context) {
	h.setSellerStatus(c, models.SellerStatusRejected)
}

// setSellerStatus keeps the user's seller_status and the store's public
// flag in step.
func (h *AdminHandler) setSellerStatus(c *gin.Context, status string) {
	session := auth.MustSession(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var store models.Store
	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND role = ?", id, auth.RoleSeller).
			Update("seller_status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("owner_id = ?", id).First(&store).Error; err != nil {
			return err
		}
		return tx.Model(&store).Update("approved", status == models.SellerStatusApproved).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "seller_not_found", "판매자를 찾을 수 없습니다.")
			return
		}
		writeError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		StoreID:  store.ID,
		UserID:   &session.UserID,
		Action:   "seller_" + status,
		Entity:   "user",
		EntityID: &id,
	})

	c.JSON(http.StatusOK, gin.H{"seller_id": id, "seller_status": status, "store": store})
}

// ======================================================
// MODERATION
// ======================================================

func (h *AdminHandler) HideReview(c *gin.Context) {
	h.setReviewHidden(c, true)
}

func (h *AdminHandler) UnhideReview(c *gin.Context) {
	h.setReviewHidden(c, false)
}

func (h *AdminHandler) setReviewHidden(c *gin.Context, hidden bool) {
	session := auth.MustSession(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var review models.Review
	if err := db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "review_not_found", "리뷰를 찾을 수 없습니다.")
			return
		}
		writeError(c, err)
		return
	}

	if err := db.Model(&review).Update("hidden", hidden).Error; err != nil {
		writeError(c, err)
		return
	}

	action := "review_unhidden"
	if hidden {
		action = "review_hidden"
	}
	h.audit.Dispatch(audit.Event{
		StoreID:  review.StoreID,
		UserID:   &session.UserID,
		Action:   action,
		Entity:   "review",
		EntityID: &review.ID,
	})

	httpresp.OK(c, review)
}

func (h *AdminHandler) DeactivateProduct(c *gin.Context) {
	session := auth.MustSession(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "product_not_found", "상품을 찾을 수 없습니다.")
			return
		}
		writeError(c, err)
		return
	}

	if err := db.Model(&product).Update("active", false).Error; err != nil {
		writeError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		StoreID:  product.StoreID,
		UserID:   &session.UserID,
		Action:   "product_deactivated",
		Entity:   "product",
		EntityID: &product.ID,
	})

	httpresp.OK(c, product)
}
