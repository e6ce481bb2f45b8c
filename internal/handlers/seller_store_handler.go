package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/phone-reserve/internal/audit"
	"github.com/BruksfildServices01/phone-reserve/internal/auth"
	"github.com/BruksfildServices01/phone-reserve/internal/domain/availability"
	"github.com/BruksfildServices01/phone-reserve/internal/httperr"
	"github.com/BruksfildServices01/phone-reserve/internal/models"
	"github.com/BruksfildServices01/phone-reserve/internal/storage"
	"github.com/BruksfildServices01/phone-reserve/internal/timezone"
)

type SellerStoreHandler struct {
	db       *gorm.DB
	audit    *audit.Dispatcher
	uploader *storage.ImageUploader
}

func NewSellerStoreHandler(db *gorm.DB, dispatcher *audit.Dispatcher, uploader *storage.ImageUploader) *SellerStoreHandler {
	return &SellerStoreHandler{db: db, audit: dispatcher, uploader: uploader}
}

type UpdateStoreRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
	Phone       *string `json:"phone,omitempty" binding:"omitempty,krphone"`
	Address     *string `json:"address,omitempty"`
	Region      *string `json:"region,omitempty" binding:"omitempty,max=50"`
	Timezone    *string `json:"timezone,omitempty"`
}

// DayHoursRequest mirrors availability.DayHours with binding rules. Whether
// an open day has both times is checked by OperatingHours.Validate.
type DayHoursRequest struct {
	IsOpen    bool   `json:"is_open"`
	OpenTime  string `json:"open_time" binding:"omitempty,hhmm"`
	CloseTime string `json:"close_time" binding:"omitempty,hhmm"`
}

type OperatingHoursRequest struct {
	Hours map[string]DayHoursRequest `json:"operating_hours" binding:"required,dive"`
}

func (h *SellerStoreHandler) ownStore(c *gin.Context) (*models.Store, bool) {
	session := auth.MustSession(c)

	var store models.Store
	if err := h.db.WithContext(c.Request.Context()).First(&store, session.StoreID).Error; err != nil {
		if httperr.IsNotFound(err) {
			httperr.NotFound(c, "store_not_found", "매장을 찾을 수 없습니다.")
			return nil, false
		}
		writeError(c, err)
		return nil, false
	}
	return &store, true
}

// --------- Store ---------

func (h *SellerStoreHandler) GetStore(c *gin.Context) {
	store, ok := h.ownStore(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, store)
}

func (h *SellerStoreHandler) UpdateStore(c *gin.Context) {
	store, ok := h.ownStore(c)
	if !ok {
		return
	}

	var req UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if req.Name != nil {
		store.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		store.Description = *req.Description
	}
	if req.Phone != nil {
		store.Phone = *req.Phone
	}
	if req.Address != nil {
		store.Address = strings.TrimSpace(*req.Address)
	}
	if req.Region != nil {
		store.Region = strings.TrimSpace(*req.Region)
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "시간대가 올바르지 않습니다.")
			return
		}
		store.Timezone = *req.Timezone
	}

	// approved and operating_hours have their own writers.
	if err := h.db.WithContext(c.Request.Context()).
		Model(store).
		Select("name", "description", "phone", "address", "region", "timezone", "updated_at").
		Updates(store).Error; err != nil {

		writeError(c, err)
		return
	}

	h.dispatch(c, store.ID, "store_updated", "store", store.ID, nil)
	c.JSON(http.StatusOK, store)
}

// --------- Operating hours ---------

func (h *SellerStoreHandler) GetHours(c *gin.Context) {
	store, ok := h.ownStore(c)
	if !ok {
		return
	}

	hours := store.OperatingHours
	if hours == nil {
		hours = availability.OperatingHours{}
	}
	c.JSON(http.StatusOK, gin.H{"operating_hours": hours})
}

func (h *SellerStoreHandler) PutHours(c *gin.Context) {
	var req OperatingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	hours := make(availability.OperatingHours, len(req.Hours))
	for day, d := range req.Hours {
		key := strings.ToLower(day)
		if _, dup := hours[key]; dup {
			httperr.BadRequest(c, "duplicate_weekday", "같은 요일이 두 번 입력되었습니다.")
			return
		}
		hours[key] = availability.DayHours{
			IsOpen:    d.IsOpen,
			OpenTime:  d.OpenTime,
			CloseTime: d.CloseTime,
		}
	}
	if err := hours.Validate(); err != nil {
		httperr.BadRequest(c, "invalid_operating_hours", "영업시간을 확인해 주세요. 시작 시간은 종료 시간보다 빨라야 합니다.")
		return
	}

	store, ok := h.ownStore(c)
	if !ok {
		return
	}

	store.OperatingHours = hours
	if err := h.db.WithContext(c.Request.Context()).
		Model(store).
		Select("operating_hours").
		Updates(store).Error; err != nil {

		writeError(c, err)
		return
	}

	h.dispatch(c, store.ID, "operating_hours_updated", "store", store.ID, hours)
	c.JSON(http.StatusOK, gin.H{"operating_hours": hours})
}

// --------- Image ---------

func (h *SellerStoreHandler) UploadImage(c *gin.Context) {
	store, ok := h.ownStore(c)
	if !ok {
		return
	}

	url, ok := uploadImage(c, h.uploader, fmt.Sprintf("stores/%d", store.ID))
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(store).
		Update("image_url", url).Error; err != nil {

		writeError(c, err)
		return
	}

	h.dispatch(c, store.ID, "store_image_uploaded", "store", store.ID, nil)
	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

func (h *SellerStoreHandler) dispatch(c *gin.Context, storeID uint, action, entity string, entityID uint, meta any) {
	session := auth.MustSession(c)
	h.audit.Dispatch(audit.Event{
		StoreID:  storeID,
		UserID:   &session.UserID,
		Action:   action,
		Entity:   entity,
		EntityID: &entityID,
		Metadata: meta,
	})
}

// uploadImage reads the "image" form file and stores it as WebP under
// prefix. It writes the error response itself.
func uploadImage(c *gin.Context, uploader *storage.ImageUploader, prefix string) (string, bool) {
	if uploader == nil {
		httperr.Unavailable(c, "storage_disabled", "이미지 저장소가 설정되지 않았습니다.")
		return "", false
	}

	fh, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "이미지 파일을 첨부해 주세요.")
		return "", false
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, err)
		return "", false
	}
	defer f.Close()

	url, err := uploader.Upload(c.Request.Context(), prefix, f)
	if err != nil {
		writeError(c, err)
		return "", false
	}
	return url, true
}
