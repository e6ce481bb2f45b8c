package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/phone-reserve/internal/auth"
	"github.com/BruksfildServices01/phone-reserve/internal/httperr"
	"github.com/BruksfildServices01/phone-reserve/internal/httpresp"
	"github.com/BruksfildServices01/phone-reserve/internal/models"
)

type FavoriteHandler struct {
	db *gorm.DB
}

func NewFavoriteHandler(db *gorm.DB) *FavoriteHandler {
	return &FavoriteHandler{db: db}
}

func (h *FavoriteHandler) List(c *gin.Context) {
	session := auth.MustSession(c)

	var favorites []models.Favorite
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Store").
		Joins("JOIN stores ON stores.id = favorites.store_id AND stores.approved = ?", true).
		Where("favorites.user_id = ?", session.UserID).
		Order("favorites.created_at DESC").
		Find(&favorites).Error; err != nil {

		writeError(c, err)
		return
	}

	httpresp.List(c, favorites)
}

// Add is idempotent: favoriting a store twice is not an error.
func (h *FavoriteHandler) Add(c *gin.Context) {
	session := auth.MustSession(c)

	storeID, ok := paramID(c, "storeId")
	if !ok {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var count int64
	if err := db.Model(&models.Store{}).
		Where("id = ? AND approved = ?", storeID, true).
		Count(&count).Error; err != nil {

		writeError(c, err)
		return
	}
	if count == 0 {
		httperr.NotFound(c, "store_not_found", "매장을 찾을 수 없습니다.")
		return
	}

	fav := models.Favorite{UserID: session.UserID, StoreID: storeID}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&fav).Error; err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"store_id": storeID, "favorite": true})
}

func (h *FavoriteHandler) Remove(c *gin.Context) {
	session := auth.MustSession(c)

	storeID, ok := paramID(c, "storeId")
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ? AND store_id = ?", session.UserID, storeID).
		Delete(&models.Favorite{}).Error; err != nil {

		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"store_id": storeID, "favorite": false})
}
