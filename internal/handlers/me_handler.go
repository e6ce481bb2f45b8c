package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/phone-reserve/internal/auth"
	"github.com/BruksfildServices01/phone-reserve/internal/httperr"
	"github.com/BruksfildServices01/phone-reserve/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	session := auth.MustSession(c)
	db := h.db.WithContext(c.Request.Context())

	var user models.User
	if err := db.First(&user, session.UserID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "사용자를 찾을 수 없습니다.")
		return
	}

	body := gin.H{"user": userView(&user)}

	if session.StoreID != 0 {
		var store models.Store
		if err := db.First(&store, session.StoreID).Error; err == nil {
			body["store"] = store
		}
	}

	c.JSON(http.StatusOK, body)
}
