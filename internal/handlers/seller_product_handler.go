package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/phone-reserve/internal/audit"
	"github.com/BruksfildServices01/phone-reserve/internal/auth"
	"github.com/BruksfildServices01/phone-reserve/internal/httperr"
	"github.com/BruksfildServices01/phone-reserve/internal/httpresp"
	"github.com/BruksfildServices01/phone-reserve/internal/models"
	"github.com/BruksfildServices01/phone-reserve/internal/storage"
)

type SellerProductHandler struct {
	db       *gorm.DB
	audit    *audit.Dispatcher
	uploader *storage.ImageUploader
}

func NewSellerProductHandler(db *gorm.DB, dispatcher *audit.Dispatcher, uploader *storage.ImageUploader) *SellerProductHandler {
	return &SellerProductHandler{db: db, audit: dispatcher, uploader: uploader}
}

// --------- Requests ---------

type CreateProductRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Brand       string `json:"brand" binding:"required,max=50"`
	ModelName   string `json:"model_name" binding:"max=100"`
	Storage     string `json:"storage" binding:"max=20"`
	Color       string `json:"color" binding:"max=30"`
	Condition   string `json:"condition" binding:"omitempty,oneof=new used refurbished"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,gt=0"`
	Stock       int    `json:"stock" binding:"gte=0"`
}

type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Brand       *string `json:"brand,omitempty" binding:"omitempty,max=50"`
	ModelName   *string `json:"model_name,omitempty"`
	Storage     *string `json:"storage,omitempty"`
	Color       *string `json:"color,omitempty"`
	Condition   *string `json:"condition,omitempty" binding:"omitempty,oneof=new used refurbished"`
	Description *string `json:"description,omitempty"`
	Price       *int64  `json:"price,omitempty" binding:"omitempty,gt=0"`
	Stock       *int    `json:"stock,omitempty" binding:"omitempty,gte=0"`
	Active      *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *SellerProductHandler) List(c *gin.Context) {
	session := auth.MustSession(c)

	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Where("store_id = ?", session.StoreID)

	switch activeStr {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(model_name) LIKE ?", like, like)
	}

	var products []models.Product
	if err := q.Order("id ASC").Find(&products).Error; err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, products)
}

func (h *SellerProductHandler) Create(c *gin.Context) {
	session := auth.MustSession(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	condition := req.Condition
	if condition == "" {
		condition = "new"
	}

	product := models.Product{
		StoreID:     session.StoreID,
		Name:        strings.TrimSpace(req.Name),
		Brand:       strings.TrimSpace(req.Brand),
		ModelName:   req.ModelName,
		Storage:     req.Storage,
		Color:       req.Color,
		Condition:   condition,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Active:      true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&product).Error; err != nil {
		writeError(c, err)
		return
	}

	h.dispatch(session, "product_created", product.ID)
	httpresp.Created(c, product)
}

func (h *SellerProductHandler) Update(c *gin.Context) {
	session := auth.MustSession(c)

	product, ok := h.ownProduct(c, session)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Brand != nil {
		product.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.ModelName != nil {
		product.ModelName = *req.ModelName
	}
	if req.Storage != nil {
		product.Storage = *req.Storage
	}
	if req.Color != nil {
		product.Color = *req.Color
	}
	if req.Condition != nil {
		product.Condition = *req.Condition
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(product).Error; err != nil {
		writeError(c, err)
		return
	}

	h.dispatch(session, "product_updated", product.ID)
	httpresp.OK(c, product)
}

// Delete removes the listing. Existing reservations keep their snapshot.
func (h *SellerProductHandler) Delete(c *gin.Context) {
	session := auth.MustSession(c)

	product, ok := h.ownProduct(c, session)
	if !ok {
		return
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Reservation{}).
			Where("product_id = ?", product.ID).
			Update("product_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(product).Error
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.dispatch(session, "product_deleted", product.ID)
	c.Status(http.StatusNoContent)
}

func (h *SellerProductHandler) UploadImage(c *gin.Context) {
	session := auth.MustSession(c)

	product, ok := h.ownProduct(c, session)
	if !ok {
		return
	}

	url, ok := uploadImage(c, h.uploader, fmt.Sprintf("products/%d", product.ID))
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(product).
		Update("image_url", url).Error; err != nil {

		writeError(c, err)
		return
	}

	h.dispatch(session, "product_image_uploaded", product.ID)
	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

// --------- Helpers ---------

func (h *SellerProductHandler) ownProduct(c *gin.Context, session auth.Session) (*models.Product, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}

	var product models.Product
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND store_id = ?", id, session.StoreID).
		First(&product).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "product_not_found", "상품을 찾을 수 없습니다.")
			return nil, false
		}
		writeError(c, err)
		return nil, false
	}
	return &product, true
}

func (h *SellerProductHandler) dispatch(session auth.Session, action string, productID uint) {
	h.audit.Dispatch(audit.Event{
		StoreID:  session.StoreID,
		UserID:   &session.UserID,
		Action:   action,
		Entity:   "product",
		EntityID: &productID,
	})
}
