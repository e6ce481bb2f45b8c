package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/phone-reserve/internal/httperr"
	"github.com/BruksfildServices01/phone-reserve/internal/httpresp"
	"github.com/BruksfildServices01/phone-reserve/internal/models"
)

// StoreHandler serves the public catalogue: approved stores, their active
// products and visible reviews.
type StoreHandler struct {
	db *gorm.DB
}

func NewStoreHandler(db *gorm.DB) *StoreHandler {
	return &StoreHandler{db: db}
}

type StoreSummary struct {
	models.Store
	ReviewCount int64   `json:"review_count"`
	RatingAvg   float64 `json:"rating_avg"`
}

const ratingJoin = `LEFT JOIN (
	SELECT store_id, COUNT(*) AS review_count, AVG(rating) AS rating_avg
	FROM reviews
	WHERE hidden = false
	GROUP BY store_id
) AS r ON r.store_id = stores.id`

func (h *StoreHandler) summaries(c *gin.Context) *gorm.DB {
	return h.db.WithContext(c.Request.Context()).
		Table("stores").
		Select("stores.*, COALESCE(r.review_count, 0) AS review_count, COALESCE(r.rating_avg, 0) AS rating_avg").
		Joins(ratingJoin).
		Where("stores.approved = ?", true)
}

// --------- Stores ---------

func (h *StoreHandler) ListStores(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	region := strings.TrimSpace(c.Query("region"))

	q := h.summaries(c)

	if region != "" {
		q = q.Where("stores.region = ?", region)
	}
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(stores.name) LIKE ? OR LOWER(stores.address) LIKE ?", like, like)
	}

	order := "stores.name ASC"
	if c.Query("sort") == "rating" {
		order = "rating_avg DESC, review_count DESC, stores.name ASC"
	}

	var stores []StoreSummary
	if err := q.Order(order).Scan(&stores).Error; err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, stores)
}

func (h *StoreHandler) GetStore(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var stores []StoreSummary
	if err := h.summaries(c).Where("stores.id = ?", id).Limit(1).Scan(&stores).Error; err != nil {
		writeError(c, err)
		return
	}
	if len(stores) == 0 {
		httperr.NotFound(c, "store_not_found", "매장을 찾을 수 없습니다.")
		return
	}

	httpresp.OK(c, stores[0])
}

// --------- Products ---------

func (h *StoreHandler) ListProducts(c *gin.Context) {
	storeID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !h.storeIsPublic(c, storeID) {
		return
	}

	brand := strings.ToLower(strings.TrimSpace(c.Query("brand")))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).
		Where("store_id = ? AND active = ?", storeID, true)

	if brand != "" {
		q = q.Where("LOWER(brand) = ?", brand)
	}
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(model_name) LIKE ?", like, like)
	}
	if v, err := strconv.ParseInt(c.Query("min_price"), 10, 64); err == nil {
		q = q.Where("price >= ?", v)
	}
	if v, err := strconv.ParseInt(c.Query("max_price"), 10, 64); err == nil {
		q = q.Where("price <= ?", v)
	}
	if c.Query("in_stock") == "true" {
		q = q.Where("stock > 0")
	}

	var products []models.Product
	if err := q.Order(productOrder(c.Query("sort"))).Find(&products).Error; err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, products)
}

func productOrder(sort string) string {
	switch sort {
	case "price_asc":
		return "price ASC, id ASC"
	case "price_desc":
		return "price DESC, id ASC"
	case "newest":
		return "created_at DESC"
	default:
		return "id ASC"
	}
}

func (h *StoreHandler) GetProduct(c *gin.Context) {
	storeID, ok := paramID(c, "id")
	if !ok {
		return
	}
	productID, ok := paramID(c, "productId")
	if !ok {
		return
	}
	if !h.storeIsPublic(c, storeID) {
		return
	}

	var product models.Product
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND store_id = ? AND active = ?", productID, storeID, true).
		First(&product).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "product_not_found", "상품을 찾을 수 없습니다.")
			return
		}
		writeError(c, err)
		return
	}

	httpresp.OK(c, product)
}

// --------- Reviews ---------

func (h *StoreHandler) ListReviews(c *gin.Context) {
	storeID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !h.storeIsPublic(c, storeID) {
		return
	}

	var reviews []models.Review
	if err := h.db.WithContext(c.Request.Context()).
		Where("store_id = ? AND hidden = ?", storeID, false).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {

		writeError(c, err)
		return
	}

	httpresp.List(c, reviews)
}

func (h *StoreHandler) storeIsPublic(c *gin.Context, id uint) bool {
	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Store{}).
		Where("id = ? AND approved = ?", id, true).
		Count(&count).Error; err != nil {

		writeError(c, err)
		return false
	}
	if count == 0 {
		httperr.NotFound(c, "store_not_found", "매장을 찾을 수 없습니다.")
		return false
	}
	return true
}
