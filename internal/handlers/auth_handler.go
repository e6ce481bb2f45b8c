package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/phone-reserve/internal/auth"
	"github.com/BruksfildServices01/phone-reserve/internal/httperr"
	"github.com/BruksfildServices01/phone-reserve/internal/models"
	"github.com/BruksfildServices01/phone-reserve/internal/timezone"
)

type AuthHandler struct {
	db     *gorm.DB
	issuer *auth.TokenIssuer
}

func NewAuthHandler(db *gorm.DB, issuer *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{db: db, issuer: issuer}
}

// --------- Requests ---------

type RegisterConsumerRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone" binding:"omitempty,krphone"`
}

type RegisterSellerRequest struct {
	RegisterConsumerRequest

	StoreName    string `json:"store_name" binding:"required,max=100"`
	StoreSlug    string `json:"store_slug" binding:"required,max=100"`
	StorePhone   string `json:"store_phone" binding:"omitempty,krphone"`
	StoreAddress string `json:"store_address" binding:"required"`
	Region       string `json:"region"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) RegisterConsumer(c *gin.Context) {
	var req RegisterConsumerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	user, err := newUser(req, auth.RoleConsumer)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(user).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_already_exists", "이미 가입된 이메일입니다.")
			return
		}
		writeError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, user, nil)
}

// RegisterSeller creates the seller account and its store in one
// transaction. Both stay hidden until an admin approves them.
func (h *AuthHandler) RegisterSeller(c *gin.Context) {
	var req RegisterSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.StoreSlug))
	if !validSlug(slug) {
		httperr.BadRequest(c, "invalid_slug", "매장 주소는 영문 소문자, 숫자, 하이픈만 사용할 수 있습니다.")
		return
	}

	user, err := newUser(req.RegisterConsumerRequest, auth.RoleSeller)
	if err != nil {
		writeError(c, err)
		return
	}
	user.SellerStatus = models.SellerStatusPending

	store := models.Store{
		Name:     strings.TrimSpace(req.StoreName),
		Slug:     slug,
		Phone:    req.StorePhone,
		Address:  strings.TrimSpace(req.StoreAddress),
		Region:   strings.TrimSpace(req.Region),
		Timezone: timezone.DefaultTimezone,
	}

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Store{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("slug_already_exists")
		}

		if err := tx.Create(user).Error; err != nil {
			return err
		}
		store.OwnerID = user.ID
		return tx.Create(&store).Error
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "slug_already_exists"):
			httperr.Conflict(c, "slug_already_exists", "이미 사용 중인 매장 주소입니다.")
		case httperr.IsUniqueViolation(err):
			httperr.Conflict(c, "email_already_exists", "이미 가입된 이메일입니다.")
		default:
			writeError(c, err)
		}
		return
	}

	h.respondWithToken(c, http.StatusCreated, user, &store)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	db := h.db.WithContext(c.Request.Context())

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "이메일 또는 비밀번호가 올바르지 않습니다.")
			return
		}
		writeError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "이메일 또는 비밀번호가 올바르지 않습니다.")
		return
	}

	var store *models.Store
	if auth.Role(user.Role) == auth.RoleSeller {
		var s models.Store
		if err := db.Where("owner_id = ?", user.ID).First(&s).Error; err == nil {
			store = &s
		}
	}

	h.respondWithToken(c, http.StatusOK, &user, store)
}

// --------- Helpers ---------

func newUser(req RegisterConsumerRequest, role auth.Role) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         string(role),
	}, nil
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *models.User, store *models.Store) {
	session := auth.Session{UserID: user.ID, Role: auth.Role(user.Role)}
	if store != nil {
		session.StoreID = store.ID
	}

	token, err := h.issuer.Issue(session)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "토큰을 발급하지 못했습니다.")
		return
	}

	body := gin.H{
		"user":  userView(user),
		"token": token,
	}
	if store != nil {
		body["store"] = store
	}
	c.JSON(status, body)
}

func userView(u *models.User) gin.H {
	v := gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"phone": u.Phone,
		"role":  u.Role,
	}
	if u.SellerStatus != "" {
		v["seller_status"] = u.SellerStatus
	}
	return v
}

func validSlug(s string) bool {
	if s == "" || strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
			return false
		}
	}
	return true
}
