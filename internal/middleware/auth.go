package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/phone-reserve/internal/auth"
	"github.com/BruksfildServices01/phone-reserve/internal/httperr"
)

// AuthMiddleware resolves the bearer token into an auth.Session once; handlers
// read it with auth.MustSession.
func AuthMiddleware(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "로그인이 필요합니다.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "잘못된 인증 헤더입니다.")
			return
		}

		session, err := issuer.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "인증이 만료되었거나 올바르지 않습니다.")
			return
		}

		auth.SetSession(c, session)
		c.Next()
	}
}

func RequireRole(roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := auth.SessionFrom(c)
		if !ok {
			httperr.Unauthorized(c, "missing_session", "로그인이 필요합니다.")
			return
		}
		if !session.Is(roles...) {
			httperr.Forbidden(c, "forbidden_role", "접근 권한이 없습니다.")
			return
		}
		c.Next()
	}
}

// StoreApproval reports whether a store may operate.
type StoreApproval func(ctx context.Context, storeID uint) (bool, error)

// RequireApprovedStore lets sellers through only once an admin has approved
// their store. Admins pass unconditionally.
func RequireApprovedStore(approved StoreApproval) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := auth.MustSession(c)
		if session.Role == auth.RoleAdmin {
			c.Next()
			return
		}
		if session.StoreID == 0 {
			httperr.Forbidden(c, "store_required", "매장 정보가 없습니다.")
			return
		}

		ok, err := approved(c.Request.Context(), session.StoreID)
		if err != nil {
			httperr.Internal(c, "store_lookup_failed", "매장 정보를 확인하지 못했습니다.")
			return
		}
		if !ok {
			httperr.Forbidden(c, "seller_not_approved", "관리자 승인 후 이용할 수 있습니다.")
			return
		}
		c.Next()
	}
}
