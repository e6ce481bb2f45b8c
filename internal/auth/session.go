// Package auth holds the request session and the tokens that carry it.
package auth

import (
	"github.com/gin-gonic/gin"
)

type Role string

const (
	RoleConsumer Role = "consumer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleConsumer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// Session is resolved once per request by the auth middleware and passed
// down explicitly from there.
type Session struct {
	UserID  uint
	Role    Role
	StoreID uint
}

func (s Session) Is(roles ...Role) bool {
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

const sessionKey = "auth.session"

func SetSession(c *gin.Context, s Session) {
	c.Set(sessionKey, s)
}

func SessionFrom(c *gin.Context) (Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok
}

// MustSession panics when called outside an authenticated route group.
func MustSession(c *gin.Context) Session {
	return c.MustGet(sessionKey).(Session)
}
