package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"teesheet/internal/api"
)

const (
	ctxUserID = "user_id"

	RoleUser  = "user"
	RoleAdmin = "admin"
)

var ErrAccountNotFound = errors.New("account not found")

// Account is the slice of a user record that authorization decisions need.
type Account struct {
	Role   string
	Active bool
}

// AccountLookup loads the current state of a user, returning
// ErrAccountNotFound when the user no longer exists.
type AccountLookup func(ctx context.Context, userID int) (Account, error)

// tokenFromRequest takes a Bearer token first and falls back to the session cookie.
func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.TrimSpace(parts[0]) == "Bearer" {
			if token := strings.TrimSpace(parts[1]); token != "" {
				return token
			}
		}
	}
	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie
	}
	return ""
}

func AuthMiddleware(tokens *Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Error("No token, authorization denied"))
			return
		}

		claims, err := tokens.VerifyAccess(tokenString)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, api.Error("Token expired"))
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Error("Token is not valid"))
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Next()
	}
}

// loadAccount re-reads the caller's account and aborts unless it exists and
// is active. Tokens stay valid for a day, so the stored state wins.
func loadAccount(c *gin.Context, accounts AccountLookup) (Account, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.Error("Not authorized"))
		return Account{}, false
	}

	account, err := accounts(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Error("User not found"))
			return Account{}, false
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, api.Error("Server error"))
		return Account{}, false
	}

	if !account.Active {
		c.AbortWithStatusJSON(http.StatusForbidden, api.Error("Account is deactivated"))
		return Account{}, false
	}
	return account, true
}

// RequireActive rejects deactivated or deleted accounts.
func RequireActive(accounts AccountLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := loadAccount(c, accounts); !ok {
			return
		}
		c.Next()
	}
}

// RequireRole is RequireActive plus a check against the stored role, so a
// demoted admin loses access before their token expires.
func RequireRole(accounts AccountLookup, requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := loadAccount(c, accounts)
		if !ok {
			return
		}
		if account.Role != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, api.Error("Access denied"))
			return
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) (int, bool) {
	userID, exists := c.Get(ctxUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(int)
	if !ok {
		return 0, false
	}

	return id, true
}
