package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const CookieName = "token"

// SetTokenCookie stores the access token in an HttpOnly cookie. Cross-site
// front ends in production need SameSite=None, which browsers only accept
// together with Secure.
func SetTokenCookie(c *gin.Context, token string, production bool) {
	sameSite := http.SameSiteLaxMode
	if production {
		sameSite = http.SameSiteNoneMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(CookieName, token, int(AccessTokenTTL.Seconds()), "/", "", production, true)
}

func ClearTokenCookie(c *gin.Context, production bool) {
	sameSite := http.SameSiteLaxMode
	if production {
		sameSite = http.SameSiteNoneMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(CookieName, "", -1, "/", "", production, true)
}
