package middleware

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const flashCookie = "ASTRO_FLASH"

// Flash is a one-shot message shown on the page after a redirect.
type Flash struct {
	Kind    string // success|error
	Message string
}

// Flashes moves the flash cookie, if any, into c.Get("flash") and expires it.
func Flashes() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ck, err := c.Cookie(flashCookie); err == nil && ck.Value != "" {
				if f, ok := decodeFlash(ck.Value); ok {
					c.Set("flash", f)
				}
				c.SetCookie(&http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})
			}
			return next(c)
		}
	}
}

func SetFlash(c echo.Context, kind, message string) {
	v := base64.RawURLEncoding.EncodeToString([]byte(kind + "|" + message))
	c.SetCookie(&http.Cookie{Name: flashCookie, Value: v, Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// GetFlash returns the flash loaded by Flashes, or nil.
func GetFlash(c echo.Context) *Flash {
	f, _ := c.Get("flash").(Flash)
	if f.Message == "" {
		return nil
	}
	return &f
}

func decodeFlash(v string) (Flash, bool) {
	raw, err := base64.RawURLEncoding.DecodeString(v)
	if err != nil {
		return Flash{}, false
	}
	kind, msg, ok := strings.Cut(string(raw), "|")
	if !ok {
		return Flash{}, false
	}
	return Flash{Kind: kind, Message: msg}, true
}
