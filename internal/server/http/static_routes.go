package httpserver

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const viewCookieName = "chess3d_view"

// registerStaticRoutes mounts:
// - /web/*        -> desktop assets
// - /web_mobile/* -> mobile assets
// - /             -> redirect by view override, cookie or User-Agent
func registerStaticRoutes(app *fiber.App, desktopDir, mobileDir string) {
	if desktopDir == "" {
		desktopDir = "."
	}
	if mobileDir == "" {
		mobileDir = desktopDir
	}

	app.Get("/", func(c *fiber.Ctx) error {
		target := "/web/"
		if pickView(c) == "mobile" {
			target = "/web_mobile/"
		}
		c.Vary(fiber.HeaderUserAgent, fiber.HeaderCookie)
		return c.Redirect(target, fiber.StatusFound)
	})
	app.Get("/web", func(c *fiber.Ctx) error {
		return c.Redirect("/web/", fiber.StatusFound)
	})
	app.Get("/web_mobile", func(c *fiber.Ctx) error {
		return c.Redirect("/web_mobile/", fiber.StatusFound)
	})

	app.Static("/web_mobile/", mobileDir)
	app.Static("/web/", desktopDir)
}

func pickView(c *fiber.Ctx) string {
	if v, ok := normalizeView(c.Query("view")); ok {
		rememberView(c, v)
		return v
	}
	if v, ok := normalizeView(c.Cookies(viewCookieName)); ok {
		return v
	}
	if isMobileUA(c.Get(fiber.HeaderUserAgent)) {
		return "mobile"
	}
	return "web"
}

func rememberView(c *fiber.Ctx, view string) {
	c.Cookie(&fiber.Cookie{
		Name:     viewCookieName,
		Value:    view,
		Path:     "/",
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func normalizeView(v string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "web", "desktop", "pc":
		return "web", true
	case "mobile", "m", "phone", "web_mobile":
		return "mobile", true
	default:
		return "", false
	}
}

var mobileUANeedles = []string{
	"android",
	"iphone",
	"ipad",
	"ipod",
	"mobile",
	"windows phone",
	"harmony",
}

func isMobileUA(ua string) bool {
	s := strings.ToLower(ua)
	if s == "" {
		return false
	}
	for _, n := range mobileUANeedles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
