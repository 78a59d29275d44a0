package handlers

import "github.com/labstack/echo/v4"

// getUserIDFromContext returns the authenticated caller's account id, or ""
// when the request carries no identity.
func getUserIDFromContext(c echo.Context) string {
	if id, ok := c.Get("userID").(string); ok {
		return id
	}
	return ""
}

func getUsernameFromContext(c echo.Context) string {
	if username, ok := c.Get("username").(string); ok {
		return username
	}
	return ""
}
