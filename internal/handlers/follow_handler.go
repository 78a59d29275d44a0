package handlers

import (
	"errors"
	"net/http"

	"github.com/chirpnet/backend/internal/service"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow toggle HTTP requests
type FollowHandler struct {
	followService *service.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/follow", h.ToggleFollow)
}

type toggleFollowRequest struct {
	UserID string `json:"userId"`
}

// ToggleFollow flips the follow edge between the caller and the target user
// and returns the new state.
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	callerID := getUserIDFromContext(c)
	if callerID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	var req toggleFollowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	following, err := h.followService.Toggle(callerID, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTargetRequired):
			return echo.NewHTTPError(http.StatusBadRequest, "User ID is required")
		case errors.Is(err, service.ErrSelfFollow):
			return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
		case errors.Is(err, service.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal error")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"following": following})
}
