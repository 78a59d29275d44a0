package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/chirpnet/backend/internal/models"
	"github.com/chirpnet/backend/internal/repositories"
	"github.com/chirpnet/backend/internal/service"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository  repositories.UserRepository
	tweetRepository repositories.TweetRepository
	followService   *service.FollowService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, tweetRepo repositories.TweetRepository, followService *service.FollowService) *UserHandler {
	return &UserHandler{
		userRepository:  userRepo,
		tweetRepository: tweetRepo,
		followService:   followService,
	}
}

// RegisterPublicRoutes registers user routes that need no session
func (h *UserHandler) RegisterPublicRoutes(e *echo.Echo) {
	e.GET("/users/:username", h.GetUserPage)
	e.GET("/users/:username/followers", h.GetFollowers)
	e.GET("/users/:username/following", h.GetFollowing)
}

// RegisterProtectedRoutes registers user routes requiring a session
func (h *UserHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.GET("/users", h.GetSuggestedUsers)
	g.PATCH("/users/edit", h.EditProfile)
}

// GetUserPage returns a user's profile together with their tweets, most recent first
func (h *UserHandler) GetUserPage(c echo.Context) error {
	username := c.Param("username")

	user, err := h.userRepository.GetUserByUsername(username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	profile, err := h.followService.Profile(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	tweets, err := h.tweetRepository.GetTweetsByUserID(c.Request().Context(), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	enriched := []models.TweetWithAuthor{}
	for _, tweet := range tweets {
		enriched = append(enriched, models.TweetWithAuthor{Tweet: tweet, User: user})
	}

	return c.JSON(http.StatusOK, echo.Map{"user": profile, "tweets": enriched})
}

// GetFollowers lists the accounts following the given handle
func (h *UserHandler) GetFollowers(c echo.Context) error {
	summaries, err := h.followService.Followers(c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal error")
	}
	return c.JSON(http.StatusOK, summaries)
}

// GetFollowing lists the accounts the given handle follows
func (h *UserHandler) GetFollowing(c echo.Context) error {
	summaries, err := h.followService.Following(c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal error")
	}
	return c.JSON(http.StatusOK, summaries)
}

// GetSuggestedUsers returns the most recently registered accounts, excluding the caller
func (h *UserHandler) GetSuggestedUsers(c echo.Context) error {
	username := getUsernameFromContext(c)
	if username == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	users, err := h.userRepository.GetRecentUsers(username, 5)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	profiles := []models.UserProfile{}
	for i := range users {
		profile, err := h.followService.Profile(&users[i])
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		profiles = append(profiles, *profile)
	}

	return c.JSON(http.StatusOK, profiles)
}

// EditProfile updates the caller's display name and, when present, avatar reference
func (h *UserHandler) EditProfile(c echo.Context) error {
	username := getUsernameFromContext(c)
	if username == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	var req models.EditProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name is required")
	}

	user, err := h.userRepository.GetUserByUsername(username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// Session names an account that no longer resolves
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user.Name = name
	if req.ProfileImage != "" {
		user.ProfileImage = req.ProfileImage
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	profile, err := h.followService.Profile(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, profile)
}
