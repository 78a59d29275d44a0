package handlers

import (
	"net/http"

	"github.com/chirpnet/backend/internal/models"
	"github.com/chirpnet/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// TweetHandler handles tweet-related HTTP requests
type TweetHandler struct {
	tweetRepository repositories.TweetRepository
	userRepository  repositories.UserRepository
}

// NewTweetHandler creates a new TweetHandler
func NewTweetHandler(tweetRepo repositories.TweetRepository, userRepo repositories.UserRepository) *TweetHandler {
	return &TweetHandler{
		tweetRepository: tweetRepo,
		userRepository:  userRepo,
	}
}

// RegisterPublicRoutes registers tweet routes that need no session
func (h *TweetHandler) RegisterPublicRoutes(e *echo.Echo) {
	e.GET("/tweets", h.GetTweets)
}

// RegisterProtectedRoutes registers tweet routes requiring a session
func (h *TweetHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.POST("/tweets", h.CreateTweet)
}

// GetTweets returns all tweets with their authors, most recent first
func (h *TweetHandler) GetTweets(c echo.Context) error {
	tweets, err := h.tweetRepository.GetAllTweets(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	enriched := []models.TweetWithAuthor{}
	authors := map[string]*models.User{}
	for _, tweet := range tweets {
		author, ok := authors[tweet.UserID]
		if !ok {
			author, err = h.userRepository.GetUserByID(tweet.UserID)
			if err != nil && err != gorm.ErrRecordNotFound {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
			authors[tweet.UserID] = author
		}
		enriched = append(enriched, models.TweetWithAuthor{Tweet: tweet, User: author})
	}

	return c.JSON(http.StatusOK, enriched)
}

// CreateTweet creates a tweet authored by the caller
func (h *TweetHandler) CreateTweet(c echo.Context) error {
	callerID := getUserIDFromContext(c)
	if callerID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	var req models.CreateTweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.userRepository.GetUserByID(callerID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	tweet := &models.Tweet{
		UserID: callerID,
		Body:   req.Content,
	}
	if err := h.tweetRepository.CreateTweet(c.Request().Context(), tweet); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, tweet)
}
