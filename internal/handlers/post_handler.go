package handlers

import (
	"errors"
	"net/http"

	"github.com/chirpnet/backend/internal/models"
	"github.com/chirpnet/backend/internal/repositories"
	"github.com/chirpnet/backend/internal/service"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	likeRepository repositories.LikeRepository
	uploadService  *service.UploadService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, likeRepo repositories.LikeRepository, uploadService *service.UploadService) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		likeRepository: likeRepo,
		uploadService:  uploadService,
	}
}

// RegisterPublicRoutes registers post routes that need no session
func (h *PostHandler) RegisterPublicRoutes(e *echo.Echo) {
	e.GET("/posts", h.GetPosts)
}

// RegisterProtectedRoutes registers post routes requiring a session
func (h *PostHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.POST("/posts/:id/like", h.ToggleLike)
}

// GetPosts returns all posts with author and like set, most recent first
func (h *PostHandler) GetPosts(c echo.Context) error {
	ctx := c.Request().Context()
	posts, err := h.postRepository.GetAllPosts(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	enriched := []models.PostWithAuthor{}
	authors := map[string]*models.User{}
	for _, post := range posts {
		author, ok := authors[post.UserID]
		if !ok {
			author, err = h.userRepository.GetUserByID(post.UserID)
			if err != nil && err != gorm.ErrRecordNotFound {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
			authors[post.UserID] = author
		}

		likedIDs, err := h.likeRepository.GetLikerIDs(ctx, post.ID.Hex())
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		enriched = append(enriched, models.PostWithAuthor{Post: post, User: author, LikedIDs: likedIDs})
	}

	return c.JSON(http.StatusOK, enriched)
}

// CreatePost creates a post with an optional image attachment. The image goes
// through the same gate as standalone uploads before it is stored.
func (h *PostHandler) CreatePost(c echo.Context) error {
	callerID := getUserIDFromContext(c)
	username := getUsernameFromContext(c)
	if callerID == "" || username == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	body := c.FormValue("body")
	if body == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields")
	}

	if _, err := h.userRepository.GetUserByID(callerID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var imageURL string
	if fileHeader, err := c.FormFile("image"); err == nil {
		src, err := fileHeader.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		defer src.Close()

		imageURL, err = h.uploadService.Store(c.Request().Context(), username, fileHeader.Filename,
			fileHeader.Header.Get("Content-Type"), fileHeader.Size, src)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotAnImage):
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid file type. Only images are allowed.")
			case errors.Is(err, service.ErrFileTooLarge):
				return echo.NewHTTPError(http.StatusBadRequest, "File size too large. Maximum size is 5MB.")
			default:
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload file")
			}
		}
	}

	post := &models.Post{
		UserID: callerID,
		Body:   body,
		Image:  imageURL,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, post)
}

// ToggleLike flips the caller's membership in the post's like set
func (h *PostHandler) ToggleLike(c echo.Context) error {
	callerID := getUserIDFromContext(c)
	if callerID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	ctx := c.Request().Context()
	post, err := h.postRepository.GetPostByID(ctx, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	liked, err := h.likeRepository.ToggleLike(ctx, post.ID.Hex(), callerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"liked": liked})
}
