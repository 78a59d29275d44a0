package handlers

import (
	"errors"
	"net/http"

	"github.com/chirpnet/backend/internal/service"
	"github.com/labstack/echo/v4"
)

// UploadHandler handles standalone image uploads
type UploadHandler struct {
	uploadService *service.UploadService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// RegisterUploadRoutes registers upload-related routes
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/upload", h.Upload)
}

// Upload validates the multipart file field and stores it in the blob store
func (h *UploadHandler) Upload(c echo.Context) error {
	username := getUsernameFromContext(c)
	if username == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file uploaded")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer src.Close()

	url, err := h.uploadService.Store(c.Request().Context(), username, fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"), fileHeader.Size, src)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAnImage):
			return echo.NewHTTPError(http.StatusBadRequest, "File must be an image")
		case errors.Is(err, service.ErrFileTooLarge):
			return echo.NewHTTPError(http.StatusBadRequest, "File size must be less than 5MB")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload file")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"url": url})
}
