package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/chirpnet/backend/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxUploadSize is the upload ceiling (5 MiB).
const MaxUploadSize = 5 * 1024 * 1024

// UploadService gates incoming binaries before they reach the blob store:
// only image media types at or under the size ceiling are accepted.
type UploadService struct {
	logger *zap.Logger
	store  storage.BlobStore
}

// NewUploadService creates a new UploadService
func NewUploadService(logger *zap.Logger, store storage.BlobStore) *UploadService {
	return &UploadService{logger: logger, store: store}
}

// Store validates the upload and delegates it to the blob store, returning
// the retrievable URL. The object name is built from the uploader's handle, a
// timestamp and a random disambiguator so concurrent uploads cannot collide,
// preserving the original extension.
func (s *UploadService) Store(ctx context.Context, username, filename, contentType string, size int64, r io.Reader) (string, error) {
	if size > MaxUploadSize {
		return "", ErrFileTooLarge
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotAnImage
	}

	name := ObjectName(username, filename)
	url, err := s.store.Put(ctx, name, r, size, contentType)
	if err != nil {
		s.logger.Error("failed to store upload",
			zap.String("username", username),
			zap.String("object", name),
			zap.Error(err))
		return "", err
	}
	return url, nil
}

// ObjectName builds a collision-resistant object name for an upload.
func ObjectName(username, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s-%d_%s%s", username, time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}
