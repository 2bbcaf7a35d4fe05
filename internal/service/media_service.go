package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rp-projects/netball-api/internal/domain"
	"github.com/rp-projects/netball-api/internal/storage"
)

// Upload ceilings per part kind.
const (
	MaxVideoSize int64 = 50 << 20 // 50 MiB
	MaxImageSize int64 = 10 << 20 // 10 MiB
)

// Storage key namespaces.
const (
	CategoryVideos       = "videos"
	CategoryInjuryImages = "injury_images"
)

// UploadedFile is one accepted multipart part.
type UploadedFile struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// UploadOptions constrain a part before it is admitted.
type UploadOptions struct {
	MaxSize   int64
	ImageOnly bool
}

// MediaService is the media ingress: it validates a part, stages it to
// local disk, pushes it to durable storage and returns the public URL.
// The staging file is removed whether or not the transfer succeeds.
type MediaService struct {
	storage    storage.ObjectStorage
	stagingDir string
}

func NewMediaService(store storage.ObjectStorage, stagingDir string) *MediaService {
	return &MediaService{storage: store, stagingDir: stagingDir}
}

func (s *MediaService) StoreUpload(ctx context.Context, ownerID uuid.UUID, category string, up UploadedFile, opts UploadOptions) (string, error) {
	header := up.Header
	if header == nil || up.File == nil {
		return "", domain.ErrValidation
	}

	contentType := header.Header.Get("Content-Type")
	if opts.ImageOnly && !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: only image files are allowed", domain.ErrValidation)
	}
	if opts.MaxSize > 0 && header.Size > opts.MaxSize {
		return "", fmt.Errorf("%w: %s is %d bytes", domain.ErrPayloadTooLarge, header.Filename, header.Size)
	}

	stagingPath, err := s.stage(up)
	if err != nil {
		return "", fmt.Errorf("%w: staging failed: %v", domain.ErrStorage, err)
	}
	defer func() {
		if err := os.Remove(stagingPath); err != nil {
			log.Printf("ERROR [media.StoreUpload] failed to remove staging file %s: %v", stagingPath, err)
		}
	}()

	staged, err := os.Open(stagingPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	defer staged.Close()

	key := fmt.Sprintf("%s/%s/%d-%s", category, ownerID, time.Now().UnixMilli(), filepath.Base(header.Filename))
	url, err := s.storage.Put(ctx, key, staged, contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	return url, nil
}

func (s *MediaService) stage(up UploadedFile) (string, error) {
	if err := os.MkdirAll(s.stagingDir, 0o755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.stagingDir, "upload-*")
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(tmp, up.File); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}
