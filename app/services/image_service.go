// Package services holds the pieces of business logic that are more than a
// single gateway call: image intake and the order creation workflow.
package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/shashiranjanraj/vastra/pkg/storage"
)

// imageTypes maps the allowed declared media types to the stored extension.
var imageTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/jpg":  "jpg",
}

// ErrInvalidImageType rejects uploads whose declared media type is outside
// the allow-list. Nothing is written to storage in that case.
var ErrInvalidImageType = errors.New("services: invalid image type (want png, jpeg or jpg)")

// ErrTooManyImages rejects gallery replacements above MaxGalleryImages.
var ErrTooManyImages = errors.New("services: too many gallery images")

// uploadDir is the directory on the disk all images land in.
const uploadDir = "uploads"

// MaxGalleryImages caps a single gallery replacement.
const MaxGalleryImages = 10

// ImageService validates uploaded images, writes them to a storage disk and
// hands back their public URLs.
type ImageService struct {
	disk storage.Disk

	// now is swapped in tests to pin the timestamp suffix.
	now func() time.Time
}

func NewImageService(disk storage.Disk) *ImageService {
	return &ImageService{disk: disk, now: time.Now}
}

// Store validates and persists one uploaded file, returning its public URL.
func (s *ImageService) Store(fh *multipart.FileHeader) (string, error) {
	ext, ok := imageTypes[fh.Header.Get("Content-Type")]
	if !ok {
		return "", fmt.Errorf("%w: got %q", ErrInvalidImageType, fh.Header.Get("Content-Type"))
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("services: open upload: %w", err)
	}
	defer f.Close()

	path := uploadDir + "/" + s.fileName(fh.Filename, ext)
	if err := s.disk.PutStream(path, f); err != nil {
		return "", fmt.Errorf("services: store upload: %w", err)
	}

	return s.disk.URL(path), nil
}

// StoreAll persists up to MaxGalleryImages files, preserving input order.
// The first failure aborts the batch; files already written are kept.
func (s *ImageService) StoreAll(fhs []*multipart.FileHeader) ([]string, error) {
	if len(fhs) > MaxGalleryImages {
		return nil, fmt.Errorf("%w (max %d, got %d)", ErrTooManyImages, MaxGalleryImages, len(fhs))
	}

	urls := make([]string, 0, len(fhs))
	for _, fh := range fhs {
		url, err := s.Store(fh)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// fileName derives the stored name: the original name with whitespace
// replaced by hyphens, a millisecond timestamp for uniqueness, and the
// extension implied by the validated media type.
func (s *ImageService) fileName(original, ext string) string {
	base := strings.Join(strings.Fields(original), "-")
	base = strings.TrimSuffix(base, "."+ext)
	if base == "" {
		base = "image"
	}
	return fmt.Sprintf("%s-%d.%s", base, s.now().UnixMilli(), ext)
}
