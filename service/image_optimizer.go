package service

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

const (
	SizeThumb  = "thumb"
	SizeMedium = "medium"

	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800

	maxImageBytes = 20 << 20
)

// ErrNoImage is returned for an item that has no image
var ErrNoImage = errors.New("item has no image")

// ImageOptimizer downloads product images, shrinks them to JPEG and caches the result on disk
type ImageOptimizer struct {
	cacheDir string
	client   *http.Client
	logger   *zap.Logger
}

// NewImageOptimizer creates a new ImageOptimizer
func NewImageOptimizer(cacheDir string, client *http.Client, logger *zap.Logger) *ImageOptimizer {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageOptimizer{cacheDir: cacheDir, client: client, logger: logger}
}

// EnsureCacheDir ensures the cache directory exists, creates it if it doesn't
func (o *ImageOptimizer) EnsureCacheDir() error {
	if err := os.MkdirAll(o.cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// cachePath returns the cache file path for an image URL and size
func (o *ImageOptimizer) cachePath(imageURL, size string) string {
	sum := sha1.Sum([]byte(imageURL))
	return filepath.Join(o.cacheDir, fmt.Sprintf("product_%s_%s.jpg", hex.EncodeToString(sum[:8]), size))
}

// Optimized returns the optimized JPEG for imageURL, from cache when possible
func (o *ImageOptimizer) Optimized(ctx context.Context, imageURL, size string) ([]byte, error) {
	if imageURL == "" {
		return nil, ErrNoImage
	}
	size = normalizeSize(size)

	path := o.cachePath(imageURL, size)
	if data, err := os.ReadFile(path); err == nil {
		o.logger.Debug("image served from cache", zap.String("path", path))
		return data, nil
	}

	raw, err := o.download(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	optimized, err := OptimizeImage(raw, size)
	if err != nil {
		return nil, err
	}

	if err := o.saveToCache(path, optimized); err != nil {
		o.logger.Warn("failed to cache image", zap.String("path", path), zap.Error(err))
	}
	return optimized, nil
}

func (o *ImageOptimizer) download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image endpoint returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return data, nil
}

func (o *ImageOptimizer) saveToCache(path string, data []byte) error {
	if err := o.EnsureCacheDir(); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	o.logger.Info("image cached", zap.String("path", path))
	return nil
}

func normalizeSize(size string) string {
	if size == SizeThumb {
		return SizeThumb
	}
	return SizeMedium
}

// OptimizeImage decodes imageData, fits it inside the size's bounding box and
// re-encodes it as JPEG. Images already small enough are not upscaled.
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	maxDim, quality := maxSizeMedium, qualityMedium
	if normalizeSize(size) == SizeThumb {
		maxDim, quality = maxSizeThumb, qualityThumb
	}

	resized := imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

