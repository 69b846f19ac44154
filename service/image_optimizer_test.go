package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{R: 200, G: 80, B: 40, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func decodedBounds(t *testing.T, data []byte) image.Rectangle {
	t.Helper()
	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img.Bounds()
}

func TestOptimizeImage_FitsThumb(t *testing.T) {
	out, err := OptimizeImage(pngBytes(t, 1200, 600), SizeThumb)

	require.NoError(t, err)
	bounds := decodedBounds(t, out)
	assert.Equal(t, 300, bounds.Dx())
	assert.Equal(t, 150, bounds.Dy())
}

func TestOptimizeImage_DoesNotUpscale(t *testing.T) {
	out, err := OptimizeImage(pngBytes(t, 100, 50), SizeMedium)

	require.NoError(t, err)
	bounds := decodedBounds(t, out)
	assert.Equal(t, 100, bounds.Dx())
	assert.Equal(t, 50, bounds.Dy())
}

func TestOptimizeImage_InvalidData(t *testing.T) {
	_, err := OptimizeImage([]byte("not an image"), SizeThumb)
	assert.Error(t, err)
}

func TestImageOptimizer_CachesResult(t *testing.T) {
	var hits int32
	data := pngBytes(t, 900, 900)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer server.Close()

	optimizer := NewImageOptimizer(t.TempDir(), server.Client(), nil)
	ctx := context.Background()

	first, err := optimizer.Optimized(ctx, server.URL+"/shirt.png", SizeMedium)
	require.NoError(t, err)
	second, err := optimizer.Optimized(ctx, server.URL+"/shirt.png", SizeMedium)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	_, err = os.Stat(optimizer.cachePath(server.URL+"/shirt.png", SizeMedium))
	assert.NoError(t, err)
}

func TestImageOptimizer_NoImage(t *testing.T) {
	optimizer := NewImageOptimizer(t.TempDir(), nil, nil)

	_, err := optimizer.Optimized(context.Background(), "", SizeThumb)

	assert.ErrorIs(t, err, ErrNoImage)
}

func TestImageOptimizer_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	optimizer := NewImageOptimizer(t.TempDir(), server.Client(), nil)
	_, err := optimizer.Optimized(context.Background(), server.URL+"/missing.png", SizeThumb)

	assert.Error(t, err)
}
