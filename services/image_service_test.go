package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alumni-portal/config"
)

func testImageService() *ImageService {
	return NewImageService(&config.Config{
		ImageFetchTimeout: 2 * time.Second,
		MaxUploadSize:     10 << 20,
	})
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestLoadFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(pngBytes(t, 120, 80))
	}))
	defer srv.Close()

	img, err := testImageService().Load(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Width)
	assert.Equal(t, 80, img.Height)
	// Normalized output is always JPEG.
	assert.True(t, bytes.HasPrefix(img.Data, []byte{0xFF, 0xD8}))
}

func TestLoadFromDataURL(t *testing.T) {
	ref := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, 10, 10))
	img, err := testImageService().Load(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, 10, img.Width)
	assert.Equal(t, 10, img.Height)
}

func TestLoadFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		case "/garbage":
			w.Write([]byte("not an image at all"))
		}
	}))
	defer srv.Close()

	svc := testImageService()

	_, err := svc.Load(context.Background(), srv.URL+"/missing")
	assert.Error(t, err)

	_, err = svc.Load(context.Background(), srv.URL+"/garbage")
	assert.Error(t, err)

	_, err = svc.Load(context.Background(), "ftp://example.com/x.png")
	assert.Error(t, err)

	_, err = svc.Load(context.Background(), "data:image/png;base64,!!!!")
	assert.Error(t, err)
}

func TestLoadAllPreservesOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			http.NotFound(w, r)
			return
		}
		w.Write(pngBytes(t, 50, 50))
	}))
	defer srv.Close()

	refs := []string{srv.URL + "/a", "", srv.URL + "/bad", srv.URL + "/b"}
	imgs := testImageService().LoadAll(context.Background(), refs)

	require.Len(t, imgs, 4)
	assert.NotNil(t, imgs[0])
	assert.Nil(t, imgs[1], "empty ref stays nil")
	assert.Nil(t, imgs[2], "failed fetch stays nil")
	assert.NotNil(t, imgs[3])
}
