package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"alumni-portal/config"
	"alumni-portal/models"
	"alumni-portal/monitoring"
)

// jpegQuality matches the canvas re-encode quality the report images are
// normalized to.
const jpegQuality = 80

// ImageService resolves image references (http(s) URLs or data-URLs) into
// normalized JPEG bytes with natural dimensions. Every load is independent:
// there is no cache and repeated loads re-fetch. Failures are reported to
// the caller, which treats them as "omit this image".
type ImageService struct {
	client  *http.Client
	maxSize int64
}

func NewImageService(cfg *config.Config) *ImageService {
	return &ImageService{
		client:  &http.Client{Timeout: cfg.ImageFetchTimeout},
		maxSize: cfg.MaxUploadSize,
	}
}

// Load fetches and normalizes a single image reference.
func (s *ImageService) Load(ctx context.Context, ref string) (*models.Image, error) {
	raw, err := s.fetch(ctx, ref)
	if err != nil {
		monitoring.TrackImageFetch("fetch_error")
		return nil, err
	}
	img, err := s.Normalize(raw)
	if err != nil {
		monitoring.TrackImageFetch("decode_error")
		return nil, err
	}
	monitoring.TrackImageFetch("ok")
	return img, nil
}

func (s *ImageService) fetch(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case strings.HasPrefix(ref, "data:"):
		return decodeDataURL(ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
		if err != nil {
			return nil, fmt.Errorf("image request: %w", err)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("image fetch: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("image fetch: unexpected status %d", resp.StatusCode)
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxSize))
		if err != nil {
			return nil, fmt.Errorf("image read: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("unsupported image reference scheme")
}

// Normalize decodes raw image bytes (any format imaging understands) and
// re-encodes them as JPEG, reporting the natural pixel dimensions.
func (s *ImageService) Normalize(raw []byte) (*models.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("image decode: %w", err)
	}
	bounds := img.Bounds()

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("image encode: %w", err)
	}
	return &models.Image{
		Data:   buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// LoadAll resolves refs concurrently, preserving source order in the result.
// Failed or empty slots come back nil; a failure never cancels the sibling
// loads.
func (s *ImageService) LoadAll(ctx context.Context, refs []string) []*models.Image {
	imgs := make([]*models.Image, len(refs))
	g := new(errgroup.Group)
	g.SetLimit(4)
	for i, ref := range refs {
		if ref == "" {
			continue
		}
		g.Go(func() error {
			img, err := s.Load(ctx, ref)
			if err != nil {
				slog.Warn("skipping unresolvable report image", "error", err)
				return nil
			}
			imgs[i] = img
			return nil
		})
	}
	g.Wait()
	return imgs
}

func decodeDataURL(ref string) ([]byte, error) {
	idx := strings.Index(ref, ",")
	if idx < 0 {
		return nil, fmt.Errorf("malformed data url")
	}
	data, err := base64.StdEncoding.DecodeString(ref[idx+1:])
	if err != nil {
		return nil, fmt.Errorf("data url decode: %w", err)
	}
	return data, nil
}
