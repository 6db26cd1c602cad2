package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alumni-portal/config"
)

func dataURL(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestResolveBrandingMapsSlots(t *testing.T) {
	cfg := &config.Config{
		ImageFetchTimeout: 2 * time.Second,
		MaxUploadSize:     10 << 20,
	}
	svc := NewReportService(nil, NewImageService(cfg), cfg)

	branding := svc.resolveBranding(context.Background(), BrandingRefs{
		CollegeLogo:       dataURL(t, 30, 30),
		ApproverSignature: dataURL(t, 60, 20),
	})

	require.NotNil(t, branding.CollegeLogo)
	assert.Equal(t, 30, branding.CollegeLogo.Width)
	assert.Nil(t, branding.DepartmentLogo)
	assert.Nil(t, branding.CoordinatorSignature)
	require.NotNil(t, branding.ApproverSignature)
	assert.Equal(t, 60, branding.ApproverSignature.Width)
}

func TestResolveBrandingBadSlotStaysNil(t *testing.T) {
	cfg := &config.Config{
		ImageFetchTimeout: 2 * time.Second,
		MaxUploadSize:     10 << 20,
	}
	svc := NewReportService(nil, NewImageService(cfg), cfg)

	branding := svc.resolveBranding(context.Background(), BrandingRefs{
		CollegeLogo:          "data:image/png;base64,@@@@",
		CoordinatorSignature: dataURL(t, 10, 10),
	})

	assert.Nil(t, branding.CollegeLogo, "undecodable slot resolves to nil, never aborts")
	assert.NotNil(t, branding.CoordinatorSignature)
}
