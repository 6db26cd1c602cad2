package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alumni-portal/models"
)

func testConfig() Config {
	return Config{
		InstitutionName: "TEST COLLEGE",
		PortalName:      "Alumni Portal",
		NoCompression:   true,
	}
}

func testPayload() *models.ReportPayload {
	form := models.ReportForm{
		Introduction:     "The department hosted its annual alumni gathering.",
		EventSummary:     "A full day of talks and networking.",
		KeyHighlights:    "- Keynote address\n- Panel discussion",
		Outcomes:         "Five mentorship pairings formed.",
		OverallRating:    5,
		WasUseful:        "yes",
		Conclusion:       "A successful edition.",
		StudentsAttended: "20",
		ExternalGuests:   "2",
		CoordinatorName:  "Prof. Rao",
		ApprovedBy:       "Dr. Nair",
	}
	event := models.EventInfo{
		Title: "Annual Alumni Meet",
		Date:  "2024-03-15",
		Time:  "10:00",
		Venue: "Main Auditorium",
		Type:  "reunion",
		Mode:  "offline",
	}
	return models.NewReportPayload(event, form, nil, nil, models.Branding{}, time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC))
}

func testImage(t *testing.T, w, h int) *models.Image {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return &models.Image{Data: buf.Bytes(), Width: w, Height: h}
}

func render(t *testing.T, p *models.ReportPayload) string {
	t.Helper()
	data, err := New(testConfig()).Render(p)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	return string(data)
}

func pageCount(out string) int {
	return strings.Count(out, "/Type /Page\n")
}

func TestRenderContainsRatingAndSections(t *testing.T) {
	out := render(t, testPayload())

	assert.Contains(t, out, "5/5")
	assert.Contains(t, out, "Annual Alumni Meet")
	assert.Contains(t, out, "1. Introduction")
	assert.Contains(t, out, "9. Conclusion")
	assert.Contains(t, out, "TEST COLLEGE")
}

func TestRenderClampsOutOfRangeRating(t *testing.T) {
	p := testPayload()
	p.Form.OverallRating = 9
	out := render(t, p)
	assert.Contains(t, out, "5/5")

	p.Form.OverallRating = -2
	out = render(t, p)
	assert.Contains(t, out, "1/5")
}

func TestRenderOmitsEmptySections(t *testing.T) {
	p := testPayload()
	p.Form.Introduction = ""
	p.Form.Conclusion = "  ** ** "
	out := render(t, p)

	assert.NotContains(t, out, "1. Introduction")
	assert.NotContains(t, out, "9. Conclusion")
	// Fixed numbering holds even with earlier sections missing.
	assert.Contains(t, out, "4. Event Description")
	assert.Contains(t, out, "6. Outcomes")
}

func TestRenderSkipsSpeakerWithoutName(t *testing.T) {
	p := testPayload()
	out := render(t, p)
	assert.NotContains(t, out, "3. Speaker Details")

	p.Event.Speaker = models.Speaker{Name: "Dr. Menon", Organization: "Acme Labs"}
	out = render(t, p)
	assert.Contains(t, out, "3. Speaker Details")
	assert.Contains(t, out, "Dr. Menon")
}

func TestRenderLargeRosterPaginates(t *testing.T) {
	p := testPayload()
	for i := 0; i < 60; i++ {
		p.Attendees = append(p.Attendees, models.Attendee{
			Name:           fmt.Sprintf("Alum %02d", i),
			Email:          fmt.Sprintf("alum%02d@example.com", i),
			GraduationYear: 2000 + i%20,
			Degree:         "B.Tech",
			Company:        "Example Corp",
		})
	}
	out := render(t, p)

	assert.Greater(t, pageCount(out), 1)
	assert.Contains(t, out, "Alum 59")
	// The roster header repeats after a page break.
	assert.Greater(t, strings.Count(out, "Degree"), 1)
}

func TestRenderZeroAttendeesOmitsRoster(t *testing.T) {
	out := render(t, testPayload())
	assert.NotContains(t, out, "Alumni Attendance List")
	assert.Contains(t, out, "Alumni Attended")
}

func TestRenderWithImages(t *testing.T) {
	p := testPayload()
	p.Photos = []*models.Image{testImage(t, 320, 240), nil, testImage(t, 100, 400)}
	p.Branding = models.Branding{
		CollegeLogo:          testImage(t, 64, 64),
		CoordinatorSignature: testImage(t, 200, 80),
	}
	out := render(t, p)

	assert.Contains(t, out, "8. Event Photos")
	assert.Contains(t, out, "/Subtype /Image")
}

func TestRenderNilBrandingDrawsPlaceholders(t *testing.T) {
	out := render(t, testPayload())
	assert.Contains(t, out, "LOGO")
	assert.Contains(t, out, "APPROVAL")
}

func TestEngineMetadata(t *testing.T) {
	e := New(testConfig())
	assert.Equal(t, "application/pdf", e.ContentType())
	assert.Equal(t, "pdf", e.Ext())
}
