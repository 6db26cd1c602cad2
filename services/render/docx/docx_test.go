package docx

import (
	"archive/zip"
	"bytes"
	"image"
	"image/jpeg"
	"io"
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

func testImage(t *testing.T) *models.Image {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 30)), nil))
	return &models.Image{Data: buf.Bytes(), Width: 40, Height: 30}
}

// unpack renders the payload and returns every archive entry by name.
func unpack(t *testing.T, p *models.ReportPayload) map[string]string {
	t.Helper()
	data, err := New(testConfig()).Render(p)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	parts := map[string]string{}
	for _, f := range zr.File {
		r, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(r)
		r.Close()
		require.NoError(t, err)
		parts[f.Name] = string(content)
	}
	return parts
}

func TestRenderProducesValidPackage(t *testing.T) {
	parts := unpack(t, testPayload())

	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/document.xml",
		"word/_rels/document.xml.rels",
		"word/styles.xml",
		"word/header1.xml",
		"word/footer1.xml",
	} {
		assert.Contains(t, parts, name)
	}
}

func TestRenderContainsStarRating(t *testing.T) {
	parts := unpack(t, testPayload())
	assert.Contains(t, parts["word/document.xml"], "★★★★★ (5/5)")
}

func TestRenderClampsOutOfRangeRating(t *testing.T) {
	p := testPayload()
	p.Form.OverallRating = 6
	parts := unpack(t, p)
	assert.Contains(t, parts["word/document.xml"], "★★★★★ (5/5)")

	p.Form.OverallRating = -2
	parts = unpack(t, p)
	assert.Contains(t, parts["word/document.xml"], "★☆☆☆☆ (1/5)")
}

func TestRenderSectionOmission(t *testing.T) {
	p := testPayload()
	p.Form.Introduction = ""
	p.Form.Conclusion = ""
	parts := unpack(t, p)

	doc := parts["word/document.xml"]
	assert.NotContains(t, doc, "1. Introduction")
	assert.NotContains(t, doc, "9. Conclusion")
	assert.Contains(t, doc, "4. Event Description")
	assert.Contains(t, doc, "6. Outcomes")
}

func TestRenderRoster(t *testing.T) {
	p := testPayload()
	p.Attendees = []models.Attendee{
		{Name: "Asha Verma", Email: "asha@example.com", GraduationYear: 2015, Degree: "B.Tech", Company: "Example Corp"},
		{Name: "Rahul Iyer"},
	}
	parts := unpack(t, p)

	doc := parts["word/document.xml"]
	assert.Contains(t, doc, "Alumni Attendance List")
	assert.Contains(t, doc, "Asha Verma")
	assert.Contains(t, doc, "asha@example.com")
	// Missing roster cells carry the placeholder dash.
	assert.Contains(t, doc, "—")
}

func TestRenderZeroAttendeesOmitsRoster(t *testing.T) {
	parts := unpack(t, testPayload())
	assert.NotContains(t, parts["word/document.xml"], "Alumni Attendance List")
}

func TestHeaderAndFooterParts(t *testing.T) {
	parts := unpack(t, testPayload())

	assert.Contains(t, parts["word/header1.xml"], "Annual Alumni Meet")
	footer := parts["word/footer1.xml"]
	assert.Contains(t, footer, "TEST COLLEGE")
	assert.Contains(t, footer, "PAGE")
	assert.Contains(t, footer, "NUMPAGES")
}

func TestRenderEmbedsImages(t *testing.T) {
	p := testPayload()
	p.Photos = []*models.Image{testImage(t), nil}
	p.Branding.CollegeLogo = testImage(t)
	parts := unpack(t, p)

	assert.Contains(t, parts, "word/media/image1.jpg")
	assert.Contains(t, parts, "word/media/image2.jpg")
	assert.Contains(t, parts["word/_rels/document.xml.rels"], "media/image1.jpg")
	assert.Contains(t, parts["word/document.xml"], "8. Event Photos")
}

func TestXMLEscaping(t *testing.T) {
	p := testPayload()
	p.Form.EventSummary = "Q&A panel <recorded live"
	parts := unpack(t, p)

	doc := parts["word/document.xml"]
	assert.Contains(t, doc, "Q&amp;A panel &lt;recorded live")
	assert.NotContains(t, doc, "<recorded")
}

func TestEngineMetadata(t *testing.T) {
	e := New(testConfig())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", e.ContentType())
	assert.Equal(t, "docx", e.Ext())
}
