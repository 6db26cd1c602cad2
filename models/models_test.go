package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() ReportForm {
	return ReportForm{
		EventSummary:     "The annual alumni meet went smoothly.",
		KeyHighlights:    "- Keynote\n- Networking dinner",
		Outcomes:         "Two new mentorship signups.",
		CoordinatorName:  "Prof. Rao",
		ApprovedBy:       "Dr. Nair",
		OverallRating:    4,
		WasUseful:        "yes",
		StudentsAttended: "40",
		ExternalGuests:   "5",
	}
}

func TestValidateReportsFirstMissingField(t *testing.T) {
	form := validForm()
	form.Outcomes = "   "
	err := form.Validate()
	require.Error(t, err)
	assert.Equal(t, "outcomes is required", err.Error())

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "outcomes", ve.Field)
}

func TestValidatePassesCompleteForm(t *testing.T) {
	form := validForm()
	assert.NoError(t, form.Validate())
}

func TestRatingClamp(t *testing.T) {
	cases := map[int]int{-3: 1, 0: 1, 1: 1, 3: 3, 5: 5, 6: 5, 99: 5}
	for in, want := range cases {
		form := ReportForm{OverallRating: in}
		assert.Equal(t, want, form.Rating(), "input %d", in)
	}
}

func TestCountsNeverNegative(t *testing.T) {
	form := ReportForm{StudentsAttended: "abc", ExternalGuests: "-7"}
	assert.Equal(t, 0, form.StudentsCount())
	assert.Equal(t, 0, form.GuestsCount())

	form = ReportForm{StudentsAttended: " 12 ", ExternalGuests: "3"}
	assert.Equal(t, 12, form.StudentsCount())
	assert.Equal(t, 3, form.GuestsCount())
}

func TestTotalParticipantsComputedOnce(t *testing.T) {
	attendees := []Attendee{{Name: "A"}, {Name: "B"}, {Name: "C"}}
	p := NewReportPayload(EventInfo{Title: "Meet"}, validForm(), attendees, nil, Branding{}, time.Now())
	assert.Equal(t, 3+40+5, p.TotalParticipants)

	rows := p.ParticipationRows()
	require.Len(t, rows, 4)
	assert.Equal(t, [2]string{"Alumni Attended", "3"}, rows[0])
	assert.Equal(t, [2]string{"Total Participants", "48"}, rows[3])
}

func TestStarRating(t *testing.T) {
	form := validForm()
	form.OverallRating = 4
	p := NewReportPayload(EventInfo{}, form, nil, nil, Branding{}, time.Now())
	assert.Equal(t, "★★★★☆ (4/5)", p.StarRating())
	assert.Equal(t, "(4/5)", p.NumericRating())

	form.OverallRating = 9
	p = NewReportPayload(EventInfo{}, form, nil, nil, Branding{}, time.Now())
	assert.Equal(t, "★★★★★ (5/5)", p.StarRating())
}

func TestOptionalSectionPresence(t *testing.T) {
	form := validForm()
	form.Introduction = "   **  ** "
	form.Conclusion = "A fitting close."
	p := NewReportPayload(EventInfo{}, form, nil, nil, Branding{}, time.Now())

	assert.False(t, p.HasIntroduction())
	assert.True(t, p.HasConclusion())
	assert.True(t, p.HasKeyHighlights())
	assert.False(t, p.HasSpeaker())

	p.Event.Speaker.Name = "Dr. Menon"
	assert.True(t, p.HasSpeaker())
}

func TestKeyHighlightLines(t *testing.T) {
	form := validForm()
	form.KeyHighlights = "- First point\n\n-Second point\n   \nThird"
	p := NewReportPayload(EventInfo{}, form, nil, nil, Branding{}, time.Now())
	assert.Equal(t, []string{"First point", "Second point", "Third"}, p.KeyHighlightLines())
}

func TestFeedbackRowsPlaceholders(t *testing.T) {
	form := validForm()
	form.WhatWentWell = ""
	form.WhatToImprove = "Catering"
	p := NewReportPayload(EventInfo{}, form, nil, nil, Branding{}, time.Now())

	rows := p.FeedbackRows(p.StarRating())
	require.Len(t, rows, 5)
	assert.Equal(t, "★★★★☆ (4/5)", rows[0][1])
	assert.Equal(t, "Yes", rows[1][1])
	assert.Equal(t, "—", rows[2][1])
	assert.Equal(t, "Catering", rows[3][1])
}

func TestFileName(t *testing.T) {
	p := NewReportPayload(EventInfo{Title: "AI Workshop 2024"}, validForm(), nil, nil, Branding{}, time.Now())
	assert.Equal(t, "AI_Workshop_2024_report.pdf", p.FileName("pdf"))
	assert.Equal(t, "AI_Workshop_2024_report.docx", p.FileName("docx"))
}

func TestUsefulLabel(t *testing.T) {
	assert.Equal(t, "Yes", (&ReportForm{WasUseful: "yes"}).UsefulLabel())
	assert.Equal(t, "No", (&ReportForm{WasUseful: "no"}).UsefulLabel())
	assert.Equal(t, "No", (&ReportForm{}).UsefulLabel())
}
