package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"alumni-portal/utils"
)

// Speaker is the optional guest speaker attached to an event.
type Speaker struct {
	Name         string `json:"name"`
	Designation  string `json:"designation"`
	Organization string `json:"organization"`
	Bio          string `json:"bio"`
}

// EventInfo is the event snapshot a report is generated for. Only the title
// is guaranteed to be present.
type EventInfo struct {
	ID                   string  `json:"id"`
	Title                string  `json:"title"`
	Date                 string  `json:"event_date"` // YYYY-MM-DD
	Time                 string  `json:"event_time"` // HH:MM
	Venue                string  `json:"venue"`
	Type                 string  `json:"event_type"`
	Mode                 string  `json:"mode"`
	Description          string  `json:"description"`
	DepartmentName       string  `json:"department_name"`
	ExpectedParticipants int     `json:"expected_participants"`
	CoordinatorName      string  `json:"coordinator_name"`
	Speaker              Speaker `json:"speaker"`
}

// Attendee is one alumni roster row, joined from the alumni record.
type Attendee struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	GraduationYear int    `json:"graduation_year"`
	Degree         string `json:"degree"`
	Company        string `json:"company"`
}

// Image is a decoded, re-encoded (JPEG) image ready for embedding, with its
// natural pixel dimensions.
type Image struct {
	Data   []byte
	Width  int
	Height int
}

// Branding holds the four optional branding slots. A nil slot renders as a
// placeholder (logos) or blank space (signatures).
type Branding struct {
	CollegeLogo          *Image
	DepartmentLogo       *Image
	CoordinatorSignature *Image
	ApproverSignature    *Image
}

// ReportForm is the submitted report form, as received from the client.
// Counts arrive as strings (free-form inputs) and are normalized through
// StudentsCount/GuestsCount; the rating is clamped, never rejected.
type ReportForm struct {
	Introduction      string `json:"introduction"`
	EventSummary      string `json:"event_summary"`
	KeyHighlights     string `json:"key_highlights"`
	Outcomes          string `json:"outcomes"`
	SpeakerRating     string `json:"speaker_rating"` // excellent | good | average
	SpeakerFeedback   string `json:"speaker_feedback"`
	OverallRating     int    `json:"overall_rating"`
	WasUseful         string `json:"was_useful"` // yes | no
	WhatWentWell      string `json:"what_went_well"`
	WhatToImprove     string `json:"what_to_improve"`
	FutureSuggestions string `json:"future_suggestions"`
	Conclusion        string `json:"conclusion"`
	StudentsAttended  string `json:"students_attended"`
	ExternalGuests    string `json:"external_guests"`
	CoordinatorName   string `json:"coordinator_name"`
	ApprovedBy        string `json:"approved_by"`
}

// ValidationError reports a missing required field by its user-facing label.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// Validate checks required-field presence. It runs before aggregation; a
// failing form never reaches the renderers or the report store.
func (f *ReportForm) Validate() error {
	required := []struct {
		label string
		value string
	}{
		{"event summary", f.EventSummary},
		{"key highlights", f.KeyHighlights},
		{"outcomes", f.Outcomes},
		{"coordinator name", f.CoordinatorName},
		{"approved by", f.ApprovedBy},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{Field: r.label}
		}
	}
	return nil
}

// Rating returns the overall rating clamped into [1,5].
func (f *ReportForm) Rating() int {
	switch {
	case f.OverallRating < 1:
		return 1
	case f.OverallRating > 5:
		return 5
	}
	return f.OverallRating
}

// StudentsCount parses the students-attended input; non-numeric or negative
// values count as zero.
func (f *ReportForm) StudentsCount() int {
	return nonNegative(f.StudentsAttended)
}

// GuestsCount parses the external-guests input; non-numeric or negative
// values count as zero.
func (f *ReportForm) GuestsCount() int {
	return nonNegative(f.ExternalGuests)
}

func nonNegative(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// UsefulLabel renders the was_useful answer for documents.
func (f *ReportForm) UsefulLabel() string {
	if f.WasUseful == "yes" {
		return "Yes"
	}
	return "No"
}

// ReportPayload is the immutable snapshot driving one generation request.
// It is assembled once by the aggregator and consumed, unmodified, by every
// requested renderer.
type ReportPayload struct {
	Event             EventInfo
	Form              ReportForm
	Attendees         []Attendee
	Photos            []*Image
	Branding          Branding
	TotalParticipants int
	GeneratedAt       time.Time
}

// NewReportPayload merges the validated form with the event snapshot, roster
// and resolved images. The participation total is computed here, once, and
// reused by both output formats.
func NewReportPayload(event EventInfo, form ReportForm, attendees []Attendee, photos []*Image, branding Branding, generatedAt time.Time) *ReportPayload {
	return &ReportPayload{
		Event:             event,
		Form:              form,
		Attendees:         attendees,
		Photos:            photos,
		Branding:          branding,
		TotalParticipants: len(attendees) + form.StudentsCount() + form.GuestsCount(),
		GeneratedAt:       generatedAt,
	}
}

// FileName derives the download name for a rendered document.
func (p *ReportPayload) FileName(ext string) string {
	return utils.SafeFilename(p.Event.Title) + "_report." + ext
}

// StarRating renders the clamped rating as filled/empty star glyphs,
// e.g. "★★★★☆ (4/5)".
func (p *ReportPayload) StarRating() string {
	n := p.Form.Rating()
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n) + fmt.Sprintf(" (%d/5)", n)
}

// NumericRating is the glyph-free fallback, e.g. "(4/5)". It is plain
// string formatting and can never fail.
func (p *ReportPayload) NumericRating() string {
	return fmt.Sprintf("(%d/5)", p.Form.Rating())
}

// HasIntroduction reports whether the introduction section should render.
// Optional narrative sections disappear entirely (heading included) when
// nothing survives sanitization.
func (p *ReportPayload) HasIntroduction() bool {
	return utils.Sanitize(p.Form.Introduction) != ""
}

// HasKeyHighlights reports whether the highlights block should render.
func (p *ReportPayload) HasKeyHighlights() bool {
	return utils.Sanitize(p.Form.KeyHighlights) != ""
}

// HasConclusion reports whether the conclusion section should render.
func (p *ReportPayload) HasConclusion() bool {
	return utils.Sanitize(p.Form.Conclusion) != ""
}

// HasSpeaker reports whether the speaker section should render.
func (p *ReportPayload) HasSpeaker() bool {
	return p.Event.Speaker.Name != ""
}

// KeyHighlightLines splits the highlights field into sanitized bullet lines,
// dropping leading dashes and empty entries.
func (p *ReportPayload) KeyHighlightLines() []string {
	var lines []string
	for _, raw := range strings.Split(p.Form.KeyHighlights, "\n") {
		clean := strings.TrimPrefix(utils.Sanitize(raw), "- ")
		clean = strings.TrimPrefix(clean, "-")
		clean = strings.TrimSpace(clean)
		if clean != "" {
			lines = append(lines, clean)
		}
	}
	return lines
}

// ParticipationRows is the fixed 4-row category/count summary table shared
// by both engines.
func (p *ReportPayload) ParticipationRows() [][2]string {
	return [][2]string{
		{"Alumni Attended", strconv.Itoa(len(p.Attendees))},
		{"Students Attended", strconv.Itoa(p.Form.StudentsCount())},
		{"External Guests", strconv.Itoa(p.Form.GuestsCount())},
		{"Total Participants", strconv.Itoa(p.TotalParticipants)},
	}
}

// FeedbackRows is the parameter/response table shared by both engines. The
// rating cell differs per engine (star glyphs vs numeric fallback), so it is
// passed in.
func (p *ReportPayload) FeedbackRows(ratingDisplay string) [][2]string {
	return [][2]string{
		{"Overall Rating", ratingDisplay},
		{"Was the event useful?", p.Form.UsefulLabel()},
		{"What went well?", utils.SanitizeOr(p.Form.WhatWentWell, "—")},
		{"What can be improved?", utils.SanitizeOr(p.Form.WhatToImprove, "—")},
		{"Suggestions for future", utils.SanitizeOr(p.Form.FutureSuggestions, "—")},
	}
}
