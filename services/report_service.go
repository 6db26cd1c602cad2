package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"alumni-portal/config"
	"alumni-portal/models"
	"alumni-portal/monitoring"
	"alumni-portal/services/render"
	"alumni-portal/utils"
)

// BrandingRefs are the client-supplied branding image references (URLs or
// data-URLs). Empty slots stay empty.
type BrandingRefs struct {
	CollegeLogo          string `json:"college_logo"`
	DepartmentLogo       string `json:"department_logo"`
	CoordinatorSignature string `json:"coordinator_signature"`
	ApproverSignature    string `json:"approver_signature"`
}

// GenerateRequest is one report generation request after handler-level
// validation (auth, role, format parsing, form required fields).
type GenerateRequest struct {
	EventID        string
	Formats        []render.Format
	Form           models.ReportForm
	UploadedPhotos []string
	Branding       BrandingRefs
	GeneratedBy    string
}

// GeneratedFile is one rendered document ready for delivery.
type GeneratedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// GenerateResult carries the rendered files plus the persistence outcome.
// PersistErr is informational: a failed save never blocks delivery.
type GenerateResult struct {
	Files      []GeneratedFile
	BaseName   string
	RecordID   string
	PersistErr error
}

// ReportService assembles the report payload from the event, its roster and
// its images, persists the submission and drives the render engines.
type ReportService struct {
	app    *pocketbase.PocketBase
	images *ImageService
	cfg    *config.Config
}

func NewReportService(app *pocketbase.PocketBase, images *ImageService, cfg *config.Config) *ReportService {
	return &ReportService{app: app, images: images, cfg: cfg}
}

// Generate runs the full pipeline for one request. The payload is assembled
// exactly once and shared by every requested format; the submission record is
// written exactly once regardless of how many formats were asked for.
func (s *ReportService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	event, err := s.EventInfo(req.EventID)
	if err != nil {
		return nil, err
	}
	attendees, err := s.Attendees(req.EventID)
	if err != nil {
		return nil, err
	}

	photos := s.resolvePhotos(ctx, req)
	branding := s.resolveBranding(ctx, req.Branding)

	payload := models.NewReportPayload(event, req.Form, attendees, photos, branding, time.Now())

	result := &GenerateResult{BaseName: utils.SafeFilename(event.Title)}
	result.RecordID, result.PersistErr = s.persist(req, len(attendees))
	if result.PersistErr != nil {
		slog.Error("report submission not saved", "event", req.EventID, "error", result.PersistErr)
	}
	s.logActivity(req)

	opts := render.Options{
		InstitutionName: s.cfg.InstitutionName,
		PortalName:      s.cfg.PortalName,
	}
	for _, format := range req.Formats {
		engine, err := render.ForFormat(format, opts)
		if err != nil {
			return nil, err
		}
		start := time.Now()
		data, err := engine.Render(payload)
		monitoring.ObserveReportDuration(string(format), time.Since(start))
		if err != nil {
			monitoring.TrackReport(string(format), "error")
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		monitoring.TrackReport(string(format), "ok")
		result.Files = append(result.Files, GeneratedFile{
			Name:        payload.FileName(engine.Ext()),
			ContentType: engine.ContentType(),
			Data:        data,
		})
	}
	return result, nil
}

// EventInfo loads the event snapshot with its department joined in.
func (s *ReportService) EventInfo(eventID string) (models.EventInfo, error) {
	record, err := s.app.FindRecordById("events", eventID)
	if err != nil {
		return models.EventInfo{}, fmt.Errorf("event %s: %w", eventID, err)
	}

	info := models.EventInfo{
		ID:                   record.Id,
		Title:                record.GetString("title"),
		Date:                 record.GetString("event_date"),
		Time:                 record.GetString("event_time"),
		Venue:                record.GetString("venue"),
		Type:                 record.GetString("event_type"),
		Mode:                 record.GetString("mode"),
		Description:          record.GetString("description"),
		ExpectedParticipants: record.GetInt("expected_participants"),
		CoordinatorName:      record.GetString("coordinator_name"),
		Speaker: models.Speaker{
			Name:         record.GetString("speaker_name"),
			Designation:  record.GetString("speaker_designation"),
			Organization: record.GetString("speaker_organization"),
			Bio:          record.GetString("speaker_bio"),
		},
	}

	if deptID := record.GetString("department"); deptID != "" {
		dept, err := s.app.FindRecordById("departments", deptID)
		if err == nil {
			info.DepartmentName = dept.GetString("name")
		}
	}
	return info, nil
}

// Attendees loads the roster in registration order, joining each alumni
// record for the detail columns.
func (s *ReportService) Attendees(eventID string) ([]models.Attendee, error) {
	records, err := s.app.FindRecordsByFilter(
		"event_attendees",
		"event = {:event}",
		"created",
		0, 0,
		dbx.Params{"event": eventID},
	)
	if err != nil {
		return nil, fmt.Errorf("attendees for event %s: %w", eventID, err)
	}

	attendees := make([]models.Attendee, 0, len(records))
	for _, rec := range records {
		alumniID := rec.GetString("alumni")
		alumni, err := s.app.FindRecordById("alumni", alumniID)
		if err != nil {
			slog.Warn("attendee with missing alumni record skipped", "attendee", rec.Id, "alumni", alumniID)
			continue
		}
		attendees = append(attendees, models.Attendee{
			Name:           alumni.GetString("name"),
			Email:          alumni.GetString("email"),
			GraduationYear: alumni.GetInt("graduation_year"),
			Degree:         alumni.GetString("degree"),
			Company:        alumni.GetString("company"),
		})
	}
	return attendees, nil
}

// resolvePhotos merges stored event photos with the session uploads, in that
// order, capped at the configured maximum. Unresolvable entries are dropped;
// the grid simply has one fewer cell.
func (s *ReportService) resolvePhotos(ctx context.Context, req GenerateRequest) []*models.Image {
	photos := s.storedPhotos(req.EventID)

	for _, img := range s.images.LoadAll(ctx, req.UploadedPhotos) {
		if img != nil {
			photos = append(photos, img)
		}
	}
	if len(photos) > s.cfg.MaxReportPhotos {
		photos = photos[:s.cfg.MaxReportPhotos]
	}
	return photos
}

// storedPhotos reads previously uploaded event photos straight from the
// application file store, skipping unreadable files.
func (s *ReportService) storedPhotos(eventID string) []*models.Image {
	records, err := s.app.FindRecordsByFilter(
		"event_photos",
		"event = {:event}",
		"created",
		0, 0,
		dbx.Params{"event": eventID},
	)
	if err != nil {
		slog.Warn("stored photos unavailable", "event", eventID, "error", err)
		return nil
	}
	if len(records) == 0 {
		return nil
	}

	fsys, err := s.app.NewFilesystem()
	if err != nil {
		slog.Warn("file store unavailable", "error", err)
		return nil
	}
	defer fsys.Close()

	var photos []*models.Image
	for _, rec := range records {
		name := rec.GetString("photo")
		if name == "" {
			continue
		}
		r, err := fsys.GetFile(rec.BaseFilesPath() + "/" + name)
		if err != nil {
			slog.Warn("stored photo unreadable", "record", rec.Id, "error", err)
			continue
		}
		raw, err := io.ReadAll(io.LimitReader(r, s.cfg.MaxUploadSize))
		r.Close()
		if err != nil {
			slog.Warn("stored photo unreadable", "record", rec.Id, "error", err)
			continue
		}
		img, err := s.images.Normalize(raw)
		if err != nil {
			slog.Warn("stored photo undecodable", "record", rec.Id, "error", err)
			continue
		}
		photos = append(photos, img)
	}
	return photos
}

// resolveBranding fetches the four optional branding slots concurrently.
// A failed slot stays nil and renders as a placeholder or blank space.
func (s *ReportService) resolveBranding(ctx context.Context, refs BrandingRefs) models.Branding {
	imgs := s.images.LoadAll(ctx, []string{
		refs.CollegeLogo,
		refs.DepartmentLogo,
		refs.CoordinatorSignature,
		refs.ApproverSignature,
	})
	return models.Branding{
		CollegeLogo:          imgs[0],
		DepartmentLogo:       imgs[1],
		CoordinatorSignature: imgs[2],
		ApproverSignature:    imgs[3],
	}
}

// persist appends one submission record. Repeat generations for the same
// event append again; nothing is ever updated in place.
func (s *ReportService) persist(req GenerateRequest, alumniCount int) (string, error) {
	collection, err := s.app.FindCollectionByNameOrId("event_report_data")
	if err != nil {
		return "", fmt.Errorf("report collection: %w", err)
	}

	f := req.Form
	record := core.NewRecord(collection)
	record.Set("event", req.EventID)
	record.Set("generated_by", req.GeneratedBy)
	record.Set("introduction", f.Introduction)
	record.Set("event_summary", f.EventSummary)
	record.Set("key_highlights", f.KeyHighlights)
	record.Set("outcomes", f.Outcomes)
	record.Set("speaker_rating", f.SpeakerRating)
	record.Set("speaker_feedback", f.SpeakerFeedback)
	record.Set("overall_rating", f.Rating())
	record.Set("was_useful", f.WasUseful == "yes")
	record.Set("what_went_well", f.WhatWentWell)
	record.Set("what_to_improve", f.WhatToImprove)
	record.Set("future_suggestions", f.FutureSuggestions)
	record.Set("conclusion", f.Conclusion)
	record.Set("students_attended", f.StudentsCount())
	record.Set("external_guests", f.GuestsCount())
	record.Set("alumni_attended", alumniCount)
	record.Set("coordinator_name", f.CoordinatorName)
	record.Set("approved_by", f.ApprovedBy)

	if err := s.app.Save(record); err != nil {
		return "", fmt.Errorf("save report submission: %w", err)
	}
	return record.Id, nil
}

// logActivity records the generation in the audit trail, best effort.
func (s *ReportService) logActivity(req GenerateRequest) {
	collection, err := s.app.FindCollectionByNameOrId("activity_logs")
	if err != nil {
		return
	}
	record := core.NewRecord(collection)
	record.Set("user", req.GeneratedBy)
	record.Set("action", "report_generated")
	record.Set("details", map[string]any{
		"event":   req.EventID,
		"formats": req.Formats,
	})
	if err := s.app.Save(record); err != nil {
		slog.Warn("activity log write failed", "error", err)
	}
}
