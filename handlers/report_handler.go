package handlers

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"alumni-portal/config"
	"alumni-portal/models"
	"alumni-portal/security"
	"alumni-portal/services"
	"alumni-portal/services/render"
)

// ReportHandler drives report generation and delivery.
type ReportHandler struct {
	reports *services.ReportService
	limiter *security.RateLimiter
	cfg     *config.Config
}

func NewReportHandler(reports *services.ReportService, limiter *security.RateLimiter, cfg *config.Config) *ReportHandler {
	return &ReportHandler{reports: reports, limiter: limiter, cfg: cfg}
}

type generateReportRequest struct {
	Formats  []string              `json:"formats"`
	Form     models.ReportForm     `json:"form"`
	Photos   []string              `json:"photos"`
	Branding services.BrandingRefs `json:"branding"`
}

// Generate handles POST /api/v1/events/{eventId}/report. A single requested
// format streams as an attachment; both formats together come back as a zip.
func (h *ReportHandler) Generate(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Authentication required", nil)
	}
	role := e.Auth.GetString("role")
	if role != "director" && role != "hod" {
		return apis.NewForbiddenError("Only directors and department heads can generate reports", nil)
	}

	ctx := e.Request.Context()
	if err := h.limiter.Allow(ctx, "report:"+e.Auth.Id, h.cfg.ReportRateLimit, h.cfg.ReportRateWindow); err != nil {
		return apis.NewTooManyRequestsError("Report generation rate limit reached, try again shortly", nil)
	}

	eventID := e.Request.PathValue("eventId")
	if eventID == "" {
		return apis.NewBadRequestError("Missing event id", nil)
	}

	var req generateReportRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	formats, err := parseFormats(req.Formats)
	if err != nil {
		return apis.NewBadRequestError(err.Error(), err)
	}
	if err := req.Form.Validate(); err != nil {
		return apis.NewBadRequestError(err.Error(), err)
	}

	result, err := h.reports.Generate(ctx, services.GenerateRequest{
		EventID:        eventID,
		Formats:        formats,
		Form:           req.Form,
		UploadedPhotos: req.Photos,
		Branding:       req.Branding,
		GeneratedBy:    e.Auth.Id,
	})
	if err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			return apis.NewBadRequestError(err.Error(), err)
		}
		return apis.NewInternalServerError("Report generation failed", err)
	}

	e.Response.Header().Set("X-Report-Saved", fmt.Sprintf("%t", result.PersistErr == nil))

	if len(result.Files) == 1 {
		f := result.Files[0]
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name))
		return e.Blob(http.StatusOK, f.ContentType, f.Data)
	}

	data, err := zipFiles(result.Files)
	if err != nil {
		return apis.NewInternalServerError("Report packaging failed", err)
	}
	name := result.BaseName + "_report.zip"
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	return e.Blob(http.StatusOK, "application/zip", data)
}

// parseFormats validates and de-duplicates the requested formats, keeping
// request order.
func parseFormats(raw []string) ([]render.Format, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("at least one report format is required")
	}
	seen := map[render.Format]bool{}
	var formats []render.Format
	for _, s := range raw {
		f, err := render.ParseFormat(s)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	return formats, nil
}

func zipFiles(files []services.GeneratedFile) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.Name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
