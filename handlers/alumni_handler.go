package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"alumni-portal/services"
	"alumni-portal/utils"
)

// AlumniHandler covers the CSV surfaces: attendee export per event, alumni
// export per scope and bulk alumni import.
type AlumniHandler struct {
	app     *pocketbase.PocketBase
	reports *services.ReportService
}

func NewAlumniHandler(app *pocketbase.PocketBase, reports *services.ReportService) *AlumniHandler {
	return &AlumniHandler{app: app, reports: reports}
}

// ExportAttendees handles GET /api/v1/events/{eventId}/attendees/export and
// streams the event roster as CSV.
func (h *AlumniHandler) ExportAttendees(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Authentication required", nil)
	}
	eventID := e.Request.PathValue("eventId")

	event, err := h.reports.EventInfo(eventID)
	if err != nil {
		return apis.NewNotFoundError("Event not found", err)
	}
	attendees, err := h.reports.Attendees(eventID)
	if err != nil {
		return apis.NewInternalServerError("Attendee export failed", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"name", "email", "graduation_year", "degree", "company"})
	for _, a := range attendees {
		year := ""
		if a.GraduationYear > 0 {
			year = strconv.Itoa(a.GraduationYear)
		}
		w.Write([]string{a.Name, a.Email, year, a.Degree, a.Company})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return apis.NewInternalServerError("Attendee export failed", err)
	}

	name := utils.SafeFilename(event.Title) + "_attendees.csv"
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	return e.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

// ExportAlumni handles GET /api/v1/alumni/export. Directors export the whole
// database; everyone else only their department.
func (h *AlumniHandler) ExportAlumni(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Authentication required", nil)
	}

	var exprs []dbx.Expression
	if e.Auth.GetString("role") != "director" {
		departmentID := e.Auth.GetString("department")
		if departmentID == "" {
			return apis.NewForbiddenError("No department assigned to this account", nil)
		}
		exprs = append(exprs, dbx.HashExp{"department": departmentID})
	}

	records, err := h.app.FindAllRecords("alumni", exprs...)
	if err != nil {
		return apis.NewInternalServerError("Alumni export failed", err)
	}
	deptNames := h.departmentNames()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"name", "email", "phone", "graduation_year", "degree", "department", "company", "designation", "placement_status"})
	for _, rec := range records {
		year := ""
		if y := rec.GetInt("graduation_year"); y > 0 {
			year = strconv.Itoa(y)
		}
		w.Write([]string{
			rec.GetString("name"),
			rec.GetString("email"),
			rec.GetString("phone"),
			year,
			rec.GetString("degree"),
			deptNames[rec.GetString("department")],
			rec.GetString("company"),
			rec.GetString("designation"),
			rec.GetString("placement_status"),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return apis.NewInternalServerError("Alumni export failed", err)
	}

	e.Response.Header().Set("Content-Disposition", `attachment; filename="alumni_export.csv"`)
	return e.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

// ImportAlumni handles POST /api/v1/alumni/import with a multipart "file"
// CSV. Rows without a name are skipped, not fatal; the response reports both
// counts. Non-directors can only import into their own department.
func (h *AlumniHandler) ImportAlumni(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Authentication required", nil)
	}
	role := e.Auth.GetString("role")
	if role != "director" && role != "hod" && role != "department_admin" {
		return apis.NewForbiddenError("Insufficient permissions for alumni import", nil)
	}

	file, _, err := e.Request.FormFile("file")
	if err != nil {
		return apis.NewBadRequestError("Missing csv file upload", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return apis.NewBadRequestError("Empty or unreadable csv file", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := col["name"]; !ok {
		return apis.NewBadRequestError("csv must have a name column", nil)
	}

	collection, err := h.app.FindCollectionByNameOrId("alumni")
	if err != nil {
		return apis.NewInternalServerError("Alumni import failed", err)
	}

	ownDepartment := e.Auth.GetString("department")
	deptByName := h.departmentIDsByName()

	// Batch id ties the imported rows to their audit trail entry.
	batch, err := utils.GenerateCode(4)
	if err != nil {
		return apis.NewInternalServerError("Alumni import failed", err)
	}

	imported, skipped := 0, 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		name := get("name")
		if name == "" {
			skipped++
			continue
		}

		departmentID := ownDepartment
		if role == "director" {
			if id, ok := deptByName[strings.ToLower(get("department"))]; ok {
				departmentID = id
			}
		}
		if departmentID == "" {
			skipped++
			continue
		}

		record := core.NewRecord(collection)
		record.Set("name", name)
		record.Set("email", get("email"))
		record.Set("phone", get("phone"))
		record.Set("degree", get("degree"))
		record.Set("company", get("company"))
		record.Set("designation", get("designation"))
		record.Set("placement_status", get("placement_status"))
		record.Set("department", departmentID)
		if year, err := strconv.Atoi(get("graduation_year")); err == nil && year > 0 {
			record.Set("graduation_year", year)
		}

		if err := h.app.Save(record); err != nil {
			skipped++
			continue
		}
		imported++
	}

	h.logImport(e.Auth.Id, batch, imported, skipped)

	return e.JSON(http.StatusOK, map[string]any{
		"batch":    batch,
		"imported": imported,
		"skipped":  skipped,
	})
}

// logImport records the bulk import in the audit trail, best effort.
func (h *AlumniHandler) logImport(userID, batch string, imported, skipped int) {
	collection, err := h.app.FindCollectionByNameOrId("activity_logs")
	if err != nil {
		return
	}
	record := core.NewRecord(collection)
	record.Set("user", userID)
	record.Set("action", "alumni_imported")
	record.Set("details", map[string]any{
		"batch":    batch,
		"imported": imported,
		"skipped":  skipped,
	})
	if err := h.app.Save(record); err != nil {
		slog.Warn("activity log write failed", "error", err)
	}
}

func (h *AlumniHandler) departmentNames() map[string]string {
	out := map[string]string{}
	records, err := h.app.FindAllRecords("departments")
	if err != nil {
		return out
	}
	for _, rec := range records {
		out[rec.Id] = rec.GetString("name")
	}
	return out
}

func (h *AlumniHandler) departmentIDsByName() map[string]string {
	out := map[string]string{}
	records, err := h.app.FindAllRecords("departments")
	if err != nil {
		return out
	}
	for _, rec := range records {
		out[strings.ToLower(rec.GetString("name"))] = rec.Id
	}
	return out
}
