package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/filesystem"

	"alumni-portal/config"
)

// PhotoHandler stores event gallery photos. Stored photos are picked up
// automatically by later report generations for the same event.
type PhotoHandler struct {
	app *pocketbase.PocketBase
	cfg *config.Config
}

func NewPhotoHandler(app *pocketbase.PocketBase, cfg *config.Config) *PhotoHandler {
	return &PhotoHandler{app: app, cfg: cfg}
}

// Upload handles POST /api/v1/events/{eventId}/photos with one or more
// multipart "photos" files.
func (h *PhotoHandler) Upload(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Authentication required", nil)
	}

	eventID := e.Request.PathValue("eventId")
	if _, err := h.app.FindRecordById("events", eventID); err != nil {
		return apis.NewNotFoundError("Event not found", err)
	}

	if err := e.Request.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil {
		return apis.NewBadRequestError("Invalid multipart upload", err)
	}
	files := e.Request.MultipartForm.File["photos"]
	if len(files) == 0 {
		return apis.NewBadRequestError("No photos in upload", nil)
	}

	collection, err := h.app.FindCollectionByNameOrId("event_photos")
	if err != nil {
		return apis.NewInternalServerError("Photo upload failed", err)
	}

	saved := 0
	for _, fh := range files {
		file, err := filesystem.NewFileFromMultipart(fh)
		if err != nil {
			continue
		}
		record := core.NewRecord(collection)
		record.Set("event", eventID)
		record.Set("uploaded_by", e.Auth.Id)
		record.Set("caption", e.Request.FormValue("caption"))
		record.Set("photo", file)
		if err := h.app.Save(record); err != nil {
			continue
		}
		saved++
	}
	if saved == 0 {
		return apis.NewBadRequestError("No photos could be stored", nil)
	}

	return e.JSON(http.StatusOK, map[string]int{"uploaded": saved})
}
