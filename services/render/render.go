// Package render selects and drives the document engines. The two engines
// produce content-equivalent reports from the same payload; only the layout
// model differs (absolute-positioned pages vs flowed parts).
package render

import (
	"fmt"

	"alumni-portal/models"
	"alumni-portal/services/render/docx"
	"alumni-portal/services/render/pdf"
)

// Format identifies a supported output document format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// Options carries the branding strings stamped into every document.
type Options struct {
	InstitutionName string
	PortalName      string
}

// Renderer turns one report payload into a downloadable binary.
type Renderer interface {
	// Render produces the document bytes. After form validation has passed
	// there is no fatal path in here: missing data renders as placeholders.
	Render(payload *models.ReportPayload) ([]byte, error)

	// ContentType returns the MIME type for delivery.
	ContentType() string

	// Ext returns the filename extension without the dot.
	Ext() string
}

// ParseFormat validates a client-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPDF, FormatDOCX:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported report format: %q", s)
}

// ForFormat creates the engine for the requested format.
func ForFormat(f Format, opts Options) (Renderer, error) {
	switch f {
	case FormatPDF:
		return pdf.New(pdf.Config{
			InstitutionName: opts.InstitutionName,
			PortalName:      opts.PortalName,
		}), nil
	case FormatDOCX:
		return docx.New(docx.Config{
			InstitutionName: opts.InstitutionName,
			PortalName:      opts.PortalName,
		}), nil
	}
	return nil, fmt.Errorf("unsupported report format: %q", f)
}

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatPDF, FormatDOCX}
}
