package handlers

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alumni-portal/services"
	"alumni-portal/services/render"
)

func TestParseFormats(t *testing.T) {
	formats, err := parseFormats([]string{"pdf"})
	require.NoError(t, err)
	assert.Equal(t, []render.Format{render.FormatPDF}, formats)

	formats, err = parseFormats([]string{"pdf", "docx"})
	require.NoError(t, err)
	assert.Equal(t, []render.Format{render.FormatPDF, render.FormatDOCX}, formats)
}

func TestParseFormatsDeduplicates(t *testing.T) {
	formats, err := parseFormats([]string{"docx", "pdf", "docx", "pdf"})
	require.NoError(t, err)
	assert.Equal(t, []render.Format{render.FormatDOCX, render.FormatPDF}, formats)
}

func TestParseFormatsRejectsUnknownAndEmpty(t *testing.T) {
	_, err := parseFormats(nil)
	assert.Error(t, err)

	_, err = parseFormats([]string{})
	assert.Error(t, err)

	_, err = parseFormats([]string{"pdf", "xlsx"})
	assert.Error(t, err)
}

func TestZipFiles(t *testing.T) {
	files := []services.GeneratedFile{
		{Name: "Meet_report.pdf", ContentType: "application/pdf", Data: []byte("%PDF-fake")},
		{Name: "Meet_report.docx", Data: []byte("PK-fake")},
	}

	data, err := zipFiles(files)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	assert.Equal(t, "Meet_report.pdf", zr.File[0].Name)
	assert.Equal(t, "Meet_report.docx", zr.File[1].Name)
}
