package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("pdf")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	f, err = ParseFormat("docx")
	require.NoError(t, err)
	assert.Equal(t, FormatDOCX, f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
	_, err = ParseFormat("")
	assert.Error(t, err)
}

func TestForFormat(t *testing.T) {
	opts := Options{InstitutionName: "X", PortalName: "Y"}

	for _, f := range Formats() {
		engine, err := ForFormat(f, opts)
		require.NoError(t, err)
		assert.Equal(t, string(f), engine.Ext())
		assert.NotEmpty(t, engine.ContentType())
	}

	_, err := ForFormat(Format("xlsx"), opts)
	assert.Error(t, err)
}
