package pdfio

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSource(t *testing.T) {
	_, isPDF := NewSource("guide.pdf", zerolog.Nop()).(*PDFSource)
	assert.True(t, isPDF)

	_, isPDF = NewSource("Guide.PDF", zerolog.Nop()).(*PDFSource)
	assert.True(t, isPDF, "extension check is case-insensitive")

	_, isText := NewSource("guide.txt", zerolog.Nop()).(*TextSource)
	assert.True(t, isText)
}

func TestReadLines(t *testing.T) {
	input := "1. Svalbard, Norway - Latitude: 78.0 N\n\n   \n2. Reykjavik, Iceland - Latitude: 64.1 N\n  leading space trimmed  \n"

	lines, err := ReadLines(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"1. Svalbard, Norway - Latitude: 78.0 N",
		"2. Reykjavik, Iceland - Latitude: 64.1 N",
		"leading space trimmed",
	}, lines)
}

func TestTextSource_Lines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guide.txt")
	require.NoError(t, os.WriteFile(path, []byte("first line\nsecond line\n"), 0o644))

	lines, err := (&TextSource{path: path}).Lines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"first line", "second line"}, lines)
}

func TestTextSource_Lines_Missing(t *testing.T) {
	_, err := (&TextSource{path: filepath.Join(t.TempDir(), "absent.txt")}).Lines(context.Background())
	assert.Error(t, err)
}

func TestTextSource_Lines_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n  \n"), 0o644))

	_, err := (&TextSource{path: path}).Lines(context.Background())
	assert.Error(t, err)
}
