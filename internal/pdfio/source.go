// Package pdfio extracts raw text lines from the source guide. The rest of
// the pipeline only sees ordered lines and does not care where they came
// from.
package pdfio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog"

	"github.com/adventureatlas/guide-extractor/internal/domain"
)

// NewSource picks a line source for the path: PDF files go through pdfcpu,
// anything else is read as plain text, one entry per line.
func NewSource(path string, logger zerolog.Logger) domain.LineSource {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return &PDFSource{path: path, logger: logger}
	}
	return &TextSource{path: path}
}

// PDFSource extracts text lines from a PDF, page by page in page order.
type PDFSource struct {
	path   string
	logger zerolog.Logger
}

// Lines implements domain.LineSource. An unreadable file or a PDF with no
// extractable text is a fatal source error: there is nothing to process.
func (s *PDFSource) Lines(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, domain.SourceError("open pdf", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, domain.SourceError("read pdf", err)
	}

	var lines []string
	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		pageText := extractPageText(pdfCtx, pageNr)
		for _, line := range splitLines(pageText) {
			lines = append(lines, line)
		}
	}

	if len(lines) == 0 {
		return nil, domain.SourceError(fmt.Sprintf("no text content found in %s", s.path), nil)
	}

	s.logger.Info().
		Int("pages", pdfCtx.PageCount).
		Int("lines", len(lines)).
		Msg("extracted guide text")
	return lines, nil
}

// extractPageText pulls text from one page's content stream.
func extractPageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return decodeContentStream(data)
}

// TextSource reads a pre-extracted plain text file, one guide entry per
// line. Useful when the PDF was converted elsewhere.
type TextSource struct {
	path string
}

// Lines implements domain.LineSource.
func (s *TextSource) Lines(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, domain.SourceError("open text file", err)
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, domain.SourceError("read text file", err)
	}
	if len(lines) == 0 {
		return nil, domain.SourceError(fmt.Sprintf("no text content found in %s", s.path), nil)
	}
	return lines, nil
}

// ReadLines reads non-empty trimmed lines from r, preserving order.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		for _, line := range splitLines(scanner.Text()) {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
