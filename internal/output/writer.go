package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/adventureatlas/guide-extractor/internal/chapters"
	"github.com/adventureatlas/guide-extractor/internal/domain"
)

// Writer emits the run's JSON artifacts into one output directory.
type Writer struct {
	dir    string
	pretty bool
	logger zerolog.Logger
}

// NewWriter creates a writer rooted at dir.
func NewWriter(dir string, pretty bool, logger zerolog.Logger) *Writer {
	return &Writer{
		dir:    dir,
		pretty: pretty,
		logger: logger.With().Str("component", "output").Logger(),
	}
}

// WriteChapters writes one chapter_<n>_destinations.json per non-empty
// chapter and returns the paths written.
func (w *Writer) WriteChapters(chs []*domain.Chapter) ([]string, error) {
	var written []string
	for _, ch := range chs {
		if ch.TotalDestinations == 0 {
			continue
		}
		name := fmt.Sprintf("chapter_%d_destinations.json", ch.Number)
		path := filepath.Join(w.dir, name)
		if err := w.saveJSON(path, ch); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// WriteCombined writes complete_adventure_guide.json.
func (w *Writer) WriteCombined(chs []*domain.Chapter, meta chapters.Metadata) (string, error) {
	path := filepath.Join(w.dir, "complete_adventure_guide.json")
	doc := BuildCombined(chs, meta)
	if err := w.saveJSON(path, doc); err != nil {
		return "", err
	}
	return path, nil
}

// WriteDebugReport writes debug_report.json when there is anything to
// report; a clean run produces no report file.
func (w *Writer) WriteDebugReport(stats domain.RunStats, failures []*domain.ParseFailure) (string, error) {
	if len(failures) == 0 {
		return "", nil
	}
	path := filepath.Join(w.dir, "debug_report.json")
	if err := w.saveJSON(path, BuildDebugReport(stats, failures)); err != nil {
		return "", err
	}
	return path, nil
}

func (w *Writer) saveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return domain.IOError("create output directory", err)
	}

	var (
		data []byte
		err  error
	)
	if w.pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return domain.IOError(fmt.Sprintf("marshal %s", filepath.Base(path)), err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return domain.IOError(fmt.Sprintf("write %s", filepath.Base(path)), err)
	}

	w.logger.Info().Str("path", path).Int("bytes", len(data)).Msg("wrote document")
	return nil
}
