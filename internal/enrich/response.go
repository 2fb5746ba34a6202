package enrich

import "strings"

// Segment is one parsed response line: a label with its English and French
// descriptions.
type Segment struct {
	Label   string
	English string
	French  string
}

// parseBatchResponse splits the raw model output into segments. Expected line
// shape: "Label: English: <text> | French: <text>". Lines that do not match
// the shape are dropped; the caller treats a missing segment as a fallback
// for that one destination.
func parseBatchResponse(response string) []Segment {
	var segments []Segment

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		if line == "" {
			continue
		}

		enIdx := strings.Index(line, "English:")
		if enIdx < 0 {
			continue
		}
		rest := line[enIdx+len("English:"):]

		frIdx := strings.Index(rest, "| French:")
		if frIdx < 0 {
			continue
		}

		label := strings.TrimSuffix(strings.TrimSpace(line[:enIdx]), ":")
		en := strings.TrimSpace(rest[:frIdx])
		fr := strings.TrimSpace(rest[frIdx+len("| French:"):])
		if en == "" || fr == "" {
			continue
		}

		segments = append(segments, Segment{Label: label, English: en, French: fr})
	}

	return segments
}

// matchSegment associates a destination with its response segment. Label
// matching is primary since the prompt asks the model to echo each label;
// positional association is the safety net when the model mangles a label
// but returned the right number of lines. A destination that matches neither
// way gets nothing, isolating the miss to that one entry.
func matchSegment(segments []Segment, label string, pos, batchSize int) (Segment, bool) {
	for _, seg := range segments {
		if strings.EqualFold(seg.Label, label) {
			return seg, true
		}
	}

	if len(segments) == batchSize && pos < len(segments) {
		return segments[pos], true
	}

	return Segment{}, false
}
