// Package cli provides CLI output helpers for wakachi.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kotoba/wakachi/internal/models"
)

// OutputFormat is the format for segmentation output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
	// OutputCompact prints one space-separated segmentation per line.
	OutputCompact OutputFormat = "compact"
)

// WriteSegmentations writes ranked segmentations to w in the given format.
func WriteSegmentations(w io.Writer, segs []models.Segmentation, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(segs)
	case OutputCompact:
		for _, seg := range segs {
			fmt.Fprintln(w, JoinWords(seg, " "))
		}
		return nil
	default:
		writeSegmentationsText(w, segs)
		return nil
	}
}

func writeSegmentationsText(w io.Writer, segs []models.Segmentation) {
	for i, seg := range segs {
		fmt.Fprintf(w, "#%d (score %d)\n", i+1, seg.Score)
		for _, word := range seg.Words {
			if word.Alternative {
				continue
			}
			writeOneWord(w, word)
		}
		fmt.Fprintln(w)
	}
}

func writeOneWord(w io.Writer, word models.WordRecord) {
	label := word.Text
	if word.Kana != "" && word.Kana != word.Text {
		label = fmt.Sprintf("%s 【%s】", word.Text, word.Kana)
	}
	switch {
	case word.Kind == models.KindGap:
		fmt.Fprintf(w, "  %s  (no match)\n", word.Text)
	case word.Counter != nil:
		fmt.Fprintf(w, "  %s  counter: %d × %s\n", label, word.Counter.Value, word.Counter.CounterText)
	default:
		fmt.Fprintf(w, "  %s\n", label)
	}
	for _, c := range word.Conj {
		fmt.Fprintf(w, "    %s", c.Description)
		if c.SourceText != "" {
			fmt.Fprintf(w, " of %s", c.SourceText)
		}
		fmt.Fprintln(w)
	}
	for _, comp := range word.Components {
		if comp.SuffixDescription != "" {
			fmt.Fprintf(w, "    + %s: %s\n", comp.Text, comp.SuffixDescription)
		}
	}
}

// JoinWords renders the main path of a segmentation as surface words joined
// by sep.
func JoinWords(seg models.Segmentation, sep string) string {
	var parts []string
	for _, word := range seg.Words {
		if word.Alternative {
			continue
		}
		parts = append(parts, word.Text)
	}
	return strings.Join(parts, sep)
}

// Truncate truncates s to maxLen runes and appends "..." if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
