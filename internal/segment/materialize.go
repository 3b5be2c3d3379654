package segment

import (
	"github.com/kotoba/wakachi/internal/models"
	"github.com/kotoba/wakachi/internal/suffix"
)

// record converts one scored segment into its output form.
func (s *search) record(seg *Segment) models.WordRecord {
	w := seg.Word
	rec := models.WordRecord{
		Kind:  w.Kind(),
		Text:  w.Text(),
		Kana:  w.Kana(),
		Seq:   w.Seq(),
		Seqs:  w.Seqs(),
		Score: seg.Score,
		Start: seg.Start,
		End:   seg.End,
	}
	if seg.Info != nil {
		if seg.Info.Conj != nil {
			rec.Conj = []models.ConjInfo{*seg.Info.Conj}
		}
		rec.Counter = seg.Info.Counter
	}
	if c, ok := w.(*models.Compound); ok {
		rec.Components = s.compoundComponents(c, seg)
	}
	return rec
}

// compoundComponents lists the parts of a suffix compound, base first.
// Offsets are filled only when the part surfaces tile the span exactly;
// rules that attach through a re-spelled stem leave them zero.
func (s *search) compoundComponents(c *models.Compound, seg *Segment) []models.WordRecord {
	total := 0
	for _, part := range c.Components {
		total += len([]rune(part.Text()))
	}
	tiled := seg.Start+total == seg.End

	out := make([]models.WordRecord, 0, len(c.Components))
	pos := seg.Start
	for i, part := range c.Components {
		rec := models.WordRecord{
			Kind: part.Kind(),
			Text: part.Text(),
			Kana: part.Kana(),
			Seq:  part.Seq(),
			Seqs: part.Seqs(),
		}
		if tiled {
			rec.Start = pos
			rec.End = pos + len([]rune(part.Text()))
			pos = rec.End
		}
		if c.SuffixClass != "" && i > 0 {
			rec.SuffixDescription = suffix.ClassDescription(c.SuffixClass)
		}
		out = append(out, rec)
	}
	return out
}

// alternatives collects the close runners-up for a span. The winning
// candidate stays first and carries the rest as alternative records.
func (s *search) alternatives(seg *Segment, lists []*SegmentList) ([]models.WordRecord, int) {
	cfg := s.scorer.Config()
	var list *SegmentList
	for _, sl := range lists {
		if sl.Start == seg.Start && sl.End == seg.End {
			list = sl
			break
		}
	}
	if list == nil || len(list.Segments) < 2 {
		return nil, 0
	}

	cutoff := float64(seg.Score) * cfg.SegmentScoreCutoff
	var alts []models.WordRecord
	skipped := 0
	for _, other := range list.Segments {
		if other == seg || sameCandidate(other, seg) {
			continue
		}
		if float64(other.Score) < cutoff {
			skipped++
			continue
		}
		rec := s.record(other)
		rec.Alternative = true
		alts = append(alts, rec)
	}
	skipped += maxInt(0, list.Matches-len(list.Segments))
	return alts, skipped
}

func sameCandidate(a, b *Segment) bool {
	return a.Word.Seq() == b.Word.Seq() && a.Word.Text() == b.Word.Text() &&
		a.Word.Kana() == b.Word.Kana()
}

// fillPath turns a search path into a full tiling of the input, inserting
// one gap record per uncovered rune.
func (s *search) fillPath(path []*Segment, lists []*SegmentList) []models.WordRecord {
	n := len(s.runes)
	out := make([]models.WordRecord, 0, len(path)+2)
	pos := 0
	for _, seg := range path {
		out = append(out, s.gapRecords(pos, seg.Start)...)
		rec := s.record(seg)
		alts, skipped := s.alternatives(seg, lists)
		rec.Skipped = skipped
		out = append(out, rec)
		out = append(out, alts...)
		pos = seg.End
	}
	return append(out, s.gapRecords(pos, n)...)
}

func (s *search) gapRecords(start, end int) []models.WordRecord {
	var out []models.WordRecord
	for i := start; i < end; i++ {
		gap := &models.GapWord{Surface: string(s.runes[i])}
		out = append(out, models.WordRecord{
			Kind:  gap.Kind(),
			Text:  gap.Text(),
			Kana:  gap.Kana(),
			Start: i,
			End:   i + 1,
		})
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
