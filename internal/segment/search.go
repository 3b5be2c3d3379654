// Package segment implements the segmentation search: candidate discovery
// over the lexicon, per-span culling, and the dynamic-programming path
// search that picks the highest scoring tilings of the input.
package segment

import (
	"context"
	"fmt"
	"sort"

	"github.com/kotoba/wakachi/internal/chars"
	"github.com/kotoba/wakachi/internal/counters"
	"github.com/kotoba/wakachi/internal/lexicon"
	"github.com/kotoba/wakachi/internal/models"
	"github.com/kotoba/wakachi/internal/scoring"
	"github.com/kotoba/wakachi/internal/suffix"
)

// Segment is one scored candidate word over a span of the input. Offsets
// are in runes.
type Segment struct {
	Start int
	End   int
	Word  models.Word
	Score int
	Info  *scoring.Info
}

// SegmentList groups every surviving candidate for one span, best first.
type SegmentList struct {
	Segments []*Segment
	Start    int
	End      int
	// Matches counts candidates before the cull.
	Matches int

	top *TopArray
}

// TopArray keeps the best paths seen so far, ordered by score. Ties prefer
// paths with fewer segments, then earlier registration.
type TopArray struct {
	limit int
	items []TopItem
}

// TopItem is one registered path with its accumulated score. The path is
// stored in reverse order (rightmost segment first).
type TopItem struct {
	Score int
	Path  []*Segment
}

// NewTopArray creates a TopArray bounded to limit items.
func NewTopArray(limit int) *TopArray {
	return &TopArray{limit: limit}
}

// Register inserts a path, keeping the array sorted and bounded.
func (t *TopArray) Register(score int, path []*Segment) {
	pos := len(t.items)
	for i, it := range t.items {
		if it.Score < score || (it.Score == score && len(it.Path) > len(path)) {
			pos = i
			break
		}
	}
	if pos >= t.limit {
		return
	}
	t.items = append(t.items, TopItem{})
	copy(t.items[pos+1:], t.items[pos:])
	t.items[pos] = TopItem{Score: score, Path: path}
	if len(t.items) > t.limit {
		t.items = t.items[:t.limit]
	}
}

// Items returns the registered paths, best first.
func (t *TopArray) Items() []TopItem { return t.items }

// search holds per-call state for one segmentation.
type search struct {
	store     *lexicon.Store
	scorer    *scoring.Scorer
	table     *suffix.Table
	runes     []rune
	stickySet map[int]bool
}

// maxCounterSpan bounds the number prefix length considered for counters.
const maxCounterSpan = 20

// joinSubstrings discovers and scores every candidate span of the input.
func (s *search) joinSubstrings(ctx context.Context) ([]*SegmentList, error) {
	cfg := s.scorer.Config()
	n := len(s.runes)

	sticky := chars.StickyPositions(s.runes)
	s.stickySet = make(map[int]bool, len(sticky))
	for _, p := range sticky {
		s.stickySet[p] = true
	}

	hash, err := s.substringCandidates(ctx, cfg.MaxWordLength)
	if err != nil {
		return nil, err
	}

	katakanaGroups := chars.ConsecutiveGroups(s.runes, chars.ClassKatakana)
	numberGroups := chars.ConsecutiveGroups(s.runes, chars.ClassNumber)
	suffixMap, err := s.table.Map(ctx, s.runes)
	if err != nil {
		return nil, err
	}

	var lists []*SegmentList
	for start := 0; start < n; start++ {
		if s.stickySet[start] {
			continue
		}

		katakanaEnd := groupEnd(katakanaGroups, start)
		numberEnd := groupEnd(numberGroups, start)

		for end := start + 1; end <= n && end <= start+cfg.MaxWordLength; end++ {
			if s.stickySet[end] {
				continue
			}
			part := string(s.runes[start:end])

			words := append([]models.Word(nil), hash[part]...)

			found, err := s.table.Find(ctx, part, suffixMap[end], words)
			if err != nil {
				return nil, err
			}
			words = append(words, found...)

			if katakanaEnd == end {
				proxies, err := s.hiraganaProxies(ctx, part, words)
				if err != nil {
					return nil, err
				}
				words = append(words, proxies...)
			}

			if numberEnd > start && end > numberEnd && numberEnd-start <= maxCounterSpan {
				cw, err := s.counterWord(ctx, part)
				if err != nil {
					return nil, err
				}
				if cw != nil {
					words = append(words, cw)
				}
			}

			if len(words) == 0 {
				continue
			}

			final := end == n || (end == n-1 && s.runes[n-1] == 'ー')
			list, err := s.scoreSpan(ctx, cfg, words, start, end, final)
			if err != nil {
				return nil, err
			}
			if list != nil {
				lists = append(lists, list)
			}
		}
	}
	return lists, nil
}

// substringCandidates batch-resolves every non-sticky substring against the
// dictionary and the pre-expanded conjugation table.
func (s *search) substringCandidates(ctx context.Context, maxLen int) (map[string][]models.Word, error) {
	n := len(s.runes)
	seen := make(map[string]bool)
	var kanaKeys, kanjiKeys []string

	for start := 0; start < n; start++ {
		if s.stickySet[start] {
			continue
		}
		for end := start + 1; end <= n && end <= start+maxLen; end++ {
			if s.stickySet[end] {
				continue
			}
			part := string(s.runes[start:end])
			if seen[part] {
				continue
			}
			seen[part] = true
			if chars.AllKana(s.runes[start:end]) {
				kanaKeys = append(kanaKeys, part)
			} else {
				kanjiKeys = append(kanjiKeys, part)
			}
		}
	}

	readings, err := s.store.SubstringReadings(ctx, kanaKeys, kanjiKeys)
	if err != nil {
		return nil, fmt.Errorf("substring candidates: %w", err)
	}

	hash := make(map[string][]models.Word, len(readings))
	for text, rs := range readings {
		for i := range rs {
			if scoring.IsSkipWord(rs[i].Seq) {
				continue
			}
			hash[text] = append(hash[text], &models.DictWord{Reading: rs[i]})
		}
	}

	forms, err := s.store.ConjugatedForms(ctx, append(kanaKeys, kanjiKeys...))
	if err != nil {
		return nil, fmt.Errorf("substring candidates: %w", err)
	}
	for text, fs := range forms {
		// A strong dictionary match makes the expanded form redundant.
		if hasCommonDictEntry(hash[text]) {
			continue
		}
		hasKanji := chars.CountKanji([]rune(text)) > 0
		for i := range fs {
			hash[text] = append(hash[text], &models.ConjWord{Form: fs[i], HasKanji: hasKanji})
		}
	}
	return hash, nil
}

func hasCommonDictEntry(words []models.Word) bool {
	for _, w := range words {
		if _, ok := w.(*models.DictWord); !ok {
			continue
		}
		if rank, has := w.CommonRank(); has && rank <= 10 {
			return true
		}
	}
	return false
}

// hiraganaProxies resolves a katakana span through its hiragana reading.
func (s *search) hiraganaProxies(ctx context.Context, part string, existing []models.Word) ([]models.Word, error) {
	hira := chars.AsHiragana(part)
	if hira == part {
		return nil, nil
	}
	readings, err := s.store.FindWord(ctx, hira, true)
	if err != nil {
		return nil, err
	}
	exclude := make(map[int64]bool, len(existing))
	for _, w := range existing {
		exclude[w.Seq()] = true
	}
	var out []models.Word
	for i := range readings {
		if exclude[readings[i].Seq] {
			continue
		}
		out = append(out, &models.ProxyWord{
			Source:  &models.DictWord{Reading: readings[i]},
			Surface: part,
		})
	}
	return out, nil
}

func (s *search) counterWord(ctx context.Context, part string) (models.Word, error) {
	m, ok := counters.Detect(part)
	if !ok {
		return nil, nil
	}
	var counterSeq int64
	readings, err := s.store.FindWord(ctx, m.CounterText, false)
	if err != nil {
		return nil, err
	}
	if len(readings) > 0 {
		counterSeq = readings[0].Seq
	}
	return &models.CounterWord{
		Surface:     part,
		Reading:     m.Reading,
		Value:       m.Value,
		CounterText: m.CounterText,
		CounterSeq:  counterSeq,
	}, nil
}

// scoreSpan scores candidates for one span and culls the weak ones.
// Compounds survive the cull so suffix attachments stay available to the
// path search.
func (s *search) scoreSpan(ctx context.Context, cfg *scoring.Config, words []models.Word, start, end int, final bool) (*SegmentList, error) {
	var segs []*Segment
	for _, w := range words {
		score, info, err := s.scorer.WordScore(ctx, w, scoring.Options{Final: final})
		if err != nil {
			return nil, err
		}
		if score < cfg.ScoreCutoff {
			continue
		}
		segs = append(segs, &Segment{Start: start, End: end, Word: w, Score: score, Info: info})
	}
	if len(segs) == 0 {
		return nil, nil
	}

	sort.SliceStable(segs, func(i, j int) bool {
		if segs[i].Score != segs[j].Score {
			return segs[i].Score > segs[j].Score
		}
		ci, hi := segs[i].Word.CommonRank()
		cj, hj := segs[j].Word.CommonRank()
		if !hi {
			ci = 999
		}
		if !hj {
			cj = 999
		}
		if ci != cj {
			return ci < cj
		}
		return segs[i].Word.Seq() < segs[j].Word.Seq()
	})

	matches := len(words)
	if len(segs) > 1 {
		segs = cull(segs, cfg.CullRatio)
	}

	return &SegmentList{Segments: segs, Start: start, End: end, Matches: matches}, nil
}

// cull drops candidates scoring below ratio of the span's best. Compounds
// are kept regardless of score.
func cull(segs []*Segment, ratio float64) []*Segment {
	cutoff := float64(segs[0].Score) * ratio
	kept := segs[:0]
	for _, seg := range segs {
		if float64(seg.Score) >= cutoff || isCompound(seg.Word) {
			kept = append(kept, seg)
		}
	}
	return kept
}

func isCompound(w models.Word) bool {
	_, ok := w.(*models.Compound)
	return ok
}

func groupEnd(groups []chars.Span, start int) int {
	for _, g := range groups {
		if g.Start == start {
			return g.End
		}
	}
	return -1
}

// gapPenalty is the cost of leaving [start, end) uncovered.
func gapPenalty(cfg *scoring.Config, start, end int) int {
	return (end - start) * cfg.GapPenalty
}

// findBestPaths runs the path search over the scored spans. Paths are
// returned best first, each in left-to-right order.
func (s *search) findBestPaths(ctx context.Context, lists []*SegmentList, limit int) ([]TopItem, error) {
	cfg := s.scorer.Config()
	n := len(s.runes)

	top := NewTopArray(limit)
	top.Register(gapPenalty(cfg, 0, n), nil)

	for _, sl := range lists {
		sl.top = NewTopArray(limit)
	}
	defer func() {
		for _, sl := range lists {
			sl.top = nil
		}
	}()

	for i, left := range lists {
		gapLeft := gapPenalty(cfg, 0, left.Start)
		gapRight := gapPenalty(cfg, left.End, n)

		for _, seg := range left.Segments {
			left.top.Register(gapLeft+seg.Score, []*Segment{seg})
			top.Register(gapLeft+seg.Score+gapRight, []*Segment{seg})
		}

		for _, right := range lists[i+1:] {
			if right.Start < left.End {
				continue
			}
			gapMid := gapPenalty(cfg, left.End, right.Start)
			gapEnd := gapPenalty(cfg, right.End, n)
			adjacent := left.End == right.Start

			for _, item := range left.top.Items() {
				if len(item.Path) == 0 {
					continue
				}
				segLeft := item.Path[0]
				scoreTail := item.Score - segLeft.Score

				for _, segRight := range right.Segments {
					synergy := 0
					if adjacent {
						pair, err := s.scorer.PairScore(ctx, segLeft.Word, segRight.Word, right.End == n)
						if err != nil {
							return nil, err
						}
						synergy = pair.Score
					}

					joint := maxInt3(
						segLeft.Score+segRight.Score,
						segLeft.Score+1,
						segRight.Score+1,
					)
					accum := gapMid + joint + scoreTail + synergy

					path := make([]*Segment, 0, len(item.Path)+1)
					path = append(path, segRight)
					path = append(path, item.Path...)

					right.top.Register(accum, path)
					top.Register(accum+gapEnd, path)
				}
			}
		}
	}

	items := top.Items()
	out := make([]TopItem, len(items))
	for i, it := range items {
		path := make([]*Segment, len(it.Path))
		for j := range it.Path {
			path[j] = it.Path[len(it.Path)-1-j]
		}
		out[i] = TopItem{Score: it.Score, Path: path}
	}
	return out, nil
}

func maxInt3(a, b, c int) int {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
