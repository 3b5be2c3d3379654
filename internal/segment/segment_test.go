package segment

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/kotoba/wakachi/internal/lexicon"
	"github.com/kotoba/wakachi/internal/models"
	"github.com/kotoba/wakachi/internal/scoring"
	"github.com/kotoba/wakachi/internal/suffix"
)

func testSegmenter(t *testing.T) *Segmenter {
	t.Helper()
	ctx := context.Background()

	store, err := lexicon.Open(filepath.Join(t.TempDir(), "lexicon.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	type fixture struct {
		seq    int64
		kind   models.ReadingKind
		text   string
		common int
		pos    []string
	}
	words := []fixture{
		{1467640, models.KanjiReading, "猫", 5, []string{"n"}},
		{2028930, models.KanaReading, "が", 2, []string{"prt"}},
		{1577980, models.KanaReading, "いる", 2, []string{"v1", "aux-v"}},
		{1575510, models.KanjiReading, "匹", -1, []string{"ctr"}},
		{1358280, models.KanjiReading, "食べる", 3, []string{"v1", "vt"}},
	}
	for _, w := range words {
		if err := store.InsertEntry(ctx, models.Entry{Seq: w.seq, Root: true}); err != nil {
			t.Fatalf("insert entry %d: %v", w.seq, err)
		}
		if err := store.InsertReading(ctx, models.Reading{
			Seq: w.seq, Kind: w.kind, Text: w.text, Common: w.common,
		}); err != nil {
			t.Fatalf("insert reading %q: %v", w.text, err)
		}
		if err := store.InsertSense(ctx, w.seq, 0, w.pos, "gloss"); err != nil {
			t.Fatalf("insert sense %d: %v", w.seq, err)
		}
	}

	if err := store.InsertConjugatedForm(ctx, models.ConjugatedForm{
		Seq: 1358280, Text: "食べて", Reading: "たべて",
		ConjType: models.ConjTe, POS: "v1",
		SourceText: "食べる", SourceReading: "たべる",
	}); err != nil {
		t.Fatalf("insert conjugated form: %v", err)
	}

	scorer := scoring.NewScorer(store, nil)
	table := suffix.NewTable(store, nil)
	return New(store, scorer, table, nil)
}

func TestSegmentEmptyInput(t *testing.T) {
	s := testSegmenter(t)
	if _, err := s.Segment(context.Background(), "", 0); err != ErrEmptyInput {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestSegmentGapFallback(t *testing.T) {
	s := testSegmenter(t)
	cfg := s.Scorer().Config()

	segs, err := s.Segment(context.Background(), "ゆめ", 0)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("expected 1 segmentation, got %d", len(segs))
	}
	best := segs[0]
	if want := 2 * cfg.GapPenalty; best.Score != want {
		t.Errorf("score = %d, want %d", best.Score, want)
	}
	if len(best.Words) != 2 {
		t.Fatalf("expected one gap record per rune, got %d words", len(best.Words))
	}
	for i, want := range []string{"ゆ", "め"} {
		gap := best.Words[i]
		if gap.Kind != models.KindGap || gap.Text != want || gap.Start != i || gap.End != i+1 {
			t.Errorf("gap %d: %+v, want %q at [%d,%d)", i, gap, want, i, i+1)
		}
	}
}

func TestSegmentNounParticle(t *testing.T) {
	s := testSegmenter(t)

	segs, err := s.Segment(context.Background(), "猫が", 0)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	if len(segs) == 0 {
		t.Fatal("no segmentations")
	}

	var texts []string
	for _, w := range segs[0].Words {
		if w.Alternative {
			continue
		}
		texts = append(texts, w.Text)
		if w.Kind == models.KindGap {
			t.Errorf("unexpected gap record %+v", w)
		}
	}
	want := []string{"猫", "が"}
	if !reflect.DeepEqual(texts, want) {
		t.Fatalf("best path = %v, want %v", texts, want)
	}
	if segs[0].Score <= 0 {
		t.Errorf("expected positive score, got %d", segs[0].Score)
	}
}

func TestSegmentAuxiliaryCompound(t *testing.T) {
	s := testSegmenter(t)

	best, err := s.Best(context.Background(), "食べている")
	if err != nil {
		t.Fatalf("segment: %v", err)
	}

	var main []models.WordRecord
	for _, w := range best.Words {
		if !w.Alternative {
			main = append(main, w)
		}
	}
	if len(main) != 1 {
		t.Fatalf("expected single compound, got %d words: %+v", len(main), main)
	}
	w := main[0]
	if w.Text != "食べている" || w.Kana != "たべている" {
		t.Errorf("compound = %q / %q", w.Text, w.Kana)
	}
	if want := []int64{1358280, 1577980}; !reflect.DeepEqual(w.Seqs, want) {
		t.Errorf("seqs = %v, want %v", w.Seqs, want)
	}
	if len(w.Components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(w.Components))
	}
	if w.Components[0].Text != "食べて" || w.Components[1].Text != "いる" {
		t.Errorf("components = %q, %q", w.Components[0].Text, w.Components[1].Text)
	}
	if w.Components[1].SuffixDescription == "" {
		t.Error("attached auxiliary has no suffix description")
	}
	if len(w.Conj) == 0 || w.Conj[0].ConjType != models.ConjTe {
		t.Errorf("missing te-form conjugation info: %+v", w.Conj)
	}
}

func TestCullKeepsCompound(t *testing.T) {
	plain := func(score int) *Segment {
		return &Segment{
			Word:  &models.DictWord{Reading: models.Reading{Text: "猫", Kind: models.KanaReading}},
			Score: score,
		}
	}
	compound := &Segment{
		Word: &models.Compound{
			Surface:    "食べている",
			Reading:    "たべている",
			Components: []models.Word{plain(0).Word, plain(0).Word},
		},
		Score: 20,
	}
	weak := plain(10)

	kept := cull([]*Segment{plain(100), compound, weak}, 0.5)
	if len(kept) != 2 {
		t.Fatalf("kept %d segments, want 2", len(kept))
	}
	if kept[1] != compound {
		t.Error("compound below the cutoff was culled")
	}
	for _, seg := range kept {
		if seg == weak {
			t.Error("weak plain candidate survived the cull")
		}
	}
}

func TestSegmentCounter(t *testing.T) {
	s := testSegmenter(t)

	best, err := s.Best(context.Background(), "三匹")
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	if len(best.Words) == 0 {
		t.Fatal("empty path")
	}
	w := best.Words[0]
	if w.Text != "三匹" || w.Kana != "さんびき" {
		t.Fatalf("counter word = %q / %q", w.Text, w.Kana)
	}
	if w.Counter == nil {
		t.Fatal("no counter info")
	}
	if w.Counter.Value != 3 || w.Counter.CounterText != "匹" {
		t.Errorf("counter info = %+v", w.Counter)
	}
	if w.Seq != 1575510 {
		t.Errorf("counter seq = %d, want 1575510", w.Seq)
	}
}

func TestSegmentDeterministic(t *testing.T) {
	s := testSegmenter(t)
	ctx := context.Background()

	first, err := s.Segment(ctx, "猫が食べている", 0)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := s.Segment(ctx, "猫が食べている", 0)
		if err != nil {
			t.Fatalf("segment: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs from first run", i+1)
		}
	}
}

func TestSegmentTiling(t *testing.T) {
	s := testSegmenter(t)

	// Lexicon words at the edges, unknown text in the middle.
	segs, err := s.Segment(context.Background(), "猫ゆめ匹", 0)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	for _, seg := range segs {
		pos := 0
		for _, w := range seg.Words {
			if w.Alternative {
				continue
			}
			if w.Start != pos {
				t.Fatalf("hole before %+v (pos %d)", w, pos)
			}
			pos = w.End
		}
		if pos != 4 {
			t.Fatalf("path ends at %d, want 4", pos)
		}
	}
}

func TestTopArray(t *testing.T) {
	top := NewTopArray(3)
	a := &Segment{Start: 0, End: 1}
	b := &Segment{Start: 1, End: 2}

	top.Register(10, []*Segment{a})
	top.Register(30, []*Segment{b})
	top.Register(20, []*Segment{a, b})
	top.Register(5, nil) // pushed out by the limit
	top.Register(25, []*Segment{b, a})

	items := top.Items()
	scores := make([]int, len(items))
	for i, it := range items {
		scores[i] = it.Score
	}
	if want := []int{30, 25, 20}; !reflect.DeepEqual(scores, want) {
		t.Fatalf("scores = %v, want %v", scores, want)
	}
}

func TestTopArrayTiePrefersShorterPath(t *testing.T) {
	top := NewTopArray(2)
	a := &Segment{Start: 0, End: 2}
	b := &Segment{Start: 0, End: 1}
	c := &Segment{Start: 1, End: 2}

	top.Register(10, []*Segment{c, b})
	top.Register(10, []*Segment{a})

	items := top.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if len(items[0].Path) != 1 {
		t.Errorf("tie should prefer the shorter path, got %d segments first", len(items[0].Path))
	}
}
