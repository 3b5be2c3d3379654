package e2e

import (
	"context"
	"testing"

	"github.com/kotoba/wakachi/internal/models"
)

func primaries(seg models.Segmentation) []models.WordRecord {
	var out []models.WordRecord
	for _, w := range seg.Words {
		if w.Alternative {
			continue
		}
		out = append(out, w)
	}
	return out
}

func words(seg models.Segmentation) []string {
	var out []string
	for _, w := range primaries(seg) {
		out = append(out, w.Text)
	}
	return out
}

func assertWords(t *testing.T, seg models.Segmentation, want []string) {
	t.Helper()
	got := words(seg)
	if len(got) != len(want) {
		t.Fatalf("got words %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("word %d: got %q, want %q (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestSentenceNounParticleVerb(t *testing.T) {
	seg := newPipeline(t)

	results, err := seg.Segment(context.Background(), "猫がいる", 0)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("no segmentations")
	}
	best := results[0]
	assertWords(t, best, []string{"猫", "が", "いる"})
	if best.Score <= 0 {
		t.Errorf("best score = %d, want positive", best.Score)
	}
	for _, w := range best.Words {
		if w.Kind == models.KindGap {
			t.Errorf("unexpected gap in best path: %+v", w)
		}
	}
}

func TestSentenceCounterPhrase(t *testing.T) {
	seg := newPipeline(t)

	results, err := seg.Segment(context.Background(), "一匹の猫", 0)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	best := results[0]
	assertWords(t, best, []string{"一匹", "の", "猫"})

	counter := primaries(best)[0]
	if counter.Counter == nil {
		t.Fatal("first word has no counter info")
	}
	if counter.Counter.Value != 1 || counter.Counter.CounterText != "匹" {
		t.Errorf("counter = %+v, want value 1 unit 匹", counter.Counter)
	}
	if counter.Kana != "いっぴき" {
		t.Errorf("counter kana = %q, want いっぴき", counter.Kana)
	}
	if counter.Seq != 1575510 {
		t.Errorf("counter seq = %d, want 1575510", counter.Seq)
	}
}

func TestSentenceAuxiliaryCompound(t *testing.T) {
	seg := newPipeline(t)

	results, err := seg.Segment(context.Background(), "猫が食べている", 0)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	best := results[0]
	assertWords(t, best, []string{"猫", "が", "食べている"})

	compound := primaries(best)[2]
	if compound.Kana != "たべている" {
		t.Errorf("compound kana = %q, want たべている", compound.Kana)
	}
	if len(compound.Seqs) != 2 || compound.Seqs[0] != 1358280 || compound.Seqs[1] != 1577980 {
		t.Errorf("compound seqs = %v, want [1358280 1577980]", compound.Seqs)
	}
	if len(compound.Components) != 2 {
		t.Fatalf("compound has %d components, want 2", len(compound.Components))
	}
	if compound.Components[1].SuffixDescription == "" {
		t.Error("suffix component missing description")
	}
	if len(compound.Conj) == 0 || compound.Conj[0].ConjType != models.ConjTe {
		t.Errorf("compound conj = %+v, want te form", compound.Conj)
	}
}

func TestSentencePastForm(t *testing.T) {
	seg := newPipeline(t)

	results, err := seg.Segment(context.Background(), "猫は食べた", 0)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	best := results[0]
	assertWords(t, best, []string{"猫", "は", "食べた"})

	verb := primaries(best)[2]
	if len(verb.Conj) == 0 {
		t.Fatal("conjugated verb carries no conj info")
	}
	if verb.Conj[0].ConjType != models.ConjPast {
		t.Errorf("conj type = %d, want past", verb.Conj[0].ConjType)
	}
	if verb.Conj[0].SourceText != "食べる" {
		t.Errorf("conj source = %q, want 食べる", verb.Conj[0].SourceText)
	}
}

func TestSentenceWithUnknownRun(t *testing.T) {
	seg := newPipeline(t)

	results, err := seg.Segment(context.Background(), "ゆめ猫", 0)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	best := primaries(results[0])
	if len(best) != 3 {
		t.Fatalf("got %d words, want 2 gaps + 猫: %v", len(best), words(results[0]))
	}
	for i, want := range []string{"ゆ", "め"} {
		if best[i].Kind != models.KindGap || best[i].Text != want {
			t.Errorf("word %d = %+v, want gap %q", i, best[i], want)
		}
	}
	if best[2].Text != "猫" {
		t.Errorf("last word = %q, want 猫", best[2].Text)
	}
}

func TestRankedPathsOrderedAndTiled(t *testing.T) {
	seg := newPipeline(t)
	text := "猫が食べている"
	n := len([]rune(text))

	results, err := seg.Segment(context.Background(), text, 5)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	if len(results) < 2 {
		t.Fatalf("got %d paths, want at least 2", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("path %d score %d exceeds path %d score %d",
				i, results[i].Score, i-1, results[i-1].Score)
		}
	}
	for i, res := range results {
		pos := 0
		for _, w := range res.Words {
			if w.Alternative {
				continue
			}
			if w.Start != pos {
				t.Errorf("path %d: word %q starts at %d, want %d", i, w.Text, w.Start, pos)
			}
			pos = w.End
		}
		if pos != n {
			t.Errorf("path %d covers %d runes, want %d", i, pos, n)
		}
	}
}

func TestNormalizationFoldsWidth(t *testing.T) {
	seg := newPipeline(t)

	wide, err := seg.Segment(context.Background(), "１匹の猫", 0)
	if err != nil {
		t.Fatalf("segment wide: %v", err)
	}
	narrow, err := seg.Segment(context.Background(), "1匹の猫", 0)
	if err != nil {
		t.Fatalf("segment narrow: %v", err)
	}
	if wide[0].Score != narrow[0].Score {
		t.Errorf("scores differ after width folding: %d vs %d", wide[0].Score, narrow[0].Score)
	}
	assertWords(t, wide[0], words(narrow[0]))
}
