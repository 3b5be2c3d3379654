package scoring

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kotoba/wakachi/internal/lexicon"
	"github.com/kotoba/wakachi/internal/models"
)

func testStore(t *testing.T) *lexicon.Store {
	t.Helper()
	store, err := lexicon.Open(filepath.Join(t.TempDir(), "lexicon.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	seed := []struct {
		seq  int64
		pos  []string
		kana string
	}{
		{1467640, []string{"n"}, "ねこ"},     // 猫
		{2028930, []string{"prt"}, "が"},   // が
		{1583070, []string{"adj-i"}, "おいしい"},
	}
	for _, s := range seed {
		if err := store.InsertEntry(ctx, models.Entry{Seq: s.seq, Root: true}); err != nil {
			t.Fatal(err)
		}
		if err := store.InsertSense(ctx, s.seq, 0, s.pos, "test"); err != nil {
			t.Fatal(err)
		}
	}
	return store
}

func TestCoeff(t *testing.T) {
	weak := []int{1, 4, 9, 16, 25, 36}
	tests := []struct {
		length int
		want   int
	}{
		{1, 4},
		{2, 9},
		{5, 36},
		{7, 49}, // extrapolated: 7 * (36/5)
		{0, 0},
	}
	for _, tt := range tests {
		if got := coeff(weak, tt.length); got != tt.want {
			t.Errorf("coeff(weak, %d) = %d, want %d", tt.length, got, tt.want)
		}
	}
}

func TestWordScorePlain(t *testing.T) {
	store := testStore(t)
	s := NewScorer(store, nil)
	ctx := context.Background()

	// Common primary kanji reading: prop = 10 + 5 + 3 = 18, mora 1.
	cat := &models.DictWord{Reading: models.Reading{
		Seq: 1467640, Kind: models.KanjiReading, Text: "猫", Ord: 0, Common: 0, BestPair: "ねこ",
	}}
	score, info, err := s.WordScore(ctx, cat, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if want := 18 * 8; score != want {
		t.Errorf("score(猫) = %d, want %d", score, want)
	}
	if !info.KanjiP || !info.PrimaryP {
		t.Errorf("info flags = %+v", info)
	}

	// Particle boost: prop 15, base 15*weak[1], +2*prop, +(2+len)*prop.
	ga := &models.DictWord{Reading: models.Reading{
		Seq: 2028930, Kind: models.KanaReading, Text: "が", Ord: 0, Common: 0,
	}}
	score, _, err = s.WordScore(ctx, ga, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if want := 15*4 + 30 + 45; score != want {
		t.Errorf("score(が) = %d, want %d", score, want)
	}
}

func TestWordScoreCounter(t *testing.T) {
	store := testStore(t)
	s := NewScorer(store, nil)

	w := &models.CounterWord{Surface: "三匹", Reading: "さんびき", Value: 3, CounterText: "匹"}
	score, info, err := s.WordScore(context.Background(), w, Options{})
	if err != nil {
		t.Fatal(err)
	}
	// 25 * strong[2] + 20*2 kanji + 50 unit.
	if want := 25*24 + 40 + 50; score != want {
		t.Errorf("score(三匹) = %d, want %d", score, want)
	}
	if info.Counter == nil || info.Counter.Value != 3 {
		t.Errorf("counter info = %+v", info.Counter)
	}
}

func TestWordScoreCompoundTail(t *testing.T) {
	store := testStore(t)
	s := NewScorer(store, nil)
	ctx := context.Background()

	head := &models.ConjWord{Form: models.ConjugatedForm{
		Seq: 1358280, Text: "食べて", Reading: "たべて",
		ConjType: models.ConjTe, SourceText: "食べる", Common: 0,
	}, HasKanji: true}
	aux := &models.DictWord{Reading: models.Reading{
		Seq: 1577980, Kind: models.KanaReading, Text: "いる", Common: 0,
	}}
	compound := &models.Compound{
		Surface:    "食べている",
		Reading:    "たべている",
		Components: []models.Word{head, aux},
		ScoreMod:   3,
	}

	headScore, _, err := s.WordScore(ctx, head, Options{})
	if err != nil {
		t.Fatal(err)
	}
	compScore, info, err := s.WordScore(ctx, compound, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if compScore <= headScore {
		t.Errorf("compound score %d should exceed head score %d", compScore, headScore)
	}
	if info.Conj == nil || info.Conj.ConjType != models.ConjTe {
		t.Errorf("compound should surface the head conjugation, got %+v", info.Conj)
	}
}

func TestPairScore(t *testing.T) {
	store := testStore(t)
	s := NewScorer(store, nil)
	ctx := context.Background()

	cat := &models.DictWord{Reading: models.Reading{
		Seq: 1467640, Kind: models.KanjiReading, Text: "猫", Common: 0,
	}}
	ga := &models.DictWord{Reading: models.Reading{
		Seq: 2028930, Kind: models.KanaReading, Text: "が", Common: 0,
	}}

	pair, err := s.PairScore(ctx, cat, ga, false)
	if err != nil {
		t.Fatal(err)
	}
	if want := 10 + 4*1; pair.Score != want {
		t.Errorf("PairScore(猫, が) = %d, want %d", pair.Score, want)
	}

	// が + おいしい gets the subject-adjective bonus.
	oishii := &models.DictWord{Reading: models.Reading{
		Seq: 1583070, Kind: models.KanaReading, Text: "おいしい", Common: 0,
	}}
	pair, err = s.PairScore(ctx, ga, oishii, false)
	if err != nil {
		t.Fatal(err)
	}
	if pair.Score != DefaultConfig().GaAdjective {
		t.Errorf("PairScore(が, おいしい) = %d, want %d", pair.Score, DefaultConfig().GaAdjective)
	}
}

func TestPairScoreShortKanaPenalty(t *testing.T) {
	store := testStore(t)
	s := NewScorer(store, nil)
	ctx := context.Background()

	ha := &models.DictWord{Reading: models.Reading{Seq: 1, Kind: models.KanaReading, Text: "は"}}
	ni := &models.DictWord{Reading: models.Reading{Seq: 2, Kind: models.KanaReading, Text: "に"}}
	to := &models.DictWord{Reading: models.Reading{Seq: 3, Kind: models.KanaReading, Text: "と"}}

	pair, err := s.PairScore(ctx, ha, ni, false)
	if err != nil {
		t.Fatal(err)
	}
	if pair.Score != -9 {
		t.Errorf("short kana pair = %d, want -9", pair.Score)
	}

	// と on the right is exempt.
	pair, err = s.PairScore(ctx, ha, to, false)
	if err != nil {
		t.Fatal(err)
	}
	if pair.Score != 0 {
		t.Errorf("pair ending in と = %d, want 0", pair.Score)
	}
}

func TestSetConfig(t *testing.T) {
	store := testStore(t)
	s := NewScorer(store, nil)

	cfg := DefaultConfig()
	cfg.GapPenalty = -100
	s.SetConfig(cfg)
	if got := s.Config().GapPenalty; got != -100 {
		t.Errorf("GapPenalty after swap = %d, want -100", got)
	}
	s.SetConfig(nil)
	if got := s.Config().GapPenalty; got != -100 {
		t.Errorf("nil swap should keep config, got %d", got)
	}
}
