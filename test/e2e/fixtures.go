// Package e2e exercises the whole analysis pipeline against a seeded
// lexicon: store, suffix cache, scorer and path search together.
package e2e

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kotoba/wakachi/internal/lexicon"
	"github.com/kotoba/wakachi/internal/models"
	"github.com/kotoba/wakachi/internal/scoring"
	"github.com/kotoba/wakachi/internal/segment"
	"github.com/kotoba/wakachi/internal/suffix"
)

type fixtureWord struct {
	seq    int64
	kind   models.ReadingKind
	text   string
	best   string
	common int
	pos    []string
}

var fixtureWords = []fixtureWord{
	{1467640, models.KanjiReading, "猫", "ねこ", 5, []string{"n"}},
	{1467640, models.KanaReading, "ねこ", "猫", 5, nil},
	{2028930, models.KanaReading, "が", "", 2, []string{"prt"}},
	{2028920, models.KanaReading, "は", "", 1, []string{"prt"}},
	{1469800, models.KanaReading, "の", "", 1, []string{"prt"}},
	{1577980, models.KanaReading, "いる", "", 2, []string{"v1", "aux-v"}},
	{1358280, models.KanjiReading, "食べる", "たべる", 3, []string{"v1", "vt"}},
	{1358280, models.KanaReading, "たべる", "食べる", 3, nil},
	{1575510, models.KanjiReading, "匹", "ひき", -1, []string{"ctr"}},
}

var fixtureConjForms = []models.ConjugatedForm{
	{Seq: 1358280, Text: "食べて", Reading: "たべて", ConjType: models.ConjTe,
		POS: "v1", SourceText: "食べる", SourceReading: "たべる"},
	{Seq: 1358280, Text: "食べた", Reading: "たべた", ConjType: models.ConjPast,
		POS: "v1", SourceText: "食べる", SourceReading: "たべる"},
}

func seedLexicon(t *testing.T, store *lexicon.Store) {
	t.Helper()
	ctx := context.Background()

	seeded := make(map[int64]bool)
	for _, w := range fixtureWords {
		if !seeded[w.seq] {
			if err := store.InsertEntry(ctx, models.Entry{Seq: w.seq, Root: true}); err != nil {
				t.Fatalf("insert entry %d: %v", w.seq, err)
			}
			seeded[w.seq] = true
		}
		if err := store.InsertReading(ctx, models.Reading{
			Seq: w.seq, Kind: w.kind, Text: w.text, BestPair: w.best, Common: w.common,
		}); err != nil {
			t.Fatalf("insert reading %q: %v", w.text, err)
		}
		if w.pos != nil {
			if err := store.InsertSense(ctx, w.seq, 0, w.pos, "gloss"); err != nil {
				t.Fatalf("insert sense %d: %v", w.seq, err)
			}
		}
	}
	for _, f := range fixtureConjForms {
		if err := store.InsertConjugatedForm(ctx, f); err != nil {
			t.Fatalf("insert conjugated form %q: %v", f.Text, err)
		}
	}
}

func newPipeline(t *testing.T) *segment.Segmenter {
	t.Helper()
	store, err := lexicon.Open(filepath.Join(t.TempDir(), "lexicon.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	seedLexicon(t, store)

	scorer := scoring.NewScorer(store, nil)
	table := suffix.NewTable(store, nil)
	seg := segment.New(store, scorer, table, nil)
	if err := seg.Warm(context.Background()); err != nil {
		t.Fatalf("warm: %v", err)
	}
	return seg
}
