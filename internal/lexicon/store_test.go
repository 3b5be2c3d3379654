package lexicon

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kotoba/wakachi/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "lexicon.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenCreatesSchema(t *testing.T) {
	store := testStore(t)
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestFindWord(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.InsertEntry(ctx, models.Entry{Seq: 1467640, Root: true, NKanji: 1, NKana: 1}); err != nil {
		t.Fatalf("insert entry: %v", err)
	}
	if err := store.InsertReading(ctx, models.Reading{
		Seq: 1467640, Kind: models.KanjiReading, Text: "猫", Common: 5, BestPair: "ねこ",
	}); err != nil {
		t.Fatalf("insert kanji reading: %v", err)
	}
	if err := store.InsertReading(ctx, models.Reading{
		Seq: 1467640, Kind: models.KanaReading, Text: "ねこ", Common: 5, BestPair: "猫",
	}); err != nil {
		t.Fatalf("insert kana reading: %v", err)
	}
	// Derived entry, excluded by root-only lookups.
	if err := store.InsertEntry(ctx, models.Entry{Seq: 9000001, Root: false}); err != nil {
		t.Fatalf("insert derived entry: %v", err)
	}
	if err := store.InsertReading(ctx, models.Reading{
		Seq: 9000001, Kind: models.KanaReading, Text: "ねこ", Common: -1,
	}); err != nil {
		t.Fatalf("insert derived reading: %v", err)
	}

	kanji, err := store.FindWord(ctx, "猫", false)
	if err != nil {
		t.Fatalf("find 猫: %v", err)
	}
	if len(kanji) != 1 || kanji[0].Seq != 1467640 || kanji[0].Kind != models.KanjiReading {
		t.Fatalf("find 猫 = %+v", kanji)
	}
	if kanji[0].BestPair != "ねこ" {
		t.Errorf("best pair = %q, want ねこ", kanji[0].BestPair)
	}

	kana, err := store.FindWord(ctx, "ねこ", false)
	if err != nil {
		t.Fatalf("find ねこ: %v", err)
	}
	if len(kana) != 2 {
		t.Fatalf("expected both ねこ readings, got %d", len(kana))
	}

	rootOnly, err := store.FindWord(ctx, "ねこ", true)
	if err != nil {
		t.Fatalf("find ねこ root-only: %v", err)
	}
	if len(rootOnly) != 1 || rootOnly[0].Seq != 1467640 {
		t.Fatalf("root-only = %+v", rootOnly)
	}

	missing, err := store.FindWord(ctx, "犬", false)
	if err != nil {
		t.Fatalf("find 犬: %v", err)
	}
	if len(missing) != 0 {
		t.Fatalf("expected no readings, got %+v", missing)
	}
}

func TestCommonSentinel(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.InsertEntry(ctx, models.Entry{Seq: 100, Root: true}); err != nil {
		t.Fatal(err)
	}
	if err := store.InsertReading(ctx, models.Reading{
		Seq: 100, Kind: models.KanaReading, Text: "てすと", Common: -1,
	}); err != nil {
		t.Fatal(err)
	}

	got, err := store.FindWord(ctx, "てすと", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d readings", len(got))
	}
	if got[0].HasCommon() {
		t.Errorf("reading without common rank reports HasCommon")
	}
}

func TestSubstringReadings(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	seed := func(seq int64, kind models.ReadingKind, text string) {
		if err := store.InsertEntry(ctx, models.Entry{Seq: seq, Root: true}); err != nil {
			t.Fatal(err)
		}
		if err := store.InsertReading(ctx, models.Reading{Seq: seq, Kind: kind, Text: text}); err != nil {
			t.Fatal(err)
		}
	}
	seed(1, models.KanaReading, "ねこ")
	seed(2, models.KanjiReading, "猫")
	seed(3, models.KanaReading, "こ")

	got, err := store.SubstringReadings(ctx, []string{"ねこ", "こ", "ぬ"}, []string{"猫"})
	if err != nil {
		t.Fatalf("substring readings: %v", err)
	}
	for _, key := range []string{"ねこ", "こ", "猫"} {
		if len(got[key]) != 1 {
			t.Errorf("key %q: got %d readings", key, len(got[key]))
		}
	}
	if len(got["ぬ"]) != 0 {
		t.Errorf("key ぬ should be empty, got %+v", got["ぬ"])
	}
}

func TestConjugatedFormsPrefersKanjiSource(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.InsertEntry(ctx, models.Entry{Seq: 1358280, Root: true}); err != nil {
		t.Fatal(err)
	}
	if err := store.InsertReading(ctx, models.Reading{
		Seq: 1358280, Kind: models.KanjiReading, Text: "食べる",
	}); err != nil {
		t.Fatal(err)
	}
	if err := store.InsertReading(ctx, models.Reading{
		Seq: 1358280, Kind: models.KanaReading, Text: "たべる", Common: 3,
	}); err != nil {
		t.Fatal(err)
	}
	// The same surface form expands from both spellings.
	for _, src := range []string{"たべる", "食べる"} {
		if err := store.InsertConjugatedForm(ctx, models.ConjugatedForm{
			Seq: 1358280, Text: "食べた", Reading: "たべた",
			ConjType: models.ConjPast, POS: "v1", SourceText: src, SourceReading: "たべる",
		}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.ConjugatedForms(ctx, []string{"食べた", "なし"})
	if err != nil {
		t.Fatalf("conjugated forms: %v", err)
	}
	forms := got["食べた"]
	if len(forms) != 1 {
		t.Fatalf("expected deduplicated form, got %d", len(forms))
	}
	if forms[0].SourceText != "食べる" {
		t.Errorf("source = %q, want the kanji spelling", forms[0].SourceText)
	}
	if forms[0].Common != 3 {
		t.Errorf("common = %d, want 3 from the primary kana reading", forms[0].Common)
	}
}

func TestFormsWithConjType(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.InsertConjugatedForm(ctx, models.ConjugatedForm{
		Seq: 1, Text: "見て", Reading: "みて", ConjType: models.ConjTe, POS: "v1",
	}); err != nil {
		t.Fatal(err)
	}
	if err := store.InsertConjugatedForm(ctx, models.ConjugatedForm{
		Seq: 1, Text: "見て", Reading: "みて", ConjType: models.ConjPast, POS: "v1",
	}); err != nil {
		t.Fatal(err)
	}

	got, err := store.FormsWithConjType(ctx, "見て", models.ConjTe)
	if err != nil {
		t.Fatalf("forms with conj type: %v", err)
	}
	if len(got) != 1 || got[0].ConjType != models.ConjTe {
		t.Fatalf("got %+v", got)
	}
}

func TestConjugationLink(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	link := models.ConjugationLink{
		Seq:     9000001,
		FromSeq: 1577980,
		Props: []models.ConjProperty{
			{ConjType: models.ConjTe, POS: "v1"},
		},
		SrcMap: []models.SourceReadingPair{{Text: "いて", SourceText: "いる"}},
	}
	if _, err := store.InsertConjugation(ctx, link); err != nil {
		t.Fatalf("insert conjugation: %v", err)
	}

	got, err := store.ConjugationLink(ctx, 9000001)
	if err != nil {
		t.Fatalf("conjugation link: %v", err)
	}
	if got == nil {
		t.Fatal("link not found")
	}
	if got.FromSeq != 1577980 {
		t.Errorf("from seq = %d, want 1577980", got.FromSeq)
	}
	if len(got.Props) != 1 || got.Props[0].ConjType != models.ConjTe {
		t.Errorf("props = %+v", got.Props)
	}

	none, err := store.ConjugationLink(ctx, 42)
	if err != nil {
		t.Fatalf("missing link: %v", err)
	}
	if none != nil {
		t.Errorf("expected nil for base entry, got %+v", none)
	}
}

func TestPOSTagsCached(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.InsertEntry(ctx, models.Entry{Seq: 7, Root: true}); err != nil {
		t.Fatal(err)
	}
	if err := store.InsertSense(ctx, 7, 0, []string{"N", "prt"}, "gloss"); err != nil {
		t.Fatal(err)
	}

	tags, err := store.POSTags(ctx, 7)
	if err != nil {
		t.Fatalf("pos tags: %v", err)
	}
	if len(tags) != 2 || tags[0] != "n" || tags[1] != "prt" {
		t.Fatalf("tags = %v", tags)
	}

	// Second read hits the cache.
	again, err := store.POSTags(ctx, 7)
	if err != nil {
		t.Fatalf("pos tags (cached): %v", err)
	}
	if len(again) != 2 {
		t.Fatalf("cached tags = %v", again)
	}
}

func TestKanaForms(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.InsertEntry(ctx, models.Entry{Seq: 1577980, Root: true}); err != nil {
		t.Fatal(err)
	}
	if err := store.InsertReading(ctx, models.Reading{
		Seq: 1577980, Kind: models.KanaReading, Text: "いる", Common: 2,
	}); err != nil {
		t.Fatal(err)
	}
	// A derived entry reachable through the conjugation table.
	if err := store.InsertEntry(ctx, models.Entry{Seq: 9000002, Root: false}); err != nil {
		t.Fatal(err)
	}
	if err := store.InsertReading(ctx, models.Reading{
		Seq: 9000002, Kind: models.KanaReading, Text: "います", Common: -1,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.InsertConjugation(ctx, models.ConjugationLink{
		Seq: 9000002, FromSeq: 1577980,
		Props: []models.ConjProperty{{ConjType: models.ConjNonPast, POS: "v1", Fml: true}},
	}); err != nil {
		t.Fatal(err)
	}

	forms, err := store.KanaForms(ctx, 1577980)
	if err != nil {
		t.Fatalf("kana forms: %v", err)
	}
	if len(forms) != 2 {
		t.Fatalf("expected root + derived, got %d", len(forms))
	}
	if forms[0].Reading.Text != "いる" || forms[0].Conj != "root" {
		t.Errorf("first form = %+v", forms[0])
	}
	if forms[1].Reading.Text != "います" || forms[1].Conj != "conj" {
		t.Errorf("second form = %+v", forms[1])
	}

	exact, err := store.KanaFormExact(ctx, 1577980, "いる")
	if err != nil {
		t.Fatalf("kana form exact: %v", err)
	}
	if exact == nil || exact.Seq != 1577980 {
		t.Fatalf("exact = %+v", exact)
	}
	missing, err := store.KanaFormExact(ctx, 1577980, "おる")
	if err != nil {
		t.Fatalf("kana form exact (missing): %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil, got %+v", missing)
	}
}
