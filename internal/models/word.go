package models

// WordKind classifies a candidate word by its surface script.
type WordKind string

const (
	KindKanji WordKind = "kanji"
	KindKana  WordKind = "kana"
	KindGap   WordKind = "gap"
)

// Word is a candidate lexical item proposed for a span of the input: a plain
// dictionary reading, a pre-expanded conjugated form, a proxy spelling, a
// synthesized counter, or a compound of a head word plus attached suffixes.
type Word interface {
	// Text is the surface form as matched in the input.
	Text() string
	// Kana is the reading of the surface form.
	Kana() string
	// Seq is the primary sequence id (0 for gaps and unregistered counters).
	Seq() int64
	// Seqs lists every sequence id involved (compounds carry one per component).
	Seqs() []int64
	// Kind reports the script class of the surface form.
	Kind() WordKind
	// CommonRank returns the commonness rank and whether one is present.
	CommonRank() (int, bool)
	// Ord is the ordinal of the matched reading within its entry.
	Ord() int
}

// DictWord is a plain dictionary reading matched verbatim.
type DictWord struct {
	Reading Reading
}

func (w *DictWord) Text() string { return w.Reading.Text }

func (w *DictWord) Kana() string {
	if w.Reading.Kind == KanaReading {
		return w.Reading.Text
	}
	if w.Reading.BestPair != "" {
		return w.Reading.BestPair
	}
	return w.Reading.Text
}

// Kanji returns the kanji spelling, or "" when the word has none.
func (w *DictWord) Kanji() string {
	if w.Reading.Kind == KanjiReading {
		return w.Reading.Text
	}
	if w.Reading.NoKanji {
		return ""
	}
	return w.Reading.BestPair
}

func (w *DictWord) Seq() int64    { return w.Reading.Seq }
func (w *DictWord) Seqs() []int64 { return []int64{w.Reading.Seq} }

func (w *DictWord) Kind() WordKind {
	if w.Reading.Kind == KanjiReading {
		return KindKanji
	}
	return KindKana
}

func (w *DictWord) CommonRank() (int, bool) {
	return w.Reading.Common, w.Reading.HasCommon()
}

func (w *DictWord) Ord() int { return w.Reading.Ord }

// ConjWord is a match against the pre-expanded conjugation table.
type ConjWord struct {
	Form     ConjugatedForm
	HasKanji bool // surface form contains kanji
}

func (w *ConjWord) Text() string { return w.Form.Text }
func (w *ConjWord) Kana() string { return w.Form.Reading }
func (w *ConjWord) Seq() int64   { return w.Form.Seq }
func (w *ConjWord) Seqs() []int64 {
	return []int64{w.Form.Seq}
}

func (w *ConjWord) Kind() WordKind {
	if w.HasKanji {
		return KindKanji
	}
	return KindKana
}

func (w *ConjWord) CommonRank() (int, bool) { return w.Form.Common, w.Form.HasCommon() }
func (w *ConjWord) Ord() int                { return 0 }

// ProxyWord wraps a source word matched under a modified spelling, e.g. a
// katakana surface string resolved through its hiragana reading.
type ProxyWord struct {
	Source  Word
	Surface string
}

func (w *ProxyWord) Text() string           { return w.Surface }
func (w *ProxyWord) Kana() string           { return w.Surface }
func (w *ProxyWord) Seq() int64             { return w.Source.Seq() }
func (w *ProxyWord) Seqs() []int64          { return w.Source.Seqs() }
func (w *ProxyWord) Kind() WordKind         { return w.Source.Kind() }
func (w *ProxyWord) CommonRank() (int, bool) { return w.Source.CommonRank() }
func (w *ProxyWord) Ord() int               { return w.Source.Ord() }

// TrueText returns the spelling the proxy was resolved through.
func (w *ProxyWord) TrueText() string {
	if p, ok := w.Source.(*ProxyWord); ok {
		return p.TrueText()
	}
	return w.Source.Text()
}

// CounterWord is a synthesized number+counter candidate with no verbatim
// lexicon entry. CounterSeq is the counter suffix's entry when known.
type CounterWord struct {
	Surface     string
	Reading     string
	Value       int64
	CounterText string
	CounterSeq  int64
}

func (w *CounterWord) Text() string { return w.Surface }
func (w *CounterWord) Kana() string { return w.Reading }
func (w *CounterWord) Seq() int64   { return w.CounterSeq }
func (w *CounterWord) Seqs() []int64 {
	if w.CounterSeq == 0 {
		return nil
	}
	return []int64{w.CounterSeq}
}
func (w *CounterWord) Kind() WordKind          { return KindKanji }
func (w *CounterWord) CommonRank() (int, bool) { return 0, false }
func (w *CounterWord) Ord() int                { return 0 }

// Compound is a head word with one or more attached grammatical suffixes.
// Components are ordered left to right; the head is Components[0]. ScoreBase
// overrides the word used for base scoring when set, and ScoreMod feeds the
// tail-length bonus so a compound never double-counts against an identical
// standalone entry.
type Compound struct {
	Surface     string
	Reading     string
	Components  []Word
	ScoreBase   Word
	ScoreMod    int
	SuffixClass string
}

func (c *Compound) Text() string { return c.Surface }
func (c *Compound) Kana() string { return c.Reading }

// Primary returns the head component.
func (c *Compound) Primary() Word { return c.Components[0] }

func (c *Compound) Seq() int64 { return c.Components[0].Seq() }

func (c *Compound) Seqs() []int64 {
	seqs := make([]int64, 0, len(c.Components))
	for _, w := range c.Components {
		seqs = append(seqs, w.Seq())
	}
	return seqs
}

func (c *Compound) Kind() WordKind          { return c.Components[0].Kind() }
func (c *Compound) CommonRank() (int, bool) { return c.Components[0].CommonRank() }
func (c *Compound) Ord() int                { return c.Components[0].Ord() }

// Last returns the rightmost component, the attachment point for chained
// suffixes.
func (c *Compound) Last() Word { return c.Components[len(c.Components)-1] }

// GapWord is the one-character fallback for text with no lexicon match.
type GapWord struct {
	Surface string
}

func (w *GapWord) Text() string            { return w.Surface }
func (w *GapWord) Kana() string            { return w.Surface }
func (w *GapWord) Seq() int64              { return 0 }
func (w *GapWord) Seqs() []int64           { return nil }
func (w *GapWord) Kind() WordKind          { return KindGap }
func (w *GapWord) CommonRank() (int, bool) { return 0, false }
func (w *GapWord) Ord() int                { return 0 }
