// Package models defines core data structures for lexicon entries, candidate
// words, and segmentation results.
package models

// Entry is a dictionary headword identified by a sequence id.
type Entry struct {
	Seq             int64  `json:"seq" db:"seq"`
	Content         string `json:"content,omitempty" db:"content"`
	Root            bool   `json:"root" db:"root_p"`
	NKanji          int    `json:"n_kanji" db:"n_kanji"`
	NKana           int    `json:"n_kana" db:"n_kana"`
	PrimaryNoKanji  bool   `json:"primary_nokanji" db:"primary_nokanji"`
}

// ReadingKind distinguishes kanji and kana reading rows.
type ReadingKind int

const (
	KanjiReading ReadingKind = iota
	KanaReading
)

// Reading is a single surface form of an entry, either a kanji spelling or a
// kana reading. Common is the commonness rank (0 = most common); a nil-like
// sentinel of -1 means the reading carries no commonness tag.
type Reading struct {
	ID        int64       `db:"id"`
	Seq       int64       `db:"seq"`
	Kind      ReadingKind `db:"-"`
	Text      string      `db:"text"`
	Ord       int         `db:"ord"`
	Common    int         `db:"common"`
	Conjugate bool        `db:"conjugate_p"`
	NoKanji   bool        `db:"nokanji"`
	BestPair  string      `db:"best_pair"` // best kana for a kanji reading, best kanji for a kana reading
}

// HasCommon reports whether the reading carries a commonness rank.
func (r *Reading) HasCommon() bool { return r.Common >= 0 }

// Sense is a meaning group for an entry.
type Sense struct {
	ID    int64    `json:"id"`
	Seq   int64    `json:"seq"`
	Ord   int      `json:"ord"`
	POS   []string `json:"pos"`
	Gloss string   `json:"gloss"`
}
