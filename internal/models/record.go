package models

// ConjInfo describes one conjugation step attached to a materialized word.
type ConjInfo struct {
	Description   string `json:"description"`
	ConjType      int    `json:"conj_type"`
	POS           string `json:"pos"`
	Neg           bool   `json:"neg"`
	Fml           bool   `json:"fml"`
	SourceText    string `json:"source_text,omitempty"`
	SourceReading string `json:"source_reading,omitempty"`
}

// WordRecord is the exported form of one segment in a chosen path. Compounds
// carry their components in order; gaps are marked with KindGap and no seq.
type WordRecord struct {
	Kind       WordKind     `json:"kind"`
	Text       string       `json:"text"`
	Kana       string       `json:"kana"`
	Seq        int64        `json:"seq,omitempty"`
	Seqs       []int64      `json:"seqs,omitempty"`
	Score      int          `json:"score"`
	Start      int          `json:"start"`
	End        int          `json:"end"`
	Conj       []ConjInfo   `json:"conj,omitempty"`
	Components []WordRecord `json:"components,omitempty"`
	Counter    *CounterInfo `json:"counter,omitempty"`

	// SuffixDescription labels a compound component that was attached as a
	// grammatical suffix.
	SuffixDescription string `json:"suffix,omitempty"`
	Alternative       bool   `json:"alternative,omitempty"`
	Skipped           int    `json:"skipped,omitempty"`
}

// CounterInfo carries the parsed value of a synthesized counter word.
type CounterInfo struct {
	Value       int64  `json:"value"`
	CounterText string `json:"counter_text"`
}

// Segmentation is one ranked whole-string tokenization.
type Segmentation struct {
	Words []WordRecord `json:"words"`
	Score int          `json:"score"`
}
