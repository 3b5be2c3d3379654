package models

// Conjugation type codes. Codes 1-13 follow the standard JMdict conjugation
// table; codes from 50 up are derived stem forms produced by the importer.
const (
	ConjNonPast          = 1
	ConjPast             = 2
	ConjTe               = 3
	ConjProvisional      = 4
	ConjPotential        = 5
	ConjPassive          = 6
	ConjCausative        = 7
	ConjCausativePassive = 8
	ConjVolitional       = 9
	ConjImperative       = 10
	ConjConditional      = 11
	ConjAlternative      = 12
	ConjContinuative     = 13

	ConjAdverbial         = 50
	ConjAdjectiveStem     = 51
	ConjNegativeStem      = 52
	ConjCausativeSu       = 53
	ConjAdjectiveLiterary = 54
)

var conjDescriptions = map[int]string{
	ConjNonPast:           "Non-past",
	ConjPast:              "Past (~ta)",
	ConjTe:                "Conjunctive (~te)",
	ConjProvisional:       "Provisional (~eba)",
	ConjPotential:         "Potential",
	ConjPassive:           "Passive",
	ConjCausative:         "Causative",
	ConjCausativePassive:  "Causative-Passive",
	ConjVolitional:        "Volitional",
	ConjImperative:        "Imperative",
	ConjConditional:       "Conditional (~tara)",
	ConjAlternative:       "Alternative (~tari)",
	ConjContinuative:      "Continuative (~i)",
	ConjAdverbial:         "Adverbial",
	ConjAdjectiveStem:     "Adjective Stem",
	ConjNegativeStem:      "Negative Stem",
	ConjCausativeSu:       "Causative (~su)",
	ConjAdjectiveLiterary: "Old/Literary",
}

// ConjDescription returns the human-readable name of a conjugation type code.
func ConjDescription(conjType int) string {
	if d, ok := conjDescriptions[conjType]; ok {
		return d
	}
	return "Unknown conjugation"
}

// ConjProperty is one (type, negative, formal) cell of a conjugation link.
type ConjProperty struct {
	ConjType int    `json:"conj_type"`
	POS      string `json:"pos"`
	Neg      bool   `json:"neg"`
	Fml      bool   `json:"fml"`
}

// Description renders the property as text, e.g. "Past (~ta) Negative".
func (p ConjProperty) Description() string {
	d := ConjDescription(p.ConjType)
	if p.Neg {
		d += " Negative"
	}
	if p.Fml {
		d += " Polite"
	}
	return d
}

// SourceReadingPair maps a derived surface text back to the source entry's
// text, used to recover the dictionary form from a conjugated string.
type SourceReadingPair struct {
	Text       string `json:"text"`
	SourceText string `json:"source_text"`
}

// ConjugationLink relates a derived sequence id to its source entry,
// optionally through an intermediate "via" entry for secondary conjugations
// (causative-passive derived from causative, and the like).
type ConjugationLink struct {
	ID      int64               `json:"id"`
	Seq     int64               `json:"seq"`
	FromSeq int64               `json:"from_seq"`
	Via     int64               `json:"via,omitempty"` // 0 when the link is direct
	Props   []ConjProperty      `json:"props"`
	SrcMap  []SourceReadingPair `json:"src_map,omitempty"`
}

// ConjugatedForm is a row of the pre-expanded conjugation table: a surface
// string together with the source entry it inflects.
type ConjugatedForm struct {
	ID            int64  `db:"id"`
	Seq           int64  `db:"seq"`
	Text          string `db:"text"`
	Reading       string `db:"reading"`
	ConjType      int    `db:"conj_type"`
	POS           string `db:"pos"`
	Neg           bool   `db:"neg"`
	Fml           bool   `db:"fml"`
	SourceText    string `db:"source_text"`
	SourceReading string `db:"source_reading"`
	Common        int    `db:"common"` // -1 when untagged
}

// HasCommon reports whether the form's source reading carries a commonness rank.
func (f *ConjugatedForm) HasCommon() bool { return f.Common >= 0 }

// Property returns the form's conjugation cell.
func (f *ConjugatedForm) Property() ConjProperty {
	return ConjProperty{ConjType: f.ConjType, POS: f.POS, Neg: f.Neg, Fml: f.Fml}
}
