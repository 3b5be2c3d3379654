package scoring

// Config holds all tunable weights for word and path scoring.
type Config struct {
	// Search-wide limits
	MaxWordLength int `yaml:"max_word_length"` // default: 50
	PathLimit     int `yaml:"path_limit"`      // default: 5

	// Per-segment thresholds
	ScoreCutoff        int     `yaml:"score_cutoff"`         // default: 5
	CullRatio          float64 `yaml:"cull_ratio"`           // default: 0.5
	SegmentScoreCutoff float64 `yaml:"segment_score_cutoff"` // default: 2/3

	// Gap fallback
	GapPenalty int `yaml:"gap_penalty"` // default: -500

	// Base score weights
	TopCommonBonus    int `yaml:"top_common_bonus"`    // default: 10
	CommonBase        int `yaml:"common_base"`         // default: 20
	PrimaryBonus      int `yaml:"primary_bonus"`       // default: 5
	StrongScriptBonus int `yaml:"strong_script_bonus"` // default: 3
	ConjugatedBonus   int `yaml:"conjugated_bonus"`    // default: 8
	StemBonus         int `yaml:"stem_bonus"`          // default: 2
	ExtraKanjiBonus   int `yaml:"extra_kanji_bonus"`   // default: 5

	// Counter scoring
	CounterBase       int `yaml:"counter_base"`        // default: 25
	CounterKanjiBonus int `yaml:"counter_kanji_bonus"` // default: 20
	CounterUnitBonus  int `yaml:"counter_unit_bonus"`  // default: 50

	// Length coefficient tables, indexed by mora length; values past the
	// table extrapolate linearly.
	StrongCoeffs   []int `yaml:"strong_coeffs"`    // default: [1, 8, 24, 40, 60]
	WeakCoeffs     []int `yaml:"weak_coeffs"`      // default: [1, 4, 9, 16, 25, 36]
	TailCoeffs     []int `yaml:"tail_coeffs"`      // default: [4, 9, 16, 24]
	LongTailCoeffs []int `yaml:"long_tail_coeffs"` // default: [4, 12, 18, 24]

	// Adjacency synergy weights
	NounParticleBase   int `yaml:"noun_particle_base"`    // default: 10
	NounParticlePerLen int `yaml:"noun_particle_per_len"` // default: 4
	NounDa             int `yaml:"noun_da"`               // default: 10
	NoDa               int `yaml:"no_da"`                 // default: 15
	SouNanda           int `yaml:"sou_nanda"`             // default: 50
	NoAdjective        int `yaml:"no_adjective"`          // default: 15
	NaAdjective        int `yaml:"na_adjective"`          // default: 15
	ToAdverbBase       int `yaml:"to_adverb_base"`        // default: 10
	ToAdverbPerLen     int `yaml:"to_adverb_per_len"`     // default: 10
	SuffixChu          int `yaml:"suffix_chu"`            // default: 12
	SuffixTachi        int `yaml:"suffix_tachi"`          // default: 10
	SuffixBuri         int `yaml:"suffix_buri"`           // default: 40
	SuffixSei          int `yaml:"suffix_sei"`            // default: 12
	OPrefix            int `yaml:"o_prefix"`              // default: 10
	KanjiPrefix        int `yaml:"kanji_prefix"`          // default: 15
	ShichaIkenai       int `yaml:"shicha_ikenai"`         // default: 50
	ShikaNegative      int `yaml:"shika_negative"`        // default: 50
	NoToori            int `yaml:"no_toori"`              // default: 50
	CounterOki         int `yaml:"counter_oki"`           // default: 20
	NounDesu           int `yaml:"noun_desu"`             // default: 15
	GaAdjective        int `yaml:"ga_adjective"`          // default: 30
	ParticleAdjective  int `yaml:"particle_adjective"`    // default: 15
	TeAuxiliary        int `yaml:"te_auxiliary"`          // default: 50
	VerbKara           int `yaml:"verb_kara"`             // default: 100

	// Adjacency penalties (negative)
	ShortKanaPenalty int `yaml:"short_kana_penalty"` // default: -9
	SemiFinalPenalty int `yaml:"semi_final_penalty"` // default: -15
}

// DefaultConfig returns the default scoring configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxWordLength: 50,
		PathLimit:     5,

		ScoreCutoff:        5,
		CullRatio:          0.5,
		SegmentScoreCutoff: 2.0 / 3.0,

		GapPenalty: -500,

		TopCommonBonus:    10,
		CommonBase:        20,
		PrimaryBonus:      5,
		StrongScriptBonus: 3,
		ConjugatedBonus:   8,
		StemBonus:         2,
		ExtraKanjiBonus:   5,

		CounterBase:       25,
		CounterKanjiBonus: 20,
		CounterUnitBonus:  50,

		StrongCoeffs:   []int{1, 8, 24, 40, 60},
		WeakCoeffs:     []int{1, 4, 9, 16, 25, 36},
		TailCoeffs:     []int{4, 9, 16, 24},
		LongTailCoeffs: []int{4, 12, 18, 24},

		NounParticleBase:   10,
		NounParticlePerLen: 4,
		NounDa:             10,
		NoDa:               15,
		SouNanda:           50,
		NoAdjective:        15,
		NaAdjective:        15,
		ToAdverbBase:       10,
		ToAdverbPerLen:     10,
		SuffixChu:          12,
		SuffixTachi:        10,
		SuffixBuri:         40,
		SuffixSei:          12,
		OPrefix:            10,
		KanjiPrefix:        15,
		ShichaIkenai:       50,
		ShikaNegative:      50,
		NoToori:            50,
		CounterOki:         20,
		NounDesu:           15,
		GaAdjective:        30,
		ParticleAdjective:  15,
		TeAuxiliary:        50,
		VerbKara:           100,

		ShortKanaPenalty: -9,
		SemiFinalPenalty: -15,
	}
}

// coeff returns the length multiplier for a mora length, extrapolating
// linearly past the end of the table.
func coeff(table []int, length int) int {
	if length <= 0 {
		return 0
	}
	if length < len(table) {
		return table[length]
	}
	last := table[len(table)-1]
	return length * (last / (len(table) - 1))
}
