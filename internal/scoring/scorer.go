// Package scoring assigns scores to candidate words and to adjacent word
// pairs. Word scores grow superlinearly with length so that long matches
// beat runs of fragments; pair scores reward grammatical adjacency (noun
// before particle, te-form before auxiliary) and penalize unlikely runs of
// single kana.
package scoring

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/kotoba/wakachi/internal/chars"
	"github.com/kotoba/wakachi/internal/lexicon"
	"github.com/kotoba/wakachi/internal/models"
)

// absorbedParticles are particle characters that phrase entries tend to
// swallow at their end.
const absorbedParticles = "はがをにでとへもの"

// Scorer scores candidate words against the lexicon. The config pointer is
// swappable at runtime; readers always see a complete config.
type Scorer struct {
	store *lexicon.Store
	cfg   atomic.Pointer[Config]
}

// NewScorer creates a scorer with the given config, or the default when nil.
func NewScorer(store *lexicon.Store, cfg *Config) *Scorer {
	s := &Scorer{store: store}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s.cfg.Store(cfg)
	return s
}

// Config returns the active configuration.
func (s *Scorer) Config() *Config { return s.cfg.Load() }

// SetConfig atomically replaces the active configuration.
func (s *Scorer) SetConfig(cfg *Config) {
	if cfg != nil {
		s.cfg.Store(cfg)
	}
}

// Info carries the score breakdown for a candidate word.
type Info struct {
	PropScore int
	POS       []string
	Common    int
	HasCommon bool
	Conj      *models.ConjInfo
	Counter   *models.CounterInfo
	KanjiP    bool
	PrimaryP  bool
	LongP     bool
}

// Options modify base word scoring.
type Options struct {
	// Final marks the word as ending the input; final particles score
	// higher there.
	Final bool
	// UseLength scores the word as if it spanned this many morae,
	// crediting the extra span through the tail tables.
	UseLength int
	// ScoreMod scales the per-mora bonus of the extra span.
	ScoreMod int
}

// WordScore computes the base score of a candidate word.
func (s *Scorer) WordScore(ctx context.Context, w models.Word, opts Options) (int, *Info, error) {
	cfg := s.cfg.Load()

	switch v := w.(type) {
	case *models.CounterWord:
		return s.counterScore(cfg, v), counterInfo(v), nil
	case *models.Compound:
		base := v.ScoreBase
		if base == nil {
			base = v.Primary()
		}
		score, info, err := s.WordScore(ctx, base, Options{
			UseLength: chars.MoraLength([]rune(v.Surface)),
			ScoreMod:  v.ScoreMod,
		})
		if err != nil {
			return 0, nil, err
		}
		return score, info, nil
	case *models.ConjWord:
		return s.conjScore(ctx, cfg, v, opts)
	default:
		return s.plainScore(ctx, cfg, w, opts)
	}
}

func counterInfo(w *models.CounterWord) *Info {
	return &Info{
		Counter: &models.CounterInfo{Value: w.Value, CounterText: w.CounterText},
		KanjiP:  chars.CountKanji([]rune(w.Surface)) > 0,
	}
}

// counterScore favors the fused number+counter over its parts.
func (s *Scorer) counterScore(cfg *Config, w *models.CounterWord) int {
	runes := []rune(w.Surface)
	length := chars.MoraLength(runes)
	if length < 1 {
		length = 1
	}
	nKanji := chars.CountKanji(runes)

	score := cfg.CounterBase * coeff(cfg.StrongCoeffs, length)
	if nKanji > 0 {
		score += cfg.CounterKanjiBonus * nKanji
	}
	score += cfg.CounterUnitBonus
	return score
}

func (s *Scorer) conjScore(ctx context.Context, cfg *Config, w *models.ConjWord, opts Options) (int, *Info, error) {
	runes := []rune(w.Form.Text)
	kanjiP := w.HasKanji
	katakanaP := !kanjiP && chars.CountKatakanaUniq(runes) > 0

	length := chars.MoraLength(runes)
	if length < 1 {
		length = 1
	}

	prop := 0
	if w.Form.HasCommon() {
		if w.Form.Common == 0 {
			prop += cfg.TopCommonBonus
		} else {
			prop += maxInt(1, cfg.CommonBase-w.Form.Common)
		}
	} else {
		prop += 5
	}

	if isStemConj(w.Form.ConjType) {
		prop += cfg.StemBonus
	} else {
		prop += cfg.ConjugatedBonus
	}
	if kanjiP || katakanaP {
		prop += cfg.StrongScriptBonus
	}
	prop = maxInt(1, prop)

	nKanji := chars.CountKanji(runes)
	table := cfg.WeakCoeffs
	if kanjiP || katakanaP {
		table = cfg.StrongCoeffs
	}
	score := prop * (coeff(table, length) + extraKanji(cfg, nKanji))
	score += s.tailBonus(cfg, prop, length, kanjiP || katakanaP, opts)

	info := &Info{
		PropScore: prop,
		Common:    w.Form.Common,
		HasCommon: w.Form.HasCommon(),
		Conj: &models.ConjInfo{
			ConjType:      w.Form.ConjType,
			Description:   models.ConjDescription(w.Form.ConjType),
			POS:           w.Form.POS,
			Neg:           w.Form.Neg,
			Fml:           w.Form.Fml,
			SourceText:    w.Form.SourceText,
			SourceReading: w.Form.SourceReading,
		},
		KanjiP:   kanjiP || katakanaP,
		PrimaryP: true,
		LongP:    length > 3,
	}
	return score, info, nil
}

func (s *Scorer) plainScore(ctx context.Context, cfg *Config, w models.Word, opts Options) (int, *Info, error) {
	runes := []rune(w.Text())
	kanjiP := w.Kind() == models.KindKanji
	katakanaP := !kanjiP && chars.CountKatakanaUniq(runes) > 0

	length := chars.MoraLength(runes)
	if length < 1 {
		length = 1
	}
	common, commonP := w.CommonRank()

	prop := 0
	if commonP {
		if common == 0 {
			prop += cfg.TopCommonBonus
		} else {
			prop += maxInt(1, cfg.CommonBase-common)
		}
	}
	if w.Ord() == 0 {
		prop += cfg.PrimaryBonus
	}
	if kanjiP || katakanaP {
		prop += cfg.StrongScriptBonus
	}
	prop = maxInt(1, prop)

	var pos []string
	if seq := w.Seq(); seq != 0 {
		var err error
		pos, err = s.store.POSTags(ctx, seq)
		if err != nil {
			return 0, nil, err
		}
	}

	effLength := length
	if s.absorbsParticle(runes, w.Seq(), pos) {
		effLength = maxInt(1, length-1)
	}

	nKanji := chars.CountKanji(runes)
	table := cfg.WeakCoeffs
	if kanjiP || katakanaP {
		table = cfg.StrongCoeffs
	}
	score := prop * (coeff(table, effLength) + extraKanji(cfg, nKanji))
	score += s.tailBonus(cfg, prop, length, kanjiP || katakanaP, opts)

	// Particles outrank their homophone nouns, more so in final position.
	if isParticlePOS(pos) {
		semiFinal := semiFinalPrt[w.Seq()]
		if opts.Final || !semiFinal {
			score += 2 * prop
			if commonP {
				score += (2 + length) * prop
			}
			if opts.Final {
				if w.Ord() == 0 {
					score += 5 * prop
				} else if semiFinal {
					score += 2 * prop
				}
			}
		}
	}

	info := &Info{
		PropScore: prop,
		POS:       pos,
		Common:    common,
		HasCommon: commonP,
		KanjiP:    kanjiP || katakanaP,
		PrimaryP:  w.Ord() == 0,
		LongP:     length > 3,
	}
	return score, info, nil
}

// tailBonus credits the span a compound covers beyond its scored head.
func (s *Scorer) tailBonus(cfg *Config, prop, length int, strong bool, opts Options) int {
	if opts.UseLength <= length {
		return 0
	}
	table := cfg.TailCoeffs
	if length > 3 && strong {
		table = cfg.LongTailCoeffs
	}
	bonus := prop * coeff(table, opts.UseLength-length)
	bonus += opts.ScoreMod * prop * (opts.UseLength - length)
	return bonus
}

// absorbsParticle reports whether the word is a phrase entry ending with a
// particle character that should really segment separately.
func (s *Scorer) absorbsParticle(runes []rune, seq int64, pos []string) bool {
	if len(runes) < 2 || particleEndingExceptions[seq] {
		return false
	}
	last := runes[len(runes)-1]
	if !strings.ContainsRune(absorbedParticles, last) {
		return false
	}
	for _, p := range pos {
		if strings.Contains(p, "expression") {
			return true
		}
		if strings.Contains(p, "interjection") && last == 'は' {
			return true
		}
	}
	return false
}

func extraKanji(cfg *Config, nKanji int) int {
	if nKanji > 1 {
		return cfg.ExtraKanjiBonus * (nKanji - 1)
	}
	return 0
}

var particlePOSPatterns = []string{
	"particle", "prt", "case-marking particle", "conjunction particle",
	"adverbial particle", "sentence-ending particle", "final particle",
}

func isParticlePOS(pos []string) bool {
	for _, p := range pos {
		for _, pat := range particlePOSPatterns {
			if p == pat || strings.HasPrefix(p, pat+" ") || strings.HasSuffix(p, " "+pat) {
				return true
			}
		}
	}
	return false
}

func isStemConj(ct int) bool {
	switch ct {
	case models.ConjAdverbial, models.ConjAdjectiveStem,
		models.ConjNegativeStem, models.ConjCausativeSu:
		return true
	}
	return false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
