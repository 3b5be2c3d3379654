package scoring

import (
	"context"
	"strings"

	"github.com/kotoba/wakachi/internal/chars"
	"github.com/kotoba/wakachi/internal/models"
)

// Pair is the outcome of scoring two adjacent words.
type Pair struct {
	Score  int
	Reason string
}

func (s *Scorer) posHas(ctx context.Context, seq int64, match func(string) bool) (bool, error) {
	if seq == 0 {
		return false, nil
	}
	tags, err := s.store.POSTags(ctx, seq)
	if err != nil {
		return false, err
	}
	for _, t := range tags {
		if match(t) {
			return true, nil
		}
	}
	return false, nil
}

var nounTags = map[string]bool{
	"n": true, "n-adv": true, "n-t": true, "adj-na": true, "n-suf": true, "pn": true,
}

func (s *Scorer) isNoun(ctx context.Context, seq int64) (bool, error) {
	return s.posHas(ctx, seq, func(t string) bool {
		return nounTags[t] || strings.Contains(t, "noun") || strings.Contains(t, "pronoun")
	})
}

func (s *Scorer) isIAdjective(ctx context.Context, seq int64) (bool, error) {
	return s.posHas(ctx, seq, func(t string) bool { return strings.Contains(t, "adj-i") })
}

func (s *Scorer) isNaAdjective(ctx context.Context, seq int64) (bool, error) {
	return s.posHas(ctx, seq, func(t string) bool { return strings.Contains(t, "adj-na") })
}

func (s *Scorer) isNoAdjective(ctx context.Context, seq int64) (bool, error) {
	return s.posHas(ctx, seq, func(t string) bool { return strings.Contains(t, "adj-no") })
}

func (s *Scorer) isToAdverb(ctx context.Context, seq int64) (bool, error) {
	return s.posHas(ctx, seq, func(t string) bool { return strings.Contains(t, "adv-to") })
}

func (s *Scorer) isCounterPOS(ctx context.Context, seq int64) (bool, error) {
	return s.posHas(ctx, seq, func(t string) bool {
		return strings.Contains(t, "ctr") || strings.Contains(t, "counter")
	})
}

func (s *Scorer) isVerbOrAdj(ctx context.Context, seq int64) (bool, error) {
	return s.posHas(ctx, seq, func(t string) bool {
		return strings.Contains(t, "verb") || strings.Contains(t, "adjective") ||
			strings.Contains(t, "auxiliary")
	})
}

func isNegativeWord(w models.Word) bool {
	if cw, ok := w.(*models.ConjWord); ok && cw.Form.Neg {
		return true
	}
	text := w.Text()
	for _, tail := range []string{"ない", "なかった", "ません", "ませんでした", "ず", "ぬ"} {
		if strings.HasSuffix(text, tail) {
			return true
		}
	}
	return false
}

// PairScore computes the net adjacency bonus for left followed by right.
// leftFinal marks the pair as the last in its path.
func (s *Scorer) PairScore(ctx context.Context, left, right models.Word, leftFinal bool) (Pair, error) {
	cfg := s.cfg.Load()

	best := Pair{}
	consider := func(score int, name string) {
		if score > best.Score {
			best = Pair{Score: score, Reason: name}
		}
	}

	lSeq, rSeq := left.Seq(), right.Seq()
	lText, rText := left.Text(), right.Text()

	if lSeq != 0 && rSeq != 0 {
		lNoun, err := s.isNoun(ctx, lSeq)
		if err != nil {
			return Pair{}, err
		}

		if lNoun {
			rRunes := len([]rune(rText))
			if nounParticles[rSeq] {
				consider(cfg.NounParticleBase+cfg.NounParticlePerLen*rRunes, "noun+prt")
			}
			if rSeq == seqCopulaDa {
				consider(cfg.NounDa, "noun+da")
			}
			if chuSeqs[rSeq] {
				consider(cfg.SuffixChu, "noun+chu")
			}
			if rSeq == seqTachi {
				consider(cfg.SuffixTachi, "noun+tachi")
			}
			if rSeq == seqBuri {
				consider(cfg.SuffixBuri, "noun+buri")
			}
			if rSeq == seqSei {
				consider(cfg.SuffixSei, "noun+sei")
			}
		}

		if (lSeq == seqNo || lSeq == seqN) && noDaCopulae[rSeq] {
			consider(cfg.NoDa, "no+da")
		}
		if lSeq == seqSouDemo && rSeq == seqNanda {
			consider(cfg.SouNanda, "sou+nanda")
		}
		if rSeq == seqNo {
			if ok, err := s.isNoAdjective(ctx, lSeq); err != nil {
				return Pair{}, err
			} else if ok {
				consider(cfg.NoAdjective, "adj-no+no")
			}
		}
		if rSeq == seqNaParticle || rSeq == seqNiParticle {
			if ok, err := s.isNaAdjective(ctx, lSeq); err != nil {
				return Pair{}, err
			} else if ok {
				consider(cfg.NaAdjective, "adj-na+na")
			}
		}
		if rSeq == seqTo {
			if ok, err := s.isToAdverb(ctx, lSeq); err != nil {
				return Pair{}, err
			} else if ok {
				consider(cfg.ToAdverbBase+cfg.ToAdverbPerLen*len([]rune(lText)), "adv-to+to")
			}
		}
		if lSeq == seqOPrefix {
			if ok, err := s.isNoun(ctx, rSeq); err != nil {
				return Pair{}, err
			} else if ok {
				consider(cfg.OPrefix, "o+noun")
			}
		}
		if kanjiPrefixSeqs[lSeq] {
			if ok, err := s.isNoun(ctx, rSeq); err != nil {
				return Pair{}, err
			} else if ok {
				consider(cfg.KanjiPrefix, "prefix+noun")
			}
		}
		if lSeq == seqNo && rSeq == seqToori {
			consider(cfg.NoToori, "no+toori")
		}
		if okiSeqs[rSeq] {
			if ok, err := s.isCounterPOS(ctx, lSeq); err != nil {
				return Pair{}, err
			} else if ok {
				consider(cfg.CounterOki, "ctr+oki")
			}
		}
		if rSeq == seqCopulaDesu {
			lNa, err := s.isNaAdjective(ctx, lSeq)
			if err != nil {
				return Pair{}, err
			}
			if lNoun || lNa {
				consider(cfg.NounDesu, "noun+desu")
			}
		}
		if lSeq == seqGa {
			rI, err := s.isIAdjective(ctx, rSeq)
			if err != nil {
				return Pair{}, err
			}
			rNa, err := s.isNaAdjective(ctx, rSeq)
			if err != nil {
				return Pair{}, err
			}
			if rI || rNa {
				consider(cfg.GaAdjective, "ga+adj")
			}
		}
		if nounParticles[lSeq] && lSeq != seqGa {
			rI, err := s.isIAdjective(ctx, rSeq)
			if err != nil {
				return Pair{}, err
			}
			rNa, err := s.isNaAdjective(ctx, rSeq)
			if err != nil {
				return Pair{}, err
			}
			if rI || rNa {
				consider(cfg.ParticleAdjective, "prt+adj")
			}
		}
		if rSeq == seqKara {
			if ok, err := s.isVerbOrAdj(ctx, lSeq); err != nil {
				return Pair{}, err
			} else if ok {
				consider(cfg.VerbKara, "verb+kara")
			}
		}
	}

	if rSeq != 0 && teAuxiliaries[rSeq] &&
		(strings.HasSuffix(lText, "て") || strings.HasSuffix(lText, "で")) {
		consider(cfg.TeAuxiliary, "te+aux")
	}
	if lSeq == seqShika && isNegativeWord(right) {
		consider(cfg.ShikaNegative, "shika+neg")
	}
	if ikenaiSeqs[rSeq] &&
		(strings.HasSuffix(lText, "ちゃ") || strings.HasSuffix(lText, "じゃ")) {
		consider(cfg.ShichaIkenai, "shicha+ikenai")
	}

	total := best

	// Penalties stack on top of the best synergy.
	lRunes, rRunes := []rune(lText), []rune(rText)
	if len(lRunes) == 1 && len(rRunes) == 1 &&
		chars.AllKana(lRunes) && chars.AllKana(rRunes) && rText != "と" {
		total.Score += cfg.ShortKanaPenalty
		total.Reason = joinReason(total.Reason, "short-kana")
	}
	if semiFinalPrt[lSeq] && !leftFinal {
		total.Score += cfg.SemiFinalPenalty
		total.Reason = joinReason(total.Reason, "semi-final")
	}

	return total, nil
}

func joinReason(a, b string) string {
	if a == "" {
		return b
	}
	return a + "+" + b
}
