package segment

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kotoba/wakachi/internal/chars"
	"github.com/kotoba/wakachi/internal/lexicon"
	"github.com/kotoba/wakachi/internal/models"
	"github.com/kotoba/wakachi/internal/scoring"
	"github.com/kotoba/wakachi/internal/suffix"
)

// ErrEmptyInput is returned when the text to segment is empty after
// normalization.
var ErrEmptyInput = errors.New("segment: empty input")

// Segmenter ties the lexicon, the suffix table and the scorer together
// into the public segmentation API.
type Segmenter struct {
	store  *lexicon.Store
	scorer *scoring.Scorer
	table  *suffix.Table
	log    *zap.Logger
}

// New builds a Segmenter. A nil logger disables logging.
func New(store *lexicon.Store, scorer *scoring.Scorer, table *suffix.Table, log *zap.Logger) *Segmenter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Segmenter{store: store, scorer: scorer, table: table, log: log}
}

// Warm preloads the suffix table so the first request does not pay for it.
func (s *Segmenter) Warm(ctx context.Context) error {
	return s.table.Warm(ctx)
}

// Scorer exposes the scorer for configuration reloads.
func (s *Segmenter) Scorer() *scoring.Scorer { return s.scorer }

// Segment tokenizes text and returns up to limit ranked segmentations,
// best first. Every returned segmentation tiles the whole input; spans
// with no lexicon match are covered by gap records.
func (s *Segmenter) Segment(ctx context.Context, text string, limit int) ([]models.Segmentation, error) {
	cfg := s.scorer.Config()
	if limit <= 0 {
		limit = cfg.PathLimit
	}

	normalized := chars.Normalize(text)
	runes := []rune(normalized)
	if len(runes) == 0 {
		return nil, ErrEmptyInput
	}

	if err := s.table.Warm(ctx); err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}

	srch := &search{store: s.store, scorer: s.scorer, table: s.table, runes: runes}

	lists, err := srch.joinSubstrings(ctx)
	if err != nil {
		return nil, fmt.Errorf("segment %q: %w", normalized, err)
	}
	items, err := srch.findBestPaths(ctx, lists, limit)
	if err != nil {
		return nil, fmt.Errorf("segment %q: %w", normalized, err)
	}

	out := make([]models.Segmentation, 0, len(items))
	for _, item := range items {
		words := srch.fillPath(item.Path, lists)
		if err := checkTiling(words, len(runes)); err != nil {
			return nil, fmt.Errorf("segment %q: %w", normalized, err)
		}
		out = append(out, models.Segmentation{Words: words, Score: item.Score})
	}

	s.log.Debug("segmented text",
		zap.Int("runes", len(runes)),
		zap.Int("spans", len(lists)),
		zap.Int("paths", len(out)))
	return out, nil
}

// Best returns only the top segmentation.
func (s *Segmenter) Best(ctx context.Context, text string) (models.Segmentation, error) {
	segs, err := s.Segment(ctx, text, 1)
	if err != nil {
		return models.Segmentation{}, err
	}
	return segs[0], nil
}

// checkTiling verifies that the non-alternative records cover [0, n)
// contiguously.
func checkTiling(words []models.WordRecord, n int) error {
	pos := 0
	for _, w := range words {
		if w.Alternative {
			continue
		}
		if w.Start != pos {
			return fmt.Errorf("path gap at rune %d (next word starts at %d)", pos, w.Start)
		}
		pos = w.End
	}
	if pos != n {
		return fmt.Errorf("path stops at rune %d of %d", pos, n)
	}
	return nil
}
