package lexicon

import (
	"context"
	"fmt"

	"github.com/kotoba/wakachi/internal/models"
)

// The write API below is used by the dictionary importer and by test
// fixtures. Analysis code never calls it.

// InsertEntry inserts or replaces an entry row.
func (s *Store) InsertEntry(ctx context.Context, e models.Entry) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT OR REPLACE INTO entry (seq, content, root_p, n_kanji, n_kana, primary_nokanji)
	VALUES (?, ?, ?, ?, ?, ?)`,
		e.Seq, e.Content, e.Root, e.NKanji, e.NKana, e.PrimaryNoKanji)
	if err != nil {
		return fmt.Errorf("failed to insert entry %d: %w", e.Seq, err)
	}
	return nil
}

// InsertReading inserts a kanji or kana reading row depending on r.Kind.
func (s *Store) InsertReading(ctx context.Context, r models.Reading) error {
	table, bestCol := "kanji_text", "best_kana"
	if r.Kind == models.KanaReading {
		table, bestCol = "kana_text", "best_kanji"
	}
	var common interface{}
	if r.Common >= 0 {
		common = r.Common
	}
	q := fmt.Sprintf(`
	INSERT INTO %s (seq, text, ord, common, conjugate_p, nokanji, %s)
	VALUES (?, ?, ?, ?, ?, ?, ?)`, table, bestCol)
	_, err := s.db.ExecContext(ctx, q,
		r.Seq, r.Text, r.Ord, common, r.Conjugate, r.NoKanji, r.BestPair)
	if err != nil {
		return fmt.Errorf("failed to insert reading %q: %w", r.Text, err)
	}
	return nil
}

// InsertSense inserts a sense with its glosses and POS tags.
func (s *Store) InsertSense(ctx context.Context, seq int64, ord int, pos []string, glosses ...string) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO sense (seq, ord) VALUES (?, ?)", seq, ord)
	if err != nil {
		return fmt.Errorf("failed to insert sense: %w", err)
	}
	senseID, err := res.LastInsertId()
	if err != nil {
		return err
	}
	for i, g := range glosses {
		if _, err := s.db.ExecContext(ctx,
			"INSERT INTO gloss (sense_id, text, ord) VALUES (?, ?, ?)", senseID, g, i); err != nil {
			return fmt.Errorf("failed to insert gloss: %w", err)
		}
	}
	for i, p := range pos {
		if _, err := s.db.ExecContext(ctx,
			"INSERT INTO sense_prop (sense_id, seq, tag, text, ord) VALUES (?, ?, 'pos', ?, ?)",
			senseID, seq, p, i); err != nil {
			return fmt.Errorf("failed to insert pos tag: %w", err)
		}
	}
	return nil
}

// InsertConjugation inserts a conjugation link with its properties and
// source reading pairs, returning the link id.
func (s *Store) InsertConjugation(ctx context.Context, link models.ConjugationLink) (int64, error) {
	var via interface{}
	if link.Via != 0 {
		via = link.Via
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO conjugation (seq, from_seq, via) VALUES (?, ?, ?)",
		link.Seq, link.FromSeq, via)
	if err != nil {
		return 0, fmt.Errorf("failed to insert conjugation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for _, p := range link.Props {
		if _, err := s.db.ExecContext(ctx,
			"INSERT INTO conj_prop (conj_id, conj_type, pos, neg, fml) VALUES (?, ?, ?, ?, ?)",
			id, p.ConjType, p.POS, p.Neg, p.Fml); err != nil {
			return 0, fmt.Errorf("failed to insert conjugation prop: %w", err)
		}
	}
	for _, sr := range link.SrcMap {
		if _, err := s.db.ExecContext(ctx,
			"INSERT INTO conj_source_reading (conj_id, text, source_text) VALUES (?, ?, ?)",
			id, sr.Text, sr.SourceText); err != nil {
			return 0, fmt.Errorf("failed to insert source reading: %w", err)
		}
	}
	return id, nil
}

// InsertConjugatedForm inserts a row into the pre-expanded conjugation
// lookup table.
func (s *Store) InsertConjugatedForm(ctx context.Context, f models.ConjugatedForm) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO conj_lookup (seq, text, reading, conj_type, pos, neg, fml, source_text, source_reading)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.Seq, f.Text, f.Reading, f.ConjType, f.POS, f.Neg, f.Fml, f.SourceText, f.SourceReading)
	if err != nil {
		return fmt.Errorf("failed to insert conjugated form %q: %w", f.Text, err)
	}
	return nil
}
