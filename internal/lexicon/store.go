// Package lexicon provides the read-only query surface over the dictionary
// store: surface-text lookup, conjugation lookup, senses and POS tags. The
// store is a SQLite database pre-populated by the importer; analysis never
// writes to it.
package lexicon

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kotoba/wakachi/internal/chars"
	"github.com/kotoba/wakachi/internal/models"
)

// MaxWordLength bounds candidate word length in runes.
const MaxWordLength = 50

// Store wraps the lexicon database. Safe for concurrent readers; the POS tag
// cache is the only mutable state and is guarded internally.
type Store struct {
	db *sql.DB

	posMu  sync.RWMutex
	posTag map[int64][]string
}

// Open opens (or creates) the lexicon database at dbPath and ensures the
// schema exists. Parent directories are created if they do not exist.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create lexicon directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open lexicon: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db, posTag: make(map[int64][]string)}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS entry (
		seq INTEGER PRIMARY KEY,
		content TEXT,
		root_p INTEGER NOT NULL DEFAULT 0,
		n_kanji INTEGER NOT NULL DEFAULT 0,
		n_kana INTEGER NOT NULL DEFAULT 0,
		primary_nokanji INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS kanji_text (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seq INTEGER NOT NULL,
		text TEXT NOT NULL,
		ord INTEGER NOT NULL DEFAULT 0,
		common INTEGER,
		conjugate_p INTEGER NOT NULL DEFAULT 1,
		nokanji INTEGER NOT NULL DEFAULT 0,
		best_kana TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_kanji_text_text ON kanji_text(text);
	CREATE INDEX IF NOT EXISTS idx_kanji_text_seq ON kanji_text(seq);

	CREATE TABLE IF NOT EXISTS kana_text (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seq INTEGER NOT NULL,
		text TEXT NOT NULL,
		ord INTEGER NOT NULL DEFAULT 0,
		common INTEGER,
		conjugate_p INTEGER NOT NULL DEFAULT 1,
		nokanji INTEGER NOT NULL DEFAULT 0,
		best_kanji TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_kana_text_text ON kana_text(text);
	CREATE INDEX IF NOT EXISTS idx_kana_text_seq ON kana_text(seq);

	CREATE TABLE IF NOT EXISTS sense (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seq INTEGER NOT NULL,
		ord INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_sense_seq ON sense(seq);

	CREATE TABLE IF NOT EXISTS gloss (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sense_id INTEGER NOT NULL,
		text TEXT NOT NULL,
		ord INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_gloss_sense ON gloss(sense_id);

	CREATE TABLE IF NOT EXISTS sense_prop (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sense_id INTEGER NOT NULL,
		seq INTEGER NOT NULL,
		tag TEXT NOT NULL,
		text TEXT NOT NULL,
		ord INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_sense_prop_seq_tag ON sense_prop(seq, tag);

	CREATE TABLE IF NOT EXISTS conjugation (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seq INTEGER NOT NULL,
		from_seq INTEGER NOT NULL,
		via INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_conjugation_seq ON conjugation(seq);
	CREATE INDEX IF NOT EXISTS idx_conjugation_from ON conjugation(from_seq);

	CREATE TABLE IF NOT EXISTS conj_prop (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		conj_id INTEGER NOT NULL,
		conj_type INTEGER NOT NULL,
		pos TEXT NOT NULL DEFAULT '',
		neg INTEGER NOT NULL DEFAULT 0,
		fml INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_conj_prop_conj ON conj_prop(conj_id);

	CREATE TABLE IF NOT EXISTS conj_source_reading (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		conj_id INTEGER NOT NULL,
		text TEXT NOT NULL,
		source_text TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_conj_src_conj ON conj_source_reading(conj_id);

	CREATE TABLE IF NOT EXISTS conj_lookup (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seq INTEGER NOT NULL,
		text TEXT NOT NULL,
		reading TEXT NOT NULL,
		conj_type INTEGER NOT NULL,
		pos TEXT NOT NULL DEFAULT '',
		neg INTEGER NOT NULL DEFAULT 0,
		fml INTEGER NOT NULL DEFAULT 0,
		source_text TEXT NOT NULL,
		source_reading TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_conj_lookup_text ON conj_lookup(text);
	CREATE INDEX IF NOT EXISTS idx_conj_lookup_seq ON conj_lookup(seq);
	`
	_, err := db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func nullToRank(n sql.NullInt64) int {
	if !n.Valid {
		return -1
	}
	return int(n.Int64)
}

func scanReading(rows *sql.Rows, kind models.ReadingKind) (models.Reading, error) {
	var r models.Reading
	var common sql.NullInt64
	var best sql.NullString
	if err := rows.Scan(&r.ID, &r.Seq, &r.Text, &r.Ord, &common, &r.Conjugate, &r.NoKanji, &best); err != nil {
		return r, err
	}
	r.Kind = kind
	r.Common = nullToRank(common)
	r.BestPair = best.String
	return r, nil
}

const readingCols = "id, seq, text, ord, common, conjugate_p, nokanji"

// FindWord returns every reading whose text matches word exactly. Kana
// strings search the kana table, everything else the kanji table. When
// rootOnly is set, only readings of root (non-derived) entries are returned.
func (s *Store) FindWord(ctx context.Context, word string, rootOnly bool) ([]models.Reading, error) {
	if len([]rune(word)) > MaxWordLength {
		return nil, nil
	}

	table, bestCol, kind := "kanji_text", "best_kana", models.KanjiReading
	if chars.AllKana([]rune(word)) {
		table, bestCol, kind = "kana_text", "best_kanji", models.KanaReading
	}

	cols := "wt." + strings.ReplaceAll(readingCols, ", ", ", wt.")
	q := fmt.Sprintf("SELECT %s, wt.%s FROM %s wt WHERE wt.text = ?", cols, bestCol, table)
	if rootOnly {
		q = fmt.Sprintf(
			"SELECT %s, wt.%s FROM %s wt INNER JOIN entry ON wt.seq = entry.seq WHERE wt.text = ? AND entry.root_p = 1",
			cols, bestCol, table)
	}

	rows, err := s.db.QueryContext(ctx, q, word)
	if err != nil {
		return nil, fmt.Errorf("find word %q: %w", word, err)
	}
	defer rows.Close()

	var out []models.Reading
	for rows.Next() {
		r, err := scanReading(rows, kind)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// SubstringReadings batch-resolves a set of candidate substrings against the
// kanji and kana tables, returning readings keyed by surface text.
func (s *Store) SubstringReadings(ctx context.Context, kanaKeys, kanjiKeys []string) (map[string][]models.Reading, error) {
	out := make(map[string][]models.Reading)

	fetch := func(table, bestCol string, kind models.ReadingKind, keys []string) error {
		if len(keys) == 0 {
			return nil
		}
		args := make([]interface{}, len(keys))
		for i, k := range keys {
			args[i] = k
		}
		q := fmt.Sprintf("SELECT %s, %s FROM %s WHERE text IN (%s)",
			readingCols, bestCol, table, placeholders(len(keys)))
		rows, err := s.db.QueryContext(ctx, q, args...)
		if err != nil {
			return fmt.Errorf("substring lookup: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			r, err := scanReading(rows, kind)
			if err != nil {
				return err
			}
			out[r.Text] = append(out[r.Text], r)
		}
		return rows.Err()
	}

	if err := fetch("kana_text", "best_kanji", models.KanaReading, kanaKeys); err != nil {
		return nil, err
	}
	if err := fetch("kanji_text", "best_kana", models.KanjiReading, kanjiKeys); err != nil {
		return nil, err
	}
	return out, nil
}

// ConjugatedForms batch-resolves substrings against the pre-expanded
// conjugation table, keyed by surface text. Each (text, seq, type, neg, fml)
// combination is returned once, preferring rows whose source text is a kanji
// spelling; commonness is read from the source entry's primary kana reading.
func (s *Store) ConjugatedForms(ctx context.Context, keys []string) (map[string][]models.ConjugatedForm, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	q := fmt.Sprintf(`
	SELECT id, seq, text, reading, conj_type, pos, neg, fml, source_text, source_reading, common
	FROM (
		SELECT c.id, c.seq, c.text, c.reading, c.conj_type, c.pos, c.neg, c.fml,
		       c.source_text, c.source_reading,
		       COALESCE(ek.common, k.common, n.common) AS common,
		       ROW_NUMBER() OVER (
		           PARTITION BY c.text, c.seq, c.conj_type, c.neg, c.fml
		           ORDER BY CASE WHEN k.text IS NOT NULL THEN 0 ELSE 1 END
		       ) AS rn
		FROM conj_lookup c
		LEFT JOIN kanji_text k ON c.seq = k.seq AND c.source_text = k.text
		LEFT JOIN kana_text n ON c.seq = n.seq AND c.source_text = n.text
		LEFT JOIN kana_text ek ON c.seq = ek.seq AND ek.ord = 0
		WHERE c.text IN (%s)
	) WHERE rn = 1`, placeholders(len(keys)))

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("conjugated forms lookup: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]models.ConjugatedForm)
	for rows.Next() {
		var f models.ConjugatedForm
		var common sql.NullInt64
		if err := rows.Scan(&f.ID, &f.Seq, &f.Text, &f.Reading, &f.ConjType, &f.POS,
			&f.Neg, &f.Fml, &f.SourceText, &f.SourceReading, &common); err != nil {
			return nil, err
		}
		f.Common = nullToRank(common)
		out[f.Text] = append(out[f.Text], f)
	}
	return out, rows.Err()
}

// FormsWithConjType returns conjugated forms of word whose conjugation type
// is one of types. Used by the suffix matcher to find stems (te-form,
// continuative, negative stem).
func (s *Store) FormsWithConjType(ctx context.Context, word string, types ...int) ([]models.ConjugatedForm, error) {
	if len(types) == 0 {
		return nil, nil
	}
	args := []interface{}{word}
	for _, t := range types {
		args = append(args, t)
	}

	q := fmt.Sprintf(`
	SELECT c.id, c.seq, c.text, c.reading, c.conj_type, c.pos, c.neg, c.fml,
	       c.source_text, c.source_reading,
	       COALESCE(ek.common, k.common) AS common
	FROM conj_lookup c
	LEFT JOIN kanji_text k ON c.seq = k.seq AND c.source_text = k.text
	LEFT JOIN kana_text ek ON c.seq = ek.seq AND ek.ord = 0
	WHERE c.text = ? AND c.conj_type IN (%s)`, placeholders(len(types)))

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("conj type lookup %q: %w", word, err)
	}
	defer rows.Close()

	var out []models.ConjugatedForm
	for rows.Next() {
		var f models.ConjugatedForm
		var common sql.NullInt64
		if err := rows.Scan(&f.ID, &f.Seq, &f.Text, &f.Reading, &f.ConjType, &f.POS,
			&f.Neg, &f.Fml, &f.SourceText, &f.SourceReading, &common); err != nil {
			return nil, err
		}
		f.Common = nullToRank(common)
		out = append(out, f)
	}
	return out, rows.Err()
}

// NegativeForms returns conjugated forms of word carrying a negative
// conjugation property. Used by the suffix matcher for です/でしょう
// attachment and the ない-contraction rules.
func (s *Store) NegativeForms(ctx context.Context, word string) ([]models.ConjugatedForm, error) {
	q := `
	SELECT c.id, c.seq, c.text, c.reading, c.conj_type, c.pos, c.neg, c.fml,
	       c.source_text, c.source_reading,
	       COALESCE(ek.common, k.common) AS common
	FROM conj_lookup c
	LEFT JOIN kanji_text k ON c.seq = k.seq AND c.source_text = k.text
	LEFT JOIN kana_text ek ON c.seq = ek.seq AND ek.ord = 0
	WHERE c.text = ? AND c.neg = 1`

	rows, err := s.db.QueryContext(ctx, q, word)
	if err != nil {
		return nil, fmt.Errorf("negative form lookup %q: %w", word, err)
	}
	defer rows.Close()

	var out []models.ConjugatedForm
	for rows.Next() {
		var f models.ConjugatedForm
		var common sql.NullInt64
		if err := rows.Scan(&f.ID, &f.Seq, &f.Text, &f.Reading, &f.ConjType, &f.POS,
			&f.Neg, &f.Fml, &f.SourceText, &f.SourceReading, &common); err != nil {
			return nil, err
		}
		f.Common = nullToRank(common)
		out = append(out, f)
	}
	return out, rows.Err()
}

// ConjugationLink returns the conjugation link for a derived sequence id, or
// nil if seq is a base entry. Chained ("via") links resolve through the
// intermediate entry.
func (s *Store) ConjugationLink(ctx context.Context, seq int64) (*models.ConjugationLink, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, seq, from_seq, COALESCE(via, 0) FROM conjugation WHERE seq = ? ORDER BY id LIMIT 1", seq)

	var link models.ConjugationLink
	if err := row.Scan(&link.ID, &link.Seq, &link.FromSeq, &link.Via); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("conjugation link %d: %w", seq, err)
	}

	props, err := s.db.QueryContext(ctx,
		"SELECT conj_type, pos, neg, fml FROM conj_prop WHERE conj_id = ? ORDER BY conj_type", link.ID)
	if err != nil {
		return nil, fmt.Errorf("conjugation props %d: %w", seq, err)
	}
	defer props.Close()
	for props.Next() {
		var p models.ConjProperty
		if err := props.Scan(&p.ConjType, &p.POS, &p.Neg, &p.Fml); err != nil {
			return nil, err
		}
		link.Props = append(link.Props, p)
	}
	if err := props.Err(); err != nil {
		return nil, err
	}

	srcs, err := s.db.QueryContext(ctx,
		"SELECT text, source_text FROM conj_source_reading WHERE conj_id = ?", link.ID)
	if err != nil {
		return nil, fmt.Errorf("conjugation sources %d: %w", seq, err)
	}
	defer srcs.Close()
	for srcs.Next() {
		var p models.SourceReadingPair
		if err := srcs.Scan(&p.Text, &p.SourceText); err != nil {
			return nil, err
		}
		link.SrcMap = append(link.SrcMap, p)
	}
	return &link, srcs.Err()
}

// Entry returns the entry for seq, or nil if absent.
func (s *Store) Entry(ctx context.Context, seq int64) (*models.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT seq, COALESCE(content, ''), root_p, n_kanji, n_kana, primary_nokanji FROM entry WHERE seq = ?", seq)
	var e models.Entry
	if err := row.Scan(&e.Seq, &e.Content, &e.Root, &e.NKanji, &e.NKana, &e.PrimaryNoKanji); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("entry %d: %w", seq, err)
	}
	return &e, nil
}

// POSTags returns the normalized (lowercased) POS tags of an entry, cached
// after first lookup. The cache only grows and entries are immutable, so
// concurrent readers are safe.
func (s *Store) POSTags(ctx context.Context, seq int64) ([]string, error) {
	s.posMu.RLock()
	tags, ok := s.posTag[seq]
	s.posMu.RUnlock()
	if ok {
		return tags, nil
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT text FROM sense_prop WHERE seq = ? AND tag = 'pos' ORDER BY ord", seq)
	if err != nil {
		return nil, fmt.Errorf("pos tags %d: %w", seq, err)
	}
	defer rows.Close()

	tags = []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		tags = append(tags, strings.ToLower(t))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.posMu.Lock()
	s.posTag[seq] = tags
	s.posMu.Unlock()
	return tags, nil
}

// Senses returns the senses of an entry with glosses joined per sense.
func (s *Store) Senses(ctx context.Context, seq int64) ([]models.Sense, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT s.id, s.seq, s.ord, COALESCE(GROUP_CONCAT(g.text, '; '), '')
	FROM sense s
	LEFT JOIN gloss g ON g.sense_id = s.id
	WHERE s.seq = ?
	GROUP BY s.id
	ORDER BY s.ord`, seq)
	if err != nil {
		return nil, fmt.Errorf("senses %d: %w", seq, err)
	}
	defer rows.Close()

	var senses []models.Sense
	for rows.Next() {
		var sn models.Sense
		if err := rows.Scan(&sn.ID, &sn.Seq, &sn.Ord, &sn.Gloss); err != nil {
			return nil, err
		}
		senses = append(senses, sn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(senses) > 0 {
		pos, err := s.POSTags(ctx, seq)
		if err != nil {
			return nil, err
		}
		for i := range senses {
			senses[i].POS = pos
		}
	}
	return senses, nil
}

// KanaForm is one kana surface form of an entry, tagged with whether it is
// the root form or a conjugation of it.
type KanaForm struct {
	Reading models.Reading
	Conj    string // "root" or "conj"
}

// KanaForms returns the kana forms of seq and of every entry derived from it
// by conjugation. Used to build the suffix surface table.
func (s *Store) KanaForms(ctx context.Context, seq int64) ([]KanaForm, error) {
	var out []KanaForm

	direct, err := s.kanaBySeq(ctx, "SELECT "+readingCols+", best_kanji FROM kana_text WHERE seq = ? ORDER BY ord", seq)
	if err != nil {
		return nil, err
	}
	for _, r := range direct {
		out = append(out, KanaForm{Reading: r, Conj: "root"})
	}

	derived, err := s.kanaBySeq(ctx, `
	SELECT kt.`+strings.ReplaceAll(readingCols, ", ", ", kt.")+`, kt.best_kanji
	FROM kana_text kt
	INNER JOIN conjugation c ON kt.seq = c.seq
	WHERE c.from_seq = ?
	ORDER BY kt.seq, kt.ord`, seq)
	if err != nil {
		return nil, err
	}
	for _, r := range derived {
		out = append(out, KanaForm{Reading: r, Conj: "conj"})
	}
	return out, nil
}

// KanaFormExact returns the kana reading of seq with the given text, or nil.
func (s *Store) KanaFormExact(ctx context.Context, seq int64, text string) (*models.Reading, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+readingCols+", best_kanji FROM kana_text WHERE seq = ? AND text = ? LIMIT 1", seq, text)
	if err != nil {
		return nil, fmt.Errorf("kana form %d %q: %w", seq, text, err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	r, err := scanReading(rows, models.KanaReading)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) kanaBySeq(ctx context.Context, q string, seq int64) ([]models.Reading, error) {
	rows, err := s.db.QueryContext(ctx, q, seq)
	if err != nil {
		return nil, fmt.Errorf("kana forms %d: %w", seq, err)
	}
	defer rows.Close()

	var out []models.Reading
	for rows.Next() {
		r, err := scanReading(rows, models.KanaReading)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
