// Package suffix builds compound candidates by attaching grammatical
// suffixes (te-form auxiliaries, たい, すぎる and the rest of the attachable
// set) to stems found in the lexicon.
package suffix

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/kotoba/wakachi/internal/chars"
	"github.com/kotoba/wakachi/internal/lexicon"
	"github.com/kotoba/wakachi/internal/models"
)

// Entry sequence ids of the auxiliary and particle entries whose kana forms
// seed the suffix table.
const (
	seqChau    = 2013800 // ちゃう
	seqChimau  = 2210750 // ちまう
	seqHa      = 2028920 // は
	seqTai     = 2017560 // たい
	seqNikui   = 2772730 // にくい
	seqOru     = 1577985 // おる
	seqAru     = 1296400 // ある
	seqIru     = 1577980 // いる
	seqKuru    = 1547720 // くる
	seqOku     = 1421850 // おく
	seqToku    = 2108590 // とく
	seqShimau  = 1305380 // しまう
	seqKureru  = 1269130 // くれる
	seqMorau   = 1535910 // もらう
	seqItadaku = 1587290 // いただく
	seqIku     = 1578850 // いく
	seqII      = 2820690 // いい
	seqMo      = 2028940 // も
	seqKudasai = 1184270 // ください
	seqSuru    = 1157170 // する
	seqItasu   = 1421900 // いたす
	seqSareru  = 2269820 // される
	seqSaseru  = 1005160 // させる
	seqSou     = 1006610 // そう
	seqSouNee  = 2141080 // そうにない
	seqDarou   = 1928670 // だろう
	seqSugiru  = 1195970 // すぎる
	seqSa      = 2029120 // さ
	seqTsutsu  = 1008120 // つつ
	seqTsutsuA = 2027910 // つつある
	seqUru     = 1454500 // うる
	seqNaru    = 1375610 // なる
	seqYagaru  = 1012740 // やがる
	seqRa      = 2067770 // ら
	seqRashii  = 1013240 // らしい
	seqDesu    = 1628500 // です
	seqDeshou  = 1008420 // でしょう
	seqToSuru  = 2136890 // とする
	seqKurai   = 1154340 // くらい
	seqGaru    = 1631750 // がる
	seqGachi   = 2016470 // がち
	seqGe      = 2006580 // げ
	seqMe      = 1604890 // め
	seqGai     = 2606690 // がい
)

// classDescriptions maps suffix classes to reader-facing glosses.
var classDescriptions = map[string]string{
	"chau":      "indicates completion (to finish ...)",
	"ha":        "topic marker particle",
	"tai":       "want to... / would like to...",
	"iru":       "indicates continuing action (to be ...ing)",
	"oru":       "indicates continuing action (to be ...ing) (humble)",
	"aru":       "indicates completion / finished action",
	"kuru":      "indicates action that had been continuing up till now / came to be",
	"oku":       "to do in advance / to leave in the current state expecting a later change",
	"kureru":    "(asking) to do something for one",
	"morau":     "(asking) to get somebody to do something",
	"itadaku":   "(asking) to get somebody to do something (polite)",
	"iku":       "is becoming / action starting now and continuing",
	"suru":      "makes a verb from a noun",
	"itasu":     "makes a verb from a noun (humble)",
	"sareru":    "makes a verb from a noun (honorific or passive)",
	"saseru":    "let/make someone/something do ...",
	"rou":       "probably / it seems that... / I guess ...",
	"ii":        "it's ok if ... / is it ok if ...?",
	"mo":        "even if ...",
	"sugiru":    "to be too (much) ...",
	"nikui":     "difficult to...",
	"sa":        "-ness (degree or condition of adjective)",
	"tsutsu":    "while ... / in the process of ...",
	"tsutsuaru": "to be doing ... / to be in the process of doing ...",
	"uru":       "can ... / to be able to ...",
	"sou":       "looking like ... / seeming ...",
	"nai":       "negative suffix",
	"ra":        "pluralizing suffix (not polite)",
	"kudasai":   "please do ...",
	"yagaru":    "indicates disdain or contempt",
	"naru":      "to become ...",
	"desu":      "formal copula",
	"desho":     "it seems/perhaps/don't you think?",
	"tosuru":    "to try to .../to be about to...",
	"garu":      "to feel .../have a ... impression of someone",
	"me":        "somewhat/-ish",
	"gai":       "worth it to ...",
}

// ClassDescription returns the gloss for a suffix class, or "".
func ClassDescription(class string) string { return classDescriptions[class] }

// Form is one attachable kana surface form.
type Form struct {
	Seq    int64
	Text   string
	Common int
	Conj   string // "root" or "conj"
}

// cached pairs a handler keyword with the form it attaches; abbreviations
// carry a nil form.
type cached struct {
	keyword string
	form    *Form
}

// Match is one suffix found at a position in the input.
type Match struct {
	Text    string
	Keyword string
	Form    *Form
}

// Table resolves suffix surface forms against the lexicon and builds
// compound candidates. Warm must complete before analysis; the cache is
// immutable afterwards and safe for concurrent readers.
type Table struct {
	store *lexicon.Store
	log   *zap.Logger

	once    sync.Once
	warmErr error
	entries map[string][]cached
	class   map[int64]string
}

// NewTable creates a suffix table over store.
func NewTable(store *lexicon.Store, log *zap.Logger) *Table {
	if log == nil {
		log = zap.NewNop()
	}
	return &Table{store: store, log: log}
}

// Warm builds the suffix cache from the lexicon. Idempotent.
func (t *Table) Warm(ctx context.Context) error {
	t.once.Do(func() { t.warmErr = t.build(ctx) })
	return t.warmErr
}

func (t *Table) put(text string, v cached, join bool) {
	if join {
		t.entries[text] = append(t.entries[text], v)
		return
	}
	t.entries[text] = []cached{v}
}

func (t *Table) loadForm(keyword string, f *Form, text, class string, join bool) {
	if f == nil {
		return
	}
	if text == "" {
		text = f.Text
	}
	t.put(text, cached{keyword: keyword, form: f}, join)
	if class == "" {
		class = keyword
	}
	t.class[f.Seq] = class
}

func (t *Table) loadConjs(ctx context.Context, keyword string, seq int64, class string) error {
	forms, err := t.store.KanaForms(ctx, seq)
	if err != nil {
		return err
	}
	for _, kf := range forms {
		f := formOf(kf)
		t.loadForm(keyword, f, "", class, false)
	}
	return nil
}

func (t *Table) loadExact(ctx context.Context, keyword string, seq int64, formText, text, class string) error {
	r, err := t.store.KanaFormExact(ctx, seq, formText)
	if err != nil {
		return err
	}
	if r == nil {
		return nil
	}
	f := &Form{Seq: r.Seq, Text: r.Text, Common: r.Common, Conj: "root"}
	t.loadForm(keyword, f, text, class, false)
	return nil
}

func (t *Table) loadAbbr(keyword, text string, join bool) {
	t.put(text, cached{keyword: keyword}, join)
}

func formOf(kf lexicon.KanaForm) *Form {
	return &Form{
		Seq:    kf.Reading.Seq,
		Text:   kf.Reading.Text,
		Common: kf.Reading.Common,
		Conj:   kf.Conj,
	}
}

func (t *Table) build(ctx context.Context) error {
	t.entries = make(map[string][]cached)
	t.class = make(map[int64]string)

	type conjLoad struct {
		keyword string
		seq     int64
		class   string
	}
	conjLoads := []conjLoad{
		{"chau", seqChau, ""},
		{"chau", seqChimau, ""},
		{"tai", seqTai, ""},
		{"ren-", seqNikui, "nikui"},
		{"te", seqOru, "oru"},
		{"te", seqAru, "aru"},
		{"te", seqKuru, "kuru"},
		{"te", seqOku, "oku"},
		{"to", seqToku, "oku"},
		{"te", seqShimau, "chau"},
		{"te+space", seqKureru, "kureru"},
		{"te+space", seqMorau, "morau"},
		{"te+space", seqItadaku, "itadaku"},
		{"suru", seqSuru, ""},
		{"suru", seqItasu, "itasu"},
		{"suru", seqSareru, "sareru"},
		{"suru", seqSaseru, "saseru"},
		{"sou", seqSou, ""},
		{"sou+", seqSouNee, ""},
		{"sugiru", seqSugiru, ""},
		{"ren", seqTsutsuA, "tsutsuaru"},
		{"adv", seqNaru, "naru"},
		{"teren", seqYagaru, "yagaru"},
		{"rashii", seqRashii, ""},
		{"tosuru", seqToSuru, ""},
		{"garu", seqGaru, ""},
	}
	for _, l := range conjLoads {
		if err := t.loadConjs(ctx, l.keyword, l.seq, l.class); err != nil {
			return fmt.Errorf("suffix load %d: %w", l.seq, err)
		}
	}

	// ちゃ/じゃ contract the topic particle は.
	if err := t.loadExactJoin(ctx, "chau", seqHa, "は", "ちゃ", "ha", true); err != nil {
		return err
	}
	if err := t.loadExactJoin(ctx, "chau", seqHa, "は", "じゃ", "ha", false); err != nil {
		return err
	}

	// いる gets dedicated handling: long forms score higher and also
	// register their tail (without the leading い) as a weaker match.
	iruForms, err := t.store.KanaForms(ctx, seqIru)
	if err != nil {
		return fmt.Errorf("suffix load %d: %w", seqIru, err)
	}
	for _, kf := range iruForms {
		f := formOf(kf)
		runes := []rune(f.Text)
		keyword := "teiru"
		if len(runes) > 1 {
			keyword = "teiru+"
		}
		t.put(f.Text, cached{keyword: keyword, form: f}, false)
		t.class[f.Seq] = "iru"
		if len(runes) > 1 {
			short := string(runes[1:])
			if _, ok := t.entries[short]; !ok {
				t.put(short, cached{keyword: "teiru", form: f}, false)
			}
		}
	}

	// いく likewise registers both full and い-less forms.
	ikuForms, err := t.store.KanaForms(ctx, seqIku)
	if err != nil {
		return fmt.Errorf("suffix load %d: %w", seqIku, err)
	}
	for _, kf := range ikuForms {
		f := formOf(kf)
		runes := []rune(f.Text)
		if len(runes) == 0 || runes[0] != 'い' {
			continue
		}
		t.put(f.Text, cached{keyword: "te", form: f}, false)
		t.class[f.Seq] = "iku"
		if len(runes) > 1 {
			short := string(runes[1:])
			if _, ok := t.entries[short]; !ok {
				t.put(short, cached{keyword: "te", form: f}, false)
			}
		}
	}

	type exactLoad struct {
		keyword  string
		seq      int64
		formText string
		text     string
		class    string
	}
	exactLoads := []exactLoad{
		{"teii", seqII, "いい", "", "ii"},
		{"te", seqMo, "も", "", "mo"},
		{"kudasai", seqKudasai, "ください", "", ""},
		{"rou", seqDarou, "だろう", "ろう", ""},
		{"sa", seqSa, "さ", "", ""},
		{"ren", seqTsutsu, "つつ", "", "tsutsu"},
		{"ren", seqUru, "うる", "", "uru"},
		{"ra", seqRa, "ら", "", ""},
		{"desu", seqDesu, "です", "", ""},
		{"desho", seqDeshou, "でしょう", "", ""},
		{"desho", seqDeshou, "でしょ", "", ""},
		{"kurai", seqKurai, "くらい", "", ""},
		{"kurai", seqKurai, "ぐらい", "", ""},
		{"ren", seqGachi, "がち", "", "gachi"},
		{"iadj", seqGe, "げ", "", ""},
		{"iadj", seqMe, "め", "", "me"},
		{"ren-", seqGai, "がい", "", "gai"},
	}
	for _, l := range exactLoads {
		if err := t.loadExact(ctx, l.keyword, l.seq, l.formText, l.text, l.class); err != nil {
			return fmt.Errorf("suffix load %d: %w", l.seq, err)
		}
	}

	for _, text := range []string{"ねえ", "ねぇ", "ねー"} {
		t.loadAbbr("nai", text, false)
	}
	for _, text := range []string{"ず", "ざる", "ぬ"} {
		t.loadAbbr("nai-x", text, false)
	}
	t.loadAbbr("nai-n", "ん", false)
	t.loadAbbr("nakereba", "なきゃ", false)
	t.loadAbbr("nakereba", "なくちゃ", false)

	t.loadAbbr("teba", "ちゃ", true)
	t.loadAbbr("reba", "りゃ", false)
	t.loadAbbr("keba", "きゃ", false)
	t.loadAbbr("geba", "ぎゃ", false)
	t.loadAbbr("neba", "にゃ", false)
	t.loadAbbr("beba", "びゃ", false)
	t.loadAbbr("meba", "みゃ", false)
	t.loadAbbr("seba", "しゃ", false)

	t.loadAbbr("shimashou", "しましょ", false)
	t.loadAbbr("dewanai", "じゃない", false)
	t.loadAbbr("ii", "ええ", false)

	t.log.Debug("suffix table built",
		zap.Int("surface_forms", len(t.entries)),
		zap.Int("classes", len(t.class)))
	return nil
}

func (t *Table) loadExactJoin(ctx context.Context, keyword string, seq int64, formText, text, class string, join bool) error {
	r, err := t.store.KanaFormExact(ctx, seq, formText)
	if err != nil {
		return fmt.Errorf("suffix load %d: %w", seq, err)
	}
	if r == nil {
		return nil
	}
	f := &Form{Seq: r.Seq, Text: r.Text, Common: r.Common, Conj: "root"}
	t.put(text, cached{keyword: keyword, form: f}, join)
	t.class[f.Seq] = class
	return nil
}

// Class returns the suffix class registered for seq, or "".
func (t *Table) Class(seq int64) string { return t.class[seq] }

// Map scans text and returns suffixes keyed by their end offset in runes.
func (t *Table) Map(ctx context.Context, runes []rune) (map[int][]Match, error) {
	if err := t.Warm(ctx); err != nil {
		return nil, err
	}
	out := make(map[int][]Match)
	for start := 0; start < len(runes); start++ {
		for end := start + 1; end <= len(runes); end++ {
			sub := string(runes[start:end])
			for _, c := range t.entries[sub] {
				out[end] = append(out[end], Match{Text: sub, Keyword: c.keyword, Form: c.form})
			}
		}
	}
	return out, nil
}

// Suffixes returns cached suffixes matching the tail of word, longest first.
func (t *Table) Suffixes(ctx context.Context, word string) ([]Match, error) {
	if err := t.Warm(ctx); err != nil {
		return nil, err
	}
	runes := []rune(word)
	var out []Match
	for start := 1; start < len(runes); start++ {
		sub := string(runes[start:])
		for _, c := range t.entries[sub] {
			out = append(out, Match{Text: sub, Keyword: c.keyword, Form: c.form})
		}
	}
	return out, nil
}

func teCheck(root string) bool {
	if root == "" || root == "で" {
		return false
	}
	return strings.HasSuffix(root, "て") || strings.HasSuffix(root, "で")
}

func teiruCheck(root string) bool {
	return root != "いて" && teCheck(root)
}

// scoreMods carries the per-keyword score bonus applied when a suffix
// attaches; keywords not listed attach with no bonus.
var scoreMods = map[string]int{
	"tai":     5,
	"ren":     5,
	"neg":     5,
	"teiru":   3,
	"teiru+":  6,
	"chau":    5,
	"suru":    5,
	"sou":     60,
	"nai":     5,
	"kudasai": 360,
	"sugiru":  30,
}

// spacedKeywords get a space between the stem reading and the suffix.
var spacedKeywords = map[string]bool{
	"suru":     true,
	"kudasai":  true,
	"te+space": true,
	"teii":     true,
}

// uniqueOnly lists suffix classes that attach only when the span has no
// dictionary match of its own.
var uniqueOnly = map[string]bool{
	"ra":      true,
	"mo":      true,
	"nikui":   true,
	"gai":     true,
	"nai-n":   true,
	"dewanai": true,
	"ii":      true,
	"teba":    true,
	"reba":    true,
	"keba":    true,
	"geba":    true,
	"neba":    true,
	"beba":    true,
	"meba":    true,
	"seba":    true,
}

// ebaContractions maps a colloquial ~ゃ keyword back to the full ~ば
// conditional ending.
var ebaContractions = map[string]string{
	"teba": "てば",
	"reba": "れば",
	"keba": "けば",
	"geba": "げば",
	"neba": "ねば",
	"beba": "べば",
	"meba": "めば",
	"seba": "せば",
}

// stem is one attachable head candidate. kanaTrim drops trailing runes from
// the stem reading before joining, for rules that match a patched spelling
// (高い for 高すぎる).
type stem struct {
	word     models.Word
	kanaTrim int
}

func plainStems(words []models.Word) []stem {
	out := make([]stem, 0, len(words))
	for _, w := range words {
		out = append(out, stem{word: w})
	}
	return out
}

// stemWords finds words whose surface is root and that carry one of the
// given conjugation types, from both the dictionary and the pre-expanded
// conjugation table.
func (t *Table) stemWords(ctx context.Context, root string, types ...int) ([]models.Word, error) {
	var out []models.Word

	readings, err := t.store.FindWord(ctx, root, false)
	if err != nil {
		return nil, err
	}
	for i := range readings {
		link, err := t.store.ConjugationLink(ctx, readings[i].Seq)
		if err != nil {
			return nil, err
		}
		if link == nil {
			continue
		}
		for _, p := range link.Props {
			if containsInt(types, p.ConjType) {
				out = append(out, &models.DictWord{Reading: readings[i]})
				break
			}
		}
	}

	forms, err := t.store.FormsWithConjType(ctx, root, types...)
	if err != nil {
		return nil, err
	}
	hasKanji := chars.CountKanji([]rune(root)) > 0
	for i := range forms {
		out = append(out, &models.ConjWord{Form: forms[i], HasKanji: hasKanji})
	}
	return out, nil
}

// teStems finds te-form heads for root, including compounds built from
// root's own tail so suffix chains (しておいて + ください) stay reachable.
func (t *Table) teStems(ctx context.Context, root string) ([]stem, error) {
	words, err := t.stemWords(ctx, root, models.ConjTe)
	if err != nil {
		return nil, err
	}
	heads, err := t.chainHeads(ctx, root)
	if err != nil {
		return nil, err
	}
	return plainStems(append(words, heads...)), nil
}

// chainHeads resolves root against the suffix table itself, keeping the
// compounds so that a further suffix can extend them.
func (t *Table) chainHeads(ctx context.Context, root string) ([]models.Word, error) {
	sufs, err := t.Suffixes(ctx, root)
	if err != nil || len(sufs) == 0 {
		return nil, err
	}
	cands, err := t.Find(ctx, root, sufs, nil)
	if err != nil {
		return nil, err
	}
	var out []models.Word
	for _, w := range cands {
		if _, ok := w.(*models.Compound); ok {
			out = append(out, w)
		}
	}
	return out, nil
}

// posStems finds dictionary words for root carrying one of the POS tags.
func (t *Table) posStems(ctx context.Context, root string, tags ...string) ([]models.Word, error) {
	readings, err := t.store.FindWord(ctx, root, false)
	if err != nil {
		return nil, err
	}
	var out []models.Word
	for i := range readings {
		pos, err := t.store.POSTags(ctx, readings[i].Seq)
		if err != nil {
			return nil, err
		}
		for _, tag := range pos {
			if containsStr(tags, tag) {
				out = append(out, &models.DictWord{Reading: readings[i]})
				break
			}
		}
	}
	return out, nil
}

// negStems finds words for root that carry a negative conjugation property.
func (t *Table) negStems(ctx context.Context, root string) ([]models.Word, error) {
	var out []models.Word

	readings, err := t.store.FindWord(ctx, root, false)
	if err != nil {
		return nil, err
	}
	for i := range readings {
		link, err := t.store.ConjugationLink(ctx, readings[i].Seq)
		if err != nil {
			return nil, err
		}
		if link == nil {
			continue
		}
		for _, p := range link.Props {
			if p.Neg {
				out = append(out, &models.DictWord{Reading: readings[i]})
				break
			}
		}
	}

	forms, err := t.store.NegativeForms(ctx, root)
	if err != nil {
		return nil, err
	}
	hasKanji := chars.CountKanji([]rune(root)) > 0
	for i := range forms {
		out = append(out, &models.ConjWord{Form: forms[i], HasKanji: hasKanji})
	}
	return out, nil
}

// wholeWords resolves text against the dictionary and the pre-expanded
// conjugation table, for contraction rules that re-spell the whole span.
func (t *Table) wholeWords(ctx context.Context, text string) ([]models.Word, error) {
	var out []models.Word

	readings, err := t.store.FindWord(ctx, text, false)
	if err != nil {
		return nil, err
	}
	for i := range readings {
		out = append(out, &models.DictWord{Reading: readings[i]})
	}

	forms, err := t.store.ConjugatedForms(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	hasKanji := chars.CountKanji([]rune(text)) > 0
	for _, f := range forms[text] {
		out = append(out, &models.ConjWord{Form: f, HasKanji: hasKanji})
	}
	return out, nil
}

// suruNegatives resolves the せ+ず/ざる/ぬ contraction through しない.
func (t *Table) suruNegatives(ctx context.Context) ([]models.Word, error) {
	forms, err := t.store.ConjugatedForms(ctx, []string{"しない"})
	if err != nil {
		return nil, err
	}
	var out []models.Word
	for _, f := range forms["しない"] {
		if f.Seq == seqSuru {
			out = append(out, &models.ConjWord{Form: f})
		}
	}
	return out, nil
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func containsStr(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// suffixWord wraps a cached form as an attachable component.
func suffixWord(f *Form) models.Word {
	return &models.DictWord{Reading: models.Reading{
		Seq:    f.Seq,
		Kind:   models.KanaReading,
		Text:   f.Text,
		Common: f.Common,
	}}
}

// classOf resolves the suffix class of a match, falling back to its keyword.
func (t *Table) classOf(m Match) string {
	if m.Form != nil {
		if c := t.Class(m.Form.Seq); c != "" {
			return c
		}
	}
	return m.Keyword
}

// Adjoin attaches next to head, extending an existing compound in place.
func Adjoin(head models.Word, next models.Word, text, kana string, scoreMod int, class string) *models.Compound {
	if c, ok := head.(*models.Compound); ok {
		c.Surface = text
		c.Reading = kana
		c.Components = append(c.Components, next)
		c.ScoreMod += scoreMod
		return c
	}
	return &models.Compound{
		Surface:     text,
		Reading:     kana,
		Components:  []models.Word{head, next},
		ScoreMod:    scoreMod,
		SuffixClass: class,
	}
}

func trimKana(kana string, n int) string {
	runes := []rune(kana)
	if n <= 0 || n >= len(runes) {
		return kana
	}
	return string(runes[:len(runes)-n])
}

// Find builds candidates for word given the suffixes ending at its last
// position. existing carries the span's plain dictionary matches, used by
// the rules that only attach on otherwise unmatched text. Compounds join a
// stem to the suffix form; contraction rules instead resolve the re-spelled
// whole word and return it behind a proxy.
func (t *Table) Find(ctx context.Context, word string, suffixes []Match, existing []models.Word) ([]models.Word, error) {
	var out []models.Word
	wordRunes := []rune(word)
	for _, m := range suffixes {
		sufLen := len([]rune(m.Text))
		if sufLen >= len(wordRunes) {
			continue
		}
		root := string(wordRunes[:len(wordRunes)-sufLen])
		class := t.classOf(m)
		if len(existing) > 0 && uniqueOnly[class] {
			continue
		}

		var (
			stems []stem
			whole []models.Word
			err   error
		)
		switch m.Keyword {
		case "te", "te+space", "to", "chau":
			if !teCheck(root) {
				continue
			}
			stems, err = t.teStems(ctx, root)
		case "teiru", "teiru+":
			if !teiruCheck(root) {
				continue
			}
			stems, err = t.teStems(ctx, root)
		case "teii", "kudasai":
			if !teCheck(root) {
				continue
			}
			stems, err = t.teStems(ctx, root)
		case "tai":
			if root == "い" {
				continue
			}
			stems, err = t.renStems(ctx, root, models.ConjContinuative)
		case "ren", "ren-":
			stems, err = t.renStems(ctx, root, models.ConjContinuative)
		case "neg":
			stems, err = t.renStems(ctx, root, models.ConjContinuative, models.ConjNegativeStem)
		case "teren":
			stems, err = t.renStems(ctx, root, models.ConjContinuative)
			if err == nil && teCheck(root) {
				var te []stem
				te, err = t.teStems(ctx, root)
				stems = append(stems, te...)
			}
		case "suru":
			var ws []models.Word
			ws, err = t.posStems(ctx, root, "vs")
			stems = plainStems(ws)
		case "sou", "sou+":
			if root == "な" || root == "よ" || root == "よさ" || root == "に" || root == "き" {
				continue
			}
			if strings.HasSuffix(root, "なさ") {
				var ws []models.Word
				ws, err = t.negStems(ctx, trimKana(root, 1)+"い")
				stems = plainStems(ws)
			} else {
				stems, err = t.renStems(ctx, root,
					models.ConjContinuative, models.ConjAdjectiveStem, models.ConjAdverbial)
			}
		case "sugiru":
			if root == "い" {
				continue
			}
			if strings.HasSuffix(root, "なさ") || strings.HasSuffix(root, "無さ") {
				var ws []models.Word
				ws, err = t.negStems(ctx, trimKana(root, 1)+"い")
				stems = plainStems(ws)
			} else {
				var ws []models.Word
				ws, err = t.posStems(ctx, root+"い", "adj-i")
				for _, w := range ws {
					stems = append(stems, stem{word: w, kanaTrim: 1})
				}
			}
		case "sa":
			var adj, na []models.Word
			adj, err = t.stemWords(ctx, root, models.ConjAdjectiveStem)
			if err == nil {
				na, err = t.posStems(ctx, root, "adj-na")
			}
			stems = plainStems(append(adj, na...))
		case "rou", "kurai":
			stems, err = t.renStems(ctx, root, models.ConjPast)
		case "adv":
			stems, err = t.renStems(ctx, root, models.ConjAdverbial)
		case "garu":
			if root == "な" || root == "い" || root == "よ" {
				continue
			}
			stems, err = t.renStems(ctx, root, models.ConjAdjectiveStem)
		case "ra":
			if strings.HasSuffix(root, "ら") {
				continue
			}
			var ws []models.Word
			ws, err = t.posStems(ctx, root, "pn")
			stems = plainStems(ws)
		case "rashii":
			var past, cond []models.Word
			past, err = t.stemWords(ctx, root, models.ConjPast)
			if err == nil {
				cond, err = t.stemWords(ctx, root+"ら", models.ConjConditional)
			}
			stems = plainStems(past)
			for _, w := range cond {
				stems = append(stems, stem{word: w, kanaTrim: 1})
			}
		case "desu":
			if !strings.HasSuffix(root, "ない") && !strings.HasSuffix(root, "なかった") {
				continue
			}
			var ws []models.Word
			ws, err = t.negStems(ctx, root)
			stems = plainStems(ws)
		case "desho":
			if !strings.HasSuffix(root, "ない") {
				continue
			}
			var ws []models.Word
			ws, err = t.negStems(ctx, root)
			stems = plainStems(ws)
		case "tosuru":
			stems, err = t.renStems(ctx, root, models.ConjVolitional)
		case "iadj":
			stems, err = t.renStems(ctx, root, models.ConjAdjectiveStem)
		case "nai", "nai-n":
			whole, err = t.negStems(ctx, root+"ない")
		case "nai-x":
			if root == "せ" {
				whole, err = t.suruNegatives(ctx)
			} else {
				whole, err = t.negStems(ctx, root+"ない")
			}
		case "nakereba":
			whole, err = t.wholeWords(ctx, root+"なければ")
		case "shimashou":
			whole, err = t.wholeWords(ctx, root+"しましょう")
		case "dewanai":
			whole, err = t.wholeWords(ctx, root+"ではない")
		case "teba", "reba", "keba", "geba", "neba", "beba", "meba", "seba":
			whole, err = t.wholeWords(ctx, root+ebaContractions[m.Keyword])
		case "ii":
			whole, err = t.wholeWords(ctx, root+"いい")
		default:
			continue
		}
		if err != nil {
			return nil, err
		}

		for _, w := range whole {
			out = append(out, &models.ProxyWord{Source: w, Surface: word})
		}
		if m.Form == nil {
			continue
		}
		sep := ""
		if spacedKeywords[m.Keyword] {
			sep = " "
		}
		for _, st := range stems {
			kana := trimKana(st.word.Kana(), st.kanaTrim) + sep + m.Text
			out = append(out, Adjoin(st.word, suffixWord(m.Form), word, kana, scoreMods[m.Keyword], class))
		}
	}
	return out, nil
}

// renStems wraps stemWords for the plain conjugation-type rules.
func (t *Table) renStems(ctx context.Context, root string, types ...int) ([]stem, error) {
	words, err := t.stemWords(ctx, root, types...)
	if err != nil {
		return nil, err
	}
	return plainStems(words), nil
}
