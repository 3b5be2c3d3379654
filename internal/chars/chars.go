// Package chars provides character classification for Japanese text: script
// detection, mora counting, kana conversion, rendaku and gemination, and the
// boundary ("sticky") positions used to constrain candidate word spans.
//
// All functions are pure and operate on runes; the analyzer works in rune
// offsets throughout.
package chars

import "strings"

// Class is a coarse script class for a single rune.
type Class int

const (
	ClassOther Class = iota
	ClassHiragana
	ClassKatakana
	ClassKanji
	ClassNumber
)

// Of classifies a single rune.
func Of(r rune) Class {
	switch {
	case IsHiragana(r):
		return ClassHiragana
	case IsKatakana(r):
		return ClassKatakana
	case IsNumber(r):
		return ClassNumber
	case IsKanji(r):
		return ClassKanji
	default:
		return ClassOther
	}
}

// IsHiragana reports whether r is hiragana, including iteration marks and the
// long vowel mark.
func IsHiragana(r rune) bool {
	return (r >= 'ぁ' && r <= 'ゔ') || r == 'ゝ' || r == 'ゞ' || r == 'ー'
}

// IsKatakana reports whether r is katakana, including iteration marks and the
// long vowel mark.
func IsKatakana(r rune) bool {
	return (r >= 'ァ' && r <= 'ヺ') || r == 'ヽ' || r == 'ヾ' || r == 'ー'
}

// IsKatakanaUniq reports whether r is katakana excluding the long vowel mark,
// which is shared with hiragana words.
func IsKatakanaUniq(r rune) bool {
	return (r >= 'ァ' && r <= 'ヺ') || r == 'ヽ' || r == 'ヾ'
}

// IsKanji reports whether r is a kanji or one of the kanji-like marks used
// inside words (々 ヶ 〆 〇).
func IsKanji(r rune) bool {
	return (r >= '一' && r <= '龯') || r == '々' || r == 'ヶ' || r == '〆' || r == '〇'
}

// IsKanjiChar reports whether r is in the CJK unified range proper.
func IsKanjiChar(r rune) bool { return r >= '一' && r <= '龯' }

// IsKana reports whether r is hiragana or katakana.
func IsKana(r rune) bool { return IsHiragana(r) || IsKatakana(r) }

// IsNumber reports whether r is an ascii digit, a full-width digit, or a
// kanji numeral (including powers of ten).
func IsNumber(r rune) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	if r >= '０' && r <= '９' {
		return true
	}
	return strings.ContainsRune("〇一二三四五六七八九零壱弐参拾十百千万億兆京", r)
}

// IsWordChar reports whether r can appear inside a dictionary word.
func IsWordChar(r rune) bool { return IsKana(r) || IsKanji(r) }

// AllKana reports whether every rune of s is kana.
func AllKana(s []rune) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !IsKana(r) {
			return false
		}
	}
	return true
}

// AllKanji reports whether every rune of s is kanji.
func AllKanji(s []rune) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !IsKanji(r) {
			return false
		}
	}
	return true
}

// CountKanji returns the number of kanji runes in s.
func CountKanji(s []rune) int {
	n := 0
	for _, r := range s {
		if IsKanji(r) {
			n++
		}
	}
	return n
}

// CountKatakanaUniq returns the number of unambiguous katakana runes in s.
func CountKatakanaUniq(s []rune) int {
	n := 0
	for _, r := range s {
		if IsKatakanaUniq(r) {
			n++
		}
	}
	return n
}

// moraModifiers are small kana and marks that do not count as a mora of
// their own.
const moraModifiers = "っッぁァぃィぅゥぇェぉォゃャゅュょョー"

// MoraLength counts the mora of s; sokuon, small kana, and the long vowel
// mark attach to the preceding mora.
func MoraLength(s []rune) int {
	n := 0
	for _, r := range s {
		if !strings.ContainsRune(moraModifiers, r) {
			n++
		}
	}
	return n
}

// IsSokuon reports whether r is the gemination marker っ/ッ.
func IsSokuon(r rune) bool { return r == 'っ' || r == 'ッ' }

// IsModifier reports whether r is a small kana modifier or the long vowel
// mark, i.e. a rune no word may start with.
func IsModifier(r rune) bool {
	return strings.ContainsRune("ぁァぃィぅゥぇェぉォゃャゅュょョゎヮーゝヽゞヾ", r)
}

// AsHiragana converts katakana runes of s to hiragana, leaving everything
// else untouched.
func AsHiragana(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'ァ' && r <= 'ヶ':
			b.WriteRune(r - 0x60)
		case r == 'ヽ':
			b.WriteRune('ゝ')
		case r == 'ヾ':
			b.WriteRune('ゞ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// AsKatakana converts hiragana runes of s to katakana, leaving everything
// else untouched.
func AsKatakana(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'ぁ' && r <= 'ゖ':
			b.WriteRune(r + 0x60)
		case r == 'ゝ':
			b.WriteRune('ヽ')
		case r == 'ゞ':
			b.WriteRune('ヾ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// dakuten maps an unvoiced kana to its voiced (dakuten) form; the handakuten
// map covers the h-row p-sounds used by some counter readings.
var dakuten = map[rune]rune{
	'か': 'が', 'き': 'ぎ', 'く': 'ぐ', 'け': 'げ', 'こ': 'ご',
	'さ': 'ざ', 'し': 'じ', 'す': 'ず', 'せ': 'ぜ', 'そ': 'ぞ',
	'た': 'だ', 'ち': 'ぢ', 'つ': 'づ', 'て': 'で', 'と': 'ど',
	'は': 'ば', 'ひ': 'び', 'ふ': 'ぶ', 'へ': 'べ', 'ほ': 'ぼ',
	'う': 'ゔ',
}

var handakuten = map[rune]rune{
	'は': 'ぱ', 'ひ': 'ぴ', 'ふ': 'ぷ', 'へ': 'ぺ', 'ほ': 'ぽ',
}

var undakuten = func() map[rune]rune {
	m := make(map[rune]rune, len(dakuten)+len(handakuten))
	for k, v := range dakuten {
		m[v] = k
	}
	for k, v := range handakuten {
		m[v] = k
	}
	return m
}()

// Rendaku voices the first kana of s (sequential voicing). When handakutenOK
// is set, h-row kana take the p-sound instead of the b-sound.
func Rendaku(s string, handakutenOK bool) string {
	rs := []rune(s)
	if len(rs) == 0 {
		return s
	}
	if handakutenOK {
		if v, ok := handakuten[rs[0]]; ok {
			rs[0] = v
			return string(rs)
		}
	}
	if v, ok := dakuten[rs[0]]; ok {
		rs[0] = v
	}
	return string(rs)
}

// Unrendaku devoices the first kana of s.
func Unrendaku(s string) string {
	rs := []rune(s)
	if len(rs) == 0 {
		return s
	}
	if v, ok := undakuten[rs[0]]; ok {
		rs[0] = v
	}
	return string(rs)
}

// Geminate replaces the final rune of s with the sokuon, matching script.
func Geminate(s string) string {
	rs := []rune(s)
	if len(rs) == 0 {
		return s
	}
	if IsKatakanaUniq(rs[len(rs)-1]) {
		rs[len(rs)-1] = 'ッ'
	} else {
		rs[len(rs)-1] = 'っ'
	}
	return string(rs)
}

// Span is a half-open rune range [Start, End).
type Span struct {
	Start int
	End   int
}

// ConsecutiveGroups returns the maximal runs of text whose runes all belong
// to class c.
func ConsecutiveGroups(text []rune, c Class) []Span {
	var groups []Span
	start := -1
	for i, r := range text {
		if Of(r) == c {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			groups = append(groups, Span{Start: start, End: i})
			start = -1
		}
	}
	if start >= 0 {
		groups = append(groups, Span{Start: start, End: len(text)})
	}
	return groups
}

// StickyPositions returns rune offsets where no word boundary may fall: after
// a sokuon, and on small-kana modifiers and non-initial long vowel marks.
func StickyPositions(text []rune) []int {
	var sticky []int
	for i, r := range text {
		if IsSokuon(r) && i+1 < len(text) && IsKana(text[i+1]) {
			sticky = append(sticky, i+1)
			continue
		}
		if IsModifier(r) && i < len(text)-1 {
			// A long vowel mark extending the previous kana still blocks a
			// boundary; at position 0 there is nothing to extend.
			if r == 'ー' && i == 0 {
				continue
			}
			sticky = append(sticky, i)
		}
	}
	return sticky
}

const (
	halfWidthKana = "･ｦｧｨｩｪｫｬｭｮｯｰｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜﾝ"
	fullWidthKana = "・ヲァィゥェォャュョッーアイウエオカキクケコサシスセソタチツテトナニヌネノハヒフヘホマミムメモヤユヨラリルレロワン"
)

var halfToFull = func() map[rune]rune {
	m := make(map[rune]rune)
	full := []rune(fullWidthKana)
	for i, r := range []rune(halfWidthKana) {
		m[r] = full[i]
	}
	return m
}()

// Normalize converts full-width alphanumerics to ascii and half-width kana
// to full-width, so lookups see one canonical form.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '０' && r <= '９':
			b.WriteRune(r - '０' + '0')
		case r >= 'ａ' && r <= 'ｚ':
			b.WriteRune(r - 'ａ' + 'a')
		case r >= 'Ａ' && r <= 'Ｚ':
			b.WriteRune(r - 'Ａ' + 'A')
		default:
			if f, ok := halfToFull[r]; ok {
				b.WriteRune(f)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
