// Package numbers parses Japanese number expressions (kanji numerals, ascii
// and full-width digits) and renders their kanji and kana forms, including
// the euphonic changes (sandhi) that apply when digits join powers of ten.
package numbers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kotoba/wakachi/internal/chars"
)

// ErrNotANumber is returned when a string cannot be parsed as a number.
var ErrNotANumber = errors.New("not a number")

type numClass int

const (
	classDigit numClass = iota // kanji digit
	classPower                 // power of ten
	classArabic
)

type numChar struct {
	class numClass
	value int64 // digit value, or exponent for powers
}

var charNumber = map[rune]numChar{
	'〇': {classDigit, 0}, '零': {classDigit, 0},
	'一': {classDigit, 1}, '壱': {classDigit, 1},
	'二': {classDigit, 2}, '弐': {classDigit, 2},
	'三': {classDigit, 3}, '参': {classDigit, 3},
	'四': {classDigit, 4},
	'五': {classDigit, 5},
	'六': {classDigit, 6},
	'七': {classDigit, 7},
	'八': {classDigit, 8},
	'九': {classDigit, 9},
	'十': {classPower, 1}, '拾': {classPower, 1},
	'百': {classPower, 2},
	'千': {classPower, 3},
	'万': {classPower, 4},
	'億': {classPower, 8},
	'兆': {classPower, 12},
	'京': {classPower, 16},
}

var digitKana = map[int64]string{
	0: "れい", 1: "いち", 2: "に", 3: "さん", 4: "よん",
	5: "ご", 6: "ろく", 7: "なな", 8: "はち", 9: "きゅう",
}

var powerKana = map[int64]string{
	1: "じゅう", 2: "ひゃく", 3: "せん", 4: "まん",
	8: "おく", 12: "ちょう", 16: "けい",
}

var powerKanji = map[int64]rune{
	1: '十', 2: '百', 3: '千', 4: '万', 8: '億', 12: '兆', 16: '京',
}

var digitKanji = []rune("〇一二三四五六七八九")

func classify(r rune) (numChar, bool) {
	if r >= '0' && r <= '9' {
		return numChar{classArabic, int64(r - '0')}, true
	}
	if r >= '０' && r <= '９' {
		return numChar{classArabic, int64(r - '０')}, true
	}
	nc, ok := charNumber[r]
	return nc, ok
}

// IsNumeric reports whether every rune of s is a numeral.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if _, ok := classify(r); !ok {
			return false
		}
	}
	return true
}

// Parse converts a Japanese number string to its value. Mixed kanji and
// arabic digits are accepted; positional digit runs (二〇二六) and power
// notation (百二十三) both parse.
func Parse(s string) (int64, error) {
	var ncs []numChar
	for _, r := range s {
		nc, ok := classify(r)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
		}
		ncs = append(ncs, nc)
	}
	if len(ncs) == 0 {
		return 0, fmt.Errorf("%w: empty string", ErrNotANumber)
	}
	return parseRange(ncs, 0, len(ncs)), nil
}

// parseRange evaluates ncs[start:end] by splitting on the largest power.
func parseRange(ncs []numChar, start, end int) int64 {
	if start >= end {
		return 0
	}

	maxPower := int64(-1)
	maxIdx := -1
	for i := start; i < end; i++ {
		if ncs[i].class == classPower && ncs[i].value > maxPower {
			maxPower = ncs[i].value
			maxIdx = i
		}
	}

	if maxIdx < 0 {
		// Digits only: positional.
		var v int64
		for i := start; i < end; i++ {
			v = v*10 + ncs[i].value
		}
		return v
	}

	coeff := int64(1)
	if maxIdx > start {
		coeff = parseRange(ncs, start, maxIdx)
	}
	pow := int64(1)
	for i := int64(0); i < maxPower; i++ {
		pow *= 10
	}
	return coeff*pow + parseRange(ncs, maxIdx+1, end)
}

// ToKanji renders a non-negative number in kanji numerals.
func ToKanji(n int64) string {
	if n < 0 {
		return ""
	}
	return toKanji(n, false)
}

func toKanji(n int64, oneSen bool) string {
	if n < 10 {
		return string(digitKanji[n])
	}

	var maxPower int64
	pow := int64(10)
	for _, p := range []int64{1, 2, 3, 4, 8, 12, 16} {
		pow = int64(1)
		for i := int64(0); i < p; i++ {
			pow *= 10
		}
		if pow > n {
			break
		}
		maxPower = p
	}

	pow = int64(1)
	for i := int64(0); i < maxPower; i++ {
		pow *= 10
	}
	quot, rem := n/pow, n%pow

	var b strings.Builder
	// 十/百/千 omit the leading 一; larger powers keep it.
	threshold := int64(1000)
	if oneSen {
		threshold = 100
	}
	if quot != 1 || pow > threshold {
		b.WriteString(toKanji(quot, true))
	}
	b.WriteRune(powerKanji[maxPower])
	if rem > 0 {
		b.WriteString(toKanji(rem, false))
	}
	return b.String()
}

// sandhi joins two kana number components, applying gemination and voicing:
// いち+せん → いっせん, さん+ひゃく → さんびゃく, ろく+ひゃく → ろっぴゃく.
func sandhi(c1 numClass, v1 int64, v2 int64, s1, s2 string) (string, string) {
	if c1 == classDigit || c1 == classArabic {
		switch v1 {
		case 1:
			if v2 == 3 || v2 == 12 || v2 == 16 {
				s1 = chars.Geminate(s1)
			}
		case 3:
			if v2 == 2 || v2 == 3 {
				s2 = chars.Rendaku(s2, false)
			}
		case 6:
			if v2 == 2 {
				s1 = chars.Geminate(s1)
				s2 = chars.Rendaku(s2, true)
			} else if v2 == 16 {
				s1 = chars.Geminate(s1)
			}
		case 8:
			if v2 == 2 {
				s1 = chars.Geminate(s1)
				s2 = chars.Rendaku(s2, true)
			} else if v2 == 3 || v2 == 12 || v2 == 16 {
				s1 = chars.Geminate(s1)
			}
		}
	} else if c1 == classPower {
		if v1 == 1 && (v2 == 12 || v2 == 16) {
			s1 = chars.Geminate(s1)
		}
		if v1 == 2 && v2 == 16 {
			s1 = chars.Geminate(s1)
		}
	}
	return s1, s2
}

// ToKana renders a non-negative number as its kana reading.
func ToKana(n int64) string {
	kanji := ToKanji(n)

	var b strings.Builder
	lastClass := numClass(-1)
	var lastVal int64
	acc := ""

	flush := func() {
		b.WriteString(acc)
		acc = ""
	}

	for _, r := range kanji {
		nc, ok := charNumber[r]
		if !ok {
			continue
		}
		kana := ""
		if nc.class == classPower {
			kana = powerKana[nc.value]
		} else {
			kana = digitKana[nc.value]
		}

		if lastClass == numClass(-1) {
			acc = kana
		} else if nc.class == classPower && (lastClass == classDigit || lastVal < nc.value) {
			// Power follows its coefficient within the same group.
			acc, kana = sandhi(lastClass, lastVal, nc.value, acc, kana)
			acc += kana
		} else {
			flush()
			acc = kana
		}
		lastClass = nc.class
		lastVal = nc.value
	}
	flush()
	return b.String()
}
