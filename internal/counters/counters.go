// Package counters detects number+counter combinations and produces their
// readings, including the phonetic changes (gemination, rendaku, native
// number readings) counters trigger.
package counters

import (
	"strings"
	"sync"
	"unicode"

	"github.com/kotoba/wakachi/internal/chars"
	"github.com/kotoba/wakachi/internal/numbers"
)

// Counter is a counter word with its hiragana reading and optional kanji
// spelling.
type Counter struct {
	ID      string
	Reading string
	Kanji   string
}

var (
	registryOnce sync.Once
	registry     map[string]Counter
)

// phoneticChanges lists counters whose readings change for certain numbers.
var phoneticChanges = map[string]map[int]string{
	"かい":  {1: "いっかい", 6: "ろっかい", 8: "はっかい", 10: "じゅっかい"},
	"こ":   {1: "いっこ", 6: "ろっこ", 8: "はっこ", 10: "じゅっこ"},
	"けん":  {1: "いっけん", 6: "ろっけん", 8: "はっけん", 10: "じゅっけん"},
	"かげつ": {1: "いっかげつ", 6: "ろっかげつ", 8: "はっかげつ", 10: "じゅっかげつ"},

	"さい":  {1: "いっさい", 8: "はっさい", 10: "じゅっさい"},
	"せんち": {1: "いっせんち", 8: "はっせんち"},

	"つう": {1: "いっつう", 8: "はっつう", 10: "じゅっつう"},

	"ぽん":  {1: "いっぽん", 3: "さんぼん", 6: "ろっぽん", 8: "はっぽん", 10: "じゅっぽん"},
	"ぴき":  {1: "いっぴき", 3: "さんびき", 6: "ろっぴき", 8: "はっぴき", 10: "じゅっぴき"},
	"ぷん":  {1: "いっぷん", 3: "さんぷん", 4: "よんぷん", 6: "ろっぷん", 8: "はっぷん", 10: "じゅっぷん"},
	"ぺん":  {1: "いっぺん", 3: "さんべん", 6: "ろっぺん", 8: "はっぺん", 10: "じゅっぺん"},
	"ぺーじ": {1: "いっぺーじ", 6: "ろっぺーじ", 8: "はっぺーじ", 10: "じゅっぺーじ"},

	"ほん": {1: "いっぽん", 3: "さんぼん", 6: "ろっぽん", 8: "はっぽん", 10: "じゅっぽん"},
	"ひき": {1: "いっぴき", 3: "さんびき", 6: "ろっぴき", 8: "はっぴき", 10: "じゅっぴき"},
	"はい": {1: "いっぱい", 3: "さんばい", 6: "ろっぱい", 8: "はっぱい", 10: "じゅっぱい"},
	"ふん": {1: "いっぷん", 3: "さんぷん", 4: "よんぷん", 6: "ろっぷん", 8: "はっぷん", 10: "じゅっぷん"},

	"にん": {1: "ひとり", 2: "ふたり", 4: "よにん", 7: "しちにん"},
	"つき": {1: "ひとつき", 2: "ふたつき"},
	"ひ": {1: "いちにち", 2: "ふつか", 3: "みっか", 4: "よっか", 5: "いつか",
		6: "むいか", 7: "なのか", 8: "ようか", 9: "ここのか", 10: "とおか",
		20: "はつか"},
}

// nativeCounters use native number readings for small counts.
var nativeCounters = map[string]map[int]string{
	"つ": {
		1: "ひとつ", 2: "ふたつ", 3: "みっつ", 4: "よっつ", 5: "いつつ",
		6: "むっつ", 7: "ななつ", 8: "やっつ", 9: "ここのつ", 10: "とお",
	},
}

func initRegistry() {
	list := []Counter{
		{"つ", "つ", ""},
		{"にん", "にん", "人"},
		{"めい", "めい", "名"},
		{"ほん", "ほん", "本"},
		{"ひき", "ひき", "匹"},
		{"とう", "とう", "頭"},
		{"わ", "わ", "羽"},
		{"まい", "まい", "枚"},
		{"こ", "こ", "個"},
		{"さつ", "さつ", "冊"},
		{"だい", "だい", "台"},
		{"かい", "かい", "階"},
		{"かい2", "かい", "回"},
		{"ど", "ど", "度"},
		{"そく", "そく", "足"},
		{"つい", "つい", "対"},
		{"じ", "じ", "時"},
		{"じかん", "じかん", "時間"},
		{"ふん", "ふん", "分"},
		{"びょう", "びょう", "秒"},
		{"にち", "にち", "日"},
		{"がつ", "がつ", "月"},
		{"かげつ", "かげつ", "ヶ月"},
		{"ねん", "ねん", "年"},
		{"しゅうかん", "しゅうかん", "週間"},
		{"さい", "さい", "歳"},
		{"めーとる", "めーとる", "メートル"},
		{"せんち", "せんち", "センチ"},
		{"きろ", "きろ", "キロ"},
		{"ぐらむ", "ぐらむ", "グラム"},
		{"りっとる", "りっとる", "リットル"},
		{"えん", "えん", "円"},
		{"どる", "どる", "ドル"},
		{"はい", "はい", "杯"},
		{"きれ", "きれ", "切れ"},
		{"か", "か", "課"},
		{"しょう", "しょう", "章"},
		{"ぺーじ", "ぺーじ", "ページ"},
		{"しゃ", "しゃ", "社"},
		{"けん", "けん", "軒"},
		{"つう", "つう", "通"},
	}
	registry = make(map[string]Counter, len(list)*3)
	for _, c := range list {
		// Kanji entries win lookup conflicts; readings shared by several
		// counters (かい) resolve to whichever registered first.
		if c.Kanji != "" {
			registry[c.Kanji] = c
		}
		if _, ok := registry[c.Reading]; !ok {
			registry[c.Reading] = c
		}
	}
}

// Lookup finds a registered counter by kanji spelling or reading. Katakana
// lookups fold to hiragana.
func Lookup(text string) (Counter, bool) {
	registryOnce.Do(initRegistry)
	if c, ok := registry[text]; ok {
		return c, true
	}
	c, ok := registry[chars.AsHiragana(text)]
	return c, ok
}

// Reading produces the reading of number followed by a counter reading in
// hiragana, applying native and phonetic special cases.
func Reading(number int64, counter string) string {
	hira := chars.AsHiragana(counter)
	if n := int(number); int64(n) == number {
		if special, ok := nativeCounters[hira][n]; ok {
			return special
		}
		if special, ok := phoneticChanges[hira][n]; ok {
			return special
		}
	}
	return numbers.ToKana(number) + counter
}

// Match is a detected number+counter combination.
type Match struct {
	Value       int64
	NumberText  string
	CounterText string
	Reading     string
}

// Detect reports whether text is a number followed by a counter, returning
// the parsed value and the combined reading. Unregistered counters still
// match with a naive reading when the tail is kana.
func Detect(text string) (Match, bool) {
	runes := []rune(text)
	numEnd := 0
	for i, r := range runes {
		if unicode.IsDigit(r) || numbers.IsNumeric(string(r)) {
			numEnd = i + 1
		} else {
			break
		}
	}
	if numEnd == 0 || numEnd == len(runes) {
		return Match{}, false
	}

	numText := string(runes[:numEnd])
	counterText := string(runes[numEnd:])

	value, err := numbers.Parse(numText)
	if err != nil {
		return Match{}, false
	}

	if c, ok := Lookup(counterText); ok {
		return Match{
			Value:       value,
			NumberText:  numText,
			CounterText: counterText,
			Reading:     Reading(value, c.Reading),
		}, true
	}

	if !chars.AllKana([]rune(counterText)) {
		return Match{}, false
	}
	hira := chars.AsHiragana(counterText)
	return Match{
		Value:       value,
		NumberText:  numText,
		CounterText: counterText,
		Reading:     Reading(value, hira),
	}, true
}

// Text renders the written form of a number+counter combination, using the
// native spelling where one exists.
func Text(number int64, counterKanji, counterReading string) string {
	if n := int(number); int64(n) == number {
		if special, ok := nativeCounters[counterReading][n]; ok {
			return special
		}
	}
	var b strings.Builder
	b.WriteString(numbers.ToKanji(number))
	b.WriteString(counterKanji)
	return b.String()
}
