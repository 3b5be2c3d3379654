package chars

import (
	"reflect"
	"testing"
)

func TestOf(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		want Class
	}{
		{"hiragana", 'あ', ClassHiragana},
		{"katakana", 'ア', ClassKatakana},
		{"kanji", '猫', ClassKanji},
		{"kanji iteration mark", '々', ClassKanji},
		{"ascii digit", '7', ClassNumber},
		{"kanji numeral", '三', ClassNumber},
		{"latin", 'a', ClassOther},
		{"punctuation", '。', ClassOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Of(tt.r); got != tt.want {
				t.Errorf("Of(%q) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestMoraLength(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"ねこ", 2},
		{"きょう", 2},     // small yo attaches
		{"がっこう", 3},    // sokuon attaches
		{"コーヒー", 2},    // long vowels attach
		{"しゃしん", 3},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := MoraLength([]rune(tt.text)); got != tt.want {
				t.Errorf("MoraLength(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestAsHiraganaKatakanaRoundTrip(t *testing.T) {
	if got := AsHiragana("ネコ"); got != "ねこ" {
		t.Errorf("AsHiragana(ネコ) = %q, want ねこ", got)
	}
	if got := AsKatakana("ねこ"); got != "ネコ" {
		t.Errorf("AsKatakana(ねこ) = %q, want ネコ", got)
	}
	// Long vowel mark and non-kana pass through.
	if got, want := AsHiragana("ラーメン屋"), "らーめん屋"; got != want {
		t.Errorf("AsHiragana(ラーメン屋) = %q, want %q", got, want)
	}
}

func TestRendaku(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		handakuten bool
		want       string
	}{
		{"h to b", "ひき", false, "びき"},
		{"h to p", "ひき", true, "ぴき"},
		{"k to g", "かい", false, "がい"},
		{"already voiced", "びき", false, "びき"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rendaku(tt.text, tt.handakuten); got != tt.want {
				t.Errorf("Rendaku(%q, %v) = %q, want %q", tt.text, tt.handakuten, got, tt.want)
			}
		})
	}

	if got := Unrendaku("びき"); got != "ひき" {
		t.Errorf("Unrendaku(びき) = %q, want ひき", got)
	}
}

func TestGeminate(t *testing.T) {
	if got := Geminate("いち"); got != "いっ" {
		t.Errorf("Geminate(いち) = %q, want いっ", got)
	}
	if got := Geminate("イチ"); got != "イッ" {
		t.Errorf("Geminate(イチ) = %q, want イッ", got)
	}
}

func TestStickyPositions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []int
	}{
		{"sokuon blocks next position", "がっこう", []int{2}},
		{"small kana blocks its position", "きょう", []int{1}},
		{"plain text has none", "ねこが", nil},
		{"trailing long vowel is free", "コーヒー", []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StickyPositions([]rune(tt.text))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("StickyPositions(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestConsecutiveGroups(t *testing.T) {
	got := ConsecutiveGroups([]rune("ネコが3匹"), ClassKatakana)
	want := []Span{{Start: 0, End: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("katakana groups = %v, want %v", got, want)
	}

	got = ConsecutiveGroups([]rune("ネコが3匹"), ClassNumber)
	want = []Span{{Start: 3, End: 4}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("number groups = %v, want %v", got, want)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"１２３", "123"},
		{"ＡＢＣ", "ABC"},
		{"ｶﾀｶﾅ", "カタカナ"},
		{"ねこ", "ねこ"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
