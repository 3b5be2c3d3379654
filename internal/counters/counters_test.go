package counters

import "testing"

func TestReading(t *testing.T) {
	tests := []struct {
		number  int64
		counter string
		want    string
	}{
		{1, "ほん", "いっぽん"},
		{3, "ほん", "さんぼん"},
		{6, "ほん", "ろっぽん"},
		{3, "ひき", "さんびき"},
		{1, "ぴき", "いっぴき"},
		{2, "ひき", "にひき"},
		{1, "にん", "ひとり"},
		{2, "にん", "ふたり"},
		{3, "にん", "さんにん"},
		{1, "つ", "ひとつ"},
		{10, "つ", "とお"},
		{3, "ふん", "さんぷん"},
		{5, "まい", "ごまい"},
		{8, "かい", "はっかい"},
	}
	for _, tt := range tests {
		if got := Reading(tt.number, tt.counter); got != tt.want {
			t.Errorf("Reading(%d, %q) = %q, want %q", tt.number, tt.counter, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		text        string
		wantOK      bool
		wantValue   int64
		wantReading string
	}{
		{"三匹", true, 3, "さんびき"},
		{"一本", true, 1, "いっぽん"},
		{"2人", true, 2, "ふたり"},
		{"十枚", true, 10, "じゅうまい"},
		{"百円", true, 100, "ひゃくえん"},
		{"三", false, 0, ""},
		{"匹", false, 0, ""},
		{"", false, 0, ""},
		{"三猫", false, 0, ""},
	}
	for _, tt := range tests {
		m, ok := Detect(tt.text)
		if ok != tt.wantOK {
			t.Errorf("Detect(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if m.Value != tt.wantValue || m.Reading != tt.wantReading {
			t.Errorf("Detect(%q) = (%d, %q), want (%d, %q)",
				tt.text, m.Value, m.Reading, tt.wantValue, tt.wantReading)
		}
	}
}

func TestLookup(t *testing.T) {
	if c, ok := Lookup("匹"); !ok || c.Reading != "ひき" {
		t.Errorf("Lookup(匹) = %+v, %v", c, ok)
	}
	if c, ok := Lookup("ヒキ"); !ok || c.Reading != "ひき" {
		t.Errorf("Lookup(ヒキ) = %+v, %v", c, ok)
	}
	if _, ok := Lookup("猫"); ok {
		t.Error("Lookup(猫) should not match")
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		number  int64
		kanji   string
		reading string
		want    string
	}{
		{3, "匹", "ひき", "三匹"},
		{1, "", "つ", "ひとつ"},
		{100, "円", "えん", "百円"},
	}
	for _, tt := range tests {
		if got := Text(tt.number, tt.kanji, tt.reading); got != tt.want {
			t.Errorf("Text(%d, %q, %q) = %q, want %q", tt.number, tt.kanji, tt.reading, got, tt.want)
		}
	}
}
