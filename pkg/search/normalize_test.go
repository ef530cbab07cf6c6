package search

import "testing"

func TestNormalizeLatin(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Hello, World!", "hello world"},
		{"  neraka  ", "neraka"},
		{"hari-kebangkitan", "harikebangkitan"},
		{"Al-Mulk (67)", "almulk 67"},
		{"Élodie", "élodie"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		got := Normalize(tt.input)
		if got.Script != ScriptLatin {
			t.Errorf("Normalize(%q).Script = %v, want latin", tt.input, got.Script)
		}
		if got.Text != tt.want {
			t.Errorf("Normalize(%q).Text = %q, want %q", tt.input, got.Text, tt.want)
		}
	}
}

func TestNormalizeArabic(t *testing.T) {
	// Tashkeel and case must survive: they are semantically meaningful.
	input := "  تَبَارَكَ الَّذِي  "
	got := Normalize(input)
	if got.Script != ScriptArabic {
		t.Fatalf("script = %v, want arabic", got.Script)
	}
	if got.Text != "تَبَارَكَ الَّذِي" {
		t.Errorf("Text = %q, want trimmed input with diacritics intact", got.Text)
	}
}

func TestNormalizeMixedScriptIsArabic(t *testing.T) {
	got := Normalize("surah الملك")
	if got.Script != ScriptArabic {
		t.Errorf("script = %v, want arabic for mixed input", got.Script)
	}
}

func TestNormalizeIdempotentASCII(t *testing.T) {
	inputs := []string{
		"the day of resurrection",
		"Hello, World!",
		"  spaced   out  ",
		"abc123",
		"",
	}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once.Text)
		if twice != once {
			t.Errorf("Normalize not idempotent for %q: %+v then %+v", input, once, twice)
		}
	}
}

func TestContainsArabic(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"neraka", false},
		{"الملك", true},
		{"xًy", true}, // lone tashkeel mark counts
		{"ً", true}, // a bare diacritic is script Inherited, still Arabic here
		{"تَبَارَكَ", true},
		{"", false},
	}
	for _, tt := range tests {
		if got := ContainsArabic(tt.input); got != tt.want {
			t.Errorf("ContainsArabic(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestContainsTashkeel(t *testing.T) {
	if ContainsTashkeel("الملك") {
		t.Error("bare Arabic letters should not count as tashkeel")
	}
	if !ContainsTashkeel("تَبَارَكَ") {
		t.Error("voweled text should count as tashkeel")
	}
}
