// Package search implements the multilingual match-resolution pipeline:
// script-aware normalization, intent classification, profile selection, and
// fuzzy matching over one chapter's verse collection.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Script is the detected writing system of a query.
type Script int

const (
	ScriptLatin Script = iota
	ScriptArabic
)

func (s Script) String() string {
	if s == ScriptArabic {
		return "arabic"
	}
	return "latin"
}

// NormalizedQuery is the cleaned-up form of a raw query.
type NormalizedQuery struct {
	Text   string
	Script Script
}

// tashkeel is the Arabic diacritic (vowel mark) range U+064B..U+065F.
var tashkeel = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x064B, Hi: 0x065F, Stride: 1}},
}

// latinClean strips everything that is not a letter, a number, or whitespace,
// then applies compatibility composition.
var latinClean = transform.Chain(
	runes.Remove(runes.Predicate(func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.IsSpace(r)
	})),
	norm.NFKC,
)

// ContainsArabic reports whether s has any rune in the Arabic script,
// diacritics included. The tashkeel marks are script Inherited in Unicode,
// not Arabic, so they need their own check.
func ContainsArabic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Arabic, r) || unicode.Is(tashkeel, r) {
			return true
		}
	}
	return false
}

// ContainsTashkeel reports whether s carries any Arabic vowel mark.
func ContainsTashkeel(s string) bool {
	for _, r := range s {
		if unicode.Is(tashkeel, r) {
			return true
		}
	}
	return false
}

// Normalize cleans a raw query per its script. Latin input is trimmed,
// lowercased, stripped of symbols, and NFKC-composed. Arabic input is trimmed
// and NFC-composed only: case and tashkeel are semantically meaningful there
// and stripping them would cost match precision against the literal text.
// Empty output is valid and propagates; the matcher guards against it.
func Normalize(raw string) NormalizedQuery {
	raw = strings.TrimSpace(raw)

	if ContainsArabic(raw) {
		return NormalizedQuery{Text: norm.NFC.String(raw), Script: ScriptArabic}
	}

	cleaned, _, _ := transform.String(latinClean, strings.ToLower(raw))
	return NormalizedQuery{Text: cleaned, Script: ScriptLatin}
}
