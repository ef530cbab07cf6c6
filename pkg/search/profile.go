package search

import "github.com/hazyhaar/tanzil-search/pkg/quran"

// FieldWeight pairs a verse field with its match weight. Higher weight means
// a good match in that field counts for more.
type FieldWeight struct {
	Field  quran.Field
	Weight float64
}

// Profile is the fuzzy-search configuration for one (script, intent)
// combination. Pure configuration, constructed fresh per query.
type Profile struct {
	Fields            []FieldWeight
	Threshold         float64 // max accepted dissimilarity: 0 exact, 1 anything
	MinMatchLength    int     // queries shorter than this (in runes) match nothing
	LocationSensitive bool
}

// SelectProfile returns the profile for the given script and intent. Keyword
// profiles use tighter thresholds because a short deliberate phrase should
// match precisely; recitation profiles are looser because transcribed
// recitations diverge more from any single reference field. The heaviest
// field is always the one in the query's own script.
func SelectProfile(script Script, intent Intent) Profile {
	switch {
	case script == ScriptArabic && intent == IntentRecitation:
		return Profile{
			Fields: []FieldWeight{
				{quran.FieldArabic, 3},
				{quran.FieldTransliteration, 1},
			},
			Threshold:      0.5,
			MinMatchLength: 3,
		}
	case script == ScriptArabic && intent == IntentKeyword:
		return Profile{
			Fields: []FieldWeight{
				{quran.FieldArabic, 2},
				{quran.FieldTransliteration, 1},
				{quran.FieldTranslation, 1},
			},
			Threshold:      0.2,
			MinMatchLength: 2,
		}
	case script == ScriptLatin && intent == IntentRecitation:
		return Profile{
			Fields: []FieldWeight{
				{quran.FieldTransliteration, 2},
				{quran.FieldTranslation, 1.5},
				{quran.FieldArabic, 1},
			},
			Threshold:      0.5,
			MinMatchLength: 3,
		}
	default: // latin keyword
		return Profile{
			Fields: []FieldWeight{
				{quran.FieldTransliteration, 1},
				{quran.FieldTranslation, 1},
				{quran.FieldCommentary, 1},
				{quran.FieldArabic, 1},
			},
			Threshold:      0.4,
			MinMatchLength: 1,
		}
	}
}
