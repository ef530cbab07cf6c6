package search

import "strings"

// Intent is what the user is trying to do with a query.
type Intent int

const (
	// IntentKeyword is a short, targeted lookup by topic or partial quote.
	IntentKeyword Intent = iota
	// IntentRecitation is a literal rendition of a verse, matched by
	// similarity rather than keyword.
	IntentRecitation
)

func (i Intent) String() string {
	if i == IntentRecitation {
		return "recitation"
	}
	return "keyword"
}

// recitationWordCount is the word-count cutoff above which Arabic input is
// treated as a recitation.
const recitationWordCount = 5

// ClassifyIntent decides whether raw input is a keyword lookup or a
// recitation attempt. A dedicated "recite" control (explicit=true) forces
// IntentRecitation regardless of shape. Otherwise: long Arabic passages and
// precisely-voweled text are recitations, everything else is a keyword.
// Pure and total.
func ClassifyIntent(raw string, explicit bool) Intent {
	if explicit {
		return IntentRecitation
	}

	if ContainsTashkeel(raw) {
		return IntentRecitation
	}
	if len(strings.Fields(raw)) > recitationWordCount && ContainsArabic(raw) {
		return IntentRecitation
	}
	return IntentKeyword
}
