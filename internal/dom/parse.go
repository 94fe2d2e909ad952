package dom

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"autodailies/internal/model"
)

var digitRun = regexp.MustCompile(`[0-9]+`)

// ParseAmount extracts the first contiguous digit run after stripping
// thousand separators and non-breaking spaces. Returns nil when the text
// carries no number.
func ParseAmount(s string) *int {
	s = strings.NewReplacer(" ", "", ",", "", " ", "").Replace(s)
	m := digitRun.FindString(s)
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &n
}

// ParsePercent parses "15%"-style text into a 0..1 fraction. Unparseable
// text yields 0.
func ParsePercent(s string) float64 {
	n := ParseAmount(s)
	if n == nil {
		return 0
	}
	return float64(*n) / 100
}

// Currency keyword tokens in the target site's own copy. The coin token list
// includes the site's localized coin name used in case requirements.
var (
	coinWords = []string{"монет", "coin", "чайник"}
	goldWords = []string{"мора", "мор", "gold"}
)

// CurrencyFromText classifies a currency from visible text keywords.
func CurrencyFromText(s string) model.CurrencyType {
	low := strings.ToLower(s)
	for _, w := range coinWords {
		if strings.Contains(low, w) {
			return model.CurrencyCoin
		}
	}
	for _, w := range goldWords {
		if strings.Contains(low, w) {
			return model.CurrencyGold
		}
	}
	return model.CurrencyUnknown
}

// CurrencyFromClass classifies a currency from a CSS class fragment: the
// site tags coin amounts with "coin" and gold amounts with "mor".
func CurrencyFromClass(class string) model.CurrencyType {
	low := strings.ToLower(class)
	switch {
	case strings.Contains(low, "coin"):
		return model.CurrencyCoin
	case strings.Contains(low, "mor"):
		return model.CurrencyGold
	}
	return model.CurrencyUnknown
}

// SimilarityThreshold is the minimum character ratio for a modal title to
// count as a match for a known localized phrase. Exact matching is too
// brittle against the site's copy variations.
const SimilarityThreshold = 0.75

// Similarity returns the case-insensitive difflib character ratio of two
// strings, in 0..1.
func Similarity(a, b string) float64 {
	return difflib.NewMatcher(chars(strings.ToLower(a)), chars(strings.ToLower(b))).Ratio()
}

// MatchesPhrase reports whether title is similar enough to any of the known
// phrases.
func MatchesPhrase(title string, phrases []string) bool {
	for _, p := range phrases {
		if Similarity(title, p) >= SimilarityThreshold {
			return true
		}
	}
	return false
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
