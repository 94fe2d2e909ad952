package dom

import (
	"testing"

	"autodailies/internal/model"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{"1,234", intp(1234)},
		{"1 234 монет", intp(1234)}, // non-breaking space separator
		{"Цена: 50", intp(50)},
		{"+10 монет", intp(10)},
		{"Бесплатно", nil},
		{"", nil},
	}
	for _, tc := range tests {
		got := ParseAmount(tc.in)
		switch {
		case tc.want == nil && got != nil:
			t.Errorf("ParseAmount(%q) = %d, want nil", tc.in, *got)
		case tc.want != nil && got == nil:
			t.Errorf("ParseAmount(%q) = nil, want %d", tc.in, *tc.want)
		case tc.want != nil && *got != *tc.want:
			t.Errorf("ParseAmount(%q) = %d, want %d", tc.in, *got, *tc.want)
		}
	}
}

func TestParsePercent(t *testing.T) {
	if got := ParsePercent("15%"); got != 0.15 {
		t.Errorf("ParsePercent(15%%) = %v, want 0.15", got)
	}
	if got := ParsePercent("no number"); got != 0 {
		t.Errorf("ParsePercent(no number) = %v, want 0", got)
	}
}

func TestCurrencyFromText(t *testing.T) {
	tests := []struct {
		in   string
		want model.CurrencyType
	}{
		{"+50 монет", model.CurrencyCoin},
		{"10 Чайников", model.CurrencyCoin},
		{"100 coins", model.CurrencyCoin},
		{"+200 моры", model.CurrencyGold},
		{"5 gold", model.CurrencyGold},
		{"что-то другое", model.CurrencyUnknown},
	}
	for _, tc := range tests {
		if got := CurrencyFromText(tc.in); got != tc.want {
			t.Errorf("CurrencyFromText(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCurrencyFromClass(t *testing.T) {
	tests := []struct {
		in   string
		want model.CurrencyType
	}{
		{"price price-coin", model.CurrencyCoin},
		{"price price-mor", model.CurrencyGold},
		{"price", model.CurrencyUnknown},
	}
	for _, tc := range tests {
		if got := CurrencyFromClass(tc.in); got != tc.want {
			t.Errorf("CurrencyFromClass(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity("abc", "abc"); got != 1 {
		t.Errorf("Similarity of equal strings = %v, want 1", got)
	}
	if got := Similarity("abc", "xyz"); got != 0 {
		t.Errorf("Similarity of disjoint strings = %v, want 0", got)
	}
	// Case differences never count against the ratio.
	if got := Similarity("Ошибка", "ошибка"); got != 1 {
		t.Errorf("Similarity should be case-insensitive, got %v", got)
	}
}

func TestMatchesPhrase(t *testing.T) {
	phrases := []string{"Вы уже участвуете в этом розыгрыше"}
	// One character off still matches above the threshold.
	if !MatchesPhrase("Вы уже участвуете в этом розыгрыше!", phrases) {
		t.Error("near-identical title should match")
	}
	if MatchesPhrase("Поздравляем", phrases) {
		t.Error("unrelated title should not match")
	}
	if MatchesPhrase("anything", nil) {
		t.Error("empty phrase list should never match")
	}
}

func intp(n int) *int { return &n }
