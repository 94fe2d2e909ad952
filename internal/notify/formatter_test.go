package notify

import (
	"strings"
	"testing"

	"autodailies/internal/model"
)

func intp(n int) *int { return &n }

func TestFormatSummary(t *testing.T) {
	s := model.Fold([]model.RunResult{
		{
			Result:  model.OK(),
			Account: "alice",
			Initial: model.Profile{ID: "1", Username: "Alice", Balance: model.Balance{Coins: 50, Gold: 100}},
			Final: model.Profile{
				ID: "1", Username: "Alice",
				Balance: model.Balance{Coins: 60, Gold: 110},
				Inventory: []model.InventoryItem{
					{Name: "kept", Price: intp(30), Currency: model.CurrencyGold},
					{Name: "sold", Price: intp(5), Currency: model.CurrencyCoin, Sold: true},
				},
			},
			Checkin:  &model.CheckinResult{Result: model.OK(), Earned: 10, Currency: model.CurrencyCoin, Streak: 4, MonthlyBonus: 0.15},
			Giveaway: &model.GiveawayResult{Result: model.OK(), Giveaways: []string{"g1", "g2"}, Joined: []string{"g1"}},
			Cases:    &model.CasesResult{Result: model.OK(), Available: make([]model.Case, 3), Opened: 1, Ignored: 1},
		},
		{
			Result:  model.Failf("no cookie file: bob.json"),
			Account: "bob",
		},
	})

	out := FormatSummary(s, 140, false)

	for _, want := range []string{
		"Coins: 50 → 60 (+10)",
		"Gold: 100 → 110 (+10)",
		"Check-in: +10 coins (streak 4, monthly 15%",
		"Giveaways: joined 1 of 2",
		"Cases: opened 1, ignored 1 of 3 available",
		"Sold: 1 items",
		"Target gold reached: 140",
		"bob: no cookie file: bob.json",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q\n%s", want, out)
		}
	}
}

func TestFormatSummaryFailedAccountBlock(t *testing.T) {
	s := model.Fold([]model.RunResult{{Result: model.Failf("interactive login failed"), Account: "carol"}})
	out := FormatSummary(s, 0, false)
	if !strings.Contains(out, "carol") || !strings.Contains(out, "interactive login failed") {
		t.Errorf("failed account not reported:\n%s", out)
	}
	if strings.Contains(out, "Target gold") {
		t.Error("target line should not appear with a zero goal")
	}
}

func TestFormatSummaryFailedCheckinLine(t *testing.T) {
	s := model.Fold([]model.RunResult{{
		Result:  model.OK(),
		Account: "dave",
		Initial: model.Profile{ID: "1"},
		Final:   model.Profile{ID: "1"},
		Checkin: &model.CheckinResult{Result: model.Failf("already checked in today")},
	}})
	out := FormatSummary(s, 0, false)
	if !strings.Contains(out, "Check-in: already checked in today") {
		t.Errorf("failed check-in reason missing:\n%s", out)
	}
}
