package notify

import (
	"fmt"
	"strings"
	"time"

	"autodailies/internal/model"
)

// FormatSummary renders the cross-account summary: global totals first,
// then one diff block per account, then the failure list. The shape is what
// gets delivered; transport is the webhook sender's concern.
func FormatSummary(s model.Summary, targetGold int, ignoreInventory bool) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("**AutoDailies** | %s\n", time.Now().Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Accounts: %d | Earned: %+d coins, %+d gold\n\n",
		len(s.Results), s.EarnedCoins, s.EarnedGold))

	for _, r := range s.Results {
		b.WriteString(formatAccount(r, targetGold, ignoreInventory))
	}

	if len(s.Failures) > 0 {
		b.WriteString("**Failures:**\n")
		for _, f := range s.Failures {
			b.WriteString(fmt.Sprintf("- %s\n", f))
		}
	}
	return b.String()
}

func formatAccount(r model.RunResult, targetGold int, ignoreInventory bool) string {
	var b strings.Builder

	if !r.Success {
		b.WriteString(fmt.Sprintf("**%s** — failed: %s\n\n", r.Account, r.Reason))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("**%s** (%s)\n", r.Account, r.Final.Username))
	b.WriteString(fmt.Sprintf("Coins: %d → %d (%+d) | Gold: %d → %d (%+d)\n",
		r.Initial.Balance.Coins, r.Final.Balance.Coins, r.EarnedCoins(),
		r.Initial.Balance.Gold, r.Final.Balance.Gold, r.EarnedGold()))

	meta := r.Final.Meta()
	if meta.AllCoins > 0 || meta.AllGold > 0 {
		b.WriteString(fmt.Sprintf("Inventory: %d coins, %d gold unsold\n", meta.AllCoins, meta.AllGold))
	}
	if c := r.Checkin; c != nil {
		if c.Success {
			b.WriteString(fmt.Sprintf("Check-in: +%d %s (streak %d, monthly %.0f%%, payments %.0f%%)\n",
				c.Earned, c.Currency, c.Streak, c.MonthlyBonus*100, c.PaymentsBonus*100))
		} else {
			b.WriteString(fmt.Sprintf("Check-in: %s\n", c.Reason))
		}
	}
	if g := r.Giveaway; g != nil {
		if g.Success {
			b.WriteString(fmt.Sprintf("Giveaways: joined %d of %d\n", len(g.Joined), len(g.Giveaways)))
		} else {
			b.WriteString(fmt.Sprintf("Giveaways: %s\n", g.Reason))
		}
	}
	if cs := r.Cases; cs != nil {
		if cs.Success {
			b.WriteString(fmt.Sprintf("Cases: opened %d, ignored %d of %d available\n",
				cs.Opened, cs.Ignored, len(cs.Available)))
		} else {
			b.WriteString(fmt.Sprintf("Cases: %s\n", cs.Reason))
		}
	}
	if sold := countSold(r.Final.Inventory); sold > 0 {
		b.WriteString(fmt.Sprintf("Sold: %d items\n", sold))
	}
	if targetGold > 0 && r.ReachedTargetGold(targetGold, ignoreInventory) {
		b.WriteString(fmt.Sprintf("Target gold reached: %d\n", targetGold))
	}
	b.WriteString("\n")
	return b.String()
}

func countSold(items []model.InventoryItem) int {
	n := 0
	for _, it := range items {
		if it.Sold {
			n++
		}
	}
	return n
}
