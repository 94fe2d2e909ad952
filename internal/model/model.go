// Package model holds the data types shared by the action modules, the
// orchestrator and the notification builder. Everything here is rebuilt
// from scratch on every account run; nothing is persisted.
package model

import (
	"fmt"
	"strings"
)

// CurrencyType distinguishes the site's two currencies.
type CurrencyType int

const (
	CurrencyUnknown CurrencyType = iota
	CurrencyCoin                 // low-value currency
	CurrencyGold                 // premium currency
)

func (c CurrencyType) String() string {
	switch c {
	case CurrencyCoin:
		return "coins"
	case CurrencyGold:
		return "gold"
	default:
		return "unknown"
	}
}

// Result is the base outcome of every action. Reason is set exactly when
// Success is false; use OK and Failf so the invariant holds by construction.
type Result struct {
	Success bool
	Reason  string
}

// OK returns a successful Result.
func OK() Result {
	return Result{Success: true}
}

// Failf returns a failed Result with the given reason.
func Failf(format string, args ...any) Result {
	return Result{Success: false, Reason: fmt.Sprintf(format, args...)}
}

// Balance is the pair of site-wide currency counters. It is only ever read
// from the live page, never computed.
type Balance struct {
	Gold  int
	Coins int
}

// InventoryItem is one card in the profile inventory. Price is nil when the
// card carries no readable price.
type InventoryItem struct {
	Name     string
	Image    string
	Price    *int
	Currency CurrencyType
	Sold     bool
}

// InventoryMeta sums unsold item prices per currency. It is derived from a
// snapshot and must be recomputed after any mutation.
type InventoryMeta struct {
	AllCoins int
	AllGold  int
}

// MetaOf computes InventoryMeta for the given items. Sold items are excluded
// from both sums.
func MetaOf(items []InventoryItem) InventoryMeta {
	var m InventoryMeta
	for _, it := range items {
		if it.Sold || it.Price == nil {
			continue
		}
		switch it.Currency {
		case CurrencyCoin:
			m.AllCoins += *it.Price
		case CurrencyGold:
			m.AllGold += *it.Price
		}
	}
	return m
}

// Profile is one snapshot of the logged-in account. An empty ID means the
// fetch failed and the account is treated as not logged in.
type Profile struct {
	ID        string
	AvatarURL string
	Username  string
	Rice      *int
	Verified  *bool
	Balance   Balance
	Inventory []InventoryItem
}

// Valid reports whether the profile fetch produced usable data.
func (p Profile) Valid() bool {
	return p.ID != ""
}

// Meta recomputes the inventory sums for this snapshot.
func (p Profile) Meta() InventoryMeta {
	return MetaOf(p.Inventory)
}

// Case is one openable case discovered on the catalog page. Ignored and
// Target are pure functions of the link's trailing path segment.
type Case struct {
	Link    string
	Ignored bool
	Target  bool
	Image   string
	Name    string
}

// Slug returns the trailing path segment of a case link.
func Slug(link string) string {
	link = strings.TrimRight(link, "/")
	if i := strings.LastIndexByte(link, '/'); i >= 0 {
		return link[i+1:]
	}
	return link
}

// NewCase classifies a discovered case against the static ignore list and
// the configured target slug.
func NewCase(link, image, name string, ignoreList []string, target string) Case {
	slug := Slug(link)
	c := Case{Link: link, Image: image, Name: name}
	for _, ig := range ignoreList {
		if slug == ig {
			c.Ignored = true
			break
		}
	}
	c.Target = target != "" && strings.EqualFold(slug, target)
	return c
}

// CheckinResult is the outcome of the daily check-in. The auxiliary fields
// (streak, bonuses, skip icon) reflect persistent account state and are
// populated even when the button was absent.
type CheckinResult struct {
	Result
	Streak        int
	MonthlyBonus  float64 // 0..1 fraction
	PaymentsBonus float64 // 0..1 fraction
	SkippedDay    bool
	Earned        int
	Currency      CurrencyType
}

// CasesResult is the outcome of the case-opening pass. A case skipped by
// price counts neither as opened nor as ignored.
type CasesResult struct {
	Result
	Available []Case
	Opened    int
	Ignored   int
}

// GiveawayResult is the outcome of the giveaway pass. Joined is the subset
// of Giveaways that passed the price gate and the modal check.
type GiveawayResult struct {
	Result
	Giveaways []string
	Joined    []string
}

// RunResult bundles one account's full run: both profile snapshots plus the
// per-action results for whichever actions were enabled.
type RunResult struct {
	Result
	ID       string
	Account  string
	Initial  Profile
	Final    Profile
	Checkin  *CheckinResult
	Giveaway *GiveawayResult
	Cases    *CasesResult
}

// AllCoins is the final coin balance plus unsold coin-priced inventory.
func (r RunResult) AllCoins() int {
	return r.Final.Balance.Coins + r.Final.Meta().AllCoins
}

// AllGold is the final gold balance plus unsold gold-priced inventory.
func (r RunResult) AllGold() int {
	return r.Final.Balance.Gold + r.Final.Meta().AllGold
}

// EarnedCoins is the coin balance delta between the two snapshots.
func (r RunResult) EarnedCoins() int {
	return r.Final.Balance.Coins - r.Initial.Balance.Coins
}

// EarnedGold is the gold balance delta between the two snapshots.
func (r RunResult) EarnedGold() int {
	return r.Final.Balance.Gold - r.Initial.Balance.Gold
}

// ReachedTargetGold reports whether the account hit the configured gold
// goal. With ignoreInventory set, only the wallet balance counts.
func (r RunResult) ReachedTargetGold(goal int, ignoreInventory bool) bool {
	if goal <= 0 {
		return false
	}
	if ignoreInventory {
		return r.Final.Balance.Gold >= goal
	}
	return r.AllGold() >= goal
}

// Summary is the cross-account fold handed to the notifier.
type Summary struct {
	Results     []RunResult
	EarnedCoins int
	EarnedGold  int
	Failures    []string
}

// Fold aggregates per-account results. Failed accounts contribute to the
// failure list, never to the totals.
func Fold(results []RunResult) Summary {
	s := Summary{Results: results}
	for _, r := range results {
		if !r.Success {
			s.Failures = append(s.Failures, fmt.Sprintf("%s: %s", r.Account, r.Reason))
			continue
		}
		s.EarnedCoins += r.EarnedCoins()
		s.EarnedGold += r.EarnedGold()
	}
	return s
}
