package site

import "autodailies/internal/dom"

// Page URLs. The bot hardcodes one site; this is by requirement, not an
// accident of implementation.
const (
	BaseURL     = "https://genshindrop.io"
	CheckinURL  = BaseURL + "/checkin"
	GiveawayURL = BaseURL + "/give"
	ProfileURL  = BaseURL + "/profile"
)

// IgnoreCases lists case slugs excluded from the opening pass unless one of
// them is the configured target case.
var IgnoreCases = []string{
	"druzeskii-keis",
	"nescatnaya-paimon",
	"bednaya-mona",
	"korobka-vezuncika",
	"vse-ili-nicego",
	"damaznaya-udaca",
	"korobka-inadzumy",
	"dar-arxontov",
	"pokrovitelstvo-dilyuka",
}

// IgnoreItems lists inventory name keywords excluded from selling unless the
// sell_ignored override is set. Matched case-insensitively as substrings.
var IgnoreItems = []string{
	"благословение",
	"молитва",
	"подписка",
}

// Localized modal phrases. These are matched fuzzily (dom.MatchesPhrase) so
// minor copy changes on the site don't silently break detection, and kept as
// slices so new variants are a one-line addition.
var (
	// Titles the join-result modal shows when the site rejected the join
	// even though the click landed.
	joinFailedPhrases = []string{
		"Вы уже участвуете",
		"Ошибка",
	}

	// Titles confirming an inventory sale.
	soldPhrases = []string{
		"Предмет продан",
		"Успешно продано",
	}

	// Price texts that mean a giveaway is free to enter.
	freePriceTexts = []string{"0", "Бесплатно", "Free"}
)

// Check-in page.
var (
	selCheckinButton  = dom.CSS(".checkin-day-today-label-check")
	selCheckinStreak  = dom.CSS(".checkin-streak_value")
	selCheckinMonthly = dom.CSS(".checkin-bonus--monthly .checkin-bonus_value")
	selCheckinPayment = dom.CSS(".checkin-bonus--payments .checkin-bonus_value")
	selCheckinSkip    = dom.CSS(".checkin-day-skip_icon")
)

// Giveaway pages.
var (
	selGiveawayLink = dom.CSS("a.give-box__link")
	selGiveawayJoin = dom.XPath(`//button[contains(text(), 'Участвовать')]`)
)

// Case catalog and case pages.
var (
	selCaseBox      = dom.CSS(".index-cat-container")
	selCaseCardList = dom.CSS(".box-page-loot-cards")
)

// Login flow.
var (
	selLoginButton   = dom.CSS(".header-login_button")
	selTGLoginButton = dom.CSS(".login-modal_item--telegram")
	selTGPhoneInput  = dom.CSS("#login-phone")
	selTGAccept      = dom.XPath(`//button[contains(text(), 'Accept')]`)
)

// Profile page.
var (
	selProfilePanel = dom.CSS(".profile-account-panel")
	selGoldLabel    = dom.CSS("span[data-key='user_mor_value']")
	selCoinsLabel   = dom.CSS("span[data-key='user_coin_value']")
	selInventoryBox = dom.CSS(".profile-inventory_item")
	selLoadMore     = dom.CSS(".profile-inventory_more")
)
