package site

import (
	"testing"

	"autodailies/internal/config"
	"autodailies/internal/model"
)

func intp(n int) *int { return &n }

func TestShouldOpenCase(t *testing.T) {
	tests := []struct {
		name      string
		cs        model.Case
		price     *int
		threshold int
		want      bool
	}{
		{"at threshold opens", model.Case{}, intp(1), 1, true},
		{"above threshold skips", model.Case{}, intp(2), 1, false},
		{"free case opens", model.Case{}, nil, 1, true},
		{"target ignores price", model.Case{Target: true}, intp(100), 1, true},
		{"zero threshold paid case skips", model.Case{}, intp(1), 0, false},
	}
	for _, tc := range tests {
		if got := ShouldOpenCase(tc.cs, tc.price, tc.threshold); got != tc.want {
			t.Errorf("%s: ShouldOpenCase = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestShouldJoinGiveaway(t *testing.T) {
	tests := []struct {
		name      string
		currency  model.CurrencyType
		price     *int
		threshold int
		want      bool
	}{
		{"free always joins", model.CurrencyUnknown, nil, 0, true},
		{"zero price joins", model.CurrencyCoin, intp(0), 0, true},
		{"gold never joins", model.CurrencyGold, intp(1), 100, false},
		{"coin at threshold joins", model.CurrencyCoin, intp(10), 10, true},
		{"coin above threshold skips", model.CurrencyCoin, intp(11), 10, false},
	}
	for _, tc := range tests {
		if got := ShouldJoinGiveaway(tc.currency, tc.price, tc.threshold); got != tc.want {
			t.Errorf("%s: ShouldJoinGiveaway = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestParseGiveawayPrice(t *testing.T) {
	for _, text := range []string{"0", "Бесплатно", "Free"} {
		price, free := parseGiveawayPrice(text)
		if price != nil || !free {
			t.Errorf("parseGiveawayPrice(%q) = (%v, %v), want (nil, true)", text, price, free)
		}
	}

	price, free := parseGiveawayPrice("25")
	if price == nil || *price != 25 || free {
		t.Errorf("parseGiveawayPrice(25) = (%v, %v), want (25, false)", price, free)
	}

	// A price element whose text is neither free nor numeric is unreadable;
	// it must not be confused with a free entry.
	price, free = parseGiveawayPrice("???")
	if price != nil || free {
		t.Errorf("parseGiveawayPrice(???) = (%v, %v), want (nil, false)", price, free)
	}
}

func TestSellable(t *testing.T) {
	cfg := func(sellInv, sellGold, sellIgnored bool, goldCeiling int) *config.Config {
		c := &config.Config{}
		c.Flags.SellInventory = sellInv
		c.Flags.SellGold = sellGold
		c.Flags.SellIgnored = sellIgnored
		c.General.SellGoldPriceThreshold = goldCeiling
		return c
	}
	coin := model.InventoryItem{Name: "Меч", Price: intp(10), Currency: model.CurrencyCoin}
	gold := model.InventoryItem{Name: "Лук", Price: intp(50), Currency: model.CurrencyGold}
	ignored := model.InventoryItem{Name: "Благословение луны", Price: intp(10), Currency: model.CurrencyCoin}
	unknown := model.InventoryItem{Name: "Вещь", Price: intp(10), Currency: model.CurrencyUnknown}

	tests := []struct {
		name    string
		it      model.InventoryItem
		hasSell bool
		cfg     *config.Config
		want    bool
	}{
		{"selling disabled", coin, true, cfg(false, false, false, 0), false},
		{"no sell button", coin, false, cfg(true, false, false, 0), false},
		{"coin item sells", coin, true, cfg(true, false, false, 0), true},
		{"gold needs sell_gold", gold, true, cfg(true, false, false, 100), false},
		{"gold under ceiling sells", gold, true, cfg(true, true, false, 100), true},
		{"gold over ceiling kept", gold, true, cfg(true, true, false, 40), false},
		{"ignored keyword kept", ignored, true, cfg(true, false, false, 0), false},
		{"ignored keyword with override", ignored, true, cfg(true, false, true, 0), true},
		{"unknown currency kept", unknown, true, cfg(true, true, true, 100), false},
	}
	for _, tc := range tests {
		if got := Sellable(tc.it, tc.hasSell, tc.cfg); got != tc.want {
			t.Errorf("%s: Sellable = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestTallyCase(t *testing.T) {
	pricey := model.Case{Link: "https://example.com/case/pricey"}
	res := model.CasesResult{Result: model.OK(), Available: []model.Case{pricey}}

	// One available case, price 5 against threshold 1, not the target: the
	// price gate rejects it and the skip lands in neither counter.
	if ShouldOpenCase(pricey, intp(5), 1) {
		t.Fatal("price 5 should not pass threshold 1")
	}
	tallyCase(&res, pricey, false)
	if res.Opened != 0 || res.Ignored != 0 || len(res.Available) != 1 {
		t.Errorf("price skip: opened=%d ignored=%d available=%d, want 0/0/1",
			res.Opened, res.Ignored, len(res.Available))
	}

	tallyCase(&res, model.Case{Ignored: true}, false)
	if res.Ignored != 1 {
		t.Errorf("ignore-list skip: ignored=%d, want 1", res.Ignored)
	}

	tallyCase(&res, model.Case{}, true)
	if res.Opened != 1 {
		t.Errorf("open: opened=%d, want 1", res.Opened)
	}

	// The target overrides its own ignore-list entry.
	tallyCase(&res, model.Case{Ignored: true, Target: true}, true)
	if res.Opened != 2 || res.Ignored != 1 {
		t.Errorf("target open: opened=%d ignored=%d, want 2/1", res.Opened, res.Ignored)
	}
}

func TestParseReward(t *testing.T) {
	n, cur := parseReward("Вы получили 10 монет")
	if n != 10 || cur != model.CurrencyCoin {
		t.Errorf("parseReward = (%d, %v), want (10, coins)", n, cur)
	}
	n, cur = parseReward("Вы получили 250 моры")
	if n != 250 || cur != model.CurrencyGold {
		t.Errorf("parseReward = (%d, %v), want (250, gold)", n, cur)
	}
	n, cur = parseReward("С возвращением")
	if n != 0 || cur != model.CurrencyUnknown {
		t.Errorf("parseReward on titleless reward = (%d, %v), want (0, unknown)", n, cur)
	}
}

func TestLastAfter(t *testing.T) {
	if got := lastAfter("ID 123456", "ID"); got != " 123456" {
		t.Errorf("lastAfter = %q", got)
	}
	if got := lastAfter("123456", "ID"); got != "123456" {
		t.Errorf("lastAfter without sep = %q", got)
	}
}
