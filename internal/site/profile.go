package site

import (
	"context"
	"fmt"
	"strings"
	"time"

	"autodailies/internal/config"
	"autodailies/internal/dom"
	"autodailies/internal/model"
)

// The "load more" control paginates by accumulation. The per-attempt wait is
// already bounded by the locator timeout; the click cap additionally
// guarantees termination if the control gets stuck.
const maxLoadMoreClicks = 64

// Profile fetches the full profile snapshot: identity block, balance and
// inventory, running the sell pass inline when enabled. A returned profile
// with an empty ID means the fetch failed and the account is not logged in;
// the orchestrator treats that as fatal for the account.
func (c *Client) Profile(ctx context.Context) model.Profile {
	p, err := c.profile(ctx)
	if err != nil {
		c.log.WithError(err).Error("profile fetch failed")
		return model.Profile{}
	}
	return p
}

const profileJS = `(() => {
	const box = document.querySelector('.profile-account-panel');
	if (!box) return {found: false};
	const pick = sel => {
		const el = box.querySelector(sel);
		return el ? el.textContent.trim() : '';
	};
	const avatar = box.querySelector('.profile-avatar img, img.profile-avatar');
	const verified = box.querySelector('.profile-verified_icon');
	const rice = box.querySelector('.profile-rice_value');
	return {
		found: true,
		id: pick('.mr-1'),
		username: pick('#mainUsernameValue'),
		avatar: avatar ? (avatar.src || '') : '',
		riceText: rice ? rice.textContent.trim() : '',
		hasVerifiedIcon: !!verified,
		verifiedClass: verified ? verified.className : '',
	};
})()`

func (c *Client) profile(ctx context.Context) (model.Profile, error) {
	if err := c.navigate(ctx, ProfileURL); err != nil {
		return model.Profile{}, err
	}
	if !c.loc.WaitFor(ctx, dom.Visible, selProfilePanel) {
		return model.Profile{}, nil
	}

	var raw struct {
		Found           bool   `json:"found"`
		ID              string `json:"id"`
		Username        string `json:"username"`
		Avatar          string `json:"avatar"`
		RiceText        string `json:"riceText"`
		HasVerifiedIcon bool   `json:"hasVerifiedIcon"`
		VerifiedClass   string `json:"verifiedClass"`
	}
	if err := c.loc.Eval(ctx, profileJS, &raw); err != nil {
		return model.Profile{}, err
	}
	if !raw.Found || raw.ID == "" {
		return model.Profile{}, nil
	}

	p := model.Profile{
		// The ID slot renders as "ID 123456".
		ID:        strings.TrimSpace(lastAfter(raw.ID, "ID")),
		Username:  raw.Username,
		AvatarURL: raw.Avatar,
		Rice:      dom.ParseAmount(raw.RiceText),
	}
	if raw.HasVerifiedIcon {
		// The flag lives in a class fragment, not a DOM attribute.
		v := strings.Contains(raw.VerifiedClass, "true")
		p.Verified = &v
	}

	p.Balance = c.balance(ctx)

	inv, err := c.inventory(ctx)
	if err != nil {
		return model.Profile{}, err
	}
	p.Inventory = inv
	return p, nil
}

// balance reads the two page-level currency counters.
func (c *Client) balance(ctx context.Context) model.Balance {
	var b model.Balance
	if c.loc.WaitFor(ctx, dom.Present, selGoldLabel) {
		b.Gold = intOr0(dom.ParseAmount(c.loc.Text(ctx, selGoldLabel)))
	}
	if c.loc.WaitFor(ctx, dom.Present, selCoinsLabel) {
		b.Coins = intOr0(dom.ParseAmount(c.loc.Text(ctx, selCoinsLabel)))
	}
	return b
}

const inventoryJS = `Array.from(document.querySelectorAll('.profile-inventory_item')).map(item => {
	const pick = sel => {
		const el = item.querySelector(sel);
		return el ? el.textContent.trim() : '';
	};
	const img = item.querySelector('.profile-inventory_item__cover img, img.profile-inventory_item__cover');
	const cur = item.querySelector('.profile-inventory_item__price [class*="coin"], .profile-inventory_item__price [class*="mor"]');
	return {
		name: pick('.profile-inventory_item__name'),
		image: img ? (img.src || '') : '',
		priceText: pick('.profile-inventory_item__price'),
		currencyClass: cur ? cur.className : '',
		hasSell: !!item.querySelector('.profile-inventory_item__sell'),
	};
})`

// inventory loads every item card and runs the sell decision per item. Items
// without a resolvable name are skipped.
func (c *Client) inventory(ctx context.Context) ([]model.InventoryItem, error) {
	if !c.loc.WaitFor(ctx, dom.Visible, selInventoryBox) {
		return nil, nil
	}

	for i := 0; i < maxLoadMoreClicks; i++ {
		if !c.loc.WaitFor(ctx, dom.Visible, selLoadMore) {
			break
		}
		if err := c.loc.Click(ctx, selLoadMore); err != nil {
			break
		}
		dom.SleepJitter(ctx, time.Second, 300*time.Millisecond)
	}

	var raw []struct {
		Name          string `json:"name"`
		Image         string `json:"image"`
		PriceText     string `json:"priceText"`
		CurrencyClass string `json:"currencyClass"`
		HasSell       bool   `json:"hasSell"`
	}
	if err := c.loc.Eval(ctx, inventoryJS, &raw); err != nil {
		return nil, err
	}

	var items []model.InventoryItem
	for _, r := range raw {
		if r.Name == "" {
			continue
		}
		it := model.InventoryItem{
			Name:     r.Name,
			Image:    r.Image,
			Price:    dom.ParseAmount(r.PriceText),
			Currency: dom.CurrencyFromClass(r.CurrencyClass),
		}
		if Sellable(it, r.HasSell, c.cfg) {
			it.Sold = c.sellItem(ctx, it)
		}
		items = append(items, it)
	}
	return items, nil
}

// sellItem clicks the sell control of the first unsold item with the given
// name and confirms the sale through the modal. The sale only counts when
// the modal title fuzzily matches a known sold phrase.
func (c *Client) sellItem(ctx context.Context, it model.InventoryItem) bool {
	sellJS := fmt.Sprintf(`(() => {
		const items = document.querySelectorAll('.profile-inventory_item');
		for (const item of items) {
			const name = item.querySelector('.profile-inventory_item__name');
			const btn = item.querySelector('.profile-inventory_item__sell');
			if (name && btn && name.textContent.trim() === %q) {
				btn.scrollIntoView({block: 'center'});
				btn.dispatchEvent(new MouseEvent('click', {bubbles: true}));
				return true;
			}
		}
		return false;
	})()`, it.Name)

	var clicked bool
	if err := c.loc.Eval(ctx, sellJS, &clicked); err != nil || !clicked {
		return false
	}

	swal := c.loc.ReadSwal(ctx)
	sold := swal.Found && dom.MatchesPhrase(swal.Title, soldPhrases)
	if sold {
		c.log.Infof("sold %s for %d %s", it.Name, intOr0(it.Price), it.Currency)
		if swal.HasConfirm {
			if err := c.loc.ConfirmSwal(ctx); err != nil {
				c.log.WithError(err).Debug("sell modal confirm failed")
			}
		}
	} else if swal.Found {
		c.log.Debugf("sell not confirmed for %s: %s", it.Name, swal.Title)
	}
	dom.SleepJitter(ctx, 2*time.Second, time.Second)
	return sold
}

// Sellable decides whether an inventory item may be sold under the current
// sell flags. Coin items are always sellable; gold items only with sell_gold
// on and a price at or below the gold ceiling, which protects high-value
// gold items from accidental sale.
func Sellable(it model.InventoryItem, hasSellButton bool, cfg *config.Config) bool {
	if !cfg.Flags.SellInventory || !hasSellButton {
		return false
	}
	if matchesIgnoreItem(it.Name) && !cfg.Flags.SellIgnored {
		return false
	}
	switch it.Currency {
	case model.CurrencyCoin:
		return true
	case model.CurrencyGold:
		return cfg.Flags.SellGold && it.Price != nil && *it.Price <= cfg.General.SellGoldPriceThreshold
	}
	return false
}

func matchesIgnoreItem(name string) bool {
	low := strings.ToLower(name)
	for _, kw := range IgnoreItems {
		if strings.Contains(low, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// lastAfter returns the part of s after the last occurrence of sep, or s
// itself when sep is absent.
func lastAfter(s, sep string) string {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[i+len(sep):]
	}
	return s
}
