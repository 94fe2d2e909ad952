package site

import (
	"context"
	"time"

	"autodailies/internal/dom"
	"autodailies/internal/model"
)

// Giveaways discovers every giveaway card and joins the ones that pass the
// price gate. Joins are paced with jittered sleeps to avoid robotic timing.
func (c *Client) Giveaways(ctx context.Context) model.GiveawayResult {
	res, err := c.giveaways(ctx)
	if err != nil {
		c.log.WithError(err).Error("giveaway pass failed")
		return model.GiveawayResult{Result: model.Failf("giveaway: %v", err)}
	}
	return res
}

const giveawayLinksJS = `Array.from(document.querySelectorAll('a.give-box__link'))
	.map(a => a.href).filter(h => !!h)`

// The price block carries the currency in its class and the amount in the
// value span; both are read in one round trip.
const giveawayPriceJS = `(() => {
	const el = document.querySelector('.give-pay_price__value');
	const box = document.querySelector('.give-pay');
	return {
		found: !!el,
		text: el ? el.textContent.trim() : '',
		cls: box ? box.className : '',
	};
})()`

func (c *Client) giveaways(ctx context.Context) (model.GiveawayResult, error) {
	res := model.GiveawayResult{Result: model.OK()}
	if err := c.navigate(ctx, GiveawayURL); err != nil {
		return res, err
	}

	if !c.loc.WaitFor(ctx, dom.Visible, selGiveawayLink) {
		c.log.Debug("no giveaway box detected")
		return res, nil
	}
	if err := c.loc.Eval(ctx, giveawayLinksJS, &res.Giveaways); err != nil {
		return res, err
	}

	for i, link := range res.Giveaways {
		c.log.Infof("checking out giveaway %d/%d: %s", i+1, len(res.Giveaways), link)
		if err := c.navigate(ctx, link); err != nil {
			return res, err
		}
		dom.SleepJitter(ctx, time.Second, 500*time.Millisecond)

		joined, err := c.joinGiveaway(ctx)
		if err != nil {
			return res, err
		}
		if joined {
			res.Joined = append(res.Joined, link)
			dom.SleepJitter(ctx, 5*time.Second, time.Second)
		}
	}
	return res, nil
}

// joinGiveaway runs the per-giveaway state machine on the current page. An
// absent join control means the giveaway was already joined.
func (c *Client) joinGiveaway(ctx context.Context) (bool, error) {
	if !c.loc.WaitFor(ctx, dom.Clickable, selGiveawayJoin) {
		c.log.Debug("no join button, already joined this giveaway")
		return false, nil
	}

	var price struct {
		Found bool   `json:"found"`
		Text  string `json:"text"`
		Cls   string `json:"cls"`
	}
	if err := c.loc.Eval(ctx, giveawayPriceJS, &price); err != nil {
		c.log.WithError(err).Debug("could not determine giveaway price")
	}
	if price.Found {
		amount, free := parseGiveawayPrice(price.Text)
		currency := dom.CurrencyFromClass(price.Cls)
		switch {
		case free:
			// Free entry, always join.
		case amount == nil:
			// A priced giveaway whose price cannot be read is never worth a
			// blind spend.
			c.log.Warnf("unreadable giveaway price %q, skipping", price.Text)
			return false, nil
		case !ShouldJoinGiveaway(currency, amount, c.cfg.General.GiveawayPriceThreshold):
			c.log.Infof("skipping giveaway priced %q (%s)", price.Text, currency)
			return false, nil
		}
	}

	if err := c.loc.Click(ctx, selGiveawayJoin); err != nil {
		return false, err
	}

	// A modal title matching a known failure phrase means the site rejected
	// the join even though the click landed.
	if swal := c.loc.ReadSwal(ctx); swal.Found {
		if dom.MatchesPhrase(swal.Title, joinFailedPhrases) {
			c.log.Infof("join rejected: %s", swal.Title)
			return false, nil
		}
		if swal.HasConfirm {
			if err := c.loc.ConfirmSwal(ctx); err != nil {
				c.log.WithError(err).Debug("join modal confirm failed")
			}
		}
	}
	c.log.Info("giveaway joined")
	return true, nil
}

// parseGiveawayPrice classifies the price text. A known free text means the
// giveaway costs nothing; any other text must carry a readable number, and a
// nil price with free false marks it unreadable.
func parseGiveawayPrice(text string) (price *int, free bool) {
	for _, f := range freePriceTexts {
		if text == f {
			return nil, true
		}
	}
	return dom.ParseAmount(text), false
}

// ShouldJoinGiveaway applies the giveaway price gate: free always passes,
// gold is never spent on giveaways, coin prices pass at or below the
// threshold (boundary inclusive).
func ShouldJoinGiveaway(currency model.CurrencyType, price *int, threshold int) bool {
	if price == nil || *price == 0 {
		return true
	}
	if currency == model.CurrencyGold {
		return false
	}
	return *price <= threshold
}
