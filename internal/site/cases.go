package site

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"autodailies/internal/dom"
	"autodailies/internal/model"
)

// Settle and cooldown delays around case opening. The reveal animation delay
// is a hard requirement of the site's client-side animation, the cooldown a
// site-side per-case rate limit.
const (
	caseRevealDelay   = 3 * time.Second
	caseCooldownDelay = 7 * time.Second
)

// Cases discovers the catalog and opens every case that passes the
// ignore-list and price gates. A case skipped by price counts neither as
// opened nor as ignored.
func (c *Client) Cases(ctx context.Context) model.CasesResult {
	res, err := c.cases(ctx)
	if err != nil {
		c.log.WithError(err).Error("case pass failed")
		return model.CasesResult{Result: model.Failf("cases: %v", err)}
	}
	return res
}

func (c *Client) cases(ctx context.Context) (model.CasesResult, error) {
	res := model.CasesResult{Result: model.OK()}

	available, err := c.discoverCases(ctx)
	if err != nil {
		return res, err
	}
	res.Available = available

	for _, cs := range available {
		if cs.Ignored && !cs.Target {
			tallyCase(&res, cs, false)
			continue
		}
		c.log.Infof("opening case: %s", cs.Name)
		opened, err := c.openCase(ctx, cs)
		if err != nil {
			return res, err
		}
		if opened {
			c.log.Infof("opened case: %s", cs.Name)
		}
		tallyCase(&res, cs, opened)
		// Cooldown after every attempt, success or failure.
		dom.SleepJitter(ctx, caseCooldownDelay, time.Second)
	}
	return res, nil
}

// tallyCase applies one case outcome to the counters. Only ignore-list skips
// count as ignored; a case skipped by price counts in neither column.
func tallyCase(res *model.CasesResult, cs model.Case, opened bool) {
	switch {
	case cs.Ignored && !cs.Target:
		res.Ignored++
	case opened:
		res.Opened++
	}
}

const discoverCasesJS = `(() => {
	const out = [];
	document.querySelectorAll('.index-cat-container').forEach(box => {
		box.querySelectorAll('a.index-case').forEach(a => {
			const img = a.querySelector('.index-case_cover');
			const name = a.querySelector('.index-case_name');
			out.push({
				link: a.href || '',
				image: img ? (img.src || '') : '',
				name: name ? name.textContent.trim() : '',
			});
		});
	});
	return out;
})()`

// discoverCases collects every case with a non-empty link from the catalog
// page, deduplicated by link.
func (c *Client) discoverCases(ctx context.Context) ([]model.Case, error) {
	if err := c.navigate(ctx, BaseURL); err != nil {
		return nil, err
	}
	c.loc.WaitFor(ctx, dom.Present, selCaseBox)

	var raw []struct {
		Link  string `json:"link"`
		Image string `json:"image"`
		Name  string `json:"name"`
	}
	if err := c.loc.Eval(ctx, discoverCasesJS, &raw); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(raw))
	var cases []model.Case
	for _, r := range raw {
		if r.Link == "" || seen[r.Link] {
			continue
		}
		seen[r.Link] = true
		cases = append(cases, model.NewCase(r.Link, r.Image, r.Name, IgnoreCases, c.cfg.General.TargetCase))
	}
	return cases, nil
}

const caseRequirementsJS = `Array.from(
	document.querySelectorAll('.give-requirements-list .give-requirements-list_item__text')
).map(el => el.textContent.trim())`

const caseCardCountJS = `document.querySelectorAll('.box-page-loot-cards .box-page-loot-cards-card').length`

// openCase runs the per-case state machine: navigate, wait for the reward
// cards to mount, settle through the reveal animation, gate on price, click
// one card at random and read the result modal. An empty modal means the
// open succeeded.
func (c *Client) openCase(ctx context.Context, cs model.Case) (bool, error) {
	if err := c.navigate(ctx, cs.Link); err != nil {
		return false, err
	}
	c.loc.WaitFor(ctx, dom.Present, selCaseCardList)
	dom.SleepJitter(ctx, caseRevealDelay, 500*time.Millisecond)

	price, err := c.casePrice(ctx)
	if err != nil {
		return false, err
	}
	switch {
	case cs.Target:
		c.log.Info("target case, opening regardless of price")
	case price == nil:
		c.log.Info("no coin requirement found, opening the case anyway")
	case !ShouldOpenCase(cs, price, c.cfg.General.CasePriceThreshold):
		c.log.Infof("case price %d above threshold %d, skipping", *price, c.cfg.General.CasePriceThreshold)
		return false, nil
	default:
		c.log.Infof("case price: %d coins, opening", *price)
	}

	var count int
	if err := c.loc.Eval(ctx, caseCardCountJS, &count); err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}
	pick := rand.Intn(count)
	clickJS := fmt.Sprintf(`(() => {
		const card = document.querySelectorAll('.box-page-loot-cards .box-page-loot-cards-card')[%d];
		card.scrollIntoView({block: 'center'});
		card.dispatchEvent(new MouseEvent('click', {bubbles: true}));
	})()`, pick)
	if err := c.loc.Eval(ctx, clickJS, nil); err != nil {
		return false, err
	}

	if swal := c.loc.ReadSwal(ctx); !swal.Empty() {
		c.log.Infof("case open rejected: %s %s", swal.Title, swal.Text)
		return false, nil
	}
	return true, nil
}

// casePrice scans the requirements list for an entry in the coin currency
// and returns its embedded number. Both a missing list and an entry without
// a number mean "open for free"; the conflation is deliberate and matches
// the site's free cases.
func (c *Client) casePrice(ctx context.Context) (*int, error) {
	var reqs []string
	if err := c.loc.Eval(ctx, caseRequirementsJS, &reqs); err != nil {
		return nil, err
	}
	var price *int
	for _, req := range reqs {
		if dom.CurrencyFromText(req) == model.CurrencyCoin {
			price = dom.ParseAmount(req)
		}
	}
	return price, nil
}

// ShouldOpenCase applies the case price gate: the target case opens
// regardless, a case without a parsed price is free and opens, and anything
// else opens only at or below the threshold (boundary inclusive).
func ShouldOpenCase(cs model.Case, price *int, threshold int) bool {
	if cs.Target {
		return true
	}
	if price == nil {
		return true
	}
	return *price <= threshold
}
