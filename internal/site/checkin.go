package site

import (
	"context"
	"time"

	"autodailies/internal/dom"
	"autodailies/internal/model"
)

// Checkin performs the daily check-in. An absent button is the recoverable
// "already checked in today" state, not a system failure; the streak panel
// is scraped either way because it reflects persistent account state.
func (c *Client) Checkin(ctx context.Context) model.CheckinResult {
	res, err := c.checkin(ctx)
	if err != nil {
		c.log.WithError(err).Error("check-in failed")
		return model.CheckinResult{Result: model.Failf("check-in: %v", err)}
	}
	return res
}

func (c *Client) checkin(ctx context.Context) (model.CheckinResult, error) {
	res := model.CheckinResult{Result: model.OK()}
	if err := c.navigate(ctx, CheckinURL); err != nil {
		return res, err
	}

	if c.loc.WaitFor(ctx, dom.Clickable, selCheckinButton) {
		dom.SleepJitter(ctx, 300*time.Millisecond, 100*time.Millisecond)
		if err := c.loc.Click(ctx, selCheckinButton); err != nil {
			return res, err
		}
		c.log.Info("daily check-in button clicked")

		if swal := c.loc.ReadSwal(ctx); swal.Found {
			res.Earned, res.Currency = parseReward(swal.Title)
			if swal.HasConfirm {
				if err := c.loc.ConfirmSwal(ctx); err != nil {
					c.log.WithError(err).Debug("check-in modal confirm failed")
				}
			}
		}
	} else {
		res.Result = model.Failf("already checked in today")
	}

	res.Streak = intOr0(dom.ParseAmount(c.loc.Text(ctx, selCheckinStreak)))
	res.MonthlyBonus = dom.ParsePercent(c.loc.Text(ctx, selCheckinMonthly))
	res.PaymentsBonus = dom.ParsePercent(c.loc.Text(ctx, selCheckinPayment))
	res.SkippedDay = c.loc.Exists(ctx, selCheckinSkip)
	return res, nil
}

// parseReward extracts the earned amount and its currency from a check-in
// modal title like "Вы получили 10 монет".
func parseReward(title string) (int, model.CurrencyType) {
	n := dom.ParseAmount(title)
	if n == nil {
		return 0, model.CurrencyUnknown
	}
	return *n, dom.CurrencyFromText(title)
}
