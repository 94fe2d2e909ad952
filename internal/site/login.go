package site

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"

	"autodailies/internal/dom"
)

// How long to wait for the user to confirm the login in their Telegram app.
const loginConfirmTimeout = 2 * time.Minute

// LoginTelegram runs the interactive Telegram login flow for an account
// without a cookie jar yet: open the login dialog, pick Telegram, enter the
// phone number in the OAuth window and poll until the user confirms on
// their device. The transient OAuth tab is always closed before returning.
func (c *Client) LoginTelegram(ctx context.Context, phone string) bool {
	ok, err := c.loginTelegram(ctx, phone)
	if err != nil {
		c.log.WithError(err).Error("telegram login failed")
		return false
	}
	return ok
}

func (c *Client) loginTelegram(ctx context.Context, phone string) (bool, error) {
	if err := c.navigate(ctx, BaseURL); err != nil {
		return false, err
	}
	if !c.loc.WaitFor(ctx, dom.Clickable, selLoginButton) {
		return false, fmt.Errorf("login button not found")
	}

	// The Telegram widget opens in its own tab; watch for it before
	// triggering the click.
	newTab := chromedp.WaitNewTarget(ctx, func(info *target.Info) bool {
		return strings.Contains(info.URL, "telegram.org")
	})
	if err := c.loc.Click(ctx, selLoginButton); err != nil {
		return false, err
	}
	if c.loc.WaitFor(ctx, dom.Clickable, selTGLoginButton) {
		if err := c.loc.Click(ctx, selTGLoginButton); err != nil {
			return false, err
		}
	}

	var tabID target.ID
	select {
	case tabID = <-newTab:
	case <-time.After(30 * time.Second):
		return false, fmt.Errorf("telegram window did not open")
	case <-ctx.Done():
		return false, ctx.Err()
	}

	tgCtx, cancel := chromedp.NewContext(ctx, chromedp.WithTargetID(tabID))
	defer cancel()

	if !c.loc.WaitFor(tgCtx, dom.Clickable, selTGPhoneInput) {
		return false, fmt.Errorf("phone input not found")
	}
	// Clear the pre-filled country code, then enter the number.
	keys := strings.Repeat(kb.Backspace, 4) + phone + kb.Enter
	if err := chromedp.Run(tgCtx, chromedp.SendKeys(selTGPhoneInput.Expr, keys, chromedp.ByQuery)); err != nil {
		return false, err
	}

	// Poll for the accept button until the user confirms on their device.
	// The window closing on its own also means confirmation went through.
	deadline := time.Now().Add(loginConfirmTimeout)
	for time.Now().Before(deadline) {
		if c.loc.WaitFor(tgCtx, dom.Clickable, selTGAccept) {
			if err := c.loc.Click(tgCtx, selTGAccept); err == nil {
				break
			}
		}
		var url string
		if err := chromedp.Run(tgCtx, chromedp.Location(&url)); err != nil {
			break
		}
		dom.SleepJitter(ctx, 500*time.Millisecond, 200*time.Millisecond)
	}

	// Close the transient tab regardless of outcome.
	if err := chromedp.Run(tgCtx, page.Close()); err != nil {
		c.log.WithError(err).Debug("closing telegram tab")
	}

	if err := chromedp.Run(ctx, chromedp.Reload()); err != nil {
		return false, err
	}
	return c.loc.WaitFor(ctx, dom.Present, selCoinsLabel), nil
}
