// Package site implements the per-action state machines against the target
// site's markup: daily check-in, giveaways, case opening and the profile/
// inventory pass. Every public action returns a typed result and never lets
// a driver error escape its boundary.
package site

import (
	"context"

	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"

	"autodailies/internal/config"
	"autodailies/internal/dom"
)

// Client drives the site inside one account's browser session. It holds no
// per-session state beyond the config and locator; the tab context is passed
// into every call.
type Client struct {
	cfg *config.Config
	loc *dom.Locator
	log *logrus.Entry
}

// New builds a client for the given configuration.
func New(cfg *config.Config, log *logrus.Entry) *Client {
	return &Client{
		cfg: cfg,
		loc: &dom.Locator{Timeout: cfg.WaitTimeout(), Log: log},
		log: log,
	}
}

// navigate loads url unless the tab is already there.
func (c *Client) navigate(ctx context.Context, url string) error {
	var current string
	if err := chromedp.Run(ctx, chromedp.Location(&current)); err == nil && current == url {
		return nil
	}
	return chromedp.Run(ctx, chromedp.Navigate(url))
}

func intOr0(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
