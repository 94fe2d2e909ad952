// Package browser owns session bootstrap: launching Chromium through
// chromedp, handing one exclusive tab per account run to the orchestrator
// and persisting the per-account cookie jar.
package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"

	"autodailies/internal/config"
)

// Browser builds sessions from the shared configuration.
type Browser struct {
	cfg *config.Config
	log *logrus.Entry
}

// New returns a Browser for the given configuration.
func New(cfg *config.Config, log *logrus.Entry) *Browser {
	return &Browser{cfg: cfg, log: log}
}

// Session is one exclusively owned browser tab plus the account's cookie
// jar. It lives for the duration of a single account run.
type Session struct {
	ctx        context.Context
	cancels    []context.CancelFunc
	cookieFile string
	log        *logrus.Entry
}

// Open launches a fresh browser, opens the base page and returns the
// session. The caller must Close it.
func (b *Browser) Open(ctx context.Context, acct config.Account, baseURL string) (*Session, error) {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.Flag("headless", b.cfg.Flags.Headless))
	if p := b.cfg.Paths.ChromiumPath; p != "" {
		opts = append(opts, chromedp.ExecPath(p))
	}

	log := b.log.WithField("account", acct.Name)
	actx, acancel := chromedp.NewExecAllocator(ctx, opts...)
	tctx, tcancel := chromedp.NewContext(actx,
		chromedp.WithLogf(log.Debugf),
		chromedp.WithErrorf(log.Errorf),
	)

	s := &Session{
		ctx:        tctx,
		cancels:    []context.CancelFunc{tcancel, acancel},
		cookieFile: acct.CookieFile,
		log:        log,
	}
	if err := chromedp.Run(tctx, chromedp.Navigate(baseURL)); err != nil {
		s.Close()
		return nil, fmt.Errorf("open %s: %w", baseURL, err)
	}
	return s, nil
}

// Context returns the tab context all actions run against.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Close shuts the tab and the browser process down.
func (s *Session) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
}
