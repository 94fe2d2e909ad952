package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"
)

// cookie is the jar's on-disk shape, one JSON array per account.
type cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
	SameSite string  `json:"sameSite"`
}

// LoadCookies injects the account's stored cookies and reloads the page. A
// missing or unreadable jar returns false rather than an error; the caller
// decides whether that is fatal.
func (s *Session) LoadCookies() bool {
	data, err := os.ReadFile(s.cookieFile)
	if err != nil {
		s.log.Debugf("no cookie file: %s", s.cookieFile)
		return false
	}
	var jar []cookie
	if err := json.Unmarshal(data, &jar); err != nil {
		s.log.WithError(err).Errorf("corrupt cookie file: %s", s.cookieFile)
		return false
	}

	actions := make([]chromedp.Action, 0, len(jar)+1)
	for _, c := range jar {
		p := network.SetCookie(c.Name, c.Value).
			WithDomain(c.Domain).
			WithPath(c.Path).
			WithHTTPOnly(c.HTTPOnly).
			WithSecure(c.Secure)
		if c.Expires > 0 {
			e := cdp.TimeSinceEpoch(time.Unix(int64(c.Expires), 0))
			p = p.WithExpires(&e)
		}
		// Some browsers reject lowercase sameSite values; normalize the
		// capitalization the way CDP expects it.
		if ss := capitalize(c.SameSite); ss != "" {
			p = p.WithSameSite(network.CookieSameSite(ss))
		}
		actions = append(actions, p)
	}
	actions = append(actions, chromedp.Reload())

	if err := chromedp.Run(s.ctx, actions...); err != nil {
		s.log.WithError(err).Error("cookie injection failed")
		return false
	}
	return true
}

// SaveCookies writes the session's current cookies back to the jar.
func (s *Session) SaveCookies() error {
	var jar []cookie
	err := chromedp.Run(s.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		cookies, err := storage.GetCookies().Do(ctx)
		if err != nil {
			return err
		}
		for _, c := range cookies {
			jar = append(jar, cookie{
				Name:     c.Name,
				Value:    c.Value,
				Domain:   c.Domain,
				Path:     c.Path,
				Expires:  c.Expires,
				HTTPOnly: c.HTTPOnly,
				Secure:   c.Secure,
				SameSite: c.SameSite.String(),
			})
		}
		return nil
	}))
	if err != nil {
		return fmt.Errorf("get cookies: %w", err)
	}

	data, err := json.MarshalIndent(jar, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cookies: %w", err)
	}
	if err := os.WriteFile(s.cookieFile, data, 0o600); err != nil {
		return fmt.Errorf("write cookie file: %w", err)
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
