// Package dom wraps chromedp with the small set of primitives the action
// modules need: bounded waits, immediate lookups, resilient clicks, value
// parsing and the Swal modal reader. A missing element is reported as
// false/nil here and never propagated as an error; action modules treat
// absence as a domain outcome (already checked in, already joined, free).
package dom

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
)

// Strategy selects how a selector expression is interpreted.
type Strategy int

const (
	StrategyCSS Strategy = iota
	StrategyXPath
)

// Selector is a plain locator descriptor: strategy plus expression.
type Selector struct {
	Expr     string
	Strategy Strategy
}

// CSS builds a CSS selector descriptor.
func CSS(expr string) Selector { return Selector{Expr: expr} }

// XPath builds an XPath selector descriptor.
func XPath(expr string) Selector { return Selector{Expr: expr, Strategy: StrategyXPath} }

func (s Selector) String() string { return s.Expr }

func (s Selector) opt() chromedp.QueryOption {
	if s.Strategy == StrategyXPath {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}

// Condition is the closed set of wait conditions the locator understands.
type Condition int

const (
	Present Condition = iota
	Visible
	Clickable
)

func (c Condition) String() string {
	switch c {
	case Visible:
		return "visible"
	case Clickable:
		return "clickable"
	default:
		return "present"
	}
}

// Locator performs bounded waits and immediate lookups on one browser tab.
type Locator struct {
	Timeout time.Duration
	Log     *logrus.Entry
}

// WaitFor blocks up to the locator timeout for the selector to satisfy the
// condition. A timeout is not an error: it returns false and logs at debug.
func (l *Locator) WaitFor(ctx context.Context, cond Condition, sel Selector) bool {
	wctx, cancel := context.WithTimeout(ctx, l.Timeout)
	defer cancel()

	var action chromedp.Action
	switch cond {
	case Visible:
		action = chromedp.WaitVisible(sel.Expr, sel.opt())
	case Clickable:
		action = chromedp.Tasks{
			chromedp.WaitVisible(sel.Expr, sel.opt()),
			chromedp.WaitEnabled(sel.Expr, sel.opt()),
		}
	default:
		action = chromedp.WaitReady(sel.Expr, sel.opt())
	}
	if err := chromedp.Run(wctx, action); err != nil {
		if ctx.Err() != nil {
			l.Log.WithField("selector", sel.Expr).Errorf("wait %s: session gone: %v", cond, ctx.Err())
			return false
		}
		l.Log.WithField("selector", sel.Expr).Debugf("timeout waiting for %s", cond)
		return false
	}
	return true
}

// Exists performs an immediate, non-waiting presence check.
func (l *Locator) Exists(ctx context.Context, sel Selector) bool {
	return len(l.Nodes(ctx, sel)) > 0
}

// Nodes performs an immediate lookup of all matches. Absent elements yield
// an empty slice.
func (l *Locator) Nodes(ctx context.Context, sel Selector) []*cdp.Node {
	wctx, cancel := context.WithTimeout(ctx, l.Timeout)
	defer cancel()

	var nodes []*cdp.Node
	if err := chromedp.Run(wctx, chromedp.Nodes(sel.Expr, &nodes, sel.opt(), chromedp.AtLeast(0))); err != nil {
		l.Log.WithField("selector", sel.Expr).Debugf("nodes lookup failed: %v", err)
		return nil
	}
	return nodes
}

// Text returns the text content of the first match, or "" if absent.
func (l *Locator) Text(ctx context.Context, sel Selector) string {
	wctx, cancel := context.WithTimeout(ctx, l.Timeout)
	defer cancel()

	var s string
	if err := chromedp.Run(wctx, chromedp.Text(sel.Expr, &s, sel.opt(), chromedp.AtLeast(0))); err != nil {
		l.Log.WithField("selector", sel.Expr).Debugf("text lookup failed: %v", err)
		return ""
	}
	return s
}

// Eval runs a JS expression and unmarshals its JSON result into out.
func (l *Locator) Eval(ctx context.Context, expr string, out any) error {
	wctx, cancel := context.WithTimeout(ctx, l.Timeout)
	defer cancel()
	return chromedp.Run(wctx, chromedp.Evaluate(expr, out))
}

// Click scrolls the element into view and clicks it. If the direct click is
// intercepted it falls back to a synthetic JS click.
func (l *Locator) Click(ctx context.Context, sel Selector) error {
	wctx, cancel := context.WithTimeout(ctx, l.Timeout)
	defer cancel()

	err := chromedp.Run(wctx,
		chromedp.ScrollIntoView(sel.Expr, sel.opt()),
		chromedp.Click(sel.Expr, sel.opt()),
	)
	if err == nil {
		return nil
	}
	l.Log.WithField("selector", sel.Expr).Debugf("direct click failed, using JS click: %v", err)

	jctx, jcancel := context.WithTimeout(ctx, l.Timeout)
	defer jcancel()
	return chromedp.Run(jctx, chromedp.Evaluate(jsClickExpr(sel), nil))
}

func jsClickExpr(sel Selector) string {
	if sel.Strategy == StrategyXPath {
		return fmt.Sprintf(`(() => {
			const el = document.evaluate(%q, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
			if (!el) throw new Error('JS click: not found: ' + %q);
			el.scrollIntoView({block: 'center'});
			el.dispatchEvent(new MouseEvent('click', {bubbles: true}));
		})()`, sel.Expr, sel.Expr)
	}
	return fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		if (!el) throw new Error('JS click: not found: ' + %q);
		el.scrollIntoView({block: 'center'});
		el.dispatchEvent(new MouseEvent('click', {bubbles: true}));
	})()`, sel.Expr, sel.Expr)
}

// SleepJitter blocks for base ± uniform(0, spread), floored at zero. These
// are unconditional delays for animations and site-side rate limits, as
// opposed to the bounded DOM waits above.
func SleepJitter(ctx context.Context, base, spread time.Duration) {
	d := base
	if spread > 0 {
		d += time.Duration(rand.Int63n(int64(2*spread))) - spread
	}
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
