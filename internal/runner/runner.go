// Package runner sequences one full pass over all configured accounts: per
// account it acquires a session, snapshots the profile, runs the enabled
// actions in fixed order and snapshots again, then folds every account's
// result into a cross-account summary. One account's failure never blocks
// the others.
package runner

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"autodailies/internal/config"
	"autodailies/internal/dom"
	"autodailies/internal/model"
	"autodailies/internal/recorder"
)

// Site is the per-session action surface. Implementations never return
// errors; failures are carried inside the typed results.
type Site interface {
	Profile(ctx context.Context) model.Profile
	Checkin(ctx context.Context) model.CheckinResult
	Giveaways(ctx context.Context) model.GiveawayResult
	Cases(ctx context.Context) model.CasesResult
	LoginTelegram(ctx context.Context, account string) bool
}

// Session is one exclusively owned browser tab plus its cookie jar.
type Session interface {
	Context() context.Context
	LoadCookies() bool
	SaveCookies() error
	Close()
}

// OpenSession acquires a fresh session for one account.
type OpenSession func(ctx context.Context, acct config.Account) (Session, error)

// Runner drives the whole multi-account pass.
type Runner struct {
	cfg  *config.Config
	open OpenSession
	site Site
	rec  recorder.Recorder
	log  *logrus.Entry
}

// New builds a Runner.
func New(cfg *config.Config, open OpenSession, site Site, rec recorder.Recorder, log *logrus.Entry) *Runner {
	return &Runner{cfg: cfg, open: open, site: site, rec: rec, log: log}
}

// RunAll processes every configured account in order and folds the results.
func (r *Runner) RunAll(ctx context.Context) (model.Summary, error) {
	accounts, err := r.cfg.LoadAccounts()
	if err != nil {
		return model.Summary{}, err
	}

	results := make([]model.RunResult, 0, len(accounts))
	for _, acct := range accounts {
		res := r.RunAccount(ctx, acct)
		results = append(results, res)
		if err := r.rec.RecordRun(res); err != nil {
			r.log.WithError(err).Warn("recording run failed")
		}
		if ctx.Err() != nil {
			break
		}
	}
	return model.Fold(results), nil
}

// RunAccount runs the fixed action sequence for one account: check-in, then
// giveaways, then cases (slowest and most rate-limited last), bracketed by
// the two profile snapshots.
func (r *Runner) RunAccount(ctx context.Context, acct config.Account) model.RunResult {
	res := model.RunResult{
		Result:  model.OK(),
		ID:      uuid.NewString(),
		Account: acct.Name,
	}
	log := r.log.WithFields(logrus.Fields{"account": acct.Name, "run": res.ID})
	log.Info("starting account run")

	sess, err := r.open(ctx, acct)
	if err != nil {
		res.Result = model.Failf("open session: %v", err)
		return res
	}
	defer sess.Close()
	sctx := sess.Context()

	if acct.New {
		if !r.site.LoginTelegram(sctx, acct.Name) {
			res.Result = model.Failf("interactive login failed")
			return res
		}
	} else if !sess.LoadCookies() {
		res.Result = model.Failf("no cookie file: %s", acct.CookieFile)
		return res
	}

	res.Initial = r.site.Profile(sctx)
	if !res.Initial.Valid() {
		res.Result = model.Failf("not logged in: empty profile id")
		return res
	}

	if r.cfg.Flags.Checkin {
		cr := r.site.Checkin(sctx)
		res.Checkin = &cr
	}
	if r.cfg.Flags.Giveaway {
		gr := r.site.Giveaways(sctx)
		res.Giveaway = &gr
	}
	if r.cfg.Flags.Cases {
		cs := r.site.Cases(sctx)
		res.Cases = &cs
	}

	res.Final = r.site.Profile(sctx)
	if !res.Final.Valid() {
		res.Result = model.Failf("final profile fetch failed")
	}

	if wait := r.cfg.WaitAfter(); wait > 0 {
		log.Infof("waiting %s before closing the browser", wait)
		dom.SleepJitter(sctx, wait, 0)
	}
	if err := sess.SaveCookies(); err != nil {
		log.WithError(err).Warn("saving cookies failed")
	}

	log.WithFields(logrus.Fields{
		"earned_coins": res.EarnedCoins(),
		"earned_gold":  res.EarnedGold(),
	}).Info("account run finished")
	return res
}
