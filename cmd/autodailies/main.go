package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"autodailies/internal/browser"
	"autodailies/internal/config"
	"autodailies/internal/logging"
	"autodailies/internal/notify"
	"autodailies/internal/recorder"
	"autodailies/internal/runner"
	"autodailies/internal/site"
)

func main() {
	var (
		configPath = flag.String("config", "config.toml", "path to the config file")
		headless   = flag.Bool("headless", false, "start the browser in headless mode")
		checkin    = flag.Bool("checkin", false, "run the daily check-in")
		giveaway   = flag.Bool("giveaway", false, "run the giveaway pass")
		cases      = flag.Bool("cases", false, "open the cases")
		waitAfter  = flag.Int("wait-after", 0, "seconds to wait before closing the browser")
		webhookURL = flag.String("webhook-url", "", "Discord webhook URL for the summary")
		newAccount = flag.String("new-account", "", "name of a new account; runs the interactive login flow")
		accounts   = flag.String("accounts", "", "comma-separated account names to process (default: all)")
		debug      = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	// Only explicitly given flags override the config file.
	ov := config.Overrides{Debug: *debug}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "headless":
			ov.Headless = headless
		case "checkin":
			ov.Checkin = checkin
		case "giveaway":
			ov.Giveaway = giveaway
		case "cases":
			ov.Cases = cases
		case "wait-after":
			ov.WaitAfter = waitAfter
		case "webhook-url":
			ov.WebhookURL = webhookURL
		case "new-account":
			ov.NewAccount = newAccount
		}
	})
	if *accounts != "" {
		ov.Accounts = strings.Split(*accounts, ",")
	}

	log := logging.Log.WithField("app", "autodailies")
	cfg, err := config.Load(*configPath, ov)
	if err != nil {
		log.WithError(err).Fatal("loading config")
	}
	logging.SetDebug(cfg.Debug)

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Paths.DatabasePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Paths.DatabasePath)
		if err != nil {
			log.WithError(err).Warn("sqlite recorder unavailable, using noop")
		} else {
			rec = sr
			defer sr.Close()
		}
	}

	b := browser.New(cfg, log)
	open := func(ctx context.Context, acct config.Account) (runner.Session, error) {
		return b.Open(ctx, acct, site.BaseURL)
	}
	r := runner.New(cfg, open, site.New(cfg, log), rec, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("shutdown signal received")
		cancel()
	}()

	if expr := cfg.Schedule.Cron; expr != "" {
		c := cron.New()
		if _, err := c.AddFunc(expr, func() { runOnce(ctx, cfg, r, log) }); err != nil {
			log.WithError(err).Fatal("invalid cron expression")
		}
		c.Start()
		log.Infof("scheduled mode: %s", expr)
		<-ctx.Done()
		c.Stop()
		return
	}

	runOnce(ctx, cfg, r, log)
}

func runOnce(ctx context.Context, cfg *config.Config, r *runner.Runner, log *logrus.Entry) {
	summary, err := r.RunAll(ctx)
	if err != nil {
		log.WithError(err).Error("run failed")
		return
	}
	log.WithFields(logrus.Fields{
		"accounts":     len(summary.Results),
		"earned_coins": summary.EarnedCoins,
		"earned_gold":  summary.EarnedGold,
		"failures":     len(summary.Failures),
	}).Info("all done")

	if cfg.Discord.WebhookURL == "" {
		return
	}
	text := notify.FormatSummary(summary, cfg.General.TargetGold, cfg.General.TargetGoldIgnoreInventory)
	n := notify.NewDiscordNotifier(cfg.Discord.WebhookURL, cfg.Discord.ProfileName, cfg.Discord.ProfileAvatar, log)
	if err := n.SendWithRetry(ctx, text, 3); err != nil {
		log.WithError(err).Error("sending summary")
	}
}
