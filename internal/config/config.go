// Package config loads the TOML configuration file and merges CLI overrides
// on top of it. CLI values win over file values, file values over defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the single configuration value constructed at startup and passed
// explicitly into the orchestrator and every action.
type Config struct {
	Flags struct {
		Headless      bool `toml:"headless"`
		Checkin       bool `toml:"checkin"`
		Giveaway      bool `toml:"giveaway"`
		Cases         bool `toml:"cases"`
		SellInventory bool `toml:"sell_inventory"`
		SellGold      bool `toml:"sell_gold"`
		SellIgnored   bool `toml:"sell_ignored"`
	} `toml:"flags"`

	General struct {
		WaitTimeoutSec            int    `toml:"wait_timeout"`
		WaitAfterSec              int    `toml:"wait_after"`
		GiveawayPriceThreshold    int    `toml:"giveaway_price_threshold"`
		CasePriceThreshold        int    `toml:"case_price_threshold"`
		SellGoldPriceThreshold    int    `toml:"sell_gold_price_threshold"`
		TargetCase                string `toml:"target_case"`
		TargetGold                int    `toml:"target_gold"`
		TargetGoldIgnoreInventory bool   `toml:"target_gold_ignore_inventory"`
	} `toml:"general"`

	Paths struct {
		ChromiumPath string `toml:"chromium_path"`
		AccountsDir  string `toml:"accounts_dir"`
		DatabasePath string `toml:"database_path"`
	} `toml:"paths"`

	Discord struct {
		WebhookURL    string `toml:"webhook_url"`
		ProfileName   string `toml:"profile_name"`
		ProfileAvatar string `toml:"profile_avatar"`
	} `toml:"discord"`

	Schedule struct {
		Cron string `toml:"cron"`
	} `toml:"schedule"`

	// NewAccount names an account that does not have a cookie jar yet; the
	// runner performs the interactive login flow for it instead.
	NewAccount string `toml:"-"`

	// Only run these account names when non-empty.
	Accounts []string `toml:"-"`

	Debug bool `toml:"-"`
}

// Overrides carries CLI values. Nil pointers mean "not given on the command
// line", matching the original's argument priority: CLI > file > default.
type Overrides struct {
	Headless   *bool
	Checkin    *bool
	Giveaway   *bool
	Cases      *bool
	WaitAfter  *int
	WebhookURL *string
	NewAccount *string
	Accounts   []string
	Debug      bool
}

// Load reads the TOML file, applies defaults and the CLI overrides, and
// validates the result.
func Load(path string, ov Overrides) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Defaults
	if cfg.General.WaitTimeoutSec == 0 {
		cfg.General.WaitTimeoutSec = 2
	}
	if cfg.Paths.AccountsDir == "" {
		cfg.Paths.AccountsDir = "accounts"
	}

	// CLI overrides
	if ov.Headless != nil {
		cfg.Flags.Headless = *ov.Headless
	}
	if ov.Checkin != nil {
		cfg.Flags.Checkin = *ov.Checkin
	}
	if ov.Giveaway != nil {
		cfg.Flags.Giveaway = *ov.Giveaway
	}
	if ov.Cases != nil {
		cfg.Flags.Cases = *ov.Cases
	}
	if ov.WaitAfter != nil {
		cfg.General.WaitAfterSec = *ov.WaitAfter
	}
	if ov.WebhookURL != nil {
		cfg.Discord.WebhookURL = *ov.WebhookURL
	}
	if ov.NewAccount != nil {
		cfg.NewAccount = *ov.NewAccount
	}
	cfg.Accounts = ov.Accounts
	cfg.Debug = ov.Debug

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and the webhook URL shape.
func (c *Config) Validate() error {
	for name, v := range map[string]int{
		"wait_timeout":              c.General.WaitTimeoutSec,
		"wait_after":                c.General.WaitAfterSec,
		"giveaway_price_threshold":  c.General.GiveawayPriceThreshold,
		"case_price_threshold":      c.General.CasePriceThreshold,
		"sell_gold_price_threshold": c.General.SellGoldPriceThreshold,
		"target_gold":               c.General.TargetGold,
	} {
		if v < 0 {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}
	if u := c.Discord.WebhookURL; u != "" && !strings.HasPrefix(u, "https://discord.com/api/webhooks/") {
		return fmt.Errorf("invalid webhook URL: %s", u)
	}
	if p := c.Paths.ChromiumPath; p != "" {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("chromium path: %w", err)
		}
	}
	return nil
}

// WaitTimeout is the bounded DOM wait used by the locator.
func (c *Config) WaitTimeout() time.Duration {
	return time.Duration(c.General.WaitTimeoutSec) * time.Second
}

// WaitAfter is the optional cool-down before closing an account's session.
func (c *Config) WaitAfter() time.Duration {
	return time.Duration(c.General.WaitAfterSec) * time.Second
}

// Account names one stored account and its cookie jar path.
type Account struct {
	Name       string
	CookieFile string
	// New marks an account without a jar; the interactive login flow runs
	// for it instead of cookie injection.
	New bool
}

// LoadAccounts enumerates cookie jars in the accounts directory, ordered by
// name. With NewAccount set it returns that single (not yet existing)
// account instead.
func (c *Config) LoadAccounts() ([]Account, error) {
	if c.NewAccount != "" {
		file := filepath.Join(c.Paths.AccountsDir, c.NewAccount+".json")
		if _, err := os.Stat(file); err == nil {
			return nil, fmt.Errorf("account already exists: %s", c.NewAccount)
		}
		return []Account{{Name: c.NewAccount, CookieFile: file, New: true}}, nil
	}

	entries, err := os.ReadDir(c.Paths.AccountsDir)
	if err != nil {
		return nil, fmt.Errorf("read accounts dir: %w", err)
	}
	var acs []Account
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".json")
		if len(c.Accounts) > 0 && !contains(c.Accounts, name) {
			continue
		}
		acs = append(acs, Account{Name: name, CookieFile: filepath.Join(c.Paths.AccountsDir, e.Name())})
	}
	sort.Slice(acs, func(i, j int) bool { return acs[i].Name < acs[j].Name })
	return acs, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
