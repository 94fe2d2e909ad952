package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleConfig = `
[flags]
headless = true
checkin = true
sell_inventory = true
sell_gold = true

[general]
wait_timeout = 3
giveaway_price_threshold = 10
case_price_threshold = 5
sell_gold_price_threshold = 40
target_case = "bednaya-mona"
target_gold = 1000

[paths]
accounts_dir = "my-accounts"

[discord]
webhook_url = "https://discord.com/api/webhooks/1/abc"
profile_name = "AutoDailies"

[schedule]
cron = "0 9 * * *"
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig), Overrides{})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Flags.Headless || !cfg.Flags.Checkin {
		t.Errorf("flags not loaded: %+v", cfg.Flags)
	}
	if cfg.General.GiveawayPriceThreshold != 10 || cfg.General.TargetCase != "bednaya-mona" {
		t.Errorf("general section not loaded: %+v", cfg.General)
	}
	if cfg.Paths.AccountsDir != "my-accounts" {
		t.Errorf("accounts_dir = %q", cfg.Paths.AccountsDir)
	}
	if cfg.Schedule.Cron != "0 9 * * *" {
		t.Errorf("cron = %q", cfg.Schedule.Cron)
	}
	if got := cfg.WaitTimeout(); got != 3*time.Second {
		t.Errorf("WaitTimeout = %v", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""), Overrides{})
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.WaitTimeout(); got != 2*time.Second {
		t.Errorf("default WaitTimeout = %v, want 2s", got)
	}
	if cfg.Paths.AccountsDir != "accounts" {
		t.Errorf("default accounts_dir = %q", cfg.Paths.AccountsDir)
	}
}

func TestLoadOverridesWin(t *testing.T) {
	headless := false
	wait := 30
	hook := "https://discord.com/api/webhooks/2/xyz"
	cfg, err := Load(writeConfig(t, sampleConfig), Overrides{
		Headless:   &headless,
		WaitAfter:  &wait,
		WebhookURL: &hook,
		Accounts:   []string{"alice"},
		Debug:      true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Flags.Headless {
		t.Error("CLI headless=false should override the file's true")
	}
	if cfg.General.WaitAfterSec != 30 {
		t.Errorf("wait_after = %d, want 30", cfg.General.WaitAfterSec)
	}
	if cfg.Discord.WebhookURL != hook {
		t.Errorf("webhook = %q", cfg.Discord.WebhookURL)
	}
	if len(cfg.Accounts) != 1 || !cfg.Debug {
		t.Errorf("accounts/debug not applied: %v %v", cfg.Accounts, cfg.Debug)
	}
}

func TestValidateRejectsNegatives(t *testing.T) {
	_, err := Load(writeConfig(t, "[general]\ngiveaway_price_threshold = -1\n"), Overrides{})
	if err == nil || !strings.Contains(err.Error(), "negative") {
		t.Errorf("negative threshold accepted: %v", err)
	}
}

func TestValidateRejectsBadWebhook(t *testing.T) {
	_, err := Load(writeConfig(t, "[discord]\nwebhook_url = \"https://example.com/hook\"\n"), Overrides{})
	if err == nil || !strings.Contains(err.Error(), "webhook") {
		t.Errorf("bad webhook accepted: %v", err)
	}
}

func TestValidateRejectsMissingChromium(t *testing.T) {
	_, err := Load(writeConfig(t, "[paths]\nchromium_path = \"/does/not/exist\"\n"), Overrides{})
	if err == nil {
		t.Error("missing chromium path accepted")
	}
}

func TestLoadAccounts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"bob.json", "alice.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("[]"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	cfg := &Config{}
	cfg.Paths.AccountsDir = dir

	acs, err := cfg.LoadAccounts()
	if err != nil {
		t.Fatal(err)
	}
	if len(acs) != 2 {
		t.Fatalf("got %d accounts, want 2", len(acs))
	}
	if acs[0].Name != "alice" || acs[1].Name != "bob" {
		t.Errorf("accounts not sorted by name: %v", acs)
	}
	if acs[0].New {
		t.Error("existing account marked as new")
	}
}

func TestLoadAccountsFilter(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"alice.json", "bob.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("[]"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	cfg := &Config{Accounts: []string{"bob"}}
	cfg.Paths.AccountsDir = dir

	acs, err := cfg.LoadAccounts()
	if err != nil {
		t.Fatal(err)
	}
	if len(acs) != 1 || acs[0].Name != "bob" {
		t.Errorf("filter not applied: %v", acs)
	}
}

func TestLoadAccountsNew(t *testing.T) {
	cfg := &Config{NewAccount: "carol"}
	cfg.Paths.AccountsDir = t.TempDir()

	acs, err := cfg.LoadAccounts()
	if err != nil {
		t.Fatal(err)
	}
	if len(acs) != 1 || !acs[0].New || acs[0].Name != "carol" {
		t.Errorf("new account not returned: %v", acs)
	}

	// An existing jar under the same name is an error, not a silent overwrite.
	if err := os.WriteFile(acs[0].CookieFile, []byte("[]"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := cfg.LoadAccounts(); err == nil {
		t.Error("existing account accepted as new")
	}
}
