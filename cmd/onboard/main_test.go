package main

import (
	"context"
	"testing"
	"time"

	"github.com/ledmatrix/onboard/internal/config"
	"github.com/ledmatrix/onboard/internal/testutil"
)

// withFlags resets the global flags and config for one test
func withFlags(t *testing.T) {
	t.Helper()
	saved := cfg
	t.Cleanup(func() {
		cfg = saved
		flagAPIURL, flagLogLevel, flagTimeout = "", "", 0
		flagDiscover, flagNoCache = false, false
	})
	cfg = config.Default()
}

func TestApplyFlags(t *testing.T) {
	withFlags(t)
	flagAPIURL = "http://10.0.0.9/api/v1"
	flagLogLevel = "debug"
	flagTimeout = 2 * time.Second

	applyFlags(cfg)

	testutil.AssertEqual(t, cfg.APIBaseURL, "http://10.0.0.9/api/v1")
	testutil.AssertEqual(t, cfg.LogLevel, "debug")
	testutil.AssertEqual(t, cfg.RequestTimeout, 2*time.Second)
}

func TestApplyFlags_UnsetKeepsConfig(t *testing.T) {
	withFlags(t)

	applyFlags(cfg)

	testutil.AssertEqual(t, cfg.APIBaseURL, config.DefaultAPIBaseURL)
	testutil.AssertEqual(t, cfg.RequestTimeout, config.DefaultRequestTimeout)
}

func TestCreateClient(t *testing.T) {
	withFlags(t)
	cfg.APIBaseURL = "http://display.lan:8080/api/v1/"

	client, err := createClient(context.Background())

	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, client.BaseURL(), "http://display.lan:8080/api/v1")
}

func TestCreateClient_InvalidURL(t *testing.T) {
	withFlags(t)
	cfg.APIBaseURL = "display"

	_, err := createClient(context.Background())

	testutil.AssertError(t, err)
	testutil.AssertContains(t, err.Error(), "failed to create API client")
}

func TestStateOptions(t *testing.T) {
	withFlags(t)
	cfg.Debounce = 100 * time.Millisecond
	cfg.MinSearchChars = 3

	opts := stateOptions()

	testutil.AssertEqual(t, opts.Debounce, 100*time.Millisecond)
	testutil.AssertEqual(t, opts.MinSearchChars, 3)
}

func TestNewScanner_UsesConfig(t *testing.T) {
	withFlags(t)
	cfg.Discovery.Timeout = 500 * time.Millisecond
	cfg.Discovery.Service = "_matrix._tcp"

	s := newScanner()

	testutil.AssertEqual(t, s.Timeout, 500*time.Millisecond)
	testutil.AssertEqual(t, s.Service, "_matrix._tcp")
	testutil.AssertEqual(t, s.Domain, config.DefaultDiscoveryDomain)
}

func TestRootCommand_Subcommands(t *testing.T) {
	want := []string{"stops", "directions", "set", "configure", "discover", "version"}

	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		testutil.AssertNil(t, err)
		testutil.AssertEqual(t, cmd.Name(), name)
	}
}
