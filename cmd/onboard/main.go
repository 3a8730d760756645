package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ledmatrix/onboard/internal/api"
	"github.com/ledmatrix/onboard/internal/config"
	"github.com/ledmatrix/onboard/internal/discovery"
	"github.com/ledmatrix/onboard/internal/logging"
	"github.com/ledmatrix/onboard/internal/onboarding"
	"github.com/ledmatrix/onboard/internal/output"
	"github.com/ledmatrix/onboard/internal/tui"
	"github.com/ledmatrix/onboard/internal/version"
)

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Configure which departures an LED matrix display shows",
	Long: `onboard points a networked LED matrix display at a public transport
stop and direction. The display then shows that direction's next departures.

Run without a subcommand to open the interactive configurator:
search for a stop, pick one of its directions and start the display.

Quick Start:
  1. Launch the configurator:  onboard
  2. Search for a stop:        onboard stops Mussonville
  3. List its directions:      onboard directions <stop_area_id>
  4. Start the display:        onboard set <stop_area_id> <route_id>
  5. All at once by name:      onboard configure --stop "Parc de Mussonville" --direction "Pessac Centre"
  6. Find the controller:      onboard discover`,
	Version:      version.Full(),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runTUI(cmd, args)
		}
		return cmd.Help()
	},
}

// Global flags
var (
	flagAPIURL   string
	flagConfig   string
	flagDiscover bool
	flagJSON     bool
	flagRawJSON  bool
	flagColor    string
	flagNoCache  bool
	flagLogLevel string
	flagTimeout  time.Duration
)

// cfg is the loaded configuration, set by setup
var cfg *config.Config

func init() {
	// Assigned here rather than in the literal: setup refers to rootCmd
	rootCmd.PersistentPreRunE = setup

	rootCmd.AddCommand(stopsCmd)
	rootCmd.AddCommand(directionsCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.SetVersionTemplate("onboard version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Controller API base URL (overrides config and "+config.APIURLEnvVar+")")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default $XDG_CONFIG_HOME/onboard/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagDiscover, "discover", false, "Find the controller on the local network via mDNS")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagRawJSON, "raw-json", false, "Output raw API response")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Disable response caching")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default silent)")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "Per-request timeout (default from config, 10s)")

	configureCmd.Flags().StringVar(&flagStop, "stop", "", "Stop area ID or exact name")
	configureCmd.Flags().StringVar(&flagDirection, "direction", "", "Route ID or exact direction name")
	configureCmd.Flags().StringVar(&flagQuery, "query", "", "Search text (default: the --stop value)")
	_ = configureCmd.MarkFlagRequired("stop")
	_ = configureCmd.MarkFlagRequired("direction")
}

// setup loads the configuration, applies flag overrides and starts logging
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if flagConfig != "" {
		cfg, err = config.LoadFile(flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	applyFlags(cfg)

	logFile := cfg.LogFile
	if cmd == rootCmd && logFile == "" && cfg.LogLevel != "" {
		// The TUI owns the terminal; keep log lines out of the alt screen
		logFile, err = defaultLogFile()
		if err != nil {
			return err
		}
	}
	if err := logging.Initialize(cfg.LogLevel, logFile); err != nil {
		return err
	}

	logging.Debug("configuration loaded",
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.Duration("request_timeout", cfg.RequestTimeout),
		zap.String("command", cmd.Name()),
	)
	return nil
}

// applyFlags layers explicitly set flags over the loaded configuration
func applyFlags(c *config.Config) {
	if flagAPIURL != "" {
		c.APIBaseURL = flagAPIURL
	}
	if flagLogLevel != "" {
		c.LogLevel = flagLogLevel
	}
	if flagTimeout > 0 {
		c.RequestTimeout = flagTimeout
	}
}

// defaultLogFile is where the TUI logs when no log_file is configured
func defaultLogFile() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config dir: %w", err)
	}
	return filepath.Join(dir, "onboard.log"), nil
}

// resolveBaseURL returns the controller address, asking mDNS when --discover
// is set
func resolveBaseURL(ctx context.Context) (string, error) {
	if !flagDiscover {
		return cfg.APIBaseURL, nil
	}

	scanner := newScanner()
	controller, err := scanner.First(ctx)
	if err != nil {
		return "", err
	}
	logging.Info("controller discovered",
		zap.String("name", controller.Name),
		zap.String("url", controller.BaseURL()),
	)
	return controller.BaseURL(), nil
}

func newScanner() *discovery.Scanner {
	scanner := discovery.NewScanner()
	scanner.Service = cfg.Discovery.Service
	scanner.Domain = cfg.Discovery.Domain
	scanner.Timeout = cfg.Discovery.Timeout
	return scanner
}

// createClient creates an API client with common options
func createClient(ctx context.Context) (*api.Client, error) {
	baseURL, err := resolveBaseURL(ctx)
	if err != nil {
		return nil, err
	}

	opts := []api.ClientOption{
		api.WithBaseURL(baseURL),
		api.WithTimeout(cfg.RequestTimeout),
	}

	// Enable caching unless disabled
	if !flagNoCache && cfg.CacheTTL > 0 {
		opts = append(opts, api.WithCacheTTL(cfg.CacheTTL))
	}

	client, err := api.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return client, nil
}

// stateOptions maps the configuration onto the form's tunables
func stateOptions() onboarding.Options {
	return onboarding.Options{
		Debounce:       cfg.Debounce,
		MinSearchChars: cfg.MinSearchChars,
	}
}

// getColorMode returns the color mode based on flag
func getColorMode() output.ColorMode {
	return output.ParseColorMode(flagColor)
}

func tableOptions() output.TableOptions {
	return output.TableOptions{
		Colors:  output.NewColors(getColorMode()),
		ShowIDs: true,
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, cancel := output.SignalContext(cmd.Context())
	defer cancel()

	client, err := createClient(ctx)
	if err != nil {
		return err
	}

	model := tui.New(client, tui.Options{
		Timeout: cfg.RequestTimeout,
		State:   stateOptions(),
		Target:  client.BaseURL(),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// printPrettyJSON indents a raw API response onto stdout
func printPrettyJSON(data []byte) error {
	return output.WritePrettyJSON(os.Stdout, data)
}
