package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledmatrix/onboard/internal/api"
	"github.com/ledmatrix/onboard/internal/onboarding"
	"github.com/ledmatrix/onboard/internal/output"
	"github.com/ledmatrix/onboard/internal/version"
)

// configure flags
var (
	flagStop      string
	flagDirection string
	flagQuery     string
)

var stopsCmd = &cobra.Command{
	Use:   "stops <query>",
	Short: "Search for stop areas by name",
	Long: `Search for stop areas whose name matches the query.

The query needs at least two characters.

Examples:
  onboard stops Mussonville
  onboard stops "Quinconces" --json`,
	Args: cobra.ExactArgs(1),
	RunE: runStops,
}

var directionsCmd = &cobra.Command{
	Use:   "directions <stop_area_id>",
	Short: "List the directions served at a stop area",
	Long: `List every direction (route and line) served at a stop area.

Use 'onboard stops <name>' to find stop area IDs.

Example:
  onboard directions stop_area:TBM:SA:MUSSO`,
	Args: cobra.ExactArgs(1),
	RunE: runDirections,
}

var setCmd = &cobra.Command{
	Use:   "set <stop_area_id> <route_id>",
	Short: "Send a stop area and direction to the display",
	Long: `Tell the display which stop area and direction to show.

Example:
  onboard set stop_area:TBM:SA:MUSSO R7`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Search, pick and send a configuration in one step",
	Long: `Run the same search, selection and save steps as the interactive
configurator without opening it.

--stop and --direction accept an ID or an exact (case-insensitive) name.
When a name matches several candidates, use the ID instead.

Examples:
  onboard configure --stop "Parc de Mussonville" --direction "Pessac Centre"
  onboard configure --query Quinconces --stop SA1 --direction R7`,
	Args: cobra.NoArgs,
	RunE: runConfigure,
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find display controllers on the local network",
	Long: `Browse the local network for display controllers announcing
themselves over mDNS and print their API addresses.

Use --discover on any other command to talk to the first one found.`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	// Version must work even with a broken config file
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "onboard version %s\n", version.Full())
	},
}

func runStops(cmd *cobra.Command, args []string) error {
	ctx, cancel := output.SignalContext(cmd.Context())
	defer cancel()

	query := args[0]

	// Create API client
	client, err := createClient(ctx)
	if err != nil {
		return err
	}

	// Raw JSON output
	if flagRawJSON {
		raw, err := client.SearchStopAreasRaw(ctx, query)
		if err != nil {
			return err
		}
		return printPrettyJSON(raw)
	}

	// The same rules as the interactive search box
	runner := onboarding.NewRunner(client, stateOptions())
	stops, err := runner.Search(ctx, query)
	if err != nil {
		return err
	}
	if runner.Snapshot().NeedsMoreChars() {
		return fmt.Errorf("%s", runner.Snapshot().NoStopsLabel())
	}

	// JSON output
	if flagJSON {
		return output.WriteJSON(os.Stdout, stops)
	}

	output.RenderStopAreas(os.Stdout, stops, tableOptions())
	return nil
}

func runDirections(cmd *cobra.Command, args []string) error {
	ctx, cancel := output.SignalContext(cmd.Context())
	defer cancel()

	client, err := createClient(ctx)
	if err != nil {
		return err
	}

	if flagRawJSON {
		raw, err := client.GetDirectionsRaw(ctx, args[0])
		if err != nil {
			return err
		}
		return printPrettyJSON(raw)
	}

	dirs, err := client.GetDirections(ctx, args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", api.Describe(api.OpListDirections, err), err)
	}

	if flagJSON {
		return output.WriteJSON(os.Stdout, dirs)
	}

	output.RenderDirections(os.Stdout, dirs, tableOptions())
	return nil
}

func runSet(cmd *cobra.Command, args []string) error {
	ctx, cancel := output.SignalContext(cmd.Context())
	defer cancel()

	client, err := createClient(ctx)
	if err != nil {
		return err
	}

	status := onboarding.Status{Kind: onboarding.StatusSuccess, Message: onboarding.SuccessMessage}
	if err := client.SetConfiguration(ctx, args[0], args[1]); err != nil {
		status = onboarding.Status{Kind: onboarding.StatusError, Message: api.Describe(api.OpSetConfiguration, err)}
		output.RenderStatus(os.Stderr, status, tableOptions())
		return err
	}

	if flagJSON {
		return output.WriteJSON(os.Stdout, status)
	}
	output.RenderStatus(os.Stdout, status, tableOptions())
	return nil
}

func runConfigure(cmd *cobra.Command, args []string) error {
	ctx, cancel := output.SignalContext(cmd.Context())
	defer cancel()

	client, err := createClient(ctx)
	if err != nil {
		return err
	}

	runner := onboarding.NewRunner(client, stateOptions())
	defer runner.Teardown()

	query := flagQuery
	if query == "" {
		query = flagStop
	}
	if _, err := runner.Search(ctx, query); err != nil {
		return err
	}

	stop, err := runner.SelectStopArea(ctx, flagStop)
	if err != nil {
		return fmt.Errorf("stop %q: %w", flagStop, err)
	}
	dir, err := runner.SelectDirection(flagDirection)
	if err != nil {
		return fmt.Errorf("direction %q at %s: %w", flagDirection, stop.Name, err)
	}

	opts := tableOptions()
	saveErr := runner.Save(ctx)
	snap := runner.Snapshot()

	if flagJSON {
		if err := output.WriteJSON(os.Stdout, map[string]any{
			"stop_area": stop,
			"direction": dir,
			"status":    snap.Status,
		}); err != nil {
			return err
		}
		return saveErr
	}

	output.RenderSelection(os.Stdout, snap.SelectedStopArea, snap.SelectedDirection, opts)
	output.RenderStatus(os.Stdout, snap.Status, opts)
	return saveErr
}

func runDiscover(cmd *cobra.Command, args []string) error {
	ctx, cancel := output.SignalContext(cmd.Context())
	defer cancel()

	controllers, err := newScanner().Scan(ctx)
	if err != nil {
		return err
	}

	if flagJSON {
		return output.WriteJSON(os.Stdout, controllers)
	}
	output.RenderControllers(os.Stdout, controllers, tableOptions())
	return nil
}
