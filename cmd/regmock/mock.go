package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/clearstonehq/regmock/internal/config"
	"github.com/clearstonehq/regmock/internal/mockmode"
	"github.com/clearstonehq/regmock/internal/state"
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Manage the mock registration flag",
	Long:  `Enable or disable mock mode so registration calls are simulated instead of hitting the real Clearstone API.`,
}

var mockEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable simulated registration responses",
	Long: `Enable mock mode by persisting the flag in the state store.

A running regmock server notices the change without a restart.

Example:
  regmock mock enable`,
	Run: func(cmd *cobra.Command, args []string) {
		runMockToggle(true)
	},
}

var mockDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Stop simulating registration responses",
	Long: `Disable mock mode by clearing the flag from the state store.

A running regmock server notices the change without a restart.

Example:
  regmock mock disable`,
	Run: func(cmd *cobra.Command, args []string) {
		runMockToggle(false)
	},
}

var mockStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the resolved mock mode status",
	Run: func(cmd *cobra.Command, args []string) {
		dbg, store, err := openDebug()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			osExit(1)
			return
		}
		defer store.Close()

		printMockStatus(dbg.Status())
	},
}

func init() {
	mockCmd.AddCommand(mockEnableCmd)
	mockCmd.AddCommand(mockDisableCmd)
	mockCmd.AddCommand(mockStatusCmd)
	rootCmd.AddCommand(mockCmd)
}

// openDebug opens the configured state store and wraps it in the mock-mode
// debug surface the toggle commands operate on.
func openDebug() (mockmode.Debug, state.Store, error) {
	cfg := config.Load(envFile)

	store, err := state.Open(cfg.StoreBackend, state.Options{
		Path:     cfg.StateFilePath(),
		RedisURL: cfg.RedisURL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open state store: %w", err)
	}

	ctrl := mockmode.New(mockmode.Config{
		Store:  store,
		Logger: log.Logger,
	})
	return ctrl, store, nil
}

func runMockToggle(enable bool) {
	dbg, store, err := openDebug()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		osExit(1)
		return
	}
	defer store.Close()

	if enable {
		dbg.Enable()
	} else {
		dbg.Disable()
	}
	reportToggle(dbg.Status(), enable)
}

func reportToggle(status mockmode.Status, wantedEnabled bool) {
	switch {
	case wantedEnabled && status.Enabled:
		fmt.Printf("%s Mock mode enabled\n", color.GreenString("✓"))
	case wantedEnabled:
		fmt.Printf("%s Mock mode could not be enabled; the state store rejected the write (check logs)\n", color.RedString("✗"))
	case status.Enabled && status.Source == mockmode.SourceEnv:
		fmt.Printf("%s Stored flag cleared, but %s=true keeps mock mode enabled until it is unset\n", color.YellowString("!"), mockmode.EnvVar)
	case status.Enabled:
		fmt.Printf("%s Mock mode could not be disabled; the state store rejected the delete (check logs)\n", color.RedString("✗"))
	default:
		fmt.Printf("%s Mock mode disabled\n", color.GreenString("✓"))
	}
}

func printMockStatus(status mockmode.Status) {
	if status.Enabled {
		fmt.Printf("Mock mode: %s (source: %s)\n", color.GreenString("ENABLED"), status.Source)
		return
	}
	fmt.Printf("Mock mode: %s\n", color.RedString("DISABLED"))
	fmt.Println("")
	fmt.Println("Run 'regmock mock enable' to simulate registrations")
}
