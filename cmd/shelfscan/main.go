package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shelfscan/shelfscan/internal/app"
)

var version = "0.1.0"

var (
	configPath string
	prefsPath  string
)

var rootCmd = &cobra.Command{
	Use:           "shelfscan",
	Short:         "Browse scraped product prices from the terminal",
	Long:          "shelfscan searches, filters and sorts a scraped product catalog and can ask the catalog service to re-scrape it.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: open the TUI
		return app.Run(cmd.Context(), app.Options{ConfigPath: configPath, PrefsPath: prefsPath})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "shelfscan %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "override config path (optional)")
	rootCmd.Flags().StringVar(&prefsPath, "prefs", "", "override preferences path (optional)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(refreshCmd)
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "shelfscan: %v\n", err)
		return 1
	}
	return 0
}
