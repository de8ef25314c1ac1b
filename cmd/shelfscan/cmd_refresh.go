package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/shelfscan/shelfscan/internal/app"
	"github.com/shelfscan/shelfscan/internal/catalogapi"
	"github.com/shelfscan/shelfscan/internal/refresh"
	"github.com/shelfscan/shelfscan/internal/state"
)

var (
	refreshMode    string
	refreshTimeout time.Duration
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-scrape the catalog and wait for it to reload",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := app.Setup(configPath)
		if err != nil {
			return err
		}
		log.SetOutput(cmd.ErrOrStderr())

		opts := svc.Config.Refresh
		if refreshMode != "" {
			mode, err := refresh.ParseMode(refreshMode)
			if err != nil {
				return err
			}
			opts.Mode = mode
		}
		if refreshTimeout > 0 {
			opts.Timeout = refreshTimeout
		}
		return runRefresh(cmd.Context(), cmd.OutOrStdout(), svc.Client, svc.Store, opts)
	},
}

func init() {
	refreshCmd.Flags().StringVar(&refreshMode, "mode", "", "Completion detection: poll or settle (defaults to config)")
	refreshCmd.Flags().DurationVar(&refreshTimeout, "timeout", 0, "Give up waiting for the scrape after this long (defaults to config)")
}

func runRefresh(ctx context.Context, w io.Writer, source catalogapi.Source, store *state.Store, opts refresh.Options) error {
	fmt.Fprintln(w, "Requesting scrape...")

	workflow := refresh.New(source, store, opts, func(o refresh.Outcome) {
		if o.Err != nil {
			return
		}
		fmt.Fprintf(w, "✓ Catalog refreshed: %s products (run %s)\n", humanize.Comma(int64(o.Result.Count)), o.Result.RunID)
		if o.Result.Dropped > 0 {
			fmt.Fprintf(w, "  %d products with duplicate ids dropped\n", o.Result.Dropped)
		}
	})

	_, err := workflow.Run(ctx)
	return err
}
