package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmcdole/holonet/internal/fakeswapi"
)

var flagAddr string

var fakeAPICmd = &cobra.Command{
	Use:   "fake-api",
	Short: "Serve the bundled offline catalog over HTTP",
	Long: `fake-api serves a small bundled catalog with the same paths, paging
and search as the real API. Point holonet at it with
--base-url http://localhost:8080/api.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))

		srv, err := fakeswapi.New(logger)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "serving catalog on %s\n", flagAddr)
		if err := srv.ListenAndServe(ctx, flagAddr); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

func init() {
	fakeAPICmd.Flags().StringVar(&flagAddr, "addr", ":8080", "listen address")
}
