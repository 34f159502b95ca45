package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmcdole/holonet/internal/session"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the saved locale and viewing history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path, err := sessionPath(cfg)
		if err != nil {
			return err
		}
		if err := session.Reset(path); err != nil {
			return fmt.Errorf("failed to reset session: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Session cleared:", path)
		return nil
	},
}
