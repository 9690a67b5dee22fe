// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invowk/modrename/internal/config"
)

// newConfigCommand creates the `modrename config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect modrename configuration",
		Long: `Inspect modrename configuration.

Configuration is read from the --config file, else from:
  - Linux: ~/.config/modrename/config.cue
  - macOS: ~/Library/Application Support/modrename/config.cue
  - Windows: %APPDATA%\modrename\config.cue
and finally from ./modrename.cue. Environment variables prefixed with
MODRENAME_ (e.g. MODRENAME_ALLOWED_TREE) override file values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return app.fail(cmd.ErrOrStderr(), err, "load configuration", "", nil, nil)
			}
			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file in use",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			res, err := config.LoadWithSource(cmd.Context(), app.loadOptions())
			if err != nil {
				return app.fail(cmd.ErrOrStderr(), err, "load configuration", "", nil, nil)
			}
			if res.Path == "" {
				fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render("(using defaults)"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Path)
			return nil
		},
	})

	return cfgCmd
}
