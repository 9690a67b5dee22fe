// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invowk/modrename/internal/discovery"
	"github.com/invowk/modrename/pkg/types"
)

func newLocateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "locate <name>",
		Short: "Print the directory a module would be renamed in",
		Long: `Print the directory a module would be renamed in.

locate runs the same lookup as rename and changes nothing. Candidates found
outside the allowed tree, and other scan warnings, are listed on stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true
			return runLocate(cmd, app, types.ModuleName(args[0]))
		},
	}
}

func runLocate(cmd *cobra.Command, app *App, name types.ModuleName) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	cfg, err := app.loadConfig(cmd.Context())
	if err != nil {
		return app.fail(stderr, err, "load configuration", "", nil, nil)
	}

	locator := &discovery.Locator{
		Root:        cfg.ProjectRoot,
		AllowedTree: cfg.AllowedTree,
		Logger:      newLogger(stderr, cfg.UI.Verbose),
	}
	res, err := locator.LocateWithDiagnostics(cmd.Context(), name)
	renderDiagnostics(stderr, res.Diagnostics)
	if err != nil {
		return app.fail(stderr, err, "locate module", name.String(), nil, cfg)
	}

	fmt.Fprintln(stdout, res.Descriptor.Dir())
	if cfg.UI.Verbose {
		for _, c := range res.Candidates {
			mark := infoIcon
			if c.Allowed {
				mark = successIcon
			}
			fmt.Fprintf(stderr, "%s %s %s\n", mark, PathStyle.Render(c.Path.String()), VerboseStyle.Render(c.Info.Name))
		}
	}
	return nil
}
