// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invowk/modrename/internal/config"
	"github.com/invowk/modrename/internal/discovery"
	"github.com/invowk/modrename/pkg/modrename"
	"github.com/invowk/modrename/pkg/types"
)

// renameFlags are the per-invocation additions to the configuration.
type renameFlags struct {
	exclude        []string
	codeExt        []string
	followSymlinks bool
}

func newRenameCommand(app *App) *cobra.Command {
	var flags renameFlags

	cmd := &cobra.Command{
		Use:     "rename <old> <new>",
		Aliases: []string{"mv"},
		Short:   "Rename a module and every occurrence of its name",
		Long: `Rename a module and every occurrence of its name.

The module is looked up by machine name below the project root and must
live under the allowed tree (modules/custom by default). Every file in the
module is rewritten, files in the module root that start with the old name
are renamed, and the module directory is moved last.

Nothing is rolled back on failure: the phases completed before the failing
one stay applied.`,
		Example: `  # Rename old_mod to new_mod
  modrename rename old_mod new_mod

  # Leave test fixtures untouched and also lex .twig files as code
  modrename rename --exclude 'tests/**' --code-ext twig old_mod new_mod`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true
			return runRename(cmd, app, flags, types.ModuleName(args[0]), types.ModuleName(args[1]))
		},
	}

	cmd.Flags().StringArrayVar(&flags.exclude, "exclude", nil, "doublestar glob, relative to the module, to leave unchanged (repeatable)")
	cmd.Flags().StringArrayVar(&flags.codeExt, "code-ext", nil, "extra extension to lex as PHP code (repeatable)")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "rewrite through symlinked files and directories")

	return cmd
}

func runRename(cmd *cobra.Command, app *App, flags renameFlags, oldName, newName types.ModuleName) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	cfg, err := app.loadConfig(cmd.Context())
	if err != nil {
		return app.fail(stderr, err, "load configuration", "", nil, nil)
	}
	if err := applyRenameFlags(cfg, flags); err != nil {
		return app.fail(stderr, err, "parse flags", "", nil, cfg)
	}

	logger := newLogger(stderr, cfg.UI.Verbose)
	renamer := &modrename.Renamer{
		Locator: &discovery.Locator{
			Root:        cfg.ProjectRoot,
			AllowedTree: cfg.AllowedTree,
			Logger:      logger,
		},
		Content: &modrename.ContentRewriter{
			CodeExtensions: cfg.CodeExtensionStrings(),
			Exclude:        cfg.ExcludeStrings(),
			FollowSymlinks: cfg.FollowSymlinks,
			Logger:         logger,
		},
		Logger: logger,
	}

	report, err := renamer.Rename(cmd.Context(), modrename.Request{Old: oldName, New: newName})
	if err != nil {
		return app.fail(stderr, err, "rename module", oldName.String(), report, cfg)
	}

	fmt.Fprintf(stdout, "%s %s\n", successIcon, SuccessStyle.Render("Module renamed successfully!"))
	fmt.Fprintf(stdout, "%s %s\n", SubtitleStyle.Render("New path:"), PathStyle.Render(report.NewModule.Dir().String()))
	if cfg.UI.Verbose {
		fmt.Fprintf(stdout, "%s %d\n", VerboseStyle.Render("Files rewritten:"), len(report.Rewritten))
		for _, op := range report.Renamed {
			fmt.Fprintf(stdout, "  %s %s -> %s\n", infoIcon, op.From, op.To)
		}
	}
	return nil
}

// applyRenameFlags adds the command-line excludes and code extensions to
// cfg, validating them the same way the config file is validated.
func applyRenameFlags(cfg *config.Config, flags renameFlags) error {
	for _, p := range flags.exclude {
		cfg.Exclude = append(cfg.Exclude, config.ExcludePattern(p))
	}
	for _, e := range flags.codeExt {
		cfg.CodeExtensions = append(cfg.CodeExtensions, config.CodeExtension(e))
	}
	if flags.followSymlinks {
		cfg.FollowSymlinks = true
	}
	if valid, errs := cfg.IsValid(); !valid {
		return errs[0]
	}
	return nil
}
