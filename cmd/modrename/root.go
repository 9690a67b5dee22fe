// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/invowk/modrename/internal/config"
	"github.com/invowk/modrename/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

type (
	// App carries the global flags and services shared by every subcommand.
	App struct {
		Config config.Provider

		cfgFile string
		root    string
		verbose bool
	}
)

// NewApp returns an App backed by the file configuration provider.
func NewApp() *App {
	return &App{Config: config.NewProvider()}
}

// NewRootCommand builds the modrename command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "modrename",
		Short: "Rename a Drupal module in place",
		Long: TitleStyle.Render("modrename") + SubtitleStyle.Render(" - rename a Drupal module in place") + `

modrename finds a module by machine name, replaces the name in every file
below the module directory, renames the files that start with it and
finally moves the directory itself.

` + SubtitleStyle.Render("Examples:") + `
  modrename rename old_mod new_mod     Rename old_mod to new_mod
  modrename locate old_mod             Print where old_mod lives
  modrename config show                Show the effective configuration`,
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.cfgFile, "config", "", "config file (default is $HOME/.config/modrename/config.cue)")
	rootCmd.PersistentFlags().StringVar(&app.root, "root", "", "project root to search for modules (overrides project_root)")

	rootCmd.AddCommand(newRenameCommand(app))
	rootCmd.AddCommand(newLocateCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits the process with the command's exit code.
// This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(NewApp()),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: types.FilesystemPath(a.cfgFile)}
}

// loadConfig loads the configuration and applies the global flags on top.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		return nil, err
	}
	if a.root != "" {
		cfg.ProjectRoot = types.FilesystemPath(a.root)
	}
	if a.verbose {
		cfg.UI.Verbose = true
	}
	return cfg, nil
}

// newLogger returns the stderr logger handed to the library packages.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "modrename",
		Level:  level,
	})
}
