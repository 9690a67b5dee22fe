// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for modrename.
//
// The root command loads configuration, builds one logger and hands both to
// the rename, locate and config subcommands. Failures are rendered here as
// actionable errors; the command then returns an ExitError so fang does not
// print them a second time.
package cmd
