// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/invowk/modrename/internal/config"
	"github.com/invowk/modrename/internal/discovery"
	"github.com/invowk/modrename/internal/issue"
	"github.com/invowk/modrename/pkg/modrename"
	"github.com/invowk/modrename/pkg/types"
)

// toActionable maps err to an ActionableError for operation on resource.
// Errors that already are actionable (config failures) pass through.
func toActionable(err error, operation, resource string) *issue.ActionableError {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae
	}

	ec := issue.NewErrorContext().WithOperation(operation).WithResource(resource).Wrap(err)
	// OutsideAllowedTree also matches ErrModuleNotFound, so it goes first.
	switch {
	case errors.Is(err, modrename.ErrInvalidRequest):
		ec.WithIssue(issue.InvalidModuleNameId).
			WithSuggestion("Pass two different machine names, e.g. 'modrename rename old_mod new_mod'")
	case errors.Is(err, modrename.ErrOutsideAllowedTree):
		ec.WithIssue(issue.OutsideAllowedTreeId).
			WithSuggestion("Only modules under the allowed tree are renamed; set allowed_tree to widen it")
	case errors.Is(err, modrename.ErrModuleNotFound):
		ec.WithIssue(issue.ModuleNotFoundId).
			WithSuggestions(
				"Check that '<name>.info.yml' exists in the module directory",
				"Use --root to point at the project root",
			)
	case errors.Is(err, modrename.ErrTargetExists):
		ec.WithIssue(issue.TargetExistsId).
			WithSuggestion("Remove or rename the existing directory, then move the module directory by hand")
	case errors.Is(err, modrename.ErrFileRenameFailed):
		ec.WithIssue(issue.FileRenameFailedId).
			WithSuggestion("Check for files that already carry the new name in the module root")
	case errors.Is(err, modrename.ErrFileIO):
		ec.WithIssue(issue.FileIOErrorId).
			WithSuggestion("Check file permissions, or skip the file with --exclude")
	case errors.Is(err, modrename.ErrDirectoryRenameFailed):
		ec.WithIssue(issue.DirectoryRenameFailedId).
			WithSuggestion("Check the permissions of the module's parent directory")
	case errors.Is(err, config.ErrInvalidConfig):
		ec.WithSuggestions(
			"Exclude patterns use doublestar syntax, e.g. 'tests/**' or '**/*.png'",
			"Code extensions are bare extensions such as 'php' or 'twig'",
		)
	}
	return ec.Build()
}

// renderFailure writes the actionable error and, when the failure maps to a
// catalog issue, its rendered help. A nil report skips the state detail.
func renderFailure(w io.Writer, ae *issue.ActionableError, report *modrename.Report, scheme config.ColorScheme, verbose bool) {
	fmt.Fprintf(w, "%s %s\n", errorIcon, ae.Format(verbose))

	if verbose && report != nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s %s\n", VerboseStyle.Render("State reached:"), report.State)
		fmt.Fprintf(w, "%s %d\n", VerboseStyle.Render("Files rewritten:"), len(report.Rewritten))
		fmt.Fprintf(w, "%s %d\n", VerboseStyle.Render("Files renamed:"), len(report.Renamed))
	}

	if ae.Issue == 0 {
		return
	}
	if entry := issue.Get(ae.Issue); entry != nil {
		if rendered, err := entry.Render(glamourStyle(scheme)); err == nil {
			fmt.Fprint(w, rendered)
		}
	}
}

// renderDiagnostics lists non-fatal discovery diagnostics.
func renderDiagnostics(w io.Writer, diags []discovery.Diagnostic) {
	for _, d := range diags {
		tag := WarningStyle.Render(fmt.Sprintf("[%s]", d.Code))
		if d.Path != "" {
			fmt.Fprintf(w, "%s %s %s\n", warningIcon, tag, PathStyle.Render(d.Path.String()))
			fmt.Fprintf(w, "    %s\n", d.Message)
			continue
		}
		fmt.Fprintf(w, "%s %s %s\n", warningIcon, tag, d.Message)
	}
}

// glamourStyle picks the glamour standard style for scheme.
func glamourStyle(scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		if lipgloss.HasDarkBackground() {
			return "dark"
		}
		return "light"
	}
}

// fail renders err and returns the ExitError that RunE hands back to fang.
// cfg is nil when loading the configuration itself failed.
func (a *App) fail(w io.Writer, err error, operation, resource string, report *modrename.Report, cfg *config.Config) error {
	scheme, verbose := config.ColorSchemeAuto, a.verbose
	if cfg != nil {
		scheme, verbose = cfg.UI.ColorScheme, cfg.UI.Verbose
	}
	renderFailure(w, toActionable(err, operation, resource), report, scheme, verbose)
	return &ExitError{Code: types.ExitFailure, Err: err}
}
