// SPDX-License-Identifier: MPL-2.0

package modrename

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/invowk/modrename/pkg/types"
)

type (
	// Locator resolves a module name to its directory.
	Locator interface {
		Locate(ctx context.Context, name types.ModuleName) (ModuleDescriptor, error)
	}

	// LocatorFunc adapts a function to the Locator interface.
	LocatorFunc func(ctx context.Context, name types.ModuleName) (ModuleDescriptor, error)

	// Renamer runs the rename phases against the module its Locator finds.
	Renamer struct {
		Locator Locator
		// Content rewrites file contents. Nil uses a zero ContentRewriter.
		Content *ContentRewriter
		Logger  *log.Logger
	}
)

// Locate calls f.
func (f LocatorFunc) Locate(ctx context.Context, name types.ModuleName) (ModuleDescriptor, error) {
	return f(ctx, name)
}

// Rename validates req, locates the module and runs the content, file and
// directory phases in order. The returned Report is never nil; on failure
// it holds the last state reached and whatever the completed phases did,
// and the error is a *PhaseError naming the failed transition.
//
// Only locating the module observes ctx.
func (r *Renamer) Rename(ctx context.Context, req Request) (*Report, error) {
	report := &Report{State: StatePending}
	if err := req.Validate(); err != nil {
		report.Failed = true
		return report, err
	}
	if r.Locator == nil {
		report.Failed = true
		return report, &PhaseError{Phase: StateLocated, Err: errors.New("no module locator configured")}
	}

	logger := r.logger().With("old", req.Old, "new", req.New)
	oldName, newName := req.Old.String(), req.New.String()

	fail := func(phase State, err error) (*Report, error) {
		report.Failed = true
		logger.Debug("transition", "from", report.State, "to", StateFailed, "err", err)
		return report, &PhaseError{Phase: phase, Err: err}
	}
	advance := func(to State) {
		logger.Debug("transition", "from", report.State, "to", to)
		report.State = to
	}

	desc, err := r.Locator.Locate(ctx, req.Old)
	if err != nil {
		return fail(StateLocated, err)
	}
	if desc.Name == "" {
		desc.Name = req.Old
	}
	report.Descriptor = desc
	advance(StateLocated)

	content := r.Content
	if content == nil {
		content = &ContentRewriter{}
	}
	if content.Logger == nil {
		withLogger := *content
		withLogger.Logger = r.logger()
		content = &withLogger
	}
	report.Rewritten, err = content.Rewrite(desc.Dir(), oldName, newName)
	if err != nil {
		return fail(StateContentRewritten, err)
	}
	advance(StateContentRewritten)

	report.Renamed, err = RenameFiles(desc.Dir(), oldName, newName)
	for _, op := range report.Renamed {
		logger.Debug("renamed", "from", op.From, "to", op.To)
	}
	if err != nil {
		return fail(StateFilesRenamed, err)
	}
	advance(StateFilesRenamed)

	report.NewModule, err = RenameDirectory(desc, oldName, newName)
	if err != nil {
		return fail(StateDirectoryRenamed, err)
	}
	advance(StateDirectoryRenamed)

	logger.Info("module renamed", "path", report.NewModule.Dir(),
		"rewritten", len(report.Rewritten), "renamed", len(report.Renamed))
	return report, nil
}

func (r *Renamer) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.New(io.Discard)
}
