// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/invowk/modrename/pkg/fspath"
	"github.com/invowk/modrename/pkg/modrename"
	"github.com/invowk/modrename/pkg/types"
)

// DefaultAllowedTree is the subtree modules must live in to be renamed.
const DefaultAllowedTree types.FilesystemPath = "modules/custom"

// skippedDirs are never descended into.
var skippedDirs = []string{"vendor", "node_modules"}

type (
	// Locator finds a module's directory below Root.
	Locator struct {
		// Root is the project root to scan. Empty means the working directory.
		Root types.FilesystemPath
		// AllowedTree is the segment sequence a module path must contain.
		// Empty means DefaultAllowedTree.
		AllowedTree types.FilesystemPath
		Logger      *log.Logger
	}

	// Candidate is one directory holding the requested info file.
	Candidate struct {
		// Path is relative to the locator's Root.
		Path    types.FilesystemPath
		Info    InfoFile
		Allowed bool
	}

	// LocateResult bundles the chosen module with every candidate seen and
	// the non-fatal diagnostics of the scan. Descriptor is the zero value
	// when the returned error is non-nil.
	LocateResult struct {
		Descriptor  modrename.ModuleDescriptor
		Candidates  []Candidate
		Diagnostics []Diagnostic
	}
)

var _ modrename.Locator = (*Locator)(nil)

// Locate implements modrename.Locator. Diagnostics are logged as warnings.
func (l *Locator) Locate(ctx context.Context, name types.ModuleName) (modrename.ModuleDescriptor, error) {
	res, err := l.LocateWithDiagnostics(ctx, name)
	logger := l.logger()
	for _, d := range res.Diagnostics {
		logger.Warn(d.Message, "code", d.Code, "path", d.Path)
	}
	return res.Descriptor, err
}

// LocateWithDiagnostics scans Root for name and picks the module to rename.
// It fails with *modrename.ModuleNotFoundError when no candidate exists and
// with *modrename.OutsideAllowedTreeError when every candidate lies outside
// the allowed tree.
func (l *Locator) LocateWithDiagnostics(ctx context.Context, name types.ModuleName) (LocateResult, error) {
	var res LocateResult
	if err := name.Validate(); err != nil {
		return res, err
	}

	root := l.root()
	allowed := l.allowedTree()
	candidates, diags, err := l.scan(ctx, root, name)
	res.Diagnostics = diags
	if err != nil {
		return res, err
	}
	for i := range candidates {
		candidates[i].Allowed = fspath.ContainsSegments(candidates[i].Path, allowed)
	}
	res.Candidates = candidates

	inside := slices.DeleteFunc(slices.Clone(candidates), func(c Candidate) bool { return !c.Allowed })
	switch {
	case len(candidates) == 0:
		return res, &modrename.ModuleNotFoundError{Name: name}
	case len(inside) == 0:
		outside := candidates[0]
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeOutsideAllowedTree,
			Message:  fmt.Sprintf("module %q is not located under %s", name, allowed),
			Path:     outside.Path,
		})
		return res, &modrename.OutsideAllowedTreeError{Name: name, Path: outside.Path, AllowedTree: allowed}
	case len(inside) > 1:
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeDuplicateModule,
			Message:  fmt.Sprintf("module %q found %d times under %s; using %s", name, len(inside), allowed, inside[0].Path),
			Path:     inside[0].Path,
		})
	}

	res.Descriptor = modrename.ModuleDescriptor{Name: name, Root: root, Path: inside[0].Path}
	return res, nil
}

// scan walks root with a worklist and returns the candidates in lexical path
// order. Only a failure to list root itself or a cancelled context is fatal.
func (l *Locator) scan(ctx context.Context, root types.FilesystemPath, name types.ModuleName) ([]Candidate, []Diagnostic, error) {
	var (
		candidates []Candidate
		diags      []Diagnostic
	)
	infoName := InfoFileName(name)
	queue := []types.FilesystemPath{"."}
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, diags, err
		}
		rel := queue[0]
		queue = queue[1:]
		dir := fspath.Join(root, rel)

		entries, err := os.ReadDir(string(dir))
		if err != nil {
			if rel == "." {
				return nil, diags, fmt.Errorf("scan project root %s: %w", root, err)
			}
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Code:     CodeScanFailed,
				Message:  fmt.Sprintf("failed to list directory %s while scanning modules: %v", dir, err),
				Path:     dir,
				Cause:    err,
			})
			continue
		}

		for _, entry := range entries {
			entryName := entry.Name()
			switch {
			case entry.IsDir():
				if entryName[0] == '.' || slices.Contains(skippedDirs, entryName) {
					continue
				}
				queue = append(queue, fspath.JoinStr(rel, entryName))
			case entryName == infoName && entry.Type().IsRegular():
				c, diag, ok := inspect(root, rel, entryName)
				if diag != nil {
					diags = append(diags, *diag)
				}
				if ok {
					candidates = append(candidates, c)
				}
			}
		}
	}

	slices.SortFunc(candidates, func(a, b Candidate) int {
		return cmp.Compare(fspath.ToSlash(a.Path), fspath.ToSlash(b.Path))
	})
	return candidates, diags, nil
}

// inspect parses the info file at root/rel/file and decides whether rel is
// a module candidate.
func inspect(root, rel types.FilesystemPath, file string) (Candidate, *Diagnostic, bool) {
	infoPath := fspath.JoinStr(fspath.Join(root, rel), file)
	info, err := ParseInfoFile(infoPath)
	if err != nil {
		return Candidate{}, &Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeInfoParseSkipped,
			Message:  fmt.Sprintf("skipping unreadable info file %s: %v", infoPath, err),
			Path:     infoPath,
			Cause:    err,
		}, false
	}
	if !info.IsModule() {
		return Candidate{}, &Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeNotAModule,
			Message:  fmt.Sprintf("skipping %s: declares type %q", infoPath, info.Type),
			Path:     infoPath,
		}, false
	}
	return Candidate{Path: rel, Info: info}, nil, true
}

func (l *Locator) root() types.FilesystemPath {
	if l.Root == "" {
		return "."
	}
	return fspath.Clean(l.Root)
}

func (l *Locator) allowedTree() types.FilesystemPath {
	if l.AllowedTree == "" {
		return DefaultAllowedTree
	}
	return l.AllowedTree
}

func (l *Locator) logger() *log.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return log.New(io.Discard)
}
