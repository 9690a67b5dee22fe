// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ModuleNotFoundId Id = iota + 1
	OutsideAllowedTreeId
	TargetExistsId
	FileRenameFailedId
	FileIOErrorId
	DirectoryRenameFailedId
	ConfigLoadFailedId
	InvalidModuleNameId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue's markdown with the named glamour style
// ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if links := append(i.DocLinks(), i.extLinks...); len(links) > 0 {
		md += "\n\n## See also\n"
		for _, link := range links {
			md += "- <" + string(link) + ">\n"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	moduleNotFoundIssue = &Issue{
		id: ModuleNotFoundId,
		mdMsg: `
# Module not found!

No directory below the project root holds an info file for this module.

## Things you can try:
- Check the spelling: the name is the machine name, as in ` + "`my_module.info.yml`" + `
- Point the tool at the right project:
~~~
$ modrename --root /path/to/site rename old_name new_name
~~~
- List where the module would be picked up from:
~~~
$ modrename locate old_name
~~~`,
	}

	outsideAllowedTreeIssue = &Issue{
		id: OutsideAllowedTreeId,
		mdMsg: `
# Module is outside the allowed tree!

The module exists, but not under the subtree renaming is allowed in
(` + "`modules/custom`" + ` unless configured otherwise). Contributed and core modules
are never renamed in place.

## Things you can try:
- Move the module under ` + "`modules/custom`" + ` first
- Or allow another subtree in your config file:
~~~cue
allowed_tree: "modules/mine"
~~~`,
	}

	targetExistsIssue = &Issue{
		id: TargetExistsId,
		mdMsg: `
# The target directory already exists!

The module directory could not be moved because something already sits at the
new path. The module's files and contents were already rewritten; only the
directory itself still carries the old name.

## Things you can try:
- Remove or rename the existing directory, then move the module directory by hand
- Or pick a different new name and run the rename again`,
	}

	fileRenameFailedIssue = &Issue{
		id: FileRenameFailedId,
		mdMsg: `
# A module file could not be renamed!

Contents were already rewritten. Files renamed before the failure keep their
new names; the rest still use the old name.

## Things you can try:
- Check whether a file with the new name already exists in the module root
- Check the permissions of the module directory`,
	}

	fileIOErrorIssue = &Issue{
		id: FileIOErrorId,
		mdMsg: `
# A module file could not be read or written!

Files rewritten before the failure already use the new name. No file or
directory was renamed.

## Things you can try:
- Check file permissions inside the module
- Exclude generated or binary content:
~~~
$ modrename rename --exclude 'assets/**' old_name new_name
~~~`,
	}

	directoryRenameFailedIssue = &Issue{
		id: DirectoryRenameFailedId,
		mdMsg: `
# The module directory could not be moved!

Everything inside the module already uses the new name.

## Things you can try:
- Check the permissions of the parent directory
- Move the directory by hand`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Things you can try:
- Check the CUE syntax of your config file
- Show the effective configuration:
~~~
$ modrename config show
~~~`,
	}

	invalidModuleNameIssue = &Issue{
		id: InvalidModuleNameId,
		mdMsg: `
# Invalid module name!

Module names must be non-empty, must not be ` + "`.`" + ` or ` + "`..`" + `, must not
contain path separators, and the old and new names must differ.`,
	}

	issues = map[Id]*Issue{
		moduleNotFoundIssue.Id():        moduleNotFoundIssue,
		outsideAllowedTreeIssue.Id():    outsideAllowedTreeIssue,
		targetExistsIssue.Id():          targetExistsIssue,
		fileRenameFailedIssue.Id():      fileRenameFailedIssue,
		fileIOErrorIssue.Id():           fileIOErrorIssue,
		directoryRenameFailedIssue.Id(): directoryRenameFailedIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		invalidModuleNameIssue.Id():     invalidModuleNameIssue,
	}
)

// Values returns every issue ordered by Id.
func Values() []*Issue {
	ids := make([]Id, 0, len(issues))
	for id := range maps.Keys(issues) {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]*Issue, len(ids))
	for i, id := range ids {
		out[i] = issues[id]
	}
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
