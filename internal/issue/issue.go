// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a catalog issue.
type Id int

const (
	UnknownWadTypeId Id = iota + 1
	MissingHeaderId
	OutputExistsId
	ConflictingOutputsId
	GroupCycleId
)

// MarkdownMsg is markdown help text rendered for the user.
type MarkdownMsg string

// Issue is one catalog entry: a stable id plus markdown help shown when the
// corresponding fatal condition is hit.
type Issue struct {
	id    Id
	mdMsg MarkdownMsg
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render returns the issue's help text rendered for the terminal with the
// given glamour style ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	unknownWadTypeIssue = &Issue{
		id: UnknownWadTypeId,
		mdMsg: `
# Not a recognized WAD

The input's 4-byte type tag is neither ` + "`IWAD`" + ` nor ` + "`PWAD`" + `.

## Things you can try
- Check that the path points at a WAD container (or a WAD directory
  created by this tool) and not some other file.
- If the file was truncated or corrupted, restore it from its source.`,
	}

	missingHeaderIssue = &Issue{
		id: MissingHeaderId,
		mdMsg: `
# No header region found

A WAD directory must contain exactly one ` + "`header`" + ` region file
(e.g. ` + "`00-header`" + `) carrying the raw container header.

## Things you can try
- Point wadlump at a directory previously produced by:
~~~
$ wadlump convert -d DIR doom.wad
~~~
- If you assembled the directory by hand, add a header region file whose
  first four bytes are ` + "`IWAD`" + ` or ` + "`PWAD`" + `.`,
	}

	outputExistsIssue = &Issue{
		id: OutputExistsId,
		mdMsg: `
# Output already exists

The requested output path exists and ` + "`-f, --force`" + ` was not given.

## Things you can try
- Pass ` + "`--force`" + ` to overwrite it.
- Choose a different output path.`,
	}

	conflictingOutputsIssue = &Issue{
		id: ConflictingOutputsId,
		mdMsg: `
# Conflicting output modes

` + "`--in-place`" + ` rewrites the input container itself and cannot be
combined with ` + "`-o, --output`" + ` or ` + "`-d, --output-dir`" + `.

## Things you can try
- Drop ` + "`--in-place`" + ` and keep the explicit output flags, or
- Drop the explicit output flags and keep ` + "`--in-place`" + `.`,
	}

	groupCycleIssue = &Issue{
		id: GroupCycleId,
		mdMsg: `
# Cyclic group expansion

A change-directive group references itself, directly or through another
group, so expansion can never reach a fixed point.

## Things you can try
- Inspect the ` + "`groups`" + ` section of your config:
~~~
$ wadlump config show
~~~
- Break the cycle by removing one of the mutual references.`,
	}

	catalog = map[Id]*Issue{
		UnknownWadTypeId:     unknownWadTypeIssue,
		MissingHeaderId:      missingHeaderIssue,
		OutputExistsId:       outputExistsIssue,
		ConflictingOutputsId: conflictingOutputsIssue,
		GroupCycleId:         groupCycleIssue,
	}
)

// Lookup returns the catalog issue for id, or nil when unknown.
func Lookup(id Id) *Issue {
	return catalog[id]
}

// Ids returns all catalog ids in ascending order.
func Ids() []Id {
	ids := maps.Keys(catalog)
	slices.Sort(ids)
	return ids
}
