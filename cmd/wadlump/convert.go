// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"wadlump-cli/internal/change"
	"wadlump-cli/internal/issue"
	"wadlump-cli/internal/wad"

	"github.com/spf13/cobra"
)

var (
	convertOutput      string
	convertOutputDir   string
	convertInPlace     bool
	convertCase        bool
	convertNamespaces  bool
	convertLumpsOnly   bool
	convertOffsetOrder bool
	convertOnce        bool
	convertInvert      bool
	convertForce       bool

	convertCmd = &cobra.Command{
		Use:   "convert [flags] PATH [CHANGE...]",
		Short: "Convert a WAD between container and directory form",
		Long: `Convert a WAD between its binary container form and an exploded
one-file-per-region directory, optionally applying changes on the way.

PATH is either a WAD file or a directory previously produced by
'wadlump convert -d'. Each CHANGE is one of:

  PATTERN           delete lumps matching the glob pattern
  PATTERN=VALUE     replace the content of the first matching lump
  +NAME=VALUE       append a new lump
  GROUP             expand a group declared in the configuration

VALUE is literal bytes, ':FILE' to read a file, or '@' to keep the
existing content. Patterns match case-insensitively.

` + SubtitleStyle.Render("Examples:") + `
  wadlump convert -d out/ doom.wad
  wadlump convert -o new.wad -c out/
  wadlump convert -i doom.wad 'DEMO?=' '+CREDITS=:credits.txt'`,
		Args: cobra.MinimumNArgs(1),
		RunE: runConvert,
	}
)

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "write a WAD container to this file")
	convertCmd.Flags().StringVarP(&convertOutputDir, "output-dir", "d", "", "explode into this directory")
	convertCmd.Flags().BoolVarP(&convertInPlace, "in-place", "i", false, "rewrite PATH atomically (container input only)")
	convertCmd.Flags().BoolVarP(&convertCase, "case", "c", false, "preserve lump name case")
	convertCmd.Flags().BoolVarP(&convertNamespaces, "namespaces", "n", false, "bucket directory output into namespace subdirectories")
	convertCmd.Flags().BoolVarP(&convertLumpsOnly, "lumps", "l", false, "only write actual lumps to directory output")
	convertCmd.Flags().BoolVar(&convertOffsetOrder, "offset-order", false, "order by byte offset, ignoring a captured order side-file")
	convertCmd.Flags().BoolVarP(&convertOnce, "once", "1", false, "retire each modify pattern after its first match")
	convertCmd.Flags().BoolVarP(&convertInvert, "invert", "x", false, "bare patterns keep matching lumps and delete the rest")
	convertCmd.Flags().BoolVarP(&convertForce, "force", "f", false, "overwrite existing output")
}

// flagOrConfig returns the flag value when the flag was given explicitly
// and the configured default otherwise.
func flagOrConfig(cmd *cobra.Command, name string, flagVal, cfgVal bool) bool {
	if cmd.Flags().Changed(name) {
		return flagVal
	}
	return cfgVal
}

func runConvert(cmd *cobra.Command, args []string) error {
	path, tokens := args[0], args[1:]

	if convertInPlace && (convertOutput != "" || convertOutputDir != "") {
		return fatal(issue.NewErrorContext().
			WithOperation("select output mode").
			WithSuggestion("drop --in-place, or drop --output/--output-dir").
			WithIssue(issue.ConflictingOutputsId).
			Wrap(fmt.Errorf("--in-place conflicts with --output and --output-dir")).
			BuildError())
	}
	if !convertInPlace && convertOutput == "" && convertOutputDir == "" {
		return fatal(issue.NewErrorContext().
			WithOperation("select output mode").
			WithSuggestion("pass --output, --output-dir, or --in-place").
			WithSuggestion("use 'wadlump show' to inspect a WAD without writing output").
			Wrap(fmt.Errorf("no output mode selected")).
			BuildError())
	}

	changes, err := change.Parse(tokens, cfg.Groups, change.Options{
		Once:   convertOnce,
		Invert: convertInvert,
	})
	if err != nil {
		return fatal(err)
	}

	model, captured, err := wad.Read(path, logger)
	if err != nil {
		return fatal(err)
	}
	if convertInPlace && model.BackingPath == "" {
		return fatal(issue.NewErrorContext().
			WithOperation("rewrite in place").
			WithResource(path).
			WithSuggestion("use --output to build a container from a directory").
			Wrap(fmt.Errorf("--in-place requires a WAD container input")).
			BuildError())
	}

	wad.ResolveNamespaces(model, logger)
	if captured != nil && !convertOffsetOrder {
		wad.ReconcileOrder(model, captured, logger)
	}

	if !changes.Empty() {
		stats := changes.Apply(model, logger)
		logger.Info("applied changes", "stats", stats.String())
	}

	opts := wad.WriteOptions{
		PreserveCase: flagOrConfig(cmd, "case", convertCase, cfg.PreserveCase),
		LumpsOnly:    flagOrConfig(cmd, "lumps", convertLumpsOnly, cfg.LumpsOnly),
		Namespaces:   flagOrConfig(cmd, "namespaces", convertNamespaces, cfg.Namespaces),
		Force:        convertForce,
	}
	if convertInPlace {
		if err := wad.RewriteInPlace(model, opts, logger); err != nil {
			return fatal(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓")+" rewrote "+NameStyle.Render(path))
		return nil
	}
	if convertOutput != "" {
		if err := wad.WriteContainer(model, convertOutput, opts, logger); err != nil {
			return fatal(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓")+" wrote "+NameStyle.Render(convertOutput))
	}
	if convertOutputDir != "" {
		if err := wad.WriteDirectory(model, convertOutputDir, opts, logger); err != nil {
			return fatal(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓")+" wrote "+NameStyle.Render(convertOutputDir))
	}
	return nil
}
