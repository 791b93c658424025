// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"wadlump-cli/internal/wad"

	"github.com/spf13/cobra"
)

var (
	showLumpsOnly bool

	showCmd = &cobra.Command{
		Use:   "show [flags] PATH",
		Short: "Show the regions of a WAD container or directory",
		Long: `Show the regions of a WAD container or exploded directory as a table:
header, directory, lumps, and any gaps between them, with their byte
offsets, sizes, and resolved namespaces.`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}
)

func init() {
	showCmd.Flags().BoolVarP(&showLumpsOnly, "lumps", "l", false, "only show actual lumps")
}

func runShow(cmd *cobra.Command, args []string) error {
	model, _, err := wad.Read(args[0], logger)
	if err != nil {
		return fatal(err)
	}
	wad.ResolveNamespaces(model, logger)

	regions := model.Regions()
	if showLumpsOnly {
		regions = model.Lumps()
	}

	lumps, payload := 0, uint64(0)
	for _, r := range regions {
		if r.IsLump {
			lumps++
			payload += uint64(r.Size)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, TitleStyle.Render(model.Type)+SubtitleStyle.Render(
		fmt.Sprintf(" %s: %d lumps, %d payload bytes", args[0], lumps, payload)))
	fmt.Fprintln(out, SubtitleStyle.Render(fmt.Sprintf("%10s %10s  %-8s %s", "OFFSET", "SIZE", "NAME", "NAMESPACE")))
	for _, r := range regions {
		name := NameStyle.Render(fmt.Sprintf("%-8s", r.Name))
		if !r.IsLump {
			name = VerboseStyle.Render(fmt.Sprintf("%-8s", r.Name))
		}
		fmt.Fprintf(out, "%10d %10d  %s %s\n", r.Offset, r.Size, name, SubtitleStyle.Render(r.Namespace))
	}
	return nil
}
