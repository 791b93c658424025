// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"sort"
	"strings"

	"wadlump-cli/internal/config"

	"github.com/spf13/cobra"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage wadlump configuration",
		Long: `Manage wadlump configuration.

Configuration is stored in:
  - Linux: ~/.config/wadlump/config.cue
  - macOS: ~/Library/Application Support/wadlump/config.cue
  - Windows: %APPDATA%\wadlump\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE:  runConfigShow,
	}

	configPathCmd = &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE:  runConfigPath,
	}
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, TitleStyle.Render("wadlump configuration"))
	fmt.Fprintf(out, "  preserve_case: %t\n", cfg.PreserveCase)
	fmt.Fprintf(out, "  namespaces:    %t\n", cfg.Namespaces)
	fmt.Fprintf(out, "  lumps_only:    %t\n", cfg.LumpsOnly)
	fmt.Fprintf(out, "  ui.verbose:    %t\n", cfg.UI.Verbose)
	fmt.Fprintf(out, "  ui.quiet:      %t\n", cfg.UI.Quiet)
	fmt.Fprintf(out, "  ui.color_scheme: %s\n", cfg.UI.ColorScheme)

	if len(cfg.Groups) == 0 {
		return nil
	}
	fmt.Fprintln(out, SubtitleStyle.Render("  groups:"))
	names := make([]string, 0, len(cfg.Groups))
	for name := range cfg.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "    %s: %s\n", NameStyle.Render(name), strings.Join(cfg.Groups[name], " "))
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.ConfigFilePath()
	if err != nil {
		return fatal(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
