// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"wadlump-cli/internal/endoom"
	"wadlump-cli/internal/issue"

	"github.com/spf13/cobra"
)

var (
	endoomPlain    bool
	endoomClean    bool
	endoomRandom   bool
	endoomTolerant bool

	endoomCmd = &cobra.Command{
		Use:   "endoom",
		Short: "Display, split, and join ENDOOM lumps",
		Long: `Work with ENDOOM lumps: the 80x25 text screen shown when Doom exits.

Displaying requires a terminal that supports Unicode and ANSI colors.
Color letters used in split foreground/background files:

  color  letter    color  letter
  -----  ------    -----  ------
      0  .             8  *
      1  b             9  B
      2  g            10  G
      3  c            11  C
      4  r            12  R
      5  m            13  M
      6  y            14  Y
      7  w            15  W

Upper case means bit 0x08 is set: extra bright on the foreground,
blinking on the background.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	endoomDisplayCmd = &cobra.Command{
		Use:   "display LUMP...",
		Short: "Display ENDOOM lumps on the terminal",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runEndoomDisplay,
	}

	endoomSplitCmd = &cobra.Command{
		Use:   "split DIR LUMP",
		Short: "Split an ENDOOM lump into foreground, background, and text files",
		Args:  cobra.ExactArgs(2),
		RunE:  runEndoomSplit,
	}

	endoomJoinCmd = &cobra.Command{
		Use:   "join DIR LUMP",
		Short: "Join a split directory back into an ENDOOM lump",
		Args:  cobra.ExactArgs(2),
		RunE:  runEndoomJoin,
	}
)

func init() {
	endoomCmd.PersistentFlags().BoolVarP(&endoomPlain, "plain", "p", false, "disable all color handling")
	endoomCmd.PersistentFlags().BoolVarP(&endoomTolerant, "tolerant", "t", false, "treat missing data as black spaces")
	endoomDisplayCmd.Flags().BoolVarP(&endoomClean, "clean", "c", false, "normalize color combinations that display identically")
	endoomDisplayCmd.Flags().BoolVarP(&endoomRandom, "random-colors", "r", false, "color each cell by a hash of its bytes")
	endoomSplitCmd.Flags().BoolVarP(&endoomClean, "clean", "c", false, "normalize color combinations that display identically")
	endoomSplitCmd.Flags().BoolVarP(&endoomRandom, "random-colors", "r", false, "color each cell by a hash of its bytes")

	endoomCmd.AddCommand(endoomDisplayCmd)
	endoomCmd.AddCommand(endoomSplitCmd)
	endoomCmd.AddCommand(endoomJoinCmd)
}

// loadScreen reads and decodes an ENDOOM lump file, applying the shared
// clean and random-colors transforms.
func loadScreen(path string) (*endoom.Screen, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if endoomTolerant {
			logger.Warn("lump not readable, using a blank screen", "path", path, "err", err)
			data = nil
		} else {
			return nil, issue.NewErrorContext().
				WithOperation("read ENDOOM lump").
				WithResource(path).
				Wrap(err).
				BuildError()
		}
	}
	s, notes, err := endoom.Decode(data, endoomTolerant)
	if err != nil {
		return nil, err
	}
	if notes.NullMapped {
		logger.Warn("one or more null (0) characters mapped to space", "path", path)
	}
	if notes.NbspMapped {
		logger.Warn("one or more NBSP (255) characters mapped to space", "path", path)
	}
	if notes.Padded {
		logger.Warn("short lump padded with black spaces", "path", path)
	}
	if endoomClean {
		s.Clean()
	}
	if endoomRandom {
		s.RandomColors()
	}
	return s, nil
}

func runEndoomDisplay(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		s, err := loadScreen(path)
		if err != nil {
			return fatal(err)
		}
		if len(args) > 1 {
			fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render(path+":"))
		}
		if err := s.Render(cmd.OutOrStdout(), endoomPlain); err != nil {
			return fatal(err)
		}
	}
	return nil
}

func runEndoomSplit(cmd *cobra.Command, args []string) error {
	dir, path := args[0], args[1]
	s, err := loadScreen(path)
	if err != nil {
		return fatal(err)
	}
	if err := s.Split(dir, endoomPlain); err != nil {
		return fatal(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓")+" split "+NameStyle.Render(path)+" into "+NameStyle.Render(dir))
	return nil
}

func runEndoomJoin(cmd *cobra.Command, args []string) error {
	dir, path := args[0], args[1]
	s, err := endoom.Join(dir, endoomPlain, endoomTolerant)
	if err != nil {
		return fatal(err)
	}
	if err := os.WriteFile(path, s.Encode(), 0o644); err != nil {
		return fatal(issue.NewErrorContext().
			WithOperation("write ENDOOM lump").
			WithResource(path).
			Wrap(err).
			BuildError())
	}
	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓")+" joined "+NameStyle.Render(dir)+" into "+NameStyle.Render(path))
	return nil
}
