// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"wadlump-cli/internal/config"
	"wadlump-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// quiet suppresses warnings and progress noise
	quiet bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// cfg holds the loaded configuration; nil until initRootConfig ran.
	cfg *config.Config

	// logger is the shared logger for warnings and verbose output.
	logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "wadlump",
		Short: "Convert Doom WADs between containers and directories",
		Long: TitleStyle.Render("wadlump") + SubtitleStyle.Render(" - Convert Doom WADs between containers and directories") + `

wadlump reads a WAD container or an exploded WAD directory, optionally
applies lump changes (delete, add, replace), and writes the result back
as a container or a directory. Directory output keeps a side-file so a
later rebuild restores the original lump order.

` + SubtitleStyle.Render("Examples:") + `
  wadlump show doom.wad                   List the regions in a WAD
  wadlump convert -d out/ doom.wad        Explode a WAD into a directory
  wadlump convert -o new.wad out/         Rebuild a WAD from a directory
  wadlump convert -i doom.wad 'DEMO?='    Delete the demo lumps in place
  wadlump endoom display doom.wad         Show the exit screen`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress warnings")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/wadlump/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(endoomCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in the config file and adjusts logging to match
// the verbosity flags.
func initRootConfig() {
	// Set custom config file path if provided via --config flag
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	loaded, err := config.Load()
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}
	cfg = loaded
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	// Apply verbosity from config when not set via flag
	if !verbose {
		verbose = cfg.UI.Verbose
	}
	if !quiet {
		quiet = cfg.UI.Quiet
	}

	switch {
	case quiet:
		logger.SetLevel(log.ErrorLevel)
	case verbose:
		logger.SetLevel(log.DebugLevel)
	default:
		logger.SetLevel(log.WarnLevel)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method and appends
// the rendered catalog entry when one is linked. In verbose mode, shows the
// full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return err.Error()
	}
	msg := ae.Format(verboseMode)
	if is := issue.Lookup(ae.IssueId); is != nil {
		if rendered, rerr := is.Render(colorScheme()); rerr == nil {
			msg += "\n" + rendered
		}
	}
	return msg
}

// colorScheme returns the configured glamour style for rendered issue
// help, defaulting to terminal auto-detection.
func colorScheme() string {
	if cfg != nil && cfg.UI.ColorScheme != "" {
		return cfg.UI.ColorScheme
	}
	return "auto"
}

// fatal prints the formatted error and converts it to an ExitError with
// exit status 1.
func fatal(err error) error {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
	return &ExitError{Code: 1}
}
