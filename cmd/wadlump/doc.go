// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for wadlump.
//
// This package implements the Cobra command hierarchy for the wadlump CLI:
// the root command, the convert pipeline, the show table, the ENDOOM
// subcommands, and configuration utilities.
package cmd
