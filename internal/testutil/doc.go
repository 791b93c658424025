// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers for building test WAD containers so
// that reader, writer, and CLI tests share one fixture format.
package testutil
