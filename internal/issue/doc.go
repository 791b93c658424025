// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error types for wadlump.
//
// ActionableError carries operation/resource context plus fix suggestions
// and is the error type fatal conditions travel in. The issue catalog holds
// markdown help for the headline failures (unknown container type, output
// collisions, cyclic group expansions) rendered with glamour.
package issue
