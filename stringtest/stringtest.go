// Package stringtest provides helpers for building expected multi-line
// test output.
package stringtest

import "strings"

// JoinLF joins multiple strings with LF line endings. Use this to
// construct expected test output with explicit line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"line1",
//		"line2",
//	) // -> "line1\nline2"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// JoinLFTerminated joins multiple strings with LF line endings and
// appends a trailing newline, matching output written line by line.
func JoinLFTerminated(ss ...string) string {
	return JoinLF(ss...) + "\n"
}
