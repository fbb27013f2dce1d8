// Package ioutils provides file system utilities shared by the
// collection store.
//
// This package contains functions for:
//   - Filename sanitization
//   - File writing
//   - Directory creation
package ioutils

import (
	"os"
	"strings"
	"unicode/utf8"
)

// maxFileNameLen is the longest sanitized name we produce. Long titles
// are truncated so the resulting path stays comfortably below
// platform path limits.
const maxFileNameLen = 100

// fileNameReplacer maps every character that is invalid in a file name
// on at least one supported platform to an underscore.
var fileNameReplacer = strings.NewReplacer(
	`\`, "_",
	"/", "_",
	":", "_",
	"*", "_",
	"?", "_",
	`"`, "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// SanitizeFileName replaces characters that are invalid in file or
// folder names and truncates the result to 100 characters.
//
// The function is idempotent: applying it twice yields the same result
// as applying it once.
//
// Example:
//
//	SanitizeFileName(`Best of 2024: Part 1/2`) // "Best of 2024_ Part 1_2"
func SanitizeFileName(name string) string {
	name = fileNameReplacer.Replace(name)
	if len(name) > maxFileNameLen {
		// Back up to a rune boundary so truncation never splits a
		// multi-byte character.
		cut := maxFileNameLen
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut]
	}
	return name
}

// WriteFile writes data to a file, creating it if necessary.
// The file is created with mode 0644 and truncated if it exists.
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// EnsureDir creates a directory and all parent directories if they
// don't exist. Directories are created with mode 0755.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
