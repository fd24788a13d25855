// Package utils provides shared utility functions for n8nsync.
//
// # Filesystem Utilities
//
//   - EnsureDir: creates a directory tree
//   - WriteFileAtomic: writes through a temp file and rename
//   - FileExists: checks for a regular file
//
// # System Utilities
//
//   - GetUsername, GetHostname: identify who ran a sync
//   - UserDataDir: resolves the XDG data directory
//
// # String Utilities
//
//   - FormatPaths: formats file paths for human-readable output
//   - Plural: picks the singular or plural form of a noun
//
// # Terminal Utilities
//
//   - IsTerminal, IsTerminalWriter: detect interactive output
package utils
