// Package paths centralizes file system path resolution for provsync.
//
// It provides XDG base directory helpers, the default location of the
// provider store and its backups, and a [Resolver] that maps each supported
// client (claude, codex, gemini) to its live configuration files, honoring
// directory overrides from the application settings.
package paths
