// Package store owns the canonical configuration document (the source of
// truth for provider profiles and the MCP server catalogue) behind a single
// reader/writer lock, and persists it as a JSON file with a pre-write
// snapshot.
//
// The document layout is versioned. The retired single-profile layout is
// rejected at load time with remediation instructions rather than silently
// migrated.
package store
