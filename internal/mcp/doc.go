// Package mcp defines the canonical MCP server catalogue: tagged connection
// specs (stdio process or http endpoint), per-client server maps with
// enablement flags, field validation, and the key/identifier repair pass
// that runs before any keyed access.
//
// Specs retain unknown JSON fields across a round trip so client-specific
// extensions written by the downstream tools survive re-serialization.
package mcp
