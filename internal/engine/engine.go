// Package engine orchestrates the synchronization operations: provider
// switches, MCP projection and import, and the server catalogue mutations.
// It sits between the command layer and the store/adapters, and is the only
// place that sequences live-file I/O with store mutations.
package engine

import (
	"log/slog"

	"github.com/mpratt/provsync/internal/client"
	"github.com/mpratt/provsync/internal/paths"
	"github.com/mpratt/provsync/internal/store"
)

// Engine coordinates the store, the live-file adapters and the projector.
type Engine struct {
	store    *store.Store
	resolver *paths.Resolver
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for warnings and progress events.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an engine over an open store.
func New(s *store.Store, resolver *paths.Resolver, opts ...Option) *Engine {
	e := &Engine{
		store:    s,
		resolver: resolver,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store exposes the underlying store for read-only command paths.
func (e *Engine) Store() *store.Store { return e.store }

// Resolver exposes the path resolver.
func (e *Engine) Resolver() *paths.Resolver { return e.resolver }

// adapter resolves the live-file adapter for a client id.
func (e *Engine) adapter(clientID string) (client.Adapter, error) {
	return client.For(clientID, e.resolver)
}
