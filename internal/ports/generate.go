// Package ports holds the interfaces the cache service core depends on:
// the cache store, the row/search/LLM collaborators, warming inputs and
// observability sinks. Adapters implement them; internal/mocks mocks them.
//
//go:generate mockery
package ports
