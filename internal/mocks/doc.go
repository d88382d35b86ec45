// Package mocks provides in-memory implementations of the store interfaces
// and a capturing event publisher for tests. The memory stores are safe for
// concurrent use and return deep copies, so tests can mutate results without
// corrupting stored state.
package mocks
