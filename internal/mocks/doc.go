// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these
// standardized implementations can be reused. Each mock exposes
// function fields to override individual methods, backed by a simple
// in-memory default implementation.
package mocks
