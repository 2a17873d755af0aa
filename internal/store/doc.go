// Package store defines the persistence and caching abstractions for
// user records, along with the sentinel errors shared by their
// implementations.
package store
