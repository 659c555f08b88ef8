// Package mocks provides testify-based mock implementations of the store,
// auth, and service interfaces for use in unit tests.
package mocks
