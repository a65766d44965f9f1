// Package types defines the proposal and category entity types, the
// positional row codec shared by all storage backends, and the standard
// errors for the pairplan storage system.
package types
