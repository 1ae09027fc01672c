// Package types defines the entity types, enums, sentinel errors, and store
// configuration for the svcledger subscription core.
// See docs/ARCHITECTURE.md § Domain Model.
package types
