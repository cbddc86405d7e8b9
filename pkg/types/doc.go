// Package types defines the core data model shared across weblayers:
// sources, layers, entrypoints, option sets, and the resolved registry
// aggregate handed to the host build tool.
package types
