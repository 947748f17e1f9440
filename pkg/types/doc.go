// Package types defines the core data model shared across the tidy engine:
// scanned file facts, unified metadata, templates and rules, rename proposals
// and the preview aggregate. All structures here are plain data; behavior
// lives in the packages that consume them.
package types
