// Package rules selects, per file, which template and folder structure
// apply. Two rule kinds exist: metadata-pattern rules evaluate conditions
// against dotted field paths into the file's unified metadata, and
// filename-glob rules match the filename. A configurable priority mode
// controls how the two kinds interleave.
package rules
