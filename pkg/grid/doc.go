// Package grid provides the read-only table view the validation engine works on,
// together with header-row resolution and header-to-column matching.
//
// Rows and columns are 0-based here. Conversion to the 1-based positions shown
// to users happens when violations are collected (see pkg/lint).
package grid
