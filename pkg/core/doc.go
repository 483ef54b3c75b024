// Package core defines the shared language of gridlint.
//
// This package contains:
//   - Findings (Violation, Severity)
//   - Rule metadata (RuleInfo, RuleKind)
//   - Configuration types (EngineConfig, RulesConfig, FieldTypeConfig)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// The engine, loaders, and CLI depend on core, not the reverse.
package core
