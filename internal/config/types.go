// Package config provides the validation settings shared by the CLI and
// the HTTP server, and turns them into a ready analyzer.
package config

import "github.com/leapstack-labs/gridlint/pkg/core"

// Settings is the engine part of gridlint.yaml.
type Settings struct {
	Engine     core.EngineConfig      `koanf:"engine" yaml:"engine"`
	Rules      core.RulesConfig       `koanf:"rules" yaml:"rules"`
	FieldTypes []core.FieldTypeConfig `koanf:"field_types" yaml:"field_types"`
	Sensitive  core.SensitiveConfig   `koanf:"sensitive" yaml:"sensitive"`
}
