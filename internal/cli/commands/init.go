package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/gridlint/internal/cli/config"
	intconfig "github.com/leapstack-labs/gridlint/internal/config"
	"github.com/leapstack-labs/gridlint/pkg/core"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default gridlint.yaml",
		Long: `Write gridlint.yaml with the default engine settings, field-type
keywords and an empty rule selection, ready to edit.`,
		Example: `  # Initialize in current directory
  gridlint init

  # Initialize another directory
  gridlint init ./exports

  # Overwrite an existing config
  gridlint init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			r := NewCommandContext(cmd, "").Renderer

			path, err := runInit(dir, force)
			if err != nil {
				return err
			}
			r.Success("Created " + path)
			r.Println("")
			r.Println("Next steps:")
			r.Println("  gridlint rules          # see the rule catalogue")
			r.Println("  gridlint check <folder> # check your tables")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(dir string, force bool) (string, error) {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	path := filepath.Join(dir, intconfig.ConfigFileName)
	if existing := intconfig.FindConfigFile(dir); existing != "" && !force {
		return "", fmt.Errorf("%s already exists. Use --force to overwrite", filepath.Base(existing))
	}

	data, err := defaultConfigYAML()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// initFile is the layout of a generated gridlint.yaml.
type initFile struct {
	Extensions []string               `yaml:"extensions"`
	Engine     core.EngineConfig      `yaml:"engine"`
	FieldTypes []core.FieldTypeConfig `yaml:"field_types"`
	Rules      core.RulesConfig       `yaml:"rules"`
	Sensitive  core.SensitiveConfig   `yaml:"sensitive"`
}

var initComments = map[string]string{
	"extensions":  "File extensions read from folders.",
	"engine":      "Header detection and column selection.",
	"field_types": "Header keywords that assign a column its field type.\nThe first matching entry wins.",
	"rules": "Rule selection by ID or name (see 'gridlint rules').\n" +
		"  enabled: [NL01, FT01]        # empty runs every rule\n" +
		"  disabled: [DU02]\n" +
		"  severity: {NL01: warning}\n" +
		"  options:\n" +
		"    precision: {fields: {金额: 2}}\n" +
		"    range: {fields: {年龄: [0, 150]}}",
	"sensitive": "Words flagged by the sensitive_word rule.\nword_file holds one word per line.",
}

func defaultConfigYAML() ([]byte, error) {
	d := config.Default()
	f := initFile{
		Extensions: d.Extensions,
		Engine:     d.Engine,
		FieldTypes: d.FieldTypes,
	}

	var doc yaml.Node
	if err := doc.Encode(f); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	// Mapping content alternates key and value nodes.
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if c, ok := initComments[doc.Content[i].Value]; ok {
			doc.Content[i].HeadComment = c
		}
	}

	var buf bytes.Buffer
	buf.WriteString("# gridlint configuration\n\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
