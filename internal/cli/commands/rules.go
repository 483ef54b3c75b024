package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/gridlint/internal/cli/output"
	"github.com/leapstack-labs/gridlint/pkg/core"
	"github.com/leapstack-labs/gridlint/pkg/lint"
	"github.com/leapstack-labs/gridlint/pkg/lint/rules"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Kind    string // Filter by kind: cell, table
	Verbose bool   // Show descriptions
	Format  string // Output format: text, markdown, json
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List and describe the validation rules",
		Long: `List the built-in validation rules or show one rule in detail.

Rules are referenced in gridlint.yaml and on the command line by ID
(NL01) or by name (null).`,
		Example: `  # List all rules
  gridlint rules

  # Only the uniqueness rules
  gridlint rules --group uniqueness

  # Show one rule
  gridlint rules FT01

  # Machine-readable catalogue
  gridlint rules --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.Format); err != nil {
				return err
			}
			if len(args) == 1 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().StringVarP(&opts.Kind, "kind", "k", "", "Filter by kind: cell, table")
	cmd.Flags().BoolVarP(&opts.Verbose, "describe", "d", false, "Show rule descriptions")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	_ = cmd.RegisterFlagCompletionFunc("group", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return rules.NewRegistry().Groups(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	r := NewCommandContext(cmd, opts.Format).Renderer
	infos := filterRules(rules.NewRegistry().Infos(), opts)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listRulesJSON(r, infos)
	case output.ModeMarkdown:
		listRulesMarkdown(r, infos, opts.Verbose)
	default:
		listRulesText(r, infos, opts.Verbose)
	}
	return nil
}

func filterRules(infos []core.RuleInfo, opts *RulesOptions) []core.RuleInfo {
	if opts.Group == "" && opts.Kind == "" {
		return infos
	}
	var filtered []core.RuleInfo
	for _, info := range infos {
		if opts.Group != "" && !strings.EqualFold(info.Group, opts.Group) {
			continue
		}
		if opts.Kind != "" && !strings.EqualFold(string(info.Kind), opts.Kind) {
			continue
		}
		filtered = append(filtered, info)
	}
	return filtered
}

func showRule(cmd *cobra.Command, ref string, opts *RulesOptions) error {
	r := NewCommandContext(cmd, opts.Format).Renderer

	rule, err := rules.NewRegistry().Resolve(ref)
	if err != nil {
		return fmt.Errorf("rule %q not found", ref)
	}
	info := lint.GetRuleInfo(rule)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(info)
	case output.ModeMarkdown:
		showRuleMarkdown(r, info)
	default:
		showRuleText(r, info)
	}
	return nil
}

// listRulesText outputs rules in styled text format.
func listRulesText(r *output.Renderer, infos []core.RuleInfo, verbose bool) {
	styles := r.Styles()
	cellCount, tableCount := countKinds(infos)

	r.Println("")
	r.Println(styles.Header.Render(fmt.Sprintf("Validation Rules (%d cell, %d table)", cellCount, tableCount)))
	r.Println("")

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	header := table.Row{"ID", "Name", "Group", "Kind", "Severity"}
	if verbose {
		header = append(header, "Description")
		t.SetColumnConfigs([]table.ColumnConfig{{Name: "Description", WidthMax: 60}})
	}
	t.AppendHeader(header)
	for _, info := range infos {
		row := table.Row{info.ID, info.Name, groupTitle(info.Group), string(info.Kind), info.DefaultSeverity.String()}
		if verbose {
			row = append(row, info.Description)
		}
		t.AppendRow(row)
	}
	t.Render()

	r.Println("")
	r.Println(styles.Muted.Render("Use 'gridlint rules <rule-id>' for details"))
}

// listRulesMarkdown outputs rules in markdown format.
func listRulesMarkdown(r *output.Renderer, infos []core.RuleInfo, verbose bool) {
	r.Println(output.FormatHeader(1, "Validation Rules"))

	currentGroup := ""
	for _, info := range infos {
		if info.Group != currentGroup {
			if currentGroup != "" {
				r.Println("")
			}
			currentGroup = info.Group
			r.Println(output.FormatHeader(2, groupTitle(currentGroup)))
		}
		r.Printf("- **%s** - %s (`%s`, %s)\n", info.ID, info.Name, info.DefaultSeverity.String(), info.Kind)
		if verbose {
			r.Println("  " + info.Description)
		}
	}
	r.Println("")
}

// RulesJSONOutput is the JSON output structure for rules listing.
type RulesJSONOutput struct {
	Rules []core.RuleInfo `json:"rules"`
	Count struct {
		Cell  int `json:"cell"`
		Table int `json:"table"`
		Total int `json:"total"`
	} `json:"count"`
}

func listRulesJSON(r *output.Renderer, infos []core.RuleInfo) error {
	out := RulesJSONOutput{Rules: infos}
	if out.Rules == nil {
		out.Rules = []core.RuleInfo{}
	}
	out.Count.Cell, out.Count.Table = countKinds(infos)
	out.Count.Total = len(infos)
	return r.JSON(out)
}

// showRuleText displays detailed rule info in text format.
func showRuleText(r *output.Renderer, info core.RuleInfo) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header.Render(fmt.Sprintf("%s - %s", info.ID, info.Name)))
	r.Println("")

	r.Printf("  %s: %s\n", styles.Bold.Render("Group"), groupTitle(info.Group))
	r.Printf("  %s: %s\n", styles.Bold.Render("Kind"), info.Kind)
	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"), severityStyle(styles, info.DefaultSeverity).Render(info.DefaultSeverity.String()))
	if info.ChecksHeader {
		r.Printf("  %s: yes\n", styles.Bold.Render("Checks header"))
	}
	r.Println("")

	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + info.Description)
	r.Println("")

	if info.Rationale != "" {
		r.Println(styles.Bold.Render("Why This Matters"))
		r.Println("  " + info.Rationale)
		r.Println("")
	}
	if info.BadExample != "" {
		r.Println(styles.Bold.Render("Bad Example"))
		for _, line := range strings.Split(info.BadExample, "\n") {
			r.Println(styles.Muted.Render("  " + line))
		}
		r.Println("")
	}
	if info.GoodExample != "" {
		r.Println(styles.Bold.Render("Good Example"))
		for _, line := range strings.Split(info.GoodExample, "\n") {
			r.Println(styles.Success.Render("  " + line))
		}
		r.Println("")
	}
	if len(info.ConfigKeys) > 0 {
		r.Println(styles.Bold.Render("Configuration"))
		r.Printf("  rules.options.%s: %s\n", info.Name, strings.Join(info.ConfigKeys, ", "))
		r.Println("")
	}
}

// showRuleMarkdown displays detailed rule info in markdown format.
func showRuleMarkdown(r *output.Renderer, info core.RuleInfo) {
	r.Println(output.FormatHeader(1, fmt.Sprintf("%s - %s", info.ID, info.Name)))
	r.Println(output.FormatKeyValue("Group", groupTitle(info.Group)))
	r.Println(output.FormatKeyValue("Kind", string(info.Kind)))
	r.Println(output.FormatKeyValue("Severity", "`"+info.DefaultSeverity.String()+"`"))
	r.Println("")
	r.Println(info.Description)
	r.Println("")

	if info.Rationale != "" {
		r.Println(output.FormatHeader(2, "Why This Matters"))
		r.Println(info.Rationale)
		r.Println("")
	}
	if info.BadExample != "" {
		r.Println(output.FormatHeader(2, "Bad Example"))
		r.Println("```")
		r.Println(info.BadExample)
		r.Println("```")
		r.Println("")
	}
	if info.GoodExample != "" {
		r.Println(output.FormatHeader(2, "Good Example"))
		r.Println("```")
		r.Println(info.GoodExample)
		r.Println("```")
		r.Println("")
	}
	if len(info.ConfigKeys) > 0 {
		r.Println(output.FormatHeader(2, "Configuration"))
		r.Printf("Options under `rules.options.%s`: `%s`\n", info.Name, strings.Join(info.ConfigKeys, "`, `"))
		r.Println("")
	}
}

func countKinds(infos []core.RuleInfo) (cellCount, tableCount int) {
	for _, info := range infos {
		if info.Kind == core.RuleKindCell {
			cellCount++
		} else {
			tableCount++
		}
	}
	return cellCount, tableCount
}

func groupTitle(group string) string {
	return cases.Title(language.English).String(group)
}

func severityStyle(styles *output.Styles, sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return styles.Error
	case core.SeverityWarning:
		return styles.Warning
	case core.SeverityInfo:
		return styles.Info
	default:
		return styles.Muted
	}
}
