package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gridlint/internal/cli/commands"
	"github.com/leapstack-labs/gridlint/internal/cli/config"
	"github.com/leapstack-labs/gridlint/internal/cli/testutil"
	"github.com/leapstack-labs/gridlint/internal/report"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(config.ResetConfig)

	cmd := NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()
	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"check", "rules", "init", "history", "serve", "version", "completion"} {
		assert.Contains(t, names, want)
	}
	for _, flag := range []string{"config", "output", "verbose", "log-level", "log-format", "state"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCmd_Version(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gridlint v"+Version)
}

func TestRootCmd_CheckUsesConfigFile(t *testing.T) {
	dir := testutil.SetupTestWorkspace(t)
	cfgPath := filepath.Join(t.TempDir(), "gridlint.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
output: json
rules:
  enabled: [FT02, NL01]
  severity:
    NL01: warning
`), 0o600))

	out, _, err := run(t, "--config", cfgPath, "check", dir, "--exit-zero")
	require.NoError(t, err)

	rep, err := report.ReadJSON(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Summary.Violations)
	assert.Equal(t, map[string]int{"error": 1, "warning": 1}, rep.Summary.BySeverity)
}

func TestRootCmd_FlagsOverrideConfig(t *testing.T) {
	dir := testutil.SetupTestWorkspace(t)
	cfgPath := filepath.Join(t.TempDir(), "gridlint.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: json\nrules:\n  enabled: [phone]\n"), 0o600))

	out, _, err := run(t, "--config", cfgPath, "--output", "markdown", "check", dir)

	var found *commands.ViolationsFoundError
	require.ErrorAs(t, err, &found)
	assert.Equal(t, 1, found.Violations)
	assert.Contains(t, out, "# 检查结果")
}

func TestRootCmd_SensitiveWords(t *testing.T) {
	data := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(data, "notes.csv"),
		[]byte("序号,姓名,备注\n1,张三,内部机密文件\n2,李四,正常\n"), 0o600))

	cfgDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "words.txt"), []byte("机密\n"), 0o600))
	cfgPath := filepath.Join(cfgDir, "gridlint.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
rules:
  enabled: [sensitive_word]
sensitive:
  word_file: words.txt
`), 0o600))

	out, _, err := run(t, "--config", cfgPath, "check", data, "--format", "json", "--exit-zero")
	require.NoError(t, err)

	rep, err := report.ReadJSON(strings.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, 1, rep.Summary.Violations)
	v := rep.Files[0].Violations[0]
	assert.Equal(t, "SC02", v.RuleID)
	assert.Equal(t, 2, v.Row)
	assert.Contains(t, v.Message, "机密")
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "gridlint.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: html\n"), 0o600))

	_, _, err := run(t, "--config", cfgPath, "rules")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output")
}

func TestRootCmd_Completion(t *testing.T) {
	out, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "gridlint")

	_, _, err = run(t, "completion", "tcsh")
	require.Error(t, err)
}
