package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/gridlint/internal/cli/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ErrNoPath is returned by check without a path when it cannot prompt.
var ErrNoPath = errors.New("no path given (pass files or folders, or run on a terminal to be asked)")

const pathPrompt = "请输入要检查的文件夹路径："

// promptPath asks for the folder to check. It only prompts when stdin is
// a terminal.
func promptPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	in, ok := cmd.InOrStdin().(*os.File)
	if !ok || !term.IsTerminal(int(in.Fd())) { //nolint:gosec // fd fits in int
		return "", ErrNoPath
	}

	rlCfg := &readline.Config{
		Prompt:          pathPrompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           io.NopCloser(in),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	}
	if cfg.StatePath != "" {
		rlCfg.HistoryFile = filepath.Join(filepath.Dir(cfg.StatePath), "path_history")
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return "", fmt.Errorf("failed to initialize prompt: %w", err)
	}
	defer func() { _ = rl.Close() }()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return "", ErrNoPath
		}
		if err != nil {
			return "", err
		}
		// Paths dragged into a terminal arrive quoted.
		line = strings.Trim(strings.TrimSpace(line), `"'`)
		if line != "" {
			return line, nil
		}
	}
}
