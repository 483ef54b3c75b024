// Package main provides the gridlint CLI.
package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/leapstack-labs/gridlint/internal/cli"
)

func main() {
	// .env feeds the GRIDLINT_ environment layer; variables already set win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = os.Stderr.WriteString("warning: failed to read .env: " + err.Error() + "\n")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
