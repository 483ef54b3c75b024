package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/gridlint/internal/cli/output"
)

// ViolationsFoundError makes check exit non-zero when data violations were
// reported.
type ViolationsFoundError struct {
	Violations int
	Files      int
}

func (e *ViolationsFoundError) Error() string {
	return fmt.Sprintf("%d violations found in %d files", e.Violations, e.Files)
}

// InvalidFormatError is returned for an unknown --format value.
type InvalidFormatError struct {
	Format string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format %q (want %s)", e.Format, strings.Join(output.Modes, "|"))
}
