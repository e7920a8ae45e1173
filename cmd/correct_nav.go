package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	finance "github.com/harsh-kanjar/Finance-management-system-backend"
)

// correctNavCmd holds the flags for the 'correct-nav' subcommand.
type correctNavCmd struct {
	scheme string
	month  string
	nav    float64
}

func (*correctNavCmd) Name() string     { return "correct-nav" }
func (*correctNavCmd) Synopsis() string { return "overwrite the NAV recorded for a month" }
func (*correctNavCmd) Usage() string {
	return `fms correct-nav -scheme <code> -nav <price> [-m <YYYY-MM>]

  Replaces the NAV recorded for a month's contribution. The unit count is
  never recomputed; only the recorded price changes. A month that never
  had a contribution cannot be corrected.
`
}

func (c *correctNavCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.scheme, "scheme", "", "Scheme code of the fund. Required.")
	f.StringVar(&c.month, "m", finance.ThisMonth().String(), "Month to correct, in YYYY-MM form.")
	f.Float64Var(&c.nav, "nav", 0, "Corrected NAV. Required.")
}

func (c *correctNavCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.scheme == "" {
		fmt.Fprintln(os.Stderr, "Error: -scheme is required.")
		return subcommands.ExitUsageError
	}
	month, err := finance.ParseMonth(c.month)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing month: %v\n", err)
		return subcommands.ExitUsageError
	}

	books, err := openBooks()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory %q: %v\n", dataPath(), err)
		return subcommands.ExitFailure
	}

	if err := books.CorrectNAV(c.scheme, month, finance.M(c.nav)); err != nil {
		fmt.Fprintf(os.Stderr, "Error correcting nav: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Corrected nav for %s in %s to %s\n", c.scheme, month, finance.M(c.nav))
	return subcommands.ExitSuccess
}
