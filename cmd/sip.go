package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	finance "github.com/harsh-kanjar/Finance-management-system-backend"
	"github.com/harsh-kanjar/Finance-management-system-backend/renderer"
)

// sipCmd holds the flags for the 'sip' subcommand.
type sipCmd struct {
	scheme string
	nav    float64
	fetch  bool
}

func (*sipCmd) Name() string     { return "sip" }
func (*sipCmd) Synopsis() string { return "apply this month's contribution for a fund" }
func (*sipCmd) Usage() string {
	return `fms sip -scheme <code> (-nav <price> | -fetch)

  Converts the fund's scheduled monthly amount into units at the given
  NAV, and mirrors the contribution into the ledger as an investment
  debit. A month accepts a single contribution per fund; use correct-nav
  to fix a wrongly submitted NAV.

Usage Examples:
# Apply with an explicit NAV.
$ fms sip -scheme PARAGP-123 -nav 117.2

# Apply with the latest NAV published by the public feed.
$ fms sip -scheme PARAGP-123 -fetch

`
}

func (c *sipCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.scheme, "scheme", "", "Scheme code of the fund. Required.")
	f.Float64Var(&c.nav, "nav", 0, "NAV to apply the contribution at.")
	f.BoolVar(&c.fetch, "fetch", false, "Fetch the latest NAV from the public feed instead of -nav.")
}

func (c *sipCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.scheme == "" {
		fmt.Fprintln(os.Stderr, "Error: -scheme is required.")
		return subcommands.ExitUsageError
	}

	nav := finance.M(c.nav)
	if c.fetch {
		fetched, err := finance.LatestNAV(nil, finance.NAVBaseURL(), c.scheme)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching nav: %v\n", err)
			return subcommands.ExitFailure
		}
		nav = fetched
	}

	books, err := openBooks()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory %q: %v\n", dataPath(), err)
		return subcommands.ExitFailure
	}

	contrib, err := books.ApplySIP(currentUser(), c.scheme, nav)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error applying contribution: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderContribution(&renderer.ContributionReport{
		User:           currentUser(),
		Date:           finance.Today(),
		SchemeCode:     contrib.SchemeCode,
		FundName:       contrib.FundName,
		Amount:         contrib.AmountApplied,
		NAV:            contrib.NAV,
		UnitsPurchased: contrib.UnitsPurchased,
		TotalUnits:     contrib.NewTotalUnits,
		Value:          contrib.NAV.Mul(contrib.NewTotalUnits),
	}))
	return subcommands.ExitSuccess
}
