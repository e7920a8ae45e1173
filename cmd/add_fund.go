package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	finance "github.com/harsh-kanjar/Finance-management-system-backend"
)

// addFundCmd holds the flags for the 'add-fund' subcommand.
type addFundCmd struct {
	name     string
	category string
	house    string
	code     string
	navDay   string
	amount   float64
}

func (*addFundCmd) Name() string     { return "add-fund" }
func (*addFundCmd) Synopsis() string { return "register a fund for recurring contributions" }
func (*addFundCmd) Usage() string {
	return `fms add-fund -name <fund name> -a <monthly amount> [-code <scheme code>]

  Registers a fund in the shared registry with a monthly contribution
  scheduled for the current year. Without -code, a scheme code is derived
  from the fund name.

Usage Examples:
$ fms add-fund -name "Parag Parikh Flexi Cap" -category "Flexi Cap" -a 1000

`
}

func (c *addFundCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Fund name. Required.")
	f.StringVar(&c.category, "category", "", "Scheme category, e.g. Mid Cap.")
	f.StringVar(&c.house, "house", "", "Fund house.")
	f.StringVar(&c.code, "code", "", "Scheme code. Derived from the name when empty.")
	f.StringVar(&c.navDay, "nav-day", "", "Day of the month the NAV is sampled. Defaults to 10.")
	f.Float64Var(&c.amount, "a", 0, "Monthly contribution amount. Required.")
}

func (c *addFundCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	books, err := openBooks()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory %q: %v\n", dataPath(), err)
		return subcommands.ExitFailure
	}

	fund, err := books.RegisterFund(finance.FundDefinition{
		FundName:           c.name,
		Category:           c.category,
		FundHouse:          c.house,
		SchemeCode:         c.code,
		NAVDay:             c.navDay,
		ContributionAmount: finance.M(c.amount),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error registering fund: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Registered %q under scheme code %s\n", fund.FundName, fund.SchemeCode)
	return subcommands.ExitSuccess
}
