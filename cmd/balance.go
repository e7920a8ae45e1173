package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/harsh-kanjar/Finance-management-system-backend/renderer"
)

// balanceCmd holds the flags for the 'balance' subcommand.
type balanceCmd struct{}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "display the current balance and monthly totals" }
func (*balanceCmd) Usage() string {
	return `fms balance

  Displays the user's running balance, savings, and the category totals
  accumulated in the current month.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {}

func (c *balanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	books, err := openBooks()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory %q: %v\n", dataPath(), err)
		return subcommands.ExitFailure
	}

	sum, err := books.Summary(currentUser())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading summary: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SummaryMarkdown(currentUser(), sum))
	return subcommands.ExitSuccess
}
