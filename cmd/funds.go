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

// fundsCmd holds the flags for the 'funds' subcommand.
type fundsCmd struct {
	year int
}

func (*fundsCmd) Name() string     { return "funds" }
func (*fundsCmd) Synopsis() string { return "list the registered funds and their unit totals" }
func (*fundsCmd) Usage() string {
	return `fms funds [-y <year>]

  Lists every fund in the shared registry with its scheduled monthly
  amount for the year and its accumulated units.
`
}

func (c *fundsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "y", finance.Today().Year(), "Schedule year to display.")
}

func (c *fundsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	books, err := openBooks()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory %q: %v\n", dataPath(), err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.FundsMarkdown(books.Registry(), c.year))
	return subcommands.ExitSuccess
}
