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

// historyCmd holds the flags for the 'history' subcommand.
type historyCmd struct {
	month string
	sips  bool
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list the transactions of a month" }
func (*historyCmd) Usage() string {
	return `fms history [-m <YYYY-MM>] [-sip]

  Lists the user's transactions for a month in the order they were
  recorded. With -sip, the year's fund contributions are appended.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", finance.ThisMonth().String(), "Month to list, in YYYY-MM form.")
	f.BoolVar(&c.sips, "sip", false, "Also list the year's fund contributions.")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	records, err := books.History(currentUser(), month)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading history: %v\n", err)
		return subcommands.ExitFailure
	}

	report := &renderer.HistoryReport{
		User:    currentUser(),
		Month:   month,
		Records: records,
	}
	if c.sips {
		entries, err := books.Contributions(currentUser(), month.Year())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading contributions: %v\n", err)
			return subcommands.ExitFailure
		}
		report.SIPs = entries
	}

	printMarkdown(renderer.HistoryMarkdown(report))
	return subcommands.ExitSuccess
}
