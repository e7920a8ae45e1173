package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	finance "github.com/harsh-kanjar/Finance-management-system-backend"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	amount      float64
	kind        string
	category    string
	description string
	method      string
	notes       string
	loanID      string
	pocketMoney bool
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a credit or debit in the ledger" }
func (*addCmd) Usage() string {
	return `fms add -a <amount> [-k credit|debit] [-c <category>] [-desc <text>]

  Appends a transaction to the user's ledger for the current month and
  updates the running balance. The kind defaults to debit.

Usage Examples:
# Record a salary credit.
$ fms add -a 50000 -k credit -c income -desc "September salary"

# Record an expense.
$ fms add -a 40 -c expense -desc "groceries"

`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "a", 0, "Amount of the transaction. Required.")
	f.StringVar(&c.kind, "k", "debit", "Kind of cash flow: credit or debit.")
	f.StringVar(&c.category, "c", "", "Category, e.g. expense, income, savings.")
	f.StringVar(&c.description, "desc", "", "Free-form description.")
	f.StringVar(&c.method, "m", "", "Payment method, e.g. UPI, Card, Cash.")
	f.StringVar(&c.notes, "notes", "", "Additional notes.")
	f.StringVar(&c.loanID, "loan", "", "Loan identifier this transaction settles.")
	f.BoolVar(&c.pocketMoney, "pocket", false, "Mark the transaction as pocket money.")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	books, err := openBooks()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory %q: %v\n", dataPath(), err)
		return subcommands.ExitFailure
	}

	rec, err := books.Record(currentUser(), finance.Input{
		Amount:        finance.M(c.amount),
		Kind:          c.kind,
		Category:      c.category,
		Description:   c.description,
		PaymentMethod: c.method,
		Notes:         c.notes,
		LoanID:        c.loanID,
		PocketMoney:   c.pocketMoney,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording transaction: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Recorded %s %s %s, balance %s\n", rec.ID, rec.Kind, rec.Amount.Display(), rec.BalanceAfter.Display())
	return subcommands.ExitSuccess
}
