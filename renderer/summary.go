package renderer

import (
	"bytes"
	"fmt"

	finance "github.com/harsh-kanjar/Finance-management-system-backend"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders a user's balance and current-month aggregates.
func SummaryMarkdown(user string, s finance.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Account Summary for %s", user))
	doc.PlainText(fmt.Sprintf("Balance: %s", s.Balance.Display()))
	doc.PlainText(fmt.Sprintf("Savings: %s", s.Savings.Display()))

	doc.H2(s.Month.String())

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Category", "Total"},
		Rows: [][]string{
			{"Expenses", s.MonthData.Expenses.String()},
			{"Home essentials", s.MonthData.HomeEssentials.String()},
			{"Investments", s.MonthData.Investments.String()},
			{"Lend", s.MonthData.Lend.String()},
			{"Savings", s.MonthData.Savings.String()},
			{"Income", s.MonthData.Income.String()},
			{"Untracked cashflow", s.MonthData.UntrackedCashflow.String()},
		},
	}
	doc.Table(table)

	return doc.String()
}
