package renderer

import (
	"bytes"
	"fmt"

	finance "github.com/harsh-kanjar/Finance-management-system-backend"
	md "github.com/nao1215/markdown"
)

// FundsMarkdown renders the fund registry as a markdown table, one row per
// fund in scheme-code order.
func FundsMarkdown(registry *finance.Registry, year int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Registered Funds")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Scheme code", "Fund", "Category", "Monthly amount", "Total units"},
		Rows:   [][]string{},
	}
	count := 0
	for fund := range registry.Funds() {
		count++
		monthly := "-"
		if amount, ok := fund.ScheduledAmount(year); ok {
			monthly = amount.String()
		}
		table.Rows = append(table.Rows, []string{
			fund.SchemeCode,
			fund.FundName,
			fund.Category,
			monthly,
			fund.TotalUnits.String(),
		})
	}
	if count == 0 {
		doc.PlainText("No funds registered.")
		return doc.String()
	}
	doc.Table(table)
	doc.PlainText(fmt.Sprintf("%d fund(s), schedule year %d.", count, year))

	return doc.String()
}
