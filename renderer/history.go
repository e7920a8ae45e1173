package renderer

import (
	"bytes"
	"fmt"
	"io"

	finance "github.com/harsh-kanjar/Finance-management-system-backend"
	md "github.com/nao1215/markdown"
)

// HistoryReport is the data rendered by the history command: one month of
// ledger records, plus the year's contributions when there are any.
type HistoryReport struct {
	User    string
	Month   finance.Month
	Records []finance.Record
	SIPs    []finance.SIPEntry
}

// HistoryMarkdown renders a month of transactions in append order.
func HistoryMarkdown(r *HistoryReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("History for %s in %s", r.User, r.Month))

	if len(r.Records) == 0 {
		doc.PlainText("No transactions this month.")
	} else {
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Date", "Id", "Category", "Kind", "Amount", "Balance"},
			Rows:   [][]string{},
		}
		for _, rec := range r.Records {
			table.Rows = append(table.Rows, []string{
				rec.Date.String(),
				rec.ID,
				rec.Category,
				string(rec.Kind),
				rec.Amount.String(),
				rec.BalanceAfter.String(),
			})
		}
		doc.Table(table)
	}

	out := doc.String()

	// The contribution section only appears when the year has entries.
	var section bytes.Buffer
	ConditionalBlock(&section, func(w io.Writer) bool {
		if len(r.SIPs) == 0 {
			return false
		}
		var sipBuf bytes.Buffer
		sipDoc := md.NewMarkdown(&sipBuf)
		sipDoc.H2(fmt.Sprintf("Contributions in %d", r.Month.Year()))
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Date", "Fund", "Amount", "Units", "Total units"},
			Rows:   [][]string{},
		}
		for _, e := range r.SIPs {
			table.Rows = append(table.Rows, []string{
				e.Date.String(),
				e.FundName,
				e.Amount.String(),
				e.Units.String(),
				e.TotalUnits.String(),
			})
		}
		sipDoc.Table(table)
		fmt.Fprint(w, sipBuf.String())
		return true
	})

	return out + section.String()
}
