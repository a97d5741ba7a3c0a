package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/bankaccounts/internal/client/models"
	"github.com/olekukonko/tablewriter"
)

// formatAmount renders minor units as a decimal with two places.
func formatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	return table
}

func printAccounts(w io.Writer, accounts []models.Account) {
	if len(accounts) == 0 {
		fmt.Fprintln(w, "No accounts.")
		return
	}

	table := newTable(w)
	table.SetHeader([]string{"Number", "Holder", "Balance", "Updated"})
	for _, a := range accounts {
		table.Append([]string{a.Number, a.Holder, formatAmount(a.Balance), a.UpdatedAt.Format(time.RFC3339)})
	}
	table.Render()
}

func printAccount(w io.Writer, a *models.Account) {
	table := newTable(w)
	table.SetColumnSeparator(":")
	table.AppendBulk([][]string{
		{"Number", a.Number},
		{"Holder", a.Holder},
		{"Balance", formatAmount(a.Balance)},
		{"ID", a.ID},
		{"Created", a.CreatedAt.Format(time.RFC3339)},
		{"Updated", a.UpdatedAt.Format(time.RFC3339)},
	})
	table.Render()
}
