package report

import (
	"fmt"
	"strings"
	"time"

	"apgbuilders/internal/models"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// SummaryHeader is the fixed first row of every summary export.
var SummaryHeader = []string{
	"Site Name", "Location", "Status", "Budget",
	"Total Income", "Total Expenses", "Worker Payments", "Net Profit",
}

// SiteLedger is a site together with the rows recorded against it.
type SiteLedger struct {
	Site     models.Site
	Expenses []models.Expense
	Payments []models.WorkerPayment
	Income   []models.SiteIncome
}

// BuildLedgers nests expenses, payments and income under their sites,
// keeping the order of sites as given.
func BuildLedgers(sites []models.Site, expenses []models.Expense, payments []models.WorkerPayment, income []models.SiteIncome) []SiteLedger {
	idx := make(map[uuid.UUID]int, len(sites))
	ledgers := make([]SiteLedger, len(sites))
	for i, s := range sites {
		idx[s.ID] = i
		ledgers[i].Site = s
	}
	for _, e := range expenses {
		if i, ok := idx[e.SiteID]; ok {
			ledgers[i].Expenses = append(ledgers[i].Expenses, e)
		}
	}
	for _, p := range payments {
		if i, ok := idx[p.SiteID]; ok {
			ledgers[i].Payments = append(ledgers[i].Payments, p)
		}
	}
	for _, in := range income {
		if i, ok := idx[in.SiteID]; ok {
			ledgers[i].Income = append(ledgers[i].Income, in)
		}
	}
	return ledgers
}

// summaryRecord renders one ledger as the eight summary columns.
func summaryRecord(l SiteLedger) []string {
	sum := PerSiteSummary(l.Site, l.Expenses, l.Payments, l.Income)
	budget := ""
	if l.Site.Budget.Valid {
		budget = l.Site.Budget.Decimal.String()
	}
	return []string{
		l.Site.Name,
		l.Site.Location,
		string(l.Site.Status),
		budget,
		sum.TotalIncome.String(),
		sum.TotalExpenses.String(),
		sum.TotalWorkerPayments.String(),
		sum.NetProfit.String(),
	}
}

// ExportSummaryCSV writes the header and one record per site. Every
// field is double-quoted; quotes inside a field are doubled.
func ExportSummaryCSV(ledgers []SiteLedger) string {
	var b strings.Builder
	writeQuotedRecord(&b, SummaryHeader)
	for _, l := range ledgers {
		writeQuotedRecord(&b, summaryRecord(l))
	}
	return b.String()
}

func writeQuotedRecord(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

const summarySheet = "Summary"

// ExportSummaryXLSX renders the same table as ExportSummaryCSV into a
// single-sheet workbook. Money columns are written as numbers.
func ExportSummaryXLSX(ledgers []SiteLedger) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(SummaryHeader))
	for i, h := range SummaryHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, l := range ledgers {
		sum := PerSiteSummary(l.Site, l.Expenses, l.Payments, l.Income)
		var budget any = ""
		if l.Site.Budget.Valid {
			budget = l.Site.Budget.Decimal.InexactFloat64()
		}
		row := []any{
			l.Site.Name,
			l.Site.Location,
			string(l.Site.Status),
			budget,
			sum.TotalIncome.InexactFloat64(),
			sum.TotalExpenses.InexactFloat64(),
			sum.TotalWorkerPayments.InexactFloat64(),
			sum.NetProfit.InexactFloat64(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFilename builds "<prefix>-<YYYY-MM-DD>.<ext>".
func ExportFilename(prefix string, now time.Time, ext string) string {
	return fmt.Sprintf("%s-%s.%s", prefix, now.Format(models.DateLayout), ext)
}
