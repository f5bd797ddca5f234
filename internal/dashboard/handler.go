package dashboard

import (
	"fmt"

	"apgbuilders/internal/httpx"
	"apgbuilders/internal/report"
	"apgbuilders/internal/repository"

	"github.com/gofiber/fiber/v2"
)

const maxCashFlowBuckets = 366

// GET /api/dashboard
func DashboardHandler(repos *repository.Repositories) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := Load(c.UserContext(), repos)
		if err != nil {
			return httpx.ReadFailed(err, "dashboard data")
		}
		counts, err := LoadCounts(c.UserContext(), repos)
		if err != nil {
			return httpx.ReadFailed(err, "dashboard data")
		}

		stats := report.DashboardSummary(s.Sites, s.Vendors, s.Workers, s.Expenses, s.Payments, s.Income)
		counts.apply(&stats)
		return c.JSON(stats)
	}
}

// GET /api/dashboard/cash-flow?period=monthly&count=12
func CashFlowHandler(repos *repository.Repositories) fiber.Handler {
	return func(c *fiber.Ctx) error {
		period, err := report.ParsePeriod(c.Query("period"))
		if err != nil {
			return httpx.BadRequest("period must be one of daily, weekly, monthly")
		}

		count := c.QueryInt("count", period.DefaultCount())
		if count <= 0 || count > maxCashFlowBuckets {
			return httpx.BadRequest("count must be between 1 and %d", maxCashFlowBuckets)
		}

		s, err := Load(c.UserContext(), repos)
		if err != nil {
			return httpx.ReadFailed(err, "dashboard data")
		}

		return c.JSON(report.CashFlow(period, httpx.Today(), count, s.Expenses, s.Payments, s.Income))
	}
}

// Export formats served by ExportHandler and the export command.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Render encodes the site summary of s in the given format.
func Render(format string, s *Snapshot) ([]byte, string, error) {
	ledgers := report.BuildLedgers(s.Sites, s.Expenses, s.Payments, s.Income)
	switch format {
	case FormatCSV:
		return []byte(report.ExportSummaryCSV(ledgers)), "text/csv; charset=utf-8", nil
	case FormatXLSX:
		b, err := report.ExportSummaryXLSX(ledgers)
		return b, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", err
	default:
		return nil, "", fmt.Errorf("unsupported export format %q", format)
	}
}

// GET /api/export/summary.csv, /api/export/summary.xlsx
func ExportHandler(repos *repository.Repositories, filePrefix, format string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := Load(c.UserContext(), repos)
		if err != nil {
			return httpx.ReadFailed(err, "export data")
		}

		body, contentType, err := Render(format, s)
		if err != nil {
			return httpx.WriteFailed(err, "build", "export")
		}

		c.Attachment(report.ExportFilename(filePrefix, httpx.Today(), format))
		c.Set(fiber.HeaderContentType, contentType)
		return c.Send(body)
	}
}
