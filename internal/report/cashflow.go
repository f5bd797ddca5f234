package report

import (
	"fmt"
	"time"

	"apgbuilders/internal/models"

	"github.com/shopspring/decimal"
)

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// ParsePeriod accepts daily, weekly or monthly; blank means daily.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case "":
		return PeriodDaily, nil
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return p, nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

// DefaultCount is the number of buckets shown when none is requested.
func (p Period) DefaultCount() int {
	switch p {
	case PeriodWeekly:
		return 8
	case PeriodMonthly:
		return 12
	default:
		return 7
	}
}

// BucketStart truncates t to the start of its bucket: the day, the
// Monday of its week, or the first of its month.
func (p Period) BucketStart(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	switch p {
	case PeriodWeekly:
		offset := (int(d.Weekday()) + 6) % 7
		return d.AddDate(0, 0, -offset)
	case PeriodMonthly:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return d
	}
}

// step moves a bucket start n buckets forward (or back when n < 0).
func (p Period) step(t time.Time, n int) time.Time {
	switch p {
	case PeriodWeekly:
		return t.AddDate(0, 0, 7*n)
	case PeriodMonthly:
		return t.AddDate(0, n, 0)
	default:
		return t.AddDate(0, 0, n)
	}
}

type CashFlowPoint struct {
	Label          string          `json:"label"` // bucket start, YYYY-MM-DD
	Income         decimal.Decimal `json:"income"`
	Expenses       decimal.Decimal `json:"expenses"`
	WorkerPayments decimal.Decimal `json:"worker_payments"`
	Net            decimal.Decimal `json:"net"`
}

type CashFlowReport struct {
	Period Period          `json:"period"`
	From   string          `json:"from"`
	To     string          `json:"to"` // last day covered
	Points []CashFlowPoint `json:"points"`
	Totals CashFlowPoint   `json:"totals"`
}

// CashFlow buckets income, expenses and worker payments into count
// consecutive periods ending with the one containing today. Every bucket
// is present even when nothing was recorded in it; rows outside the
// window are ignored.
func CashFlow(p Period, today time.Time, count int, expenses []models.Expense, payments []models.WorkerPayment, income []models.SiteIncome) CashFlowReport {
	if count <= 0 {
		count = p.DefaultCount()
	}

	last := p.BucketStart(today)
	first := last
	for i := 1; i < count; i++ {
		first = p.step(first, -1)
	}

	points := make([]CashFlowPoint, count)
	idx := make(map[time.Time]int, count)
	b := first
	for i := range points {
		idx[b] = i
		points[i] = CashFlowPoint{
			Label:          b.Format(models.DateLayout),
			Income:         decimal.Zero,
			Expenses:       decimal.Zero,
			WorkerPayments: decimal.Zero,
		}
		b = p.step(b, 1)
	}
	end := b

	for _, in := range income {
		if i, ok := idx[p.BucketStart(in.IncomeDate)]; ok {
			points[i].Income = points[i].Income.Add(in.Amount)
		}
	}
	for _, e := range expenses {
		if i, ok := idx[p.BucketStart(e.ExpenseDate)]; ok {
			points[i].Expenses = points[i].Expenses.Add(e.Amount)
		}
	}
	for _, wp := range payments {
		if i, ok := idx[p.BucketStart(wp.PaymentDate)]; ok {
			points[i].WorkerPayments = points[i].WorkerPayments.Add(wp.Amount)
		}
	}

	totals := CashFlowPoint{
		Label:          "total",
		Income:         decimal.Zero,
		Expenses:       decimal.Zero,
		WorkerPayments: decimal.Zero,
	}
	for i := range points {
		pt := &points[i]
		pt.Net = NetProfit(pt.Income, pt.Expenses, pt.WorkerPayments)
		totals.Income = totals.Income.Add(pt.Income)
		totals.Expenses = totals.Expenses.Add(pt.Expenses)
		totals.WorkerPayments = totals.WorkerPayments.Add(pt.WorkerPayments)
	}
	totals.Net = NetProfit(totals.Income, totals.Expenses, totals.WorkerPayments)

	return CashFlowReport{
		Period: p,
		From:   first.Format(models.DateLayout),
		To:     end.AddDate(0, 0, -1).Format(models.DateLayout),
		Points: points,
		Totals: totals,
	}
}
