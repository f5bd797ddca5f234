package report

import (
	"apgbuilders/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SiteSummary struct {
	TotalIncome         decimal.Decimal `json:"total_income"`
	TotalExpenses       decimal.Decimal `json:"total_expenses"`
	TotalWorkerPayments decimal.Decimal `json:"total_worker_payments"`
	NetProfit           decimal.Decimal `json:"net_profit"`
	ExpensesCount       int             `json:"expenses_count"`
}

// PerSiteSummary reduces the rows belonging to site. Rows of other sites
// are ignored, so callers may pass unfiltered slices.
func PerSiteSummary(site models.Site, expenses []models.Expense, payments []models.WorkerPayment, income []models.SiteIncome) SiteSummary {
	ownExpenses := matching(expenses, site.ID, func(e models.Expense) uuid.UUID { return e.SiteID })
	ownPayments := matching(payments, site.ID, func(p models.WorkerPayment) uuid.UUID { return p.SiteID })
	ownIncome := matching(income, site.ID, func(i models.SiteIncome) uuid.UUID { return i.SiteID })

	totalIncome := SumAmounts(ownIncome)
	totalExpenses := SumAmounts(ownExpenses)
	totalPayments := SumAmounts(ownPayments)

	return SiteSummary{
		TotalIncome:         totalIncome,
		TotalExpenses:       totalExpenses,
		TotalWorkerPayments: totalPayments,
		NetProfit:           NetProfit(totalIncome, totalExpenses, totalPayments),
		ExpensesCount:       len(ownExpenses),
	}
}

type VendorSummary struct {
	TotalExpenses       decimal.Decimal `json:"total_expenses"`
	TotalCreditExpenses decimal.Decimal `json:"total_credit_expenses"`
	ExpensesCount       int             `json:"expenses_count"`
}

func PerVendorSummary(vendor models.Vendor, expenses []models.Expense) VendorSummary {
	own := matching(expenses, vendor.ID, func(e models.Expense) uuid.UUID { return e.VendorID })
	return VendorSummary{
		TotalExpenses:       SumAmounts(own),
		TotalCreditExpenses: CreditExposure(own),
		ExpensesCount:       len(own),
	}
}

type WorkerSummary struct {
	TotalPayments       decimal.Decimal `json:"total_payments"`
	TotalDaysWorked     int             `json:"total_days_worked"`
	PaymentsCount       int             `json:"payments_count"`
	AverageDailyEarning decimal.Decimal `json:"average_daily_earning"`
}

func PerWorkerSummary(worker models.Worker, payments []models.WorkerPayment) WorkerSummary {
	own := matching(payments, worker.ID, func(p models.WorkerPayment) uuid.UUID { return p.WorkerID })

	days := 0
	for _, p := range own {
		days += p.Days()
	}
	total := SumAmounts(own)

	return WorkerSummary{
		TotalPayments:       total,
		TotalDaysWorked:     days,
		PaymentsCount:       len(own),
		AverageDailyEarning: AverageDailyEarning(total, days),
	}
}

// matching keeps the rows whose key matches id.
func matching[T any](rows []T, id uuid.UUID, key func(T) uuid.UUID) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if key(r) == id {
			out = append(out, r)
		}
	}
	return out
}
