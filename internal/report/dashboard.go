package report

import (
	"sort"

	"apgbuilders/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RecentExpenseLimit = 5

	UnknownSite   = "Unknown Site"
	UnknownVendor = "Unknown Vendor"
	UnknownWorker = "Unknown Worker"
)

type RecentExpense struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate string          `json:"expense_date"`
	SiteName    string          `json:"site_name"`
	VendorName  string          `json:"vendor_name"`
}

type Stats struct {
	TotalSites          int             `json:"total_sites"`
	ActiveSites         int             `json:"active_sites"`
	TotalVendors        int             `json:"total_vendors"`
	TotalWorkers        int             `json:"total_workers"`
	TotalExpenses       decimal.Decimal `json:"total_expenses"`
	TotalWorkerPayments decimal.Decimal `json:"total_worker_payments"`
	TotalIncome         decimal.Decimal `json:"total_income"`
	NetProfit           decimal.Decimal `json:"net_profit"`
	RecentExpenses      []RecentExpense `json:"recent_expenses"`
}

// DashboardSummary combines entity counts, money totals and the most
// recent expenses into the dashboard figures.
func DashboardSummary(
	sites []models.Site,
	vendors []models.Vendor,
	workers []models.Worker,
	expenses []models.Expense,
	payments []models.WorkerPayment,
	income []models.SiteIncome,
) Stats {
	active := 0
	for _, s := range sites {
		if s.Status == models.SiteStatusActive {
			active++
		}
	}

	totalExpenses := SumAmounts(expenses)
	totalPayments := SumAmounts(payments)
	totalIncome := SumAmounts(income)

	return Stats{
		TotalSites:          len(sites),
		ActiveSites:         active,
		TotalVendors:        len(vendors),
		TotalWorkers:        len(workers),
		TotalExpenses:       totalExpenses,
		TotalWorkerPayments: totalPayments,
		TotalIncome:         totalIncome,
		NetProfit:           NetProfit(totalIncome, totalExpenses, totalPayments),
		RecentExpenses:      RecentExpenses(expenses, RecentExpenseLimit),
	}
}

// RecentExpenses returns at most n expenses, newest expense_date first.
// Equal dates keep the order the store returned them in.
func RecentExpenses(expenses []models.Expense, n int) []RecentExpense {
	sorted := make([]models.Expense, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ExpenseDate.After(sorted[j].ExpenseDate)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}

	out := make([]RecentExpense, 0, len(sorted))
	for _, e := range sorted {
		out = append(out, RecentExpense{
			ID:          e.ID,
			Description: e.Description,
			Amount:      e.Amount,
			ExpenseDate: e.ExpenseDate.Format(models.DateLayout),
			SiteName:    SiteName(e.Site),
			VendorName:  VendorName(e.Vendor),
		})
	}
	return out
}

// SiteName is the display name of an embedded site, if any.
func SiteName(s *models.Site) string {
	if s == nil || s.Name == "" {
		return UnknownSite
	}
	return s.Name
}

func VendorName(v *models.Vendor) string {
	if v == nil || v.Name == "" {
		return UnknownVendor
	}
	return v.Name
}

func WorkerName(w *models.Worker) string {
	if w == nil || w.Name == "" {
		return UnknownWorker
	}
	return w.Name
}
