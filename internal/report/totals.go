// Package report derives financial summaries from rows that were already
// fetched. Nothing here performs I/O; callers hand in complete result
// sets and never a partial batch.
package report

import (
	"apgbuilders/internal/models"

	"github.com/shopspring/decimal"
)

// Amounted is any row carrying a monetary amount.
type Amounted interface {
	GetAmount() decimal.Decimal
}

// SumAmounts totals the amount of every row. A zero-value amount
// contributes nothing and an empty slice sums to zero.
func SumAmounts[T Amounted](rows []T) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.GetAmount())
	}
	return total
}

// NetProfit is income minus expenses minus worker payments. Negative
// results are losses and are returned as is.
func NetProfit(income, expenses, workerPayments decimal.Decimal) decimal.Decimal {
	return income.Sub(expenses).Sub(workerPayments)
}

// AverageDailyEarning returns totalPayments / totalDaysWorked, or zero
// when no days were worked.
func AverageDailyEarning(totalPayments decimal.Decimal, totalDaysWorked int) decimal.Decimal {
	if totalDaysWorked <= 0 {
		return decimal.Zero
	}
	return totalPayments.Div(decimal.NewFromInt(int64(totalDaysWorked)))
}

// CreditExposure sums the outstanding credit over credit expenses.
func CreditExposure(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.IsCredit {
			total = total.Add(e.EffectiveCreditAmount())
		}
	}
	return total
}

// PaymentAmount is the amount a worker earns for daysWorked at dailyRate.
// ok is false when there is nothing to compute from.
func PaymentAmount(dailyRate decimal.NullDecimal, daysWorked int) (decimal.Decimal, bool) {
	if !dailyRate.Valid || dailyRate.Decimal.IsZero() || daysWorked <= 0 {
		return decimal.Zero, false
	}
	return dailyRate.Decimal.Mul(decimal.NewFromInt(int64(daysWorked))), true
}
