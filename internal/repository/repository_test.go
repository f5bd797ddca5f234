package repository

import (
	"context"
	"testing"
	"time"

	"apgbuilders/internal/database/dbtest"
	"apgbuilders/internal/models"
	"apgbuilders/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, _ := time.Parse(models.DateLayout, s)
	return d
}

type fixture struct {
	repos  *Repositories
	site   models.Site
	vendor models.Vendor
	worker models.Worker
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	repos := New(dbtest.Open(t))

	site := models.Site{Name: "Tower A", Location: "Pune", Status: models.SiteStatusActive}
	require.NoError(t, repos.Sites.Create(ctx, &site))
	vendor := models.Vendor{Name: "Shree Cement"}
	require.NoError(t, repos.Vendors.Create(ctx, &vendor))
	worker := models.Worker{Name: "Ramesh", DailyRate: decimal.NewNullDecimal(decimal.NewFromInt(850))}
	require.NoError(t, repos.Workers.Create(ctx, &worker))

	return fixture{repos: repos, site: site, vendor: vendor, worker: worker}
}

func TestSiteRepository(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	require.NotEqual(t, uuid.Nil, f.site.ID)

	paused := models.Site{Name: "Annex", Status: models.SiteStatusPaused}
	require.NoError(t, f.repos.Sites.Create(ctx, &paused))

	t.Run("counts by status", func(t *testing.T) {
		all, err := f.repos.Sites.Count(ctx, "")
		require.NoError(t, err)
		require.EqualValues(t, 2, all)

		active, err := f.repos.Sites.Count(ctx, models.SiteStatusActive)
		require.NoError(t, err)
		require.EqualValues(t, 1, active)
	})

	t.Run("options are ordered by name", func(t *testing.T) {
		opts, err := f.repos.Sites.Options(ctx)
		require.NoError(t, err)
		require.Len(t, opts, 2)
		require.Equal(t, "Annex", opts[0].Name)
		require.Equal(t, "Tower A", opts[1].Name)
		require.Empty(t, opts[1].Location, "options project id and name only")
	})

	t.Run("update and get", func(t *testing.T) {
		err := f.repos.Sites.Update(ctx, paused.ID, map[string]any{"status": models.SiteStatusCompleted})
		require.NoError(t, err)

		got, err := f.repos.Sites.Get(ctx, paused.ID)
		require.NoError(t, err)
		require.Equal(t, models.SiteStatusCompleted, got.Status)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := f.repos.Sites.Get(ctx, uuid.New())
		require.ErrorIs(t, err, store.ErrNotFound)

		err = f.repos.Sites.Update(ctx, uuid.New(), map[string]any{"name": "x"})
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestExpenseRepository(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	for _, d := range []string{"2024-01-01", "2024-03-01", "2024-02-01"} {
		e := models.Expense{
			SiteID:      f.site.ID,
			VendorID:    f.vendor.ID,
			Description: "cement " + d,
			Amount:      decimal.RequireFromString("1500.25"),
			ExpenseDate: day(d),
		}
		require.NoError(t, f.repos.Expenses.Create(ctx, &e))
	}

	t.Run("list embeds names newest first", func(t *testing.T) {
		rows, err := f.repos.Expenses.List(ctx, Filter{})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		require.Equal(t, "2024-03-01", rows[0].ExpenseDate.Format(models.DateLayout))
		require.Equal(t, "2024-01-01", rows[2].ExpenseDate.Format(models.DateLayout))
		require.NotNil(t, rows[0].Site)
		require.Equal(t, "Tower A", rows[0].Site.Name)
		require.NotNil(t, rows[0].Vendor)
		require.Equal(t, "Shree Cement", rows[0].Vendor.Name)
		require.True(t, decimal.RequireFromString("1500.25").Equal(rows[0].Amount))
	})

	t.Run("filters by vendor", func(t *testing.T) {
		other := uuid.New()
		rows, err := f.repos.Expenses.List(ctx, Filter{VendorID: &other})
		require.NoError(t, err)
		require.Empty(t, rows)

		rows, err = f.repos.Expenses.ListByVendor(ctx, f.vendor.ID)
		require.NoError(t, err)
		require.Len(t, rows, 3)
	})

	t.Run("missing relation reads as nil", func(t *testing.T) {
		orphan := models.Expense{
			SiteID:      uuid.New(),
			VendorID:    uuid.New(),
			Description: "orphan",
			Amount:      decimal.NewFromInt(1),
			ExpenseDate: day("2023-12-31"),
		}
		require.NoError(t, f.repos.Expenses.Create(ctx, &orphan))

		got, err := f.repos.Expenses.Get(ctx, orphan.ID)
		require.NoError(t, err)
		require.Nil(t, got.Site)
		require.Nil(t, got.Vendor)
	})
}

func TestWorkerPaymentRepository(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	days := 4
	p := models.WorkerPayment{
		SiteID:      f.site.ID,
		WorkerID:    f.worker.ID,
		Amount:      decimal.NewFromInt(3400),
		PaymentDate: day("2024-04-10"),
		DaysWorked:  &days,
	}
	require.NoError(t, f.repos.WorkerPayments.Create(ctx, &p))

	rows, err := f.repos.WorkerPayments.ListByWorker(ctx, f.worker.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 4, rows[0].Days())

	listed, err := f.repos.WorkerPayments.List(ctx, Filter{SiteID: &f.site.ID})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "Ramesh", listed[0].Worker.Name)

	opts, err := f.repos.Workers.Options(ctx)
	require.NoError(t, err)
	require.Len(t, opts, 1)
	require.True(t, opts[0].DailyRate.Valid)
}

func TestSiteIncomeRepository(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	in := models.SiteIncome{
		SiteID:      f.site.ID,
		Description: "running bill 1",
		Amount:      decimal.NewFromInt(50000),
		IncomeDate:  day("2024-05-01"),
	}
	require.NoError(t, f.repos.SiteIncome.Create(ctx, &in))

	rows, err := f.repos.SiteIncome.ListBySite(ctx, f.site.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	require.NoError(t, f.repos.SiteIncome.Delete(ctx, in.ID))
	require.ErrorIs(t, f.repos.SiteIncome.Delete(ctx, in.ID), store.ErrNotFound)

	rows, err = f.repos.SiteIncome.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, rows)
}
