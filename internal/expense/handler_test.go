package expense

import (
	"context"
	"testing"

	"apgbuilders/internal/audit"
	"apgbuilders/internal/database/dbtest"
	"apgbuilders/internal/httpx/httpxtest"
	"apgbuilders/internal/models"
	"apgbuilders/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	app     *fiber.App
	db      *gorm.DB
	repos   *repository.Repositories
	journal *audit.Journal
	site    models.Site
	vendor  models.Vendor
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := dbtest.Open(t)
	repos := repository.New(db)
	journal := audit.NewJournal(db)
	ctx := context.Background()

	site := models.Site{Name: "Tower A", Status: models.SiteStatusActive}
	require.NoError(t, repos.Sites.Create(ctx, &site))
	vendor := models.Vendor{Name: "Shree Cement"}
	require.NoError(t, repos.Vendors.Create(ctx, &vendor))

	app := httpxtest.NewApp()
	app.Get("/expenses", ListExpensesHandler(repos))
	app.Get("/expenses/:id", GetExpenseHandler(repos))
	app.Post("/expenses", CreateExpenseHandler(repos, journal))
	app.Put("/expenses/:id", UpdateExpenseHandler(repos, journal))

	return fixture{app: app, db: db, repos: repos, journal: journal, site: site, vendor: vendor}
}

func (f fixture) body(extra map[string]any) map[string]any {
	b := map[string]any{
		"site_id":      f.site.ID.String(),
		"vendor_id":    f.vendor.ID.String(),
		"description":  "Cement bags",
		"amount":       "12000",
		"expense_date": "2025-03-01",
	}
	for k, v := range extra {
		b[k] = v
	}
	return b
}

func TestCreateExpenseHandler(t *testing.T) {
	f := setup(t)

	t.Run("creates with names embedded", func(t *testing.T) {
		var got ExpenseResponse
		status := httpxtest.DoJSON(t, f.app, fiber.MethodPost, "/expenses", f.body(nil), &got)
		require.Equal(t, fiber.StatusCreated, status)
		require.Equal(t, "Tower A", got.SiteName)
		require.Equal(t, "Shree Cement", got.VendorName)
		require.Equal(t, "2025-03-01", got.ExpenseDate)
		require.False(t, got.IsCredit)
		require.True(t, got.EffectiveCreditAmount.IsZero())

		logs, err := f.journal.List(context.Background(), "expense", 0)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		require.Equal(t, "Expense created: Cement bags - 12000.00 (Tower A)", logs[0].Description)
	})

	t.Run("credit without amount owes everything", func(t *testing.T) {
		var got ExpenseResponse
		status := httpxtest.DoJSON(t, f.app, fiber.MethodPost, "/expenses", f.body(map[string]any{"is_credit": true}), &got)
		require.Equal(t, fiber.StatusCreated, status)
		require.False(t, got.CreditAmount.Valid)
		require.True(t, decimal.NewFromInt(12000).Equal(got.EffectiveCreditAmount))
	})

	t.Run("credit amount ignored unless on credit", func(t *testing.T) {
		var got ExpenseResponse
		status := httpxtest.DoJSON(t, f.app, fiber.MethodPost, "/expenses", f.body(map[string]any{"credit_amount": 500}), &got)
		require.Equal(t, fiber.StatusCreated, status)
		require.False(t, got.CreditAmount.Valid)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		cases := []struct {
			name  string
			extra map[string]any
			want  string
		}{
			{"negative amount", map[string]any{"amount": -1}, "amount must not be negative"},
			{"missing amount", map[string]any{"amount": nil}, "amount is required"},
			{"missing site", map[string]any{"site_id": ""}, "site_id is required"},
			{"unknown vendor", map[string]any{"vendor_id": "00000000-0000-0000-0000-000000000009"}, "vendor does not exist"},
			{"blank description", map[string]any{"description": "  "}, "description is required"},
			{"bad date", map[string]any{"expense_date": "2025-13-01"}, "expense_date must be formatted as YYYY-MM-DD"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				status, body := httpxtest.Do(t, f.app, fiber.MethodPost, "/expenses", f.body(tc.extra))
				require.Equal(t, fiber.StatusBadRequest, status)
				require.Equal(t, tc.want, httpxtest.Error(t, body))
			})
		}
	})
}

func TestListExpensesHandler(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	other := models.Vendor{Name: "Zenith Steel"}
	require.NoError(t, f.repos.Vendors.Create(ctx, &other))

	for _, b := range []map[string]any{
		f.body(map[string]any{"description": "Jan", "amount": 100, "expense_date": "2025-01-01"}),
		f.body(map[string]any{"description": "Mar", "amount": 300, "expense_date": "2025-03-01", "is_credit": true, "credit_amount": 120}),
		f.body(map[string]any{"description": "Feb", "amount": 200, "expense_date": "2025-02-01", "vendor_id": other.ID.String()}),
	} {
		status, _ := httpxtest.Do(t, f.app, fiber.MethodPost, "/expenses", b)
		require.Equal(t, fiber.StatusCreated, status)
	}

	var all ExpenseListResponse
	require.Equal(t, fiber.StatusOK, httpxtest.DoJSON(t, f.app, fiber.MethodGet, "/expenses", nil, &all))
	require.Len(t, all.Items, 3)
	require.Equal(t, []string{"Mar", "Feb", "Jan"}, []string{all.Items[0].Description, all.Items[1].Description, all.Items[2].Description})
	require.True(t, decimal.NewFromInt(600).Equal(all.TotalExpenses))
	require.True(t, decimal.NewFromInt(120).Equal(all.TotalCredit))

	var byVendor ExpenseListResponse
	require.Equal(t, fiber.StatusOK, httpxtest.DoJSON(t, f.app, fiber.MethodGet, "/expenses?vendor_id="+other.ID.String(), nil, &byVendor))
	require.Len(t, byVendor.Items, 1)
	require.Equal(t, "Zenith Steel", byVendor.Items[0].VendorName)

	status, _ := httpxtest.Do(t, f.app, fiber.MethodGet, "/expenses?site_id=garbage", nil)
	require.Equal(t, fiber.StatusBadRequest, status)
}

func TestUpdateExpenseHandler(t *testing.T) {
	f := setup(t)

	var created ExpenseResponse
	require.Equal(t, fiber.StatusCreated, httpxtest.DoJSON(t, f.app, fiber.MethodPost, "/expenses", f.body(nil), &created))

	var updated ExpenseResponse
	status := httpxtest.DoJSON(t, f.app, fiber.MethodPut, "/expenses/"+created.ID.String(),
		f.body(map[string]any{"amount": "13500.75", "is_credit": true, "credit_amount": "5000"}), &updated)
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, created.ID, updated.ID)

	var fetched ExpenseResponse
	require.Equal(t, fiber.StatusOK, httpxtest.DoJSON(t, f.app, fiber.MethodGet, "/expenses/"+created.ID.String(), nil, &fetched))
	require.True(t, decimal.RequireFromString("13500.75").Equal(fetched.Amount))
	require.True(t, fetched.IsCredit)
	require.True(t, decimal.NewFromInt(5000).Equal(fetched.EffectiveCreditAmount))
	require.Equal(t, "Shree Cement", fetched.VendorName)

	status, body := httpxtest.Do(t, f.app, fiber.MethodGet, "/expenses/00000000-0000-0000-0000-000000000001", nil)
	require.Equal(t, fiber.StatusNotFound, status)
	require.Equal(t, "Expense not found", httpxtest.Error(t, body))
}

func TestExpenseHandlers_WriteFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		f := setup(t)
		dbtest.RejectWrites(t, f.db, "expenses", "INSERT")

		status, body := httpxtest.Do(t, f.app, fiber.MethodPost, "/expenses", f.body(nil))
		require.Equal(t, fiber.StatusInternalServerError, status)
		require.Equal(t, "Failed to create expense", httpxtest.Error(t, body))

		rows, err := f.repos.Expenses.ListAll(ctx)
		require.NoError(t, err)
		require.Empty(t, rows)
		logs, err := f.journal.List(ctx, "expense", 0)
		require.NoError(t, err)
		require.Empty(t, logs)
	})

	t.Run("update", func(t *testing.T) {
		f := setup(t)
		var created ExpenseResponse
		require.Equal(t, fiber.StatusCreated, httpxtest.DoJSON(t, f.app, fiber.MethodPost, "/expenses", f.body(nil), &created))
		dbtest.RejectWrites(t, f.db, "expenses", "UPDATE")

		status, body := httpxtest.Do(t, f.app, fiber.MethodPut, "/expenses/"+created.ID.String(), f.body(map[string]any{"amount": "99"}))
		require.Equal(t, fiber.StatusInternalServerError, status)
		require.Equal(t, "Failed to update expense", httpxtest.Error(t, body))

		stored, err := f.repos.Expenses.Get(ctx, created.ID)
		require.NoError(t, err)
		require.True(t, decimal.NewFromInt(12000).Equal(stored.Amount))
		logs, err := f.journal.List(ctx, "expense", 0)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		require.Equal(t, models.AuditActionCreate, logs[0].Action)
	})
}
