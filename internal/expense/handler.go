package expense

import (
	"fmt"
	"strings"

	"apgbuilders/internal/audit"
	"apgbuilders/internal/httpx"
	"apgbuilders/internal/models"
	"apgbuilders/internal/report"
	"apgbuilders/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ExpenseRequest struct {
	SiteID       string           `json:"site_id"`
	VendorID     string           `json:"vendor_id"`
	Description  string           `json:"description"`
	Amount       *decimal.Decimal `json:"amount"`
	ExpenseDate  string           `json:"expense_date"` // "2025-03-01", today when blank
	Category     string           `json:"category"`
	ReceiptURL   string           `json:"receipt_url"`
	Notes        string           `json:"notes"`
	IsCredit     bool             `json:"is_credit"`
	CreditAmount *decimal.Decimal `json:"credit_amount"`
}

type ExpenseResponse struct {
	ID                    uuid.UUID           `json:"id"`
	SiteID                uuid.UUID           `json:"site_id"`
	SiteName              string              `json:"site_name"`
	VendorID              uuid.UUID           `json:"vendor_id"`
	VendorName            string              `json:"vendor_name"`
	Description           string              `json:"description"`
	Amount                decimal.Decimal     `json:"amount"`
	ExpenseDate           string              `json:"expense_date"`
	Category              string              `json:"category"`
	ReceiptURL            string              `json:"receipt_url"`
	Notes                 string              `json:"notes"`
	IsCredit              bool                `json:"is_credit"`
	CreditAmount          decimal.NullDecimal `json:"credit_amount"`
	EffectiveCreditAmount decimal.Decimal     `json:"effective_credit_amount"`
}

type ExpenseListResponse struct {
	Items         []ExpenseResponse `json:"items"`
	TotalExpenses decimal.Decimal   `json:"total_expenses"`
	TotalCredit   decimal.Decimal   `json:"total_credit"`
}

func toResponse(e models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:                    e.ID,
		SiteID:                e.SiteID,
		SiteName:              report.SiteName(e.Site),
		VendorID:              e.VendorID,
		VendorName:            report.VendorName(e.Vendor),
		Description:           e.Description,
		Amount:                e.Amount,
		ExpenseDate:           e.ExpenseDate.Format(models.DateLayout),
		Category:              e.Category,
		ReceiptURL:            e.ReceiptURL,
		Notes:                 e.Notes,
		IsCredit:              e.IsCredit,
		CreditAmount:          e.CreditAmount,
		EffectiveCreditAmount: e.EffectiveCreditAmount(),
	}
}

// build validates the form and resolves its site and vendor. The
// credit amount is dropped for non-credit expenses.
func (r ExpenseRequest) build(c *fiber.Ctx, repos *repository.Repositories) (models.Expense, error) {
	siteID, err := httpx.RequireID(r.SiteID, "site_id")
	if err != nil {
		return models.Expense{}, err
	}
	vendorID, err := httpx.RequireID(r.VendorID, "vendor_id")
	if err != nil {
		return models.Expense{}, err
	}
	description := strings.TrimSpace(r.Description)
	if description == "" {
		return models.Expense{}, httpx.BadRequest("description is required")
	}
	amount, err := httpx.RequireAmount(r.Amount, "amount")
	if err != nil {
		return models.Expense{}, err
	}
	date, err := httpx.ParseDate(r.ExpenseDate, "expense_date", httpx.Today())
	if err != nil {
		return models.Expense{}, err
	}

	var credit decimal.NullDecimal
	if r.IsCredit {
		if credit, err = httpx.OptionalAmount(r.CreditAmount, "credit_amount"); err != nil {
			return models.Expense{}, err
		}
	}

	ctx := c.UserContext()
	site, err := repos.Sites.Get(ctx, siteID)
	if err != nil {
		return models.Expense{}, httpx.ReferenceFailed(err, "site")
	}
	vendor, err := repos.Vendors.Get(ctx, vendorID)
	if err != nil {
		return models.Expense{}, httpx.ReferenceFailed(err, "vendor")
	}

	return models.Expense{
		SiteID:       siteID,
		Site:         &site,
		VendorID:     vendorID,
		Vendor:       &vendor,
		Description:  description,
		Amount:       amount,
		ExpenseDate:  date,
		Category:     strings.TrimSpace(r.Category),
		ReceiptURL:   strings.TrimSpace(r.ReceiptURL),
		Notes:        r.Notes,
		IsCredit:     r.IsCredit,
		CreditAmount: credit,
	}, nil
}

func fields(e models.Expense) map[string]any {
	return map[string]any{
		"site_id":       e.SiteID,
		"vendor_id":     e.VendorID,
		"description":   e.Description,
		"amount":        e.Amount,
		"expense_date":  e.ExpenseDate,
		"category":      e.Category,
		"receipt_url":   e.ReceiptURL,
		"notes":         e.Notes,
		"is_credit":     e.IsCredit,
		"credit_amount": e.CreditAmount,
	}
}

// -------------------------
// Expense CRUD
// -------------------------

// GET /api/expenses?site_id=...&vendor_id=...
func ListExpensesHandler(repos *repository.Repositories) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			f   repository.Filter
			err error
		)
		if f.SiteID, err = httpx.QueryID(c, "site_id"); err != nil {
			return err
		}
		if f.VendorID, err = httpx.QueryID(c, "vendor_id"); err != nil {
			return err
		}

		expenses, err := repos.Expenses.List(c.UserContext(), f)
		if err != nil {
			return httpx.ReadFailed(err, "expenses")
		}

		items := make([]ExpenseResponse, 0, len(expenses))
		for _, e := range expenses {
			items = append(items, toResponse(e))
		}
		return c.JSON(ExpenseListResponse{
			Items:         items,
			TotalExpenses: report.SumAmounts(expenses),
			TotalCredit:   report.CreditExposure(expenses),
		})
	}
}

// GET /api/expenses/:id
func GetExpenseHandler(repos *repository.Repositories) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseID(c, "id")
		if err != nil {
			return err
		}

		e, err := repos.Expenses.Get(c.UserContext(), id)
		if err != nil {
			return httpx.LookupFailed(err, "expense")
		}
		return c.JSON(toResponse(e))
	}
}

// POST /api/expenses
func CreateExpenseHandler(repos *repository.Repositories, journal *audit.Journal) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return httpx.BadRequest("Invalid request body")
		}

		e, err := body.build(c, repos)
		if err != nil {
			return err
		}

		ctx := c.UserContext()
		if err := repos.Expenses.Create(ctx, &e); err != nil {
			return httpx.WriteFailed(err, "create", "expense")
		}

		res := toResponse(e)
		journal.Record(ctx, audit.LogOptions{
			EntityType:  "expense",
			EntityID:    e.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Expense created: %s - %s (%s)", e.Description, e.Amount.StringFixed(2), res.SiteName),
			After:       res,
		})

		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// PUT /api/expenses/:id
func UpdateExpenseHandler(repos *repository.Repositories, journal *audit.Journal) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseID(c, "id")
		if err != nil {
			return err
		}

		var body ExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return httpx.BadRequest("Invalid request body")
		}

		ctx := c.UserContext()
		before, err := repos.Expenses.Get(ctx, id)
		if err != nil {
			return httpx.LookupFailed(err, "expense")
		}

		e, err := body.build(c, repos)
		if err != nil {
			return err
		}
		if err := repos.Expenses.Update(ctx, id, fields(e)); err != nil {
			return httpx.WriteFailed(err, "update", "expense")
		}

		e.Base = before.Base
		res := toResponse(e)
		journal.Record(ctx, audit.LogOptions{
			EntityType:  "expense",
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Expense updated: %s - %s", e.Description, e.Amount.StringFixed(2)),
			Before:      toResponse(before),
			After:       res,
		})

		return c.JSON(res)
	}
}
