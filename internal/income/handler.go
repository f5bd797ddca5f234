package income

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

type IncomeRequest struct {
	SiteID      string           `json:"site_id"`
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	IncomeDate  string           `json:"income_date"`
	Source      string           `json:"source"`
	Notes       string           `json:"notes"`
}

type IncomeResponse struct {
	ID          uuid.UUID       `json:"id"`
	SiteID      uuid.UUID       `json:"site_id"`
	SiteName    string          `json:"site_name"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	IncomeDate  string          `json:"income_date"`
	Source      string          `json:"source"`
	Notes       string          `json:"notes"`
}

type IncomeListResponse struct {
	Items       []IncomeResponse `json:"items"`
	TotalIncome decimal.Decimal  `json:"total_income"`
}

func toResponse(in models.SiteIncome) IncomeResponse {
	return IncomeResponse{
		ID:          in.ID,
		SiteID:      in.SiteID,
		SiteName:    report.SiteName(in.Site),
		Description: in.Description,
		Amount:      in.Amount,
		IncomeDate:  in.IncomeDate.Format(models.DateLayout),
		Source:      in.Source,
		Notes:       in.Notes,
	}
}

func (r IncomeRequest) build(c *fiber.Ctx, repos *repository.Repositories) (models.SiteIncome, error) {
	siteID, err := httpx.RequireID(r.SiteID, "site_id")
	if err != nil {
		return models.SiteIncome{}, err
	}
	description := strings.TrimSpace(r.Description)
	if description == "" {
		return models.SiteIncome{}, httpx.BadRequest("description is required")
	}
	amount, err := httpx.RequireAmount(r.Amount, "amount")
	if err != nil {
		return models.SiteIncome{}, err
	}
	date, err := httpx.ParseDate(r.IncomeDate, "income_date", httpx.Today())
	if err != nil {
		return models.SiteIncome{}, err
	}

	site, err := repos.Sites.Get(c.UserContext(), siteID)
	if err != nil {
		return models.SiteIncome{}, httpx.ReferenceFailed(err, "site")
	}

	return models.SiteIncome{
		SiteID:      siteID,
		Site:        &site,
		Description: description,
		Amount:      amount,
		IncomeDate:  date,
		Source:      strings.TrimSpace(r.Source),
		Notes:       r.Notes,
	}, nil
}

func fields(in models.SiteIncome) map[string]any {
	return map[string]any{
		"site_id":     in.SiteID,
		"description": in.Description,
		"amount":      in.Amount,
		"income_date": in.IncomeDate,
		"source":      in.Source,
		"notes":       in.Notes,
	}
}

// GET /api/income?site_id=...
func ListIncomeHandler(repos *repository.Repositories) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var f repository.Filter
		var err error
		if f.SiteID, err = httpx.QueryID(c, "site_id"); err != nil {
			return err
		}

		rows, err := repos.SiteIncome.List(c.UserContext(), f)
		if err != nil {
			return httpx.ReadFailed(err, "income records")
		}

		items := make([]IncomeResponse, 0, len(rows))
		for _, in := range rows {
			items = append(items, toResponse(in))
		}
		return c.JSON(IncomeListResponse{
			Items:       items,
			TotalIncome: report.SumAmounts(rows),
		})
	}
}

// GET /api/income/:id
func GetIncomeHandler(repos *repository.Repositories) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseID(c, "id")
		if err != nil {
			return err
		}

		in, err := repos.SiteIncome.Get(c.UserContext(), id)
		if err != nil {
			return httpx.LookupFailed(err, "income record")
		}
		return c.JSON(toResponse(in))
	}
}

// POST /api/income
func CreateIncomeHandler(repos *repository.Repositories, journal *audit.Journal) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body IncomeRequest
		if err := c.BodyParser(&body); err != nil {
			return httpx.BadRequest("Invalid request body")
		}

		in, err := body.build(c, repos)
		if err != nil {
			return err
		}

		ctx := c.UserContext()
		if err := repos.SiteIncome.Create(ctx, &in); err != nil {
			return httpx.WriteFailed(err, "create", "income record")
		}

		res := toResponse(in)
		journal.Record(ctx, audit.LogOptions{
			EntityType:  "site_income",
			EntityID:    in.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Income recorded: %s - %s (%s)", in.Description, in.Amount.StringFixed(2), res.SiteName),
			After:       res,
		})

		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// PUT /api/income/:id
func UpdateIncomeHandler(repos *repository.Repositories, journal *audit.Journal) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseID(c, "id")
		if err != nil {
			return err
		}

		var body IncomeRequest
		if err := c.BodyParser(&body); err != nil {
			return httpx.BadRequest("Invalid request body")
		}

		ctx := c.UserContext()
		before, err := repos.SiteIncome.Get(ctx, id)
		if err != nil {
			return httpx.LookupFailed(err, "income record")
		}

		in, err := body.build(c, repos)
		if err != nil {
			return err
		}
		if err := repos.SiteIncome.Update(ctx, id, fields(in)); err != nil {
			return httpx.WriteFailed(err, "update", "income record")
		}

		in.Base = before.Base
		res := toResponse(in)
		journal.Record(ctx, audit.LogOptions{
			EntityType:  "site_income",
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Income updated: %s - %s", in.Description, in.Amount.StringFixed(2)),
			Before:      toResponse(before),
			After:       res,
		})

		return c.JSON(res)
	}
}

// DELETE /api/income/:id
func DeleteIncomeHandler(repos *repository.Repositories, journal *audit.Journal) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseID(c, "id")
		if err != nil {
			return err
		}

		ctx := c.UserContext()
		before, err := repos.SiteIncome.Get(ctx, id)
		if err != nil {
			return httpx.LookupFailed(err, "income record")
		}

		if err := repos.SiteIncome.Delete(ctx, id); err != nil {
			return httpx.WriteFailed(err, "delete", "income record")
		}

		journal.Record(ctx, audit.LogOptions{
			EntityType:  "site_income",
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Income deleted: %s - %s", before.Description, before.Amount.StringFixed(2)),
			Before:      toResponse(before),
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
