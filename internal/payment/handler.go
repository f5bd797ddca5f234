package payment

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

type PaymentRequest struct {
	SiteID      string           `json:"site_id"`
	WorkerID    string           `json:"worker_id"`
	Amount      *decimal.Decimal `json:"amount"` // daily_rate x days_worked when omitted
	PaymentDate string           `json:"payment_date"`
	DaysWorked  *int             `json:"days_worked"`
	Description string           `json:"description"`
	Notes       string           `json:"notes"`
}

type PaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	SiteID      uuid.UUID       `json:"site_id"`
	SiteName    string          `json:"site_name"`
	WorkerID    uuid.UUID       `json:"worker_id"`
	WorkerName  string          `json:"worker_name"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
	DaysWorked  *int            `json:"days_worked"`
	Description string          `json:"description"`
	Notes       string          `json:"notes"`
}

type PaymentListResponse struct {
	Items           []PaymentResponse `json:"items"`
	TotalPayments   decimal.Decimal   `json:"total_payments"`
	TotalDaysWorked int               `json:"total_days_worked"`
}

func toResponse(p models.WorkerPayment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		SiteID:      p.SiteID,
		SiteName:    report.SiteName(p.Site),
		WorkerID:    p.WorkerID,
		WorkerName:  report.WorkerName(p.Worker),
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate.Format(models.DateLayout),
		DaysWorked:  p.DaysWorked,
		Description: p.Description,
		Notes:       p.Notes,
	}
}

func (r PaymentRequest) build(c *fiber.Ctx, repos *repository.Repositories) (models.WorkerPayment, error) {
	siteID, err := httpx.RequireID(r.SiteID, "site_id")
	if err != nil {
		return models.WorkerPayment{}, err
	}
	workerID, err := httpx.RequireID(r.WorkerID, "worker_id")
	if err != nil {
		return models.WorkerPayment{}, err
	}
	if r.DaysWorked != nil && *r.DaysWorked < 0 {
		return models.WorkerPayment{}, httpx.BadRequest("days_worked must not be negative")
	}
	date, err := httpx.ParseDate(r.PaymentDate, "payment_date", httpx.Today())
	if err != nil {
		return models.WorkerPayment{}, err
	}

	ctx := c.UserContext()
	site, err := repos.Sites.Get(ctx, siteID)
	if err != nil {
		return models.WorkerPayment{}, httpx.ReferenceFailed(err, "site")
	}
	worker, err := repos.Workers.Get(ctx, workerID)
	if err != nil {
		return models.WorkerPayment{}, httpx.ReferenceFailed(err, "worker")
	}

	p := models.WorkerPayment{
		SiteID:      siteID,
		Site:        &site,
		WorkerID:    workerID,
		Worker:      &worker,
		PaymentDate: date,
		DaysWorked:  r.DaysWorked,
		Description: strings.TrimSpace(r.Description),
		Notes:       r.Notes,
	}

	if r.Amount == nil {
		amount, ok := report.PaymentAmount(worker.DailyRate, p.Days())
		if !ok {
			return models.WorkerPayment{}, httpx.BadRequest("amount is required when the worker has no daily rate or days_worked is not set")
		}
		p.Amount = amount
		return p, nil
	}

	if p.Amount, err = httpx.RequireAmount(r.Amount, "amount"); err != nil {
		return models.WorkerPayment{}, err
	}
	return p, nil
}

func fields(p models.WorkerPayment) map[string]any {
	return map[string]any{
		"site_id":      p.SiteID,
		"worker_id":    p.WorkerID,
		"amount":       p.Amount,
		"payment_date": p.PaymentDate,
		"days_worked":  p.DaysWorked,
		"description":  p.Description,
		"notes":        p.Notes,
	}
}

// GET /api/worker-payments?site_id=...&worker_id=...
func ListPaymentsHandler(repos *repository.Repositories) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			f   repository.Filter
			err error
		)
		if f.SiteID, err = httpx.QueryID(c, "site_id"); err != nil {
			return err
		}
		if f.WorkerID, err = httpx.QueryID(c, "worker_id"); err != nil {
			return err
		}

		payments, err := repos.WorkerPayments.List(c.UserContext(), f)
		if err != nil {
			return httpx.ReadFailed(err, "worker payments")
		}

		res := PaymentListResponse{
			Items:         make([]PaymentResponse, 0, len(payments)),
			TotalPayments: report.SumAmounts(payments),
		}
		for _, p := range payments {
			res.Items = append(res.Items, toResponse(p))
			res.TotalDaysWorked += p.Days()
		}
		return c.JSON(res)
	}
}

// GET /api/worker-payments/:id
func GetPaymentHandler(repos *repository.Repositories) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseID(c, "id")
		if err != nil {
			return err
		}

		p, err := repos.WorkerPayments.Get(c.UserContext(), id)
		if err != nil {
			return httpx.LookupFailed(err, "worker payment")
		}
		return c.JSON(toResponse(p))
	}
}

// POST /api/worker-payments
func CreatePaymentHandler(repos *repository.Repositories, journal *audit.Journal) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return httpx.BadRequest("Invalid request body")
		}

		p, err := body.build(c, repos)
		if err != nil {
			return err
		}

		ctx := c.UserContext()
		if err := repos.WorkerPayments.Create(ctx, &p); err != nil {
			return httpx.WriteFailed(err, "create", "worker payment")
		}

		res := toResponse(p)
		journal.Record(ctx, audit.LogOptions{
			EntityType:  "worker_payment",
			EntityID:    p.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Worker payment recorded: %s - %s", res.WorkerName, p.Amount.StringFixed(2)),
			After:       res,
		})

		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// PUT /api/worker-payments/:id
func UpdatePaymentHandler(repos *repository.Repositories, journal *audit.Journal) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseID(c, "id")
		if err != nil {
			return err
		}

		var body PaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return httpx.BadRequest("Invalid request body")
		}

		ctx := c.UserContext()
		before, err := repos.WorkerPayments.Get(ctx, id)
		if err != nil {
			return httpx.LookupFailed(err, "worker payment")
		}

		p, err := body.build(c, repos)
		if err != nil {
			return err
		}
		if err := repos.WorkerPayments.Update(ctx, id, fields(p)); err != nil {
			return httpx.WriteFailed(err, "update", "worker payment")
		}

		p.Base = before.Base
		res := toResponse(p)
		journal.Record(ctx, audit.LogOptions{
			EntityType:  "worker_payment",
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Worker payment updated: %s - %s", res.WorkerName, p.Amount.StringFixed(2)),
			Before:      toResponse(before),
			After:       res,
		})

		return c.JSON(res)
	}
}
