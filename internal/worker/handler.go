package worker

import (
	"fmt"
	"strings"
	"time"

	"apgbuilders/internal/audit"
	"apgbuilders/internal/httpx"
	"apgbuilders/internal/models"
	"apgbuilders/internal/report"
	"apgbuilders/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WorkerRequest struct {
	Name      string           `json:"name"`
	Phone     string           `json:"phone"`
	Email     string           `json:"email"`
	Address   string           `json:"address"`
	SkillType string           `json:"skill_type"`
	DailyRate *decimal.Decimal `json:"daily_rate"`
}

type WorkerResponse struct {
	ID        uuid.UUID           `json:"id"`
	Name      string              `json:"name"`
	Phone     string              `json:"phone"`
	Email     string              `json:"email"`
	Address   string              `json:"address"`
	SkillType string              `json:"skill_type"`
	DailyRate decimal.NullDecimal `json:"daily_rate"`
	CreatedAt string              `json:"created_at"`
}

// WorkerOption carries the daily rate so the payment form can prefill
// the amount.
type WorkerOption struct {
	ID        uuid.UUID           `json:"id"`
	Name      string              `json:"name"`
	DailyRate decimal.NullDecimal `json:"daily_rate"`
}

type WorkerDetailResponse struct {
	Worker  WorkerResponse       `json:"worker"`
	Summary report.WorkerSummary `json:"summary"`
}

func toResponse(w models.Worker) WorkerResponse {
	return WorkerResponse{
		ID:        w.ID,
		Name:      w.Name,
		Phone:     w.Phone,
		Email:     w.Email,
		Address:   w.Address,
		SkillType: w.SkillType,
		DailyRate: w.DailyRate,
		CreatedAt: w.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (r WorkerRequest) build() (models.Worker, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return models.Worker{}, httpx.BadRequest("name is required")
	}
	rate, err := httpx.OptionalAmount(r.DailyRate, "daily_rate")
	if err != nil {
		return models.Worker{}, err
	}

	return models.Worker{
		Name:      name,
		Phone:     strings.TrimSpace(r.Phone),
		Email:     strings.TrimSpace(r.Email),
		Address:   r.Address,
		SkillType: strings.TrimSpace(r.SkillType),
		DailyRate: rate,
	}, nil
}

func fields(w models.Worker) map[string]any {
	return map[string]any{
		"name":       w.Name,
		"phone":      w.Phone,
		"email":      w.Email,
		"address":    w.Address,
		"skill_type": w.SkillType,
		"daily_rate": w.DailyRate,
	}
}

// GET /api/workers
func ListWorkersHandler(repos *repository.Repositories) fiber.Handler {
	return func(c *fiber.Ctx) error {
		workers, err := repos.Workers.List(c.UserContext())
		if err != nil {
			return httpx.ReadFailed(err, "workers")
		}

		res := make([]WorkerResponse, 0, len(workers))
		for _, w := range workers {
			res = append(res, toResponse(w))
		}
		return c.JSON(res)
	}
}

// GET /api/workers/options
func WorkerOptionsHandler(repos *repository.Repositories) fiber.Handler {
	return func(c *fiber.Ctx) error {
		workers, err := repos.Workers.Options(c.UserContext())
		if err != nil {
			return httpx.ReadFailed(err, "workers")
		}

		res := make([]WorkerOption, 0, len(workers))
		for _, w := range workers {
			res = append(res, WorkerOption{ID: w.ID, Name: w.Name, DailyRate: w.DailyRate})
		}
		return c.JSON(res)
	}
}

// GET /api/workers/:id
func GetWorkerHandler(repos *repository.Repositories) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseID(c, "id")
		if err != nil {
			return err
		}

		ctx := c.UserContext()
		w, err := repos.Workers.Get(ctx, id)
		if err != nil {
			return httpx.LookupFailed(err, "worker")
		}

		payments, err := repos.WorkerPayments.ListByWorker(ctx, id)
		if err != nil {
			return httpx.ReadFailed(err, "worker details")
		}

		return c.JSON(WorkerDetailResponse{
			Worker:  toResponse(w),
			Summary: report.PerWorkerSummary(w, payments),
		})
	}
}

// POST /api/workers
func CreateWorkerHandler(repos *repository.Repositories, journal *audit.Journal) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body WorkerRequest
		if err := c.BodyParser(&body); err != nil {
			return httpx.BadRequest("Invalid request body")
		}

		w, err := body.build()
		if err != nil {
			return err
		}

		ctx := c.UserContext()
		if err := repos.Workers.Create(ctx, &w); err != nil {
			return httpx.WriteFailed(err, "create", "worker")
		}

		res := toResponse(w)
		journal.Record(ctx, audit.LogOptions{
			EntityType:  "worker",
			EntityID:    w.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Worker created: %s", w.Name),
			After:       res,
		})

		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// PUT /api/workers/:id
func UpdateWorkerHandler(repos *repository.Repositories, journal *audit.Journal) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseID(c, "id")
		if err != nil {
			return err
		}

		var body WorkerRequest
		if err := c.BodyParser(&body); err != nil {
			return httpx.BadRequest("Invalid request body")
		}
		w, err := body.build()
		if err != nil {
			return err
		}

		ctx := c.UserContext()
		before, err := repos.Workers.Get(ctx, id)
		if err != nil {
			return httpx.LookupFailed(err, "worker")
		}

		if err := repos.Workers.Update(ctx, id, fields(w)); err != nil {
			return httpx.WriteFailed(err, "update", "worker")
		}

		w.Base = before.Base
		res := toResponse(w)
		journal.Record(ctx, audit.LogOptions{
			EntityType:  "worker",
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Worker updated: %s", w.Name),
			Before:      toResponse(before),
			After:       res,
		})

		return c.JSON(res)
	}
}
