package site

import (
	"context"
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
	"golang.org/x/sync/errgroup"
)

type SiteRequest struct {
	Name        string           `json:"name"`
	Location    string           `json:"location"`
	Description string           `json:"description"`
	StartDate   string           `json:"start_date"` // "2025-01-31"
	EndDate     string           `json:"end_date"`
	Budget      *decimal.Decimal `json:"budget"`
	Status      string           `json:"status"`
}

type SiteResponse struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Location    string              `json:"location"`
	Description string              `json:"description"`
	StartDate   *string             `json:"start_date"`
	EndDate     *string             `json:"end_date"`
	Budget      decimal.NullDecimal `json:"budget"`
	Status      models.SiteStatus   `json:"status"`
	CreatedAt   string              `json:"created_at"`
}

type SiteOption struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type SiteDetailResponse struct {
	Site    SiteResponse       `json:"site"`
	Summary report.SiteSummary `json:"summary"`
}

func toResponse(s models.Site) SiteResponse {
	return SiteResponse{
		ID:          s.ID,
		Name:        s.Name,
		Location:    s.Location,
		Description: s.Description,
		StartDate:   httpx.FormatDate(s.StartDate),
		EndDate:     httpx.FormatDate(s.EndDate),
		Budget:      s.Budget,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// build validates the form and maps it onto a site. A blank status
// becomes active.
func (r SiteRequest) build() (models.Site, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return models.Site{}, httpx.BadRequest("name is required")
	}

	status := models.SiteStatus(strings.TrimSpace(r.Status))
	if status == "" {
		status = models.SiteStatusActive
	}
	if !status.Valid() {
		return models.Site{}, httpx.BadRequest("status must be one of active, completed, paused")
	}

	start, err := httpx.ParseOptionalDate(r.StartDate, "start_date")
	if err != nil {
		return models.Site{}, err
	}
	end, err := httpx.ParseOptionalDate(r.EndDate, "end_date")
	if err != nil {
		return models.Site{}, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return models.Site{}, httpx.BadRequest("end_date must not be before start_date")
	}

	budget, err := httpx.OptionalAmount(r.Budget, "budget")
	if err != nil {
		return models.Site{}, err
	}

	return models.Site{
		Name:        name,
		Location:    strings.TrimSpace(r.Location),
		Description: r.Description,
		StartDate:   start,
		EndDate:     end,
		Budget:      budget,
		Status:      status,
	}, nil
}

func fields(s models.Site) map[string]any {
	return map[string]any{
		"name":        s.Name,
		"location":    s.Location,
		"description": s.Description,
		"start_date":  s.StartDate,
		"end_date":    s.EndDate,
		"budget":      s.Budget,
		"status":      s.Status,
	}
}

// GET /api/sites
func ListSitesHandler(repos *repository.Repositories) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sites, err := repos.Sites.List(c.UserContext())
		if err != nil {
			return httpx.ReadFailed(err, "sites")
		}

		res := make([]SiteResponse, 0, len(sites))
		for _, s := range sites {
			res = append(res, toResponse(s))
		}
		return c.JSON(res)
	}
}

// GET /api/sites/options
func SiteOptionsHandler(repos *repository.Repositories) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sites, err := repos.Sites.Options(c.UserContext())
		if err != nil {
			return httpx.ReadFailed(err, "sites")
		}

		res := make([]SiteOption, 0, len(sites))
		for _, s := range sites {
			res = append(res, SiteOption{ID: s.ID, Name: s.Name})
		}
		return c.JSON(res)
	}
}

// GET /api/sites/:id
func GetSiteHandler(repos *repository.Repositories) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseID(c, "id")
		if err != nil {
			return err
		}

		ctx := c.UserContext()
		s, err := repos.Sites.Get(ctx, id)
		if err != nil {
			return httpx.LookupFailed(err, "site")
		}

		summary, err := siteSummary(ctx, repos, s)
		if err != nil {
			return httpx.ReadFailed(err, "site details")
		}

		return c.JSON(SiteDetailResponse{Site: toResponse(s), Summary: summary})
	}
}

func siteSummary(ctx context.Context, repos *repository.Repositories, s models.Site) (report.SiteSummary, error) {
	var (
		expenses []models.Expense
		payments []models.WorkerPayment
		income   []models.SiteIncome
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		expenses, err = repos.Expenses.ListBySite(gctx, s.ID)
		return err
	})
	g.Go(func() (err error) {
		payments, err = repos.WorkerPayments.ListBySite(gctx, s.ID)
		return err
	})
	g.Go(func() (err error) {
		income, err = repos.SiteIncome.ListBySite(gctx, s.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return report.SiteSummary{}, err
	}

	return report.PerSiteSummary(s, expenses, payments, income), nil
}

// POST /api/sites
func CreateSiteHandler(repos *repository.Repositories, journal *audit.Journal) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SiteRequest
		if err := c.BodyParser(&body); err != nil {
			return httpx.BadRequest("Invalid request body")
		}

		s, err := body.build()
		if err != nil {
			return err
		}

		ctx := c.UserContext()
		if err := repos.Sites.Create(ctx, &s); err != nil {
			return httpx.WriteFailed(err, "create", "site")
		}

		res := toResponse(s)
		journal.Record(ctx, audit.LogOptions{
			EntityType:  "site",
			EntityID:    s.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Site created: %s", s.Name),
			After:       res,
		})

		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// PUT /api/sites/:id
func UpdateSiteHandler(repos *repository.Repositories, journal *audit.Journal) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseID(c, "id")
		if err != nil {
			return err
		}

		var body SiteRequest
		if err := c.BodyParser(&body); err != nil {
			return httpx.BadRequest("Invalid request body")
		}
		s, err := body.build()
		if err != nil {
			return err
		}

		ctx := c.UserContext()
		before, err := repos.Sites.Get(ctx, id)
		if err != nil {
			return httpx.LookupFailed(err, "site")
		}

		if err := repos.Sites.Update(ctx, id, fields(s)); err != nil {
			return httpx.WriteFailed(err, "update", "site")
		}

		s.Base = before.Base
		res := toResponse(s)
		journal.Record(ctx, audit.LogOptions{
			EntityType:  "site",
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Site updated: %s", s.Name),
			Before:      toResponse(before),
			After:       res,
		})

		return c.JSON(res)
	}
}
