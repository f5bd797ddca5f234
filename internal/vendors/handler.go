package vendors

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

type VendorRequest struct {
	Name          string           `json:"name"`
	ContactPerson string           `json:"contact_person"`
	Phone         string           `json:"phone"`
	Email         string           `json:"email"`
	Address       string           `json:"address"`
	VendorType    string           `json:"vendor_type"`
	CreditBalance *decimal.Decimal `json:"credit_balance"`
}

type VendorResponse struct {
	ID            uuid.UUID           `json:"id"`
	Name          string              `json:"name"`
	ContactPerson string              `json:"contact_person"`
	Phone         string              `json:"phone"`
	Email         string              `json:"email"`
	Address       string              `json:"address"`
	VendorType    string              `json:"vendor_type"`
	CreditBalance decimal.NullDecimal `json:"credit_balance"`
	CreatedAt     string              `json:"created_at"`
}

type VendorOption struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type VendorDetailResponse struct {
	Vendor  VendorResponse       `json:"vendor"`
	Summary report.VendorSummary `json:"summary"`
}

func toResponse(v models.Vendor) VendorResponse {
	return VendorResponse{
		ID:            v.ID,
		Name:          v.Name,
		ContactPerson: v.ContactPerson,
		Phone:         v.Phone,
		Email:         v.Email,
		Address:       v.Address,
		VendorType:    v.VendorType,
		CreditBalance: v.CreditBalance,
		CreatedAt:     v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (r VendorRequest) build() (models.Vendor, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return models.Vendor{}, httpx.BadRequest("name is required")
	}
	balance, err := httpx.OptionalAmount(r.CreditBalance, "credit_balance")
	if err != nil {
		return models.Vendor{}, err
	}

	return models.Vendor{
		Name:          name,
		ContactPerson: strings.TrimSpace(r.ContactPerson),
		Phone:         strings.TrimSpace(r.Phone),
		Email:         strings.TrimSpace(r.Email),
		Address:       r.Address,
		VendorType:    strings.TrimSpace(r.VendorType),
		CreditBalance: balance,
	}, nil
}

func fields(v models.Vendor) map[string]any {
	return map[string]any{
		"name":           v.Name,
		"contact_person": v.ContactPerson,
		"phone":          v.Phone,
		"email":          v.Email,
		"address":        v.Address,
		"vendor_type":    v.VendorType,
		"credit_balance": v.CreditBalance,
	}
}

// GET /api/vendors
func ListVendorsHandler(repos *repository.Repositories) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vendors, err := repos.Vendors.List(c.UserContext())
		if err != nil {
			return httpx.ReadFailed(err, "vendors")
		}

		res := make([]VendorResponse, 0, len(vendors))
		for _, v := range vendors {
			res = append(res, toResponse(v))
		}
		return c.JSON(res)
	}
}

// GET /api/vendors/options
func VendorOptionsHandler(repos *repository.Repositories) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vendors, err := repos.Vendors.Options(c.UserContext())
		if err != nil {
			return httpx.ReadFailed(err, "vendors")
		}

		res := make([]VendorOption, 0, len(vendors))
		for _, v := range vendors {
			res = append(res, VendorOption{ID: v.ID, Name: v.Name})
		}
		return c.JSON(res)
	}
}

// GET /api/vendors/:id
func GetVendorHandler(repos *repository.Repositories) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseID(c, "id")
		if err != nil {
			return err
		}

		ctx := c.UserContext()
		v, err := repos.Vendors.Get(ctx, id)
		if err != nil {
			return httpx.LookupFailed(err, "vendor")
		}

		expenses, err := repos.Expenses.ListByVendor(ctx, id)
		if err != nil {
			return httpx.ReadFailed(err, "vendor details")
		}

		return c.JSON(VendorDetailResponse{
			Vendor:  toResponse(v),
			Summary: report.PerVendorSummary(v, expenses),
		})
	}
}

// POST /api/vendors
func CreateVendorHandler(repos *repository.Repositories, journal *audit.Journal) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body VendorRequest
		if err := c.BodyParser(&body); err != nil {
			return httpx.BadRequest("Invalid request body")
		}

		v, err := body.build()
		if err != nil {
			return err
		}

		ctx := c.UserContext()
		if err := repos.Vendors.Create(ctx, &v); err != nil {
			return httpx.WriteFailed(err, "create", "vendor")
		}

		res := toResponse(v)
		journal.Record(ctx, audit.LogOptions{
			EntityType:  "vendor",
			EntityID:    v.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Vendor created: %s", v.Name),
			After:       res,
		})

		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// PUT /api/vendors/:id
func UpdateVendorHandler(repos *repository.Repositories, journal *audit.Journal) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseID(c, "id")
		if err != nil {
			return err
		}

		var body VendorRequest
		if err := c.BodyParser(&body); err != nil {
			return httpx.BadRequest("Invalid request body")
		}
		v, err := body.build()
		if err != nil {
			return err
		}

		ctx := c.UserContext()
		before, err := repos.Vendors.Get(ctx, id)
		if err != nil {
			return httpx.LookupFailed(err, "vendor")
		}

		if err := repos.Vendors.Update(ctx, id, fields(v)); err != nil {
			return httpx.WriteFailed(err, "update", "vendor")
		}

		v.Base = before.Base
		res := toResponse(v)
		journal.Record(ctx, audit.LogOptions{
			EntityType:  "vendor",
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Vendor updated: %s", v.Name),
			Before:      toResponse(before),
			After:       res,
		})

		return c.JSON(res)
	}
}
