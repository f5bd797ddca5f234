package repository

import (
	"context"

	"apgbuilders/internal/models"
	"apgbuilders/internal/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Filter narrows a list to rows referencing the given ids. Nil fields
// are ignored.
type Filter struct {
	SiteID   *uuid.UUID
	VendorID *uuid.UUID
	WorkerID *uuid.UUID
}

func (f Filter) eq() map[string]any {
	eq := map[string]any{}
	if f.SiteID != nil {
		eq["site_id"] = *f.SiteID
	}
	if f.VendorID != nil {
		eq["vendor_id"] = *f.VendorID
	}
	if f.WorkerID != nil {
		eq["worker_id"] = *f.WorkerID
	}
	return eq
}

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// List returns expenses with their site and vendor, newest expense first.
func (r *ExpenseRepository) List(ctx context.Context, f Filter) ([]models.Expense, error) {
	return store.List[models.Expense](ctx, r.db, store.Query{
		Eq:       f.eq(),
		OrderBy:  "expense_date",
		Desc:     true,
		Preloads: []string{"Site", "Vendor"},
	})
}

// ListAll returns every expense with site and vendor in store order.
func (r *ExpenseRepository) ListAll(ctx context.Context) ([]models.Expense, error) {
	return store.List[models.Expense](ctx, r.db, store.Query{Preloads: []string{"Site", "Vendor"}})
}

func (r *ExpenseRepository) ListBySite(ctx context.Context, siteID uuid.UUID) ([]models.Expense, error) {
	return store.List[models.Expense](ctx, r.db, store.Query{Eq: map[string]any{"site_id": siteID}})
}

func (r *ExpenseRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Expense, error) {
	return store.List[models.Expense](ctx, r.db, store.Query{Eq: map[string]any{"vendor_id": vendorID}})
}

func (r *ExpenseRepository) Get(ctx context.Context, id uuid.UUID) (models.Expense, error) {
	return store.Get[models.Expense](ctx, r.db, id, "Site", "Vendor")
}

func (r *ExpenseRepository) Create(ctx context.Context, e *models.Expense) error {
	return store.Insert(ctx, r.db, e)
}

func (r *ExpenseRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return store.Update[models.Expense](ctx, r.db, id, fields)
}
