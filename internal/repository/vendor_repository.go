package repository

import (
	"context"

	"apgbuilders/internal/models"
	"apgbuilders/internal/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

func (r *VendorRepository) List(ctx context.Context) ([]models.Vendor, error) {
	return store.List[models.Vendor](ctx, r.db, store.Query{OrderBy: "created_at", Desc: true})
}

func (r *VendorRepository) Options(ctx context.Context) ([]models.Vendor, error) {
	return store.List[models.Vendor](ctx, r.db, store.Query{
		Columns: []string{"id", "name"},
		OrderBy: "name",
	})
}

func (r *VendorRepository) Get(ctx context.Context, id uuid.UUID) (models.Vendor, error) {
	return store.Get[models.Vendor](ctx, r.db, id)
}

func (r *VendorRepository) Count(ctx context.Context) (int64, error) {
	return store.Count[models.Vendor](ctx, r.db, nil)
}

func (r *VendorRepository) Create(ctx context.Context, v *models.Vendor) error {
	return store.Insert(ctx, r.db, v)
}

func (r *VendorRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return store.Update[models.Vendor](ctx, r.db, id, fields)
}
