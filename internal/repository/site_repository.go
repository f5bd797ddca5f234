package repository

import (
	"context"

	"apgbuilders/internal/models"
	"apgbuilders/internal/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SiteRepository struct {
	db *gorm.DB
}

func NewSiteRepository(db *gorm.DB) *SiteRepository {
	return &SiteRepository{db: db}
}

// List returns all sites, newest first.
func (r *SiteRepository) List(ctx context.Context) ([]models.Site, error) {
	return store.List[models.Site](ctx, r.db, store.Query{OrderBy: "created_at", Desc: true})
}

// Options returns id and name of every site, by name, for form pickers.
func (r *SiteRepository) Options(ctx context.Context) ([]models.Site, error) {
	return store.List[models.Site](ctx, r.db, store.Query{
		Columns: []string{"id", "name"},
		OrderBy: "name",
	})
}

func (r *SiteRepository) Get(ctx context.Context, id uuid.UUID) (models.Site, error) {
	return store.Get[models.Site](ctx, r.db, id)
}

// Count counts sites, optionally only those with the given status.
func (r *SiteRepository) Count(ctx context.Context, status models.SiteStatus) (int64, error) {
	var eq map[string]any
	if status != "" {
		eq = map[string]any{"status": status}
	}
	return store.Count[models.Site](ctx, r.db, eq)
}

func (r *SiteRepository) Create(ctx context.Context, s *models.Site) error {
	return store.Insert(ctx, r.db, s)
}

func (r *SiteRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return store.Update[models.Site](ctx, r.db, id, fields)
}
