package repository

import (
	"context"

	"apgbuilders/internal/models"
	"apgbuilders/internal/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SiteIncomeRepository struct {
	db *gorm.DB
}

func NewSiteIncomeRepository(db *gorm.DB) *SiteIncomeRepository {
	return &SiteIncomeRepository{db: db}
}

// List returns income rows with their site, newest income first.
func (r *SiteIncomeRepository) List(ctx context.Context, f Filter) ([]models.SiteIncome, error) {
	return store.List[models.SiteIncome](ctx, r.db, store.Query{
		Eq:       f.eq(),
		OrderBy:  "income_date",
		Desc:     true,
		Preloads: []string{"Site"},
	})
}

func (r *SiteIncomeRepository) ListAll(ctx context.Context) ([]models.SiteIncome, error) {
	return store.List[models.SiteIncome](ctx, r.db, store.Query{})
}

func (r *SiteIncomeRepository) ListBySite(ctx context.Context, siteID uuid.UUID) ([]models.SiteIncome, error) {
	return store.List[models.SiteIncome](ctx, r.db, store.Query{Eq: map[string]any{"site_id": siteID}})
}

func (r *SiteIncomeRepository) Get(ctx context.Context, id uuid.UUID) (models.SiteIncome, error) {
	return store.Get[models.SiteIncome](ctx, r.db, id, "Site")
}

func (r *SiteIncomeRepository) Create(ctx context.Context, in *models.SiteIncome) error {
	return store.Insert(ctx, r.db, in)
}

func (r *SiteIncomeRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return store.Update[models.SiteIncome](ctx, r.db, id, fields)
}

// Delete removes the row for good; income is the only entity with a
// hard delete.
func (r *SiteIncomeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return store.Delete[models.SiteIncome](ctx, r.db, id)
}
