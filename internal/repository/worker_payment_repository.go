package repository

import (
	"context"

	"apgbuilders/internal/models"
	"apgbuilders/internal/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkerPaymentRepository struct {
	db *gorm.DB
}

func NewWorkerPaymentRepository(db *gorm.DB) *WorkerPaymentRepository {
	return &WorkerPaymentRepository{db: db}
}

// List returns payments with their site and worker, newest payment first.
func (r *WorkerPaymentRepository) List(ctx context.Context, f Filter) ([]models.WorkerPayment, error) {
	return store.List[models.WorkerPayment](ctx, r.db, store.Query{
		Eq:       f.eq(),
		OrderBy:  "payment_date",
		Desc:     true,
		Preloads: []string{"Site", "Worker"},
	})
}

func (r *WorkerPaymentRepository) ListAll(ctx context.Context) ([]models.WorkerPayment, error) {
	return store.List[models.WorkerPayment](ctx, r.db, store.Query{})
}

func (r *WorkerPaymentRepository) ListBySite(ctx context.Context, siteID uuid.UUID) ([]models.WorkerPayment, error) {
	return store.List[models.WorkerPayment](ctx, r.db, store.Query{Eq: map[string]any{"site_id": siteID}})
}

func (r *WorkerPaymentRepository) ListByWorker(ctx context.Context, workerID uuid.UUID) ([]models.WorkerPayment, error) {
	return store.List[models.WorkerPayment](ctx, r.db, store.Query{Eq: map[string]any{"worker_id": workerID}})
}

func (r *WorkerPaymentRepository) Get(ctx context.Context, id uuid.UUID) (models.WorkerPayment, error) {
	return store.Get[models.WorkerPayment](ctx, r.db, id, "Site", "Worker")
}

func (r *WorkerPaymentRepository) Create(ctx context.Context, p *models.WorkerPayment) error {
	return store.Insert(ctx, r.db, p)
}

func (r *WorkerPaymentRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return store.Update[models.WorkerPayment](ctx, r.db, id, fields)
}
