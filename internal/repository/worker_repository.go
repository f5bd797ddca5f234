package repository

import (
	"context"

	"apgbuilders/internal/models"
	"apgbuilders/internal/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkerRepository struct {
	db *gorm.DB
}

func NewWorkerRepository(db *gorm.DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

func (r *WorkerRepository) List(ctx context.Context) ([]models.Worker, error) {
	return store.List[models.Worker](ctx, r.db, store.Query{OrderBy: "created_at", Desc: true})
}

// Options includes the daily rate so the payment form can price days.
func (r *WorkerRepository) Options(ctx context.Context) ([]models.Worker, error) {
	return store.List[models.Worker](ctx, r.db, store.Query{
		Columns: []string{"id", "name", "daily_rate"},
		OrderBy: "name",
	})
}

func (r *WorkerRepository) Get(ctx context.Context, id uuid.UUID) (models.Worker, error) {
	return store.Get[models.Worker](ctx, r.db, id)
}

func (r *WorkerRepository) Count(ctx context.Context) (int64, error) {
	return store.Count[models.Worker](ctx, r.db, nil)
}

func (r *WorkerRepository) Create(ctx context.Context, w *models.Worker) error {
	return store.Insert(ctx, r.db, w)
}

func (r *WorkerRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return store.Update[models.Worker](ctx, r.db, id, fields)
}
