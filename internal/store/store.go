// Package store is the row-store boundary: a handful of generic
// select/insert/update/delete/count helpers over gorm. Repositories are
// expected to express every query through these.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when an id does not resolve to a row.
var ErrNotFound = errors.New("record not found")

// Query describes one select: projected columns, exact-match filters, a
// single order column, an optional limit and the relations to embed.
type Query struct {
	Columns  []string
	Eq       map[string]any
	OrderBy  string
	Desc     bool
	Limit    int
	Preloads []string
}

func (q Query) apply(db *gorm.DB) *gorm.DB {
	if len(q.Columns) > 0 {
		db = db.Select(q.Columns)
	}
	for _, rel := range q.Preloads {
		db = db.Preload(rel)
	}
	for col, v := range q.Eq {
		db = db.Where(fmt.Sprintf("%s = ?", col), v)
	}
	if q.OrderBy != "" {
		dir := "asc"
		if q.Desc {
			dir = "desc"
		}
		db = db.Order(fmt.Sprintf("%s %s", q.OrderBy, dir))
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	return db
}

func List[T any](ctx context.Context, db *gorm.DB, q Query) ([]T, error) {
	rows := make([]T, 0)
	if err := q.apply(db.WithContext(ctx).Model(new(T))).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select %T: %w", *new(T), err)
	}
	return rows, nil
}

func Get[T any](ctx context.Context, db *gorm.DB, id uuid.UUID, preloads ...string) (T, error) {
	var row T
	tx := db.WithContext(ctx)
	for _, rel := range preloads {
		tx = tx.Preload(rel)
	}
	if err := tx.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return row, fmt.Errorf("%T %s: %w", row, id, ErrNotFound)
		}
		return row, fmt.Errorf("get %T %s: %w", row, id, err)
	}
	return row, nil
}

func Count[T any](ctx context.Context, db *gorm.DB, eq map[string]any) (int64, error) {
	var n int64
	tx := Query{Eq: eq}.apply(db.WithContext(ctx).Model(new(T)))
	if err := tx.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count %T: %w", *new(T), err)
	}
	return n, nil
}

// Insert creates one row. Embedded relations are never written through.
func Insert[T any](ctx context.Context, db *gorm.DB, row *T) error {
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return fmt.Errorf("insert %T: %w", *row, err)
	}
	return nil
}

// Update overwrites the given columns of one row.
func Update[T any](ctx context.Context, db *gorm.DB, id uuid.UUID, fields map[string]any) error {
	res := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update %T %s: %w", *new(T), id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%T %s: %w", *new(T), id, ErrNotFound)
	}
	return nil
}

func Delete[T any](ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	res := db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete %T %s: %w", *new(T), id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%T %s: %w", *new(T), id, ErrNotFound)
	}
	return nil
}
