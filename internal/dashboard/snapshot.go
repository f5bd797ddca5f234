package dashboard

import (
	"context"
	"fmt"

	"apgbuilders/internal/models"
	"apgbuilders/internal/repository"

	"golang.org/x/sync/errgroup"
)

// Snapshot is every row the dashboard and the exports aggregate over.
type Snapshot struct {
	Sites    []models.Site
	Vendors  []models.Vendor
	Workers  []models.Worker
	Expenses []models.Expense
	Payments []models.WorkerPayment
	Income   []models.SiteIncome
}

// Load reads the six collections concurrently. The first failure cancels
// the rest and no snapshot is returned.
func Load(ctx context.Context, repos *repository.Repositories) (*Snapshot, error) {
	var s Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		s.Sites, err = repos.Sites.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.Vendors, err = repos.Vendors.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.Workers, err = repos.Workers.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.Expenses, err = repos.Expenses.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.Payments, err = repos.WorkerPayments.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.Income, err = repos.SiteIncome.ListAll(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dashboard data: %w", err)
	}
	return &s, nil
}
