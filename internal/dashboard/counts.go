package dashboard

import (
	"context"
	"fmt"

	"apgbuilders/internal/models"
	"apgbuilders/internal/report"
	"apgbuilders/internal/repository"

	"golang.org/x/sync/errgroup"
)

// Counts are the entity totals shown on the dashboard, read with
// count-only queries.
type Counts struct {
	Sites       int64
	ActiveSites int64
	Vendors     int64
	Workers     int64
}

func LoadCounts(ctx context.Context, repos *repository.Repositories) (Counts, error) {
	var n Counts
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		n.Sites, err = repos.Sites.Count(gctx, "")
		return err
	})
	g.Go(func() (err error) {
		n.ActiveSites, err = repos.Sites.Count(gctx, models.SiteStatusActive)
		return err
	})
	g.Go(func() (err error) {
		n.Vendors, err = repos.Vendors.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		n.Workers, err = repos.Workers.Count(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return Counts{}, fmt.Errorf("load dashboard counts: %w", err)
	}
	return n, nil
}

func (n Counts) apply(st *report.Stats) {
	st.TotalSites = int(n.Sites)
	st.ActiveSites = int(n.ActiveSites)
	st.TotalVendors = int(n.Vendors)
	st.TotalWorkers = int(n.Workers)
}
