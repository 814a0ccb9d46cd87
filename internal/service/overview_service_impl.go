package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avollmer/leitstand/internal/domain"
	"github.com/avollmer/leitstand/internal/hierarchy"
	"github.com/avollmer/leitstand/internal/repository"
)

type overviewService struct {
	sales      repository.SalesRepo
	production repository.ProductionRepo
	batches    repository.BatchRepo
	builder    *hierarchy.Builder
	obs        UseCaseObserver
}

func NewOverviewService(
	sales repository.SalesRepo,
	production repository.ProductionRepo,
	batches repository.BatchRepo,
	builder *hierarchy.Builder,
	observers ...UseCaseObserver,
) OverviewService {
	return &overviewService{
		sales:      sales,
		production: production,
		batches:    batches,
		builder:    builder,
		obs:        useCaseObserverOrNoop(observers),
	}
}

func (s *overviewService) BuildOverview(ctx context.Context, req OverviewRequest) (ov *Overview, err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.obs, "build_overview", started, err, map[string]any{
			"view":    string(req.View),
			"project": req.Project,
		})
	}()

	if !domain.ValidViewModes[string(req.View)] {
		return nil, fmt.Errorf("unknown view mode %q", req.View)
	}

	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}

	salesRecords, productionRecords, err := s.loadRecords(ctx, req.Project)
	if err != nil {
		return nil, err
	}

	ix := hierarchy.BuildIndex(s.builder.Config(), productionRecords)

	var roots []*hierarchy.Node
	switch req.View {
	case domain.ViewProduction:
		roots = s.builder.ProductionTree(ix)
	case domain.ViewSales:
		roots = s.builder.SalesTree(salesRecords, ix, false)
	case domain.ViewStandalone:
		roots = s.builder.SalesTree(salesRecords, ix, true)
	}

	s.builder.AnnotateRisk(roots, now)

	hidden := 0
	if req.HideCompleted {
		kept := s.builder.FilterCompleted(roots)
		hidden = len(roots) - len(kept)
		roots = kept
	}

	stats := s.collectStatistics(roots, len(salesRecords), len(productionRecords))
	stats.HiddenCompleted = hidden

	return &Overview{View: req.View, Roots: roots, Stats: stats}, nil
}

func (s *overviewService) GetStatus(ctx context.Context) (*StatusReport, error) {
	salesCount, err := s.sales.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting sales records: %w", err)
	}
	productionCount, err := s.production.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting production records: %w", err)
	}
	recent, err := s.batches.ListRecent(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("loading recent imports: %w", err)
	}
	return &StatusReport{
		SalesCount:      salesCount,
		ProductionCount: productionCount,
		RecentBatches:   recent,
	}, nil
}

func (s *overviewService) loadRecords(ctx context.Context, project string) ([]*domain.SalesRecord, []*domain.ProductionRecord, error) {
	if project != "" {
		sales, err := s.sales.ListByProject(ctx, project)
		if err != nil {
			return nil, nil, fmt.Errorf("loading sales records for project %q: %w", project, err)
		}
		production, err := s.production.ListByProject(ctx, project)
		if err != nil {
			return nil, nil, fmt.Errorf("loading production records for project %q: %w", project, err)
		}
		return sales, production, nil
	}

	sales, err := s.sales.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading sales records: %w", err)
	}
	production, err := s.production.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading production records: %w", err)
	}
	return sales, production, nil
}

func (s *overviewService) collectStatistics(roots []*hierarchy.Node, salesTotal, productionTotal int) Statistics {
	stats := Statistics{
		SalesPositions:    salesTotal,
		ProductionRecords: productionTotal,
		RiskCounts:        make(map[domain.RiskLevel]int),
	}
	for _, root := range roots {
		stats.PlannedHours += root.Agg.PlannedHours()
		stats.ActualHours += root.Agg.ActualHours()
		stats.RiskCounts[root.Risk]++

		root.Walk(func(n *hierarchy.Node) {
			if n.Sales == nil {
				return
			}
			if placeholderOnly(n) {
				stats.WithoutProduction++
			} else {
				stats.WithProduction++
			}
		})
	}
	return stats
}

// placeholderOnly reports whether a sales article got no production data at
// all, only the placeholder child.
func placeholderOnly(n *hierarchy.Node) bool {
	return len(n.Children) == 1 && n.Children[0].Kind == hierarchy.KindNoProduction
}
