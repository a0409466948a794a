package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/stokmate/stokmate-analytics-be/internal/core/analytics"
	"github.com/stokmate/stokmate-analytics-be/internal/shared/utils"
)

// DataSource is the external record source the dashboard depends on. The
// three fetches are independent I/O operations; the service issues them
// concurrently and joins them before any aggregation starts.
type DataSource interface {
	FetchTransactions(ctx context.Context, period analytics.Period) ([]analytics.Transaction, error)
	FetchProducts(ctx context.Context) ([]analytics.Product, error)
	FetchInvoices(ctx context.Context) ([]analytics.Invoice, error)
}

// Dashboard is the full presentation-layer contract for one period.
type Dashboard struct {
	Period          analytics.Period          `json:"period"`
	GeneratedAt     time.Time                 `json:"generated_at"`
	AggregatedStats analytics.AggregatedStats `json:"aggregated_stats"`
	ProductRankings analytics.ProductRankings `json:"product_rankings"`
	TimeSeries      analytics.TimeSeries      `json:"time_series"`
	Chart           analytics.ChartData       `json:"chart"`
	InvoiceStats    analytics.InvoiceStats    `json:"invoice_stats"`
}

// DashboardService orchestrates one aggregation pass: fetch all three record
// sets, enrich costs, aggregate, rank, bin. Each pass operates on its own
// fetched snapshot; no state is shared between concurrent passes.
type DashboardService struct {
	source     DataSource
	snapshots  *gocache.Cache
	generation atomic.Uint64

	// publishMux serializes snapshot publication; lastPublished tracks the
	// highest generation published per period key, guarded by publishMux.
	publishMux    sync.Mutex
	lastPublished map[analytics.Period]uint64

	// now is the pass clock, injectable in tests.
	now func() time.Time
}

func NewDashboardService(source DataSource, snapshotTTL time.Duration) *DashboardService {
	return &DashboardService{
		source:        source,
		snapshots:     gocache.New(snapshotTTL, 2*snapshotTTL),
		lastPublished: make(map[analytics.Period]uint64),
		now:           time.Now,
	}
}

// ComputeDashboard runs a full aggregation pass for the period. Safe to
// invoke repeatedly; identical source data yields an identical dashboard.
//
// Each pass takes a monotonically increasing generation number. A pass whose
// generation has been superseded by the time it completes still returns its
// result to its own caller, but never overwrites the published snapshot —
// a slow stale fetch cannot clobber a faster, newer one.
//
// If any of the three fetches fails, the pass aborts with fully zeroed stats
// and a surfaced error; fresh and stale data are never mixed, and the
// last-known-good snapshot is left untouched.
func (s *DashboardService) ComputeDashboard(ctx context.Context, period analytics.Period) (*Dashboard, error) {
	gen := s.generation.Add(1)
	runID := uuid.New().String()
	started := s.now()

	var (
		transactions []analytics.Transaction
		products     []analytics.Product
		invoices     []analytics.Invoice
	)

	g, fetchCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = s.source.FetchTransactions(fetchCtx, period)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.source.FetchProducts(fetchCtx)
		return err
	})
	g.Go(func() error {
		var err error
		invoices, err = s.source.FetchInvoices(fetchCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		utils.LogError("aggregation pass aborted", err, map[string]interface{}{
			"run_id":     runID,
			"generation": gen,
			"period":     period,
		})
		return s.zeroDashboard(period), err
	}

	now := s.now()
	stats := analytics.Aggregate(transactions, products, invoices, period, now)
	series := analytics.BuildTimeSeries(transactions, invoices, period, now)

	dash := &Dashboard{
		Period:          period,
		GeneratedAt:     now,
		AggregatedStats: stats,
		ProductRankings: stats.Rankings,
		TimeSeries:      series,
		Chart:           series.ToLineChart(),
		InvoiceStats:    analytics.InvoiceAnalytics(invoices, period, now),
	}

	if !s.publish(gen, period, dash) {
		utils.LogWarn("discarding superseded aggregation pass", map[string]interface{}{
			"run_id":     runID,
			"generation": gen,
			"latest":     s.generation.Load(),
			"period":     period,
		})
	}

	utils.LogDebug("aggregation pass completed", map[string]interface{}{
		"run_id":       runID,
		"generation":   gen,
		"period":       period,
		"transactions": len(transactions),
		"products":     len(products),
		"invoices":     len(invoices),
		"duration":     s.now().Sub(started).String(),
	})
	return dash, nil
}

// publish stores the snapshot unless a newer generation already published.
// The check and the store sit under one lock; without it a stale pass could
// pass the generation check, lose the CPU, and then overwrite a newer
// snapshot written in the meantime.
func (s *DashboardService) publish(gen uint64, period analytics.Period, dash *Dashboard) bool {
	s.publishMux.Lock()
	defer s.publishMux.Unlock()

	if gen <= s.lastPublished[period] {
		return false
	}
	s.lastPublished[period] = gen
	s.snapshots.Set(string(period), dash, gocache.DefaultExpiration)
	return true
}

// LastKnownGood returns the most recent successfully published dashboard for
// the period, if one is cached. Callers use it to keep showing stale-but-good
// data next to an error indicator when the upstream source is down.
func (s *DashboardService) LastKnownGood(period analytics.Period) (*Dashboard, bool) {
	cached, found := s.snapshots.Get(string(period))
	if !found {
		return nil, false
	}
	dash, ok := cached.(*Dashboard)
	return dash, ok
}

// Refresh is the scheduled recompute entrypoint. Failures are logged and
// swallowed; the next tick retries.
func (s *DashboardService) Refresh(ctx context.Context, period analytics.Period) {
	if _, err := s.ComputeDashboard(ctx, period); err != nil {
		utils.LogWarn("scheduled refresh failed, keeping last known good", map[string]interface{}{
			"period": period,
			"error":  err.Error(),
		})
	}
}

func (s *DashboardService) zeroDashboard(period analytics.Period) *Dashboard {
	stats := analytics.ZeroStats()
	labels := analytics.BucketLabels(period, s.now())
	series := analytics.TimeSeries{
		Labels:    labels,
		Sales:     make([]float64, len(labels)),
		Purchases: make([]float64, len(labels)),
	}

	return &Dashboard{
		Period:          period,
		GeneratedAt:     s.now(),
		AggregatedStats: stats,
		ProductRankings: stats.Rankings,
		TimeSeries:      series,
		Chart:           series.ToLineChart(),
	}
}
