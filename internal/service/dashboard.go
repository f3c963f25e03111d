package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ANIKETSHETTY47/energy-admin-console/internal/metrics"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/query"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/refresh"
)

type DashboardSnapshot struct {
	Filters         query.Filters       `json:"filters"`
	Alerts          *AlertPage          `json:"alerts,omitempty"`
	Stats           *metrics.AlertStats `json:"stats,omitempty"`
	AlertsUpdatedAt *time.Time          `json:"alertsUpdatedAt,omitempty"`
	StatsUpdatedAt  *time.Time          `json:"statsUpdatedAt,omitempty"`
}

// Dashboard keeps the alert overview warm. The alert list and the statistics
// refresh on independent intervals; changing filters cancels any list load
// still running for the old filters.
type Dashboard struct {
	alerts *AlertService
	now    func() time.Time

	mu           sync.RWMutex
	filters      query.Filters
	listUpdated  time.Time
	statsUpdated time.Time

	list  refresh.Latest[*AlertPage]
	stats refresh.Latest[*metrics.AlertStats]

	listPoller  *refresh.Poller
	statsPoller *refresh.Poller
}

func NewDashboard(alerts *AlertService, listEvery, statsEvery time.Duration) *Dashboard {
	d := &Dashboard{
		alerts:  alerts,
		now:     time.Now,
		filters: query.Build(query.Filters{}, query.AlertDefaults).Filters(),
	}
	d.listPoller = refresh.NewPoller("alerts", listEvery, d.refreshList)
	d.statsPoller = refresh.NewPoller("alert-statistics", statsEvery, d.refreshStats)
	return d
}

// Run drives both pollers until ctx is done.
func (d *Dashboard) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, p := range []*refresh.Poller{d.listPoller, d.statsPoller} {
		wg.Add(1)
		go func(p *refresh.Poller) {
			defer wg.Done()
			p.Run(ctx)
		}(p)
	}
	wg.Wait()
}

// Refresh requests an immediate reload of the list and the statistics.
func (d *Dashboard) Refresh() {
	d.listPoller.Trigger()
	d.statsPoller.Trigger()
}

func (d *Dashboard) Filters() query.Filters {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.filters
}

// SetFilters stores f, returning to page 1 when anything but the page
// changed, and loads the matching list. If a newer load overtakes this one
// the result is ErrSuperseded and the newer load's page will be stored.
func (d *Dashboard) SetFilters(ctx context.Context, f query.Filters) (*AlertPage, error) {
	next := query.Build(f, query.AlertDefaults).Filters()

	d.mu.Lock()
	d.filters = query.ResetPage(d.filters, next)
	d.mu.Unlock()

	return d.loadList(ctx)
}

func (d *Dashboard) Snapshot() DashboardSnapshot {
	d.mu.RLock()
	s := DashboardSnapshot{Filters: d.filters}
	if !d.listUpdated.IsZero() {
		t := d.listUpdated
		s.AlertsUpdatedAt = &t
	}
	if !d.statsUpdated.IsZero() {
		t := d.statsUpdated
		s.StatsUpdatedAt = &t
	}
	d.mu.RUnlock()

	s.Alerts, _ = d.list.Value()
	s.Stats, _ = d.stats.Value()
	return s
}

// loadList reads the filters only once Load has issued the sequence number,
// so the newest load always requests the newest filters.
func (d *Dashboard) loadList(ctx context.Context) (*AlertPage, error) {
	page, err := d.list.Load(ctx, func(ctx context.Context) (*AlertPage, error) {
		return d.alerts.List(ctx, d.Filters())
	})
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.listUpdated = d.now()
	d.mu.Unlock()
	return page, nil
}

func (d *Dashboard) refreshList(ctx context.Context) error {
	_, err := d.loadList(ctx)
	if errors.Is(err, refresh.ErrSuperseded) {
		return nil
	}
	return err
}

func (d *Dashboard) refreshStats(ctx context.Context) error {
	_, err := d.stats.Load(ctx, d.alerts.Statistics)
	if err != nil {
		if errors.Is(err, refresh.ErrSuperseded) {
			return nil
		}
		return err
	}
	d.mu.Lock()
	d.statsUpdated = d.now()
	d.mu.Unlock()
	return nil
}
