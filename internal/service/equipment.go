package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ANIKETSHETTY47/energy-admin-console/internal/api"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/domain"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/metrics"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/query"
)

type EquipmentRow struct {
	domain.Equipment
	TypeOption     domain.Option   `json:"typeOption"`
	StatusOption   domain.Option   `json:"statusOption"`
	Health         metrics.Health  `json:"health"`
	Urgency        metrics.Urgency `json:"urgency"`
	AgeYears       float64         `json:"ageYears"`
	WarrantyActive bool            `json:"warrantyActive"`
	CriticalAlerts int             `json:"criticalAlerts"`
}

type EquipmentPage struct {
	Filters     query.Filters           `json:"filters"`
	Rows        []EquipmentRow          `json:"rows"`
	Pagination  domain.Pagination       `json:"pagination"`
	PageStats   metrics.EquipmentStats  `json:"pageStats"`
	SystemStats *metrics.EquipmentStats `json:"systemStats,omitempty"`
	Skipped     int                     `json:"skipped"`
	GeneratedAt time.Time               `json:"generatedAt"`
}

type EquipmentService struct {
	backend EquipmentBackend
}

// activeAlertFilters selects the alerts cross-referenced against equipment.
var activeAlertFilters = query.Filters{Status: string(domain.AlertActive), Limit: query.MaxLimit}

// List fetches the equipment page, the system statistics and the active
// alerts concurrently. Only the equipment list is required; the other two
// degrade to absent with a warning.
func (s *EquipmentService) List(ctx context.Context, f query.Filters, now time.Time) (*EquipmentPage, error) {
	p := query.Build(f, query.EquipmentDefaults)

	var (
		page   *api.Page[domain.Equipment]
		system *api.EquipmentStatistics
		alerts []domain.Alert
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = s.backend.Equipment(gctx, p)
		if err != nil {
			return fmt.Errorf("list equipment: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		st, err := s.backend.EquipmentStatistics(gctx)
		if err != nil {
			log.Warn().Err(err).Msg("equipment statistics unavailable")
			return nil
		}
		system = st
		return nil
	})
	g.Go(func() error {
		res, err := s.backend.Alerts(gctx, query.Build(activeAlertFilters, query.AlertDefaults))
		if err != nil {
			log.Warn().Err(err).Msg("active alerts unavailable for equipment cross-reference")
			return nil
		}
		alerts = res.Items
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	perEquipment := metrics.AlertsByEquipment(alerts)
	rows := make([]EquipmentRow, 0, len(page.Items))
	for _, e := range page.Items {
		row := equipmentRow(e, now)
		row.CriticalAlerts = perEquipment[e.ID]
		rows = append(rows, row)
	}

	pg := paginationFor(p, len(page.Items), page.Pagination)
	out := &EquipmentPage{
		Filters:     p.Filters(),
		Rows:        rows,
		Pagination:  pg,
		PageStats:   metrics.EquipmentStatsOf(page.Items, alerts, pg.TotalCount, metrics.ScopePage, now),
		Skipped:     page.Skipped,
		GeneratedAt: now,
	}
	if system != nil {
		st := systemEquipmentStats(system)
		out.SystemStats = &st
	}
	return out, nil
}

// Maintenance returns the equipment's records ordered by scheduled date;
// unscheduled records go last.
func (s *EquipmentService) Maintenance(ctx context.Context, equipmentID int64) ([]domain.MaintenanceRecord, error) {
	if equipmentID <= 0 {
		return nil, fmt.Errorf("%w: equipment id %d", ErrInvalidInput, equipmentID)
	}
	records, err := s.backend.EquipmentMaintenance(ctx, equipmentID)
	if err != nil {
		return nil, fmt.Errorf("equipment %d maintenance: %w", equipmentID, err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].ScheduledDate, records[j].ScheduledDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return records, nil
}

func equipmentRow(e domain.Equipment, now time.Time) EquipmentRow {
	return EquipmentRow{
		Equipment:      e,
		TypeOption:     domain.EquipmentTypeOption(e.Type),
		StatusOption:   domain.EquipmentStatusOption(e.Status),
		Health:         metrics.HealthOf(e.ConditionScore),
		Urgency:        metrics.UrgencyOf(e, now),
		AgeYears:       metrics.AgeYears(e, now),
		WarrantyActive: metrics.WarrantyActive(e, now),
	}
}

func systemEquipmentStats(st *api.EquipmentStatistics) metrics.EquipmentStats {
	out := metrics.EquipmentStats{
		Scope:          metrics.ScopeSystem,
		Total:          st.Total,
		ByStatus:       map[domain.EquipmentStatus]int{},
		ByHealth:       map[metrics.HealthBucket]int{},
		ByUrgency:      map[metrics.UrgencyLevel]int{},
		CriticalAlerts: st.CriticalAlerts,
	}
	for k, n := range st.ByStatus {
		out.ByStatus[domain.EquipmentStatus(k)] += n
	}
	if st.AverageConditionScore != nil {
		out.AverageConditionScore = *st.AverageConditionScore
	}
	return out
}
