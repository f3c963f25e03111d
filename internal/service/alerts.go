package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/energy-admin-console/internal/api"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/domain"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/metrics"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/query"
)

type AlertRow struct {
	domain.Alert
	TypeOption     domain.Option       `json:"typeOption"`
	SeverityOption domain.Option       `json:"severityOption"`
	StatusOption   domain.Option       `json:"statusOption"`
	PriorityOption domain.Option       `json:"priorityOption"`
	Actions        domain.AlertActions `json:"actions"`
}

type AlertPage struct {
	Filters    query.Filters      `json:"filters"`
	Rows       []AlertRow         `json:"rows"`
	Pagination domain.Pagination  `json:"pagination"`
	Stats      metrics.AlertStats `json:"stats"`
	Skipped    int                `json:"skipped"`
}

type AlertService struct {
	backend AlertBackend
}

func (s *AlertService) List(ctx context.Context, f query.Filters) (*AlertPage, error) {
	p := query.Build(f, query.AlertDefaults)
	page, err := s.backend.Alerts(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}

	rows := make([]AlertRow, 0, len(page.Items))
	for _, a := range page.Items {
		rows = append(rows, alertRow(a))
	}
	pg := paginationFor(p, len(page.Items), page.Pagination)
	return &AlertPage{
		Filters:    p.Filters(),
		Rows:       rows,
		Pagination: pg,
		Stats:      metrics.AlertStatsOf(page.Items, pg.TotalCount, metrics.ScopePage),
		Skipped:    page.Skipped,
	}, nil
}

// Statistics returns system-wide counts from the backend. When the backend
// refuses the statistics call, counts over the largest single page are
// returned instead and marked as page scoped.
func (s *AlertService) Statistics(ctx context.Context) (*metrics.AlertStats, error) {
	st, err := s.backend.AlertStatistics(ctx)
	if err == nil {
		out := systemAlertStats(st)
		return &out, nil
	}
	if !errors.Is(err, api.ErrRejected) {
		return nil, fmt.Errorf("alert statistics: %w", err)
	}

	log.Warn().Err(err).Msg("alert statistics unavailable, falling back to page counts")
	page, err := s.List(ctx, query.Filters{Limit: query.MaxLimit})
	if err != nil {
		return nil, fmt.Errorf("alert statistics fallback: %w", err)
	}
	return &page.Stats, nil
}

// Acknowledge and Resolve pass the transition to the backend and return the
// record it answers with; no local state is changed on failure.
func (s *AlertService) Acknowledge(ctx context.Context, id int64) (*AlertRow, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: alert id %d", ErrInvalidInput, id)
	}
	a, err := s.backend.AcknowledgeAlert(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("acknowledge alert %d: %w", id, err)
	}
	log.Info().Int64("alert_id", id).Str("status", string(a.Status)).Msg("alert acknowledged")
	row := alertRow(*a)
	return &row, nil
}

func (s *AlertService) Resolve(ctx context.Context, id int64, notes string) (*AlertRow, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: alert id %d", ErrInvalidInput, id)
	}
	a, err := s.backend.ResolveAlert(ctx, id, notes)
	if err != nil {
		return nil, fmt.Errorf("resolve alert %d: %w", id, err)
	}
	log.Info().Int64("alert_id", id).Str("status", string(a.Status)).Msg("alert resolved")
	row := alertRow(*a)
	return &row, nil
}

func alertRow(a domain.Alert) AlertRow {
	return AlertRow{
		Alert:          a,
		TypeOption:     domain.AlertTypeOption(a.Type),
		SeverityOption: domain.SeverityOption(a.Severity),
		StatusOption:   domain.AlertStatusOption(a.Status),
		PriorityOption: domain.PriorityOption(a.Priority),
		Actions:        domain.ActionsFor(a.Status),
	}
}

func systemAlertStats(st *api.AlertStatistics) metrics.AlertStats {
	out := metrics.AlertStats{
		Scope:          metrics.ScopeSystem,
		Total:          st.Total,
		ByStatus:       map[domain.AlertStatus]int{},
		BySeverity:     map[domain.Severity]int{},
		CriticalActive: st.CriticalActive,
	}
	for k, n := range st.ByStatus {
		status := domain.AlertStatus(k)
		out.ByStatus[status] += n
		if (domain.Alert{Status: status}).IsOpen() {
			out.Open += n
		}
	}
	for k, n := range st.BySeverity {
		out.BySeverity[domain.Severity(k)] += n
	}
	return out
}
