package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ANIKETSHETTY47/energy-admin-console/internal/api"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/domain"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/metrics"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/query"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/repository"
)

func ptr[T any](v T) *T { return &v }

type stubBackend struct {
	mu           sync.Mutex
	alertParams  []query.Params
	onAlerts     func(ctx context.Context, p query.Params) error
	alerts       *api.Page[domain.Alert]
	alertsErr    error
	alertStats   *api.AlertStatistics
	alertStatErr error
	acked        *domain.Alert
	actionErr    error

	equipment    *api.Page[domain.Equipment]
	equipmentErr error
	eqStats      *api.EquipmentStatistics
	eqStatsErr   error
	maintenance  []domain.MaintenanceRecord

	analytics *domain.AnalyticsData
	buildings []domain.Building
}

func (s *stubBackend) Alerts(ctx context.Context, p query.Params) (*api.Page[domain.Alert], error) {
	s.mu.Lock()
	s.alertParams = append(s.alertParams, p)
	s.mu.Unlock()
	if s.onAlerts != nil {
		if err := s.onAlerts(ctx, p); err != nil {
			return nil, err
		}
	}
	if s.alertsErr != nil {
		return nil, s.alertsErr
	}
	if s.alerts == nil {
		return &api.Page[domain.Alert]{Items: []domain.Alert{}}, nil
	}
	return s.alerts, nil
}

func (s *stubBackend) AlertStatistics(context.Context) (*api.AlertStatistics, error) {
	return s.alertStats, s.alertStatErr
}

func (s *stubBackend) AcknowledgeAlert(_ context.Context, id int64) (*domain.Alert, error) {
	if s.actionErr != nil {
		return nil, s.actionErr
	}
	return s.acked, nil
}

func (s *stubBackend) ResolveAlert(_ context.Context, id int64, notes string) (*domain.Alert, error) {
	if s.actionErr != nil {
		return nil, s.actionErr
	}
	return &domain.Alert{ID: id, Status: domain.AlertResolved, ResolutionNotes: notes}, nil
}

func (s *stubBackend) Equipment(context.Context, query.Params) (*api.Page[domain.Equipment], error) {
	return s.equipment, s.equipmentErr
}

func (s *stubBackend) EquipmentStatistics(context.Context) (*api.EquipmentStatistics, error) {
	return s.eqStats, s.eqStatsErr
}

func (s *stubBackend) EquipmentMaintenance(context.Context, int64) ([]domain.MaintenanceRecord, error) {
	return s.maintenance, nil
}

func (s *stubBackend) Analytics(context.Context, *int64, string) (*domain.AnalyticsData, error) {
	return s.analytics, nil
}

func (s *stubBackend) Buildings(context.Context) ([]domain.Building, error) {
	return s.buildings, nil
}

func TestAlertList_RowsAndPaginationFallback(t *testing.T) {
	t.Parallel()

	b := &stubBackend{alerts: &api.Page[domain.Alert]{
		Items: []domain.Alert{
			{ID: 1, Severity: domain.SeverityCritical, Status: domain.AlertActive},
			{ID: 2, Severity: domain.SeverityLow, Status: domain.AlertAcknowledged},
			{ID: 3, Severity: "bogus", Status: domain.AlertClosed},
		},
		Skipped: 1,
	}}
	svc := New(b, nil, nil)

	page, err := svc.Alerts.List(context.Background(), query.Filters{Page: 2, Limit: 3, Severity: " ALL "})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if b.alertParams[0].Severity != nil {
		t.Fatalf("'all' must not be sent: %+v", b.alertParams[0])
	}
	if !page.Rows[0].Actions.CanAcknowledge || !page.Rows[0].Actions.CanResolve {
		t.Fatalf("active alert actions: %+v", page.Rows[0].Actions)
	}
	if page.Rows[1].Actions.CanAcknowledge || !page.Rows[1].Actions.CanResolve {
		t.Fatalf("acknowledged alert actions: %+v", page.Rows[1].Actions)
	}
	if page.Rows[2].Actions != (domain.AlertActions{}) {
		t.Fatalf("closed alert actions: %+v", page.Rows[2].Actions)
	}
	if page.Rows[2].SeverityOption.Value != "unknown" {
		t.Fatalf("unknown severity option: %+v", page.Rows[2].SeverityOption)
	}
	want := domain.Pagination{CurrentPage: 2, PerPage: 3, TotalPages: 3, TotalCount: 3, HasNextPage: true, HasPrevPage: true}
	if page.Pagination != want {
		t.Fatalf("pagination: want %+v, got %+v", want, page.Pagination)
	}
	if page.Stats.Scope != metrics.ScopePage || page.Stats.Total != 3 || page.Skipped != 1 {
		t.Fatalf("stats scope / total / skipped: %+v %d", page.Stats, page.Skipped)
	}
}

func TestAlertList_EmptyPageWithoutPagination(t *testing.T) {
	t.Parallel()

	b := &stubBackend{alerts: &api.Page[domain.Alert]{Items: []domain.Alert{}}}
	page, err := New(b, nil, nil).Alerts.List(context.Background(), query.Filters{Page: 3, Limit: 15})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := domain.Pagination{CurrentPage: 3, PerPage: 15, TotalPages: 3, TotalCount: 0, HasPrevPage: true}
	if page.Pagination != want {
		t.Fatalf("pagination: want %+v, got %+v", want, page.Pagination)
	}
	if page.Stats.Total != 0 {
		t.Fatalf("page stats must count only this page, got total %d", page.Stats.Total)
	}
}

func TestAlertStatistics_SystemScope(t *testing.T) {
	t.Parallel()

	b := &stubBackend{alertStats: &api.AlertStatistics{
		Total:          10,
		ByStatus:       map[string]int{"active": 4, "acknowledged": 1, "resolved": 5},
		BySeverity:     map[string]int{"critical": 2},
		CriticalActive: 2,
	}}
	stats, err := New(b, nil, nil).Alerts.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if stats.Scope != metrics.ScopeSystem || stats.Open != 5 || stats.CriticalActive != 2 {
		t.Fatalf("stats: %+v", stats)
	}
}

func TestAlertStatistics_FallbackOnRejection(t *testing.T) {
	t.Parallel()

	b := &stubBackend{
		alertStatErr: &api.RejectedError{Status: 403, Message: "forbidden"},
		alerts: &api.Page[domain.Alert]{Items: []domain.Alert{
			{ID: 1, Severity: domain.SeverityCritical, Status: domain.AlertActive},
		}},
	}
	stats, err := New(b, nil, nil).Alerts.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if stats.Scope != metrics.ScopePage || stats.CriticalActive != 1 {
		t.Fatalf("fallback stats: %+v", stats)
	}
	if b.alertParams[0].Limit != query.MaxLimit {
		t.Fatalf("fallback must read the largest page, got limit %d", b.alertParams[0].Limit)
	}
}

func TestAlertStatistics_TransportErrorNotMasked(t *testing.T) {
	t.Parallel()

	b := &stubBackend{alertStatErr: api.ErrTransport}
	if _, err := New(b, nil, nil).Alerts.Statistics(context.Background()); !errors.Is(err, api.ErrTransport) {
		t.Fatalf("want transport error, got %v", err)
	}
}

func TestAcknowledge_ReturnsBackendRecord(t *testing.T) {
	t.Parallel()

	b := &stubBackend{acked: &domain.Alert{ID: 9, Status: domain.AlertAcknowledged}}
	svc := New(b, nil, nil)

	row, err := svc.Alerts.Acknowledge(context.Background(), 9)
	if err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}
	if row.Status != domain.AlertAcknowledged || row.Actions.CanAcknowledge || !row.Actions.CanResolve {
		t.Fatalf("row: %+v", row)
	}

	if _, err := svc.Alerts.Acknowledge(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero id: %v", err)
	}

	b.actionErr = &api.RejectedError{Status: 409, Message: "already resolved"}
	if _, err := svc.Alerts.Resolve(context.Background(), 9, "done"); !errors.Is(err, api.ErrRejected) {
		t.Fatalf("rejection must surface, got %v", err)
	}
}

func TestEquipmentList_CombinesSources(t *testing.T) {
	t.Parallel()

	now := time.Date(2020, 5, 1, 12, 0, 0, 0, time.UTC)
	install := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	b := &stubBackend{
		equipment: &api.Page[domain.Equipment]{
			Items: []domain.Equipment{
				{ID: 1, Status: domain.EquipmentActive, InstallationDate: &install, MaintenanceIntervalDays: ptr(90)},
				{ID: 2, Status: domain.EquipmentFaulty, ConditionScore: ptr(35.0)},
			},
			Pagination: &domain.Pagination{CurrentPage: 1, PerPage: 15, TotalPages: 3, TotalCount: 40},
		},
		eqStats: &api.EquipmentStatistics{Total: 40, ByStatus: map[string]int{"active": 30}, AverageConditionScore: ptr(81.5)},
		alerts: &api.Page[domain.Alert]{Items: []domain.Alert{
			{ID: 5, EquipmentID: ptr(int64(2)), Severity: domain.SeverityCritical, Status: domain.AlertActive},
		}},
	}

	page, err := New(b, nil, nil).Equipment.List(context.Background(), query.Filters{}, now)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	first, second := page.Rows[0], page.Rows[1]
	if first.Urgency.Level != metrics.UrgencyOverdue || first.Urgency.Days != 31 {
		t.Fatalf("urgency: %+v", first.Urgency)
	}
	if !first.Health.Defaulted || first.Health.Bucket != metrics.HealthGood {
		t.Fatalf("default health: %+v", first.Health)
	}
	if second.Health.Bucket != metrics.HealthCritical || second.CriticalAlerts != 1 {
		t.Fatalf("second row: %+v", second)
	}
	if page.PageStats.Total != 40 || page.PageStats.Sampled != 2 || page.PageStats.CriticalAlerts != 1 {
		t.Fatalf("page stats: %+v", page.PageStats)
	}
	if page.SystemStats == nil || page.SystemStats.AverageConditionScore != 81.5 || page.SystemStats.Scope != metrics.ScopeSystem {
		t.Fatalf("system stats: %+v", page.SystemStats)
	}

	var sawActive bool
	for _, p := range b.alertParams {
		if p.Status != nil && *p.Status == "active" {
			sawActive = true
		}
	}
	if !sawActive {
		t.Fatal("active alerts were not requested for cross-reference")
	}
}

func TestEquipmentList_OptionalSourcesDegrade(t *testing.T) {
	t.Parallel()

	b := &stubBackend{
		equipment:  &api.Page[domain.Equipment]{Items: []domain.Equipment{{ID: 1}}},
		eqStatsErr: api.ErrTransport,
		alertsErr:  api.ErrTransport,
	}
	page, err := New(b, nil, nil).Equipment.List(context.Background(), query.Filters{}, time.Now())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.SystemStats != nil || len(page.Rows) != 1 {
		t.Fatalf("page: %+v", page)
	}

	b.equipmentErr = api.ErrMalformed
	if _, err := New(b, nil, nil).Equipment.List(context.Background(), query.Filters{}, time.Now()); !errors.Is(err, api.ErrMalformed) {
		t.Fatalf("want malformed, got %v", err)
	}
}

func TestMaintenance_SortedByScheduledDate(t *testing.T) {
	t.Parallel()

	d := func(day int) *time.Time {
		v := time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
		return &v
	}
	b := &stubBackend{maintenance: []domain.MaintenanceRecord{
		{ID: 1, ScheduledDate: nil},
		{ID: 2, ScheduledDate: d(20)},
		{ID: 3, ScheduledDate: d(5)},
	}}
	records, err := New(b, nil, nil).Equipment.Maintenance(context.Background(), 7)
	if err != nil {
		t.Fatalf("Maintenance: %v", err)
	}
	if records[0].ID != 3 || records[1].ID != 2 || records[2].ID != 1 {
		t.Fatalf("order: %d %d %d", records[0].ID, records[1].ID, records[2].ID)
	}
}

func TestAnalyticsOverview(t *testing.T) {
	t.Parallel()

	b := &stubBackend{
		analytics: &domain.AnalyticsData{
			Anomalies: []domain.Anomaly{{Severity: domain.SeverityHigh}, {Severity: domain.SeverityHigh}},
			EfficiencyOpportunities: []domain.EfficiencyOpportunity{
				{PotentialSavingsKWh: 10}, {PotentialSavingsKWh: 2.5},
			},
		},
		buildings: []domain.Building{{ID: 1, Name: "HQ"}, {ID: 2, Name: "Plant"}},
	}
	o, err := New(b, nil, nil).Analytics.Overview(context.Background(), ptr(int64(2)), " 7d ")
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if o.Building == nil || o.Building.Name != "Plant" || o.Period != "7d" {
		t.Fatalf("overview: %+v", o)
	}
	if o.AnomaliesBySeverity[domain.SeverityHigh] != 2 || o.PotentialSavingsKWh != 12.5 {
		t.Fatalf("aggregates: %+v", o)
	}
}

type memViews struct {
	mu    sync.Mutex
	views map[uuid.UUID]domain.SavedView
}

func (m *memViews) CreateView(_ context.Context, v *domain.SavedView) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.views == nil {
		m.views = map[uuid.UUID]domain.SavedView{}
	}
	m.views[v.ID] = *v
	return nil
}

func (m *memViews) ListViews(_ context.Context, r domain.Resource) ([]domain.SavedView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.SavedView{}
	for _, v := range m.views {
		if v.Resource == r {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memViews) GetView(_ context.Context, id uuid.UUID) (*domain.SavedView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.views[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &v, nil
}

func (m *memViews) DeleteView(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.views[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.views, id)
	return nil
}

func TestSavedViews_RoundTrip(t *testing.T) {
	t.Parallel()

	views := New(&stubBackend{}, &memViews{}, nil).Views
	ctx := context.Background()

	f := query.Filters{Page: 4, Severity: "Critical", BuildingID: "3", Search: "  chiller "}
	v, err := views.Save(ctx, "  Critical chillers ", domain.ResourceAlerts, f)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if v.Name != "Critical chillers" || strings.Contains(v.Query, "page=") {
		t.Fatalf("saved view: %+v", v)
	}

	_, got, err := views.Open(ctx, v.ID)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	want := query.Build(query.Filters{Page: 1, Severity: "critical", BuildingID: "3", Search: "chiller"}, query.AlertDefaults)
	if query.Build(got, query.AlertDefaults).Values().Encode() != want.Values().Encode() {
		t.Fatalf("reopened filters: %+v", got)
	}

	list, err := views.List(ctx, domain.ResourceAlerts)
	if err != nil || len(list) != 1 {
		t.Fatalf("List: %v %v", list, err)
	}
	if err := views.Delete(ctx, v.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, _, err := views.Open(ctx, v.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted view: %v", err)
	}
}

func TestSavedViews_Validation(t *testing.T) {
	t.Parallel()

	views := New(&stubBackend{}, &memViews{}, nil).Views
	ctx := context.Background()
	if _, err := views.Save(ctx, " ", domain.ResourceAlerts, query.Filters{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank name: %v", err)
	}
	if _, err := views.Save(ctx, "x", "buildings", query.Filters{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad resource: %v", err)
	}

	disabled := New(&stubBackend{}, nil, nil).Views
	if _, err := disabled.List(ctx, domain.ResourceAlerts); !errors.Is(err, ErrDisabled) {
		t.Fatalf("disabled store: %v", err)
	}
}

type memSnapshots struct {
	keys []string
	body map[string][]byte
}

func (m *memSnapshots) PutSnapshot(_ context.Context, key string, body []byte) error {
	if m.body == nil {
		m.body = map[string][]byte{}
	}
	m.keys = append(m.keys, key)
	m.body[key] = body
	return nil
}

func (m *memSnapshots) PresignURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://example.invalid/" + key, nil
}

func (m *memSnapshots) ListSnapshots(_ context.Context, prefix string) ([]string, error) {
	out := []string{}
	for _, k := range m.keys {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out, nil
}

func TestExportEquipment(t *testing.T) {
	t.Parallel()

	store := &memSnapshots{}
	b := &stubBackend{equipment: &api.Page[domain.Equipment]{Items: []domain.Equipment{{ID: 1, Name: "AHU-1"}}}}
	exports := New(b, nil, store).Exports
	now := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

	exp, err := exports.ExportEquipment(context.Background(), query.Filters{}, now)
	if err != nil {
		t.Fatalf("ExportEquipment: %v", err)
	}
	if exp.Rows != 1 || !strings.HasPrefix(exp.Key, "exports/equipment/20240601T083000Z-") {
		t.Fatalf("export: %+v", exp)
	}
	if !strings.Contains(string(store.body[exp.Key]), `"AHU-1"`) {
		t.Fatalf("snapshot body missing row: %s", store.body[exp.Key])
	}
	keys, err := exports.List(context.Background())
	if err != nil || len(keys) != 1 {
		t.Fatalf("List: %v %v", keys, err)
	}

	if _, err := New(b, nil, nil).Exports.ExportEquipment(context.Background(), query.Filters{}, now); !errors.Is(err, ErrDisabled) {
		t.Fatalf("disabled export: %v", err)
	}
}
