package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ANIKETSHETTY47/energy-admin-console/internal/api"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/domain"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/query"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/service"
)

type fakeBackend struct {
	lastAlerts query.Params
	alertsErr  error
	actionErr  error
	healthErr  error
}

func (f *fakeBackend) Health(context.Context) (*api.Health, error) {
	if f.healthErr != nil {
		return nil, f.healthErr
	}
	return &api.Health{Status: "ok"}, nil
}

func (f *fakeBackend) Alerts(_ context.Context, p query.Params) (*api.Page[domain.Alert], error) {
	f.lastAlerts = p
	if f.alertsErr != nil {
		return nil, f.alertsErr
	}
	return &api.Page[domain.Alert]{Items: []domain.Alert{
		{ID: 1, Severity: domain.SeverityHigh, Status: domain.AlertActive},
	}}, nil
}

func (f *fakeBackend) AlertStatistics(context.Context) (*api.AlertStatistics, error) {
	return &api.AlertStatistics{Total: 1}, nil
}

func (f *fakeBackend) AcknowledgeAlert(_ context.Context, id int64) (*domain.Alert, error) {
	if f.actionErr != nil {
		return nil, f.actionErr
	}
	return &domain.Alert{ID: id, Status: domain.AlertAcknowledged}, nil
}

func (f *fakeBackend) ResolveAlert(_ context.Context, id int64, notes string) (*domain.Alert, error) {
	return &domain.Alert{ID: id, Status: domain.AlertResolved, ResolutionNotes: notes}, nil
}

func (f *fakeBackend) Equipment(context.Context, query.Params) (*api.Page[domain.Equipment], error) {
	return &api.Page[domain.Equipment]{Items: []domain.Equipment{{ID: 3, Name: "Chiller"}}}, nil
}

func (f *fakeBackend) EquipmentStatistics(context.Context) (*api.EquipmentStatistics, error) {
	return &api.EquipmentStatistics{Total: 1}, nil
}

func (f *fakeBackend) EquipmentMaintenance(context.Context, int64) ([]domain.MaintenanceRecord, error) {
	return []domain.MaintenanceRecord{}, nil
}

func (f *fakeBackend) Analytics(context.Context, *int64, string) (*domain.AnalyticsData, error) {
	return &domain.AnalyticsData{Period: "7d"}, nil
}

func (f *fakeBackend) Buildings(context.Context) ([]domain.Building, error) {
	return []domain.Building{{ID: 1, Name: "HQ"}}, nil
}

func newApp(b *fakeBackend) *fiber.App {
	svcs := service.New(b, nil, nil)
	dash := service.NewDashboard(svcs.Alerts, time.Hour, time.Hour)
	app := fiber.New()
	Register(app, svcs, dash, b)
	return app
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, envelope) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()

	var env envelope
	if resp.StatusCode != fiber.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			t.Fatalf("%s %s: decode: %v", method, target, err)
		}
	}
	return resp.StatusCode, env
}

func TestListAlerts_NormalizesQuery(t *testing.T) {
	t.Parallel()

	b := &fakeBackend{}
	status, env := do(t, newApp(b), "GET", "/api/alerts?severity=HIGH&status=all&page=0&search=%20pump%20", "")
	if status != fiber.StatusOK || !env.Success {
		t.Fatalf("status %d: %+v", status, env)
	}
	p := b.lastAlerts
	if p.Page != 1 || p.Status != nil || p.Severity == nil || *p.Severity != "high" || p.Search == nil || *p.Search != "pump" {
		t.Fatalf("params: %+v", p)
	}

	var page service.AlertPage
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(page.Rows) != 1 || !page.Rows[0].Actions.CanAcknowledge {
		t.Fatalf("rows: %+v", page.Rows)
	}
}

func TestErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		b      *fakeBackend
		method string
		target string
		want   int
		msg    string
	}{
		{"transport", &fakeBackend{alertsErr: api.ErrTransport}, "GET", "/api/alerts", fiber.StatusBadGateway, ""},
		{"malformed", &fakeBackend{alertsErr: api.ErrMalformed}, "GET", "/api/alerts", fiber.StatusBadGateway, ""},
		{"rejected", &fakeBackend{actionErr: &api.RejectedError{Status: 409, Message: "alert already resolved"}}, "POST", "/api/alerts/4/acknowledge", fiber.StatusUnprocessableEntity, "alert already resolved"},
		{"bad id", &fakeBackend{}, "POST", "/api/alerts/abc/acknowledge", fiber.StatusBadRequest, ""},
		{"bad building", &fakeBackend{}, "GET", "/api/analytics?buildingId=x", fiber.StatusBadRequest, ""},
		{"views disabled", &fakeBackend{}, "GET", "/api/views?resource=alerts", fiber.StatusNotImplemented, ""},
		{"bad view id", &fakeBackend{}, "GET", "/api/views/not-a-uuid", fiber.StatusBadRequest, ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			status, env := do(t, newApp(tc.b), tc.method, tc.target, "")
			if status != tc.want || env.Success {
				t.Fatalf("want %d, got %d %+v", tc.want, status, env)
			}
			if tc.msg != "" && env.Message != tc.msg {
				t.Fatalf("message: %q", env.Message)
			}
		})
	}
}

func TestResolve_PassesNotes(t *testing.T) {
	t.Parallel()

	status, env := do(t, newApp(&fakeBackend{}), "POST", "/api/alerts/8/resolve", `{"resolution_notes":"reset breaker"}`)
	if status != fiber.StatusOK {
		t.Fatalf("status %d: %+v", status, env)
	}
	var row service.AlertRow
	if err := json.Unmarshal(env.Data, &row); err != nil {
		t.Fatal(err)
	}
	if row.ID != 8 || row.ResolutionNotes != "reset breaker" || row.Actions.CanResolve {
		t.Fatalf("row: %+v", row)
	}
}

func TestHealth_ReportsBackend(t *testing.T) {
	t.Parallel()

	status, env := do(t, newApp(&fakeBackend{healthErr: api.ErrTransport}), "GET", "/health", "")
	if status != fiber.StatusOK || !strings.Contains(string(env.Data), `"unreachable"`) {
		t.Fatalf("status %d: %s", status, env.Data)
	}
}

func TestEquipmentAndAnalytics(t *testing.T) {
	t.Parallel()

	app := newApp(&fakeBackend{})
	status, env := do(t, app, "GET", "/api/equipment?type=hvac", "")
	if status != fiber.StatusOK || !strings.Contains(string(env.Data), `"Chiller"`) {
		t.Fatalf("equipment %d: %s", status, env.Data)
	}
	status, env = do(t, app, "GET", "/api/analytics?buildingId=1&period=7d", "")
	if status != fiber.StatusOK || !strings.Contains(string(env.Data), `"HQ"`) {
		t.Fatalf("analytics %d: %s", status, env.Data)
	}
	status, _ = do(t, app, "GET", "/api/options", "")
	if status != fiber.StatusOK {
		t.Fatalf("options %d", status)
	}
}

func TestDashboardFilters(t *testing.T) {
	t.Parallel()

	app := newApp(&fakeBackend{})
	status, env := do(t, app, "PUT", "/api/dashboard/filters", `{"severity":"critical","page":4}`)
	if status != fiber.StatusOK {
		t.Fatalf("put filters %d: %+v", status, env)
	}
	status, env = do(t, app, "GET", "/api/dashboard", "")
	if status != fiber.StatusOK {
		t.Fatalf("dashboard %d", status)
	}
	var snap service.DashboardSnapshot
	if err := json.Unmarshal(env.Data, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Filters.Severity != "critical" || snap.Filters.Page != 1 || snap.Alerts == nil {
		t.Fatalf("snapshot: %+v", snap)
	}
}
