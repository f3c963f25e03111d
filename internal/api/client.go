package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/ANIKETSHETTY47/energy-admin-console/internal/domain"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/query"
)

const maxBodyBytes = 8 << 20

type Client struct {
	baseURL string
	http    *http.Client
	group   singleflight.Group
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Page is one decoded list response. Skipped counts records that could not
// be read and were left out.
type Page[T any] struct {
	Items      []T
	Pagination *domain.Pagination
	Skipped    int
}

type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Health calls the backend liveness endpoint, which is not enveloped.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	status, raw, err := c.send(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		return nil, fmt.Errorf("%w: GET /health: status %d", ErrTransport, status)
	}
	var out Health
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: GET /health: %v", ErrMalformed, err)
	}
	return &out, nil
}

// Alerts fetches one filtered page of alerts.
func (c *Client) Alerts(ctx context.Context, p query.Params) (*Page[domain.Alert], error) {
	env, err := c.get(ctx, "/alerts", p.Values())
	if err != nil {
		return nil, err
	}
	return decodePage[domain.Alert, wireAlert]("/alerts", env)
}

// AlertStatistics fetches system-wide alert counts.
func (c *Client) AlertStatistics(ctx context.Context) (*AlertStatistics, error) {
	env, err := c.get(ctx, "/alerts/statistics", nil)
	if err != nil {
		return nil, err
	}
	var out AlertStatistics
	if err := decodeObject("/alerts/statistics", env, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AcknowledgeAlert acknowledges alert id and returns the updated record.
func (c *Client) AcknowledgeAlert(ctx context.Context, id int64) (*domain.Alert, error) {
	return c.alertAction(ctx, id, "acknowledge", nil)
}

// ResolveAlert resolves alert id. Blank notes are not sent.
func (c *Client) ResolveAlert(ctx context.Context, id int64, notes string) (*domain.Alert, error) {
	body := map[string]string{}
	if notes = strings.TrimSpace(notes); notes != "" {
		body["resolution_notes"] = notes
	}
	return c.alertAction(ctx, id, "resolve", body)
}

func (c *Client) alertAction(ctx context.Context, id int64, action string, body any) (*domain.Alert, error) {
	path := "/alerts/" + strconv.FormatInt(id, 10) + "/" + action
	env, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return nil, err
	}
	var w wireAlert
	if err := decodeObject(path, env, &w); err != nil {
		return nil, err
	}
	a, ok := w.domain()
	if !ok {
		return nil, fmt.Errorf("%w: POST %s: alert without id", ErrMalformed, path)
	}
	return &a, nil
}

// Equipment fetches one filtered page of equipment.
func (c *Client) Equipment(ctx context.Context, p query.Params) (*Page[domain.Equipment], error) {
	env, err := c.get(ctx, "/equipment", p.Values())
	if err != nil {
		return nil, err
	}
	return decodePage[domain.Equipment, wireEquipment]("/equipment", env)
}

// EquipmentStatistics fetches system-wide equipment counts.
func (c *Client) EquipmentStatistics(ctx context.Context) (*EquipmentStatistics, error) {
	env, err := c.get(ctx, "/equipment/statistics", nil)
	if err != nil {
		return nil, err
	}
	var out EquipmentStatistics
	if err := decodeObject("/equipment/statistics", env, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EquipmentMaintenance lists the maintenance records of one equipment item.
func (c *Client) EquipmentMaintenance(ctx context.Context, equipmentID int64) ([]domain.MaintenanceRecord, error) {
	path := "/equipment/" + strconv.FormatInt(equipmentID, 10) + "/maintenance"
	env, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	page, err := decodePage[domain.MaintenanceRecord, wireMaintenance](path, env)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// Buildings lists every building.
func (c *Client) Buildings(ctx context.Context) ([]domain.Building, error) {
	env, err := c.get(ctx, "/buildings", nil)
	if err != nil {
		return nil, err
	}
	page, err := decodePage[domain.Building, wireBuilding]("/buildings", env)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// Analytics fetches aggregates for one building, or all buildings when
// buildingID is nil. An empty period lets the backend pick its default.
func (c *Client) Analytics(ctx context.Context, buildingID *int64, period string) (*domain.AnalyticsData, error) {
	params := url.Values{}
	if buildingID != nil {
		params.Set("buildingId", strconv.FormatInt(*buildingID, 10))
	}
	if period = strings.TrimSpace(period); period != "" {
		params.Set("period", period)
	}
	env, err := c.get(ctx, "/analytics", params)
	if err != nil {
		return nil, err
	}
	var w wireAnalytics
	if err := decodeObject("/analytics", env, &w); err != nil {
		return nil, err
	}
	out := w.domain()
	return &out, nil
}

// get shares one round trip between concurrent callers asking for the same
// URL. The shared request is detached from any single caller's cancellation
// and bounded by the client timeout instead.
func (c *Client) get(ctx context.Context, path string, params url.Values) (*envelope, error) {
	key := path
	if len(params) > 0 {
		key += "?" + params.Encode()
	}
	ch := c.group.DoChan(key, func() (any, error) {
		return c.do(context.WithoutCancel(ctx), http.MethodGet, path, params, nil)
	})
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: GET %s: %v", ErrTransport, path, ctx.Err())
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*envelope), nil
	}
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any) (*envelope, error) {
	status, raw, err := c.send(ctx, method, path, params, body)
	if err != nil {
		return nil, err
	}
	return parseEnvelope(method, path, status, raw)
}

func (c *Client) send(ctx context.Context, method, path string, params url.Values, body any) (int, []byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s %s: read body: %v", ErrTransport, method, path, err)
	}
	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("backend call")
	return resp.StatusCode, raw, nil
}
