// Package query turns list-page filter selections into the parameter set the
// platform list endpoints expect.
//
// The backend treats the presence of a key as "filter active", so unset
// selections are omitted entirely rather than sent empty.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	SortAsc  = "ASC"
	SortDesc = "DESC"

	MaxLimit = 100
)

// Filters is the raw UI state of a list page. Every string field may be empty
// or whitespace, meaning "unset".
type Filters struct {
	Search     string `json:"search,omitempty"`
	Type       string `json:"type,omitempty"`
	Severity   string `json:"severity,omitempty"`
	Status     string `json:"status,omitempty"`
	BuildingID string `json:"buildingId,omitempty"`
	Priority   string `json:"priority,omitempty"`
	Page       int    `json:"page,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	SortBy     string `json:"sortBy,omitempty"`
	SortOrder  string `json:"sortOrder,omitempty"`
}

// Defaults fills the mandatory pagination and sort fields.
type Defaults struct {
	Limit     int
	SortBy    string
	SortOrder string
}

var (
	AlertDefaults     = Defaults{Limit: 15, SortBy: "created_at", SortOrder: SortDesc}
	EquipmentDefaults = Defaults{Limit: 15, SortBy: "name", SortOrder: SortAsc}
)

// Params is the normalized request. Optional filters are nil when unset.
type Params struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string

	Search     *string
	Type       *string
	Severity   *string
	Status     *string
	BuildingID *int64
	Priority   *string
}

// Build normalizes f. It never fails and holds no state, so equal inputs
// always yield deep-equal Params.
func Build(f Filters, d Defaults) Params {
	p := Params{
		Page:      f.Page,
		Limit:     f.Limit,
		SortBy:    strings.TrimSpace(f.SortBy),
		SortOrder: normalizeOrder(f.SortOrder),
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = d.Limit
	}
	if p.Limit <= 0 {
		p.Limit = AlertDefaults.Limit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.SortBy == "" {
		p.SortBy = d.SortBy
	}
	if p.SortOrder == "" {
		p.SortOrder = normalizeOrder(d.SortOrder)
	}
	if p.SortOrder == "" {
		p.SortOrder = SortDesc
	}

	p.Search = text(f.Search)
	p.Type = enum(f.Type)
	p.Severity = enum(f.Severity)
	p.Status = enum(f.Status)
	p.Priority = enum(f.Priority)
	p.BuildingID = id(f.BuildingID)
	return p
}

// Values encodes p using the backend's query parameter names. Only set keys
// are emitted.
func (p Params) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(p.Page))
	v.Set("limit", strconv.Itoa(p.Limit))
	if p.SortBy != "" {
		v.Set("sortBy", p.SortBy)
	}
	if p.SortOrder != "" {
		v.Set("sortOrder", p.SortOrder)
	}
	setString(v, "search", p.Search)
	setString(v, "type", p.Type)
	setString(v, "severity", p.Severity)
	setString(v, "status", p.Status)
	if p.BuildingID != nil {
		v.Set("buildingId", strconv.FormatInt(*p.BuildingID, 10))
	}
	setString(v, "priority", p.Priority)
	return v
}

// Parse reads a query string produced by Values (or typed by a user) back
// into Filters. Malformed numbers are treated as unset.
func Parse(v url.Values) Filters {
	f := Filters{
		Search:     v.Get("search"),
		Type:       v.Get("type"),
		Severity:   v.Get("severity"),
		Status:     v.Get("status"),
		BuildingID: v.Get("buildingId"),
		Priority:   v.Get("priority"),
		SortBy:     v.Get("sortBy"),
		SortOrder:  v.Get("sortOrder"),
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v.Get("page"))); err == nil {
		f.Page = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v.Get("limit"))); err == nil {
		f.Limit = n
	}
	return f
}

// Filters converts p back into UI state.
func (p Params) Filters() Filters {
	f := Filters{
		Page:      p.Page,
		Limit:     p.Limit,
		SortBy:    p.SortBy,
		SortOrder: p.SortOrder,
		Search:    deref(p.Search),
		Type:      deref(p.Type),
		Severity:  deref(p.Severity),
		Status:    deref(p.Status),
		Priority:  deref(p.Priority),
	}
	if p.BuildingID != nil {
		f.BuildingID = strconv.FormatInt(*p.BuildingID, 10)
	}
	return f
}

// ResetPage returns next with Page set to 1 when any selection other than
// the page itself differs from prev.
func ResetPage(prev, next Filters) Filters {
	a, b := prev, next
	a.Page, b.Page = 0, 0
	if a != b {
		next.Page = 1
	}
	return next
}

func normalizeOrder(s string) string {
	switch o := strings.ToUpper(strings.TrimSpace(s)); o {
	case SortAsc, SortDesc:
		return o
	}
	return ""
}

func text(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func enum(s string) *string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "all" {
		return nil
	}
	return &s
}

func id(s string) *int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

func setString(v url.Values, key string, s *string) {
	if s != nil && *s != "" {
		v.Set(key, *s)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
