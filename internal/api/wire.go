package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/ANIKETSHETTY47/energy-admin-console/internal/domain"
)

// The wire types below accept what the backend actually sends (numbers as
// strings, date-only strings, nulls) and are converted once into domain
// types. Unreadable optional values become absent rather than errors.

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

type flexTime struct{ v *time.Time }

func (f *flexTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			f.v = &t
			return nil
		}
	}
	return nil
}

type flexFloat struct{ v *float64 }

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if n, err := strconv.ParseFloat(string(b), 64); err == nil {
		f.v = &n
	}
	return nil
}

type flexInt struct{ v *int64 }

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if n, err := strconv.ParseInt(string(b), 10, 64); err == nil {
		f.v = &n
		return nil
	}
	if n, err := strconv.ParseFloat(string(b), 64); err == nil && n == float64(int64(n)) {
		i := int64(n)
		f.v = &i
	}
	return nil
}

func (f flexInt) int() *int {
	if f.v == nil {
		return nil
	}
	n := int(*f.v)
	return &n
}

func (f flexInt) or(d int64) int64 {
	if f.v == nil {
		return d
	}
	return *f.v
}

func (f flexFloat) or(d float64) float64 {
	if f.v == nil {
		return d
	}
	return *f.v
}

func lower(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

type wireBuilding struct {
	ID     flexInt `json:"id"`
	Name   string  `json:"name"`
	Code   string  `json:"code"`
	Status string  `json:"status"`
	Type   string  `json:"type"`
}

func (w wireBuilding) domain() (domain.Building, bool) {
	if w.ID.v == nil {
		return domain.Building{}, false
	}
	return domain.Building{
		ID:     *w.ID.v,
		Name:   w.Name,
		Code:   w.Code,
		Status: lower(w.Status),
		Type:   lower(w.Type),
	}, true
}

type wireAlert struct {
	ID              flexInt  `json:"id"`
	Title           string   `json:"title"`
	Message         string   `json:"message"`
	Type            string   `json:"type"`
	Severity        string   `json:"severity"`
	Status          string   `json:"status"`
	Priority        string   `json:"priority"`
	BuildingID      flexInt  `json:"building_id"`
	EquipmentID     flexInt  `json:"equipment_id"`
	EscalationLevel flexInt  `json:"escalation_level"`
	Tags            []string `json:"tags"`
	ResolutionNotes string   `json:"resolution_notes"`
	CreatedAt       flexTime `json:"created_at"`
	AcknowledgedAt  flexTime `json:"acknowledged_at"`
	ResolvedAt      flexTime `json:"resolved_at"`
}

func (w wireAlert) domain() (domain.Alert, bool) {
	if w.ID.v == nil {
		return domain.Alert{}, false
	}
	a := domain.Alert{
		ID:              *w.ID.v,
		Title:           w.Title,
		Message:         w.Message,
		Type:            domain.AlertType(lower(w.Type)),
		Severity:        domain.Severity(lower(w.Severity)),
		Status:          domain.AlertStatus(lower(w.Status)),
		Priority:        domain.Priority(lower(w.Priority)),
		BuildingID:      w.BuildingID.v,
		EquipmentID:     w.EquipmentID.v,
		EscalationLevel: w.EscalationLevel.int(),
		Tags:            w.Tags,
		ResolutionNotes: w.ResolutionNotes,
		AcknowledgedAt:  w.AcknowledgedAt.v,
		ResolvedAt:      w.ResolvedAt.v,
	}
	if w.CreatedAt.v != nil {
		a.CreatedAt = *w.CreatedAt.v
	}
	return a, true
}

type wireEquipment struct {
	ID                      flexInt   `json:"id"`
	Name                    string    `json:"name"`
	Code                    string    `json:"code"`
	Type                    string    `json:"type"`
	Status                  string    `json:"status"`
	Manufacturer            string    `json:"manufacturer"`
	Model                   string    `json:"model"`
	SerialNumber            string    `json:"serial_number"`
	PowerRatingKW           flexFloat `json:"power_rating_kw"`
	VoltageRating           flexFloat `json:"voltage_rating"`
	CurrentRating           flexFloat `json:"current_rating"`
	BuildingID              flexInt   `json:"building_id"`
	Floor                   string    `json:"floor"`
	Room                    string    `json:"room"`
	ConditionScore          flexFloat `json:"condition_score"`
	MaintenanceIntervalDays flexInt   `json:"maintenance_interval_days"`
	InstallationDate        flexTime  `json:"installation_date"`
	WarrantyExpiry          flexTime  `json:"warranty_expiry"`
	LastMaintenanceDate     flexTime  `json:"last_maintenance_date"`
	NextMaintenanceDate     flexTime  `json:"next_maintenance_date"`
}

func (w wireEquipment) domain() (domain.Equipment, bool) {
	if w.ID.v == nil {
		return domain.Equipment{}, false
	}
	return domain.Equipment{
		ID:                      *w.ID.v,
		Name:                    w.Name,
		Code:                    w.Code,
		Type:                    domain.NormalizeEquipmentType(w.Type),
		Status:                  domain.EquipmentStatus(lower(w.Status)),
		Manufacturer:            w.Manufacturer,
		Model:                   w.Model,
		SerialNumber:            w.SerialNumber,
		PowerRatingKW:           w.PowerRatingKW.v,
		VoltageRating:           w.VoltageRating.v,
		CurrentRating:           w.CurrentRating.v,
		BuildingID:              w.BuildingID.v,
		Floor:                   w.Floor,
		Room:                    w.Room,
		ConditionScore:          w.ConditionScore.v,
		MaintenanceIntervalDays: w.MaintenanceIntervalDays.int(),
		InstallationDate:        w.InstallationDate.v,
		WarrantyExpiry:          w.WarrantyExpiry.v,
		LastMaintenanceDate:     w.LastMaintenanceDate.v,
		NextMaintenanceDate:     w.NextMaintenanceDate.v,
	}, true
}

type wireMaintenance struct {
	ID              flexInt   `json:"id"`
	EquipmentID     flexInt   `json:"equipment_id"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	ScheduledDate   flexTime  `json:"scheduled_date"`
	CompletedDate   flexTime  `json:"completed_date"`
	Cost            flexFloat `json:"cost"`
	DowntimeMinutes flexInt   `json:"downtime_minutes"`
	Notes           string    `json:"notes"`
}

func (w wireMaintenance) domain() (domain.MaintenanceRecord, bool) {
	if w.EquipmentID.v == nil {
		return domain.MaintenanceRecord{}, false
	}
	return domain.MaintenanceRecord{
		ID:              w.ID.or(0),
		EquipmentID:     *w.EquipmentID.v,
		Type:            lower(w.Type),
		Status:          lower(w.Status),
		ScheduledDate:   w.ScheduledDate.v,
		CompletedDate:   w.CompletedDate.v,
		Cost:            w.Cost.or(0),
		DowntimeMinutes: int(w.DowntimeMinutes.or(0)),
		Notes:           w.Notes,
	}, true
}

type wireAnomaly struct {
	ID          json.RawMessage `json:"id"`
	BuildingID  flexInt         `json:"building_id"`
	Type        string          `json:"type"`
	Severity    string          `json:"severity"`
	Description string          `json:"description"`
	DetectedAt  flexTime        `json:"detected_at"`
	Value       flexFloat       `json:"value"`
	Expected    flexFloat       `json:"expected"`
	Deviation   flexFloat       `json:"deviation"`
}

func (w wireAnomaly) domain() domain.Anomaly {
	a := domain.Anomaly{
		ID:          rawID(w.ID),
		BuildingID:  w.BuildingID.v,
		Type:        lower(w.Type),
		Severity:    domain.Severity(lower(w.Severity)),
		Description: w.Description,
		Value:       w.Value.or(0),
		Expected:    w.Expected.or(0),
		Deviation:   w.Deviation.or(0),
	}
	if w.DetectedAt.v != nil {
		a.DetectedAt = *w.DetectedAt.v
	}
	return a
}

type wireOpportunity struct {
	ID                   json.RawMessage `json:"id"`
	BuildingID           flexInt         `json:"building_id"`
	Category             string          `json:"category"`
	Title                string          `json:"title"`
	Description          string          `json:"description"`
	PotentialSavingsKWh  flexFloat       `json:"potential_savings_kwh"`
	EstimatedSavingsCost flexFloat       `json:"estimated_savings_cost"`
	ImplementationCost   flexFloat       `json:"implementation_cost"`
	PaybackMonths        flexFloat       `json:"payback_months"`
	Priority             string          `json:"priority"`
}

func (w wireOpportunity) domain() domain.EfficiencyOpportunity {
	return domain.EfficiencyOpportunity{
		ID:                   rawID(w.ID),
		BuildingID:           w.BuildingID.v,
		Category:             lower(w.Category),
		Title:                w.Title,
		Description:          w.Description,
		PotentialSavingsKWh:  w.PotentialSavingsKWh.or(0),
		EstimatedSavingsCost: w.EstimatedSavingsCost.or(0),
		ImplementationCost:   w.ImplementationCost.v,
		PaybackMonths:        w.PaybackMonths.v,
		Priority:             domain.Priority(lower(w.Priority)),
	}
}

type wireAnalytics struct {
	Period                  string            `json:"period"`
	TotalConsumptionKWh     flexFloat         `json:"total_consumption_kwh"`
	TotalCost               flexFloat         `json:"total_cost"`
	AverageDemandKW         flexFloat         `json:"average_demand_kw"`
	PeakDemandKW            flexFloat         `json:"peak_demand_kw"`
	EfficiencyScore         flexFloat         `json:"efficiency_score"`
	CarbonFootprintKg       flexFloat         `json:"carbon_footprint_kg"`
	Anomalies               []json.RawMessage `json:"anomalies"`
	EfficiencyOpportunities []json.RawMessage `json:"efficiency_opportunities"`
}

func (w wireAnalytics) domain() domain.AnalyticsData {
	out := domain.AnalyticsData{
		Period:                  w.Period,
		TotalConsumptionKWh:     w.TotalConsumptionKWh.or(0),
		TotalCost:               w.TotalCost.or(0),
		AverageDemandKW:         w.AverageDemandKW.or(0),
		PeakDemandKW:            w.PeakDemandKW.or(0),
		EfficiencyScore:         w.EfficiencyScore.or(0),
		CarbonFootprintKg:       w.CarbonFootprintKg.or(0),
		Anomalies:               []domain.Anomaly{},
		EfficiencyOpportunities: []domain.EfficiencyOpportunity{},
	}
	for _, raw := range w.Anomalies {
		var a wireAnomaly
		if json.Unmarshal(raw, &a) == nil {
			out.Anomalies = append(out.Anomalies, a.domain())
		}
	}
	for _, raw := range w.EfficiencyOpportunities {
		var o wireOpportunity
		if json.Unmarshal(raw, &o) == nil {
			out.EfficiencyOpportunities = append(out.EfficiencyOpportunities, o.domain())
		}
	}
	return out
}

// rawID accepts string or numeric identifiers.
func rawID(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return strings.TrimSpace(string(bytes.Trim(raw, `"`)))
}

// AlertStatistics is the system-wide summary from /alerts/statistics.
type AlertStatistics struct {
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"byStatus"`
	BySeverity     map[string]int `json:"bySeverity"`
	CriticalActive int            `json:"criticalActive"`
}

// EquipmentStatistics is the system-wide summary from /equipment/statistics.
type EquipmentStatistics struct {
	Total                 int            `json:"total"`
	ByStatus              map[string]int `json:"byStatus"`
	AverageConditionScore *float64       `json:"averageConditionScore"`
	CriticalAlerts        int            `json:"criticalAlerts"`
}
