package domain

import "time"

// Entities below are owned by the platform backend. The console only reads
// them; optional fields are pointers so a missing value stays distinguishable
// from a zero one.

type Building struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code"`
	Status string `json:"status"`
	Type   string `json:"type"`
}

type Alert struct {
	ID              int64       `json:"id"`
	Title           string      `json:"title"`
	Message         string      `json:"message"`
	Type            AlertType   `json:"type"`
	Severity        Severity    `json:"severity"`
	Status          AlertStatus `json:"status"`
	Priority        Priority    `json:"priority"`
	BuildingID      *int64      `json:"building_id,omitempty"`
	EquipmentID     *int64      `json:"equipment_id,omitempty"`
	EscalationLevel *int        `json:"escalation_level,omitempty"`
	Tags            []string    `json:"tags,omitempty"`
	ResolutionNotes string      `json:"resolution_notes,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	AcknowledgedAt  *time.Time  `json:"acknowledged_at,omitempty"`
	ResolvedAt      *time.Time  `json:"resolved_at,omitempty"`
}

type Equipment struct {
	ID                      int64           `json:"id"`
	Name                    string          `json:"name"`
	Code                    string          `json:"code"`
	Type                    EquipmentType   `json:"type"`
	Status                  EquipmentStatus `json:"status"`
	Manufacturer            string          `json:"manufacturer,omitempty"`
	Model                   string          `json:"model,omitempty"`
	SerialNumber            string          `json:"serial_number,omitempty"`
	PowerRatingKW           *float64        `json:"power_rating_kw,omitempty"`
	VoltageRating           *float64        `json:"voltage_rating,omitempty"`
	CurrentRating           *float64        `json:"current_rating,omitempty"`
	BuildingID              *int64          `json:"building_id,omitempty"`
	Floor                   string          `json:"floor,omitempty"`
	Room                    string          `json:"room,omitempty"`
	ConditionScore          *float64        `json:"condition_score,omitempty"`
	MaintenanceIntervalDays *int            `json:"maintenance_interval_days,omitempty"`
	InstallationDate        *time.Time      `json:"installation_date,omitempty"`
	WarrantyExpiry          *time.Time      `json:"warranty_expiry,omitempty"`
	LastMaintenanceDate     *time.Time      `json:"last_maintenance_date,omitempty"`
	NextMaintenanceDate     *time.Time      `json:"next_maintenance_date,omitempty"`
}

type MaintenanceRecord struct {
	ID              int64      `json:"id"`
	EquipmentID     int64      `json:"equipment_id"`
	Type            string     `json:"type"`
	Status          string     `json:"status"`
	ScheduledDate   *time.Time `json:"scheduled_date,omitempty"`
	CompletedDate   *time.Time `json:"completed_date,omitempty"`
	Cost            float64    `json:"cost"`
	DowntimeMinutes int        `json:"downtime_minutes"`
	Notes           string     `json:"notes,omitempty"`
}

// Anomaly, EfficiencyOpportunity and AnalyticsData come from the analytics
// endpoint and are rendered as-is.

type Anomaly struct {
	ID          string    `json:"id"`
	BuildingID  *int64    `json:"building_id,omitempty"`
	Type        string    `json:"type"`
	Severity    Severity  `json:"severity"`
	Description string    `json:"description"`
	DetectedAt  time.Time `json:"detected_at"`
	Value       float64   `json:"value"`
	Expected    float64   `json:"expected"`
	Deviation   float64   `json:"deviation"`
}

type EfficiencyOpportunity struct {
	ID                   string   `json:"id"`
	BuildingID           *int64   `json:"building_id,omitempty"`
	Category             string   `json:"category"`
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	PotentialSavingsKWh  float64  `json:"potential_savings_kwh"`
	EstimatedSavingsCost float64  `json:"estimated_savings_cost"`
	ImplementationCost   *float64 `json:"implementation_cost,omitempty"`
	PaybackMonths        *float64 `json:"payback_months,omitempty"`
	Priority             Priority `json:"priority"`
}

type AnalyticsData struct {
	Period                  string                  `json:"period"`
	TotalConsumptionKWh     float64                 `json:"total_consumption_kwh"`
	TotalCost               float64                 `json:"total_cost"`
	AverageDemandKW         float64                 `json:"average_demand_kw"`
	PeakDemandKW            float64                 `json:"peak_demand_kw"`
	EfficiencyScore         float64                 `json:"efficiency_score"`
	CarbonFootprintKg       float64                 `json:"carbon_footprint_kg"`
	Anomalies               []Anomaly               `json:"anomalies"`
	EfficiencyOpportunities []EfficiencyOpportunity `json:"efficiency_opportunities"`
}

// Pagination mirrors the optional pagination block of list responses.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	PerPage     int  `json:"perPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}
