package domain

// Option is a display entry for an enum value.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
}

var unknownOption = Option{Value: "unknown", Label: "Unknown", Color: "default"}

// The tables are never written after init; accessors hand out copies.
var (
	severityOptions = map[Severity]Option{
		SeverityLow:      {Value: "low", Label: "Low", Color: "blue"},
		SeverityMedium:   {Value: "medium", Label: "Medium", Color: "orange"},
		SeverityHigh:     {Value: "high", Label: "High", Color: "red"},
		SeverityCritical: {Value: "critical", Label: "Critical", Color: "magenta"},
	}

	alertStatusOptions = map[AlertStatus]Option{
		AlertActive:       {Value: "active", Label: "Active", Color: "red"},
		AlertAcknowledged: {Value: "acknowledged", Label: "Acknowledged", Color: "orange"},
		AlertResolved:     {Value: "resolved", Label: "Resolved", Color: "green"},
		AlertEscalated:    {Value: "escalated", Label: "Escalated", Color: "purple"},
		AlertClosed:       {Value: "closed", Label: "Closed", Color: "default"},
	}

	alertTypeOptions = map[AlertType]Option{
		AlertEnergySpike:     {Value: "energy_spike", Label: "Energy Spike", Color: "volcano"},
		AlertEquipmentFault:  {Value: "equipment_fault", Label: "Equipment Fault", Color: "red"},
		AlertMaintenanceDue:  {Value: "maintenance_due", Label: "Maintenance Due", Color: "gold"},
		AlertEfficiencyDrop:  {Value: "efficiency_drop", Label: "Efficiency Drop", Color: "orange"},
		AlertThresholdBreach: {Value: "threshold_breach", Label: "Threshold Breach", Color: "magenta"},
		AlertSystemError:     {Value: "system_error", Label: "System Error", Color: "purple"},
		AlertAnomaly:         {Value: "anomaly", Label: "Anomaly", Color: "cyan"},
	}

	priorityOptions = map[Priority]Option{
		PriorityLow:    {Value: "low", Label: "Low", Color: "default"},
		PriorityMedium: {Value: "medium", Label: "Medium", Color: "blue"},
		PriorityHigh:   {Value: "high", Label: "High", Color: "orange"},
		PriorityUrgent: {Value: "urgent", Label: "Urgent", Color: "red"},
	}

	equipmentTypeOptions = map[EquipmentType]Option{
		EquipmentHVAC:          {Value: "hvac", Label: "HVAC", Color: "blue"},
		EquipmentLighting:      {Value: "lighting", Label: "Lighting", Color: "gold"},
		EquipmentElectrical:    {Value: "electrical", Label: "Electrical", Color: "volcano"},
		EquipmentManufacturing: {Value: "manufacturing", Label: "Manufacturing", Color: "geekblue"},
		EquipmentSecurity:      {Value: "security", Label: "Security", Color: "purple"},
		EquipmentOther:         {Value: "other", Label: "Other", Color: "default"},
	}

	equipmentStatusOptions = map[EquipmentStatus]Option{
		EquipmentActive:      {Value: "active", Label: "Active", Color: "green"},
		EquipmentMaintenance: {Value: "maintenance", Label: "Maintenance", Color: "orange"},
		EquipmentFaulty:      {Value: "faulty", Label: "Faulty", Color: "red"},
		EquipmentInactive:    {Value: "inactive", Label: "Inactive", Color: "default"},
	}
)

func lookup[K comparable](table map[K]Option, k K) Option {
	if o, ok := table[k]; ok {
		return o
	}
	return unknownOption
}

func SeverityOption(s Severity) Option               { return lookup(severityOptions, s) }
func AlertStatusOption(s AlertStatus) Option         { return lookup(alertStatusOptions, s) }
func AlertTypeOption(t AlertType) Option             { return lookup(alertTypeOptions, t) }
func PriorityOption(p Priority) Option               { return lookup(priorityOptions, p) }
func EquipmentTypeOption(t EquipmentType) Option     { return lookup(equipmentTypeOptions, t) }
func EquipmentStatusOption(s EquipmentStatus) Option { return lookup(equipmentStatusOptions, s) }

// Catalog lists every option table for filter dropdowns, in display order.
type Catalog struct {
	AlertTypes        []Option `json:"alertTypes"`
	Severities        []Option `json:"severities"`
	AlertStatuses     []Option `json:"alertStatuses"`
	Priorities        []Option `json:"priorities"`
	EquipmentTypes    []Option `json:"equipmentTypes"`
	EquipmentStatuses []Option `json:"equipmentStatuses"`
}

func OptionCatalog() Catalog {
	return Catalog{
		AlertTypes: ordered(alertTypeOptions, []AlertType{
			AlertEnergySpike, AlertEquipmentFault, AlertMaintenanceDue, AlertEfficiencyDrop,
			AlertThresholdBreach, AlertSystemError, AlertAnomaly,
		}),
		Severities: ordered(severityOptions, []Severity{
			SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical,
		}),
		AlertStatuses: ordered(alertStatusOptions, []AlertStatus{
			AlertActive, AlertAcknowledged, AlertResolved, AlertEscalated, AlertClosed,
		}),
		Priorities: ordered(priorityOptions, []Priority{
			PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent,
		}),
		EquipmentTypes: ordered(equipmentTypeOptions, []EquipmentType{
			EquipmentHVAC, EquipmentLighting, EquipmentElectrical,
			EquipmentManufacturing, EquipmentSecurity, EquipmentOther,
		}),
		EquipmentStatuses: ordered(equipmentStatusOptions, []EquipmentStatus{
			EquipmentActive, EquipmentMaintenance, EquipmentFaulty, EquipmentInactive,
		}),
	}
}

func ordered[K comparable](table map[K]Option, keys []K) []Option {
	out := make([]Option, 0, len(keys))
	for _, k := range keys {
		out = append(out, table[k])
	}
	return out
}
