package domain

import "strings"

type AlertType string

const (
	AlertEnergySpike     AlertType = "energy_spike"
	AlertEquipmentFault  AlertType = "equipment_fault"
	AlertMaintenanceDue  AlertType = "maintenance_due"
	AlertEfficiencyDrop  AlertType = "efficiency_drop"
	AlertThresholdBreach AlertType = "threshold_breach"
	AlertSystemError     AlertType = "system_error"
	AlertAnomaly         AlertType = "anomaly"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type AlertStatus string

const (
	AlertActive       AlertStatus = "active"
	AlertAcknowledged AlertStatus = "acknowledged"
	AlertResolved     AlertStatus = "resolved"
	AlertEscalated    AlertStatus = "escalated"
	AlertClosed       AlertStatus = "closed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type EquipmentType string

const (
	EquipmentHVAC          EquipmentType = "hvac"
	EquipmentLighting      EquipmentType = "lighting"
	EquipmentElectrical    EquipmentType = "electrical"
	EquipmentManufacturing EquipmentType = "manufacturing"
	EquipmentSecurity      EquipmentType = "security"
	EquipmentOther         EquipmentType = "other"
)

type EquipmentStatus string

const (
	EquipmentActive      EquipmentStatus = "active"
	EquipmentMaintenance EquipmentStatus = "maintenance"
	EquipmentFaulty      EquipmentStatus = "faulty"
	EquipmentInactive    EquipmentStatus = "inactive"
)

// legacyEquipmentTypes maps the older page revision's enumeration onto the
// canonical one.
var legacyEquipmentTypes = map[string]EquipmentType{
	"motor":       EquipmentElectrical,
	"transformer": EquipmentElectrical,
	"panel":       EquipmentElectrical,
	"ups":         EquipmentElectrical,
	"generator":   EquipmentElectrical,
	"others":      EquipmentOther,
}

// NormalizeEquipmentType lower-cases raw and folds legacy values. Anything
// unrecognized becomes EquipmentOther.
func NormalizeEquipmentType(raw string) EquipmentType {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch t := EquipmentType(v); t {
	case EquipmentHVAC, EquipmentLighting, EquipmentElectrical,
		EquipmentManufacturing, EquipmentSecurity, EquipmentOther:
		return t
	}
	if t, ok := legacyEquipmentTypes[v]; ok {
		return t
	}
	return EquipmentOther
}

// Valid reports whether s is one of the four known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

func (s AlertStatus) Valid() bool {
	switch s {
	case AlertActive, AlertAcknowledged, AlertResolved, AlertEscalated, AlertClosed:
		return true
	}
	return false
}

func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentActive, EquipmentMaintenance, EquipmentFaulty, EquipmentInactive:
		return true
	}
	return false
}

func (t AlertType) Valid() bool {
	_, ok := alertTypeOptions[t]
	return ok
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
