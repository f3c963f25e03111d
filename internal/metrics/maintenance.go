package metrics

import (
	"time"

	"github.com/ANIKETSHETTY47/energy-admin-console/internal/domain"
)

type UrgencyLevel string

const (
	UrgencyOverdue  UrgencyLevel = "overdue"
	UrgencyCritical UrgencyLevel = "critical"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyMedium   UrgencyLevel = "medium"
	UrgencyLow      UrgencyLevel = "low"
	UrgencyUnknown  UrgencyLevel = "unknown"
)

const (
	criticalWithinDays = 3
	highWithinDays     = 7
	mediumWithinDays   = 14

	day = 24 * time.Hour
)

// Urgency describes how soon maintenance is due. Days is always >= 0: days
// remaining for upcoming work, days late when Level is overdue.
type Urgency struct {
	Level UrgencyLevel `json:"level"`
	Days  int          `json:"days"`
	Due   *time.Time   `json:"due,omitempty"`
}

// NextMaintenanceDue picks the due date in order of preference: the explicit
// next date, last maintenance + interval, installation + interval. It
// returns nil when none can be derived.
func NextMaintenanceDue(e domain.Equipment) *time.Time {
	if e.NextMaintenanceDate != nil {
		due := dateOf(*e.NextMaintenanceDate)
		return &due
	}
	if e.MaintenanceIntervalDays == nil || *e.MaintenanceIntervalDays <= 0 {
		return nil
	}
	interval := *e.MaintenanceIntervalDays

	base := e.LastMaintenanceDate
	if base == nil {
		base = e.InstallationDate
	}
	if base == nil {
		return nil
	}
	due := dateOf(*base).AddDate(0, 0, interval)
	return &due
}

// UrgencyOf buckets the distance between now and the next due date.
func UrgencyOf(e domain.Equipment, now time.Time) Urgency {
	due := NextMaintenanceDue(e)
	if due == nil {
		return Urgency{Level: UrgencyUnknown}
	}
	days := DaysBetween(now, *due)
	return Urgency{Level: levelFor(days), Days: abs(days), Due: due}
}

// DaysBetween counts whole calendar days from a to b in UTC; negative when b
// is before a.
func DaysBetween(a, b time.Time) int {
	return int(dateOf(b).Sub(dateOf(a)) / day)
}

func levelFor(days int) UrgencyLevel {
	switch {
	case days < 0:
		return UrgencyOverdue
	case days <= criticalWithinDays:
		return UrgencyCritical
	case days <= highWithinDays:
		return UrgencyHigh
	case days <= mediumWithinDays:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// AgeYears is the time since installation in fractional years. Absent or
// future installation dates give 0.
func AgeYears(e domain.Equipment, now time.Time) float64 {
	if e.InstallationDate == nil {
		return 0
	}
	elapsed := now.Sub(*e.InstallationDate)
	if elapsed <= 0 {
		return 0
	}
	return elapsed.Hours() / (24 * 365.25)
}

// WarrantyActive reports whether the warranty is still running at now.
func WarrantyActive(e domain.Equipment, now time.Time) bool {
	return e.WarrantyExpiry != nil && now.Before(*e.WarrantyExpiry)
}

func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
