package metrics

import (
	"time"

	"github.com/ANIKETSHETTY47/energy-admin-console/internal/domain"
)

// Scope tells the reader whether a statistic covers only the records on the
// current page or the whole system.
type Scope string

const (
	ScopePage   Scope = "page"
	ScopeSystem Scope = "system"
)

type EquipmentStats struct {
	Scope                 Scope                          `json:"scope"`
	Total                 int                            `json:"total"`
	Sampled               int                            `json:"sampled"`
	ByStatus              map[domain.EquipmentStatus]int `json:"byStatus"`
	ByHealth              map[HealthBucket]int           `json:"byHealth"`
	ByUrgency             map[UrgencyLevel]int           `json:"byUrgency"`
	AverageConditionScore float64                        `json:"averageConditionScore"`
	CriticalAlerts        int                            `json:"criticalAlerts"`
	EquipmentWithAlerts   int                            `json:"equipmentWithAlerts"`
}

// EquipmentStatsOf aggregates items. total is the backend's total count when
// known; zero falls back to len(items). alerts are cross-referenced by
// equipment id, and only active critical or high severity ones count.
func EquipmentStatsOf(items []domain.Equipment, alerts []domain.Alert, total int, scope Scope, now time.Time) EquipmentStats {
	s := EquipmentStats{
		Scope:     scope,
		Total:     total,
		Sampled:   len(items),
		ByStatus:  map[domain.EquipmentStatus]int{},
		ByHealth:  map[HealthBucket]int{},
		ByUrgency: map[UrgencyLevel]int{},
	}
	if s.Total <= 0 {
		s.Total = len(items)
	}
	if len(items) == 0 {
		return s
	}

	present := make(map[int64]struct{}, len(items))
	var sum float64
	for _, e := range items {
		present[e.ID] = struct{}{}
		s.ByStatus[e.Status]++

		h := HealthOf(e.ConditionScore)
		sum += h.Score
		s.ByHealth[h.Bucket]++
		s.ByUrgency[UrgencyOf(e, now).Level]++
	}
	s.AverageConditionScore = sum / float64(len(items))

	flagged := map[int64]struct{}{}
	for _, a := range alerts {
		if !IsCriticalActive(a) || a.EquipmentID == nil {
			continue
		}
		if _, ok := present[*a.EquipmentID]; !ok {
			continue
		}
		s.CriticalAlerts++
		flagged[*a.EquipmentID] = struct{}{}
	}
	s.EquipmentWithAlerts = len(flagged)
	return s
}

// IsCriticalActive is true for active alerts of high or critical severity.
func IsCriticalActive(a domain.Alert) bool {
	return a.Status == domain.AlertActive &&
		(a.Severity == domain.SeverityCritical || a.Severity == domain.SeverityHigh)
}

// AlertsByEquipment indexes active critical/high alerts per equipment id.
func AlertsByEquipment(alerts []domain.Alert) map[int64]int {
	out := map[int64]int{}
	for _, a := range alerts {
		if a.EquipmentID != nil && IsCriticalActive(a) {
			out[*a.EquipmentID]++
		}
	}
	return out
}

type AlertStats struct {
	Scope                    Scope                      `json:"scope"`
	Total                    int                        `json:"total"`
	Sampled                  int                        `json:"sampled"`
	ByStatus                 map[domain.AlertStatus]int `json:"byStatus"`
	BySeverity               map[domain.Severity]int    `json:"bySeverity"`
	Open                     int                        `json:"open"`
	CriticalActive           int                        `json:"criticalActive"`
	MeanTimeToAcknowledgeMin float64                    `json:"meanTimeToAcknowledgeMinutes"`
}

// AlertStatsOf counts alerts by status and severity. A non-positive total
// falls back to len(alerts).
func AlertStatsOf(alerts []domain.Alert, total int, scope Scope) AlertStats {
	s := AlertStats{
		Scope:      scope,
		Total:      total,
		Sampled:    len(alerts),
		ByStatus:   map[domain.AlertStatus]int{},
		BySeverity: map[domain.Severity]int{},
	}
	if s.Total <= 0 {
		s.Total = len(alerts)
	}

	var ackSum time.Duration
	var acked int
	for _, a := range alerts {
		s.ByStatus[a.Status]++
		s.BySeverity[a.Severity]++
		if a.IsOpen() {
			s.Open++
		}
		if a.Status == domain.AlertActive && a.Severity == domain.SeverityCritical {
			s.CriticalActive++
		}
		if a.AcknowledgedAt != nil && !a.CreatedAt.IsZero() && a.AcknowledgedAt.After(a.CreatedAt) {
			ackSum += a.AcknowledgedAt.Sub(a.CreatedAt)
			acked++
		}
	}
	if acked > 0 {
		s.MeanTimeToAcknowledgeMin = (ackSum / time.Duration(acked)).Minutes()
	}
	return s
}
