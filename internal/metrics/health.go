// Package metrics derives display values from records already fetched from
// the platform API. Every function is pure and total: missing or malformed
// fields fall back to documented defaults instead of failing.
package metrics

import "math"

// DefaultConditionScore is used when a record carries no condition score.
// It is a display policy, not a measurement: 85 lands in the "good" bucket.
const DefaultConditionScore = 85.0

type HealthBucket string

const (
	HealthExcellent HealthBucket = "excellent"
	HealthGood      HealthBucket = "good"
	HealthFair      HealthBucket = "fair"
	HealthPoor      HealthBucket = "poor"
	HealthCritical  HealthBucket = "critical"
)

// Health is the display form of a condition score.
type Health struct {
	Score     float64      `json:"score"`
	Bucket    HealthBucket `json:"bucket"`
	Color     string       `json:"color"`
	Defaulted bool         `json:"defaulted"`
}

var healthColors = map[HealthBucket]string{
	HealthExcellent: "#52c41a",
	HealthGood:      "#1890ff",
	HealthFair:      "#faad14",
	HealthPoor:      "#fa8c16",
	HealthCritical:  "#f5222d",
}

// BucketFor maps a score to its bucket. Lower bounds are inclusive:
// 90 is excellent, 89.99 is good.
func BucketFor(score float64) HealthBucket {
	switch {
	case score >= 90:
		return HealthExcellent
	case score >= 75:
		return HealthGood
	case score >= 60:
		return HealthFair
	case score >= 40:
		return HealthPoor
	default:
		return HealthCritical
	}
}

// BucketColor returns the display color for b, grey when b is unknown.
func BucketColor(b HealthBucket) string {
	if c, ok := healthColors[b]; ok {
		return c
	}
	return "#d9d9d9"
}

// ConditionScore resolves a raw score: nil or NaN yields
// DefaultConditionScore, anything else is clamped to [0,100].
func ConditionScore(raw *float64) (score float64, defaulted bool) {
	if raw == nil || math.IsNaN(*raw) {
		return DefaultConditionScore, true
	}
	return math.Min(100, math.Max(0, *raw)), false
}

// HealthOf resolves a raw condition score into its bucket and color.
func HealthOf(raw *float64) Health {
	score, defaulted := ConditionScore(raw)
	b := BucketFor(score)
	return Health{Score: score, Bucket: b, Color: BucketColor(b), Defaulted: defaulted}
}
