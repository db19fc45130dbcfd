package health

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("no health metrics found for this user")

// Metrics is the patient's current vitals row. Every write also appends
// a snapshot to the metrics history.
type Metrics struct {
	UserID        uuid.UUID `json:"user_id"`
	Height        float64   `json:"height"`
	Weight        float64   `json:"weight"`
	BMI           float64   `json:"bmi"`
	BloodPressure string    `json:"blood_pressure"`
	HeartRate     float64   `json:"heart_rate"`
	MaxHeartRate  float64   `json:"max_heart_rate"`
	SkinThickness float64   `json:"skin_thickness"`
	Glucose       float64   `json:"glucose"`
	Cholesterol   float64   `json:"cholesterol"`
}

// HistoryEntry is one archived metrics snapshot.
type HistoryEntry struct {
	Metrics
	RecordedAt time.Time `json:"recorded_at"`
}

// Period filters history reads. Empty means everything.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Cutoff returns the earliest timestamp included by the period, and
// whether a cutoff applies at all.
func (p Period) Cutoff(now time.Time) (time.Time, bool) {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7), true
	case PeriodMonth:
		return now.AddDate(0, -1, 0), true
	case PeriodYear:
		return now.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}
