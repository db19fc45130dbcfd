package triage

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// RiskLevel categorizes a combined risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
	RiskVeryHigh RiskLevel = "Very High"
)

// Level is the urgency category attached to a condition or to the
// whole assessment.
type Level string

const (
	LevelEmergency Level = "Emergency"
	LevelUrgent    Level = "Urgent"
	LevelRoutine   Level = "Routine"
	LevelSelfCare  Level = "Self-care"
)

var (
	// ErrNoSymptoms is returned when an analysis is requested without
	// any reported symptoms.
	ErrNoSymptoms = errors.New("at least one symptom is required")

	// ErrPatientDataMissing is returned when the user has no stored
	// health metrics or profile, without which no analysis is possible.
	ErrPatientDataMissing = errors.New("cannot analyse symptoms without user health data")

	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
)

// ConditionValues is a raw score vector over the three tracked conditions.
type ConditionValues struct {
	Diabetes float64 `json:"diabetes"`
	Heart    float64 `json:"heart"`
	Stroke   float64 `json:"stroke"`
}

// ConditionScore is the combined risk for one condition.
type ConditionScore struct {
	Risk            float64   `json:"risk"`
	Level           RiskLevel `json:"level"`
	SymptomScore    float64   `json:"symptomScore"`
	PredictionScore float64   `json:"predictionScore"`
}

// ConditionRisks holds the combined score per condition.
type ConditionRisks struct {
	Diabetes ConditionScore `json:"diabetes"`
	Heart    ConditionScore `json:"heart"`
	Stroke   ConditionScore `json:"stroke"`
}

// Assessment pairs a triage level with its recommended action.
type Assessment struct {
	Level   Level  `json:"level"`
	Urgency string `json:"urgency"`
}

// Summary collects the per-condition assessments plus the overall one.
type Summary struct {
	Overall  Assessment `json:"overall"`
	Diabetes Assessment `json:"diabetes"`
	Heart    Assessment `json:"heart"`
	Stroke   Assessment `json:"stroke"`
}

// RiskFactor is a patient attribute that crossed a clinical threshold.
type RiskFactor struct {
	Factor       string `json:"factor"`
	Value        any    `json:"value"`
	Contribution string `json:"contribution"`
	Description  string `json:"description"`
}

// ConditionFactors groups contributing risk factors per condition.
type ConditionFactors struct {
	Diabetes []RiskFactor `json:"diabetes"`
	Heart    []RiskFactor `json:"heart"`
	Stroke   []RiskFactor `json:"stroke"`
}

// FeatureContribution is one entry of the explanatory importance vector.
type FeatureContribution struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
	IsSymptom  bool    `json:"isSymptom,omitempty"`
}

// ConditionFeatures groups feature contributions per condition.
type ConditionFeatures struct {
	Diabetes []FeatureContribution `json:"diabetes"`
	Heart    []FeatureContribution `json:"heart"`
	Stroke   []FeatureContribution `json:"stroke"`
}

// Recommendations holds guidance strings, general plus per condition.
type Recommendations struct {
	General  []string `json:"general"`
	Diabetes []string `json:"diabetes"`
	Heart    []string `json:"heart"`
	Stroke   []string `json:"stroke"`
}

// AnalysisResult is the full outcome of one symptom analysis.
type AnalysisResult struct {
	ConditionRisks    ConditionRisks    `json:"conditionRisks"`
	Triage            Summary           `json:"triage"`
	RiskFactors       ConditionFactors  `json:"riskFactors"`
	FeatureImportance ConditionFeatures `json:"featureImportance"`
	Recommendations   Recommendations   `json:"recommendations"`
}

// AnalysisRecord is an AnalysisResult as persisted, with its input symptoms.
type AnalysisRecord struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Symptoms  []int          `json:"symptoms"`
	Result    AnalysisResult `json:"result"`
	CreatedAt time.Time      `json:"created_at"`
}

// HealthMetrics is the patient's current vitals row.
type HealthMetrics struct {
	Height        float64 `json:"height"`
	Weight        float64 `json:"weight"`
	BMI           float64 `json:"bmi"`
	BloodPressure string  `json:"blood_pressure"` // "systolic/diastolic"
	HeartRate     float64 `json:"heart_rate"`
	MaxHeartRate  float64 `json:"max_heart_rate"`
	SkinThickness float64 `json:"skin_thickness"`
	Glucose       float64 `json:"glucose"`
	Cholesterol   float64 `json:"cholesterol"`
}

// MedicalInfo is the optional medical-history row.
type MedicalInfo struct {
	Conditions    string `json:"conditions"`
	Medications   string `json:"medications"`
	Allergies     string `json:"allergies"`
	Pregnancy     int    `json:"pregnancy"`
	BloodType     string `json:"blood_type"`
	ChestPainType string `json:"chest_pain_type"`
	Hypertension  bool   `json:"hypertension"`
}

// Profile carries the demographics required for every analysis.
type Profile struct {
	Gender string `json:"gender"`
	Age    int    `json:"age"`
}

// Lifestyle is the optional lifestyle-factors row.
type Lifestyle struct {
	Smoking            bool   `json:"smoking"`
	AlcoholConsumption bool   `json:"alcohol_consumption"`
	ExerciseFrequency  string `json:"exercise_frequency"`
}

// PatientSnapshot is the read-only patient view assembled for one
// analysis. Medical and Lifestyle may be nil; Metrics and Profile are
// hard prerequisites.
type PatientSnapshot struct {
	Metrics   HealthMetrics
	Medical   *MedicalInfo
	Profile   Profile
	Lifestyle *Lifestyle
}
