package medical

import "errors"

var ErrNotFound = errors.New("medical information not found")

// Info is the patient's medical-history row.
type Info struct {
	Conditions    string `json:"conditions"`
	Medications   string `json:"medications"`
	Allergies     string `json:"allergies"`
	Pregnancy     int    `json:"pregnancy"`
	BloodType     string `json:"bloodType"`
	ChestPainType string `json:"chest_pain_type"`
	Hypertension  bool   `json:"hypertension"`
}

// Lifestyle is the patient's lifestyle-factors row, stored alongside
// the medical info.
type Lifestyle struct {
	Smoking            bool   `json:"smoking"`
	AlcoholConsumption bool   `json:"alcoholConsumption"`
	ExerciseFrequency  string `json:"exerciseFrequency"`
}

// Record pairs the two rows as exposed by the API.
type Record struct {
	Medical   Info       `json:"medical"`
	Lifestyle *Lifestyle `json:"lifestyle,omitempty"`
}
