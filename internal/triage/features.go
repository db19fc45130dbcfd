package triage

// Feature objects sent to the condition risk models. Field names match
// the column names the models were trained with.

type DiabetesFeatures struct {
	Pregnancies   int     `json:"Pregnancies"`
	Glucose       float64 `json:"Glucose"`
	BloodPressure float64 `json:"BloodPressure"`
	SkinThickness float64 `json:"SkinThickness"`
	BMI           float64 `json:"BMI"`
	Age           int     `json:"Age"`
}

type HeartFeatures struct {
	Age           int     `json:"Age"`
	Gender        string  `json:"Gender"`
	ChestPainType string  `json:"ChestPainType"`
	Cholesterol   float64 `json:"Cholesterol"`
	MaxHR         float64 `json:"MaxHR"`
}

type StrokeFeatures struct {
	Gender        string  `json:"Gender"`
	Age           int     `json:"Age"`
	Hypertension  int     `json:"Hypertension"`
	GlucoseLevel  float64 `json:"GlucoseLevel"`
	BMI           float64 `json:"BMI"`
	SmokingStatus string  `json:"SmokingStatus"`
}

// PredictionFeatures is the request payload for the risk models.
type PredictionFeatures struct {
	Diabetes DiabetesFeatures `json:"diabetes"`
	Heart    HeartFeatures    `json:"heart"`
	Stroke   StrokeFeatures   `json:"stroke"`
}

// BuildPredictionFeatures derives the three model inputs from the
// patient snapshot, applying the documented defaults for absent
// optional data.
func BuildPredictionFeatures(snapshot *PatientSnapshot) PredictionFeatures {
	pregnancy := 0
	chestPain := "asymptomatic"
	hypertension := 0
	if snapshot.Medical != nil {
		pregnancy = snapshot.Medical.Pregnancy
		if snapshot.Medical.ChestPainType != "" {
			chestPain = snapshot.Medical.ChestPainType
		}
		if snapshot.Medical.Hypertension {
			hypertension = 1
		}
	}

	smokingStatus := "never smoked"
	if snapshot.Lifestyle != nil && snapshot.Lifestyle.Smoking {
		smokingStatus = "smokes"
	}

	return PredictionFeatures{
		Diabetes: DiabetesFeatures{
			Pregnancies:   pregnancy,
			Glucose:       snapshot.Metrics.Glucose,
			BloodPressure: parseSystolic(snapshot.Metrics.BloodPressure),
			SkinThickness: snapshot.Metrics.SkinThickness,
			BMI:           snapshot.Metrics.BMI,
			Age:           snapshot.Profile.Age,
		},
		Heart: HeartFeatures{
			Age:           snapshot.Profile.Age,
			Gender:        snapshot.Profile.Gender,
			ChestPainType: chestPain,
			Cholesterol:   snapshot.Metrics.Cholesterol,
			MaxHR:         snapshot.Metrics.MaxHeartRate,
		},
		Stroke: StrokeFeatures{
			Gender:        snapshot.Profile.Gender,
			Age:           snapshot.Profile.Age,
			Hypertension:  hypertension,
			GlucoseLevel:  snapshot.Metrics.Glucose,
			BMI:           snapshot.Metrics.BMI,
			SmokingStatus: smokingStatus,
		},
	}
}
