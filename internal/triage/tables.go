package triage

// SymptomWeight maps one reportable symptom to its per-condition
// relevance weights, as learned by the symptoms model.
type SymptomWeight struct {
	Name     string
	Diabetes float64
	Heart    float64
	Stroke   float64
}

// weight returns the symptom's relevance for the given condition.
func (w SymptomWeight) weight(condition string) float64 {
	switch condition {
	case "diabetes":
		return w.Diabetes
	case "heart":
		return w.Heart
	case "stroke":
		return w.Stroke
	}
	return 0
}

// SymptomTable maps symptom ids to their weights. Ids unknown to the
// table are ignored, never an error. Immutable after construction and
// safe for concurrent reads.
type SymptomTable map[int]SymptomWeight

// FeatureWeights maps a model feature name to its relative importance.
type FeatureWeights map[string]float64

// ImportanceTable carries the per-condition feature importances used
// for explanatory output.
type ImportanceTable struct {
	Diabetes FeatureWeights
	Heart    FeatureWeights
	Stroke   FeatureWeights
}

// Tables bundles the static reference data injected into the service.
type Tables struct {
	Symptoms   SymptomTable
	Importance ImportanceTable
}

// DefaultTables returns the reference data matching the trained models:
// the 16 symptoms the symptoms model was trained on (1-indexed) and the
// feature importances exported from the three condition models.
func DefaultTables() Tables {
	return Tables{
		Symptoms: SymptomTable{
			1:  {Name: "Confusion/Hallucination", Diabetes: 0.70, Heart: 0.10, Stroke: 0.80},
			2:  {Name: "Blurred vision", Diabetes: 0.60, Heart: 0.10, Stroke: 0.40},
			3:  {Name: "Shortness of breath", Diabetes: 0.10, Heart: 0.80, Stroke: 0.20},
			4:  {Name: "Chest pain", Diabetes: 0.05, Heart: 0.90, Stroke: 0.10},
			5:  {Name: "Excessive hunger", Diabetes: 0.70, Heart: 0.05, Stroke: 0},
			6:  {Name: "Fatigue", Diabetes: 0.50, Heart: 0.40, Stroke: 0.30},
			7:  {Name: "Headache", Diabetes: 0.20, Heart: 0.10, Stroke: 0.60},
			8:  {Name: "Increased appetite", Diabetes: 0.60, Heart: 0, Stroke: 0},
			9:  {Name: "Lethargy", Diabetes: 0.40, Heart: 0.30, Stroke: 0.40},
			10: {Name: "Obesity", Diabetes: 0.60, Heart: 0.50, Stroke: 0.30},
			11: {Name: "Frequent urination", Diabetes: 0.80, Heart: 0, Stroke: 0},
			12: {Name: "Insomnia/Restlessness", Diabetes: 0.20, Heart: 0.30, Stroke: 0.20},
			13: {Name: "Sweating", Diabetes: 0.30, Heart: 0.50, Stroke: 0.10},
			14: {Name: "Vomiting", Diabetes: 0.30, Heart: 0.30, Stroke: 0.40},
			15: {Name: "Weakness on one side of body", Diabetes: 0, Heart: 0.10, Stroke: 0.95},
			16: {Name: "Weight loss", Diabetes: 0.60, Heart: 0.10, Stroke: 0.10},
		},
		Importance: ImportanceTable{
			Diabetes: FeatureWeights{
				"Glucose":       0.33,
				"BMI":           0.22,
				"Age":           0.13,
				"BloodPressure": 0.10,
				"Pregnancies":   0.12,
				"SkinThickness": 0.10,
			},
			Heart: FeatureWeights{
				"Age":           0.21,
				"Gender":        0.12,
				"ChestPainType": 0.31,
				"Cholesterol":   0.18,
				"MaxHR":         0.18,
			},
			Stroke: FeatureWeights{
				"Gender":        0.08,
				"Age":           0.32,
				"Hypertension":  0.23,
				"GlucoseLevel":  0.17,
				"BMI":           0.12,
				"SmokingStatus": 0.08,
			},
		},
	}
}
