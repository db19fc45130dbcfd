package triage

import "fmt"

// Maximum share of the importance vector allocated to reported
// symptoms; the remainder belongs to the fixed clinical features.
const symptomImportanceFactor = 0.6

// FeatureImportance derives the per-condition explanatory vectors: a
// fixed set of weighted clinical features followed by contributions
// from the reported symptoms relevant to each condition.
func FeatureImportance(tables Tables, snapshot *PatientSnapshot, symptomIDs []int) ConditionFeatures {
	pregnancy := 0
	chestPain := ""
	hypertension := false
	if snapshot.Medical != nil {
		pregnancy = snapshot.Medical.Pregnancy
		chestPain = snapshot.Medical.ChestPainType
		hypertension = snapshot.Medical.Hypertension
	}
	smoking := snapshot.Lifestyle != nil && snapshot.Lifestyle.Smoking

	male := 0.0
	if snapshot.Profile.Gender == "male" {
		male = 1.0
	}
	age := float64(snapshot.Profile.Age)

	diabetesWeights := tables.Importance.Diabetes
	diabetes := []FeatureContribution{
		{Feature: "Glucose Level", Importance: Normalize(snapshot.Metrics.Glucose, 70, 200, false) * diabetesWeights["Glucose"]},
		{Feature: "BMI", Importance: Normalize(snapshot.Metrics.BMI, 18, 35, false) * diabetesWeights["BMI"]},
		{Feature: "Age", Importance: Normalize(age, 20, 80, false) * diabetesWeights["Age"]},
		{Feature: "Blood Pressure", Importance: Normalize(parseSystolic(snapshot.Metrics.BloodPressure), 80, 160, false) * diabetesWeights["BloodPressure"]},
		{Feature: "Pregnancy History", Importance: Normalize(float64(pregnancy), 0, 5, false) * diabetesWeights["Pregnancies"]},
		{Feature: "Skin Thickness", Importance: Normalize(snapshot.Metrics.SkinThickness, 10, 40, false) * diabetesWeights["SkinThickness"]},
	}

	heartWeights := tables.Importance.Heart
	heart := []FeatureContribution{
		{Feature: "Age", Importance: Normalize(age, 20, 80, false) * heartWeights["Age"]},
		{Feature: "Gender", Importance: male * heartWeights["Gender"]},
		{Feature: "Chest Pain Type", Importance: chestPainValue(chestPain) * heartWeights["ChestPainType"]},
		{Feature: "Cholesterol", Importance: Normalize(snapshot.Metrics.Cholesterol, 130, 320, false) * heartWeights["Cholesterol"]},
		{Feature: "Maximum Heart Rate", Importance: Normalize(snapshot.Metrics.MaxHeartRate, 60, 220, true) * heartWeights["MaxHR"]},
	}

	strokeWeights := tables.Importance.Stroke
	stroke := []FeatureContribution{
		{Feature: "Gender", Importance: male * strokeWeights["Gender"]},
		{Feature: "Age", Importance: Normalize(age, 20, 80, false) * strokeWeights["Age"]},
		{Feature: "Hypertension", Importance: boolValue(hypertension) * strokeWeights["Hypertension"]},
		{Feature: "Glucose Level", Importance: Normalize(snapshot.Metrics.Glucose, 70, 200, false) * strokeWeights["GlucoseLevel"]},
		{Feature: "BMI", Importance: Normalize(snapshot.Metrics.BMI, 18, 35, false) * strokeWeights["BMI"]},
		{Feature: "Smoking Status", Importance: boolValue(smoking) * strokeWeights["SmokingStatus"]},
	}

	return ConditionFeatures{
		Diabetes: append(diabetes, symptomContributions(tables.Symptoms, symptomIDs, "diabetes")...),
		Heart:    append(heart, symptomContributions(tables.Symptoms, symptomIDs, "heart")...),
		Stroke:   append(stroke, symptomContributions(tables.Symptoms, symptomIDs, "stroke")...),
	}
}

// symptomContributions distributes the symptom share of the importance
// vector across the reported symptoms with nonzero weight for the
// condition, proportionally to their relative weights. With no relevant
// symptom the list is empty rather than zero-filled.
func symptomContributions(table SymptomTable, symptomIDs []int, condition string) []FeatureContribution {
	totalWeight := 0.0
	for _, id := range symptomIDs {
		if symptom, ok := table[id]; ok {
			totalWeight += symptom.weight(condition)
		}
	}
	if totalWeight == 0 {
		return nil
	}

	var contributions []FeatureContribution
	for _, id := range symptomIDs {
		symptom, ok := table[id]
		if !ok || symptom.weight(condition) <= 0 {
			continue
		}
		contributions = append(contributions, FeatureContribution{
			Feature:    "Symptom: " + symptom.Name,
			Importance: symptom.weight(condition) / totalWeight * symptomImportanceFactor,
			IsSymptom:  true,
		})
	}
	return contributions
}

func boolValue(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

// RiskFactors evaluates the per-condition threshold rules against the
// patient snapshot. Each rule contributes at most one entry; absence
// means the threshold was not crossed.
func RiskFactors(snapshot *PatientSnapshot, risks ConditionRisks) ConditionFactors {
	return ConditionFactors{
		Diabetes: diabetesRiskFactors(snapshot),
		Heart:    heartRiskFactors(snapshot),
		Stroke:   strokeRiskFactors(snapshot, risks),
	}
}

func diabetesRiskFactors(snapshot *PatientSnapshot) []RiskFactor {
	factors := []RiskFactor{}
	metrics := snapshot.Metrics

	if metrics.Glucose > 100 {
		factors = append(factors, RiskFactor{
			Factor:       "High Blood Glucose",
			Value:        fmt.Sprintf("%g mg/dL", metrics.Glucose),
			Contribution: "High",
			Description:  "Glucose levels above 100 mg/dL indicate prediabetes or diabetes",
		})
	}

	if metrics.BMI > 25 {
		contribution, category := "Moderate", "overweight"
		if metrics.BMI > 30 {
			contribution, category = "High", "obesity"
		}
		factors = append(factors, RiskFactor{
			Factor:       "Elevated BMI",
			Value:        metrics.BMI,
			Contribution: contribution,
			Description:  fmt.Sprintf("BMI of %g indicates %s", metrics.BMI, category),
		})
	}

	if snapshot.Profile.Age > 45 {
		contribution := "Moderate"
		if snapshot.Profile.Age > 60 {
			contribution = "High"
		}
		factors = append(factors, RiskFactor{
			Factor:       "Age",
			Value:        fmt.Sprintf("%d years", snapshot.Profile.Age),
			Contribution: contribution,
			Description:  "Diabetes risk increases with age, especially after 45",
		})
	}

	if snapshot.Medical != nil && snapshot.Medical.Pregnancy > 0 {
		factors = append(factors, RiskFactor{
			Factor:       "Pregnancy History",
			Value:        float64(snapshot.Medical.Pregnancy),
			Contribution: "Moderate",
			Description:  "Previous pregnancies can increase diabetes risk",
		})
	}

	return factors
}

func heartRiskFactors(snapshot *PatientSnapshot) []RiskFactor {
	factors := []RiskFactor{}
	metrics := snapshot.Metrics
	profile := snapshot.Profile

	if metrics.Cholesterol > 200 {
		contribution := "Moderate"
		if metrics.Cholesterol > 240 {
			contribution = "High"
		}
		factors = append(factors, RiskFactor{
			Factor:       "Elevated Cholesterol",
			Value:        fmt.Sprintf("%g mg/dL", metrics.Cholesterol),
			Contribution: contribution,
			Description:  "Total cholesterol above 200 mg/dL increases heart disease risk",
		})
	}

	if snapshot.Medical != nil && snapshot.Medical.ChestPainType != "" && snapshot.Medical.ChestPainType != "asymptomatic" {
		contribution := "Moderate"
		if snapshot.Medical.ChestPainType == "typical angina" {
			contribution = "High"
		}
		factors = append(factors, RiskFactor{
			Factor:       "Chest Pain",
			Value:        snapshot.Medical.ChestPainType,
			Contribution: contribution,
			Description:  "Presence of chest pain may indicate underlying heart issues",
		})
	}

	if profile.Age > 45 && profile.Gender == "male" {
		contribution := "Moderate"
		if profile.Age > 60 {
			contribution = "High"
		}
		factors = append(factors, RiskFactor{
			Factor:       "Age and Gender",
			Value:        fmt.Sprintf("%d year old %s", profile.Age, profile.Gender),
			Contribution: contribution,
			Description:  "Men over 45 have increased heart disease risk",
		})
	} else if profile.Age > 55 && profile.Gender == "female" {
		contribution := "Moderate"
		if profile.Age > 65 {
			contribution = "High"
		}
		factors = append(factors, RiskFactor{
			Factor:       "Age and Gender",
			Value:        fmt.Sprintf("%d year old %s", profile.Age, profile.Gender),
			Contribution: contribution,
			Description:  "Women over 55 have increased heart disease risk",
		})
	}

	if metrics.MaxHeartRate > 0 && metrics.MaxHeartRate < 100 {
		factors = append(factors, RiskFactor{
			Factor:       "Low Maximum Heart Rate",
			Value:        fmt.Sprintf("%g bpm", metrics.MaxHeartRate),
			Contribution: "Moderate",
			Description:  "Lower max heart rate may indicate reduced cardiac capacity",
		})
	}

	return factors
}

func strokeRiskFactors(snapshot *PatientSnapshot, risks ConditionRisks) []RiskFactor {
	factors := []RiskFactor{}

	if snapshot.Medical != nil && snapshot.Medical.Hypertension {
		factors = append(factors, RiskFactor{
			Factor:       "Hypertension",
			Value:        "Present",
			Contribution: "High",
			Description:  "Hypertension significantly increases stroke risk",
		})
	}

	if snapshot.Lifestyle != nil && snapshot.Lifestyle.Smoking {
		factors = append(factors, RiskFactor{
			Factor:       "Smoking",
			Value:        "Active smoker",
			Contribution: "High",
			Description:  "Smoking doubles the risk of stroke",
		})
	}

	if snapshot.Profile.Age > 65 {
		factors = append(factors, RiskFactor{
			Factor:       "Advanced Age",
			Value:        fmt.Sprintf("%d years", snapshot.Profile.Age),
			Contribution: "High",
			Description:  "Stroke risk increases significantly after age 65",
		})
	}

	if risks.Diabetes.Risk > 0.5 {
		factors = append(factors, RiskFactor{
			Factor:       "Diabetes",
			Value:        fmt.Sprintf("%s risk", risks.Diabetes.Level),
			Contribution: "Moderate",
			Description:  "Diabetes increases stroke risk by 1.5 to 3 times",
		})
	}

	return factors
}
