package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *PatientSnapshot {
	return &PatientSnapshot{
		Metrics: HealthMetrics{
			BMI:           32,
			BloodPressure: "140/90",
			MaxHeartRate:  150,
			SkinThickness: 20,
			Glucose:       150,
			Cholesterol:   210,
		},
		Medical: &MedicalInfo{
			Pregnancy:     2,
			ChestPainType: "typical angina",
			Hypertension:  true,
		},
		Profile:   Profile{Gender: "male", Age: 50},
		Lifestyle: &Lifestyle{Smoking: true},
	}
}

func TestSymptomContributions_CapAndProportionality(t *testing.T) {
	table := DefaultTables().Symptoms

	contributions := symptomContributions(table, []int{4, 3, 13}, "heart")
	require.Len(t, contributions, 3)

	total := 0.0
	for _, c := range contributions {
		assert.True(t, c.IsSymptom)
		assert.Greater(t, c.Importance, 0.0)
		total += c.Importance
	}
	assert.InDelta(t, symptomImportanceFactor, total, 1e-9)

	// Chest pain (0.9) must outweigh sweating (0.5) for heart.
	assert.Greater(t, contributions[0].Importance, contributions[2].Importance)
}

func TestSymptomContributions_EmptyWhenNoRelevantSymptom(t *testing.T) {
	table := DefaultTables().Symptoms

	// Symptoms 8 and 11 carry zero heart weight.
	assert.Empty(t, symptomContributions(table, []int{8, 11}, "heart"))

	// Unknown ids are ignored rather than failing.
	assert.Empty(t, symptomContributions(table, []int{99, 1000}, "heart"))
}

func TestFeatureImportance_FixedVectorShape(t *testing.T) {
	features := FeatureImportance(DefaultTables(), testSnapshot(), []int{8, 11})

	// No reported symptom is heart-relevant, so heart keeps only its
	// five clinical features.
	require.Len(t, features.Heart, 5)
	require.Len(t, features.Diabetes, 8) // 6 clinical + 2 symptom entries
	require.Len(t, features.Stroke, 6)

	for _, f := range features.Heart {
		assert.False(t, f.IsSymptom)
		assert.GreaterOrEqual(t, f.Importance, 0.0)
	}
}

func TestFeatureImportance_CategoricalMappings(t *testing.T) {
	snapshot := testSnapshot()
	tables := DefaultTables()
	features := FeatureImportance(tables, snapshot, nil)

	byName := map[string]float64{}
	for _, f := range features.Heart {
		byName[f.Feature] = f.Importance
	}
	assert.InDelta(t, tables.Importance.Heart["Gender"], byName["Gender"], 1e-9)
	assert.InDelta(t, tables.Importance.Heart["ChestPainType"], byName["Chest Pain Type"], 1e-9)

	snapshot.Profile.Gender = "female"
	snapshot.Medical.ChestPainType = "asymptomatic"
	features = FeatureImportance(tables, snapshot, nil)
	byName = map[string]float64{}
	for _, f := range features.Heart {
		byName[f.Feature] = f.Importance
	}
	assert.Equal(t, 0.0, byName["Gender"])
	assert.Equal(t, 0.0, byName["Chest Pain Type"])
}

func TestRiskFactors_Diabetes(t *testing.T) {
	factors := RiskFactors(testSnapshot(), ConditionRisks{}).Diabetes
	require.Len(t, factors, 4)

	assert.Equal(t, "High Blood Glucose", factors[0].Factor)
	assert.Equal(t, "High", factors[0].Contribution)

	assert.Equal(t, "Elevated BMI", factors[1].Factor)
	assert.Equal(t, "High", factors[1].Contribution) // BMI 32 > 30

	assert.Equal(t, "Age", factors[2].Factor)
	assert.Equal(t, "Moderate", factors[2].Contribution) // 50 <= 60

	assert.Equal(t, "Pregnancy History", factors[3].Factor)
}

func TestRiskFactors_DiabetesBelowThresholds(t *testing.T) {
	snapshot := &PatientSnapshot{
		Metrics: HealthMetrics{Glucose: 90, BMI: 22},
		Profile: Profile{Age: 30},
	}
	assert.Empty(t, RiskFactors(snapshot, ConditionRisks{}).Diabetes)
}

func TestRiskFactors_HeartGenderBranches(t *testing.T) {
	snapshot := testSnapshot()
	snapshot.Metrics.Cholesterol = 0
	snapshot.Medical.ChestPainType = "asymptomatic"

	// Male, 50: the male branch fires at Moderate.
	factors := RiskFactors(snapshot, ConditionRisks{}).Heart
	require.Len(t, factors, 1)
	assert.Equal(t, "Age and Gender", factors[0].Factor)
	assert.Equal(t, "Moderate", factors[0].Contribution)

	// Female, 50: neither branch fires.
	snapshot.Profile.Gender = "female"
	assert.Empty(t, RiskFactors(snapshot, ConditionRisks{}).Heart)

	// Female, 70: the female branch fires at High.
	snapshot.Profile.Age = 70
	factors = RiskFactors(snapshot, ConditionRisks{}).Heart
	require.Len(t, factors, 1)
	assert.Equal(t, "High", factors[0].Contribution)
}

func TestRiskFactors_HeartLowMaxHeartRate(t *testing.T) {
	snapshot := &PatientSnapshot{
		Metrics: HealthMetrics{MaxHeartRate: 90},
		Profile: Profile{Gender: "female", Age: 30},
	}
	factors := RiskFactors(snapshot, ConditionRisks{}).Heart
	require.Len(t, factors, 1)
	assert.Equal(t, "Low Maximum Heart Rate", factors[0].Factor)

	// Absent max heart rate must not fire the rule.
	snapshot.Metrics.MaxHeartRate = 0
	assert.Empty(t, RiskFactors(snapshot, ConditionRisks{}).Heart)
}

func TestRiskFactors_StrokeUsesComputedDiabetesRisk(t *testing.T) {
	snapshot := &PatientSnapshot{Profile: Profile{Age: 40}}

	low := RiskFactors(snapshot, ConditionRisks{Diabetes: score(0.4)})
	assert.Empty(t, low.Stroke)

	high := RiskFactors(snapshot, ConditionRisks{Diabetes: score(0.6)})
	require.Len(t, high.Stroke, 1)
	assert.Equal(t, "Diabetes", high.Stroke[0].Factor)
	assert.Equal(t, "Moderate", high.Stroke[0].Contribution)
}

func TestRiskFactors_StrokeAlwaysHighFlags(t *testing.T) {
	snapshot := testSnapshot()
	snapshot.Profile.Age = 70

	factors := RiskFactors(snapshot, ConditionRisks{}).Stroke
	require.Len(t, factors, 3) // hypertension, smoking, age
	for _, f := range factors {
		assert.Equal(t, "High", f.Contribution)
	}
}
