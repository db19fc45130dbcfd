package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func score(risk float64) ConditionScore {
	return ConditionScore{Risk: risk, Level: riskLevel(risk)}
}

func TestAssess_RiskThresholds(t *testing.T) {
	tests := []struct {
		risk  float64
		level Level
	}{
		{0.1, LevelSelfCare},
		{0.49, LevelSelfCare},
		{0.5, LevelRoutine},
		{0.74, LevelRoutine},
		{0.75, LevelUrgent},
		{0.9, LevelUrgent},
	}
	for _, tt := range tests {
		assessment := assessCondition("diabetes", score(tt.risk), nil)
		assert.Equal(t, tt.level, assessment.Level, "risk %v", tt.risk)
	}
}

func TestAssess_EmergencyOverrideWins(t *testing.T) {
	// Zero computed risk, but symptom 1 is a diabetes emergency symptom.
	assessment := assessCondition("diabetes", score(0), []int{1})
	assert.Equal(t, LevelEmergency, assessment.Level)
	assert.Equal(t, "Seek immediate medical attention", assessment.Urgency)

	assert.Equal(t, LevelEmergency, assessCondition("heart", score(0), []int{3}).Level)
	assert.Equal(t, LevelEmergency, assessCondition("heart", score(0), []int{4}).Level)
	assert.Equal(t, LevelEmergency, assessCondition("stroke", score(0), []int{15}).Level)

	// Symptom 1 is not an emergency symptom for heart.
	assert.Equal(t, LevelSelfCare, assessCondition("heart", score(0), []int{1}).Level)
}

func TestAssess_OverallIsHighestPriority(t *testing.T) {
	summary := Assess(ConditionRisks{
		Diabetes: score(0.1),
		Heart:    score(0.8),
		Stroke:   score(0.6),
	}, nil)

	assert.Equal(t, LevelSelfCare, summary.Diabetes.Level)
	assert.Equal(t, LevelUrgent, summary.Heart.Level)
	assert.Equal(t, LevelRoutine, summary.Stroke.Level)
	assert.Equal(t, summary.Heart, summary.Overall)
}

func TestAssess_OverallTieBreaksOnEvaluationOrder(t *testing.T) {
	// Symptom 1 puts both diabetes and stroke at Emergency; the overall
	// assessment must equal the first condition evaluated.
	summary := Assess(ConditionRisks{}, []int{1})

	assert.Equal(t, LevelEmergency, summary.Diabetes.Level)
	assert.Equal(t, LevelEmergency, summary.Stroke.Level)
	assert.Equal(t, summary.Diabetes, summary.Overall)
}

func TestAssess_Urgencies(t *testing.T) {
	assert.Equal(t, "Consult a healthcare provider within 24 hours", urgencyAction(LevelUrgent))
	assert.Equal(t, "Schedule a routine appointment with your doctor", urgencyAction(LevelRoutine))
	assert.Equal(t, "Monitor symptoms and practice self-care", urgencyAction(LevelSelfCare))
}
