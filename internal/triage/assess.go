package triage

// Symptoms that force an Emergency assessment for a condition no matter
// what the combined risk says.
var emergencySymptoms = map[string][]int{
	"diabetes": {1},
	"heart":    {3, 4},
	"stroke":   {1, 15},
}

var triagePriority = map[Level]int{
	LevelEmergency: 3,
	LevelUrgent:    2,
	LevelRoutine:   1,
	LevelSelfCare:  0,
}

// Assess produces the per-condition assessments plus the overall one,
// applying the emergency-symptom override before risk thresholds.
func Assess(risks ConditionRisks, symptomIDs []int) Summary {
	diabetes := assessCondition("diabetes", risks.Diabetes, symptomIDs)
	heart := assessCondition("heart", risks.Heart, symptomIDs)
	stroke := assessCondition("stroke", risks.Stroke, symptomIDs)

	return Summary{
		Overall:  highestAssessment(diabetes, heart, stroke),
		Diabetes: diabetes,
		Heart:    heart,
		Stroke:   stroke,
	}
}

func assessCondition(condition string, score ConditionScore, symptomIDs []int) Assessment {
	level := LevelSelfCare

	if hasEmergencySymptom(condition, symptomIDs) {
		level = LevelEmergency
	} else if score.Risk >= 0.75 {
		level = LevelUrgent
	} else if score.Risk >= 0.5 {
		level = LevelRoutine
	}

	return Assessment{Level: level, Urgency: urgencyAction(level)}
}

func hasEmergencySymptom(condition string, symptomIDs []int) bool {
	for _, id := range symptomIDs {
		for _, emergency := range emergencySymptoms[condition] {
			if id == emergency {
				return true
			}
		}
	}
	return false
}

// highestAssessment picks the most urgent assessment. Comparison is
// strict, so on ties the earliest condition in evaluation order wins.
func highestAssessment(assessments ...Assessment) Assessment {
	highest := assessments[0]
	for _, a := range assessments[1:] {
		if triagePriority[a.Level] > triagePriority[highest.Level] {
			highest = a
		}
	}
	return highest
}

func urgencyAction(level Level) string {
	switch level {
	case LevelEmergency:
		return "Seek immediate medical attention"
	case LevelUrgent:
		return "Consult a healthcare provider within 24 hours"
	case LevelRoutine:
		return "Schedule a routine appointment with your doctor"
	case LevelSelfCare:
		return "Monitor symptoms and practice self-care"
	default:
		return "Follow up with healthcare provider as needed"
	}
}
