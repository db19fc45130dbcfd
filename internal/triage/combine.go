package triage

// Weights for merging the two score sources. The symptoms model carries
// more signal than the per-condition models, which lean on stored
// metrics that may be stale.
const (
	symptomWeight    = 0.6
	predictionWeight = 0.4
)

// Combine merges symptom-likelihood scores with model predictions into
// one weighted risk per condition. The displayed risk is rounded to two
// decimals; the level is classified from the unrounded value.
func Combine(symptomScores, predictions ConditionValues) ConditionRisks {
	return ConditionRisks{
		Diabetes: combineOne(symptomScores.Diabetes, predictions.Diabetes),
		Heart:    combineOne(symptomScores.Heart, predictions.Heart),
		Stroke:   combineOne(symptomScores.Stroke, predictions.Stroke),
	}
}

func combineOne(symptomScore, predictionScore float64) ConditionScore {
	combined := symptomScore*symptomWeight + predictionScore*predictionWeight
	return ConditionScore{
		Risk:            round2(combined),
		Level:           riskLevel(combined),
		SymptomScore:    round2(symptomScore),
		PredictionScore: round2(predictionScore),
	}
}

// riskLevel classifies a combined score. Intervals are half-open with
// the lower bound inclusive.
func riskLevel(score float64) RiskLevel {
	switch {
	case score < 0.2:
		return RiskLow
	case score < 0.5:
		return RiskModerate
	case score < 0.75:
		return RiskHigh
	default:
		return RiskVeryHigh
	}
}
