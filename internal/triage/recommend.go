package triage

// Recommend assembles the guidance strings: general ones driven by the
// overall triage only, plus a list per condition driven by its risk
// level and the patient's specific clinical values.
func Recommend(overall Assessment, risks ConditionRisks, snapshot *PatientSnapshot) Recommendations {
	return Recommendations{
		General:  generalRecommendations(overall),
		Diabetes: diabetesRecommendations(risks.Diabetes, snapshot),
		Heart:    heartRecommendations(risks.Heart, snapshot),
		Stroke:   strokeRecommendations(risks.Stroke, snapshot),
	}
}

func generalRecommendations(overall Assessment) []string {
	switch overall.Level {
	case LevelEmergency:
		return []string{
			"Call emergency services or go to the nearest emergency room immediately.",
		}
	case LevelUrgent:
		return []string{
			"Contact your healthcare provider within 24 hours.",
			"Monitor your symptoms closely and seek immediate care if they worsen.",
		}
	default:
		return []string{
			"Stay hydrated by drinking at least 8 glasses of water daily.",
			"Aim for at least 7-8 hours of quality sleep each night.",
			"Maintain a balanced diet rich in fruits, vegetables, and whole grains.",
			"Regular physical activity of at least 150 minutes per week is recommended.",
		}
	}
}

func diabetesRecommendations(risk ConditionScore, snapshot *PatientSnapshot) []string {
	recommendations := []string{}
	if risk.Level == RiskLow {
		return recommendations
	}

	recommendations = append(recommendations, "Monitor your blood glucose levels regularly.")

	if snapshot.Metrics.Glucose > 100 {
		recommendations = append(recommendations,
			"Reduce intake of refined carbohydrates, sugary foods and beverages.",
			"Choose complex carbohydrates with low glycemic index such as whole grains.")
	}

	if snapshot.Metrics.BMI > 25 {
		recommendations = append(recommendations,
			"A 5-10% reduction in body weight can significantly improve insulin sensitivity.",
			"Focus on portion control and balanced meals.")
	}

	recommendations = append(recommendations,
		"Include fiber-rich foods in your diet like vegetables, fruits, and whole grains.")

	if risk.Level == RiskHigh || risk.Level == RiskVeryHigh {
		recommendations = append(recommendations,
			"Consider consulting with an endocrinologist for comprehensive diabetes risk assessment.",
			"Regular screening for diabetes is strongly recommended.")
	}

	return recommendations
}

func heartRecommendations(risk ConditionScore, snapshot *PatientSnapshot) []string {
	recommendations := []string{}
	if risk.Level == RiskLow {
		return recommendations
	}

	recommendations = append(recommendations, "Monitor your blood pressure regularly.")

	if snapshot.Metrics.Cholesterol > 200 {
		recommendations = append(recommendations,
			"Consider a diet lower in saturated fats to help reduce cholesterol levels.",
			"Include plant sterols and fiber-rich foods that help lower cholesterol.")
	}

	recommendations = append(recommendations,
		"Include heart-healthy foods like fatty fish, nuts, and olive oil in your diet.",
		"Aim for at least 150 minutes of moderate exercise each week.")

	if snapshot.Metrics.BloodPressure != "" && parseSystolic(snapshot.Metrics.BloodPressure) > 120 {
		recommendations = append(recommendations,
			"Reduce sodium intake to help manage blood pressure.",
			"Practice stress reduction techniques such as meditation or deep breathing.")
	}

	if risk.Level == RiskHigh || risk.Level == RiskVeryHigh {
		recommendations = append(recommendations,
			"Consider consulting with a cardiologist for comprehensive heart health assessment.",
			"Discuss with your doctor about appropriate cardiac screening tests.")
	}

	return recommendations
}

func strokeRecommendations(risk ConditionScore, snapshot *PatientSnapshot) []string {
	recommendations := []string{}
	if risk.Level == RiskLow {
		return recommendations
	}

	recommendations = append(recommendations, "Monitor your blood pressure regularly.")

	if snapshot.Medical != nil && snapshot.Medical.Hypertension {
		recommendations = append(recommendations,
			"Take your blood pressure medication as prescribed by your doctor.",
			"Follow the DASH diet (Dietary Approaches to Stop Hypertension).")
	}

	if snapshot.Lifestyle != nil && snapshot.Lifestyle.Smoking {
		recommendations = append(recommendations,
			"Quitting smoking can significantly reduce your stroke risk.",
			"Consider smoking cessation programs or aids to help you quit.")
	}

	recommendations = append(recommendations, "Limit alcohol consumption.")

	if snapshot.Metrics.Glucose > 100 {
		recommendations = append(recommendations, "Maintain good control of blood sugar levels.")
	}

	if risk.Level == RiskHigh || risk.Level == RiskVeryHigh {
		recommendations = append(recommendations,
			"Consider consulting with a neurologist for comprehensive stroke risk assessment.",
			"Learn to recognize the signs of stroke: face drooping, arm weakness, speech difficulty, time to call emergency services (FAST).")
	}

	return recommendations
}
