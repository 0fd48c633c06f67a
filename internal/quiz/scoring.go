package quiz

// CalculateQuizXP maps quiz performance to an XP award using a flat tier
// table. Flat bands are deliberate: they are easy to show students as
// achievement levels and marginal score increments inside a band earn
// nothing extra.
func CalculateQuizXP(score, totalQuestions int) int {
	if totalQuestions == 0 {
		return 0
	}

	percentage := float64(score) / float64(totalQuestions) * 100

	switch {
	case percentage >= 90:
		return 100 // Excellent
	case percentage >= 80:
		return 75 // Good
	case percentage >= 70:
		return 50 // Average
	case percentage >= 60:
		return 25 // Below average
	default:
		return 10 // Participation points
	}
}
