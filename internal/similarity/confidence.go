package similarity

// HistoricalMatch summarizes one prior categorization used for merchant
// confidence weighting.
type HistoricalMatch struct {
	Similarity    float64
	RecencyWeight float64
	SuccessRate   float64
}

// MerchantConfidence computes a confidence score for a merchant
// identification from its historical matches, weighting each match by
// recency and boosting for match volume. No history yields the neutral 0.5.
func MerchantConfidence(matches []HistoricalMatch) float64 {
	if len(matches) == 0 {
		return 0.5
	}

	var total, weightSum float64
	for _, m := range matches {
		total += m.Similarity * m.SuccessRate * m.RecencyWeight
		weightSum += m.RecencyWeight
	}
	if weightSum == 0 {
		return 0.5
	}

	confidence := total / weightSum

	boost := 1.0 + float64(len(matches))*0.05
	if boost > 1.2 {
		boost = 1.2
	}
	confidence *= boost

	if confidence > 1.0 {
		return 1.0
	}
	if confidence < 0.1 {
		return 0.1
	}
	return confidence
}
