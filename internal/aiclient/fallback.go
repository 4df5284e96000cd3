package aiclient

const (
	fallbackBaseScore  = 0.5
	fallbackConfidence = 0.85

	// Suggestion values mirror what the remote model emits.
	SuggestionApprove = "APPROVE"
	SuggestionReview  = "REVIEW"
)

// FallbackPrediction computes the local approval heuristic. It is a pure
// function of amount and type and must stay bit-reproducible: the amount
// adjustment is applied before the type adjustment, and clamping happens
// last.
func FallbackPrediction(amount *float64, workflowType string) *Prediction {
	score := fallbackBaseScore

	if amount != nil {
		if *amount < 1000 {
			score += 0.3
		} else if *amount > 5000 {
			score -= 0.2
		}
	}

	switch workflowType {
	case "LEAVE":
		score += 0.1
	case "BUDGET":
		score -= 0.1
	case "PURCHASE":
		score += 0.05
	}

	probability := clamp(score, 0, 1)

	suggestion := SuggestionReview
	if probability > 0.6 {
		suggestion = SuggestionApprove
	}

	return &Prediction{
		ApprovalProbability: probability,
		Suggestion:          suggestion,
		Confidence:          fallbackConfidence,
		Fallback:            true,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
