package audit

const (
	maximumScoreConstant = 100
	minimumScoreConstant = 0
)

// ComputeScore reduces finding counts into the bounded health score:
// 100 minus the weighted deductions, floored at 0. Weights are assumed
// non-negative, so the base of 100 is never exceeded.
func ComputeScore(duplicateCount int, staleCount int, contradictionCount int, weights Weights) int {
	deduction := duplicateCount*weights.Duplicate + staleCount*weights.Stale + contradictionCount*weights.Contradiction
	score := maximumScoreConstant - deduction
	if score < minimumScoreConstant {
		return minimumScoreConstant
	}
	return score
}
