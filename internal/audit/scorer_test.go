package audit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/memdoc/internal/audit"
)

func TestComputeScore(testInstance *testing.T) {
	testCases := []struct {
		name               string
		duplicateCount     int
		staleCount         int
		contradictionCount int
		weights            audit.Weights
		expectedScore      int
	}{
		{
			name:          "perfect_corpus_scores_one_hundred",
			weights:       audit.DefaultWeights(),
			expectedScore: 100,
		},
		{
			name:           "single_duplicate_with_default_weights",
			duplicateCount: 1,
			weights:        audit.DefaultWeights(),
			expectedScore:  98,
		},
		{
			name:          "single_stale_with_default_weights",
			staleCount:    1,
			weights:       audit.DefaultWeights(),
			expectedScore: 99,
		},
		{
			name:               "single_contradiction_with_default_weights",
			contradictionCount: 1,
			weights:            audit.DefaultWeights(),
			expectedScore:      95,
		},
		{
			name:           "deductions_clamp_at_zero",
			duplicateCount: 80,
			weights:        audit.DefaultWeights(),
			expectedScore:  0,
		},
		{
			name:               "zero_weights_never_deduct",
			duplicateCount:     10,
			staleCount:         10,
			contradictionCount: 10,
			weights:            audit.Weights{},
			expectedScore:      100,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			score := audit.ComputeScore(testCase.duplicateCount, testCase.staleCount, testCase.contradictionCount, testCase.weights)
			require.Equal(testInstance, testCase.expectedScore, score)
		})
	}
}

func TestComputeScoreBoundsAndMonotonicity(testInstance *testing.T) {
	weights := audit.DefaultWeights()

	for duplicateCount := 0; duplicateCount < 60; duplicateCount++ {
		currentScore := audit.ComputeScore(duplicateCount, 0, 0, weights)
		nextScore := audit.ComputeScore(duplicateCount+1, 0, 0, weights)

		require.GreaterOrEqual(testInstance, currentScore, 0)
		require.LessOrEqual(testInstance, currentScore, 100)
		require.LessOrEqual(testInstance, nextScore, currentScore)
	}
}
