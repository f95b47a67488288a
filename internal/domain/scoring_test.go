package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformAnswers(v int) []int {
	answers := make([]int, ScaleItems)
	for i := range answers {
		answers[i] = v
	}
	return answers
}

// TestScoreIPIP50_Uniform scores uniform answer vectors against sums
// computed from the keying of the marker set: positively keyed items
// score the raw answer, negatively keyed items score 6-a. The key
// carries 5/6/6/8/7 positive items for E/A/C/N/O respectively.
func TestScoreIPIP50_Uniform(t *testing.T) {
	allOnes, err := ScoreIPIP50(uniformAnswers(1))
	require.NoError(t, err)
	assert.Equal(t, TraitProfile{
		Openness:          22,
		Conscientiousness: 26,
		Extraversion:      30,
		Agreeableness:     26,
		Neuroticism:       18,
	}, allOnes)

	allFives, err := ScoreIPIP50(uniformAnswers(5))
	require.NoError(t, err)
	assert.Equal(t, TraitProfile{
		Openness:          38,
		Conscientiousness: 34,
		Extraversion:      30,
		Agreeableness:     34,
		Neuroticism:       42,
	}, allFives)

	// The two extremes mirror each other around the midpoint sum.
	assert.Equal(t, 60, allOnes.Openness+allFives.Openness)
	assert.Equal(t, 60, allOnes.Neuroticism+allFives.Neuroticism)
}

// TestScoreIPIP50_NeutralAnswers verifies that all-neutral answers land
// every trait exactly at the midpoint, which is what the baseline
// persona assumes.
func TestScoreIPIP50_NeutralAnswers(t *testing.T) {
	profile, err := ScoreIPIP50(uniformAnswers(3))
	require.NoError(t, err)
	assert.Equal(t, MidpointProfile(), profile)
}

func TestScoreIPIP50_BoundsByConstruction(t *testing.T) {
	for _, v := range []int{1, 2, 3, 4, 5} {
		profile, err := ScoreIPIP50(uniformAnswers(v))
		require.NoError(t, err)
		require.NoError(t, profile.Validate(),
			"uniform answers %d must score within [10,50]", v)
	}
}

func TestScoreIPIP50_Validation(t *testing.T) {
	tests := []struct {
		name    string
		answers []int
		wantErr error
	}{
		{"too short", uniformAnswers(3)[:49], ErrAnswerCount},
		{"too long", append(uniformAnswers(3), 3), ErrAnswerCount},
		{"empty", nil, ErrAnswerCount},
		{"answer below range", append(uniformAnswers(3)[:49], 0), ErrAnswerRange},
		{"answer above range", append(uniformAnswers(3)[:49], 6), ErrAnswerRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ScoreIPIP50(tt.answers)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestScoreIPIP50_ReverseKeying spot-checks one negatively keyed item:
// flipping only item 6 ("Don't talk a lot", E-) from 1 to 5 lowers
// extraversion by 4.
func TestScoreIPIP50_ReverseKeying(t *testing.T) {
	base, err := ScoreIPIP50(uniformAnswers(1))
	require.NoError(t, err)

	answers := uniformAnswers(1)
	answers[5] = 5
	flipped, err := ScoreIPIP50(answers)
	require.NoError(t, err)

	assert.Equal(t, base.Extraversion-4, flipped.Extraversion)
	assert.Equal(t, base.Openness, flipped.Openness)
}
