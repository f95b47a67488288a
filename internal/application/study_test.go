package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quartetlab/quartet/internal/domain"
	"github.com/quartetlab/quartet/internal/testutils"
)

func newTestStudyService() (*StudyService, *testutils.MemoryScoreStore, *testutils.MemoryGenerationStore, *testutils.MemoryRatingStore) {
	scores := testutils.NewMemoryScoreStore()
	generations := testutils.NewMemoryGenerationStore()
	ratings := testutils.NewMemoryRatingStore()
	return NewStudyService(scores, generations, ratings, nil), scores, generations, ratings
}

func neutralAnswers() []int {
	answers := make([]int, domain.ScaleItems)
	for i := range answers {
		answers[i] = 3
	}
	return answers
}

func TestStudyService_ScoreQuestionnaire(t *testing.T) {
	svc, scores, _, _ := newTestStudyService()

	profile, err := svc.ScoreQuestionnaire(context.Background(), "p-1", neutralAnswers())
	require.NoError(t, err)
	assert.Equal(t, domain.MidpointProfile(), profile)

	stored, err := scores.LatestScore(context.Background(), "p-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, profile, *stored)
}

func TestStudyService_ScoreQuestionnaire_ValidationErrors(t *testing.T) {
	svc, scores, _, _ := newTestStudyService()

	tests := []struct {
		name          string
		participantID string
		answers       []int
	}{
		{"missing participant", "", neutralAnswers()},
		{"wrong length", "p-1", make([]int, 10)},
		{"answer out of range", "p-1", append(neutralAnswers()[:49], 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ScoreQuestionnaire(context.Background(), tt.participantID, tt.answers)
			require.Error(t, err)

			var ve *domain.ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}

	stored, err := scores.LatestScore(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Nil(t, stored, "failed submissions must leave no partial state")
}

func TestStudyService_RecordGenerations_SkipsCacheHits(t *testing.T) {
	svc, _, generations, _ := newTestStudyService()

	results := []domain.GenerationResult{
		{Condition: domain.ConditionBaseline, ResponseID: "r-1", Text: "fresh"},
		{Condition: domain.ConditionMirror, ResponseID: "r-2", Text: "cached", FromCache: true},
	}
	require.NoError(t, svc.RecordGenerations(context.Background(), "p-1", "t-1", "prompt", results))

	rows := generations.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "r-1", rows[0].Result.ResponseID)
	assert.Equal(t, "prompt", rows[0].TaskPrompt)
}

func TestStudyService_SubmitRatings_SortedBySlot(t *testing.T) {
	svc, _, _, ratings := newTestStudyService()

	batch := []domain.Rating{
		{ParticipantID: "p-1", TaskID: "t-1", Condition: domain.ConditionCreative, ResponseID: "r-4", Usefulness: 3, Novelty: 5, Slot: 4},
		{ParticipantID: "p-1", TaskID: "t-1", Condition: domain.ConditionBaseline, ResponseID: "r-1", Usefulness: 5, Novelty: 2, Slot: 1},
	}

	ordered, err := svc.SubmitRatings(context.Background(), batch)
	require.NoError(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, 1, ordered[0].Slot)
	assert.Equal(t, 4, ordered[1].Slot)

	assert.Len(t, ratings.Ratings(), 2)
}

func TestStudyService_SubmitRatings_InvalidRatingWritesNothing(t *testing.T) {
	svc, _, _, ratings := newTestStudyService()

	batch := []domain.Rating{
		{ParticipantID: "p-1", TaskID: "t-1", Condition: domain.ConditionBaseline, ResponseID: "r-1", Slot: 1},
		{ParticipantID: "p-1", TaskID: "t-1", Condition: "bogus", ResponseID: "r-2", Slot: 9},
	}

	_, err := svc.SubmitRatings(context.Background(), batch)
	require.Error(t, err)

	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Empty(t, ratings.Ratings())
}

func TestStudyService_SubmitRatings_StoreFailure(t *testing.T) {
	svc, _, _, ratings := newTestStudyService()
	ratings.Err = errors.New("disk full")

	_, err := svc.SubmitRatings(context.Background(), []domain.Rating{
		{ParticipantID: "p-1", TaskID: "t-1", Condition: domain.ConditionBaseline, ResponseID: "r-1", Slot: 1},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to persist ratings")
}
