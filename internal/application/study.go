package application

import (
	"context"
	"fmt"
	"sort"

	"github.com/quartetlab/quartet/internal/domain"
	"github.com/quartetlab/quartet/internal/ports"
)

// StudyService handles the questionnaire and rating flows around the
// generation engine: scoring submissions, persisting results, and
// recording participant judgments.
type StudyService struct {
	scores      ports.ScoreStore
	generations ports.GenerationStore
	ratings     ports.RatingStore
	metrics     ports.MetricsCollector
}

// NewStudyService wires a study service. The metrics collector may be
// nil.
func NewStudyService(
	scores ports.ScoreStore,
	generations ports.GenerationStore,
	ratings ports.RatingStore,
	metrics ports.MetricsCollector,
) *StudyService {
	return &StudyService{
		scores:      scores,
		generations: generations,
		ratings:     ratings,
		metrics:     metrics,
	}
}

// ScoreQuestionnaire scores a 50-item submission and persists the
// resulting profile for the participant. Malformed answer vectors
// surface as validation errors and leave no partial state.
func (s *StudyService) ScoreQuestionnaire(ctx context.Context, participantID string, answers []int) (domain.TraitProfile, error) {
	if participantID == "" {
		ve := domain.NewValidationError("score request")
		ve.AddError("missing participant id")
		return domain.TraitProfile{}, ve
	}

	profile, err := domain.ScoreIPIP50(answers)
	if err != nil {
		ve := domain.NewValidationError("score request")
		ve.AddError(err.Error())
		return domain.TraitProfile{}, ve
	}

	if err := s.scores.SaveScore(ctx, participantID, profile); err != nil {
		return domain.TraitProfile{}, fmt.Errorf("failed to persist score: %w", err)
	}

	s.count("score_submissions")
	return profile, nil
}

// RecordGenerations persists accepted generation results after the
// engine returns. Cache hits are skipped: their rows were written when
// first generated.
func (s *StudyService) RecordGenerations(ctx context.Context, participantID, taskID, taskPrompt string, results []domain.GenerationResult) error {
	for _, result := range results {
		if result.FromCache {
			continue
		}
		if err := s.generations.SaveGeneration(ctx, participantID, taskID, taskPrompt, result); err != nil {
			return fmt.Errorf("failed to persist generation: %w", err)
		}
	}
	return nil
}

// SubmitRatings validates and persists a batch of ratings, then echoes
// them back sorted by presentation slot. All ratings must be valid
// before any row is written.
func (s *StudyService) SubmitRatings(ctx context.Context, ratings []domain.Rating) ([]domain.Rating, error) {
	for _, r := range ratings {
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}

	if err := s.ratings.SaveRatings(ctx, ratings); err != nil {
		return nil, fmt.Errorf("failed to persist ratings: %w", err)
	}

	ordered := make([]domain.Rating, len(ratings))
	copy(ordered, ratings)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Slot < ordered[j].Slot })

	s.count("rating_submissions")
	return ordered, nil
}

func (s *StudyService) count(metric string) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordCounter(metric, 1, map[string]string{"status": "ok"})
}
