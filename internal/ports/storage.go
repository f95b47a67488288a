package ports

import (
	"context"

	"github.com/quartetlab/quartet/internal/domain"
)

// ScoreStore persists questionnaire results and serves the most recent
// profile per participant.
type ScoreStore interface {
	// SaveScore appends a scored trait profile for a participant,
	// creating the participant row if needed.
	SaveScore(ctx context.Context, participantID string, profile domain.TraitProfile) error

	// LatestScore returns the most recently saved profile for a
	// participant, or nil when none exists. Absence is not an error.
	LatestScore(ctx context.Context, participantID string) (*domain.TraitProfile, error)
}

// GenerationStore persists accepted generation results. Writing rows is
// the caller's responsibility after the orchestrator returns; the
// response cache never writes here.
type GenerationStore interface {
	SaveGeneration(ctx context.Context, participantID, taskID, taskPrompt string, result domain.GenerationResult) error
}

// RatingStore persists participant ratings of generated responses.
type RatingStore interface {
	SaveRatings(ctx context.Context, ratings []domain.Rating) error
}
