package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quartetlab/quartet/internal/domain"
	"github.com/quartetlab/quartet/internal/ports"
)

// Store implements the ScoreStore, GenerationStore, and RatingStore
// ports over one GORM connection.
type Store struct {
	db *gorm.DB
}

var (
	_ ports.ScoreStore      = (*Store)(nil)
	_ ports.GenerationStore = (*Store)(nil)
	_ ports.RatingStore     = (*Store)(nil)
)

// NewStore wraps an opened database connection.
func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

// SaveScore records a scored profile, creating the participant row on
// first contact.
func (s *Store) SaveScore(ctx context.Context, participantID string, profile domain.TraitProfile) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		participant := Participant{ParticipantID: participantID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&participant).Error; err != nil {
			return fmt.Errorf("failed to upsert participant: %w", err)
		}

		row := TraitScore{
			ParticipantID: participantID,
			Openness:      profile.Openness,
			Conscientious: profile.Conscientiousness,
			Extraversion:  profile.Extraversion,
			Agreeableness: profile.Agreeableness,
			Neuroticism:   profile.Neuroticism,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to save trait score: %w", err)
		}
		return nil
	})
}

// LatestScore returns the most recent profile for a participant, or nil
// when none has been recorded.
func (s *Store) LatestScore(ctx context.Context, participantID string) (*domain.TraitProfile, error) {
	var row TraitScore
	err := s.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("id DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load trait score: %w", err)
	}

	return &domain.TraitProfile{
		Openness:          row.Openness,
		Conscientiousness: row.Conscientious,
		Extraversion:      row.Extraversion,
		Agreeableness:     row.Agreeableness,
		Neuroticism:       row.Neuroticism,
	}, nil
}

// SaveGeneration records one accepted generation result.
func (s *Store) SaveGeneration(ctx context.Context, participantID, taskID, taskPrompt string, result domain.GenerationResult) error {
	row := Generation{
		ParticipantID: participantID,
		TaskID:        taskID,
		Condition:     string(result.Condition),
		ResponseID:    result.ResponseID,
		SystemPrompt:  result.SystemPrompt,
		UserPrompt:    result.UserPrompt,
		PromptText:    taskPrompt,
		Text:          result.Text,
		Model:         result.Model,
		TokensIn:      result.TokensIn,
		TokensOut:     result.TokensOut,
		LatencyMs:     result.LatencyMS,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save generation: %w", err)
	}
	return nil
}

// SaveRatings inserts a batch of ratings in one transaction. An empty
// batch is a no-op.
func (s *Store) SaveRatings(ctx context.Context, ratings []domain.Rating) error {
	if len(ratings) == 0 {
		return nil
	}

	rows := make([]RatingRow, 0, len(ratings))
	for _, r := range ratings {
		rows = append(rows, RatingRow{
			ParticipantID: r.ParticipantID,
			TaskID:        r.TaskID,
			Condition:     string(r.Condition),
			ResponseID:    r.ResponseID,
			Usefulness:    r.Usefulness,
			Novelty:       r.Novelty,
			ShownSlot:     r.Slot,
		})
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to save ratings: %w", err)
	}
	return nil
}
