package testutils

import (
	"context"
	"sync"
	"time"

	"github.com/quartetlab/quartet/internal/domain"
	"github.com/quartetlab/quartet/internal/ports"
)

// MemoryScoreStore is an in-memory ports.ScoreStore.
type MemoryScoreStore struct {
	mu     sync.Mutex
	scores map[string][]domain.TraitProfile

	// Err fails every call when set.
	Err error
}

var _ ports.ScoreStore = (*MemoryScoreStore)(nil)

// NewMemoryScoreStore creates an empty score store.
func NewMemoryScoreStore() *MemoryScoreStore {
	return &MemoryScoreStore{scores: make(map[string][]domain.TraitProfile)}
}

// SaveScore implements ports.ScoreStore.
func (s *MemoryScoreStore) SaveScore(ctx context.Context, participantID string, profile domain.TraitProfile) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[participantID] = append(s.scores[participantID], profile)
	return nil
}

// LatestScore implements ports.ScoreStore.
func (s *MemoryScoreStore) LatestScore(ctx context.Context, participantID string) (*domain.TraitProfile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	history := s.scores[participantID]
	if len(history) == 0 {
		return nil, nil
	}
	latest := history[len(history)-1]
	return &latest, nil
}

// SavedGeneration is one recorded SaveGeneration call.
type SavedGeneration struct {
	ParticipantID string
	TaskID        string
	TaskPrompt    string
	Result        domain.GenerationResult
}

// MemoryGenerationStore is an in-memory ports.GenerationStore.
type MemoryGenerationStore struct {
	mu   sync.Mutex
	rows []SavedGeneration

	Err error
}

var _ ports.GenerationStore = (*MemoryGenerationStore)(nil)

// NewMemoryGenerationStore creates an empty generation store.
func NewMemoryGenerationStore() *MemoryGenerationStore {
	return &MemoryGenerationStore{}
}

// SaveGeneration implements ports.GenerationStore.
func (s *MemoryGenerationStore) SaveGeneration(ctx context.Context, participantID, taskID, taskPrompt string, result domain.GenerationResult) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, SavedGeneration{
		ParticipantID: participantID,
		TaskID:        taskID,
		TaskPrompt:    taskPrompt,
		Result:        result,
	})
	return nil
}

// Rows returns a copy of every saved generation.
func (s *MemoryGenerationStore) Rows() []SavedGeneration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SavedGeneration, len(s.rows))
	copy(out, s.rows)
	return out
}

// MemoryRatingStore is an in-memory ports.RatingStore.
type MemoryRatingStore struct {
	mu      sync.Mutex
	ratings []domain.Rating

	Err error
}

var _ ports.RatingStore = (*MemoryRatingStore)(nil)

// NewMemoryRatingStore creates an empty rating store.
func NewMemoryRatingStore() *MemoryRatingStore {
	return &MemoryRatingStore{}
}

// SaveRatings implements ports.RatingStore.
func (s *MemoryRatingStore) SaveRatings(ctx context.Context, ratings []domain.Rating) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratings = append(s.ratings, ratings...)
	return nil
}

// Ratings returns a copy of every saved rating.
func (s *MemoryRatingStore) Ratings() []domain.Rating {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Rating, len(s.ratings))
	copy(out, s.ratings)
	return out
}

// FailingCacheStore is a ports.CacheStore whose every operation fails,
// for exercising the forced-miss path.
type FailingCacheStore struct {
	Err error
}

var _ ports.CacheStore = (*FailingCacheStore)(nil)

// Get implements ports.CacheStore.
func (s *FailingCacheStore) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, s.Err
}

// Set implements ports.CacheStore.
func (s *FailingCacheStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.Err
}

// Delete implements ports.CacheStore.
func (s *FailingCacheStore) Delete(ctx context.Context, key string) error { return s.Err }

// Clear implements ports.CacheStore.
func (s *FailingCacheStore) Clear(ctx context.Context) error { return s.Err }
