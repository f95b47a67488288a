// Package storage persists study data with GORM: participants, trait
// scores, accepted generations, and ratings. SQLite serves local and
// pilot deployments, Postgres the hosted ones.
package storage

import "time"

// Participant is one study participant, keyed by the external survey
// identifier.
type Participant struct {
	ParticipantID string    `gorm:"primaryKey;size:64"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (Participant) TableName() string { return "participants" }

// TraitScore is one scored questionnaire submission. A participant may
// have several rows; the latest wins.
type TraitScore struct {
	ID            uint   `gorm:"primaryKey"`
	ParticipantID string `gorm:"size:64;not null;index"`
	Openness      int    `gorm:"column:o"`
	Conscientious int    `gorm:"column:c"`
	Extraversion  int    `gorm:"column:e"`
	Agreeableness int    `gorm:"column:a"`
	Neuroticism   int    `gorm:"column:n"`
	CreatedAt     time.Time
}

func (TraitScore) TableName() string { return "trait_scores" }

// Generation is one accepted generation result, kept for analysis and
// export. Prompts are stored verbatim for reproducibility.
type Generation struct {
	ID            uint   `gorm:"primaryKey"`
	ParticipantID string `gorm:"size:64;not null;index"`
	TaskID        string `gorm:"size:64;not null;index"`
	Condition     string `gorm:"size:16;not null"`
	ResponseID    string `gorm:"size:64;not null;index"`
	SystemPrompt  string `gorm:"type:text"`
	UserPrompt    string `gorm:"type:text"`
	PromptText    string `gorm:"type:text"`
	Text          string `gorm:"type:text"`
	Model         string `gorm:"size:64"`
	TokensIn      int
	TokensOut     int
	LatencyMs     int64
	CreatedAt     time.Time
}

func (Generation) TableName() string { return "generations" }

// RatingRow is one participant judgment of a generated response.
type RatingRow struct {
	ID            uint   `gorm:"primaryKey"`
	ParticipantID string `gorm:"size:64;not null;index"`
	TaskID        string `gorm:"size:64;not null;index"`
	Condition     string `gorm:"size:16;not null"`
	ResponseID    string `gorm:"size:64;not null"`
	Usefulness    int
	Novelty       int
	ShownSlot     int
	CreatedAt     time.Time
}

func (RatingRow) TableName() string { return "ratings" }
