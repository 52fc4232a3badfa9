package models

import "github.com/google/uuid"

type DecisionAction string

const (
	ActionMatch      DecisionAction = "match"
	ActionReject     DecisionAction = "reject"
	ActionNew        DecisionAction = "new"
	ActionAutoMerge  DecisionAction = "auto_merge"
	ActionAutoReject DecisionAction = "auto_reject"
)

type ConfidenceTier string

const (
	ConfidenceHigh   ConfidenceTier = "high"
	ConfidenceMedium ConfidenceTier = "medium"
	ConfidenceLow    ConfidenceTier = "low"
	ConfidenceNone   ConfidenceTier = "none"
)

// DecisionLog is the append-only audit trail of matching decisions.
// Rows are written by the pipeline and never updated or deleted.
type DecisionLog struct {
	BaseUUIDModel
	InputText       string         `gorm:"type:text;not null" json:"inputText"`
	InputType       string         `gorm:"type:text;not null;default:'raw_vote'" json:"inputType"`
	Action          DecisionAction `gorm:"type:text;not null;index:idx_decision_logs_action" json:"action"`
	Confidence      ConfidenceTier `gorm:"type:text;not null" json:"confidence"`
	Reasoning       string         `gorm:"type:text" json:"reasoning"`
	MatchedSongID   *uuid.UUID     `gorm:"type:uuid" json:"matchedSongId,omitempty"`
	MatchedSongName string         `gorm:"type:text" json:"matchedSongName"`
	WasApplied      bool           `gorm:"not null;default:false" json:"wasApplied"`

	MatchedSong *CanonicalSong `gorm:"foreignKey:MatchedSongID" json:"matchedSong,omitempty"`
}
