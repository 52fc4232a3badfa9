package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RawVote is one submission by one voter on one calendar day, stored as
// typed plus in normalized form. Immutable once recorded.
type RawVote struct {
	BaseUUIDModel
	VoterID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_raw_votes_voter_key_date;index:idx_raw_votes_voter_date" json:"voterId"`
	RawInput         string         `gorm:"type:text;not null" json:"rawInput"`
	ArtistRaw        string         `gorm:"type:text;not null" json:"artistRaw"`
	SongRaw          string         `gorm:"type:text;not null" json:"songRaw"`
	ArtistNormalized string         `gorm:"type:text;not null" json:"artistNormalized"`
	SongNormalized   string         `gorm:"type:text;not null" json:"songNormalized"`
	MatchKey         string         `gorm:"type:text;not null;uniqueIndex:idx_raw_votes_voter_key_date;index:idx_raw_votes_key" json:"matchKey"`
	DisplayName      string         `gorm:"type:text;not null" json:"displayName"`
	VoteDate         datatypes.Date `gorm:"not null;uniqueIndex:idx_raw_votes_voter_key_date;index:idx_raw_votes_voter_date;index:idx_raw_votes_date_key" json:"voteDate"`

	Voter *Voter `gorm:"foreignKey:VoterID" json:"voter,omitempty"`
}

func (v *RawVote) BeforeCreate(tx *gorm.DB) (err error) {
	if v.RawInput == "" || v.MatchKey == "" {
		return gorm.ErrInvalidValue
	}
	return v.BaseUUIDModel.BeforeCreate(tx)
}

// RawTally counts RawVotes sharing a grouping key on one day. The display
// name follows the most recently recorded vote for the key.
type RawTally struct {
	BaseUUIDModel
	Date        datatypes.Date `gorm:"not null;uniqueIndex:idx_raw_tallies_date_key" json:"date"`
	MatchKey    string         `gorm:"type:text;not null;uniqueIndex:idx_raw_tallies_date_key" json:"matchKey"`
	DisplayName string         `gorm:"type:text;not null" json:"displayName"`
	Count       int            `gorm:"type:int;not null;default:0" json:"count"`
}
