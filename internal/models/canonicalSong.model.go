package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SongStatus string

const (
	SongStatusPending  SongStatus = "pending"
	SongStatusVerified SongStatus = "verified"
	SongStatusRejected SongStatus = "rejected"
)

// CanonicalSong is the deduplicated song identity raw votes resolve to.
// CanonicalName uniqueness is the de-duplication invariant; two rows
// describing the same real song must be merged, never coexist.
type CanonicalSong struct {
	BaseUUIDModel
	Artist        string     `gorm:"type:text;not null" json:"artist" validate:"required"`
	Title         string     `gorm:"type:text;not null" json:"title" validate:"required"`
	CanonicalName string     `gorm:"type:text;not null;uniqueIndex:idx_canonical_songs_name" json:"canonicalName"`
	Status        SongStatus `gorm:"type:text;not null;default:'pending';index:idx_canonical_songs_status" json:"status"`

	// Optional external catalog enrichment
	CatalogTrackID *string `gorm:"type:text" json:"catalogTrackId,omitempty"`
	Album          *string `gorm:"type:text" json:"album,omitempty"`
	ImageURL       *string `gorm:"type:text" json:"imageUrl,omitempty"`
	PreviewURL     *string `gorm:"type:text" json:"previewUrl,omitempty"`

	Mappings []MatchKeyMapping `gorm:"foreignKey:SongID" json:"mappings,omitempty"`
	Tallies  []CanonicalTally  `gorm:"foreignKey:SongID" json:"tallies,omitempty"`
}

func (s *CanonicalSong) BeforeCreate(tx *gorm.DB) (err error) {
	if s.Artist == "" || s.Title == "" {
		return gorm.ErrInvalidValue
	}
	if s.CanonicalName == "" {
		s.CanonicalName = s.Artist + " - " + s.Title
	}
	if s.Status == "" {
		s.Status = SongStatusPending
	}
	return s.BaseUUIDModel.BeforeCreate(tx)
}

// MatchKeyMapping is the resolved edge from a grouping key to a canonical
// song. One mapping per key; re-resolution re-points it.
type MatchKeyMapping struct {
	BaseUUIDModel
	MatchKey          string    `gorm:"type:text;not null;uniqueIndex:idx_mappings_key" json:"matchKey"`
	SongID            uuid.UUID `gorm:"type:uuid;not null;index:idx_mappings_song" json:"songId"`
	SampleDisplayName string    `gorm:"type:text;not null" json:"sampleDisplayName"`
	VoteCount         int       `gorm:"type:int;not null;default:0" json:"voteCount"`
	IsAutoMapped      bool      `gorm:"not null;default:true" json:"isAutoMapped"`

	Song *CanonicalSong `gorm:"foreignKey:SongID" json:"song,omitempty"`
}

// CanonicalTally is the per-day count for a canonical song, derived from
// RawTally through the mappings. Fully re-derivable; never a source of truth.
type CanonicalTally struct {
	BaseUUIDModel
	Date   datatypes.Date `gorm:"not null;uniqueIndex:idx_canonical_tallies_date_song" json:"date"`
	SongID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_canonical_tallies_date_song;index:idx_canonical_tallies_song" json:"songId"`
	Count  int            `gorm:"type:int;not null;default:0" json:"count"`

	Song *CanonicalSong `gorm:"foreignKey:SongID" json:"song,omitempty"`
}
