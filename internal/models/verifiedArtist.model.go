package models

import (
	"strings"

	"gorm.io/gorm"
)

// VerifiedArtist is a known artist whose name and aliases anchor
// normalization. Aliases are newline separated.
type VerifiedArtist struct {
	BaseUUIDModel
	Name           string `gorm:"type:text;not null;uniqueIndex:idx_verified_artists_name" json:"name" validate:"required"`
	NameNormalized string `gorm:"type:text;not null;index:idx_verified_artists_normalized" json:"nameNormalized"`
	Aliases        string `gorm:"type:text" json:"aliases"`
	Genre          string `gorm:"type:text" json:"genre"`
	IsActive       bool   `gorm:"not null;default:true" json:"isActive"`
}

func (a *VerifiedArtist) BeforeSave(tx *gorm.DB) (err error) {
	if a.Name == "" {
		return gorm.ErrInvalidValue
	}
	a.NameNormalized = NormalizeText(a.Name)
	return nil
}

// AllNames returns the normalized name plus every normalized alias.
func (a *VerifiedArtist) AllNames() []string {
	names := []string{NormalizeText(a.Name)}
	for _, alias := range strings.Split(a.Aliases, "\n") {
		alias = strings.TrimSpace(alias)
		if alias != "" {
			names = append(names, NormalizeText(alias))
		}
	}
	return names
}
