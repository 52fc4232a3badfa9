package models

type VoteChannel string

const (
	ChannelTelegram VoteChannel = "telegram"
	ChannelWhatsApp VoteChannel = "whatsapp"
)

// Voter identifies one person on one chat channel. The channel adapter
// owns the meaning of UserRef (chat id, phone number, etc).
type Voter struct {
	BaseUUIDModel
	Channel VoteChannel `gorm:"type:text;not null;uniqueIndex:idx_voters_channel_ref" json:"channel" validate:"required"`
	UserRef string      `gorm:"type:text;not null;uniqueIndex:idx_voters_channel_ref" json:"userRef" validate:"required"`

	Votes []RawVote `gorm:"foreignKey:VoterID" json:"votes,omitempty"`
}
