package repositories

import (
	"time"

	"chartline/internal/database"

	"gorm.io/datatypes"
)

type Repository struct {
	Voter          VoterRepository
	RawVote        RawVoteRepository
	RawTally       RawTallyRepository
	CanonicalSong  CanonicalSongRepository
	Mapping        MappingRepository
	CanonicalTally CanonicalTallyRepository
	DecisionLog    DecisionLogRepository
	VerifiedArtist VerifiedArtistRepository
}

func New(db database.DB) Repository {
	return Repository{
		Voter:          NewVoterRepository(db),
		RawVote:        NewRawVoteRepository(db),
		RawTally:       NewRawTallyRepository(db),
		CanonicalSong:  NewCanonicalSongRepository(db),
		Mapping:        NewMappingRepository(db),
		CanonicalTally: NewCanonicalTallyRepository(db),
		DecisionLog:    NewDecisionLogRepository(db),
		VerifiedArtist: NewVerifiedArtistRepository(db),
	}
}

func toDate(t time.Time) datatypes.Date {
	return datatypes.Date(t)
}
