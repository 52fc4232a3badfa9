package seed

import (
	"context"

	"chartline/internal/database"
	"chartline/internal/models"
	"chartline/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
)

type artistSeed struct {
	name    string
	aliases string
	genre   string
}

// Starter set of verified artists so normalization has alias anchors
// before any admin curation happens.
var artistSeeds = []artistSeed{
	{name: "Winky D", aliases: "winkyd\nwinky\nbigman\ngafa", genre: "zimdancehall"},
	{name: "Jah Prayzah", aliases: "jah prayza\njahprayzah\nmukudzei", genre: "contemporary"},
	{name: "Holy Ten", aliases: "holyten\nholy 10\nmukudzei chitsama", genre: "hip hop"},
	{name: "Alick Macheso", aliases: "macheso\nextra basso", genre: "sungura"},
	{name: "Oliver Mtukudzi", aliases: "tuku\nmtukudzi", genre: "afro jazz"},
	{name: "Thomas Mapfumo", aliases: "mapfumo\nmukanya", genre: "chimurenga"},
	{name: "Killer T", aliases: "killert\nkilla t", genre: "zimdancehall"},
	{name: "Tocky Vibes", aliases: "tockyvibes\ntocky", genre: "zimdancehall"},
	{name: "Enzo Ishall", aliases: "enzoishall\nenzo", genre: "zimdancehall"},
	{name: "Freeman", aliases: "freeman hkd\nhkd boss", genre: "zimdancehall"},
	{name: "ExQ", aliases: "ex q\nex-q\nmr putiti", genre: "urban grooves"},
	{name: "Nutty O", aliases: "nuttyo\nnutty", genre: "zimdancehall"},
	{name: "Ti Gonzi", aliases: "tigonzi", genre: "hip hop"},
	{name: "Voltz JT", aliases: "voltzjt\nvoltz", genre: "hip hop"},
	{name: "Ammara Brown", aliases: "ammara", genre: "afro pop"},
	{name: "Gemma Griffiths", aliases: "gemma", genre: "afro pop"},
	{name: "Jah Signal", aliases: "jahsignal", genre: "zimdancehall"},
	{name: "Seh Calaz", aliases: "sehcalaz\nmabhanditi", genre: "zimdancehall"},
	{name: "Suluman Chimbetu", aliases: "sulu\nsulumani", genre: "dendera"},
	{name: "Mark Ngwazi", aliases: "ngwazi", genre: "sungura"},
	{name: "Saintfloew", aliases: "saint floew\nsaintflow", genre: "hip hop"},
	{name: "Feli Nandi", aliases: "felinandi", genre: "contemporary"},
	{name: "Kae Chaps", aliases: "kaechaps", genre: "rnb"},
	{name: "Takura", aliases: "takura teemba", genre: "hip hop"},
	{name: "Poptain", aliases: "ameno", genre: "zimdancehall"},
}

// Seed loads the starter verified artists. Existing rows are updated in
// place, so reseeding is safe.
func Seed(db database.DB, log logger.Logger) error {
	log = log.Function("Seed")

	repos := repositories.New(db)
	ctx := context.Background()

	for _, entry := range artistSeeds {
		artist := &models.VerifiedArtist{
			Name:     entry.name,
			Aliases:  entry.aliases,
			Genre:    entry.genre,
			IsActive: true,
		}
		if err := repos.VerifiedArtist.Upsert(ctx, artist); err != nil {
			return log.Err("failed to seed artist", err, "name", entry.name)
		}
	}

	log.Info("Seeded verified artists", "count", len(artistSeeds))
	return nil
}
