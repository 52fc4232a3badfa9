package services

import (
	"regexp"
	"strings"

	"chartline/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

// artistTypoCorrections maps common misspellings of well known artists to
// their canonical spelling. Lookups happen on the lowercased input and on
// a space-stripped variant, so "winkyd", "Winkyd" and "winky d" all land
// on "Winky D".
var artistTypoCorrections = map[string]string{
	"winkyd":   "Winky D",
	"winky":    "Winky D",
	"winki d":  "Winky D",
	"winkie d": "Winky D",
	"winked":   "Winky D",

	"jah prayza":  "Jah Prayzah",
	"jahprayzah":  "Jah Prayzah",
	"jah praiza":  "Jah Prayzah",
	"jah prayzer": "Jah Prayzah",
	"jah prazah":  "Jah Prayzah",
	"ja prayzah":  "Jah Prayzah",
	"jahprayza":   "Jah Prayzah",

	"holyten":   "Holy Ten",
	"holy 10":   "Holy Ten",
	"holy10":    "Holy Ten",
	"hollyten":  "Holy Ten",
	"holly ten": "Holy Ten",

	"enzoishall":  "Enzo Ishall",
	"enzo ishal":  "Enzo Ishall",
	"enzo ishaal": "Enzo Ishall",
	"enzoishal":   "Enzo Ishall",

	"freemn":   "Freeman",
	"freman":   "Freeman",
	"free man": "Freeman",

	"killert": "Killer T",
	"killer":  "Killer T",
	"killa t": "Killer T",
	"killat":  "Killer T",

	"macheso":       "Alick Macheso",
	"alik macheso":  "Alick Macheso",
	"aleck macheso": "Alick Macheso",

	"jahsignal":  "Jah Signal",
	"jah singal": "Jah Signal",
	"ja signal":  "Jah Signal",

	"tockyvibes": "Tocky Vibes",
	"toky vibes": "Tocky Vibes",
	"tocky vibe": "Tocky Vibes",

	"ex q":  "ExQ",
	"ex-q":  "ExQ",
	"exque": "ExQ",

	"nuttyo": "Nutty O",
	"nutty":  "Nutty O",
	"nuty o": "Nutty O",

	"tigonzi":  "Ti Gonzi",
	"ti gonzy": "Ti Gonzi",
	"tigonzy":  "Ti Gonzi",

	"amara brown":  "Ammara Brown",
	"ammara":       "Ammara Brown",
	"ammarabrown":  "Ammara Brown",

	"tuku":            "Oliver Mtukudzi",
	"mtukudzi":        "Oliver Mtukudzi",
	"oliver mtukudzi": "Oliver Mtukudzi",

	"sulu":     "Suluman Chimbetu",
	"sulumani": "Suluman Chimbetu",
	"chimbetu": "Suluman Chimbetu",

	"takura teemba": "Takura",
	"takurateemba":  "Takura",

	"voltzjt": "Voltz JT",
	"voltz":   "Voltz JT",
	"voltsjt": "Voltz JT",
}

var (
	// Dash separator between artist and song, with or without spaces
	separatorRegex = regexp.MustCompile(`\s*-\s*`)

	featuringRegex    = regexp.MustCompile(`(?i)\bfeaturing\b`)
	featRegex         = regexp.MustCompile(`(?i)\bfeat\.?\b`)
	ftRegex           = regexp.MustCompile(`(?i)\bft\.?\b`)
	doublePeriodRegex = regexp.MustCompile(`feat\.\.+`)
	ampersandRegex    = regexp.MustCompile(`\s+&\s+`)
	collabXRegex      = regexp.MustCompile(`(?i)\s+x\s+`)
	prodByRegex       = regexp.MustCompile(`(?i)\bprod\.?\s*by\b`)
	producedByRegex   = regexp.MustCompile(`(?i)\bproduced\s*by\b`)
	multiSpaceRegex   = regexp.MustCompile(`\s+`)

	featClauseRegex  = regexp.MustCompile(`(?i)\s+feat\.?\s+(.+)$`)
	featSplitRegex   = regexp.MustCompile(`(?i),\s*|\s+and\s+`)
	andCollabRegex   = regexp.MustCompile(`(?i)\s+and\s+`)

	// Noise suffixes voters paste from video titles
	titleNoiseRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\(official\s*(music\s*)?(video|audio|lyrics?)\)`),
		regexp.MustCompile(`(?i)\[official\s*(music\s*)?(video|audio|lyrics?)\]`),
		regexp.MustCompile(`(?i)\(lyrics?\s*video\)`),
		regexp.MustCompile(`(?i)\[lyrics?\s*video\]`),
		regexp.MustCompile(`(?i)\(audio\)`),
		regexp.MustCompile(`(?i)\[audio\]`),
		regexp.MustCompile(`(?i)\(video\)`),
		regexp.MustCompile(`(?i)\[video\]`),
		regexp.MustCompile(`(?i)\(visualizer\)`),
		regexp.MustCompile(`(?i)\[visualizer\]`),
		regexp.MustCompile(`(?i)\(official\)`),
		regexp.MustCompile(`(?i)\[official\]`),
		regexp.MustCompile(`(?i)\(hd\)`),
		regexp.MustCompile(`(?i)\[hd\]`),
		regexp.MustCompile(`(?i)\(4k\)`),
		regexp.MustCompile(`(?i)\[4k\]`),
		regexp.MustCompile(`(?i)\(live\)`),
		regexp.MustCompile(`(?i)\[live\]`),
		regexp.MustCompile(`(?i)\(acoustic\)`),
		regexp.MustCompile(`(?i)\[acoustic\]`),
		regexp.MustCompile(`(?i)\(remix\)`),
		regexp.MustCompile(`(?i)\(radio\s*edit\)`),
		regexp.MustCompile(`(?i)\(extended\s*(mix|version)?\)`),
	}
)

// NormalizerService cleans free-form vote text into comparable artist and
// song fields. All methods are pure string transformations.
type NormalizerService struct {
	log logger.Logger
}

func NewNormalizerService() *NormalizerService {
	return &NormalizerService{
		log: logger.New("normalizerService"),
	}
}

// ParseVoteInput splits "Artist - Song" into its parts, tolerating missing
// spaces around the dash. Input without a dash is treated as a song-only
// vote when it is a plausible title length.
func (s *NormalizerService) ParseVoteInput(text string) (artist, song string, songOnly, ok bool) {
	if !strings.Contains(text, "-") {
		cleaned := strings.TrimSpace(text)
		if len(cleaned) >= 3 && len(cleaned) <= 100 {
			return "", cleaned, true, true
		}
		return "", "", false, false
	}

	parts := separatorRegex.Split(text, 2)
	if len(parts) != 2 {
		return "", "", false, false
	}

	artist = strings.TrimSpace(parts[0])
	song = strings.TrimSpace(parts[1])
	if len(artist) < 2 || len(song) < 2 {
		return "", "", false, false
	}

	return artist, song, false, true
}

// NormalizeCommonWords rewrites collaboration shorthand into one form so
// "ft", "ft.", "featuring" and " x " all become "feat.", and a standalone
// "&" becomes "and". Producer credits are dropped.
func (s *NormalizerService) NormalizeCommonWords(text string) string {
	text = featuringRegex.ReplaceAllString(text, "feat.")
	text = featRegex.ReplaceAllString(text, "feat.")
	text = ftRegex.ReplaceAllString(text, "feat.")
	text = doublePeriodRegex.ReplaceAllString(text, "feat.")
	text = ampersandRegex.ReplaceAllString(text, " and ")
	text = collabXRegex.ReplaceAllString(text, " feat. ")
	text = prodByRegex.ReplaceAllString(text, "")
	text = producedByRegex.ReplaceAllString(text, "")
	return strings.TrimSpace(multiSpaceRegex.ReplaceAllString(text, " "))
}

// CleanSongTitle strips video-platform noise like "(Official Video)".
func (s *NormalizerService) CleanSongTitle(title string) string {
	cleaned := title
	for _, pattern := range titleNoiseRegexes {
		cleaned = pattern.ReplaceAllString(cleaned, "")
	}
	cleaned = strings.TrimSpace(multiSpaceRegex.ReplaceAllString(cleaned, " "))
	return strings.Trim(cleaned, "- ")
}

// ExtractFeaturedArtists splits "Winky D feat. Holy Ten" into the main
// artist and featured list. "A and B" counts as a collaboration only when
// no dash is present, so song titles containing "and" stay intact.
func (s *NormalizerService) ExtractFeaturedArtists(text string) (string, []string) {
	if loc := featClauseRegex.FindStringSubmatchIndex(text); loc != nil {
		main := strings.TrimSpace(text[:loc[0]])
		featuredPart := strings.TrimSpace(text[loc[2]:loc[3]])
		var featured []string
		for _, name := range featSplitRegex.Split(featuredPart, -1) {
			if name = strings.TrimSpace(name); name != "" {
				featured = append(featured, name)
			}
		}
		return main, featured
	}

	if strings.Contains(strings.ToLower(text), " and ") && !strings.Contains(text, "-") {
		parts := andCollabRegex.Split(text, -1)
		if len(parts) >= 2 {
			main := strings.TrimSpace(parts[0])
			var featured []string
			for _, name := range parts[1:] {
				if name = strings.TrimSpace(name); name != "" {
					featured = append(featured, name)
				}
			}
			return main, featured
		}
	}

	return text, nil
}

// CorrectArtistTypo resolves an artist name through the typo dictionary,
// trying the literal name first and then a space-stripped variant.
func (s *NormalizerService) CorrectArtistTypo(artist string) string {
	lowered := strings.ToLower(strings.TrimSpace(artist))

	if corrected, ok := artistTypoCorrections[lowered]; ok {
		return corrected
	}

	if corrected, ok := artistTypoCorrections[strings.ReplaceAll(lowered, " ", "")]; ok {
		return corrected
	}

	return artist
}

// CleanVoteText runs the full cleaning pipeline over an artist and song
// pair: shorthand normalization, title noise removal, featured artist
// extraction with typo correction, and relocation of a "feat." clause
// that a voter left inside the song title.
func (s *NormalizerService) CleanVoteText(artistRaw, songRaw string) (string, string) {
	artist := s.NormalizeCommonWords(artistRaw)
	song := s.NormalizeCommonWords(songRaw)

	song = s.CleanSongTitle(song)

	mainArtist, featured := s.ExtractFeaturedArtists(artist)
	mainArtist = s.CorrectArtistTypo(mainArtist)

	corrected := make([]string, 0, len(featured))
	for _, name := range featured {
		corrected = append(corrected, s.CorrectArtistTypo(name))
	}

	songMain, songFeatured := s.ExtractFeaturedArtists(song)
	if len(songFeatured) > 0 {
		for _, name := range songFeatured {
			name = s.CorrectArtistTypo(name)
			if !containsFold(corrected, name) {
				corrected = append(corrected, name)
			}
		}
		song = songMain
	}

	if len(corrected) > 0 {
		artist = mainArtist + " feat. " + strings.Join(corrected, ", ")
	} else {
		artist = mainArtist
	}

	return strings.TrimSpace(artist), strings.TrimSpace(song)
}

func containsFold(names []string, name string) bool {
	for _, existing := range names {
		if strings.EqualFold(existing, name) {
			return true
		}
	}
	return false
}

// titleCase capitalizes the first letter of each word, mirroring how
// display names are presented on the chart.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if isLetter && !prevLetter {
			if r >= 'a' && r <= 'z' {
				r -= 'a' - 'A'
			}
		} else if isLetter && prevLetter {
			if r >= 'A' && r <= 'Z' {
				r += 'a' - 'A'
			}
		}
		prevLetter = isLetter
		b.WriteRune(r)
	}
	return b.String()
}

// CleanedVote is the fully resolved form of a single vote.
type CleanedVote struct {
	ArtistDisplay string
	SongDisplay   string
	MatchKey      string
	DisplayName   string
}

// DisplayForms produces the presentation strings and grouping key for a
// cleaned artist and song pair.
func (s *NormalizerService) DisplayForms(artist, song string) CleanedVote {
	artistDisplay := titleCase(strings.TrimSpace(multiSpaceRegex.ReplaceAllString(artist, " ")))
	songDisplay := titleCase(strings.TrimSpace(multiSpaceRegex.ReplaceAllString(song, " ")))

	return CleanedVote{
		ArtistDisplay: artistDisplay,
		SongDisplay:   songDisplay,
		MatchKey:      models.MatchKey(artistDisplay, songDisplay),
		DisplayName:   models.DisplayName(artistDisplay, songDisplay),
	}
}
