package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"chartline/config"

	logger "github.com/Bparsons0904/goLogger"
)

const (
	spotifyTokenURL  = "https://accounts.spotify.com/api/token"
	spotifySearchURL = "https://api.spotify.com/v1/search"

	// Zimbabwe market code
	spotifyMarket = "ZW"

	// Auto-accept threshold, tuned low enough to catch local releases
	searchHighConfidence = 0.80
	searchLowConfidence  = 0.40

	// Score boost for known Zimbabwean artists
	zimArtistBoost = 0.15
)

// Fallback list of known Zimbabwean artists, used alongside the
// verified-artist table so enrichment favors local releases even before
// the catalog has been populated.
var zimArtistsFallback = map[string]struct{}{
	"winky d": {}, "vigilance": {}, "tocky vibes": {}, "killer t": {}, "freeman": {},
	"takura": {}, "exq": {}, "nutty o": {}, "holy ten": {}, "ti gonzi": {}, "voltz jt": {},
	"enzo ishall": {}, "jah signal": {}, "soul jah love": {}, "seh calaz": {}, "dobba don": {},
	"silent killer": {}, "hwindi president": {}, "djembe monk": {}, "poptain": {},
	"shinsoman": {}, "ricky fire": {}, "dhadza d": {}, "blot": {}, "guspy warrior": {},
	"alick macheso": {}, "macheso": {}, "suluman chimbetu": {}, "simon chimbetu": {},
	"leonard dembo": {}, "system tazvida": {}, "somandla ndebele": {}, "tongai moyo": {},
	"nicholas zakaria": {}, "leonard zhakata": {}, "mark ngwazi": {}, "tryson chimbetu": {},
	"peter moyo": {}, "oliver mtukudzi": {}, "tuku": {}, "thomas mapfumo": {}, "mapfumo": {},
	"stella chiweshe": {}, "chiwoniso maraire": {}, "hope masike": {}, "mokoomba": {},
	"zimpraise": {}, "mechanic manyeruke": {}, "sabastian magacha": {},
	"jah prayzah": {}, "ammara brown": {}, "gemma griffiths": {}, "shashl": {},
	"sha sha": {}, "cindy munyavi": {}, "hillzy": {}, "novuyo seagirl": {}, "feli nandi": {},
	"janet manyowa": {}, "tammy moyo": {}, "kae chaps": {}, "simba tagz": {}, "asaph": {},
	"tehn diamond": {}, "roki": {}, "buffalo souljah": {}, "ishan": {}, "crooger": {},
	"minister michael mahendere": {}, "mathias mhere": {}, "blessing shumba": {},
	"charles charamba": {}, "fungisai zvakavapano": {}, "mkhululi bhebhe": {},
	"saintfloew": {}, "uncle epatan": {}, "tamy moyo": {}, "nobuntu": {},
	"dj tamuka": {}, "mc chita": {}, "platinum prince": {}, "stunner": {},
}

// CatalogTrack is one external catalog search result.
type CatalogTrack struct {
	ID         string
	Title      string
	Artists    []string
	Album      string
	ImageURL   string
	PreviewURL string
	Popularity int
}

// CatalogSearchService enriches canonical songs with Spotify metadata.
// Searches run several query strategies and score every unique result;
// a title that barely matches is penalized so a right-artist-wrong-song
// result can never win on artist similarity alone.
type CatalogSearchService struct {
	config config.Config
	client *http.Client
	log    logger.Logger

	tokenMu     sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewCatalogSearchService(config config.Config) *CatalogSearchService {
	return &CatalogSearchService{
		config: config,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    logger.New("catalogSearchService"),
	}
}

// Enabled reports whether catalog search is configured and turned on.
func (s *CatalogSearchService) Enabled() bool {
	return s.config.CatalogSearchEnabled &&
		s.config.SpotifyClientID != "" &&
		s.config.SpotifyClientSecret != ""
}

// HighConfidence reports whether a score clears the auto-accept bar.
func (s *CatalogSearchService) HighConfidence(score float64) bool {
	return score >= searchHighConfidence
}

// ResolveWithConfidence searches for a track and returns the best match
// with its confidence score. knownArtists is the normalized alias set
// from the verified-artist table; matches by local artists get a boost.
func (s *CatalogSearchService) ResolveWithConfidence(
	ctx context.Context,
	artist, title string,
	knownArtists map[string]string,
) (*CatalogTrack, float64, error) {
	log := s.log.Function("ResolveWithConfidence")

	queries := []struct {
		query  string
		limit  int
		market string
	}{
		{query: artist + " " + title, limit: 10, market: spotifyMarket},
		{query: "track:" + title + " artist:" + artist, limit: 5, market: spotifyMarket},
		{query: title, limit: 5, market: spotifyMarket},
		{query: artist, limit: 5, market: spotifyMarket},
		{query: artist + " " + title, limit: 5, market: ""},
	}

	if strings.Contains(title, " ") {
		titleNoSpaces := strings.ReplaceAll(title, " ", "")
		queries = append(queries,
			struct {
				query  string
				limit  int
				market string
			}{query: artist + " " + titleNoSpaces, limit: 5, market: spotifyMarket},
			struct {
				query  string
				limit  int
				market string
			}{query: titleNoSpaces, limit: 5, market: spotifyMarket},
		)
	}

	seen := make(map[string]struct{})
	var results []CatalogTrack

	for i, q := range queries {
		tracks, err := s.search(ctx, q.query, q.limit, q.market)
		if err != nil {
			// The first strategy failing means search is down
			if i == 0 {
				return nil, 0, log.Err("catalog search failed", err, "artist", artist, "title", title)
			}
			log.Warn("search strategy failed", "query", q.query, "error", err)
			continue
		}
		for _, track := range tracks {
			if _, ok := seen[track.ID]; ok {
				continue
			}
			seen[track.ID] = struct{}{}
			results = append(results, track)
		}
	}

	if len(results) == 0 {
		return nil, 0.0, nil
	}

	var best *CatalogTrack
	bestScore := -1.0

	for i := range results {
		track := &results[i]
		score := scoreTrack(artist, title, track)

		// Popularity as a tie-breaker, max +0.1
		score += float64(track.Popularity) / 1000

		if isKnownArtist(track.Artists, knownArtists) {
			score += zimArtistBoost
		}

		if score > bestScore {
			bestScore = score
			best = track
		}
	}

	if bestScore > 1.0 {
		bestScore = 1.0
	}

	log.Info(
		"best catalog match",
		"query", artist+" - "+title,
		"match", best.Title,
		"matchArtists", strings.Join(best.Artists, ", "),
		"confidence", bestScore,
	)

	return best, bestScore, nil
}

// scoreTrack weighs title similarity over artist similarity 60/40, with
// a hard penalty when the title barely matches.
func scoreTrack(artist, title string, track *CatalogTrack) float64 {
	artistSim := charSimilarity(lowerClean(artist), lowerClean(strings.Join(track.Artists, ", ")))
	titleSim := charSimilarity(lowerClean(title), lowerClean(track.Title))

	if titleSim < 0.3 {
		return titleSim * 0.5
	}

	return artistSim*0.4 + titleSim*0.6
}

func lowerClean(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func isKnownArtist(artists []string, knownArtists map[string]string) bool {
	for _, artist := range artists {
		lowered := lowerClean(artist)
		if _, ok := zimArtistsFallback[lowered]; ok {
			return true
		}
		if _, ok := knownArtists[lowered]; ok {
			return true
		}
		for known := range knownArtists {
			if strings.Contains(lowered, known) || strings.Contains(known, lowered) {
				return true
			}
		}
	}
	return false
}

func (s *CatalogSearchService) search(
	ctx context.Context,
	query string,
	limit int,
	market string,
) ([]CatalogTrack, error) {
	token, err := s.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", fmt.Sprintf("%d", limit))
	if market != "" {
		params.Set("market", market)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		spotifySearchURL+"?"+params.Encode(),
		nil,
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify search returned %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var parsed struct {
		Tracks struct {
			Items []struct {
				ID      string `json:"id"`
				Name    string `json:"name"`
				Artists []struct {
					Name string `json:"name"`
				} `json:"artists"`
				Album struct {
					Name   string `json:"name"`
					Images []struct {
						URL string `json:"url"`
					} `json:"images"`
				} `json:"album"`
				PreviewURL *string `json:"preview_url"`
				Popularity int     `json:"popularity"`
			} `json:"items"`
		} `json:"tracks"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	tracks := make([]CatalogTrack, 0, len(parsed.Tracks.Items))
	for _, item := range parsed.Tracks.Items {
		track := CatalogTrack{
			ID:         item.ID,
			Title:      item.Name,
			Album:      item.Album.Name,
			Popularity: item.Popularity,
		}
		for _, artist := range item.Artists {
			track.Artists = append(track.Artists, artist.Name)
		}
		if len(item.Album.Images) > 0 {
			track.ImageURL = item.Album.Images[0].URL
		}
		if item.PreviewURL != nil {
			track.PreviewURL = *item.PreviewURL
		}
		tracks = append(tracks, track)
	}

	return tracks, nil
}

// getAccessToken returns a cached client-credentials token, refreshing
// it shortly before expiry.
func (s *CatalogSearchService) getAccessToken(ctx context.Context) (string, error) {
	s.tokenMu.Lock()
	defer s.tokenMu.Unlock()

	if s.accessToken != "" && time.Now().Before(s.tokenExpiry) {
		return s.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		spotifyTokenURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(s.config.SpotifyClientID, s.config.SpotifyClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("spotify token request returned %d", resp.StatusCode)
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if parsed.AccessToken == "" {
		return "", fmt.Errorf("spotify token response missing access token")
	}

	s.accessToken = parsed.AccessToken
	s.tokenExpiry = time.Now().Add(time.Duration(parsed.ExpiresIn-60) * time.Second)

	return s.accessToken, nil
}
