package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"chartline/config"
	"chartline/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

const (
	anthropicAPIURL  = "https://api.anthropic.com/v1/messages"
	anthropicVersion = "2023-06-01"
	anthropicModel   = "claude-3-haiku-20240307"

	// Catalog and batch caps keep a single prompt within token limits
	maxSongsInPrompt   = 500
	semanticBatchSize  = 20
	anthropicMaxTokens = 4096
)

const semanticSystemPrompt = `You are a Zimbabwean music expert matching messy user votes to a database of verified songs.

Your job is to match user-submitted votes (which may be misspelled, incomplete, or in wrong format) to the correct song from the verified database.

RULES:
1. Match votes to the EXACT song from the provided list when possible
2. Handle common issues:
   - Missing artist name (just song title): Match if song title is unique enough
   - No dash separator: "Winky D Ijipita" should match "Winky D - Ijipita"
   - Typos: "winkyd", "jah prayza", "holy10" etc.
   - Numbers: Some users vote by typing just a number - this might mean chart position, ignore these
3. Only return HIGH confidence if you're 95%+ sure
4. Return MEDIUM if you're 70-95% sure
5. Return LOW or NONE if unsure - don't guess!

IMPORTANT: You must match to songs in the provided list ONLY. Do not invent matches.`

// VoteToMatch is one unresolved tally entry sent for semantic matching.
type VoteToMatch struct {
	DisplayName string
	MatchKey    string
	Count       int
}

// SemanticMatchResult is the model's verdict for one vote.
type SemanticMatchResult struct {
	RawInput        string
	MatchKey        string
	MatchedSongID   *uuid.UUID
	MatchedSongName string
	Confidence      models.ConfidenceTier
	Reasoning       string
	ShouldAutoLink  bool
}

// PendingReviewResult is the model's verdict for one pending catalog entry.
type PendingReviewResult struct {
	PendingID   uuid.UUID
	PendingName string
	Action      models.DecisionAction
	MatchedID   *uuid.UUID
	MatchedName string
	Confidence  models.ConfidenceTier
	Reasoning   string
}

// SemanticMatcherService resolves votes that fuzzy matching could not,
// by asking an LLM to compare them against the verified catalog. Songs
// are referenced by list position in the prompt, never by UUID, so a
// hallucinated identifier cannot point at a real row.
type SemanticMatcherService struct {
	config config.Config
	client *http.Client
	log    logger.Logger
}

func NewSemanticMatcherService(config config.Config) *SemanticMatcherService {
	return &SemanticMatcherService{
		config: config,
		client: &http.Client{Timeout: 120 * time.Second},
		log:    logger.New("semanticMatcherService"),
	}
}

// Enabled reports whether semantic matching is configured and turned on.
func (s *SemanticMatcherService) Enabled() bool {
	return s.config.SemanticMatchEnabled && s.config.AnthropicAPIKey != ""
}

// BatchSize is the number of votes sent per prompt.
func (s *SemanticMatcherService) BatchSize() int {
	return semanticBatchSize
}

// MatchVotes asks the model to match a batch of unresolved votes against
// the verified catalog. Parse or transport failures degrade to an error
// so callers can fall back to leaving the votes pending.
func (s *SemanticMatcherService) MatchVotes(
	ctx context.Context,
	votes []VoteToMatch,
	songs []models.CanonicalSong,
) ([]SemanticMatchResult, error) {
	log := s.log.Function("MatchVotes")

	if len(votes) == 0 || len(songs) == 0 {
		return nil, nil
	}
	if len(songs) > maxSongsInPrompt {
		songs = songs[:maxSongsInPrompt]
	}

	prompt := buildVoteMatchingPrompt(votes, songs)

	responseText, err := s.callAPI(ctx, prompt)
	if err != nil {
		return nil, log.Err("anthropic call failed", err, "votes", len(votes))
	}

	var rawResults []struct {
		VoteIndex     int    `json:"vote_index"`
		MatchKey      string `json:"match_key"`
		MatchedSongID *int   `json:"matched_song_id"`
		Confidence    string `json:"confidence"`
		Reasoning     string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(extractJSONArray(responseText)), &rawResults); err != nil {
		return nil, log.Err("failed to parse model response", err, "response", truncate(responseText, 500))
	}

	results := make([]SemanticMatchResult, 0, len(rawResults))
	for _, r := range rawResults {
		if r.VoteIndex < 0 || r.VoteIndex >= len(votes) {
			continue
		}
		vote := votes[r.VoteIndex]

		confidence := parseConfidence(r.Confidence)

		var matchedID *uuid.UUID
		var matchedName string
		if r.MatchedSongID != nil && *r.MatchedSongID >= 0 && *r.MatchedSongID < len(songs) {
			song := songs[*r.MatchedSongID]
			matchedID = &song.ID
			matchedName = song.CanonicalName
		}

		results = append(results, SemanticMatchResult{
			RawInput:        vote.DisplayName,
			MatchKey:        vote.MatchKey,
			MatchedSongID:   matchedID,
			MatchedSongName: matchedName,
			Confidence:      confidence,
			Reasoning:       r.Reasoning,
			ShouldAutoLink:  confidence == models.ConfidenceHigh && matchedID != nil,
		})
	}

	return results, nil
}

// ReviewPending asks the model to classify pending catalog entries as a
// duplicate of a verified song, spam, or a genuinely new song.
func (s *SemanticMatcherService) ReviewPending(
	ctx context.Context,
	pending []models.CanonicalSong,
	verified []models.CanonicalSong,
) ([]PendingReviewResult, error) {
	log := s.log.Function("ReviewPending")

	if len(pending) == 0 || len(verified) == 0 {
		return nil, nil
	}
	if len(verified) > maxSongsInPrompt {
		verified = verified[:maxSongsInPrompt]
	}

	prompt := buildPendingReviewPrompt(pending, verified)

	responseText, err := s.callAPI(ctx, prompt)
	if err != nil {
		return nil, log.Err("anthropic call failed", err, "pending", len(pending))
	}

	var rawResults []struct {
		PendingIndex      int    `json:"pending_index"`
		Action            string `json:"action"`
		MatchedVerifiedID *int   `json:"matched_verified_id"`
		Confidence        string `json:"confidence"`
		Reasoning         string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(extractJSONArray(responseText)), &rawResults); err != nil {
		return nil, log.Err("failed to parse model response", err, "response", truncate(responseText, 500))
	}

	results := make([]PendingReviewResult, 0, len(rawResults))
	for _, r := range rawResults {
		if r.PendingIndex < 0 || r.PendingIndex >= len(pending) {
			continue
		}
		entry := pending[r.PendingIndex]

		action := models.DecisionAction(strings.ToLower(r.Action))
		switch action {
		case models.ActionMatch, models.ActionReject, models.ActionNew:
		default:
			action = models.ActionNew
		}

		var matchedID *uuid.UUID
		var matchedName string
		if r.MatchedVerifiedID != nil && *r.MatchedVerifiedID >= 0 && *r.MatchedVerifiedID < len(verified) {
			song := verified[*r.MatchedVerifiedID]
			matchedID = &song.ID
			matchedName = song.CanonicalName
		}

		results = append(results, PendingReviewResult{
			PendingID:   entry.ID,
			PendingName: entry.CanonicalName,
			Action:      action,
			MatchedID:   matchedID,
			MatchedName: matchedName,
			Confidence:  parseConfidence(r.Confidence),
			Reasoning:   r.Reasoning,
		})
	}

	return results, nil
}

func (s *SemanticMatcherService) callAPI(ctx context.Context, prompt string) (string, error) {
	if s.config.AnthropicAPIKey == "" {
		return "", fmt.Errorf("anthropic api key is not configured")
	}

	payload := map[string]any{
		"model":      anthropicModel,
		"max_tokens": anthropicMaxTokens,
		"system":     semanticSystemPrompt,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": 0.1,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicAPIURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", s.config.AnthropicAPIKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("anthropic api returned %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var parsed struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Content) == 0 {
		return "", nil
	}

	return parsed.Content[0].Text, nil
}

func buildVoteMatchingPrompt(votes []VoteToMatch, songs []models.CanonicalSong) string {
	var songsText strings.Builder
	for i, song := range songs {
		fmt.Fprintf(&songsText, "  [%d] %s\n", i, song.CanonicalName)
	}

	var votesText strings.Builder
	for i, vote := range votes {
		fmt.Fprintf(&votesText, "  %d. %q (match_key: %s)\n", i, vote.DisplayName, vote.MatchKey)
	}

	return fmt.Sprintf(`Match these user votes to the verified songs database.

VERIFIED SONGS DATABASE (format: [ID] Artist - Song Title):
%s
USER VOTES TO MATCH (format: INDEX. "vote text"):
%s
INSTRUCTIONS:
1. For each vote, find the EXACT or closest matching song from the database above
2. Match by BOTH artist AND song title - they should both match
3. Handle typos: "winkyd" = "Winky D", "jah prayza" = "Jah Prayzah"
4. Return the song ID number from the database in matched_song_id

Respond with ONLY a JSON array:
[
  {
    "vote_index": 0,
    "match_key": "copy the match_key from the vote",
    "matched_song_id": 41,
    "confidence": "high",
    "reasoning": "Exact match"
  }
]

Confidence levels:
- "high": Exact or near-exact match (same artist + same song)
- "medium": Likely match but artist OR song has significant differences
- "low" or "none": Cannot find a match, set matched_song_id to null
- If vote is just a number or gibberish, set matched_song_id to null`, songsText.String(), votesText.String())
}

func buildPendingReviewPrompt(pending, verified []models.CanonicalSong) string {
	var verifiedText strings.Builder
	for i, song := range verified {
		fmt.Fprintf(&verifiedText, "  [%d] %s\n", i, song.CanonicalName)
	}

	var pendingText strings.Builder
	for i, song := range pending {
		fmt.Fprintf(&pendingText, "  %d. %q\n", i, song.CanonicalName)
	}

	return fmt.Sprintf(`Match these PENDING songs to VERIFIED songs in the database.

VERIFIED SONGS DATABASE (these are correct, canonical song names):
%s
PENDING SONGS TO REVIEW (format: INDEX. "name", may have typos or be duplicates):
%s
TASK: For each pending song, determine if it matches a verified song.
- If it's the same song (even with typos), return the verified song's ID
- If it's spam, gibberish, or not a real song, mark as "reject"
- If it's a valid song but NOT in verified list, mark as "new"

Respond with ONLY a JSON array:
[
  {
    "pending_index": 0,
    "action": "match" or "reject" or "new",
    "matched_verified_id": 4 or null,
    "confidence": "high" or "medium" or "low",
    "reasoning": "brief explanation"
  }
]`, verifiedText.String(), pendingText.String())
}

// extractJSONArray pulls the first JSON array out of a model response,
// tolerating markdown code fences and surrounding prose.
func extractJSONArray(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		lines := strings.Split(text, "\n")
		if len(lines) > 2 {
			text = strings.Join(lines[1:len(lines)-1], "\n")
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start != -1 && end > start {
		return text[start : end+1]
	}

	return text
}

func parseConfidence(confidence string) models.ConfidenceTier {
	switch strings.ToLower(confidence) {
	case "high":
		return models.ConfidenceHigh
	case "medium":
		return models.ConfidenceMedium
	case "low":
		return models.ConfidenceLow
	default:
		return models.ConfidenceNone
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
