package models

// Standing is derived from completed group matches; it is never stored.
type Standing struct {
	PairID        string `json:"pair_id"`
	GroupID       string `json:"group_id,omitempty"`
	Position      int    `json:"position"`
	MatchesPlayed int    `json:"matches_played"`
	MatchesWon    int    `json:"matches_won"`
	MatchesLost   int    `json:"matches_lost"`
	SetsFor       int    `json:"sets_for"`
	SetsAgainst   int    `json:"sets_against"`
	SetsDiff      int    `json:"sets_diff"`
	GamesFor      int    `json:"games_for"`
	GamesAgainst  int    `json:"games_against"`
	GamesDiff     int    `json:"games_diff"`
	Points        int    `json:"points"`

	Pair *Pair `json:"pair,omitempty"`
}
