package models

import "time"

type Pair struct {
	ID         string    `json:"id" db:"id"`
	CategoryID string    `json:"category_id" db:"category_id"`
	Player1    string    `json:"player1" db:"player1"`
	Player2    string    `json:"player2" db:"player2"`
	Seed       *int      `json:"seed,omitempty" db:"seed"`
	Email      *string   `json:"email,omitempty" db:"email"`
	Phone      *string   `json:"phone,omitempty" db:"phone"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// DisplayName joins both player names.
func (p *Pair) DisplayName() string {
	if p == nil {
		return "TBD"
	}
	if p.Player2 == "" {
		return p.Player1
	}
	return p.Player1 + " / " + p.Player2
}

type Category struct {
	ID           string  `json:"id" db:"id"`
	TournamentID string  `json:"tournament_id" db:"tournament_id"`
	Name         string  `json:"name" db:"name"`
	Slug         *string `json:"slug,omitempty" db:"slug"`
	MinPairs     int     `json:"min_pairs" db:"min_pairs"`
	MaxPairs     int     `json:"max_pairs" db:"max_pairs"`

	// DivisionRank orders categories for scheduling; higher ranks are placed first.
	DivisionRank *int `json:"division_rank,omitempty" db:"division_rank"`
}

type Group struct {
	ID         string   `json:"id" db:"id"`
	CategoryID string   `json:"category_id" db:"category_id"`
	Name       string   `json:"name" db:"name"`
	PairIDs    []string `json:"pair_ids" db:"pair_ids"`
}

type Court struct {
	ID           string `json:"id" db:"id"`
	TournamentID string `json:"tournament_id" db:"tournament_id"`
	Name         string `json:"name" db:"name"`
}
