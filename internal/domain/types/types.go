// Package types contains the JSON views exchanged over the API
package types

import "time"

// Tribute is the public view of a contestant.
type Tribute struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Gender     string `json:"gender"`
	ImageURL   string `json:"image_url,omitempty"`
	DistrictID int    `json:"district_id"`
	Alive      bool   `json:"alive"`
	Kills      int    `json:"kills"`
	DeathDay   *int   `json:"death_day,omitempty"`
	DeathPhase string `json:"death_phase,omitempty"`
	KilledBy   string `json:"killed_by,omitempty"`
}

// District pairs two tribute IDs.
type District struct {
	ID       int      `json:"id"`
	Tributes []string `json:"tributes"`
}

// Event is a revealed or pending narrative event.
type Event struct {
	ID         string    `json:"id"`
	Day        int       `json:"day"`
	Phase      string    `json:"phase"`
	Text       string    `json:"text"`
	TemplateID string    `json:"template_id"`
	Tributes   []string  `json:"tributes"`
	Deaths     []string  `json:"deaths"`
	Killer     string    `json:"killer,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// GameSummary is the short form used in listings.
type GameSummary struct {
	ID        string    `json:"id"`
	Phase     string    `json:"phase"`
	Day       int       `json:"day"`
	Alive     int       `json:"alive"`
	Total     int       `json:"total"`
	Pending   int       `json:"pending"`
	Finished  bool      `json:"finished"`
	Winner    string    `json:"winner,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Game is the full view of one game.
type Game struct {
	GameSummary
	Seed         int64      `json:"seed"`
	LastFeastDay int        `json:"last_feast_day"`
	LastArenaDay int        `json:"last_arena_day"`
	Tributes     []Tribute  `json:"tributes"`
	Districts    []District `json:"districts"`
}

// Step reports the outcome of one simulated tick.
type Step struct {
	Phase     string   `json:"phase"`
	Events    []Event  `json:"events"`
	Deaths    []string `json:"deaths"`
	NextPhase string   `json:"next_phase"`
	NextDay   int      `json:"next_day"`
	GameOver  bool     `json:"game_over"`
	Winner    string   `json:"winner,omitempty"`
}

// Reveal reports one revealed event and the game state after its deaths.
type Reveal struct {
	Event    Event  `json:"event"`
	Pending  int    `json:"pending"`
	Alive    int    `json:"alive"`
	Finished bool   `json:"finished"`
	Winner   string `json:"winner,omitempty"`
}

// Placement is one row of the final standings.
type Placement struct {
	Rank    int     `json:"rank"`
	Tribute Tribute `json:"tribute"`
}

// BatchReport aggregates many games played to completion.
type BatchReport struct {
	Games          int              `json:"games"`
	Completed      int              `json:"completed"`
	Failed         int              `json:"failed"`
	NoSurvivor     int              `json:"no_survivor"`
	WinsByDistrict map[string]int   `json:"wins_by_district"`
	MeanDays       float64          `json:"mean_days"`
	MeanEvents     float64          `json:"mean_events"`
	TopKiller      string           `json:"top_killer,omitempty"`
	TopKills       int              `json:"top_kills"`
	TopKillers     []KillerStanding `json:"top_killers"`
	DurationMillis int64            `json:"duration_ms"`
}

// KillerStanding is one row of a batch's kill leaderboard, summed over
// every completed game.
type KillerStanding struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Kills int    `json:"kills"`
	Best  int    `json:"best"`
	Games int    `json:"games"`
	Wins  int    `json:"wins"`
}

// TributeInput is one cast entry in a create or batch request.
type TributeInput struct {
	Name     string `json:"name"`
	Gender   string `json:"gender,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// CreateGame is the body of POST /games. An empty cast uses the default one.
type CreateGame struct {
	Tributes []TributeInput `json:"tributes,omitempty"`
	Seed     *int64         `json:"seed,omitempty"`
}

// BatchRequest is the body of POST /batch. With a seed, game i is seeded
// with seed+i so the whole batch is reproducible.
type BatchRequest struct {
	Games    int            `json:"games"`
	Tributes []TributeInput `json:"tributes,omitempty"`
	Seed     *int64         `json:"seed,omitempty"`
}
