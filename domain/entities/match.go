package entities

import (
	"time"
)

// MatchStatus represents the lifecycle state of an ingested fixture
type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusLive      MatchStatus = "live"
	MatchStatusFinished  MatchStatus = "finished"
	MatchStatusCancelled MatchStatus = "cancelled"
)

// Competition represents an ingested competition (e.g. a national league)
// that a league can track. Written only by the external sync collaborator.
type Competition struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Sport     string    `db:"sport" json:"sport"`
	Season    string    `db:"season" json:"season"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Match represents an ingested fixture with its kickoff time, odds and
// final score. The core reads matches and never writes them; scores and
// odds are upserted by the external sync collaborator.
type Match struct {
	ID            int64       `db:"id" json:"id"`
	CompetitionID int64       `db:"competition_id" json:"competition_id"`
	HomeTeam      string      `db:"home_team" json:"home_team"`
	AwayTeam      string      `db:"away_team" json:"away_team"`
	KickoffAt     time.Time   `db:"kickoff_at" json:"kickoff_at"`
	Status        MatchStatus `db:"status" json:"status"`
	HomeScore     *int        `db:"home_score" json:"home_score"`
	AwayScore     *int        `db:"away_score" json:"away_score"`
	HomeOdds      float64     `db:"home_odds" json:"home_odds"`
	DrawOdds      float64     `db:"draw_odds" json:"draw_odds"`
	AwayOdds      float64     `db:"away_odds" json:"away_odds"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updated_at"`
}

// HasResult reports whether the match finished with a usable final score.
func (m *Match) HasResult() bool {
	return m.Status == MatchStatusFinished && m.HomeScore != nil && m.AwayScore != nil
}

// Result returns the final outcome of the match. The second return value
// is false while no usable result exists.
func (m *Match) Result() (Outcome, bool) {
	if !m.HasResult() {
		return "", false
	}
	switch {
	case *m.HomeScore > *m.AwayScore:
		return OutcomeHome, true
	case *m.HomeScore < *m.AwayScore:
		return OutcomeAway, true
	default:
		return OutcomeDraw, true
	}
}

// OddsFor returns the decimal odds for a predicted outcome.
func (m *Match) OddsFor(outcome Outcome) float64 {
	switch outcome {
	case OutcomeHome:
		return m.HomeOdds
	case OutcomeDraw:
		return m.DrawOdds
	case OutcomeAway:
		return m.AwayOdds
	default:
		return 0
	}
}
