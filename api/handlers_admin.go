package api

import (
	"net/http"
	"time"

	"matchday/domain/entities"
	"matchday/domain/interfaces"
)

func (s *Server) handleAdminOverview(w http.ResponseWriter, r *http.Request) {
	var overview *entities.AdminOverview
	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		var err error
		overview, err = s.statsService(uow).GetAdminOverview(r.Context())
		return err
	})
	if err != nil {
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

func (s *Server) handleFreezeWallet(w http.ResponseWriter, r *http.Request) {
	s.handleSetFrozen(w, r, true)
}

func (s *Server) handleUnfreezeWallet(w http.ResponseWriter, r *http.Request) {
	s.handleSetFrozen(w, r, false)
}

func (s *Server) handleSetFrozen(w http.ResponseWriter, r *http.Request, frozen bool) {
	leagueID, ok := urlParamInt64(r, "leagueID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid league ID")
		return
	}

	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		if frozen {
			return s.walletService(uow).Freeze(r.Context(), leagueID)
		}
		return s.walletService(uow).Unfreeze(r.Context(), leagueID)
	})
	if err != nil {
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

type createCompetitionRequest struct {
	Name   string `json:"name"`
	Sport  string `json:"sport"`
	Season string `json:"season"`
}

func (s *Server) handleCreateCompetition(w http.ResponseWriter, r *http.Request) {
	var req createCompetitionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "competition name is required")
		return
	}

	competition := &entities.Competition{
		Name:     req.Name,
		Sport:    req.Sport,
		Season:   req.Season,
		IsActive: true,
	}
	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		return uow.MatchRepository().CreateCompetition(r.Context(), competition)
	})
	if err != nil {
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, competition)
}

type createMatchRequest struct {
	CompetitionID int64     `json:"competition_id"`
	HomeTeam      string    `json:"home_team"`
	AwayTeam      string    `json:"away_team"`
	KickoffAt     time.Time `json:"kickoff_at"`
	HomeOdds      float64   `json:"home_odds"`
	DrawOdds      float64   `json:"draw_odds"`
	AwayOdds      float64   `json:"away_odds"`
}

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.HomeTeam == "" || req.AwayTeam == "" || req.KickoffAt.IsZero() {
		respondError(w, http.StatusBadRequest, "home_team, away_team and kickoff_at are required")
		return
	}

	match := &entities.Match{
		CompetitionID: req.CompetitionID,
		HomeTeam:      req.HomeTeam,
		AwayTeam:      req.AwayTeam,
		KickoffAt:     req.KickoffAt,
		Status:        entities.MatchStatusScheduled,
		HomeOdds:      req.HomeOdds,
		DrawOdds:      req.DrawOdds,
		AwayOdds:      req.AwayOdds,
	}
	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		return uow.MatchRepository().CreateMatch(r.Context(), match)
	})
	if err != nil {
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, match)
}

type recordResultRequest struct {
	HomeScore *int `json:"home_score"`
	AwayScore *int `json:"away_score"`
	Cancelled bool `json:"cancelled"`
}

// handleRecordResult stores a match's final result and immediately grades
// all pending bets on it inside the same transaction.
func (s *Server) handleRecordResult(w http.ResponseWriter, r *http.Request) {
	matchID, ok := urlParamInt64(r, "matchID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid match ID")
		return
	}
	var req recordResultRequest
	if !decodeBody(w, r, &req) {
		return
	}

	status := entities.MatchStatusFinished
	homeScore, awayScore := 0, 0
	if req.Cancelled {
		status = entities.MatchStatusCancelled
	} else {
		if req.HomeScore == nil || req.AwayScore == nil {
			respondError(w, http.StatusBadRequest, "home_score and away_score are required")
			return
		}
		homeScore, awayScore = *req.HomeScore, *req.AwayScore
	}

	var summary *entities.SettlementSummary
	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		if err := uow.MatchRepository().RecordResult(r.Context(), matchID, homeScore, awayScore, status); err != nil {
			return err
		}
		var err error
		summary, err = s.bettingService(uow).SettleMatch(r.Context(), matchID)
		return err
	})
	if err != nil {
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
