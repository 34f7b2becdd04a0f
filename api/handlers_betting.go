package api

import (
	"net/http"
	"strconv"

	"matchday/domain/entities"
	"matchday/domain/interfaces"
)

type placeBetRequest struct {
	MatchID         int64  `json:"match_id"`
	ChallengeID     *int64 `json:"challenge_id,omitempty"`
	PredictionType  string `json:"prediction_type"`
	PredictionValue string `json:"prediction_value"`
	Amount          int64  `json:"amount"`
}

func (s *Server) handlePlaceBet(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := urlParamInt64(r, "leagueID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid league ID")
		return
	}
	var req placeBetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	input := interfaces.PlaceBetInput{
		UserID:          requestUserID(r),
		LeagueID:        leagueID,
		MatchID:         req.MatchID,
		ChallengeID:     req.ChallengeID,
		PredictionType:  req.PredictionType,
		PredictionValue: req.PredictionValue,
		Amount:          req.Amount,
	}

	var result *entities.PlaceBetResult
	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		var err error
		result, err = s.bettingService(uow).PlaceBet(r.Context(), input)
		return err
	})
	if err != nil {
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleListBets(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := urlParamInt64(r, "leagueID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid league ID")
		return
	}
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	var bets []*entities.Bet
	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		var err error
		bets, err = uow.BetRepository().GetByUserAndLeague(r.Context(), requestUserID(r), leagueID, limit)
		return err
	})
	if err != nil {
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bets)
}

func (s *Server) handleWeeklyLimit(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := urlParamInt64(r, "leagueID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid league ID")
		return
	}

	var status *entities.WeeklyLimitStatus
	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		var err error
		status, err = s.bettingService(uow).WeeklyLimitStatus(r.Context(), requestUserID(r), leagueID)
		return err
	})
	if err != nil {
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}
