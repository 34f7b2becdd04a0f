package api

import (
	"net/http"

	"matchday/domain/entities"
	"matchday/domain/interfaces"
)

type createChallengeRequest struct {
	MatchID int64 `json:"match_id"`
}

func (s *Server) handleCreateChallenge(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := urlParamInt64(r, "leagueID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid league ID")
		return
	}
	var req createChallengeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var result *entities.CreateChallengeResult
	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		var err error
		result, err = s.challengeService(uow).CreateChallenge(r.Context(), requestUserID(r), leagueID, req.MatchID)
		return err
	})
	if err != nil {
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleChallengeDetail(w http.ResponseWriter, r *http.Request) {
	challengeID, ok := urlParamInt64(r, "challengeID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid challenge ID")
		return
	}

	var detail *entities.ChallengeDetail
	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		var err error
		detail, err = s.challengeService(uow).GetChallengeDetail(r.Context(), challengeID)
		return err
	})
	if err != nil {
		respondInternalError(w, err)
		return
	}
	if detail == nil {
		respondError(w, http.StatusNotFound, "challenge not found")
		return
	}
	respondJSON(w, http.StatusOK, detail)
}
