package api

import (
	"net/http"
	"strconv"

	"matchday/domain/entities"
	"matchday/domain/interfaces"
)

func (s *Server) handleCompetitionChangeCheck(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := urlParamInt64(r, "leagueID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid league ID")
		return
	}

	var check *entities.CompetitionChangeCheck
	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		var err error
		check, err = s.competitionService(uow).CanChangeCompetition(r.Context(), leagueID)
		return err
	})
	if err != nil {
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, check)
}

type changeCompetitionRequest struct {
	CompetitionID int64 `json:"competition_id"`
}

func (s *Server) handleChangeCompetition(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := urlParamInt64(r, "leagueID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid league ID")
		return
	}
	var req changeCompetitionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var check *entities.CompetitionChangeCheck
	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		var err error
		check, err = s.competitionService(uow).ChangeCompetition(r.Context(), requestUserID(r), leagueID, req.CompetitionID)
		return err
	})
	if err != nil {
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, check)
}

func (s *Server) handleListCompetitions(w http.ResponseWriter, r *http.Request) {
	var competitions []*entities.Competition
	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		var err error
		competitions, err = uow.MatchRepository().ListCompetitions(r.Context())
		return err
	})
	if err != nil {
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, competitions)
}

func (s *Server) handleUpcomingMatches(w http.ResponseWriter, r *http.Request) {
	competitionID, ok := urlParamInt64(r, "competitionID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid competition ID")
		return
	}
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	var matches []*entities.Match
	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		var err error
		matches, err = uow.MatchRepository().GetUpcomingByCompetition(r.Context(), competitionID, s.clock.Now(), limit)
		return err
	})
	if err != nil {
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, matches)
}
