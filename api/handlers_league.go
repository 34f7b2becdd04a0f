package api

import (
	"net/http"

	"matchday/domain/entities"
	"matchday/domain/interfaces"
)

type createLeagueRequest struct {
	Name      string `json:"name"`
	IsPrivate bool   `json:"is_private"`
}

func (s *Server) handleCreateLeague(w http.ResponseWriter, r *http.Request) {
	var req createLeagueRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "league name is required")
		return
	}

	var league *entities.League
	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		var err error
		league, err = s.leagueService(uow).CreateLeague(r.Context(), requestUserID(r), req.Name, req.IsPrivate)
		return err
	})
	if err != nil {
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, league)
}

type joinLeagueRequest struct {
	InviteCode string `json:"invite_code"`
}

func (s *Server) handleJoinLeague(w http.ResponseWriter, r *http.Request) {
	var req joinLeagueRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var result *entities.JoinResult
	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		var err error
		result, err = s.leagueService(uow).JoinLeague(r.Context(), requestUserID(r), req.InviteCode)
		return err
	})
	if err != nil {
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleLeaveLeague(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := urlParamInt64(r, "leagueID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid league ID")
		return
	}

	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		return s.leagueService(uow).LeaveLeague(r.Context(), requestUserID(r), leagueID)
	})
	if err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleRegenerateInviteCode(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := urlParamInt64(r, "leagueID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid league ID")
		return
	}

	var code string
	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		var err error
		code, err = s.leagueService(uow).RegenerateInviteCode(r.Context(), requestUserID(r), leagueID)
		return err
	})
	if err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"invite_code": code})
}

type transferOwnershipRequest struct {
	NewOwnerID int64 `json:"new_owner_id"`
}

func (s *Server) handleTransferOwnership(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := urlParamInt64(r, "leagueID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid league ID")
		return
	}
	var req transferOwnershipRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		return s.leagueService(uow).TransferOwnership(r.Context(), requestUserID(r), leagueID, req.NewOwnerID)
	})
	if err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleDeactivateLeague(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := urlParamInt64(r, "leagueID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid league ID")
		return
	}

	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		return s.leagueService(uow).DeactivateLeague(r.Context(), requestUserID(r), leagueID)
	})
	if err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := urlParamInt64(r, "leagueID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid league ID")
		return
	}

	var entries []*entities.LeaderboardEntry
	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		var err error
		entries, err = s.statsService(uow).GetLeaderboard(r.Context(), leagueID)
		return err
	})
	if err != nil {
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := urlParamInt64(r, "leagueID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid league ID")
		return
	}

	var stats *entities.UserLeagueStats
	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		var err error
		stats, err = s.statsService(uow).GetUserLeagueStats(r.Context(), requestUserID(r), leagueID)
		return err
	})
	if err != nil {
		respondError(w, http.StatusNotFound, "not a member of this league")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
