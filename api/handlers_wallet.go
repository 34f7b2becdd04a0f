package api

import (
	"net/http"
	"strconv"

	"matchday/domain/entities"
	"matchday/domain/interfaces"
)

func (s *Server) handleGetWallet(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := urlParamInt64(r, "leagueID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid league ID")
		return
	}

	var wallet *entities.LeagueWallet
	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		var err error
		wallet, err = s.walletService(uow).GetOrCreateWallet(r.Context(), leagueID)
		return err
	})
	if err != nil {
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wallet)
}

type contributeRequest struct {
	AmountCents   int64  `json:"amount_cents"`
	PaymentMethod string `json:"payment_method"`
}

func (s *Server) handleContribute(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := urlParamInt64(r, "leagueID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid league ID")
		return
	}
	var req contributeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "card"
	}

	var result *entities.ContributionResult
	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		var err error
		result, err = s.walletService(uow).Contribute(r.Context(), leagueID, requestUserID(r), req.AmountCents, req.PaymentMethod)
		return err
	})
	if err != nil {
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleListContributions(w http.ResponseWriter, r *http.Request) {
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

	var contributions []*entities.Contribution
	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		wallet, err := s.walletService(uow).GetOrCreateWallet(r.Context(), leagueID)
		if err != nil {
			return err
		}
		contributions, err = uow.ContributionRepository().GetByWallet(r.Context(), wallet.ID, limit)
		return err
	})
	if err != nil {
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, contributions)
}

type planChangeRequest struct {
	PlanID string `json:"plan_id"`
}

func (s *Server) handleUpgradePlan(w http.ResponseWriter, r *http.Request) {
	s.handlePlanChange(w, r, true)
}

func (s *Server) handleDowngradePlan(w http.ResponseWriter, r *http.Request) {
	s.handlePlanChange(w, r, false)
}

func (s *Server) handlePlanChange(w http.ResponseWriter, r *http.Request, upgrade bool) {
	leagueID, ok := urlParamInt64(r, "leagueID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid league ID")
		return
	}
	var req planChangeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var result *entities.PlanChangeResult
	err := s.inTransaction(r.Context(), func(uow interfaces.UnitOfWork) error {
		var err error
		if upgrade {
			result, err = s.walletService(uow).Upgrade(r.Context(), leagueID, req.PlanID)
		} else {
			result, err = s.walletService(uow).Downgrade(r.Context(), leagueID, req.PlanID)
		}
		return err
	})
	if err != nil {
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
