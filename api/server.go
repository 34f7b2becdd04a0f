package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	"matchday/config"
	"matchday/domain/interfaces"
	"matchday/domain/services"
)

// Server exposes the domain operations over JSON HTTP. Every mutating
// request runs inside one unit of work so domain events only fire when
// the transaction commits.
type Server struct {
	cfg        *config.Config
	uowFactory interfaces.UnitOfWorkFactory
	clock      clockwork.Clock
	httpServer *http.Server
}

// NewServer creates the HTTP server with its routes mounted
func NewServer(cfg *config.Config, uowFactory interfaces.UnitOfWorkFactory, clock clockwork.Clock) *Server {
	s := &Server{
		cfg:        cfg,
		uowFactory: uowFactory,
		clock:      clock,
	}
	s.httpServer = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)
	r.Get("/plans", s.handleListPlans)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Post("/leagues", s.handleCreateLeague)
		r.Post("/leagues/join", s.handleJoinLeague)
		r.Route("/leagues/{leagueID}", func(r chi.Router) {
			r.Delete("/", s.handleDeactivateLeague)
			r.Post("/leave", s.handleLeaveLeague)
			r.Post("/invite-code", s.handleRegenerateInviteCode)
			r.Post("/transfer", s.handleTransferOwnership)
			r.Get("/leaderboard", s.handleLeaderboard)
			r.Get("/stats", s.handleUserStats)

			r.Get("/competition-change", s.handleCompetitionChangeCheck)
			r.Post("/competition", s.handleChangeCompetition)

			r.Post("/bets", s.handlePlaceBet)
			r.Get("/bets", s.handleListBets)
			r.Get("/weekly-limit", s.handleWeeklyLimit)

			r.Post("/challenges", s.handleCreateChallenge)

			r.Get("/wallet", s.handleGetWallet)
			r.Post("/wallet/contributions", s.handleContribute)
			r.Get("/wallet/contributions", s.handleListContributions)
			r.Post("/plan/upgrade", s.handleUpgradePlan)
			r.Post("/plan/downgrade", s.handleDowngradePlan)
		})

		r.Get("/challenges/{challengeID}", s.handleChallengeDetail)
		r.Get("/competitions", s.handleListCompetitions)
		r.Get("/competitions/{competitionID}/matches", s.handleUpcomingMatches)

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/overview", s.handleAdminOverview)
			r.Post("/leagues/{leagueID}/freeze", s.handleFreezeWallet)
			r.Post("/leagues/{leagueID}/unfreeze", s.handleUnfreezeWallet)
			r.Post("/competitions", s.handleCreateCompetition)
			r.Post("/matches", s.handleCreateMatch)
			r.Post("/matches/{matchID}/result", s.handleRecordResult)
		})
	})

	return r
}

// Start begins serving requests and blocks until the server stops
func (s *Server) Start() error {
	log.WithField("addr", s.httpServer.Addr).Info("Starting HTTP server")
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// inTransaction runs fn inside a fresh unit of work, committing when it
// returns nil and rolling back otherwise
func (s *Server) inTransaction(ctx context.Context, fn func(uow interfaces.UnitOfWork) error) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := fn(uow); err != nil {
		if rbErr := uow.Rollback(); rbErr != nil {
			log.WithError(rbErr).Error("Failed to roll back transaction")
		}
		return err
	}
	return uow.Commit()
}

func (s *Server) bettingService(uow interfaces.UnitOfWork) interfaces.BettingService {
	return services.NewBettingService(
		s.clock,
		uow.LeagueRepository(),
		uow.PlanRepository(),
		uow.LeagueMemberRepository(),
		uow.BetRepository(),
		uow.MatchRepository(),
		uow.ChallengeRepository(),
		uow.EventBus(),
	)
}

func (s *Server) leagueService(uow interfaces.UnitOfWork) interfaces.LeagueService {
	return services.NewLeagueService(
		uow.UserRepository(),
		uow.PlanRepository(),
		uow.LeagueRepository(),
		uow.LeagueMemberRepository(),
		uow.WalletRepository(),
		uow.EventBus(),
		s.cfg.StartingPoints,
	)
}

func (s *Server) competitionService(uow interfaces.UnitOfWork) interfaces.CompetitionService {
	return services.NewCompetitionService(
		s.clock,
		uow.LeagueRepository(),
		uow.PlanRepository(),
		uow.LeagueMemberRepository(),
		uow.WalletRepository(),
		uow.MatchRepository(),
	)
}

func (s *Server) walletService(uow interfaces.UnitOfWork) interfaces.WalletService {
	return services.NewWalletService(
		s.clock,
		uow.LeagueRepository(),
		uow.PlanRepository(),
		uow.LeagueMemberRepository(),
		uow.WalletRepository(),
		uow.ContributionRepository(),
		uow.EventBus(),
	)
}

func (s *Server) challengeService(uow interfaces.UnitOfWork) interfaces.ChallengeService {
	return services.NewChallengeService(
		s.clock,
		uow.LeagueRepository(),
		uow.PlanRepository(),
		uow.LeagueMemberRepository(),
		uow.MatchRepository(),
		uow.ChallengeRepository(),
		uow.BetRepository(),
	)
}

func (s *Server) statsService(uow interfaces.UnitOfWork) interfaces.StatsService {
	return services.NewStatsService(
		s.clock,
		uow.UserRepository(),
		uow.LeagueRepository(),
		uow.LeagueMemberRepository(),
		uow.BetRepository(),
		uow.ChallengeRepository(),
		uow.WalletRepository(),
		uow.ContributionRepository(),
	)
}

// requestLogger logs each request with its duration and status
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start),
		}).Info("Handled request")
	})
}
