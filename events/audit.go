package events

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// RegisterAuditHandlers subscribes a structured audit log for every
// domain event type. Wallet lockouts and forced downgrades are the
// operator-visible failures, so those log at warning level.
func RegisterAuditHandlers(bus *Bus) {
	for _, eventType := range []EventType{
		EventTypeBetPlaced,
		EventTypeBetSettled,
		EventTypeChallengeSettled,
		EventTypeContribution,
		EventTypeWalletCharged,
		EventTypeWalletFrozen,
		EventTypeLeagueDowngraded,
		EventTypeMemberJoined,
	} {
		bus.Subscribe(eventType, auditLog)
	}
}

func auditLog(_ context.Context, event Event) {
	entry := log.WithField("event", string(event.Type()))

	switch e := event.(type) {
	case BetPlacedEvent:
		entry = entry.WithFields(log.Fields{
			"betID":    e.BetID,
			"userID":   e.UserID,
			"leagueID": e.LeagueID,
			"matchID":  e.MatchID,
			"amount":   e.Amount,
		})
	case BetSettledEvent:
		entry = entry.WithFields(log.Fields{
			"betID":     e.BetID,
			"userID":    e.UserID,
			"leagueID":  e.LeagueID,
			"status":    e.Status,
			"actualWin": e.ActualWin,
		})
	case ChallengeSettledEvent:
		entry = entry.WithFields(log.Fields{
			"challengeID": e.ChallengeID,
			"leagueID":    e.LeagueID,
			"matchID":     e.MatchID,
		})
	case ContributionEvent:
		entry = entry.WithFields(log.Fields{
			"leagueID":    e.LeagueID,
			"userID":      e.UserID,
			"amountCents": e.AmountCents,
			"newBalance":  e.NewBalance,
			"unfroze":     e.Unfroze,
		})
	case WalletChargedEvent:
		entry = entry.WithFields(log.Fields{
			"leagueID":        e.LeagueID,
			"amountCents":     e.AmountCents,
			"newBalance":      e.NewBalance,
			"nextPaymentDate": e.NextPaymentDate,
		})
	case WalletFrozenEvent:
		entry = entry.WithFields(log.Fields{
			"leagueID": e.LeagueID,
			"shortage": e.Shortage,
		})
	case LeagueDowngradedEvent:
		entry = entry.WithFields(log.Fields{
			"leagueID":   e.LeagueID,
			"fromPlanID": e.FromPlanID,
			"toPlanID":   e.ToPlanID,
		})
	case MemberJoinedEvent:
		entry = entry.WithFields(log.Fields{
			"leagueID": e.LeagueID,
			"userID":   e.UserID,
		})
	}

	switch event.Type() {
	case EventTypeWalletFrozen, EventTypeLeagueDowngraded:
		entry.Warn("Domain event")
	default:
		entry.Info("Domain event")
	}
}
