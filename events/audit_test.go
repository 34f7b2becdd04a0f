package events

import (
	"context"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestAuditHandlersLogFlushedEvents(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	bus := NewBus()
	RegisterAuditHandlers(bus)
	txBus := NewTransactionalBus(bus)

	txBus.Publish(WalletFrozenEvent{LeagueID: 7, Shortage: 250})
	txBus.Publish(MemberJoinedEvent{LeagueID: 7, UserID: 20})
	require.NoError(t, txBus.Flush(context.Background()))

	// Handlers run on their own goroutines.
	require.Eventually(t, func() bool {
		var frozen, joined bool
		for _, entry := range hook.AllEntries() {
			switch entry.Data["event"] {
			case string(EventTypeWalletFrozen):
				frozen = entry.Data["leagueID"] == int64(7) && entry.Data["shortage"] == int64(250)
			case string(EventTypeMemberJoined):
				joined = entry.Data["userID"] == int64(20)
			}
		}
		return frozen && joined
	}, time.Second, 10*time.Millisecond)
}
