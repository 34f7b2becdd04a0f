package testhelpers

import (
	"context"

	"matchday/domain/interfaces"
)

// FakeUnitOfWork backs service-level tests with the repository mocks
// above. Begin, Commit and Rollback are counted, never fail.
type FakeUnitOfWork struct {
	Users         *MockUserRepository
	Plans         *MockPlanRepository
	Leagues       *MockLeagueRepository
	Members       *MockLeagueMemberRepository
	Bets          *MockBetRepository
	Challenges    *MockChallengeRepository
	Wallets       *MockWalletRepository
	Contributions *MockContributionRepository
	Matches       *MockMatchRepository
	Publisher     *MockEventPublisher

	Began      int
	Committed  int
	RolledBack int
}

// NewFakeUnitOfWork creates a fake unit of work with fresh mocks
func NewFakeUnitOfWork() *FakeUnitOfWork {
	return &FakeUnitOfWork{
		Users:         new(MockUserRepository),
		Plans:         new(MockPlanRepository),
		Leagues:       new(MockLeagueRepository),
		Members:       new(MockLeagueMemberRepository),
		Bets:          new(MockBetRepository),
		Challenges:    new(MockChallengeRepository),
		Wallets:       new(MockWalletRepository),
		Contributions: new(MockContributionRepository),
		Matches:       new(MockMatchRepository),
		Publisher:     new(MockEventPublisher),
	}
}

func (f *FakeUnitOfWork) Begin(ctx context.Context) error {
	f.Began++
	return nil
}

func (f *FakeUnitOfWork) Commit() error {
	f.Committed++
	return nil
}

func (f *FakeUnitOfWork) Rollback() error {
	f.RolledBack++
	return nil
}

func (f *FakeUnitOfWork) UserRepository() interfaces.UserRepository { return f.Users }

func (f *FakeUnitOfWork) PlanRepository() interfaces.PlanRepository { return f.Plans }

func (f *FakeUnitOfWork) LeagueRepository() interfaces.LeagueRepository { return f.Leagues }

func (f *FakeUnitOfWork) LeagueMemberRepository() interfaces.LeagueMemberRepository {
	return f.Members
}

func (f *FakeUnitOfWork) BetRepository() interfaces.BetRepository { return f.Bets }

func (f *FakeUnitOfWork) ChallengeRepository() interfaces.ChallengeRepository { return f.Challenges }

func (f *FakeUnitOfWork) WalletRepository() interfaces.WalletRepository { return f.Wallets }

func (f *FakeUnitOfWork) ContributionRepository() interfaces.ContributionRepository {
	return f.Contributions
}

func (f *FakeUnitOfWork) MatchRepository() interfaces.MatchRepository { return f.Matches }

func (f *FakeUnitOfWork) EventBus() interfaces.EventPublisher { return f.Publisher }

// FakeUnitOfWorkFactory hands out the same fake unit of work every time
type FakeUnitOfWorkFactory struct {
	UoW *FakeUnitOfWork
}

func NewFakeUnitOfWorkFactory() *FakeUnitOfWorkFactory {
	return &FakeUnitOfWorkFactory{UoW: NewFakeUnitOfWork()}
}

func (f *FakeUnitOfWorkFactory) Create() interfaces.UnitOfWork {
	return f.UoW
}
