package presale

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/sealstudios/presale/src/utils/config"
	"github.com/sealstudios/presale/src/utils/model"
)

func TestLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

type LedgerTestSuite struct {
	suite.Suite
	ctx      context.Context
	cancel   context.CancelFunc
	schedule *BonusSchedule

	store  *MemoryStore
	ledger *Ledger
}

func (s *LedgerTestSuite) SetupSuite() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	var err error
	s.schedule, err = NewBonusSchedule(&config.Default().Sale)
	assert.NoError(s.T(), err)
}

func (s *LedgerTestSuite) TearDownSuite() {
	s.cancel()
}

func (s *LedgerTestSuite) SetupTest() {
	s.store = NewMemoryStore()
	s.ledger = NewLedger(s.store, NewTreasury(), s.schedule).
		WithClock(func() time.Time { return time.Unix(1500, 0) })

	// Token pool holds the full supply
	err := s.store.SaveAccount(s.ctx, &model.TreasuryAccount{
		Address:      "pool",
		TokenBalance: 5000 * TokenScale,
	})
	assert.NoError(s.T(), err)
}

func (s *LedgerTestSuite) fund(address string, amount uint64) {
	err := s.store.SaveAccount(s.ctx, &model.TreasuryAccount{
		Address:         address,
		CurrencyBalance: amount,
	})
	assert.NoError(s.T(), err)
}

func (s *LedgerTestSuite) initSale() *model.Sale {
	sale := &model.Sale{
		ID:            "sale",
		Authority:     "authority",
		Treasury:      "treasury",
		TokenMint:     "mint",
		TokenPool:     "pool",
		StartTime:     1500,
		EndTime:       2000,
		MinPurchase:   1 * TokenScale,
		MaxPurchase:   100 * TokenScale,
		TotalRaiseCap: 1000 * TokenScale,
		PresaleSupply: 2000 * TokenScale,
		PricePerToken: 1 * TokenScale,
	}
	err := s.ledger.InitializeSale(s.ctx, sale)
	assert.NoError(s.T(), err)
	return sale
}

func (s *LedgerTestSuite) contribute(contributor string, amount uint64) (*model.Contribution, error) {
	return s.ledger.AcceptContribution(s.ctx, &ContributionRequest{
		SaleID:      "sale",
		Contributor: contributor,
		Amount:      amount,
	})
}

func (s *LedgerTestSuite) TestInitializeSale() {
	s.initSale()

	sale, err := s.ledger.GetSale(s.ctx, "sale")
	assert.NoError(s.T(), err)
	assert.True(s.T(), sale.IsActive)
	assert.Equal(s.T(), uint64(0), sale.TotalRaised)
	assert.False(s.T(), sale.WhitelistEnabled)
}

func (s *LedgerTestSuite) TestInitializeDuplicate() {
	s.initSale()

	err := s.ledger.InitializeSale(s.ctx, &model.Sale{
		ID:            "sale",
		Authority:     "authority",
		Treasury:      "treasury",
		TokenPool:     "pool",
		StartTime:     1500,
		EndTime:       2000,
		MinPurchase:   1 * TokenScale,
		MaxPurchase:   100 * TokenScale,
		TotalRaiseCap: 1000 * TokenScale,
		PresaleSupply: 2000 * TokenScale,
		PricePerToken: 1 * TokenScale,
	})
	assert.ErrorIs(s.T(), err, ErrSaleExists)
}

func (s *LedgerTestSuite) TestAcceptContribution() {
	s.initSale()
	s.fund("alice", 10*TokenScale)

	contribution, err := s.contribute("alice", 2*TokenScale)
	assert.NoError(s.T(), err)
	assert.NotEmpty(s.T(), contribution.ID)
	assert.Equal(s.T(), uint64(2_200_000_000), contribution.Tokens)
	assert.Equal(s.T(), uint64(10), contribution.BonusPercent)
	assert.Equal(s.T(), int64(1500), contribution.Timestamp)

	// Sale totals
	sale, err := s.ledger.GetSale(s.ctx, "sale")
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(2*TokenScale), sale.TotalRaised)
	assert.Equal(s.T(), uint64(2_200_000_000), sale.TokensSold)
	assert.Equal(s.T(), uint64(1), sale.TotalContributors)

	// Participant totals
	participant, err := s.ledger.GetParticipant(s.ctx, "sale", "alice")
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(2*TokenScale), participant.TotalContributed)
	assert.Equal(s.T(), uint64(2_200_000_000), participant.TotalTokensReceived)

	// Balances moved
	alice, err := s.store.GetAccount(s.ctx, "alice")
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(8*TokenScale), alice.CurrencyBalance)
	assert.Equal(s.T(), uint64(2_200_000_000), alice.TokenBalance)

	treasury, err := s.store.GetAccount(s.ctx, "treasury")
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(2*TokenScale), treasury.CurrencyBalance)

	pool, err := s.store.GetAccount(s.ctx, "pool")
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(5000*TokenScale-2_200_000_000), pool.TokenBalance)
}

func (s *LedgerTestSuite) TestContributorCounterCountsDistinct() {
	s.initSale()
	s.fund("alice", 10*TokenScale)
	s.fund("bob", 10*TokenScale)

	_, err := s.contribute("alice", 2*TokenScale)
	assert.NoError(s.T(), err)
	_, err = s.contribute("alice", 2*TokenScale)
	assert.NoError(s.T(), err)
	_, err = s.contribute("bob", 2*TokenScale)
	assert.NoError(s.T(), err)

	sale, err := s.ledger.GetSale(s.ctx, "sale")
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(2), sale.TotalContributors)
}

func (s *LedgerTestSuite) TestRejectionLeavesNothingBehind() {
	s.initSale()
	s.fund("alice", 10*TokenScale)

	_, err := s.contribute("alice", TokenScale-1)
	assert.ErrorIs(s.T(), err, ErrAmountTooLow)

	sale, err := s.ledger.GetSale(s.ctx, "sale")
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(0), sale.TotalRaised)
	assert.Equal(s.T(), uint64(0), sale.TotalContributors)

	contributions, err := s.ledger.ListContributions(s.ctx, "sale", "alice", 0)
	assert.NoError(s.T(), err)
	assert.Empty(s.T(), contributions)

	alice, err := s.store.GetAccount(s.ctx, "alice")
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(10*TokenScale), alice.CurrencyBalance)
}

func (s *LedgerTestSuite) TestRejectsWhenContributorCannotPay() {
	s.initSale()
	s.fund("alice", 1*TokenScale)

	_, err := s.contribute("alice", 2*TokenScale)
	assert.ErrorIs(s.T(), err, ErrInsufficientTreasury)
}

func (s *LedgerTestSuite) TestRejectsWhenPoolIsShort() {
	s.initSale()
	s.fund("alice", 10*TokenScale)

	err := s.store.SaveAccount(s.ctx, &model.TreasuryAccount{
		Address:      "pool",
		TokenBalance: 1 * TokenScale,
	})
	assert.NoError(s.T(), err)

	_, err = s.contribute("alice", 2*TokenScale)
	assert.ErrorIs(s.T(), err, ErrInsufficientTreasury)
}

func (s *LedgerTestSuite) TestFinalize() {
	s.initSale()
	s.fund("alice", 10*TokenScale)

	err := s.ledger.Finalize(s.ctx, "sale", "authority")
	assert.NoError(s.T(), err)

	_, err = s.contribute("alice", 2*TokenScale)
	assert.ErrorIs(s.T(), err, ErrSaleInactive)

	// Finalization is one-way
	err = s.ledger.Finalize(s.ctx, "sale", "authority")
	assert.ErrorIs(s.T(), err, ErrSaleInactive)
}

func (s *LedgerTestSuite) TestFinalizeRequiresAuthority() {
	s.initSale()

	err := s.ledger.Finalize(s.ctx, "sale", "mallory")
	assert.ErrorIs(s.T(), err, ErrUnauthorized)

	sale, err := s.ledger.GetSale(s.ctx, "sale")
	assert.NoError(s.T(), err)
	assert.True(s.T(), sale.IsActive)
}

func (s *LedgerTestSuite) TestUpdateWhitelist() {
	s.initSale()
	s.fund("alice", 10*TokenScale)

	err := s.ledger.UpdateWhitelist(s.ctx, "sale", "authority", []byte{1, 2, 3})
	assert.NoError(s.T(), err)

	// No verifier configured, enforcement fails loudly
	_, err = s.contribute("alice", 2*TokenScale)
	assert.ErrorIs(s.T(), err, ErrWhitelistUnverifiable)

	// Empty root disables the whitelist again
	err = s.ledger.UpdateWhitelist(s.ctx, "sale", "authority", nil)
	assert.NoError(s.T(), err)

	_, err = s.contribute("alice", 2*TokenScale)
	assert.NoError(s.T(), err)
}

func (s *LedgerTestSuite) TestUpdateWhitelistRequiresAuthority() {
	s.initSale()

	err := s.ledger.UpdateWhitelist(s.ctx, "sale", "mallory", []byte{1})
	assert.ErrorIs(s.T(), err, ErrUnauthorized)
}

func (s *LedgerTestSuite) TestEvents() {
	s.ledger = s.ledger.WithEvents(10)
	s.initSale()
	s.fund("alice", 10*TokenScale)

	contribution, err := s.contribute("alice", 2*TokenScale)
	assert.NoError(s.T(), err)

	select {
	case event := <-s.ledger.Events():
		assert.Equal(s.T(), contribution.ID, event.ID)
	default:
		s.T().Fatal("expected an event")
	}
}

// Concurrent contributions against the last slot of the raise cap, only
// one of them may commit.
func (s *LedgerTestSuite) TestConcurrentContributionsSerialize() {
	sale := &model.Sale{
		ID:            "sale",
		Authority:     "authority",
		Treasury:      "treasury",
		TokenPool:     "pool",
		StartTime:     1500,
		EndTime:       2000,
		MinPurchase:   1 * TokenScale,
		MaxPurchase:   100 * TokenScale,
		TotalRaiseCap: 2 * TokenScale,
		PresaleSupply: 2000 * TokenScale,
		PricePerToken: 1 * TokenScale,
	}
	err := s.ledger.InitializeSale(s.ctx, sale)
	assert.NoError(s.T(), err)

	contributors := []string{"alice", "bob", "carol", "dave", "eve"}
	for _, contributor := range contributors {
		s.fund(contributor, 10*TokenScale)
	}

	var wg sync.WaitGroup
	accepted := make(chan *model.Contribution, len(contributors))
	rejected := make(chan error, len(contributors))
	for _, contributor := range contributors {
		wg.Add(1)
		go func(contributor string) {
			defer wg.Done()
			contribution, err := s.contribute(contributor, 2*TokenScale)
			if err != nil {
				rejected <- err
				return
			}
			accepted <- contribution
		}(contributor)
	}
	wg.Wait()
	close(accepted)
	close(rejected)

	assert.Len(s.T(), accepted, 1)
	assert.Len(s.T(), rejected, len(contributors)-1)
	for err := range rejected {
		assert.ErrorIs(s.T(), err, ErrCapExceeded)
	}

	final, err := s.ledger.GetSale(s.ctx, "sale")
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(2*TokenScale), final.TotalRaised)
	assert.Equal(s.T(), uint64(1), final.TotalContributors)
}
