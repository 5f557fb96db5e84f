package presale

import (
	"context"
	"time"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/sealstudios/presale/src/utils/logger"
	"github.com/sealstudios/presale/src/utils/model"
	"github.com/sealstudios/presale/src/utils/monitoring"
)

// ContributionRequest carries one contribution attempt into the ledger.
type ContributionRequest struct {
	SaleID      string
	Contributor string

	// Base currency units
	Amount uint64

	// Merkle proof for the whitelist commitment, empty when the sale
	// does not enforce a whitelist
	Proof [][]byte

	// Optional caller-supplied metadata stored with the record
	Metadata []byte
}

// Ledger is the accounting engine. All mutating operations run inside one
// repository transaction with the affected rows locked, so concurrent
// attempts against the same sale serialize and each one is evaluated
// against committed totals.
type Ledger struct {
	repo     Repository
	boundary TransferBoundary
	schedule *BonusSchedule

	verifier WhitelistVerifier
	clock    func() time.Time
	events   chan *model.Contribution
	monitor  monitoring.Monitor

	log *logrus.Entry
}

func NewLedger(repo Repository, boundary TransferBoundary, schedule *BonusSchedule) (self *Ledger) {
	self = new(Ledger)
	self.repo = repo
	self.boundary = boundary
	self.schedule = schedule
	self.clock = time.Now
	self.log = logger.NewSublogger("ledger")
	return
}

func (self *Ledger) WithVerifier(verifier WhitelistVerifier) *Ledger {
	self.verifier = verifier
	return self
}

// WithEvents attaches a buffered channel that receives every accepted
// contribution. Emission is best-effort, a full channel drops the event,
// the contribution row remains the durable record.
func (self *Ledger) WithEvents(size int) *Ledger {
	self.events = make(chan *model.Contribution, size)
	return self
}

func (self *Ledger) WithClock(clock func() time.Time) *Ledger {
	self.clock = clock
	return self
}

func (self *Ledger) WithMonitor(monitor monitoring.Monitor) *Ledger {
	self.monitor = monitor
	return self
}

func (self *Ledger) Events() <-chan *model.Contribution {
	return self.events
}

// InitializeSale validates the parameters and creates the sale record in
// its active state. A rejected parameter set creates nothing.
func (self *Ledger) InitializeSale(ctx context.Context, sale *model.Sale) (err error) {
	now := self.clock()

	err = validateParams(sale, now)
	if err != nil {
		return
	}

	sale.IsActive = true
	sale.TotalRaised = 0
	sale.TokensSold = 0
	sale.TotalContributors = 0
	sale.WhitelistEnabled = len(sale.WhitelistRoot) > 0
	sale.CreatedAt = now.Unix()
	sale.UpdatedAt = sale.CreatedAt

	err = self.repo.CreateSale(ctx, sale)
	if err != nil {
		return
	}

	if self.monitor != nil {
		self.monitor.GetReport().Ledger.State.SalesInitialized.Inc()
	}
	self.log.WithField("sale_id", sale.ID).
		WithField("start_time", sale.StartTime).
		WithField("end_time", sale.EndTime).
		Info("Sale initialized")
	return
}

// AcceptContribution evaluates one contribution against freshly locked
// totals and commits either every effect or none of them. On success it
// returns the appended contribution record.
func (self *Ledger) AcceptContribution(ctx context.Context, req *ContributionRequest) (contribution *model.Contribution, err error) {
	err = self.repo.InTransaction(ctx, func(tx Repository) (err error) {
		sale, err := tx.LockSale(ctx, req.SaleID)
		if err != nil {
			return
		}

		participant, err := tx.LockParticipant(ctx, req.SaleID, req.Contributor)
		if err != nil {
			return
		}

		now := self.clock()
		result, err := evaluate(sale, participant, req.Contributor, req.Amount, req.Proof, now, self.schedule, self.verifier)
		if err != nil {
			return
		}

		// The pool has to hold enough tokens before anything moves
		balance, err := self.boundary.TokenBalance(ctx, tx, sale.TokenPool)
		if err != nil {
			return
		}
		if balance < result.Tokens {
			return ErrInsufficientTreasury
		}

		err = self.boundary.MoveCurrency(ctx, tx, req.Contributor, sale.Treasury, req.Amount)
		if err != nil {
			return
		}
		err = self.boundary.TransferTokens(ctx, tx, sale.TokenPool, req.Contributor, result.Tokens)
		if err != nil {
			return
		}

		ts := now.Unix()

		sale.TotalRaised = result.NewTotalRaised
		sale.TokensSold = result.NewTokensSold
		if result.FirstContribution {
			sale.TotalContributors, err = checkedAdd(sale.TotalContributors, 1)
			if err != nil {
				return
			}
		}
		sale.UpdatedAt = ts
		err = tx.SaveSale(ctx, sale)
		if err != nil {
			return
		}

		if participant == nil {
			participant = &model.Participant{
				SaleID:    req.SaleID,
				Address:   req.Contributor,
				CreatedAt: ts,
			}
		}
		participant.TotalContributed = result.NewParticipantTotal
		participant.TotalTokensReceived = result.NewParticipantTokens
		participant.UpdatedAt = ts
		err = tx.SaveParticipant(ctx, participant)
		if err != nil {
			return
		}

		contribution = &model.Contribution{
			ID:           xid.New().String(),
			SaleID:       req.SaleID,
			Contributor:  req.Contributor,
			Amount:       req.Amount,
			Tokens:       result.Tokens,
			BonusPercent: result.BonusPercent,
			Timestamp:    ts,
		}
		var metadata []byte
		if len(req.Metadata) > 0 {
			metadata = req.Metadata
		}
		err = contribution.Metadata.Set(metadata)
		if err != nil {
			return
		}
		return tx.AppendContribution(ctx, contribution)
	})
	if err != nil {
		if self.monitor != nil {
			self.monitor.GetReport().Ledger.Errors.ContributionsRejected.Inc()
		}
		return nil, err
	}

	if self.monitor != nil {
		ledgerState := &self.monitor.GetReport().Ledger.State
		ledgerState.ContributionsAccepted.Inc()
		ledgerState.TokensSold.Add(contribution.Tokens)
		ledgerState.CurrencyRaised.Add(contribution.Amount)
	}

	self.log.WithField("sale_id", contribution.SaleID).
		WithField("contributor", contribution.Contributor).
		WithField("amount", contribution.Amount).
		WithField("tokens", contribution.Tokens).
		Debug("Contribution accepted")

	self.emit(contribution)
	return
}

// Finalize deactivates the sale. One-way, only the authority may do it,
// idempotence is not offered: finalizing an already finalized sale fails.
func (self *Ledger) Finalize(ctx context.Context, saleId, authority string) (err error) {
	err = self.repo.InTransaction(ctx, func(tx Repository) (err error) {
		sale, err := tx.LockSale(ctx, saleId)
		if err != nil {
			return
		}
		if sale.Authority != authority {
			return ErrUnauthorized
		}
		if !sale.IsActive {
			return ErrSaleInactive
		}

		sale.IsActive = false
		sale.UpdatedAt = self.clock().Unix()
		return tx.SaveSale(ctx, sale)
	})
	if err != nil {
		return
	}

	if self.monitor != nil {
		self.monitor.GetReport().Ledger.State.SalesFinalized.Inc()
	}
	self.log.WithField("sale_id", saleId).Info("Sale finalized")
	return
}

// UpdateWhitelist replaces the whitelist commitment. An empty root
// disables enforcement entirely.
func (self *Ledger) UpdateWhitelist(ctx context.Context, saleId, authority string, root []byte) (err error) {
	return self.repo.InTransaction(ctx, func(tx Repository) (err error) {
		sale, err := tx.LockSale(ctx, saleId)
		if err != nil {
			return
		}
		if sale.Authority != authority {
			return ErrUnauthorized
		}

		sale.WhitelistRoot = root
		sale.WhitelistEnabled = len(root) > 0
		sale.UpdatedAt = self.clock().Unix()
		return tx.SaveSale(ctx, sale)
	})
}

func (self *Ledger) GetSale(ctx context.Context, saleId string) (*model.Sale, error) {
	return self.repo.GetSale(ctx, saleId)
}

func (self *Ledger) GetParticipant(ctx context.Context, saleId, address string) (participant *model.Participant, err error) {
	participant, err = self.repo.GetParticipant(ctx, saleId, address)
	if err != nil {
		return
	}
	if participant == nil {
		// Never contributed, zero totals
		participant = &model.Participant{SaleID: saleId, Address: address}
	}
	return
}

func (self *Ledger) ListContributions(ctx context.Context, saleId, contributor string, limit int) ([]*model.Contribution, error) {
	return self.repo.ListContributions(ctx, saleId, contributor, limit)
}

func (self *Ledger) emit(contribution *model.Contribution) {
	if self.events == nil {
		return
	}
	select {
	case self.events <- contribution:
	default:
		if self.monitor != nil {
			self.monitor.GetReport().Ledger.State.EventsDropped.Inc()
		}
		self.log.WithField("id", contribution.ID).Warn("Event buffer full, contribution event dropped")
	}
}
