package load

import (
	"github.com/sealstudios/presale/src/presale"
	"github.com/sealstudios/presale/src/utils/config"
	"github.com/sealstudios/presale/src/utils/model"
	"github.com/sealstudios/presale/src/utils/task"
)

// Commits generated contributions through the ledger using a worker pool,
// so several commits race the same sale row at once.
type Committer struct {
	*task.Task

	ledger *presale.Ledger
	repo   presale.Repository
	input  chan *presale.ContributionRequest
}

func NewCommitter(config *config.Config) (self *Committer) {
	self = new(Committer)

	self.Task = task.NewTask(config, "committer").
		WithWorkerPool(8).
		WithSubtaskFunc(self.run)

	return
}

func (self *Committer) WithLedger(ledger *presale.Ledger, repo presale.Repository) *Committer {
	self.ledger = ledger
	self.repo = repo
	return self
}

func (self *Committer) WithInputChannel(input chan *presale.ContributionRequest) *Committer {
	self.input = input
	return self
}

func (self *Committer) run() (err error) {
	for request := range self.input {
		request := request
		self.Workers.Submit(func() {
			self.commit(request)
		})
	}
	return nil
}

func (self *Committer) commit(request *presale.ContributionRequest) {
	// Synthetic contributors pay from a bottomless account
	account, err := self.repo.GetAccount(self.Ctx, request.Contributor)
	if err != nil {
		self.Log.WithError(err).Error("Failed to look up contributor")
		return
	}
	if account == nil {
		err = self.repo.SaveAccount(self.Ctx, &model.TreasuryAccount{
			Address:         request.Contributor,
			CurrencyBalance: 1 << 62,
		})
		if err != nil {
			self.Log.WithError(err).Error("Failed to fund contributor")
			return
		}
	}

	contribution, err := self.ledger.AcceptContribution(self.Ctx, request)
	if err != nil {
		self.Log.WithError(err).
			WithField("contributor", request.Contributor).
			Debug("Contribution rejected")
		return
	}

	self.Log.WithField("id", contribution.ID).
		WithField("tokens", contribution.Tokens).
		Debug("Contribution committed")
}
