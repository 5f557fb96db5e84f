package load

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sealstudios/presale/src/presale"
	"github.com/sealstudios/presale/src/utils/config"
	"github.com/sealstudios/presale/src/utils/task"
)

// Generates synthetic contributions
type Generator struct {
	*task.Task

	saleId       string
	contributors int
	minAmount    uint64
	maxAmount    uint64

	Output chan *presale.ContributionRequest
}

func NewGenerator(config *config.Config) (self *Generator) {
	self = new(Generator)

	self.Output = make(chan *presale.ContributionRequest)
	self.contributors = 100
	self.minAmount = 1 * presale.TokenScale
	self.maxAmount = 10 * presale.TokenScale

	self.Task = task.NewTask(config, "generator").
		WithPeriodicSubtaskFunc(100*time.Millisecond, self.runPeriodically).
		WithOnAfterStop(func() {
			close(self.Output)
		})

	return
}

func (self *Generator) WithSaleId(saleId string) *Generator {
	self.saleId = saleId
	return self
}

func (self *Generator) WithContributors(n int) *Generator {
	self.contributors = n
	return self
}

func (self *Generator) WithAmountRange(min, max uint64) *Generator {
	self.minAmount = min
	self.maxAmount = max
	return self
}

func (self *Generator) runPeriodically() error {
	request := self.fakeContribution()

	select {
	case <-self.StopChannel:
	case self.Output <- request:
	}
	return nil
}

func (self *Generator) fakeContribution() *presale.ContributionRequest {
	amount := self.minAmount
	if self.maxAmount > self.minAmount {
		amount += uint64(rand.Int63n(int64(self.maxAmount - self.minAmount)))
	}

	return &presale.ContributionRequest{
		SaleID:      self.saleId,
		Contributor: fmt.Sprintf("load-%d", rand.Intn(self.contributors)),
		Amount:      amount,
	}
}
