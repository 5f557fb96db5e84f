package gateway

import (
	"github.com/sealstudios/presale/src/tier"
	"github.com/sealstudios/presale/src/utils/config"
	"github.com/sealstudios/presale/src/utils/model"
	"github.com/sealstudios/presale/src/utils/monitoring"
	"github.com/sealstudios/presale/src/utils/task"
)

// Dispatcher fans accepted contributions out of the ledger: it records
// attestations in the tier registry and forwards the event downstream.
type Dispatcher struct {
	*task.Task

	input    <-chan *model.Contribution
	Output   chan *model.Contribution
	registry *tier.Registry
	monitor  monitoring.Monitor
}

func NewDispatcher(config *config.Config) (self *Dispatcher) {
	self = new(Dispatcher)

	self.Output = make(chan *model.Contribution, config.Sale.EventQueueSize)

	self.Task = task.NewTask(config, "dispatcher").
		WithSubtaskFunc(self.run).
		WithOnAfterStop(func() {
			close(self.Output)
		})

	return
}

func (self *Dispatcher) WithInputChannel(v <-chan *model.Contribution) *Dispatcher {
	self.input = v
	return self
}

func (self *Dispatcher) WithRegistry(registry *tier.Registry) *Dispatcher {
	self.registry = registry
	return self
}

func (self *Dispatcher) WithMonitor(monitor monitoring.Monitor) *Dispatcher {
	self.monitor = monitor
	return self
}

func (self *Dispatcher) run() (err error) {
	for {
		select {
		case <-self.StopChannel:
			self.Log.Debug("Dispatcher stopped")
			return nil
		case contribution := <-self.input:
			self.handle(contribution)
		}
	}
}

func (self *Dispatcher) handle(contribution *model.Contribution) {
	_, err := self.registry.RecordAttestation(self.Ctx, contribution.Amount)
	if err != nil && err != tier.ErrNotInitialized {
		self.Log.WithError(err).
			WithField("id", contribution.ID).
			Error("Failed to record attestation")
	}

	select {
	case self.Output <- contribution:
	default:
		if self.monitor != nil {
			self.monitor.GetReport().Ledger.State.EventsDropped.Inc()
		}
		self.Log.WithField("id", contribution.ID).Warn("Output channel full, event dropped")
	}
}
