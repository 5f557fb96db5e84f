package gateway

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sealstudios/presale/src/presale"
	"github.com/sealstudios/presale/src/tier"
	"github.com/sealstudios/presale/src/utils/config"
	"github.com/sealstudios/presale/src/utils/model"
	monitor_presale "github.com/sealstudios/presale/src/utils/monitoring/presale"
	"github.com/sealstudios/presale/src/utils/publisher"
	"github.com/sealstudios/presale/src/utils/task"
)

// Main class that orchestrates the sale service.
// Sets up the database, the ledger and the REST API on top of them.
type Controller struct {
	*task.Task
}

func NewController(config *config.Config) (self *Controller, err error) {
	self = new(Controller)

	self.Task = task.NewTask(config, "controller")

	monitor := monitor_presale.NewMonitor().
		WithMaxHistorySize(30)
	prometheus.MustRegister(monitor.GetPrometheusCollector())

	db, err := model.NewConnection(self.Ctx, config, "gateway")
	if err != nil {
		return
	}

	schedule, err := presale.NewBonusSchedule(&config.Sale)
	if err != nil {
		return
	}

	ledger := presale.NewLedger(presale.NewStore(db), presale.NewTreasury(), schedule).
		WithVerifier(presale.NewMerkleVerifier()).
		WithEvents(config.Sale.EventQueueSize).
		WithMonitor(monitor)

	registry := tier.NewRegistry(tier.NewDbStore(db))
	if config.Tier.Authority != "" {
		err = registry.Initialize(self.Ctx, config.Tier.Authority, &config.Tier)
		if err == tier.ErrAlreadyExists {
			err = nil
		}
		if err != nil {
			return
		}
	}

	server := NewServer(config).
		WithMonitor(monitor).
		WithLedger(ledger).
		WithRegistry(registry)

	dispatcher := NewDispatcher(config).
		WithMonitor(monitor).
		WithInputChannel(ledger.Events()).
		WithRegistry(registry)

	self.Task = self.Task.
		WithSubtask(monitor.Task).
		WithSubtask(dispatcher.Task).
		WithSubtask(server.Task)

	if config.Redis.Enabled {
		events := publisher.NewPublisher[*model.Contribution](config, "contribution-publisher").
			WithChannelName(config.Redis.ChannelName).
			WithInputChannel(dispatcher.Output).
			WithMonitor(monitor)
		self.Task = self.Task.WithSubtask(events.Task)
	}

	return
}
