package load

import (
	"github.com/sealstudios/presale/src/presale"
	"github.com/sealstudios/presale/src/utils/config"
	"github.com/sealstudios/presale/src/utils/model"
	"github.com/sealstudios/presale/src/utils/task"
)

type Controller struct {
	*task.Task
}

// Main class that orchestrates the load test
func NewController(config *config.Config, saleId string) (self *Controller, err error) {
	self = new(Controller)
	self.Task = task.NewTask(config, "loader-controller")

	// SQL database
	db, err := model.NewConnection(self.Ctx, config, "load-test")
	if err != nil {
		return
	}

	schedule, err := presale.NewBonusSchedule(&config.Sale)
	if err != nil {
		return
	}

	store := presale.NewStore(db)
	ledger := presale.NewLedger(store, presale.NewTreasury(), schedule)

	// Generates contributions
	generator := NewGenerator(config).
		WithSaleId(saleId)

	// Commits them concurrently
	committer := NewCommitter(config).
		WithLedger(ledger, store).
		WithInputChannel(generator.Output)

	// Setup everything, will start upon calling Controller.Start()
	self.Task.
		WithSubtask(generator.Task).
		WithSubtask(committer.Task)
	return
}
