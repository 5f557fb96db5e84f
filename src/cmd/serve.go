package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sealstudios/presale/src/gateway"
	"github.com/sealstudios/presale/src/utils/logger"
)

func init() {
	RootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sale accounting service and its REST API",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		controller, err := gateway.NewController(conf)
		if err != nil {
			return
		}

		err = controller.Start()
		if err != nil {
			return
		}

		<-applicationCtx.Done()

		controller.StopWait()

		return
	},
	PostRunE: func(cmd *cobra.Command, args []string) (err error) {
		log := logger.NewSublogger("serve-cmd")
		log.Debug("Finished serve command")
		return
	},
}
