package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/sealstudios/presale/src/load"
)

var loadSaleId string

func init() {
	loadCmd.Flags().StringVar(&loadSaleId, "sale", "", "id of the sale to contribute to")
	RootCmd.AddCommand(loadCmd)
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Generate synthetic contribution traffic against an existing sale",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if loadSaleId == "" {
			return errors.New("--sale is required")
		}

		controller, err := load.NewController(conf, loadSaleId)
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
}
