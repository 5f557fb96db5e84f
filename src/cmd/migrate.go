package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sealstudios/presale/src/utils/model"
)

func init() {
	RootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		return model.Migrate(applicationCtx, conf)
	},
}
