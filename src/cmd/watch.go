package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sealstudios/presale/src/utils/logger"
	"github.com/sealstudios/presale/src/utils/notify"
)

func init() {
	RootCmd.AddCommand(watchCmd)
}

// Tails accepted contributions straight from the database trigger,
// useful when Redis publishing is off.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream accepted contributions from the database notification channel",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		log := logger.NewSublogger("watch-cmd")

		streamer := notify.NewStreamer(conf).
			WithNotificationChannelName(conf.Database.NotificationChannel).
			WithCapacity(64)

		err = streamer.Start()
		if err != nil {
			return
		}

		for {
			select {
			case <-applicationCtx.Done():
				streamer.StopWait()
				return nil
			case payload, ok := <-streamer.Output:
				if !ok {
					return nil
				}
				log.WithField("contribution", payload).Info("Contribution accepted")
			}
		}
	},
}
