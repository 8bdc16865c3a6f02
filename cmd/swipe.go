// File: cmd/swipe.go
package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/xkilldash9x/humanswipe/internal/gesture"
	"github.com/xkilldash9x/humanswipe/internal/observability"
	"go.uber.org/zap"
)

// newSwipeCmd creates the `swipe` command, which performs one gesture on a device.
func newSwipeCmd(a *app) *cobra.Command {
	var (
		from, to, direction string
		minMs, maxMs        int
		seed                int64
		detectScreen        bool
	)

	swipeCmd := &cobra.Command{
		Use:   "swipe",
		Short: "Perform a single humanized swipe on a device",
		Example: `  humanswipe swipe --direction forward --serial emulator-5554
  humanswipe swipe --from 540,1700 --to 560,700 --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			sink := a.openRecordSink(cmd.OutOrStdout())
			defer func() {
				if err := sink.Close(); err != nil {
					logger.Warn("Failed to close gesture record file.", zap.Error(err))
				}
			}()

			target := a.newDeviceTarget(a.cfg.Device().Serial, uuid.New().String(), sink, logger)
			swiper := gesture.NewSwiper(a.newSynthesizer(seed, logger), target.executor, logger)

			if from != "" || to != "" {
				start, err := parsePoint(from)
				if err != nil {
					return err
				}
				end, err := parsePoint(to)
				if err != nil {
					return err
				}
				lo, hi := a.durationBounds(minMs, maxMs)
				_, err = swiper.Swipe(ctx, start, end, lo, hi)
				return err
			}

			dir, ok := gesture.ParseDirection(direction)
			if !ok {
				return fmt.Errorf("unknown direction %q", direction)
			}
			screen, err := a.screen(ctx, target, detectScreen)
			if err != nil {
				return err
			}
			performed, _, err := swiper.Advance(ctx, screen, dir)
			if err != nil {
				return err
			}
			logger.Debug("Swipe performed.", zap.String("direction", string(performed)))
			return nil
		},
	}

	swipeCmd.Flags().StringVar(&from, "from", "", "start point as x,y")
	swipeCmd.Flags().StringVar(&to, "to", "", "end point as x,y")
	swipeCmd.Flags().StringVar(&direction, "direction", "forward", "feed swipe direction when --from/--to are not given")
	swipeCmd.Flags().IntVar(&minMs, "min", 0, "minimum duration in ms (default gesture.min_duration_ms)")
	swipeCmd.Flags().IntVar(&maxMs, "max", 0, "maximum duration in ms (default gesture.max_duration_ms)")
	swipeCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
	swipeCmd.Flags().BoolVar(&detectScreen, "detect-screen", false, "query the device for its screen size")
	swipeCmd.Flags().String("serial", "", "device serial")
	swipeCmd.Flags().Bool("dry-run", false, "record the gesture instead of performing it")
	annotateKey(swipeCmd.Flags(), "serial", "device.serial")
	annotateKey(swipeCmd.Flags(), "dry-run", "device.dry_run")
	return swipeCmd
}
