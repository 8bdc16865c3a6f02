// File: cmd/generate.go
package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/xkilldash9x/humanswipe/internal/device"
	"github.com/xkilldash9x/humanswipe/internal/gesture"
	"github.com/xkilldash9x/humanswipe/internal/observability"
)

// newGenerateCmd creates the `generate` command, which synthesizes gestures
// and prints them as JSON lines without touching any device.
func newGenerateCmd(a *app) *cobra.Command {
	var (
		from, to, direction string
		minMs, maxMs, count int
		seed                int64
	)

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Synthesize swipe gestures and print them as JSON lines",
		Example: `  humanswipe generate --from 500,1400 --to 525,600 --min 230 --max 420
  humanswipe generate --direction forward --count 10 --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			logger := observability.GetLogger()

			synth := a.newSynthesizer(seed, logger)
			recorder := device.NewRecorder(cmd.OutOrStdout(), uuid.New().String(), "")
			swiper := gesture.NewSwiper(synth, recorder, logger)

			if direction != "" {
				dir, ok := gesture.ParseDirection(direction)
				if !ok {
					return fmt.Errorf("unknown direction %q", direction)
				}
				dev := a.cfg.Device()
				screen := gesture.Screen{Width: dev.ScreenWidth, Height: dev.ScreenHeight}
				for i := 0; i < count; i++ {
					if _, _, err := swiper.Advance(cmd.Context(), screen, dir); err != nil {
						return err
					}
				}
				return nil
			}

			if from == "" || to == "" {
				return fmt.Errorf("either --direction or both --from and --to are required")
			}
			start, err := parsePoint(from)
			if err != nil {
				return err
			}
			end, err := parsePoint(to)
			if err != nil {
				return err
			}
			lo, hi := a.durationBounds(minMs, maxMs)
			for i := 0; i < count; i++ {
				if _, err := swiper.Swipe(cmd.Context(), start, end, lo, hi); err != nil {
					return err
				}
			}
			return nil
		},
	}

	generateCmd.Flags().StringVar(&from, "from", "", "start point as x,y")
	generateCmd.Flags().StringVar(&to, "to", "", "end point as x,y")
	generateCmd.Flags().StringVar(&direction, "direction", "", "plan a feed swipe instead: forward or reverse")
	generateCmd.Flags().IntVar(&minMs, "min", 0, "minimum duration in ms (default gesture.min_duration_ms)")
	generateCmd.Flags().IntVar(&maxMs, "max", 0, "maximum duration in ms (default gesture.max_duration_ms)")
	generateCmd.Flags().IntVarP(&count, "count", "n", 1, "number of gestures to generate")
	generateCmd.Flags().Int64Var(&seed, "seed", 0, "random seed for reproducible output (0 seeds from the clock)")
	return generateCmd
}
