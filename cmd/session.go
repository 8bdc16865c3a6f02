// File: cmd/session.go
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	json "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/xkilldash9x/humanswipe/internal/gesture"
	"github.com/xkilldash9x/humanswipe/internal/observability"
	"github.com/xkilldash9x/humanswipe/internal/session"
	"go.uber.org/zap"
)

// newSessionCmd creates the `session` command, which browses a feed on one or
// more devices with human pacing.
func newSessionCmd(a *app) *cobra.Command {
	var (
		serials      []string
		detectScreen bool
	)

	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Browse a feed with humanized swipes and viewing pauses",
		Example: `  humanswipe session --count 30 --serial emulator-5554
  humanswipe session --count 0 --serials R58M123,R58M456 --intent forward`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()
			dev := a.cfg.Device()

			if len(serials) == 0 {
				serials = dev.Serials
			}
			if len(serials) == 0 {
				serials = []string{dev.Serial}
			}

			// One sink for all devices; records carry their device serial.
			sink := a.openRecordSink(cmd.OutOrStdout())
			defer func() {
				if err := sink.Close(); err != nil {
					logger.Warn("Failed to close gesture record file.", zap.Error(err))
				}
			}()

			var runners []*session.Runner

			for _, serial := range serials {
				id := uuid.New().String()
				target := a.newDeviceTarget(serial, id, sink, logger)

				screen, err := a.screen(ctx, target, detectScreen)
				if err != nil {
					return fmt.Errorf("device %q: %w", serial, err)
				}
				// Every device gets its own synthesizer so their random streams are independent.
				swiper := gesture.NewSwiper(a.newSynthesizer(0, logger), target.executor, logger)
				runners = append(runners, session.New(a.cfg.Session(), swiper, screen, logger,
					session.WithID(id), session.WithDevice(serial)))
			}

			summaries, err := session.RunAll(ctx, runners)

			enc := json.NewEncoder(cmd.ErrOrStderr())
			for _, s := range summaries {
				if encErr := enc.Encode(s); encErr != nil {
					return encErr
				}
			}
			if errors.Is(err, context.Canceled) && a.cfg.Session().Count == 0 {
				// An unbounded session ends when it is interrupted.
				return nil
			}
			return err
		},
	}

	sessionCmd.Flags().StringSliceVar(&serials, "serials", nil, "devices to drive concurrently (default device.serials)")
	sessionCmd.Flags().BoolVar(&detectScreen, "detect-screen", false, "query each device for its screen size")
	sessionCmd.Flags().String("serial", "", "device serial")
	sessionCmd.Flags().Bool("dry-run", false, "record gestures instead of performing them")
	sessionCmd.Flags().IntP("count", "n", 0, "number of swipes, 0 runs until interrupted (default session.count)")
	sessionCmd.Flags().String("intent", "", "intended direction: forward or reverse (default session.intent)")
	annotateKey(sessionCmd.Flags(), "serial", "device.serial")
	annotateKey(sessionCmd.Flags(), "dry-run", "device.dry_run")
	annotateKey(sessionCmd.Flags(), "count", "session.count")
	annotateKey(sessionCmd.Flags(), "intent", "session.intent")
	return sessionCmd
}
