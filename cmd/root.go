// -- cmd/root.go --
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/xkilldash9x/humanswipe/internal/config"
	"github.com/xkilldash9x/humanswipe/internal/observability"
	"go.uber.org/zap"
)

// viperKeyAnnotation marks a flag that overrides a configuration key.
const viperKeyAnnotation = "viper_key"

// app carries the state shared by one invocation of the root command.
type app struct {
	cfgFile string
	cfg     *config.Config
}

// NewRootCommand builds a fresh command tree. Each call has its own viper
// instance, so repeated invocations (and tests) never share state.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "humanswipe",
		Short:        "humanswipe synthesizes human-like swipe gestures for touch devices.",
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			config.SetDefaults(v)

			if err := initializeConfig(cmd, v, a.cfgFile); err != nil {
				// Initialize a fallback logger if config loading fails early.
				observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "humanswipe"})
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "humanswipe"})
				return err
			}
			a.cfg = cfg

			observability.InitializeLogger(cfg.Logger())
			observability.GetLogger().Debug("Starting humanswipe", zap.String("version", Version))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	annotateKey(rootCmd.PersistentFlags(), "log-level", "logger.level")
	rootCmd.SetVersionTemplate(`{{printf "%s version %s\n" .Name .Version}}`)

	rootCmd.AddCommand(
		newGenerateCmd(a),
		newSwipeCmd(a),
		newSessionCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command with a signal-aware context.
func Execute(ctx context.Context) error {
	err := NewRootCommand().ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		observability.GetLogger().Error("Command execution failed", zap.Error(err))
	}
	observability.Sync()
	return err
}

// initializeConfig reads the config file, if any, and binds the flags of the
// executing command to their configuration keys. Precedence is
// flag > environment > config file > default.
func initializeConfig(cmd *cobra.Command, v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults/env vars
	}

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		keys, ok := f.Annotations[viperKeyAnnotation]
		if !ok || len(keys) == 0 || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(keys[0], f)
	})
	return bindErr
}

// annotateKey ties a flag to a configuration key.
func annotateKey(flags *pflag.FlagSet, name, key string) {
	if err := flags.SetAnnotation(name, viperKeyAnnotation, []string{key}); err != nil {
		panic(fmt.Sprintf("flag %q is not defined", name))
	}
}
