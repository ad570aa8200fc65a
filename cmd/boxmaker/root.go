package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/boxmaker/boxmaker-web/config"
	"github.com/boxmaker/boxmaker-web/internal/box/service"
	"github.com/boxmaker/boxmaker-web/pkg/logger"
)

// app carries configuration shared by the subcommands
type app struct {
	v          *viper.Viper
	configFile string
}

func newRootCommand() *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:           "boxmaker",
		Short:         "Generate laser-cut box templates",
		Long:          "boxmaker serves a form that turns box dimensions into a laser-cutter template PDF.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: config.yaml in ., $XDG_CONFIG_HOME/boxmaker, /etc/boxmaker)")
	flags.Bool("debug", false, "enable debug logging")
	a.v.BindPFlag("log.debug", flags.Lookup("debug"))

	rootCmd.AddCommand(newServeCommand(a))
	rootCmd.AddCommand(newRenderCommand(a))
	rootCmd.AddCommand(newReclaimCommand(a))

	return rootCmd
}

// loadConfig reads .env, the config file and flags into a Config
func (a *app) loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	if a.configFile != "" {
		a.v.SetConfigFile(a.configFile)
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *logger.Logger {
	return logger.New(logger.Options{
		Debug:      cfg.Log.Debug,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
}

func newBoxService(cfg *config.Config, log *logger.Logger) (*service.BoxService, *service.ExecRenderer, error) {
	renderer, err := service.NewExecRenderer(cfg.Box.Command, cfg.Box.Timeout, log)
	if err != nil {
		return nil, nil, err
	}

	svc, err := service.New(service.Options{
		Dir:        cfg.Box.Dir,
		Renderer:   renderer,
		ReclaimAge: cfg.Box.ReclaimAge,
		Logger:     log,
	})
	if err != nil {
		return nil, nil, err
	}
	return svc, renderer, nil
}
