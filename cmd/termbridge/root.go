package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"termbridge"
	"termbridge/internal/config"
	"termbridge/internal/logger"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "termbridge",
		Short:         "Render declarative widget trees in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	root.AddCommand(
		newRenderCmd(),
		newSnapshotCmd(),
		newSplitCmd(),
		newEventsCmd(),
		newMeasureCmd(),
	)
	return root
}

// session is the loaded configuration and logger shared by every command.
type session struct {
	cfg *config.Config
	log *logger.Logger
}

func loadSession() (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Logger())
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return &session{cfg: cfg, log: log}, nil
}

func (s *session) options() termbridge.Options {
	return s.cfg.Options(s.log.Logger)
}

func (s *session) Close() error {
	return s.log.Close()
}
