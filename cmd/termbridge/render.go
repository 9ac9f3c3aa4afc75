package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"termbridge"
)

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render FILE",
		Short: "Draw a widget tree live; arrows move selections, q or esc quits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession()
			if err != nil {
				return err
			}
			defer s.Close()

			tree, err := termbridge.LoadTree(args[0])
			if err != nil {
				return err
			}
			states := newStateSet()
			termbridge.BindStates(tree, states.bind)

			t, err := termbridge.Open(s.options())
			if err != nil {
				return err
			}
			defer t.Close()
			return runLoop(cmd.Context(), s.log.Logger, t, tree, states)
		},
	}
}

// isQuit reports whether ev ends an interactive command.
func isQuit(ev termbridge.Event) bool {
	k, ok := ev.(termbridge.KeyEvent)
	if !ok {
		return false
	}
	return k.Code == "q" || k.Code == termbridge.KeyEsc ||
		(k.Code == "c" && k.Modifiers.Has(termbridge.KeyModCtrl))
}

func runLoop(ctx context.Context, log *slog.Logger, t *termbridge.Terminal, tree termbridge.Node, states *stateSet) error {
	for {
		// a widget error leaves a partial frame, keep going
		if err := t.DrawTree(tree); err != nil {
			log.Warn("draw failed", "err", err)
		}
		ev, err := t.PollEvent(ctx)
		if err != nil {
			return fmt.Errorf("poll: %w", err)
		}
		if ev == nil {
			return nil
		}
		if isQuit(ev) {
			return nil
		}
		if k, ok := ev.(termbridge.KeyEvent); ok {
			states.handle(k)
		}
	}
}
