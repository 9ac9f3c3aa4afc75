package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"termbridge"
)

const eventHistory = 200

func newEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Show decoded input events until q is pressed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession()
			if err != nil {
				return err
			}
			defer s.Close()

			t, err := termbridge.Open(s.options())
			if err != nil {
				return err
			}
			defer t.Close()

			var seen []any
			state := termbridge.NewListState()
			for {
				list := termbridge.List(seen...).
					Block(map[string]any{"title": "events (q quits)", "borders": "all"}).
					Set("highlight_style", map[string]any{"modifiers": []any{"bold"}}).
					Set("state", state)
				if err := t.DrawTree(list); err != nil {
					s.log.Warn("draw failed", "err", err)
				}
				ev, err := t.PollEvent(cmd.Context())
				if err != nil {
					return fmt.Errorf("poll: %w", err)
				}
				if ev == nil || isQuit(ev) {
					return nil
				}
				s.log.Debug("event", "event", ev.String())
				seen = append(seen, ev.String())
				if len(seen) > eventHistory {
					seen = seen[len(seen)-eventHistory:]
				}
				state.SelectLast()
			}
		},
	}
}
