package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"termbridge"
)

func newSnapshotCmd() *cobra.Command {
	var width, height int
	var trim bool
	cmd := &cobra.Command{
		Use:   "snapshot FILE",
		Short: "Render a widget tree off screen and print the cells",
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
			termbridge.BindStates(tree, newStateSet().bind)

			t := termbridge.NewTestTerminal(width, height, s.options())
			drawErr := t.DrawTree(tree)
			out := cmd.OutOrStdout()
			for _, line := range t.BufferContent() {
				if trim {
					line = strings.TrimRight(line, " ")
				}
				fmt.Fprintln(out, line)
			}
			return drawErr
		},
	}
	cmd.Flags().IntVar(&width, "width", 80, "buffer width in cells")
	cmd.Flags().IntVar(&height, "height", 24, "buffer height in cells")
	cmd.Flags().BoolVar(&trim, "trim", false, "strip trailing spaces from each row")
	return cmd
}
