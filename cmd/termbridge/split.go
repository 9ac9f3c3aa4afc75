package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"termbridge"
)

func newSplitCmd() *cobra.Command {
	var width, height int
	var direction, flex string
	cmd := &cobra.Command{
		Use:   "split CONSTRAINT...",
		Short: "Solve a layout and print one rect per constraint",
		Long: `Solve a one-dimensional layout. Constraints are written as
len:N, pct:N, min:N, max:N, fill:N or ratio:N/D.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := termbridge.ParseDirection(direction)
			if err != nil {
				return err
			}
			fl, err := termbridge.ParseFlex(flex)
			if err != nil {
				return err
			}
			constraints := make([]termbridge.Constraint, 0, len(args))
			for _, a := range args {
				c, err := termbridge.ParseConstraint(a)
				if err != nil {
					return err
				}
				constraints = append(constraints, c)
			}
			area := termbridge.NewRect(0, 0, width, height)
			for _, r := range termbridge.SplitLayout(area, dir, constraints, fl) {
				fmt.Fprintln(cmd.OutOrStdout(), r)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 80, "area width")
	cmd.Flags().IntVar(&height, "height", 24, "area height")
	cmd.Flags().StringVar(&direction, "direction", "vertical", "vertical or horizontal")
	cmd.Flags().StringVar(&flex, "flex", "legacy", "legacy, start, center, end, space_between, space_around or space_evenly")
	return cmd
}
