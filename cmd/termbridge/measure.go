package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"termbridge"
)

func newMeasureCmd() *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "measure FILE",
		Short: "Print the measured size of a paragraph or tabs node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := termbridge.LoadTree(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch tree.Kind() {
			case termbridge.KindParagraph:
				lines, err := termbridge.ParagraphLineCount(tree, width)
				if err != nil {
					return err
				}
				w, err := termbridge.ParagraphLineWidth(tree)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "lines=%d width=%d\n", lines, w)
			case termbridge.KindTabs:
				w, err := termbridge.TabsWidth(tree)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "width=%d\n", w)
			default:
				return fmt.Errorf("measure: %s nodes have no measurement", tree.Kind())
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 80, "wrap width for paragraphs")
	return cmd
}
