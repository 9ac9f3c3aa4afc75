// Command termbridge renders YAML widget trees to the terminal, prints
// snapshots, solves layouts and shows decoded input events.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "termbridge:", err)
		os.Exit(1)
	}
}
