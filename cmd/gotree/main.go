// Command gotree fits, evaluates, and visualizes decision-tree random
// forest classifiers from CSV training data, adapted from wlattner-rf's
// root main.go/model.go (same data/predict/model-file flag shape) onto a
// cobra.Command subcommand tree (fit/predict/evaluate/export) instead of a
// single flag-driven main, in the style of jinterlante1206-AleutianLocal's
// cmd/aleutian.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
