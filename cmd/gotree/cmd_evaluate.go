package main

import (
	"fmt"
	"os"

	"github.com/gotree/gotree/dataio"
	"github.com/spf13/cobra"
)

func runEvaluate(cmd *cobra.Command, args []string) error {
	f, err := os.Open(dataFile)
	if err != nil {
		return fmt.Errorf("opening data file: %w", err)
	}
	defer f.Close()

	d, err := dataio.ReadCSV(f, labelCols)
	if err != nil {
		return fmt.Errorf("parsing data: %w", err)
	}

	m, err := loadModel()
	if err != nil {
		return err
	}

	pred, err := m.Predict(d.X)
	if err != nil {
		return fmt.Errorf("predicting: %w", err)
	}

	yTrue := make([]string, len(d.Y))
	for i, row := range d.Y {
		yTrue[i] = row[0]
	}

	return m.reportEvaluation(os.Stdout, yTrue, pred)
}
