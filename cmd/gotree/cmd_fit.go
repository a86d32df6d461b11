package main

import (
	"fmt"
	"os"

	"github.com/gotree/gotree/dataio"
	"github.com/spf13/cobra"
)

func runFit(cmd *cobra.Command, args []string) error {
	f, err := os.Open(dataFile)
	if err != nil {
		return fmt.Errorf("opening data file: %w", err)
	}
	defer f.Close()

	d, err := dataio.ReadCSV(f, labelCols)
	if err != nil {
		return fmt.Errorf("parsing training data: %w", err)
	}

	m, err := fitModel(d.X, d.Y, d.FeatureVars, fitOpts)
	if err != nil {
		return err
	}

	out, err := os.Create(modelFile)
	if err != nil {
		return fmt.Errorf("creating model file: %w", err)
	}
	defer out.Close()

	if err := m.Save(out); err != nil {
		return fmt.Errorf("saving model: %w", err)
	}

	if impFile != "" {
		impOut, err := os.Create(impFile)
		if err != nil {
			return fmt.Errorf("creating variable importance file: %w", err)
		}
		defer impOut.Close()
		if err := m.saveVarImp(impOut); err != nil {
			return fmt.Errorf("writing variable importance: %w", err)
		}
	}

	m.Report(os.Stderr)
	return nil
}
