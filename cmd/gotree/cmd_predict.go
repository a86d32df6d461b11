package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/gotree/gotree/dataio"
	"github.com/spf13/cobra"
)

func loadModel() (*model, error) {
	f, err := os.Open(modelFile)
	if err != nil {
		return nil, fmt.Errorf("opening model file: %w", err)
	}
	defer f.Close()

	m := new(model)
	if err := m.Load(f); err != nil {
		return nil, fmt.Errorf("decoding model: %w", err)
	}
	return m, nil
}

func runPredict(cmd *cobra.Command, args []string) error {
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

	w := os.Stdout
	if predictFile != "" {
		out, err := os.Create(predictFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer out.Close()
		w = out
	}

	return writePredictions(w, pred)
}

func writePredictions(f *os.File, pred []string) error {
	wtr := bufio.NewWriter(f)
	for _, p := range pred {
		if _, err := wtr.WriteString(p); err != nil {
			return err
		}
		if err := wtr.WriteByte('\n'); err != nil {
			return err
		}
	}
	return wtr.Flush()
}
