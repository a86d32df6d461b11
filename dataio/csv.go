// Package dataio loads training data from CSV and NumPy .npy files into the
// row-major []float64 / [][]string shapes package forest expects.
//
// The CSV loader is adapted from the teacher's root-level parse.go
// (detect-a-header-row, first column is the label), generalized to multiple
// label columns and to treat blank or "NA"/"NaN" cells as missing features
// rather than a parse error — the core's missing-value routing (see
// Policy and MissingPolicy in package splitter) exists specifically to
// be exercised by real missing data, not just synthetic NaN.
package dataio

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gotree/gotree/internal/errs"
)

// CSVDataset is a parsed, label(s)-in-the-leading-columns CSV file.
type CSVDataset struct {
	X           [][]float64
	Y           [][]string
	FeatureVars []string
}

// ReadCSV parses r as a CSV with numLabelCols leading label columns followed
// by numeric feature columns. If the first row is non-numeric in its
// feature columns, it is treated as a header and used for FeatureVars;
// otherwise synthetic names "X1".."Xn" are used. Missing feature values may
// be written as an empty string, "NA", or "NaN".
func ReadCSV(r io.Reader, numLabelCols int) (*CSVDataset, error) {
	if numLabelCols < 1 {
		return nil, errs.NewInvalidHyperparameter("numLabelCols", numLabelCols, "must be at least 1")
	}

	reader := csv.NewReader(r)
	d := &CSVDataset{}

	row, err := reader.Read()
	if err != nil {
		return nil, errs.Wrap(err, "reading first CSV row")
	}

	if names, isHeader := parseHeaderRow(row, numLabelCols); isHeader {
		d.FeatureVars = names
	} else {
		for i := range row[numLabelCols:] {
			d.FeatureVars = append(d.FeatureVars, "X"+strconv.Itoa(i+1))
		}
		if err := d.appendRow(row, numLabelCols); err != nil {
			return nil, err
		}
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errs.Wrap(err, "reading CSV row")
		}
		if err := d.appendRow(row, numLabelCols); err != nil {
			return nil, err
		}
	}

	return d, nil
}

func (d *CSVDataset) appendRow(row []string, numLabelCols int) error {
	x, err := parseFeatureRow(row[numLabelCols:])
	if err != nil {
		return err
	}
	d.X = append(d.X, x)

	labels := make([]string, numLabelCols)
	copy(labels, row[:numLabelCols])
	d.Y = append(d.Y, labels)
	return nil
}

func parseFeatureRow(cols []string) ([]float64, error) {
	x := make([]float64, len(cols))
	for i, val := range cols {
		v, missing, err := parseFeatureCell(val)
		if err != nil {
			return nil, errs.Wrap(err, "parsing feature value")
		}
		if missing {
			x[i] = math.NaN()
		} else {
			x[i] = v
		}
	}
	return x, nil
}

func parseFeatureCell(val string) (value float64, missing bool, err error) {
	trimmed := strings.TrimSpace(val)
	switch strings.ToUpper(trimmed) {
	case "", "NA", "NAN":
		return 0, true, nil
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false, err
	}
	return v, false, nil
}

// parseHeaderRow reports whether row's feature columns are all non-numeric
// (and thus a header), returning the header names when so.
func parseHeaderRow(row []string, numLabelCols int) ([]string, bool) {
	if len(row) <= numLabelCols {
		return nil, false
	}
	names := make([]string, 0, len(row)-numLabelCols)
	for _, val := range row[numLabelCols:] {
		if _, _, err := parseFeatureCell(val); err == nil {
			return nil, false
		}
		names = append(names, val)
	}
	return names, true
}
