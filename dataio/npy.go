package dataio

import (
	"io"

	"github.com/gotree/gotree/internal/errs"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

// ReadNpyMatrix reads a 2-D float64 .npy array into a row-major [][]float64,
// following the npyio.NewReader(...).Read(*mat.Dense) pattern used to load
// feature matrices in tarstars-gbdte's ebl.ReadNpy.
func ReadNpyMatrix(r io.Reader) ([][]float64, error) {
	reader, err := npyio.NewReader(r)
	if err != nil {
		return nil, errs.Wrap(err, "opening npy reader")
	}

	dense := &mat.Dense{}
	if err := reader.Read(dense); err != nil {
		return nil, errs.Wrap(err, "reading npy matrix")
	}

	rows, cols := dense.Dims()
	out := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			out[i][j] = dense.At(i, j)
		}
	}
	return out, nil
}
