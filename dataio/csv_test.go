package dataio

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSVWithHeader(t *testing.T) {
	data := "label,sepal_length,sepal_width\n" +
		"setosa,5.1,3.5\n" +
		"versicolor,7.0,3.2\n"

	d, err := ReadCSV(strings.NewReader(data), 1)
	require.NoError(t, err)
	require.Equal(t, []string{"sepal_length", "sepal_width"}, d.FeatureVars)
	require.Len(t, d.X, 2)
	require.Len(t, d.Y, 2)
	assert.Equal(t, "setosa", d.Y[0][0])
	assert.Equal(t, 7.0, d.X[1][0])
}

func TestReadCSVWithoutHeaderSynthesizesNames(t *testing.T) {
	data := "a,1.0,2.0\nb,3.0,4.0\n"

	d, err := ReadCSV(strings.NewReader(data), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"X1", "X2"}, d.FeatureVars)
	assert.Len(t, d.X, 2, "no row should have been consumed as a header")
}

func TestReadCSVMissingValuesBecomeNaN(t *testing.T) {
	data := "label,x1,x2\n" +
		"a,1.0,\n" +
		"b,NA,2.0\n"

	d, err := ReadCSV(strings.NewReader(data), 1)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(d.X[0][1]), "blank cell should parse as NaN")
	assert.True(t, math.IsNaN(d.X[1][0]), "\"NA\" cell should parse as NaN")
}

func TestReadCSVMultiLabelColumns(t *testing.T) {
	data := "genus,species,petal_length\n" +
		"iris,setosa,1.4\n"

	d, err := ReadCSV(strings.NewReader(data), 2)
	require.NoError(t, err)
	require.Len(t, d.Y[0], 2)
	assert.Equal(t, []string{"iris", "setosa"}, d.Y[0])
}

func TestReadCSVRejectsZeroLabelColumns(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,1.0\n"), 0)
	assert.Error(t, err)
}
