package forest

// A 30-row stratified subsample of Fisher's iris dataset (10 rows per
// class), adapted from wlattner-rf/forest/iris_test.go's embedded copy and
// reshaped to this package's [][]float64 / [][]string (single-output) API.
var irisX = [][]float64{
	{3.5, 1.4, 5.1, 0.2},
	{3.6, 1.4, 5.0, 0.2},
	{3.7, 1.5, 5.4, 0.2},
	{4.4, 1.5, 5.7, 0.4},
	{3.4, 1.7, 5.4, 0.2},
	{3.2, 1.6, 4.7, 0.2},
	{3.4, 1.5, 5.4, 0.4},
	{3.2, 1.2, 5.0, 0.2},
	{3.5, 1.3, 5.0, 0.3},
	{3.8, 1.6, 5.1, 0.2},
	{3.2, 4.7, 7.0, 1.4},
	{2.8, 4.5, 5.7, 1.3},
	{2.0, 3.5, 5.0, 1.0},
	{3.1, 4.4, 6.7, 1.4},
	{2.5, 3.9, 5.6, 1.1},
	{3.0, 4.4, 6.6, 1.4},
	{2.4, 3.8, 5.5, 1.1},
	{3.4, 4.5, 6.0, 1.6},
	{3.0, 4.6, 6.1, 1.4},
	{3.0, 4.2, 5.7, 1.2},
	{3.3, 6.0, 6.3, 2.5},
	{3.0, 6.6, 7.6, 2.1},
	{3.2, 5.1, 6.5, 2.0},
	{2.8, 5.1, 5.8, 2.4},
	{3.2, 5.7, 6.9, 2.3},
	{2.8, 6.1, 7.4, 1.9},
	{2.6, 5.6, 6.1, 1.4},
	{3.0, 6.1, 7.7, 2.3},
	{3.1, 5.6, 6.7, 2.4},
	{3.0, 5.2, 6.5, 2.0},
}

var irisLabels = []string{
	"setosa", "setosa", "setosa", "setosa", "setosa",
	"setosa", "setosa", "setosa", "setosa", "setosa",
	"versicolor", "versicolor", "versicolor", "versicolor", "versicolor",
	"versicolor", "versicolor", "versicolor", "versicolor", "versicolor",
	"virginica", "virginica", "virginica", "virginica", "virginica",
	"virginica", "virginica", "virginica", "virginica", "virginica",
}

func irisY() [][]string {
	y := make([][]string, len(irisLabels))
	for i, label := range irisLabels {
		y[i] = []string{label}
	}
	return y
}
