package main

import (
	"github.com/spf13/cobra"
)

// fitOptions collects the hyperparameters exposed on the fit subcommand,
// in the same shape as wlattner-rf/main.go's modelOptions struct.
type fitOptions struct {
	numTrees        int
	minSamplesSplit int
	minSamplesLeaf  int
	maxFeatures     int
	numWorkers      int
	randomState     int64
	computeOOB      bool
}

var (
	dataFile     string
	labelCols    int
	modelFile    string
	predictFile  string
	impFile      string
	exportFormat string
	exportFile   string
	treeIndex    int

	fitOpts fitOptions

	rootCmd = &cobra.Command{
		Use:   "gotree",
		Short: "Fit and evaluate decision-tree random forest classifiers",
	}

	fitCmd = &cobra.Command{
		Use:   "fit",
		Short: "Fit a random forest classifier from a CSV training file",
		RunE:  runFit,
	}

	predictCmd = &cobra.Command{
		Use:   "predict",
		Short: "Predict labels for a CSV file using a previously fit model",
		RunE:  runPredict,
	}

	evaluateCmd = &cobra.Command{
		Use:   "evaluate",
		Short: "Score a previously fit model against a labeled CSV file",
		RunE:  runEvaluate,
	}

	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Render one tree of a fit model as a Graphviz file",
		RunE:  runExport,
	}
)

func init() {
	rootCmd.PersistentFlags().IntVar(&labelCols, "label-cols", 1, "number of leading label columns in the CSV")

	fitCmd.Flags().StringVar(&dataFile, "data", "", "training CSV file (required)")
	fitCmd.Flags().StringVar(&modelFile, "model", "gotree.model", "file to save the fitted model to")
	fitCmd.Flags().StringVar(&impFile, "var-importance", "", "file to save variable importance scores to (csv)")
	fitCmd.Flags().IntVar(&fitOpts.numTrees, "trees", 10, "number of trees")
	fitCmd.Flags().IntVar(&fitOpts.minSamplesSplit, "min-samples-split", 2, "minimum samples required to split an internal node")
	fitCmd.Flags().IntVar(&fitOpts.minSamplesLeaf, "min-samples-leaf", 1, "minimum samples required in a newly created leaf")
	fitCmd.Flags().IntVar(&fitOpts.maxFeatures, "max-features", -1, "features to consider per split, -1 defaults to sqrt(# features)")
	fitCmd.Flags().IntVar(&fitOpts.numWorkers, "workers", 1, "number of goroutines to fit trees concurrently")
	fitCmd.Flags().Int64Var(&fitOpts.randomState, "seed", -1, "PRNG seed, -1 for a time-based seed")
	fitCmd.Flags().BoolVar(&fitOpts.computeOOB, "oob", false, "compute an out-of-bag confusion matrix and accuracy")
	_ = fitCmd.MarkFlagRequired("data")

	predictCmd.Flags().StringVar(&dataFile, "data", "", "CSV file to predict (required)")
	predictCmd.Flags().StringVar(&modelFile, "model", "gotree.model", "fitted model file to load")
	predictCmd.Flags().StringVar(&predictFile, "out", "", "file to write predictions to (default stdout)")
	_ = predictCmd.MarkFlagRequired("data")

	evaluateCmd.Flags().StringVar(&dataFile, "data", "", "labeled CSV file to evaluate (required)")
	evaluateCmd.Flags().StringVar(&modelFile, "model", "gotree.model", "fitted model file to load")
	_ = evaluateCmd.MarkFlagRequired("data")

	exportCmd.Flags().StringVar(&modelFile, "model", "gotree.model", "fitted model file to load")
	exportCmd.Flags().IntVar(&treeIndex, "tree", 0, "index of the tree within the forest to render")
	exportCmd.Flags().StringVar(&exportFormat, "format", "png", "output format: png, svg, or jpg")
	exportCmd.Flags().StringVar(&exportFile, "out", "tree.png", "file to render the tree to")

	rootCmd.AddCommand(fitCmd, predictCmd, evaluateCmd, exportCmd)
}
