package main

import (
	"fmt"

	"github.com/gotree/gotree/internal/errs"
	"github.com/gotree/gotree/viz"
	"github.com/spf13/cobra"
)

func runExport(cmd *cobra.Command, args []string) error {
	m, err := loadModel()
	if err != nil {
		return err
	}

	if treeIndex < 0 || treeIndex >= len(m.Forest.Trees) {
		return errs.NewInvalidHyperparameter("tree", treeIndex, fmt.Sprintf("must be in [0, %d)", len(m.Forest.Trees)))
	}

	t := m.Forest.Trees[treeIndex].T
	return viz.RenderFile(t, m.VarNames, m.Forest.Classes, exportFormat, exportFile)
}
