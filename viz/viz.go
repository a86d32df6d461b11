// Package viz renders a fitted tree.Tree as a Graphviz graph, grounded in
// tarstars-gbdte/golang/extra_boost/ebl/tree.go's DrawGraph/recurrentDraw
// pair (goccy/go-graphviz's cgraph API, one node per call, edges drawn
// parent-to-child on the way down).
package viz

import (
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/gotree/gotree/internal/errs"
	"github.com/gotree/gotree/tree"
)

// DrawGraph builds a Graphviz graph for t. featureNames and classNames (per
// output) are used for node labels when non-nil; otherwise feature indices
// and class indices are printed directly.
func DrawGraph(t *tree.Tree, featureNames []string, classNames [][]string) (*graphviz.Graphviz, *cgraph.Graph, error) {
	gv := graphviz.New()
	graph, err := gv.Graph()
	if err != nil {
		return nil, nil, errs.Wrap(err, "creating graphviz graph")
	}

	if len(t.Nodes) == 0 {
		return gv, graph, nil
	}
	if err := draw(graph, t, 0, nil, featureNames, classNames); err != nil {
		return nil, nil, err
	}
	return gv, graph, nil
}

// RenderFile renders t to filename in the given format ("png", "svg", "jpg").
func RenderFile(t *tree.Tree, featureNames []string, classNames [][]string, format, filename string) error {
	gv, graph, err := DrawGraph(t, featureNames, classNames)
	if err != nil {
		return err
	}

	graphvizFormat := map[string]graphviz.Format{
		"png": graphviz.PNG,
		"svg": graphviz.SVG,
		"jpg": graphviz.JPG,
	}[format]

	return gv.RenderFilename(graph, graphvizFormat, filename)
}

func draw(g *cgraph.Graph, t *tree.Tree, nodeIdx int, parent *cgraph.Node, featureNames []string, classNames [][]string) error {
	n := &t.Nodes[nodeIdx]

	node, err := g.CreateNode(fmt.Sprintf("node%d", nodeIdx))
	if err != nil {
		return errs.Wrap(err, "creating graphviz node")
	}

	if parent != nil {
		if _, err := g.CreateEdge("", parent, node); err != nil {
			return errs.Wrap(err, "creating graphviz edge")
		}
	}

	if n.IsLeaf() {
		node.Set("label", leafLabel(n, classNames))
		node.Set("shape", "box")
		return nil
	}

	node.Set("label", splitLabel(n, featureNames))
	if err := draw(g, t, n.LeftChild, node, featureNames, classNames); err != nil {
		return err
	}
	return draw(g, t, n.RightChild, node, featureNames, classNames)
}

func splitLabel(n *tree.Node, featureNames []string) string {
	feature := fmt.Sprintf("x[%d]", n.FeatureIndex)
	if featureNames != nil && n.FeatureIndex < len(featureNames) {
		feature = featureNames[n.FeatureIndex]
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s <= %.4f\\n", feature, n.Threshold)
	fmt.Fprintf(&sb, "impurity = %.4f\\nsamples = %.0f", n.Impurity, n.NumSamples)
	return sb.String()
}

func leafLabel(n *tree.Node, classNames [][]string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "samples = %.0f\\n", n.NumSamples)
	for o, row := range n.Histogram {
		fmt.Fprintf(&sb, "output %d: ", o)
		for c, v := range row {
			name := fmt.Sprintf("class%d", c)
			if classNames != nil && o < len(classNames) && c < len(classNames[o]) {
				name = classNames[o][c]
			}
			fmt.Fprintf(&sb, "%s=%.1f ", name, v)
		}
		sb.WriteString("\\n")
	}
	return sb.String()
}
