// Package render turns a station network into visual artifacts.
//
// The network is first serialized to Graphviz DOT and then rasterized with
// the embedded Graphviz engine, so no external binaries are needed. The
// force-directed engines (neato, fdp) are seeded explicitly to keep layouts
// reproducible across runs.
package render

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/mlmac-seid/london-train-network/pkg/errors"
	"github.com/mlmac-seid/london-train-network/pkg/network"
)

// Supported layout engines.
const (
	EngineNeato = "neato"
	EngineFDP   = "fdp"
)

// Options configures DOT generation and rasterization.
type Options struct {
	// Engine selects the force-directed layout engine.
	Engine string

	// Seed initializes node placement so layouts are reproducible.
	// It is always emitted into the DOT via the start attribute.
	Seed uint64

	// Width and Height bound the drawing in pixels. Zero means unbounded.
	Width  int
	Height int
}

// engineLayout maps an engine name to the graphviz layout constant.
func engineLayout(engine string) (graphviz.Layout, error) {
	switch engine {
	case EngineNeato:
		return graphviz.NEATO, nil
	case EngineFDP:
		return graphviz.FDP, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidEngine, "unsupported layout engine: %s", engine)
	}
}

// ToDOT converts a network to Graphviz DOT for force-directed rendering.
// Station names become node labels and route weights drive edge thickness.
// Parallel routes produce parallel edges.
func ToDOT(n *network.Network, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph railnet {\n")
	fmt.Fprintf(&buf, "  start=%d;\n", opts.Seed)
	buf.WriteString("  overlap=scale;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Width > 0 && opts.Height > 0 {
		// Graphviz size is in inches at 96 DPI, the ! forces exact scaling.
		fmt.Fprintf(&buf, "  size=\"%.2f,%.2f!\";\n", float64(opts.Width)/96, float64(opts.Height)/96)
	}
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=\"#E8F0FE\", fontsize=10, fixedsize=false];\n")
	buf.WriteString("  edge [color=\"#5F6368\", arrowsize=0.5];\n")
	buf.WriteString("\n")

	for _, id := range n.StationIDs() {
		s, _ := n.Station(id)
		label := s.Name
		if label == "" {
			label = fmt.Sprintf("%d", id)
		}
		fmt.Fprintf(&buf, "  %d [label=%q];\n", id, label)
	}

	buf.WriteString("\n")
	for _, r := range n.Routes() {
		fmt.Fprintf(&buf, "  %d -> %d [penwidth=%d];\n", r.From, r.To, r.Weight)
	}

	buf.WriteString("}\n")
	return buf.String()
}
