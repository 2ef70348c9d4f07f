// Package viz writes external graph descriptions for a process's control
// flow and for a complete LTS, plus an optional invocation of the external
// dot layout program to render them.
package viz

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/dynaverify/ddsv/internal/domain"
	"github.com/dynaverify/ddsv/internal/ports"
)

// DotVisualizer implements ports.Visualizer by emitting Graphviz DOT.
type DotVisualizer struct{}

// NewDotVisualizer returns a DotVisualizer.
func NewDotVisualizer() DotVisualizer { return DotVisualizer{} }

// VizProcess writes one process's control-flow graph: one node per
// location, one edge per transition labeled with its event label.
func (DotVisualizer) VizProcess(w io.Writer, p domain.Process) error {
	if _, err := io.WriteString(w, "digraph {\n"); err != nil {
		return err
	}

	for _, loc := range p.Locations() {
		if _, err := fmt.Fprintf(w, "%s;\n", loc); err != nil {
			return err
		}
	}

	for _, loc := range p.Locations() {
		trans, _ := p.Associate(loc)
		for _, t := range trans {
			if _, err := fmt.Fprintf(w, "%s -> %s [label=%q];\n", loc, t.Target, t.Label); err != nil {
				return err
			}
		}
	}

	_, err := io.WriteString(w, "}\n")
	return err
}

// VizLTS writes the complete LTS: one node per discovered state (styled
// distinctly for the initial state and for deadlocks), one edge per
// recorded outgoing transition labeled with its event label.
func (DotVisualizer) VizLTS(w io.Writer, lts *domain.LTS) error {
	if _, err := io.WriteString(w, "digraph {\n"); err != nil {
		return err
	}

	deadlockNodes := deadlockNodeSet(lts)

	nodes := lts.Nodes()
	for _, n := range nodes {
		style := ""
		switch {
		case n.ID == 0:
			style = ",style=filled,fillcolor=cyan"
		case deadlockNodes[n.ID]:
			style = ",style=filled,fillcolor=pink"
		}
		label := fmt.Sprintf("%d\\n%s\\n%s", n.ID, n.State.LocationsString(), n.State.R.String())
		if _, err := fmt.Fprintf(w, "%d [label=%q%s];\n", n.ID, label, style); err != nil {
			return err
		}
	}

	for _, n := range nodes {
		for _, edge := range n.Outgoing {
			target, ok := lts.Lookup(edge.Target)
			if !ok {
				continue
			}
			if _, err := fmt.Fprintf(w, "%d -> %d [label=%q];\n", n.ID, target.ID, edge.Label); err != nil {
				return err
			}
		}
	}

	_, err := io.WriteString(w, "}\n")
	return err
}

// deadlockNodeSet resolves every deadlock path's terminal state to its
// node id, for use while styling VizLTS output.
func deadlockNodeSet(lts *domain.LTS) map[int]bool {
	set := make(map[int]bool, len(lts.Deadlocks))
	for _, path := range lts.Deadlocks {
		if len(path) == 0 {
			continue
		}
		last := path[len(path)-1].State
		if n, ok := lts.Lookup(last); ok {
			set[n.ID] = true
		}
	}
	return set
}

var _ ports.Visualizer = DotVisualizer{}

// RenderPDF shells out to the external "dot" binary to render a DOT file
// at dotPath into a PDF at pdfPath. It blocks until dot exits and returns
// its error, if any.
func RenderPDF(dotPath, pdfPath string) error {
	cmd := exec.Command("dot", "-T", "pdf", "-o", pdfPath, dotPath)
	return cmd.Run()
}
