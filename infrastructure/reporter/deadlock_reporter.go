// Package reporter renders exploration results for human consumption.
package reporter

import (
	"fmt"
	"io"

	"github.com/dynaverify/ddsv/internal/domain"
	"github.com/dynaverify/ddsv/internal/ports"
)

// TextDeadlockReporter renders every deadlock path in an LTS as one line
// per step: the 0-based step index, the step's label padded into a
// 10-wide zero-filled field, the shared-valuation rendering, and the
// space-separated location tuple.
type TextDeadlockReporter struct{}

// NewTextDeadlockReporter returns a TextDeadlockReporter.
func NewTextDeadlockReporter() TextDeadlockReporter { return TextDeadlockReporter{} }

// PrintDeadlocks implements ports.DeadlockReporter.
func (TextDeadlockReporter) PrintDeadlocks(w io.Writer, lts *domain.LTS) error {
	for _, path := range lts.Deadlocks {
		for i, step := range path {
			line := fmt.Sprintf("%d %s %s %s\n",
				i,
				padLabel(string(step.Label)),
				step.State.R.String(),
				step.State.LocationsString(),
			)
			if _, err := io.WriteString(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// padLabel zero-pads label on the left into a fixed 10-character field,
// leaving labels that are already that long or longer untouched.
func padLabel(label string) string {
	const width = 10
	if len(label) >= width {
		return label
	}
	padded := make([]byte, width)
	zeros := width - len(label)
	for i := 0; i < zeros; i++ {
		padded[i] = '0'
	}
	copy(padded[zeros:], label)
	return string(padded)
}

var _ ports.DeadlockReporter = TextDeadlockReporter{}
