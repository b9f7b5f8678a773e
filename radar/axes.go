package radar

import (
	"fmt"
	"strings"
)

// Axes holds the axis labels in angular order. A label may span several lines.
type Axes [AxisCount]string

func DefaultAxes() Axes {
	return Axes{
		"Intellectual\nAutonomy",
		"Metacognitive\nAwareness",
		"Productive\nStruggle",
		"Iterative\nRefinement",
		"Knowledge\nTransfer",
		"AI\nLiteracy",
	}
}

// AxesFrom converts a label slice, which must hold exactly AxisCount entries.
func AxesFrom(labels []string) (Axes, error) {
	var a Axes
	if len(labels) != AxisCount {
		return a, fmt.Errorf("radar: want %d axis labels, got %d", AxisCount, len(labels))
	}
	copy(a[:], labels)
	return a, nil
}

// Lines splits the label of axis i into its rendered lines.
func (a Axes) Lines(i int) []string {
	if i < 0 || i >= AxisCount {
		return nil
	}
	return strings.Split(a[i], "\n")
}
