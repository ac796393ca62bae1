package folio

import (
	"fmt"
	"math"
)

// Percent is a percentage weight. NaN means the weight is undefined, which
// happens for rows outside both weighting pools and for rows of a pool whose
// total value is zero. Undefined is distinct from a true zero weight.
type Percent float64

// UndefinedPercent returns the undefined weight marker.
func UndefinedPercent() Percent { return Percent(math.NaN()) }

// IsDefined reports whether p carries an actual percentage.
func (p Percent) IsDefined() bool { return !math.IsNaN(float64(p)) }

func (p Percent) Equal(q Percent) bool {
	if !p.IsDefined() || !q.IsDefined() {
		return p.IsDefined() == q.IsDefined()
	}
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	if !p.IsDefined() {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", p)
}
