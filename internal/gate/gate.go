// Package gate decides whether a summary is publication-quality.
package gate

// Default thresholds: below 50 the summary is barely shorter than the
// article, above 96 it is almost certainly degenerate noise.
const (
	DefaultMinReduction = 50
	DefaultMaxReduction = 96
)

// Gate is a pure numeric band check on the reduction percentage. It has no
// retry or error path.
type Gate struct {
	min int
	max int
}

// New builds a Gate. Non-positive bounds fall back to the defaults.
func New(min, max int) Gate {
	if min <= 0 {
		min = DefaultMinReduction
	}
	if max <= 0 {
		max = DefaultMaxReduction
	}
	return Gate{min: min, max: max}
}

// Publishable reports whether reduction falls inside the accepted band,
// bounds inclusive.
func (g Gate) Publishable(reduction int) bool {
	return reduction >= g.min && reduction <= g.max
}

// Bounds returns the accepted band for logging.
func (g Gate) Bounds() (int, int) {
	return g.min, g.max
}
