package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishableBand(t *testing.T) {
	t.Parallel()

	g := New(0, 0)

	tests := []struct {
		reduction int
		want      bool
	}{
		{reduction: 0, want: false},
		{reduction: 49, want: false},
		{reduction: 50, want: true},
		{reduction: 75, want: true},
		{reduction: 96, want: true},
		{reduction: 97, want: false},
		{reduction: 100, want: false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, g.Publishable(tc.reduction), "reduction %d", tc.reduction)
	}
}

func TestCustomBounds(t *testing.T) {
	t.Parallel()

	g := New(30, 80)
	assert.False(t, g.Publishable(29))
	assert.True(t, g.Publishable(30))
	assert.True(t, g.Publishable(80))
	assert.False(t, g.Publishable(81))

	min, max := g.Bounds()
	assert.Equal(t, 30, min)
	assert.Equal(t, 80, max)
}
