// Copyright © 2015, The T Authors.

package font

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultMetrics(t *testing.T) {
	f := Default()
	ascent, descent, height := f.Metrics()
	require.Greater(t, ascent, 0)
	require.GreaterOrEqual(t, descent, 0)
	require.Greater(t, height, 0)
}

func TestWidthSumsAdvances(t *testing.T) {
	f := Default()
	w1 := f.Advance('m')
	w3 := f.Width([]rune{'m', 'm', 'm'})
	require.Equal(t, w1*3, w3)
}
