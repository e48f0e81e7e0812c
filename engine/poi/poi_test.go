package poi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var points = [][3]float32{{0, 2.5, 2.25}, {3.1, 0.5, 2}, {3, 1.5, -4.5}}

func TestNavigationWraps(t *testing.T) {
	idx := NewPointIndex(points)
	require.Equal(t, 3, idx.Len())
	assert.Equal(t, 0, idx.Cursor())

	p, ok := idx.Previous()
	require.True(t, ok)
	assert.Equal(t, points[2], p)
	assert.Equal(t, 2, idx.Cursor())

	p, ok = idx.Next()
	require.True(t, ok)
	assert.Equal(t, points[0], p)

	idx.Next()
	idx.Next()
	idx.Next()
	assert.Equal(t, 0, idx.Cursor())
}

func TestGotoBounds(t *testing.T) {
	idx := NewPointIndex(points)

	p, ok := idx.Goto(1)
	require.True(t, ok)
	assert.Equal(t, points[1], p)

	_, ok = idx.Goto(3)
	assert.False(t, ok)
	_, ok = idx.Goto(-1)
	assert.False(t, ok)
	assert.Equal(t, 1, idx.Cursor(), "a rejected goto keeps the cursor")

	_, ok = idx.Point(7)
	assert.False(t, ok)
}

func TestEmptyIndex(t *testing.T) {
	idx := NewPointIndex(nil)

	_, ok := idx.Current()
	assert.False(t, ok)
	_, ok = idx.Next()
	assert.False(t, ok)
	_, ok = idx.Previous()
	assert.False(t, ok)
	_, ok = idx.Goto(0)
	assert.False(t, ok)
	assert.Empty(t, idx.Points())
}

func TestReplace(t *testing.T) {
	idx := NewPointIndex(points)
	idx.Goto(2)

	idx.Replace(points[:2])
	assert.Equal(t, 0, idx.Cursor(), "cursor past the end resets")

	idx.Goto(1)
	idx.Replace(points)
	assert.Equal(t, 1, idx.Cursor(), "valid cursor is kept")
}

func TestPointsAreCopied(t *testing.T) {
	src := [][3]float32{{1, 1, 1}}
	idx := NewPointIndex(src)
	src[0] = [3]float32{9, 9, 9}

	out := idx.Points()
	out[0] = [3]float32{7, 7, 7}

	p, _ := idx.Current()
	assert.Equal(t, [3]float32{1, 1, 1}, p)
}

func sixPoints() [][3]float32 {
	out := make([][3]float32, 6)
	for i := range out {
		out[i] = [3]float32{float32(i), 1, 0}
	}
	return out
}

func TestSixPointWrap(t *testing.T) {
	pts := sixPoints()

	idx := NewPointIndex(pts)
	p, ok := idx.Previous()
	require.True(t, ok)
	assert.Equal(t, 5, idx.Cursor())
	assert.Equal(t, pts[5], p)

	idx = NewPointIndex(pts)
	_, ok = idx.Goto(5)
	require.True(t, ok)
	p, ok = idx.Next()
	require.True(t, ok)
	assert.Equal(t, 0, idx.Cursor())
	assert.Equal(t, pts[0], p)
}

func TestNextThenPreviousRestoresCursor(t *testing.T) {
	for n := 1; n <= 7; n++ {
		pts := make([][3]float32, n)
		for c := 0; c < n; c++ {
			idx := NewPointIndex(pts)
			_, ok := idx.Goto(c)
			require.True(t, ok)

			idx.Next()
			idx.Previous()
			assert.Equal(t, c, idx.Cursor(), "next/previous n=%d c=%d", n, c)

			idx.Previous()
			idx.Next()
			assert.Equal(t, c, idx.Cursor(), "previous/next n=%d c=%d", n, c)
		}
	}
}

func TestFullCycleReturnsToStart(t *testing.T) {
	for n := 1; n <= 7; n++ {
		pts := make([][3]float32, n)
		for c := 0; c < n; c++ {
			idx := NewPointIndex(pts)
			idx.Goto(c)

			for i := 0; i < n; i++ {
				idx.Next()
			}
			assert.Equal(t, c, idx.Cursor(), "n=%d next calls from %d", n, c)

			for i := 0; i < n; i++ {
				idx.Previous()
			}
			assert.Equal(t, c, idx.Cursor(), "n=%d previous calls from %d", n, c)
		}
	}
}
