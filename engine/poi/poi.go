// Package poi holds the points of interest a viewer can navigate between.
package poi

import (
	"sync"
)

// pointIndexImpl is the implementation of the PointIndex interface.
type pointIndexImpl struct {
	mu     *sync.Mutex
	points [][3]float32
	cursor int
}

// PointIndex is an ordered, cyclic list of points of interest with a selection cursor.
//
// Insertion order is navigation order and the list wraps in both directions. The cursor
// is always in [0, Len()) when the index is non-empty. Points are copied in and out;
// the index never mutates a caller's data.
type PointIndex interface {
	// Len returns the number of points.
	//
	// Returns:
	//   - int: the point count
	Len() int

	// Cursor returns the index of the currently selected point.
	//
	// Returns:
	//   - int: the cursor in [0, Len()), or 0 when empty
	Cursor() int

	// Current returns the point at the cursor without moving it.
	//
	// Returns:
	//   - [3]float32: the selected point
	//   - bool: false if the index is empty
	Current() ([3]float32, bool)

	// Point returns the point at index i without moving the cursor.
	//
	// Parameters:
	//   - i: the point index
	//
	// Returns:
	//   - [3]float32: the point
	//   - bool: false if i is out of range
	Point(i int) ([3]float32, bool)

	// Points returns a copy of all points in navigation order.
	//
	// Returns:
	//   - [][3]float32: the points
	Points() [][3]float32

	// Goto moves the cursor to i. Out-of-range indices are ignored: the cursor is left
	// unchanged and ok is false.
	//
	// Parameters:
	//   - i: the target index
	//
	// Returns:
	//   - [3]float32: the point at i
	//   - bool: false if i < 0 or i >= Len()
	Goto(i int) ([3]float32, bool)

	// Next advances the cursor by one, wrapping to 0 after the last point.
	//
	// Returns:
	//   - [3]float32: the newly selected point
	//   - bool: false if the index is empty
	Next() ([3]float32, bool)

	// Previous moves the cursor back by one, wrapping to Len()-1 before the first point.
	//
	// Returns:
	//   - [3]float32: the newly selected point
	//   - bool: false if the index is empty
	Previous() ([3]float32, bool)

	// Replace swaps the point set. The cursor is kept if it is still in range and reset
	// to 0 otherwise.
	//
	// Parameters:
	//   - points: the new points in navigation order
	Replace(points [][3]float32)
}

var _ PointIndex = &pointIndexImpl{}

// NewPointIndex creates a PointIndex over a copy of points with the cursor at 0.
//
// Parameters:
//   - points: the points of interest in navigation order
//
// Returns:
//   - PointIndex: the new index
func NewPointIndex(points [][3]float32) PointIndex {
	return &pointIndexImpl{
		mu:     &sync.Mutex{},
		points: clonePoints(points),
	}
}

func (p *pointIndexImpl) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.points)
}

func (p *pointIndexImpl) Cursor() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

func (p *pointIndexImpl) Current() ([3]float32, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.points) == 0 {
		return [3]float32{}, false
	}
	return p.points[p.cursor], true
}

func (p *pointIndexImpl) Point(i int) ([3]float32, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 || i >= len(p.points) {
		return [3]float32{}, false
	}
	return p.points[i], true
}

func (p *pointIndexImpl) Points() [][3]float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return clonePoints(p.points)
}

func (p *pointIndexImpl) Goto(i int) ([3]float32, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 || i >= len(p.points) {
		return [3]float32{}, false
	}
	p.cursor = i
	return p.points[i], true
}

func (p *pointIndexImpl) Next() ([3]float32, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.points)
	if n == 0 {
		return [3]float32{}, false
	}
	p.cursor = (p.cursor + 1) % n
	return p.points[p.cursor], true
}

func (p *pointIndexImpl) Previous() ([3]float32, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.points)
	if n == 0 {
		return [3]float32{}, false
	}
	p.cursor = (p.cursor - 1 + n) % n
	return p.points[p.cursor], true
}

func (p *pointIndexImpl) Replace(points [][3]float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.points = clonePoints(points)
	if p.cursor >= len(p.points) {
		p.cursor = 0
	}
}

func clonePoints(points [][3]float32) [][3]float32 {
	out := make([][3]float32, len(points))
	copy(out, points)
	return out
}
