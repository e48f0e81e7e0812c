// Package tween flies the viewer camera to a point of interest in two eased phases:
// translate toward a standoff point while re-aiming, then tilt the view down slightly.
package tween

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/chewxy/math32"
)

// Phase identifies the state of a Tween's fly-to sequence.
type Phase int

const (
	// PhaseIdle means no fly-to has been requested, or the last one was cancelled.
	PhaseIdle Phase = iota

	// PhaseTranslating moves the camera toward the end position while the look-at
	// target moves toward the destination.
	PhaseTranslating

	// PhaseTilting lowers the camera pitch after translation has completed.
	PhaseTilting

	// PhaseDone means both phases of the most recent fly-to have completed.
	PhaseDone
)

// String returns a human readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTranslating:
		return "translating"
	case PhaseTilting:
		return "tilting"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

const (
	// DefaultDuration is the length of the translate-and-aim phase.
	DefaultDuration = 1500 * time.Millisecond

	// DefaultTiltDuration is the length of the tilt phase.
	DefaultTiltDuration = 500 * time.Millisecond

	// DefaultTiltAngle is the pitch drop applied by the tilt phase (7.5°).
	DefaultTiltAngle float32 = math32.Pi / 24

	// DefaultStandoff is the distance the camera stops short of the destination.
	DefaultStandoff float32 = 5

	// DefaultMinHeight is the lowest camera Y the translate phase may end at.
	DefaultMinHeight float32 = 1.5
)

// Host is the camera state a Tween drives. The camera controller implements it.
type Host interface {
	// Position returns the camera's world-space position.
	Position() (x, y, z float32)

	// Target returns the look-at point.
	Target() (x, y, z float32)

	// Pitch returns the current view pitch in radians.
	Pitch() float32

	// SetPose writes position and target together and aims the camera at the target.
	SetPose(position, target [3]float32)

	// SetPitch writes the view pitch in radians.
	SetPitch(pitch float32)

	// Settle pulls the pose back inside the orbit bounds. It is called once, when
	// translation lands and before the tilt reads the pitch.
	Settle()
}

// translateState is the ephemeral state of the translate-and-aim phase.
type translateState struct {
	startPosition [3]float32
	startTarget   [3]float32
	endPosition   [3]float32
	destination   [3]float32
	startTime     time.Time
}

// tiltState is the ephemeral state of the tilt phase.
type tiltState struct {
	startPitch float32
	endPitch   float32
	startTime  time.Time
}

// tweenImpl is the implementation of the Tween interface.
type tweenImpl struct {
	mu   *sync.Mutex
	host Host

	duration     time.Duration
	tiltDuration time.Duration
	tiltAngle    float32
	standoff     float32
	minHeight    float32
	easing       common.EasingFunc

	phase      Phase
	generation uint64
	progress   float32
	translate  translateState
	tilt       tiltState
}

// Tween is a two-phase camera fly-to state machine driven by the frame loop.
//
// FlyTo captures the host's current pose and starts the translate-and-aim phase. Each
// Advance computes progress from wall-clock time, eases it, and writes the interpolated
// pose to the host. The frame that reaches progress 1 hands over to the tilt phase,
// which reads the host's actual pitch at that moment and lowers it by the tilt angle.
//
// Only one fly-to is ever in flight: each FlyTo increments the generation and replaces
// the previous state, so a superseded request never writes to the host again.
type Tween interface {
	// FlyTo starts a new fly-to toward destination, superseding any in-flight one.
	//
	// Parameters:
	//   - destination: the world-space point to face
	//   - now: the start timestamp
	//
	// Returns:
	//   - uint64: the generation identifying this request
	FlyTo(destination [3]float32, now time.Time) uint64

	// Advance steps the current fly-to to time now and writes the result to the host.
	// It is a no-op in PhaseIdle and PhaseDone.
	//
	// Parameters:
	//   - now: the frame timestamp
	//
	// Returns:
	//   - Phase: the phase after this step
	Advance(now time.Time) Phase

	// Cancel abandons the in-flight fly-to (if any) and returns to PhaseIdle.
	Cancel()

	// Phase returns the current phase.
	//
	// Returns:
	//   - Phase: the current phase
	Phase() Phase

	// Progress returns the linear progress of the current phase in [0, 1].
	//
	// Returns:
	//   - float32: the progress of the last step
	Progress() float32

	// Generation returns the generation of the most recent FlyTo, or 0 if none.
	//
	// Returns:
	//   - uint64: the current generation
	Generation() uint64

	// Active reports whether the fly-to identified by gen is still running.
	// Superseded, cancelled and finished requests are inactive.
	//
	// Parameters:
	//   - gen: a generation returned by FlyTo
	//
	// Returns:
	//   - bool: true if gen is current and translating or tilting
	Active(gen uint64) bool

	// EndPosition returns the end position computed for the current fly-to.
	//
	// Returns:
	//   - [3]float32: the end position, or zero if no fly-to has been requested
	EndPosition() [3]float32
}

var _ Tween = &tweenImpl{}

// NewTween creates a Tween that drives host, with the viewer's default timings.
//
// Parameters:
//   - host: the camera state to drive
//   - options: functional options to configure the tween
//
// Returns:
//   - Tween: the new tween in PhaseIdle
func NewTween(host Host, options ...TweenBuilderOption) Tween {
	t := &tweenImpl{
		mu:           &sync.Mutex{},
		host:         host,
		duration:     DefaultDuration,
		tiltDuration: DefaultTiltDuration,
		tiltAngle:    DefaultTiltAngle,
		standoff:     DefaultStandoff,
		minHeight:    DefaultMinHeight,
		easing:       common.EaseInOutCubic,
		phase:        PhaseIdle,
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// EndPosition computes where a fly-to from start toward destination stops: standoff units
// from destination along the direction back toward start, raised to at least minHeight.
// If start equals destination the direction is zero and the result is destination with
// its height clamped.
//
// Parameters:
//   - start: the camera position when the fly-to begins
//   - destination: the point being flown to
//   - standoff: distance to keep from destination
//   - minHeight: minimum Y of the result
//
// Returns:
//   - [3]float32: the end position
func EndPosition(start, destination [3]float32, standoff, minHeight float32) [3]float32 {
	direction := common.Normalize3(common.Sub3(start, destination))
	end := common.Add3(destination, common.Scale3(direction, standoff))
	end[1] = math32.Max(end[1], minHeight)
	return end
}

func (t *tweenImpl) FlyTo(destination [3]float32, now time.Time) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	px, py, pz := t.host.Position()
	tx, ty, tz := t.host.Target()
	start := [3]float32{px, py, pz}

	t.generation++
	t.phase = PhaseTranslating
	t.progress = 0
	t.translate = translateState{
		startPosition: start,
		startTarget:   [3]float32{tx, ty, tz},
		endPosition:   EndPosition(start, destination, t.standoff, t.minHeight),
		destination:   destination,
		startTime:     now,
	}
	t.tilt = tiltState{}
	return t.generation
}

func (t *tweenImpl) Advance(now time.Time) Phase {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.phase {
	case PhaseTranslating:
		t.progress = progress(t.translate.startTime, now, t.duration)
		e := t.easing(t.progress)
		t.host.SetPose(
			common.Lerp3(t.translate.startPosition, t.translate.endPosition, e),
			common.Lerp3(t.translate.startTarget, t.translate.destination, e),
		)
		if t.progress >= 1 {
			t.host.Settle()
			start := t.host.Pitch()
			t.tilt = tiltState{
				startPitch: start,
				endPitch:   start - t.tiltAngle,
				startTime:  now,
			}
			t.phase = PhaseTilting
			t.progress = 0
		}
	case PhaseTilting:
		t.progress = progress(t.tilt.startTime, now, t.tiltDuration)
		t.host.SetPitch(common.Lerp(t.tilt.startPitch, t.tilt.endPitch, t.easing(t.progress)))
		if t.progress >= 1 {
			t.phase = PhaseDone
		}
	}
	return t.phase
}

func (t *tweenImpl) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phase = PhaseIdle
	t.progress = 0
}

func (t *tweenImpl) Phase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phase
}

func (t *tweenImpl) Progress() float32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress
}

func (t *tweenImpl) Generation() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.generation
}

func (t *tweenImpl) Active(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return gen == t.generation && (t.phase == PhaseTranslating || t.phase == PhaseTilting)
}

func (t *tweenImpl) EndPosition() [3]float32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.translate.endPosition
}

// progress returns the elapsed fraction of duration since start, clamped to [0, 1].
// A non-positive duration completes immediately.
func progress(start, now time.Time, duration time.Duration) float32 {
	if duration <= 0 {
		return 1
	}
	return common.Clamp(float32(now.Sub(start))/float32(duration), 0, 1)
}
