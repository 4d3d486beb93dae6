package playback

import (
	"math"

	"segment-aligner/internal/aligner"
)

// PunchPhase is the state of a recording punch-in window.
type PunchPhase int

const (
	PunchIdle PunchPhase = iota
	PunchArmed
	PunchRecording
	PunchDone
)

func (p PunchPhase) String() string {
	switch p {
	case PunchArmed:
		return "armed"
	case PunchRecording:
		return "recording"
	case PunchDone:
		return "done"
	default:
		return "idle"
	}
}

// Punch tracks a punch-in recording window: recording starts when playback
// reaches Window.Start and stops at Window.End.
type Punch struct {
	Phase  PunchPhase
	Window aligner.Span
}

// Arm prepares a window over [start, end]. An empty or inverted window
// leaves the punch idle.
func (p Punch) Arm(start, end float64) Punch {
	if math.IsNaN(start) || math.IsNaN(end) || end <= start {
		return Punch{}
	}
	return Punch{Phase: PunchArmed, Window: aligner.Span{Start: math.Max(start, 0), End: end}}
}

// Tick advances the phase for playback time t. Phases only move forward.
func (p Punch) Tick(t float64) Punch {
	switch p.Phase {
	case PunchArmed:
		if t >= p.Window.End {
			p.Phase = PunchDone
		} else if t >= p.Window.Start {
			p.Phase = PunchRecording
		}
	case PunchRecording:
		if t >= p.Window.End {
			p.Phase = PunchDone
		}
	}
	return p
}

// Recording reports whether audio should currently be captured.
func (p Punch) Recording() bool {
	return p.Phase == PunchRecording
}

// Cancel returns to idle.
func (p Punch) Cancel() Punch {
	return Punch{}
}
