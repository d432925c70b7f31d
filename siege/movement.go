package siege

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/siege/common"
)

// MovementParams are the tuning knobs of the movement solver. Barrier targets
// override HoldRadius and ReleaseMargin with the barrier's own envelope.
type MovementParams struct {
	Speed         float64
	HoldRadius    float64
	ReleaseMargin float64
	OutrunFrames  int
	TrendEpsilon  float64
	ReseatBias    float64
	OrbitBase     float64
	MaxTangent    float64
	PrefDeadband  float64
	Epsilon       float64
}

// MovementState is the per-enemy state threaded through ComputeMovement.
type MovementState struct {
	State        State
	PrevDistance float64
	Trend        int
	Heading      cp.Vector
	// Primed is false until a distance has been recorded for the current
	// target; the first sample never counts toward the trend.
	Primed bool
}

// NewMovementState returns the initial Chase state.
func NewMovementState() MovementState {
	return MovementState{State: StateChase}
}

// Rebase forgets the previous distance so the next tick starts a new trend
// baseline. Used when the steer target switches.
func (s MovementState) Rebase() MovementState {
	s.Primed = false
	s.Trend = 0
	return s
}

// MovementInput is everything the solver reads for one enemy and one tick.
type MovementInput struct {
	Position cp.Vector
	Decision TargetDecision
	GapCW    float64
	GapCCW   float64
}

// MovementResult carries the updated state and the velocity split into its
// radial and tangential parts. Callers integrate position += (radial+tangential)*dt.
type MovementResult struct {
	State        MovementState
	Radial       cp.Vector
	Tangential   cp.Vector
	Distance     float64
	Transitioned bool
}

// Velocity is the sum of both components.
func (r MovementResult) Velocity() cp.Vector {
	return r.Radial.Add(r.Tangential)
}

// ShouldHoldForBarrierTarget reports whether an enemy targeting a barrier may
// hold at the given distance. Broken barriers are never held.
func ShouldHoldForBarrierTarget(distance, holdRadius float64, barrierBroken bool) bool {
	if barrierBroken {
		return false
	}
	return distance <= holdRadius
}

// ComputeMovement advances the CHASE/HOLD machine by one tick and returns the
// velocity for the new state. It never mutates its inputs.
func ComputeMovement(in MovementInput, st MovementState, p MovementParams) MovementResult {
	if in.Decision.Kind == TargetNone {
		st.Trend = 0
		st.Primed = false
		return MovementResult{State: st}
	}

	eps := p.Epsilon
	if eps <= 0 {
		eps = common.Epsilon
	}

	dir, distance := common.SafeNormalize(in.Decision.SteerTarget.Sub(in.Position), eps)
	if dir != (cp.Vector{}) {
		st.Heading = dir
	}

	st = updateTrend(st, distance, p.TrendEpsilon)

	barrier := in.Decision.AttackTarget.Barrier
	targetsBarrier := in.Decision.Kind == TargetBarrier && barrier != nil

	rIn := common.NonNegative(p.HoldRadius)
	margin := common.NonNegative(p.ReleaseMargin)
	if targetsBarrier {
		rIn = common.NonNegative(barrier.HoldRadius)
		margin = common.NonNegative(barrier.ReleaseMargin)
	}
	rOut := rIn + margin

	prev := st.State
	switch st.State {
	case StateChase:
		hold := distance <= rIn
		if targetsBarrier {
			hold = ShouldHoldForBarrierTarget(distance, rIn, barrier.Broken())
		}
		if hold {
			st.State = StateHold
		}
	case StateHold:
		outrun := p.OutrunFrames > 0 && st.Trend >= p.OutrunFrames
		if distance >= rOut || outrun || (targetsBarrier && barrier.Broken()) {
			st.State = StateChase
		}
	}

	res := MovementResult{Distance: distance}
	if st.State != prev {
		st.Trend = 0
		res.Transitioned = true
	}

	speed := common.NonNegative(p.Speed)
	switch st.State {
	case StateChase:
		res.Radial = dir.Mult(speed)
	case StateHold:
		if distance > rIn {
			res.Radial = dir.Mult(common.NonNegative(p.ReseatBias) * speed)
		}
		if !targetsBarrier {
			res.Tangential = orbitVelocity(st.Heading, distance, rIn, in.GapCW, in.GapCCW, speed, p)
		}
	}

	res.State = st
	return res
}

func updateTrend(st MovementState, distance, eps float64) MovementState {
	eps = common.NonNegative(eps)
	if st.Primed {
		switch {
		case distance > st.PrevDistance+eps:
			st.Trend++
		case distance < st.PrevDistance-eps:
			st.Trend = 0
		}
	}
	st.PrevDistance = distance
	st.Primed = true
	return st
}

// orbitVelocity slides a holding enemy around the player. The direction is
// the CCW perpendicular of the heading, signed by gapCCW-gapCW.
func orbitVelocity(heading cp.Vector, distance, rIn, gapCW, gapCCW, speed float64, p MovementParams) cp.Vector {
	// both zero: no formation pressure
	total := gapCW + gapCCW
	if total <= 0 {
		return cp.Vector{}
	}
	normPref := (gapCCW - gapCW) / total
	if normPref == 0 || math.Abs(normPref) <= common.NonNegative(p.PrefDeadband) {
		return cp.Vector{}
	}

	scale := 1.0
	if rIn > common.Epsilon {
		scale = distance / rIn
	}
	mag := common.NonNegative(p.OrbitBase) * speed * scale * math.Abs(normPref)
	if p.MaxTangent > 0 && mag > p.MaxTangent {
		mag = p.MaxTangent
	}

	return common.Perp(heading).Mult(common.Sign(normPref) * mag)
}
