package siege

import "github.com/jakecoffman/cp"

// EnemyID identifies an enemy in the registry.
type EnemyID uint64

// BarrierID identifies a gate segment.
type BarrierID int

// State is the movement state of a siege unit.
type State int

const (
	StateChase State = iota
	StateHold
)

func (s State) String() string {
	switch s {
	case StateChase:
		return "chase"
	case StateHold:
		return "hold"
	default:
		return "unknown"
	}
}

// TargetKind tells what an enemy is currently going after.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetPlayer
	TargetBarrier
)

func (k TargetKind) String() string {
	switch k {
	case TargetNone:
		return "none"
	case TargetPlayer:
		return "player"
	case TargetBarrier:
		return "barrier"
	default:
		return "unknown"
	}
}

// Target is an attack target. Barrier is set only for TargetBarrier.
type Target struct {
	Kind    TargetKind
	Barrier *Barrier
}

// TargetDecision is computed fresh every tick and never stored.
type TargetDecision struct {
	SteerTarget  cp.Vector
	AttackTarget Target
	Kind         TargetKind
}

// Player is the position accessor the core needs from the player.
type Player interface {
	Position() cp.Vector
}

// RegionState reports castle membership for the current tick.
type RegionState interface {
	EnemyInside(id EnemyID) bool
	PlayerInside() bool
}

// Mover receives the velocity chosen by a controller. Physics bodies
// implement it in the host.
type Mover interface {
	SetVelocity(v cp.Vector)
}

// Enemy is a single siege unit.
type Enemy struct {
	ID       EnemyID
	Position cp.Vector
	Velocity cp.Vector
	Movement MovementState
	GapCW    float64
	GapCCW   float64

	home *Barrier
}

// NewEnemy builds an enemy in the Chase state with a fixed home barrier.
// The home barrier cannot be changed afterwards.
func NewEnemy(id EnemyID, pos cp.Vector, home *Barrier) *Enemy {
	return &Enemy{
		ID:       id,
		Position: pos,
		Movement: NewMovementState(),
		home:     home,
	}
}

// Home returns the barrier assigned at spawn, or nil.
func (e *Enemy) Home() *Barrier {
	if e == nil {
		return nil
	}
	return e.home
}

// StaticPlayer is a Player at a fixed position.
type StaticPlayer cp.Vector

func (p StaticPlayer) Position() cp.Vector { return cp.Vector(p) }

// StaticRegion is a RegionState with fixed answers.
type StaticRegion struct {
	Player  bool
	Enemies map[EnemyID]bool
}

func (r StaticRegion) EnemyInside(id EnemyID) bool { return r.Enemies[id] }
func (r StaticRegion) PlayerInside() bool          { return r.Player }
