package siege

import (
	"go.uber.org/zap"
)

// TickResult is what a controller did during one tick.
type TickResult struct {
	Decision TargetDecision
	Movement MovementResult
}

// SiegeController drives one enemy. It owns the enemy's movement state and
// is the only writer of it.
type SiegeController struct {
	enemy    *Enemy
	cfg      Config
	mover    Mover
	logger   *zap.Logger
	lastKind TargetKind
	lastBar  *Barrier
}

// NewSiegeController binds a controller to an enemy. mover may be nil, in
// which case Tick integrates the enemy position itself.
func NewSiegeController(enemy *Enemy, cfg Config, mover Mover, logger *zap.Logger) *SiegeController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SiegeController{
		enemy:  enemy,
		cfg:    cfg,
		mover:  mover,
		logger: logger,
	}
}

func (c *SiegeController) Enemy() *Enemy {
	return c.enemy
}

// SetConfig swaps tuning, e.g. after a config reload.
func (c *SiegeController) SetConfig(cfg Config) {
	c.cfg = cfg
}

// Tick selects a target, steps the state machine and applies the velocity.
func (c *SiegeController) Tick(region RegionState, player Player, dt float64) TickResult {
	e := c.enemy
	if e == nil {
		return TickResult{}
	}

	decision := ChooseTargetWithHome(e, region, player, c.cfg.PassThroughRadius)

	st := e.Movement
	if decision.Kind != c.lastKind || decision.AttackTarget.Barrier != c.lastBar {
		st = st.Rebase()
		if c.lastKind != TargetNone || decision.Kind != TargetNone {
			c.logger.Debug("siege target changed",
				zap.Uint64("enemy", uint64(e.ID)),
				zap.Stringer("from", c.lastKind),
				zap.Stringer("to", decision.Kind),
			)
		}
		c.lastKind = decision.Kind
		c.lastBar = decision.AttackTarget.Barrier
	}

	res := ComputeMovement(MovementInput{
		Position: e.Position,
		Decision: decision,
		GapCW:    e.GapCW,
		GapCCW:   e.GapCCW,
	}, st, c.cfg.Movement)

	if res.Transitioned {
		c.logger.Debug("siege state transition",
			zap.Uint64("enemy", uint64(e.ID)),
			zap.Stringer("state", res.State.State),
			zap.Stringer("target", decision.Kind),
			zap.Float64("distance", res.Distance),
		)
	}

	e.Movement = res.State
	e.Velocity = res.Velocity()
	if c.mover != nil {
		c.mover.SetVelocity(e.Velocity)
	} else if dt > 0 {
		e.Position = e.Position.Add(e.Velocity.Mult(dt))
	}

	return TickResult{Decision: decision, Movement: res}
}
