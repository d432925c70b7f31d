package system

import (
	"github.com/milk9111/siege/ecs"
	"github.com/milk9111/siege/ecs/component"
	"github.com/milk9111/siege/siege"
	"go.uber.org/zap"
)

// CombatSystem swings holding enemies at their attack target on a fixed
// cadence. Barrier break bookkeeping is left to GateSystem.
type CombatSystem struct {
	interval int
	damage   int
	logger   *zap.Logger
}

func NewCombatSystem(interval, damage int, logger *zap.Logger) *CombatSystem {
	if interval < 1 {
		interval = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CombatSystem{interval: interval, damage: damage, logger: logger}
}

func (s *CombatSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var player *component.Player
	pe, hasPlayer := w.First(component.PlayerTagComponent.Kind())
	if hasPlayer {
		player, _ = ecs.Get(w, pe, component.PlayerComponent.Kind())
	}

	ecs.ForEach(w, component.EnemyComponent.Kind(), func(e ecs.Entity, en *component.Enemy) {
		if en.Agent == nil || en.Agent.Movement.State != siege.StateHold {
			en.AttackTimer = 0
			return
		}
		en.AttackTimer++
		if en.AttackTimer < s.interval {
			return
		}
		en.AttackTimer = 0

		switch en.Decision.Kind {
		case siege.TargetBarrier:
			b := en.Decision.AttackTarget.Barrier
			if b == nil || b.Broken() {
				return
			}
			b.Damage(s.damage)
			s.logger.Debug("barrier hit",
				zap.Uint64("enemy", uint64(en.Agent.ID)),
				zap.Int("barrier", int(b.ID)),
				zap.Int("health", b.Health))
		case siege.TargetPlayer:
			if player == nil {
				return
			}
			player.Hits++
			w.Events().Push(ecs.Event{Type: ecs.EventPlayerHit, Entity: e, Data: en.Agent.ID})
		}
	})
}
