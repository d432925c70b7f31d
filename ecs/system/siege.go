package system

import (
	"github.com/milk9111/siege/ecs"
	"github.com/milk9111/siege/ecs/component"
	"github.com/milk9111/siege/siege"
	"go.uber.org/zap"
)

// enemyRegion answers region queries for the one enemy being ticked.
type enemyRegion struct {
	enemy  bool
	player bool
}

func (r enemyRegion) EnemyInside(siege.EnemyID) bool { return r.enemy }
func (r enemyRegion) PlayerInside() bool              { return r.player }

// SiegeSystem ticks every enemy controller.
type SiegeSystem struct {
	clock  *Clock
	logger *zap.Logger

	holdTransitions int
}

func NewSiegeSystem(clock *Clock, logger *zap.Logger) *SiegeSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SiegeSystem{clock: clock, logger: logger}
}

func (s *SiegeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var player siege.Player
	playerInside := false
	if pe, ok := w.First(component.PlayerTagComponent.Kind()); ok {
		if t, ok := ecs.Get(w, pe, component.TransformComponent.Kind()); ok {
			player = siege.StaticPlayer(t.Vector())
		}
		if p, ok := ecs.Get(w, pe, component.PlayerComponent.Kind()); ok {
			playerInside = p.Inside
		}
	}

	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, en *component.Enemy, t *component.Transform) {
		if en.Agent == nil || en.Controller == nil {
			return
		}
		en.Agent.Position = t.Vector()

		res := en.Controller.Tick(enemyRegion{enemy: en.Inside, player: playerInside}, player, s.clock.DT)
		en.Decision = res.Decision
		if res.Movement.Transitioned && res.Movement.State.State == siege.StateHold {
			s.holdTransitions++
		}

		// without a body the controller integrated the position itself
		if !ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			t.Set(en.Agent.Position)
		}
	})
}

func (s *SiegeSystem) HoldTransitions() int {
	return s.holdTransitions
}
