package system

import (
	"github.com/milk9111/siege/ecs"
	"github.com/milk9111/siege/ecs/component"
	"github.com/milk9111/siege/siege"
	"go.uber.org/zap"
)

// RegionSystem refreshes who is inside the castle and reports the first
// time each enemy crosses in.
type RegionSystem struct {
	logger *zap.Logger
}

func NewRegionSystem(logger *zap.Logger) *RegionSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegionSystem{logger: logger}
}

func (s *RegionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	re, ok := w.First(component.RegionComponent.Kind())
	if !ok {
		return
	}
	region, ok := ecs.Get(w, re, component.RegionComponent.Kind())
	if !ok {
		return
	}

	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Player, t *component.Transform) {
		p.Inside = region.Contains(t.Vector())
	})

	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, en *component.Enemy, t *component.Transform) {
		inside := region.Contains(t.Vector())
		if inside && !en.Inside && !en.Breached {
			en.Breached = true
			w.Events().Push(ecs.Event{Type: ecs.EventEnemyBreached, Entity: e, Data: enemyID(en)})
			s.logger.Info("enemy breached the castle",
				zap.Uint64("enemy", uint64(enemyID(en))),
				zap.Float64("x", t.X),
				zap.Float64("y", t.Y))
		}
		en.Inside = inside
	})
}

func enemyID(en *component.Enemy) siege.EnemyID {
	if en == nil || en.Agent == nil {
		return 0
	}
	return en.Agent.ID
}
