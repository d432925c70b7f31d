package system

import (
	"github.com/milk9111/siege/ecs"
	"github.com/milk9111/siege/ecs/component"
	"github.com/milk9111/siege/siege"
	"go.uber.org/zap"
)

// TTLSystem decrements frame-based TTL components and destroys entities when
// the TTL reaches zero. Expiring enemies leave the registry and the space too.
type TTLSystem struct {
	registry *siege.Registry
	logger   *zap.Logger
}

func NewTTLSystem(registry *siege.Registry, logger *zap.Logger) *TTLSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TTLSystem{registry: registry, logger: logger}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		if ttl.Frames > 0 {
			ttl.Frames--
			if ttl.Frames > 0 {
				return
			}
		}

		if en, ok := ecs.Get(w, e, component.EnemyComponent.Kind()); ok && en.Agent != nil {
			if err := s.registry.Despawn(en.Agent.ID); err != nil {
				s.logger.Warn("despawn failed", zap.Uint64("enemy", uint64(en.Agent.ID)), zap.Error(err))
			}
			w.Events().Push(ecs.Event{Type: ecs.EventEnemyDespawned, Entity: e, Data: en.Agent.ID})
			s.logger.Debug("enemy expired", zap.Uint64("enemy", uint64(en.Agent.ID)))
		}
		if pw := w.PhysicsWorld(); pw != nil {
			pw.RemoveActor(e)
		}
		ecs.DestroyEntity(w, e)
	})
}
