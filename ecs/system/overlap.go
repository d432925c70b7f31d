package system

import (
	"github.com/milk9111/siege/ecs"
	"github.com/milk9111/siege/ecs/component"
	"github.com/milk9111/siege/siege"
	"go.uber.org/zap"
)

// OverlapSystem pushes actors out of intact barriers after integration.
// Broken barriers are pass-through.
type OverlapSystem struct {
	resolver *siege.OverlapResolver
	logger   *zap.Logger

	barriers []*siege.Barrier
	resolved int
}

func NewOverlapSystem(resolver *siege.OverlapResolver, logger *zap.Logger) *OverlapSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverlapSystem{resolver: resolver, logger: logger}
}

func (s *OverlapSystem) Update(w *ecs.World) {
	if w == nil || s.resolver == nil {
		return
	}

	s.barriers = s.barriers[:0]
	ecs.ForEach(w, component.GateComponent.Kind(), func(_ ecs.Entity, g *component.Gate) {
		if g.Barrier != nil && !g.Barrier.Broken() {
			s.barriers = append(s.barriers, g.Barrier)
		}
	})
	if len(s.barriers) == 0 {
		return
	}

	for _, e := range w.Query(component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind()) {
		var kind siege.ActorKind
		en, isEnemy := ecs.Get(w, e, component.EnemyComponent.Kind())
		switch {
		case ecs.Has(w, e, component.PlayerTagComponent.Kind()):
			kind = siege.ActorPlayer
		case isEnemy:
			kind = siege.ActorEnemy
		default:
			continue
		}
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())

		actor := siege.Actor{Kind: kind, Center: t.Vector(), HalfExtents: body.HalfExtents()}
		moved := false
		for _, b := range s.barriers {
			res := s.resolver.Resolve(actor, b)
			if !res.Overlapping {
				continue
			}
			actor.Center = res.Position
			moved = true
			if !res.Separated {
				s.logger.Debug("overlap left unresolved",
					zap.Stringer("entity", e),
					zap.Stringer("actor", kind),
					zap.Int("barrier", int(b.ID)),
					zap.Int("iterations", res.Iterations))
			}
		}
		if !moved {
			continue
		}

		t.Set(actor.Center)
		if body.Body != nil {
			body.Body.SetPosition(actor.Center)
		}
		if isEnemy && en.Agent != nil {
			en.Agent.Position = actor.Center
		}
		s.resolved++
	}
}

// Resolved counts actor corrections so far.
func (s *OverlapSystem) Resolved() int {
	return s.resolved
}
