package system

import (
	"github.com/milk9111/siege/ecs"
	"github.com/milk9111/siege/ecs/component"
	"github.com/milk9111/siege/siege"
	"go.uber.org/zap"
)

// FormationSystem runs the single formation pass of a tick, before any
// enemy moves.
type FormationSystem struct {
	coord    *siege.FormationCoordinator
	registry *siege.Registry
	logger   *zap.Logger

	members []siege.FormationMember
	last    siege.FormationSnapshot
}

func NewFormationSystem(coord *siege.FormationCoordinator, registry *siege.Registry, logger *zap.Logger) *FormationSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormationSystem{coord: coord, registry: registry, logger: logger}
}

func (s *FormationSystem) Update(w *ecs.World) {
	if w == nil || s.coord == nil || s.registry == nil {
		return
	}
	pe, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, pe, component.TransformComponent.Kind())
	if !ok {
		return
	}

	s.members = s.registry.FormationMembers(s.members)
	snap, ran, err := s.coord.Update(t.Vector(), s.members, s.registry)
	if err != nil {
		s.logger.Warn("formation write-back failed", zap.Error(err))
	}
	if ran {
		s.last = snap
	}
}

// Snapshot is the most recent formation pass. Its slices are reused by the
// coordinator on the next pass.
func (s *FormationSystem) Snapshot() siege.FormationSnapshot {
	return s.last
}
