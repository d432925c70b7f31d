package system

import (
	"github.com/milk9111/siege/ecs"
	"github.com/milk9111/siege/ecs/component"
	"go.uber.org/zap"
)

// GateSystem keeps barrier physics in step with barrier health: broken
// gates leave the space, repaired ones come back.
type GateSystem struct {
	logger *zap.Logger
}

func NewGateSystem(logger *zap.Logger) *GateSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GateSystem{logger: logger}
}

func (s *GateSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()

	ecs.ForEach(w, component.GateComponent.Kind(), func(e ecs.Entity, g *component.Gate) {
		b := g.Barrier
		if b == nil {
			return
		}

		if r, ok := ecs.Get(w, e, component.GateRepairComponent.Kind()); ok {
			repairTick(g, r)
		}

		broken := b.Broken()
		switch {
		case g.Intact && broken:
			g.Intact = false
			pw.SetStaticEnabled(e, false)
			w.Events().Push(ecs.Event{Type: ecs.EventBarrierBroken, Entity: e, Data: b.ID})
			s.logger.Info("barrier broken", zap.Int("barrier", int(b.ID)))
		case !g.Intact && !broken:
			g.Intact = true
			pw.SetStaticEnabled(e, true)
			w.Events().Push(ecs.Event{Type: ecs.EventBarrierRepaired, Entity: e, Data: b.ID})
			s.logger.Info("barrier repaired", zap.Int("barrier", int(b.ID)), zap.Int("health", b.Health))
		}
		g.LastHealth = b.Health
	})
}

// repairTick restores health on a quiet gate. Any damage since the last
// tick restarts the countdown.
func repairTick(g *component.Gate, r *component.GateRepair) {
	b := g.Barrier
	if r.Interval <= 0 || r.Amount <= 0 {
		return
	}
	if b.Health < g.LastHealth || b.Health >= b.MaxHealth {
		r.Timer = 0
		return
	}
	r.Timer++
	if r.Timer >= r.Interval {
		r.Timer = 0
		b.Repair(r.Amount)
	}
}
