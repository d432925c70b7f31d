package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/siege/ecs"
	"github.com/milk9111/siege/ecs/component"
	"github.com/milk9111/siege/siege"
	"github.com/stretchr/testify/require"
)

const testDT = 1.0 / 60

func newWorld(t *testing.T, physics bool) *ecs.World {
	t.Helper()
	w := ecs.NewWorld()
	if physics {
		w.SetPhysicsWorld(ecs.NewPhysicsWorld())
	}
	return w
}

func addTransform(t *testing.T, w *ecs.World, e ecs.Entity, pos cp.Vector) *component.Transform {
	t.Helper()
	tr := &component.Transform{}
	tr.Set(pos)
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), tr))
	return tr
}

func addPlayer(t *testing.T, w *ecs.World, pos cp.Vector) (ecs.Entity, *component.Player) {
	t.Helper()
	e := w.CreateEntity()
	addTransform(t, w, e, pos)
	p := &component.Player{}
	require.NoError(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, e, component.PlayerComponent.Kind(), p))
	return e, p
}

func addGate(t *testing.T, w *ecs.World, b *siege.Barrier) (ecs.Entity, *component.Gate) {
	t.Helper()
	e := w.CreateEntity()
	if pw := w.PhysicsWorld(); pw != nil {
		pw.AddStaticBox(e, b.Bounds())
	}
	g := &component.Gate{Barrier: b, Intact: !b.Broken(), LastHealth: b.Health}
	require.NoError(t, ecs.Add(w, e, component.GateComponent.Kind(), g))
	return e, g
}

func southGate(health int) *siege.Barrier {
	return siege.NewBarrier(siege.BarrierSpec{
		ID:            1,
		Center:        cp.Vector{Y: -10},
		HalfExtents:   cp.Vector{X: 1.5, Y: 0.5},
		Outward:       cp.Vector{Y: -1},
		AnchorOffset:  1.2,
		HoldRadius:    1.5,
		ReleaseMargin: 0.6,
		MaxHealth:     health,
	})
}

func squareRegion(t *testing.T, w *ecs.World) {
	t.Helper()
	e := w.CreateEntity()
	poly := []cp.Vector{{X: -10, Y: -10}, {X: 10, Y: -10}, {X: 10, Y: 10}, {X: -10, Y: 10}}
	require.NoError(t, ecs.Add(w, e, component.RegionComponent.Kind(), component.NewRegion(poly)))
}

func eventTypes(w *ecs.World) []ecs.EventType {
	var out []ecs.EventType
	for _, ev := range w.Events().Drain() {
		out = append(out, ev.Type)
	}
	return out
}
