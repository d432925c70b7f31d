package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/siege/ecs"
	"github.com/milk9111/siege/ecs/component"
	"github.com/milk9111/siege/siege"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func overlapEnemy(t *testing.T, w *ecs.World, pos cp.Vector) (*component.Transform, *component.Enemy, *component.PhysicsBody) {
	t.Helper()
	e := w.CreateEntity()
	tr := addTransform(t, w, e, pos)
	half := cp.Vector{X: 0.4, Y: 0.4}
	body := &component.PhysicsBody{HalfWidth: half.X, HalfHeight: half.Y}
	if pw := w.PhysicsWorld(); pw != nil {
		body.Body = pw.AddActor(e, pos, half, ecs.CollisionTypeEnemy)
	}
	en := &component.Enemy{Agent: siege.NewEnemy(1, pos, nil)}
	require.NoError(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body))
	require.NoError(t, ecs.Add(w, e, component.EnemyComponent.Kind(), en))
	return tr, en, body
}

func TestOverlapPushesEnemyOutOfIntactGate(t *testing.T) {
	w := newWorld(t, true)
	addGate(t, w, southGate(5))
	tr, en, body := overlapEnemy(t, w, cp.Vector{X: 0.3, Y: -10.6})

	s := NewOverlapSystem(siege.NewOverlapResolver(siege.DefaultConfig().Overlap), nil)
	s.Update(w)

	// outward face is at y = -10.5; the enemy sits below it, skin included
	assert.Less(t, tr.Y, -10.9)
	assert.InDelta(t, 0.3, tr.X, 1e-9, "partial overlaps keep their lateral offset")
	assert.Equal(t, tr.Vector(), en.Agent.Position)
	assert.InDelta(t, tr.Y, body.Body.Position().Y, 1e-9)
	assert.Equal(t, 1, s.Resolved())
}

func TestOverlapIgnoresBrokenGate(t *testing.T) {
	w := newWorld(t, true)
	b := southGate(5)
	b.Damage(5)
	addGate(t, w, b)
	tr, _, _ := overlapEnemy(t, w, cp.Vector{Y: -10})

	s := NewOverlapSystem(siege.NewOverlapResolver(siege.DefaultConfig().Overlap), nil)
	s.Update(w)
	assert.Equal(t, cp.Vector{Y: -10}, tr.Vector())
	assert.Zero(t, s.Resolved())
}

func TestOverlapPushesPlayerInward(t *testing.T) {
	w := newWorld(t, false)
	addGate(t, w, southGate(5))
	e, _ := addPlayer(t, w, cp.Vector{Y: -10.6})
	require.NoError(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{HalfWidth: 0.4, HalfHeight: 0.4}))

	NewOverlapSystem(siege.NewOverlapResolver(siege.DefaultConfig().Overlap), nil).Update(w)
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Greater(t, tr.Y, -9.5+0.4)
}
