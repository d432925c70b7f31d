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

func TestRegionFlagsAndBreachOnce(t *testing.T) {
	w := newWorld(t, false)
	squareRegion(t, w)
	_, p := addPlayer(t, w, cp.Vector{X: 1})

	e := w.CreateEntity()
	tr := addTransform(t, w, e, cp.Vector{Y: -12})
	en := &component.Enemy{Agent: siege.NewEnemy(7, tr.Vector(), nil)}
	require.NoError(t, ecs.Add(w, e, component.EnemyComponent.Kind(), en))

	s := NewRegionSystem(nil)
	s.Update(w)
	assert.True(t, p.Inside)
	assert.False(t, en.Inside)
	assert.Empty(t, eventTypes(w))

	tr.Set(cp.Vector{Y: -9})
	s.Update(w)
	assert.True(t, en.Inside)
	assert.True(t, en.Breached)
	evs := w.Events().Drain()
	require.Len(t, evs, 1)
	assert.Equal(t, ecs.EventEnemyBreached, evs[0].Type)
	assert.Equal(t, siege.EnemyID(7), evs[0].Data)

	// leaving and re-entering is not a second breach
	tr.Set(cp.Vector{Y: -12})
	s.Update(w)
	tr.Set(cp.Vector{Y: -9})
	s.Update(w)
	assert.Empty(t, eventTypes(w))
}

func TestRegionMissingIsNoop(t *testing.T) {
	w := newWorld(t, false)
	_, p := addPlayer(t, w, cp.Vector{})
	p.Inside = true
	NewRegionSystem(nil).Update(w)
	assert.True(t, p.Inside)
}
