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

func holdingEnemy(t *testing.T, w *ecs.World, decision siege.TargetDecision) *component.Enemy {
	t.Helper()
	e := w.CreateEntity()
	agent := siege.NewEnemy(1, cp.Vector{}, nil)
	agent.Movement.State = siege.StateHold
	en := &component.Enemy{Agent: agent, Decision: decision}
	require.NoError(t, ecs.Add(w, e, component.EnemyComponent.Kind(), en))
	return en
}

func TestCombatDamagesBarrierOnCadence(t *testing.T) {
	w := newWorld(t, false)
	b := southGate(3)
	holdingEnemy(t, w, siege.TargetDecision{
		Kind:         siege.TargetBarrier,
		AttackTarget: siege.Target{Kind: siege.TargetBarrier, Barrier: b},
	})

	s := NewCombatSystem(3, 1, nil)
	for i := 0; i < 2; i++ {
		s.Update(w)
	}
	assert.Equal(t, 3, b.Health)
	s.Update(w)
	assert.Equal(t, 2, b.Health)

	for i := 0; i < 12; i++ {
		s.Update(w)
	}
	assert.True(t, b.Broken())
	assert.Zero(t, b.Health, "broken gates take no further damage")
}

func TestCombatHitsPlayer(t *testing.T) {
	w := newWorld(t, false)
	_, p := addPlayer(t, w, cp.Vector{})
	holdingEnemy(t, w, siege.TargetDecision{Kind: siege.TargetPlayer, AttackTarget: siege.Target{Kind: siege.TargetPlayer}})

	s := NewCombatSystem(1, 1, nil)
	s.Update(w)
	s.Update(w)
	assert.Equal(t, 2, p.Hits)
	assert.Equal(t, []ecs.EventType{ecs.EventPlayerHit, ecs.EventPlayerHit}, eventTypes(w))
}

func TestCombatChasingResetsTimer(t *testing.T) {
	w := newWorld(t, false)
	b := southGate(3)
	en := holdingEnemy(t, w, siege.TargetDecision{
		Kind:         siege.TargetBarrier,
		AttackTarget: siege.Target{Kind: siege.TargetBarrier, Barrier: b},
	})

	s := NewCombatSystem(2, 1, nil)
	s.Update(w)
	assert.Equal(t, 1, en.AttackTimer)

	en.Agent.Movement.State = siege.StateChase
	s.Update(w)
	assert.Zero(t, en.AttackTimer)
	assert.Equal(t, 3, b.Health)
}
