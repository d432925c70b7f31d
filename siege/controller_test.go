package siege

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingMover struct {
	calls []cp.Vector
}

func (m *recordingMover) SetVelocity(v cp.Vector) { m.calls = append(m.calls, v) }

func TestControllerIntegratesWithoutMover(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEnemy(1, cp.Vector{X: 10}, nil)
	c := NewSiegeController(e, cfg, nil, nil)

	res := c.Tick(StaticRegion{}, StaticPlayer{}, 0.1)
	assert.Equal(t, TargetPlayer, res.Decision.Kind)
	assert.InDelta(t, 10-cfg.Movement.Speed*0.1, e.Position.X, 1e-9)
	assert.Equal(t, res.Movement.Velocity(), e.Velocity)
}

func TestControllerUsesMover(t *testing.T) {
	e := NewEnemy(1, cp.Vector{X: 10}, nil)
	m := &recordingMover{}
	c := NewSiegeController(e, DefaultConfig(), m, nil)

	c.Tick(StaticRegion{}, StaticPlayer{}, 0.1)
	require.Len(t, m.calls, 1)
	assert.Equal(t, cp.Vector{X: 10}, e.Position, "the mover owns integration")
	assert.Less(t, m.calls[0].X, 0.0)
}

func TestControllerNoPlayerStandsStill(t *testing.T) {
	e := NewEnemy(1, cp.Vector{X: 3}, nil)
	m := &recordingMover{}
	c := NewSiegeController(e, DefaultConfig(), m, nil)

	res := c.Tick(StaticRegion{}, nil, 0.1)
	assert.Equal(t, TargetNone, res.Decision.Kind)
	require.Len(t, m.calls, 1)
	assert.Equal(t, cp.Vector{}, m.calls[0])
}

func TestControllerApproachesAndHolds(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEnemy(1, cp.Vector{X: 20, Y: 0}, nil)
	c := NewSiegeController(e, cfg, nil, nil)

	for i := 0; i < 400 && e.Movement.State != StateHold; i++ {
		c.Tick(StaticRegion{}, StaticPlayer{}, 1.0/60)
	}
	require.Equal(t, StateHold, e.Movement.State)
	assert.LessOrEqual(t, e.Position.Length(), cfg.Movement.HoldRadius)
}

func TestControllerBreachSequence(t *testing.T) {
	cfg := DefaultConfig()
	home := testBarrier(1, cp.Vector{})
	e := NewEnemy(1, cp.Vector{Y: -12}, home)
	region := StaticRegion{Player: true}
	player := StaticPlayer{Y: 6}
	c := NewSiegeController(e, cfg, nil, nil)

	for i := 0; i < 600 && e.Movement.State != StateHold; i++ {
		res := c.Tick(region, player, 1.0/60)
		require.Equal(t, TargetBarrier, res.Decision.Kind)
	}
	require.Equal(t, StateHold, e.Movement.State)
	assert.LessOrEqual(t, e.Position.Distance(home.Anchor), home.HoldRadius)

	home.Damage(home.MaxHealth)
	res := c.Tick(region, player, 1.0/60)
	// still outside the pass-through radius or already through; either way
	// the broken barrier cannot be held
	assert.Equal(t, StateChase, e.Movement.State)

	for i := 0; i < 600 && res.Decision.Kind != TargetPlayer; i++ {
		res = c.Tick(region, player, 1.0/60)
	}
	assert.Equal(t, TargetPlayer, res.Decision.Kind)
	assert.LessOrEqual(t, e.Position.Distance(home.Anchor), cfg.PassThroughRadius+cfg.Movement.Speed/60)
}

func TestControllerLogsTransitions(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	e := NewEnemy(1, cp.Vector{X: 1}, nil)
	c := NewSiegeController(e, DefaultConfig(), nil, zap.New(core))

	c.Tick(StaticRegion{}, StaticPlayer{}, 0)
	assert.Equal(t, 1, logs.FilterMessage("siege state transition").Len())
	assert.Equal(t, 1, logs.FilterMessage("siege target changed").Len())
}
