package system

import (
	"errors"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/siege/ecs"
	"github.com/milk9111/siege/ecs/component"
	"go.uber.org/zap"
)

// PlayerScriptSystem steers scripted entities. Each tick the script sees
// tick, dt, x and y and answers with vx and vy.
type PlayerScriptSystem struct {
	clock  *Clock
	logger *zap.Logger
}

func NewPlayerScriptSystem(clock *Clock, logger *zap.Logger) *PlayerScriptSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlayerScriptSystem{clock: clock, logger: logger}
}

func (s *PlayerScriptSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.PlayerScriptComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ps *component.PlayerScript, t *component.Transform) {
		if ps.Failed {
			return
		}
		if ps.Compiled == nil {
			compiled, err := CompilePlayerScript(ps.Source)
			if err != nil {
				s.fail(w, e, ps, t, "compile", err)
				return
			}
			ps.Compiled = compiled
		}

		v, err := s.run(ps.Compiled, t.Vector())
		if err != nil {
			s.fail(w, e, ps, t, "run", err)
			return
		}
		if ps.Speed > 0 {
			if l := v.Length(); l > ps.Speed {
				v = v.Mult(ps.Speed / l)
			}
		}
		applyVelocity(w, e, t, v, s.clock.DT)
	})
}

func (s *PlayerScriptSystem) run(c *tengo.Compiled, pos cp.Vector) (cp.Vector, error) {
	if err := errors.Join(
		c.Set("tick", s.clock.Tick),
		c.Set("dt", s.clock.DT),
		c.Set("x", pos.X),
		c.Set("y", pos.Y),
	); err != nil {
		return cp.Vector{}, err
	}
	if err := c.Run(); err != nil {
		return cp.Vector{}, err
	}
	return cp.Vector{X: c.Get("vx").Float(), Y: c.Get("vy").Float()}, nil
}

// fail parks the entity; a broken script is not retried until reloaded.
func (s *PlayerScriptSystem) fail(w *ecs.World, e ecs.Entity, ps *component.PlayerScript, t *component.Transform, phase string, err error) {
	ps.Failed = true
	applyVelocity(w, e, t, cp.Vector{}, s.clock.DT)
	s.logger.Error("player script failed",
		zap.String("script", ps.Name),
		zap.String("phase", phase),
		zap.Error(err))
}

// CompilePlayerScript compiles src with the script inputs and outputs
// predeclared and the math module importable.
func CompilePlayerScript(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	_ = script.Add("tick", 0)
	_ = script.Add("dt", 0.0)
	_ = script.Add("x", 0.0)
	_ = script.Add("y", 0.0)
	_ = script.Add("vx", 0.0)
	_ = script.Add("vy", 0.0)

	script.SetImports(stdlib.GetModuleMap("math"))

	return script.Compile()
}
