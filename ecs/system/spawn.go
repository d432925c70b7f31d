package system

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/siege/ecs"
	"github.com/milk9111/siege/ecs/component"
	"github.com/milk9111/siege/siege"
	"go.uber.org/zap"
)

// SpawnSystem releases scenario waves into the registry and the world.
type SpawnSystem struct {
	clock    *Clock
	registry *siege.Registry
	cfg      siege.Config
	rng      *rand.Rand
	logger   *zap.Logger
}

func NewSpawnSystem(clock *Clock, registry *siege.Registry, cfg siege.Config, rng *rand.Rand, logger *zap.Logger) *SpawnSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpawnSystem{clock: clock, registry: registry, cfg: cfg, rng: rng, logger: logger}
}

func (s *SpawnSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.registry == nil {
		return
	}

	ecs.ForEach(w, component.SpawnerComponent.Kind(), func(_ ecs.Entity, sp *component.Spawner) {
		for i := range sp.Waves {
			wave := &sp.Waves[i]
			if wave.Spawned || wave.AtTick > s.clock.Tick {
				continue
			}
			wave.Spawned = true
			if len(wave.Points) == 0 {
				continue
			}
			for n := 0; n < wave.Count; n++ {
				pos := wave.Points[n%len(wave.Points)].Add(s.jitter(wave.Jitter))
				sp.NextID++
				e, err := s.Spawn(w, siege.EnemyID(sp.NextID), pos, sp.HalfExtents)
				if err != nil {
					s.logger.Warn("enemy spawn failed", zap.Uint64("enemy", sp.NextID), zap.Error(err))
					continue
				}
				s.attachLifetime(w, e, siege.EnemyID(sp.NextID), sp.Lifetime)
			}
			s.logger.Info("wave released",
				zap.Int("wave", i),
				zap.Int("tick", s.clock.Tick),
				zap.Int("count", wave.Count),
				zap.Int("active", s.registry.Len()))
		}
	})
}

// Spawn registers one enemy and builds its entity.
func (s *SpawnSystem) Spawn(w *ecs.World, id siege.EnemyID, pos, halfExtents cp.Vector) (ecs.Entity, error) {
	agent, err := s.registry.Spawn(id, pos)
	if err != nil {
		return 0, err
	}

	e := w.CreateEntity()
	t := &component.Transform{}
	t.Set(pos)
	body := &component.PhysicsBody{HalfWidth: halfExtents.X, HalfHeight: halfExtents.Y}

	var mover siege.Mover
	if pw := w.PhysicsWorld(); pw != nil {
		body.Body = pw.AddActor(e, pos, halfExtents, ecs.CollisionTypeEnemy)
		if m := pw.Mover(e); m != nil {
			mover = m
		}
	}

	enemy := &component.Enemy{
		Agent:      agent,
		Controller: siege.NewSiegeController(agent, s.cfg, mover, s.logger),
	}

	if err := errors.Join(
		ecs.Add(w, e, component.TransformComponent.Kind(), t),
		ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body),
		ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{}),
		ecs.Add(w, e, component.EnemyComponent.Kind(), enemy),
	); err != nil {
		return e, fmt.Errorf("spawn enemy %d: %w", id, err)
	}

	w.Events().Push(ecs.Event{Type: ecs.EventEnemySpawned, Entity: e, Data: id})

	home := -1
	if b := agent.Home(); b != nil {
		home = int(b.ID)
	}
	s.logger.Debug("enemy spawned",
		zap.Uint64("enemy", uint64(id)),
		zap.Stringer("entity", e),
		zap.Float64("x", pos.X),
		zap.Float64("y", pos.Y),
		zap.Int("home", home))
	return e, nil
}

// attachLifetime gives a spawned enemy a TTL. Zero or negative lifetimes
// leave it alive until it is killed some other way.
func (s *SpawnSystem) attachLifetime(w *ecs.World, e ecs.Entity, id siege.EnemyID, frames int) bool {
	if frames <= 0 {
		return false
	}
	if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: frames}); err != nil {
		s.logger.Warn("enemy lifetime not attached",
			zap.Uint64("enemy", uint64(id)),
			zap.Stringer("entity", e),
			zap.Error(err))
		return false
	}
	return true
}

func (s *SpawnSystem) jitter(amount float64) cp.Vector {
	if amount <= 0 || s.rng == nil {
		return cp.Vector{}
	}
	return cp.Vector{
		X: (s.rng.Float64()*2 - 1) * amount,
		Y: (s.rng.Float64()*2 - 1) * amount,
	}
}
