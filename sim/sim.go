package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/siege/config"
	"github.com/milk9111/siege/ecs"
	"github.com/milk9111/siege/ecs/component"
	"github.com/milk9111/siege/ecs/system"
	"github.com/milk9111/siege/prefabs"
	"github.com/milk9111/siege/siege"
	"go.uber.org/zap"
)

var ErrNoScenario = errors.New("sim: scenario is nil")

var defaultHalfExtents = cp.Vector{X: 0.4, Y: 0.4}

// Stats summarizes one run.
type Stats struct {
	RunID            uuid.UUID
	Scenario         string
	Ticks            int
	Spawned          int
	Despawned        int
	Active           int
	Breaches         int
	BarriersBroken   int
	BarriersRepaired int
	HoldTransitions  int
	PlayerHits       int
	Corrections      int
}

// Simulation is the root that owns the registry, the ECS world and the
// physics space of one run.
type Simulation struct {
	scenario *prefabs.ScenarioSpec
	cfg      *config.Config
	logger   *zap.Logger

	clock     *system.Clock
	registry  *siege.Registry
	world     *ecs.World
	physics   *ecs.PhysicsWorld
	scheduler *ecs.Scheduler

	spawner   *system.SpawnSystem
	formation *system.FormationSystem
	siege     *system.SiegeSystem
	overlap   *system.OverlapSystem

	player ecs.Entity
	stats  Stats
}

// New assembles a run from a scenario. A nil cfg uses the defaults.
func New(scenario *prefabs.ScenarioSpec, cfg *config.Config, logger *zap.Logger) (*Simulation, error) {
	if scenario == nil {
		return nil, ErrNoScenario
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	runID := uuid.New()
	s := &Simulation{
		scenario: scenario,
		cfg:      cfg,
		logger:   logger.With(zap.String("run", runID.String()), zap.String("scenario", scenario.Name)),
		clock:    system.NewClock(cfg.Sim.DT()),
		registry: siege.NewRegistry(),
		world:    ecs.NewWorld(),
		physics:  ecs.NewPhysicsWorld(),
		stats:    Stats{RunID: runID, Scenario: scenario.Name},
	}
	s.world.SetPhysicsWorld(s.physics)

	if err := s.buildCastle(); err != nil {
		return nil, err
	}
	if err := s.buildPlayer(); err != nil {
		return nil, err
	}
	if err := s.buildSpawner(); err != nil {
		return nil, err
	}
	s.buildSystems()

	s.logger.Info("simulation ready",
		zap.Int("barriers", len(scenario.Barriers)),
		zap.Int("waves", len(scenario.Waves)),
		zap.Float64("dt", s.clock.DT))
	return s, nil
}

func (s *Simulation) buildCastle() error {
	region := s.world.CreateEntity()
	if err := ecs.Add(s.world, region, component.RegionComponent.Kind(), component.NewRegion(prefabs.Vectors(s.scenario.Castle.Polygon))); err != nil {
		return fmt.Errorf("sim: castle region: %w", err)
	}

	for _, spec := range s.scenario.Barriers {
		b := siege.NewBarrier(siege.BarrierSpec{
			ID:            siege.BarrierID(spec.ID),
			Center:        spec.Center.Vector(),
			HalfExtents:   spec.HalfExtents.Vector(),
			Outward:       spec.Outward.Vector(),
			AnchorOffset:  spec.AnchorOffset,
			HoldRadius:    spec.HoldRadius,
			ReleaseMargin: spec.ReleaseMargin,
			MaxHealth:     spec.MaxHealth,
		})
		if err := s.registry.AddBarrier(b); err != nil {
			return fmt.Errorf("sim: barrier %d: %w", spec.ID, err)
		}

		e := s.world.CreateEntity()
		s.physics.AddStaticBox(e, b.Bounds())
		err := errors.Join(
			ecs.Add(s.world, e, component.BarrierTagComponent.Kind(), &component.BarrierTag{}),
			ecs.Add(s.world, e, component.GateComponent.Kind(), &component.Gate{Barrier: b, Intact: true, LastHealth: b.Health}),
		)
		if spec.RepairInterval > 0 && spec.RepairAmount > 0 {
			err = errors.Join(err, ecs.Add(s.world, e, component.GateRepairComponent.Kind(), &component.GateRepair{
				Interval: spec.RepairInterval,
				Amount:   spec.RepairAmount,
			}))
		}
		if err != nil {
			return fmt.Errorf("sim: barrier %d: %w", spec.ID, err)
		}
	}
	return nil
}

func (s *Simulation) buildPlayer() error {
	spec := s.scenario.Player
	half := spec.HalfExtents.Vector()
	if half == (cp.Vector{}) {
		half = defaultHalfExtents
	}
	pos := spec.Position.Vector()

	e := s.world.CreateEntity()
	t := &component.Transform{}
	t.Set(pos)
	body := &component.PhysicsBody{
		Body:       s.physics.AddActor(e, pos, half, ecs.CollisionTypePlayer),
		HalfWidth:  half.X,
		HalfHeight: half.Y,
	}
	err := errors.Join(
		ecs.Add(s.world, e, component.TransformComponent.Kind(), t),
		ecs.Add(s.world, e, component.PhysicsBodyComponent.Kind(), body),
		ecs.Add(s.world, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}),
		ecs.Add(s.world, e, component.PlayerComponent.Kind(), &component.Player{Speed: spec.Speed}),
	)
	if err != nil {
		return fmt.Errorf("sim: player: %w", err)
	}

	switch {
	case spec.Script != "":
		src, err := prefabs.LoadScript(spec.Script)
		if err != nil {
			return fmt.Errorf("sim: player script %s: %w", spec.Script, err)
		}
		err = ecs.Add(s.world, e, component.PlayerScriptComponent.Kind(), &component.PlayerScript{
			Name:   spec.Script,
			Source: src,
			Speed:  spec.Speed,
		})
		if err != nil {
			return fmt.Errorf("sim: player script: %w", err)
		}
	case len(spec.Waypoints) > 0:
		err := ecs.Add(s.world, e, component.AnchorComponent.Kind(), &component.Anchor{
			Waypoints: prefabs.Vectors(spec.Waypoints),
			Speed:     spec.Speed,
			Loop:      spec.Loop,
		})
		if err != nil {
			return fmt.Errorf("sim: player waypoints: %w", err)
		}
	}

	s.player = e
	return nil
}

func (s *Simulation) buildSpawner() error {
	half := s.scenario.Enemy.HalfExtents.Vector()
	if half == (cp.Vector{}) {
		half = defaultHalfExtents
	}
	sp := &component.Spawner{HalfExtents: half, Lifetime: s.scenario.Enemy.LifetimeTicks}
	for _, w := range s.scenario.Waves {
		sp.Waves = append(sp.Waves, component.Wave{
			AtTick: w.AtTick,
			Count:  w.Count,
			Points: prefabs.Vectors(w.Points),
			Jitter: w.Jitter,
		})
	}
	e := s.world.CreateEntity()
	if err := ecs.Add(s.world, e, component.SpawnerComponent.Kind(), sp); err != nil {
		return fmt.Errorf("sim: spawner: %w", err)
	}
	return nil
}

func (s *Simulation) buildSystems() {
	tuning := s.cfg.Tuning()
	seed := uint64(s.cfg.Sim.Seed)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	s.spawner = system.NewSpawnSystem(s.clock, s.registry, tuning, rng, s.logger)
	s.formation = system.NewFormationSystem(siege.NewFormationCoordinator(tuning.Formation), s.registry, s.logger)
	s.siege = system.NewSiegeSystem(s.clock, s.logger)
	s.overlap = system.NewOverlapSystem(siege.NewOverlapResolver(tuning.Overlap), s.logger)

	s.scheduler = ecs.NewScheduler(
		s.spawner,
		system.NewAnchorSystem(s.clock),
		system.NewPlayerScriptSystem(s.clock, s.logger),
		system.NewRegionSystem(s.logger),
		s.formation,
		s.siege,
		system.NewPhysicsSystem(s.clock),
		s.overlap,
		system.NewCombatSystem(s.cfg.Sim.AttackInterval, s.cfg.Sim.AttackDamage, s.logger),
		system.NewGateSystem(s.logger),
		system.NewTTLSystem(s.registry, s.logger),
	)
}

// Step runs one fixed tick through every system.
func (s *Simulation) Step() {
	s.scheduler.Update(s.world)
	s.collect()
	s.clock.Advance()
	s.stats.Ticks++
}

// Run steps ticks times, or the configured sim.ticks when ticks <= 0. It
// stops early when ctx is done.
func (s *Simulation) Run(ctx context.Context, ticks int) (Stats, error) {
	if ticks <= 0 {
		ticks = s.cfg.Sim.Ticks
	}
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return s.Stats(), err
		}
		s.Step()
	}
	st := s.Stats()
	s.logger.Info("simulation finished",
		zap.Int("ticks", st.Ticks),
		zap.Int("spawned", st.Spawned),
		zap.Int("breaches", st.Breaches),
		zap.Int("barriers_broken", st.BarriersBroken))
	return st, nil
}

func (s *Simulation) collect() {
	for _, ev := range s.world.Events().Drain() {
		switch ev.Type {
		case ecs.EventEnemySpawned:
			s.stats.Spawned++
		case ecs.EventEnemyDespawned:
			s.stats.Despawned++
		case ecs.EventEnemyBreached:
			s.stats.Breaches++
		case ecs.EventBarrierBroken:
			s.stats.BarriersBroken++
		case ecs.EventBarrierRepaired:
			s.stats.BarriersRepaired++
		case ecs.EventPlayerHit:
			s.stats.PlayerHits++
		}
	}
}

func (s *Simulation) Stats() Stats {
	st := s.stats
	st.Active = s.registry.Len()
	st.HoldTransitions = s.siege.HoldTransitions()
	st.Corrections = s.overlap.Resolved()
	return st
}

func (s *Simulation) RunID() uuid.UUID {
	return s.stats.RunID
}

func (s *Simulation) Registry() *siege.Registry {
	return s.registry
}

func (s *Simulation) World() *ecs.World {
	return s.world
}

func (s *Simulation) Tick() int {
	return s.clock.Tick
}

// PlayerPosition is the player's current center.
func (s *Simulation) PlayerPosition() cp.Vector {
	if t, ok := ecs.Get(s.world, s.player, component.TransformComponent.Kind()); ok {
		return t.Vector()
	}
	return cp.Vector{}
}

// Formation is the latest formation pass.
func (s *Simulation) Formation() siege.FormationSnapshot {
	return s.formation.Snapshot()
}
