package prefabs

import (
	"errors"
	"fmt"
	"os"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScenario = errors.New("prefabs: invalid scenario")

type Vec2Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vec2Spec) Vector() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func Vectors(specs []Vec2Spec) []cp.Vector {
	out := make([]cp.Vector, len(specs))
	for i, s := range specs {
		out[i] = s.Vector()
	}
	return out
}

type ScenarioSpec struct {
	Name     string        `yaml:"name"`
	Castle   CastleSpec    `yaml:"castle"`
	Player   PlayerSpec    `yaml:"player"`
	Barriers []BarrierSpec `yaml:"barriers"`
	Enemy    EnemySpec     `yaml:"enemy"`
	Waves    []WaveSpec    `yaml:"waves"`
}

type CastleSpec struct {
	Polygon []Vec2Spec `yaml:"polygon"`
}

type PlayerSpec struct {
	Position    Vec2Spec   `yaml:"position"`
	HalfExtents Vec2Spec   `yaml:"half_extents"`
	Speed       float64    `yaml:"speed"`
	Waypoints   []Vec2Spec `yaml:"waypoints"`
	Loop        bool       `yaml:"loop"`
	// Script names a tengo file under scripts/. It wins over waypoints.
	Script string `yaml:"script"`
}

type BarrierSpec struct {
	ID             int      `yaml:"id"`
	Center         Vec2Spec `yaml:"center"`
	HalfExtents    Vec2Spec `yaml:"half_extents"`
	Outward        Vec2Spec `yaml:"outward"`
	AnchorOffset   float64  `yaml:"anchor_offset"`
	HoldRadius     float64  `yaml:"hold_radius"`
	ReleaseMargin  float64  `yaml:"release_margin"`
	MaxHealth      int      `yaml:"max_health"`
	RepairInterval int      `yaml:"repair_interval"`
	RepairAmount   int      `yaml:"repair_amount"`
}

type EnemySpec struct {
	HalfExtents Vec2Spec `yaml:"half_extents"`
	// LifetimeTicks despawns each enemy that many ticks after it spawns.
	LifetimeTicks int `yaml:"lifetime_ticks"`
}

type WaveSpec struct {
	AtTick int        `yaml:"at_tick"`
	Count  int        `yaml:"count"`
	Points []Vec2Spec `yaml:"points"`
	Jitter float64    `yaml:"jitter"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadScenario resolves name as a file path first and as a prefab name
// second, then validates the result.
func LoadScenario(name string) (*ScenarioSpec, error) {
	if data, err := os.ReadFile(name); err == nil {
		return ParseScenario(name, data)
	}
	spec, err := LoadSpec[ScenarioSpec](name)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: validate %s: %w", name, err)
	}
	return &spec, nil
}

func ParseScenario(name string, data []byte) (*ScenarioSpec, error) {
	var spec ScenarioSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", name, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: validate %s: %w", name, err)
	}
	return &spec, nil
}

func (s *ScenarioSpec) Validate() error {
	if len(s.Castle.Polygon) < 3 {
		return fmt.Errorf("%w: castle polygon needs at least 3 points, got %d", ErrInvalidScenario, len(s.Castle.Polygon))
	}
	seen := make(map[int]bool, len(s.Barriers))
	for _, b := range s.Barriers {
		if seen[b.ID] {
			return fmt.Errorf("%w: duplicate barrier id %d", ErrInvalidScenario, b.ID)
		}
		seen[b.ID] = true
		if b.MaxHealth <= 0 {
			return fmt.Errorf("%w: barrier %d needs positive max_health", ErrInvalidScenario, b.ID)
		}
	}
	if s.Enemy.LifetimeTicks < 0 {
		return fmt.Errorf("%w: negative enemy lifetime", ErrInvalidScenario)
	}
	for i, w := range s.Waves {
		if w.Count < 0 || w.AtTick < 0 {
			return fmt.Errorf("%w: wave %d has negative count or tick", ErrInvalidScenario, i)
		}
		if w.Count > 0 && len(w.Points) == 0 {
			return fmt.Errorf("%w: wave %d has no spawn points", ErrInvalidScenario, i)
		}
	}
	return nil
}
