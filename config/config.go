package config

import (
	"fmt"
	"strings"

	"github.com/milk9111/siege/siege"
	"github.com/spf13/viper"
)

type Config struct {
	Siege SiegeConfig `mapstructure:"siege"`
	Sim   SimConfig   `mapstructure:"sim"`
	Log   LogConfig   `mapstructure:"log"`
}

type SiegeConfig struct {
	PassThroughRadius float64         `mapstructure:"pass_through_radius"`
	Movement          MovementConfig  `mapstructure:"movement"`
	Formation         FormationConfig `mapstructure:"formation"`
	Overlap           OverlapConfig   `mapstructure:"overlap"`
}

type MovementConfig struct {
	Speed         float64 `mapstructure:"speed"`
	HoldRadius    float64 `mapstructure:"hold_radius"`
	ReleaseMargin float64 `mapstructure:"release_margin"`
	OutrunFrames  int     `mapstructure:"outrun_frames"`
	TrendEpsilon  float64 `mapstructure:"trend_epsilon"`
	ReseatBias    float64 `mapstructure:"reseat_bias"`
	OrbitBase     float64 `mapstructure:"orbit_base"`
	MaxTangent    float64 `mapstructure:"max_tangent"`
	PrefDeadband  float64 `mapstructure:"pref_deadband"`
	Epsilon       float64 `mapstructure:"epsilon"`
}

type FormationConfig struct {
	NeighborArcDeg float64 `mapstructure:"neighbor_arc_deg"`
	BandWidth      float64 `mapstructure:"band_width"`
	Stride         int     `mapstructure:"stride"`
}

type OverlapConfig struct {
	PushInDistance float64 `mapstructure:"push_in_distance"`
	Skin           float64 `mapstructure:"skin"`
	MaxIterations  int     `mapstructure:"max_iterations"`
}

type SimConfig struct {
	TickRate       int   `mapstructure:"tick_rate"`
	Ticks          int   `mapstructure:"ticks"`
	Seed           int64 `mapstructure:"seed"`
	AttackInterval int   `mapstructure:"attack_interval"` // ticks between swings while holding
	AttackDamage   int   `mapstructure:"attack_damage"`
}

type LogConfig struct {
	Level string `mapstructure:"level"` // debug | info | warn | error
}

// Load reads a YAML tuning file. An empty path yields the defaults, which
// can still be overridden through SIEGE_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("siege")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration Load produces without a file.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	_ = v.Unmarshal(cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	d := siege.DefaultConfig()

	v.SetDefault("siege.pass_through_radius", d.PassThroughRadius)
	v.SetDefault("siege.movement.speed", d.Movement.Speed)
	v.SetDefault("siege.movement.hold_radius", d.Movement.HoldRadius)
	v.SetDefault("siege.movement.release_margin", d.Movement.ReleaseMargin)
	v.SetDefault("siege.movement.outrun_frames", d.Movement.OutrunFrames)
	v.SetDefault("siege.movement.trend_epsilon", d.Movement.TrendEpsilon)
	v.SetDefault("siege.movement.reseat_bias", d.Movement.ReseatBias)
	v.SetDefault("siege.movement.orbit_base", d.Movement.OrbitBase)
	v.SetDefault("siege.movement.max_tangent", d.Movement.MaxTangent)
	v.SetDefault("siege.movement.pref_deadband", d.Movement.PrefDeadband)
	v.SetDefault("siege.movement.epsilon", d.Movement.Epsilon)
	v.SetDefault("siege.formation.neighbor_arc_deg", d.Formation.NeighborArcDeg)
	v.SetDefault("siege.formation.band_width", d.Formation.BandWidth)
	v.SetDefault("siege.formation.stride", d.Formation.Stride)
	v.SetDefault("siege.overlap.push_in_distance", d.Overlap.PushInDistance)
	v.SetDefault("siege.overlap.skin", d.Overlap.Skin)
	v.SetDefault("siege.overlap.max_iterations", d.Overlap.MaxIterations)

	v.SetDefault("sim.tick_rate", 60)
	v.SetDefault("sim.ticks", 3600)
	v.SetDefault("sim.seed", 1)
	v.SetDefault("sim.attack_interval", 30)
	v.SetDefault("sim.attack_damage", 1)

	v.SetDefault("log.level", "info")
}

// Tuning converts the siege section into core parameters.
func (c *Config) Tuning() siege.Config {
	s := c.Siege
	return siege.Config{
		PassThroughRadius: s.PassThroughRadius,
		Movement: siege.MovementParams{
			Speed:         s.Movement.Speed,
			HoldRadius:    s.Movement.HoldRadius,
			ReleaseMargin: s.Movement.ReleaseMargin,
			OutrunFrames:  s.Movement.OutrunFrames,
			TrendEpsilon:  s.Movement.TrendEpsilon,
			ReseatBias:    s.Movement.ReseatBias,
			OrbitBase:     s.Movement.OrbitBase,
			MaxTangent:    s.Movement.MaxTangent,
			PrefDeadband:  s.Movement.PrefDeadband,
			Epsilon:       s.Movement.Epsilon,
		},
		Formation: siege.FormationParams{
			NeighborArcDeg: s.Formation.NeighborArcDeg,
			BandWidth:      s.Formation.BandWidth,
			Stride:         s.Formation.Stride,
		},
		Overlap: siege.OverlapParams{
			PushInDistance: s.Overlap.PushInDistance,
			Skin:           s.Overlap.Skin,
			MaxIterations:  s.Overlap.MaxIterations,
		},
	}
}

// DT is the fixed timestep in seconds.
func (s SimConfig) DT() float64 {
	if s.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(s.TickRate)
}
