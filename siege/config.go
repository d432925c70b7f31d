package siege

// Config gathers every tuning value of the engine. The host supplies it;
// the core never reads files.
type Config struct {
	Movement          MovementParams
	Formation         FormationParams
	Overlap           OverlapParams
	PassThroughRadius float64
}

// DefaultConfig is tuned for world units of roughly one meter.
func DefaultConfig() Config {
	return Config{
		Movement: MovementParams{
			Speed:         3.5,
			HoldRadius:    1.6,
			ReleaseMargin: 0.6,
			OutrunFrames:  12,
			TrendEpsilon:  0.01,
			ReseatBias:    0.25,
			OrbitBase:     0.35,
			MaxTangent:    2.0,
			PrefDeadband:  0.05,
			Epsilon:       1e-4,
		},
		Formation: FormationParams{
			NeighborArcDeg: 90,
			BandWidth:      1.5,
			Stride:         1,
		},
		Overlap: OverlapParams{
			PushInDistance: 1.5,
			Skin:           0.02,
			MaxIterations:  3,
		},
		PassThroughRadius: 1.0,
	}
}
