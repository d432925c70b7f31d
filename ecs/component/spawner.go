package component

import "github.com/jakecoffman/cp"

// Wave is one burst of enemies released at a tick.
type Wave struct {
	AtTick  int
	Count   int
	Points  []cp.Vector
	Jitter  float64
	Spawned bool
}

// Spawner releases scenario waves.
type Spawner struct {
	Waves       []Wave
	HalfExtents cp.Vector
	// Lifetime in ticks for spawned enemies; 0 keeps them forever.
	Lifetime int
	NextID   uint64
}

var SpawnerComponent = NewComponent[Spawner]()
