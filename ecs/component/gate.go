package component

import "github.com/milk9111/siege/siege"

// Gate marks an entity as the physical body of a barrier. Intact mirrors
// whether the barrier's static shape is currently in the space.
type Gate struct {
	Barrier    *siege.Barrier
	Intact     bool
	LastHealth int
}

// GateRepair regenerates a broken or damaged gate while nobody attacks it.
type GateRepair struct {
	Interval int
	Amount   int
	Timer    int
}

var GateComponent = NewComponent[Gate]()
var GateRepairComponent = NewComponent[GateRepair]()
