package component

import "github.com/milk9111/siege/siege"

// Enemy links an entity to its siege agent and controller.
type Enemy struct {
	Agent      *siege.Enemy
	Controller *siege.SiegeController
	Decision   siege.TargetDecision
	Inside     bool
	Breached   bool
	// AttackTimer counts ticks since the last swing while holding.
	AttackTimer int
}

var EnemyComponent = NewComponent[Enemy]()
