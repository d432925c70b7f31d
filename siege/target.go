package siege

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Select maps region state and the home barrier to a target decision.
//
// Siege units chase an exposed player unconditionally. While the player
// shelters inside, units outside the wall keep advancing on their home
// barrier, broken or not, until they are within passThroughRadius of a broken
// barrier's anchor; from there they go after the player.
func Select(enemyPos cp.Vector, enemyInside, playerInside bool, player Player, home *Barrier, passThroughRadius float64) TargetDecision {
	if player == nil {
		return TargetDecision{}
	}

	toPlayer := TargetDecision{
		SteerTarget:  player.Position(),
		AttackTarget: Target{Kind: TargetPlayer},
		Kind:         TargetPlayer,
	}

	if !playerInside || enemyInside || home == nil {
		return toPlayer
	}

	if home.Broken() && enemyPos.Distance(home.Anchor) <= passThroughRadius {
		return toPlayer
	}

	return TargetDecision{
		SteerTarget:  home.Anchor,
		AttackTarget: Target{Kind: TargetBarrier, Barrier: home},
		Kind:         TargetBarrier,
	}
}

// ChooseTargetWithHome runs Select with the enemy's sticky home barrier.
func ChooseTargetWithHome(e *Enemy, region RegionState, player Player, passThroughRadius float64) TargetDecision {
	if e == nil {
		return TargetDecision{}
	}
	enemyInside, playerInside := false, false
	if region != nil {
		enemyInside = region.EnemyInside(e.ID)
		playerInside = region.PlayerInside()
	}
	return Select(e.Position, enemyInside, playerInside, player, e.home, passThroughRadius)
}

// AssignHomeBarrier picks the candidate closest to the spawn position. It is
// meant to be called once per enemy, at spawn.
func AssignHomeBarrier(spawnPos cp.Vector, candidates []*Barrier) *Barrier {
	var best *Barrier
	bestDist := math.Inf(1)
	for _, b := range candidates {
		if b == nil {
			continue
		}
		d := spawnPos.Distance(b.Center)
		if d < bestDist {
			best = b
			bestDist = d
		}
	}
	return best
}
