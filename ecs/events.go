package ecs

// EventType names what happened in the world during a tick.
type EventType string

const (
	EventEnemySpawned    EventType = "enemy_spawned"
	EventEnemyBreached   EventType = "enemy_breached"
	EventEnemyDespawned  EventType = "enemy_despawned"
	EventBarrierBroken   EventType = "barrier_broken"
	EventBarrierRepaired EventType = "barrier_repaired"
	EventPlayerHit       EventType = "player_hit"
)

// Event is a world event payload. Entity is the subject, when there is one.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// EventQueue is a simple FIFO queue drained once per tick.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
