package siege

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

var (
	ErrDuplicateEnemy   = errors.New("siege: enemy already spawned")
	ErrUnknownEnemy     = errors.New("siege: unknown enemy")
	ErrDuplicateBarrier = errors.New("siege: barrier already registered")
	ErrNilBarrier       = errors.New("siege: barrier is nil")
)

// Registry holds the active enemies and all barriers of one simulation. It is
// owned by the simulation root; Spawn and Despawn are the only places enemies
// enter or leave it.
type Registry struct {
	barriers  []*Barrier
	barrierBy map[BarrierID]*Barrier

	enemies []*Enemy
	index   map[EnemyID]int
}

func NewRegistry() *Registry {
	return &Registry{
		barrierBy: make(map[BarrierID]*Barrier),
		index:     make(map[EnemyID]int),
	}
}

// AddBarrier registers a barrier at castle-assembly time.
func (r *Registry) AddBarrier(b *Barrier) error {
	if b == nil {
		return ErrNilBarrier
	}
	if _, ok := r.barrierBy[b.ID]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateBarrier, b.ID)
	}
	r.barriers = append(r.barriers, b)
	r.barrierBy[b.ID] = b
	return nil
}

func (r *Registry) Barrier(id BarrierID) (*Barrier, bool) {
	b, ok := r.barrierBy[id]
	return b, ok
}

// Barriers returns barriers in registration order. The slice must not be
// modified.
func (r *Registry) Barriers() []*Barrier {
	return r.barriers
}

// Spawn adds an enemy and assigns its home barrier, the nearest one at this
// moment. The assignment is never revisited.
func (r *Registry) Spawn(id EnemyID, pos cp.Vector) (*Enemy, error) {
	if _, ok := r.index[id]; ok {
		return nil, fmt.Errorf("%w: %d", ErrDuplicateEnemy, id)
	}
	e := NewEnemy(id, pos, AssignHomeBarrier(pos, r.barriers))
	r.index[id] = len(r.enemies)
	r.enemies = append(r.enemies, e)
	return e, nil
}

// Despawn removes an enemy, keeping the spawn order of the others.
func (r *Registry) Despawn(id EnemyID) error {
	i, ok := r.index[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownEnemy, id)
	}
	copy(r.enemies[i:], r.enemies[i+1:])
	r.enemies[len(r.enemies)-1] = nil
	r.enemies = r.enemies[:len(r.enemies)-1]
	delete(r.index, id)
	for j := i; j < len(r.enemies); j++ {
		r.index[r.enemies[j].ID] = j
	}
	return nil
}

func (r *Registry) Enemy(id EnemyID) (*Enemy, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return r.enemies[i], true
}

// Enemies returns active enemies in spawn order. The slice must not be
// modified.
func (r *Registry) Enemies() []*Enemy {
	return r.enemies
}

func (r *Registry) Len() int {
	return len(r.enemies)
}

// SetAngularGaps stores formation hints for the next movement tick.
func (r *Registry) SetAngularGaps(id EnemyID, gapCW, gapCCW float64) error {
	e, ok := r.Enemy(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownEnemy, id)
	}
	e.GapCW = gapCW
	e.GapCCW = gapCCW
	return nil
}

// FormationMembers appends every active enemy to buf and returns it.
func (r *Registry) FormationMembers(buf []FormationMember) []FormationMember {
	buf = buf[:0]
	for _, e := range r.enemies {
		buf = append(buf, FormationMember{ID: e.ID, Position: e.Position})
	}
	return buf
}
