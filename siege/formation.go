package siege

import (
	"cmp"
	"errors"
	"math"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/siege/common"
)

// FormationParams tune the ring spacing pass.
type FormationParams struct {
	// NeighborArcDeg is the widest gap, in degrees, still treated as a
	// local neighbor.
	NeighborArcDeg float64
	// BandWidth is how far an enemy may sit from the median distance and
	// still receive spacing pressure.
	BandWidth float64
	// Stride runs the pass every Stride ticks. Values below 1 mean every tick.
	Stride int
}

// FormationMember is the input for one active enemy.
type FormationMember struct {
	ID       EnemyID
	Position cp.Vector
}

// FormationEntry is one enemy as seen from the player.
type FormationEntry struct {
	ID       EnemyID
	Angle    float64
	Distance float64
	GapCW    float64
	GapCCW   float64
}

// FormationSnapshot is valid until the next Update; its slice aliases the
// coordinator's buffers.
type FormationSnapshot struct {
	Entries []FormationEntry
	Median  float64
}

// GapSink receives the angular gaps computed for each enemy.
type GapSink interface {
	SetAngularGaps(id EnemyID, gapCW, gapCCW float64) error
}

// FormationCoordinator spreads enemies around the player so holders do not
// stack on the same bearing. It owns scratch buffers that grow to the
// largest population seen and are reused every pass.
type FormationCoordinator struct {
	params  FormationParams
	tick    int
	entries []FormationEntry
	scratch []float64
}

func NewFormationCoordinator(params FormationParams) *FormationCoordinator {
	return &FormationCoordinator{params: params}
}

// Params returns the current tuning.
func (fc *FormationCoordinator) Params() FormationParams {
	return fc.params
}

// SetParams swaps tuning between passes.
func (fc *FormationCoordinator) SetParams(params FormationParams) {
	fc.params = params
}

// Update runs one pass if the stride allows it. The bool reports whether the
// pass ran this tick.
func (fc *FormationCoordinator) Update(player cp.Vector, members []FormationMember, sink GapSink) (FormationSnapshot, bool, error) {
	stride := fc.params.Stride
	if stride < 1 {
		stride = 1
	}
	run := fc.tick%stride == 0
	fc.tick++
	if !run {
		return FormationSnapshot{}, false, nil
	}

	snap := fc.compute(player, members)
	if sink == nil {
		return snap, true, nil
	}

	var errs []error
	for _, e := range snap.Entries {
		if err := sink.SetAngularGaps(e.ID, e.GapCW, e.GapCCW); err != nil {
			errs = append(errs, err)
		}
	}
	return snap, true, errors.Join(errs...)
}

func (fc *FormationCoordinator) compute(player cp.Vector, members []FormationMember) FormationSnapshot {
	n := len(members)
	if n == 0 {
		fc.entries = fc.entries[:0]
		return FormationSnapshot{Entries: fc.entries}
	}

	if cap(fc.entries) < n {
		fc.entries = make([]FormationEntry, n)
	}
	fc.entries = fc.entries[:n]
	if cap(fc.scratch) < n {
		fc.scratch = make([]float64, n)
	}
	fc.scratch = fc.scratch[:n]

	for i, m := range members {
		d := m.Position.Sub(player)
		fc.entries[i] = FormationEntry{
			ID:       m.ID,
			Angle:    math.Atan2(d.Y, d.X),
			Distance: math.Hypot(d.X, d.Y),
		}
		fc.scratch[i] = fc.entries[i].Distance
	}

	slices.SortFunc(fc.entries, func(a, b FormationEntry) int {
		return cmp.Compare(a.Angle, b.Angle)
	})

	median := Median(fc.scratch)
	if n == 1 {
		return FormationSnapshot{Entries: fc.entries, Median: median}
	}

	arc := fc.params.NeighborArcDeg * math.Pi / 180
	band := common.NonNegative(fc.params.BandWidth)
	for i := range fc.entries {
		self := &fc.entries[i]
		cw := fc.entries[(i-1+n)%n]
		ccw := fc.entries[(i+1)%n]

		gapCW := common.WrapPositive(self.Angle - cw.Angle)
		gapCCW := common.WrapPositive(ccw.Angle - self.Angle)
		if gapCW > arc {
			gapCW = 0
		}
		if gapCCW > arc {
			gapCCW = 0
		}
		if math.Abs(self.Distance-median) > band {
			gapCW, gapCCW = 0, 0
		}
		self.GapCW = gapCW
		self.GapCCW = gapCCW
	}

	return FormationSnapshot{Entries: fc.entries, Median: median}
}

// Median returns the median of values using quickselect. values is
// reordered in place. Even-length inputs average the two central order
// statistics; an empty input returns 0.
func Median(values []float64) float64 {
	n := len(values)
	switch n {
	case 0:
		return 0
	case 1:
		return values[0]
	}

	k := n / 2
	upper := selectKth(values, k)
	if n%2 == 1 {
		return upper
	}
	// after selection everything left of k is <= values[k]
	lower := values[0]
	for _, v := range values[1:k] {
		if v > lower {
			lower = v
		}
	}
	return (lower + upper) / 2
}

// selectKth partitions values so values[k] holds the k-th smallest element.
func selectKth(values []float64, k int) float64 {
	lo, hi := 0, len(values)-1
	for lo < hi {
		p := partition(values, lo, hi)
		switch {
		case p == k:
			return values[k]
		case p < k:
			lo = p + 1
		default:
			hi = p - 1
		}
	}
	return values[k]
}

// partition is Lomuto with a median-of-three pivot.
func partition(values []float64, lo, hi int) int {
	mid := lo + (hi-lo)/2
	if values[mid] < values[lo] {
		values[mid], values[lo] = values[lo], values[mid]
	}
	if values[hi] < values[lo] {
		values[hi], values[lo] = values[lo], values[hi]
	}
	if values[mid] < values[hi] {
		values[mid], values[hi] = values[hi], values[mid]
	}
	pivot := values[hi]

	i := lo
	for j := lo; j < hi; j++ {
		if values[j] < pivot {
			values[i], values[j] = values[j], values[i]
			i++
		}
	}
	values[i], values[hi] = values[hi], values[i]
	return i
}
