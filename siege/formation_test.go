package siege

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gapRecorder map[EnemyID][2]float64

func (g gapRecorder) SetAngularGaps(id EnemyID, cw, ccw float64) error {
	g[id] = [2]float64{cw, ccw}
	return nil
}

func polar(deg, r float64) cp.Vector {
	a := deg * math.Pi / 180
	return cp.Vector{X: r * math.Cos(a), Y: r * math.Sin(a)}
}

func TestFormationSingleEnemy(t *testing.T) {
	fc := NewFormationCoordinator(FormationParams{NeighborArcDeg: 360, BandWidth: 10})
	rec := gapRecorder{}
	snap, ran, err := fc.Update(cp.Vector{}, []FormationMember{{ID: 1, Position: polar(30, 2)}}, rec)
	require.NoError(t, err)
	require.True(t, ran)
	require.Len(t, snap.Entries, 1)
	assert.Equal(t, [2]float64{0, 0}, rec[1])
	assert.InDelta(t, 2, snap.Median, 1e-9)
}

func TestFormationEmpty(t *testing.T) {
	fc := NewFormationCoordinator(FormationParams{})
	snap, ran, err := fc.Update(cp.Vector{}, nil, gapRecorder{})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Empty(t, snap.Entries)
	assert.Zero(t, snap.Median)
}

func TestFormationTwoOpposite(t *testing.T) {
	fc := NewFormationCoordinator(FormationParams{NeighborArcDeg: 181, BandWidth: 1})
	rec := gapRecorder{}
	_, _, err := fc.Update(cp.Vector{X: 3, Y: 3}, []FormationMember{
		{ID: 1, Position: cp.Vector{X: 5, Y: 3}},
		{ID: 2, Position: cp.Vector{X: 1, Y: 3}},
	}, rec)
	require.NoError(t, err)
	for _, id := range []EnemyID{1, 2} {
		assert.InDelta(t, math.Pi, rec[id][0], 1e-9, "cw gap of %d", id)
		assert.InDelta(t, math.Pi, rec[id][1], 1e-9, "ccw gap of %d", id)
	}
}

func TestFormationNeighborArcCutoff(t *testing.T) {
	fc := NewFormationCoordinator(FormationParams{NeighborArcDeg: 90, BandWidth: 1})
	rec := gapRecorder{}
	_, _, err := fc.Update(cp.Vector{}, []FormationMember{
		{ID: 1, Position: polar(0, 2)},
		{ID: 2, Position: polar(30, 2)},
		{ID: 3, Position: polar(180, 2)},
	}, rec)
	require.NoError(t, err)

	deg := math.Pi / 180
	// 1: cw neighbor is 3 (180° away), ccw is 2 (30°)
	assert.Zero(t, rec[1][0])
	assert.InDelta(t, 30*deg, rec[1][1], 1e-9)
	// 2: cw is 1 (30°), ccw is 3 (150°)
	assert.InDelta(t, 30*deg, rec[2][0], 1e-9)
	assert.Zero(t, rec[2][1])
	// 3: both neighbors too far
	assert.Equal(t, [2]float64{0, 0}, rec[3])
}

func TestFormationBandWidth(t *testing.T) {
	fc := NewFormationCoordinator(FormationParams{NeighborArcDeg: 360, BandWidth: 0.5})
	rec := gapRecorder{}
	_, _, err := fc.Update(cp.Vector{}, []FormationMember{
		{ID: 1, Position: polar(0, 2)},
		{ID: 2, Position: polar(40, 2.1)},
		{ID: 3, Position: polar(80, 2)},
		{ID: 4, Position: polar(120, 9)},
	}, rec)
	require.NoError(t, err)
	assert.Equal(t, [2]float64{0, 0}, rec[4], "far outside the ring")
	assert.NotZero(t, rec[2][0])
	assert.NotZero(t, rec[2][1])
}

func TestFormationOrderInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	members := make([]FormationMember, 12)
	for i := range members {
		members[i] = FormationMember{
			ID:       EnemyID(i + 1),
			Position: polar(rng.Float64()*360-180, 2+rng.Float64()),
		}
	}
	params := FormationParams{NeighborArcDeg: 120, BandWidth: 0.8}

	want := gapRecorder{}
	_, _, err := NewFormationCoordinator(params).Update(cp.Vector{}, members, want)
	require.NoError(t, err)

	for trial := 0; trial < 5; trial++ {
		shuffled := append([]FormationMember(nil), members...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		got := gapRecorder{}
		_, _, err := NewFormationCoordinator(params).Update(cp.Vector{}, shuffled, got)
		require.NoError(t, err)
		for id, g := range want {
			assert.InDelta(t, g[0], got[id][0], 1e-12)
			assert.InDelta(t, g[1], got[id][1], 1e-12)
		}
	}
}

func TestFormationStride(t *testing.T) {
	fc := NewFormationCoordinator(FormationParams{NeighborArcDeg: 360, BandWidth: 5, Stride: 3})
	members := []FormationMember{{ID: 1, Position: polar(0, 2)}, {ID: 2, Position: polar(90, 2)}}
	var ran []bool
	for i := 0; i < 6; i++ {
		_, ok, err := fc.Update(cp.Vector{}, members, gapRecorder{})
		require.NoError(t, err)
		ran = append(ran, ok)
	}
	assert.Equal(t, []bool{true, false, false, true, false, false}, ran)
}

func TestFormationReportsSinkErrors(t *testing.T) {
	r := NewRegistry()
	_, err := r.Spawn(1, polar(0, 2))
	require.NoError(t, err)

	fc := NewFormationCoordinator(FormationParams{NeighborArcDeg: 360, BandWidth: 5})
	_, _, err = fc.Update(cp.Vector{}, []FormationMember{
		{ID: 1, Position: polar(0, 2)},
		{ID: 99, Position: polar(90, 2)},
	}, r)
	assert.ErrorIs(t, err, ErrUnknownEnemy)

	e, _ := r.Enemy(1)
	assert.NotZero(t, e.GapCW)
}

func TestFormationReusesBuffers(t *testing.T) {
	fc := NewFormationCoordinator(FormationParams{NeighborArcDeg: 360, BandWidth: 5})
	big := make([]FormationMember, 16)
	for i := range big {
		big[i] = FormationMember{ID: EnemyID(i), Position: polar(float64(i)*20, 2)}
	}
	_, _, err := fc.Update(cp.Vector{}, big, nil)
	require.NoError(t, err)

	allocs := testing.AllocsPerRun(20, func() {
		_, _, _ = fc.Update(cp.Vector{}, big[:8], nil)
	})
	assert.Zero(t, allocs)
}

func TestMedianMatchesSort(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 1; n <= 50; n++ {
		for trial := 0; trial < 10; trial++ {
			values := make([]float64, n)
			for i := range values {
				values[i] = rng.Float64() * 20
				if rng.Intn(5) == 0 && i > 0 {
					values[i] = values[i-1] // duplicates
				}
			}
			sorted := append([]float64(nil), values...)
			sort.Float64s(sorted)
			want := sorted[n/2]
			if n%2 == 0 {
				want = (sorted[n/2-1] + sorted[n/2]) / 2
			}
			assert.InDelta(t, want, Median(values), 1e-12, "n=%d", n)
		}
	}
}

func TestMedianEmpty(t *testing.T) {
	assert.Zero(t, Median(nil))
}
