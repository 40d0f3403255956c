package postprocess

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cloneDetections deep copies a detection set
func cloneDetections(dets []Detection) []Detection {
	out := make([]Detection, len(dets))
	for i, d := range dets {
		out[i] = d.Clone()
	}
	return out
}

// suppressed counts the (detection, class) pairs that had a probability in
// before and were zeroed in after
func suppressed(before, after []Detection) int {
	count := 0
	for i := range before {
		for k := range before[i].Prob {
			if before[i].Prob[k] > 0 && after[i].Prob[k] == 0 {
				count++
			}
		}
	}
	return count
}

// starDetections returns an anchor box with one box overlapping it on each
// side, the side boxes do not overlap each other
func starDetections() []Detection {
	return []Detection{
		{Box: Box{X: 100, Y: 100, W: 100, H: 100}, Prob: []float32{0.9}, Objectness: 0.9},
		// IoU with anchor 6000/14000
		{Box: Box{X: 140, Y: 100, W: 100, H: 100}, Prob: []float32{0.8}, Objectness: 0.8},
		// IoU with anchor 3000/17000
		{Box: Box{X: 30, Y: 100, W: 100, H: 100}, Prob: []float32{0.7}, Objectness: 0.7},
	}
}

// randomDetections builds a reproducible detection set
func randomDetections(seed int64, n, classes int) []Detection {

	rnd := rand.New(rand.NewSource(seed))
	dets := make([]Detection, n)

	for i := range dets {
		prob := make([]float32, classes)

		for k := range prob {
			if rnd.Float32() < 0.6 {
				prob[k] = rnd.Float32()
			}
		}

		dets[i] = Detection{
			Box: Box{
				X: rnd.Float32() * 200,
				Y: rnd.Float32() * 200,
				W: 10 + rnd.Float32()*70,
				H: 10 + rnd.Float32()*70,
			},
			Prob:       prob,
			Objectness: rnd.Float32(),
		}
	}

	return dets
}

func TestBoxIoU(t *testing.T) {

	a := Box{X: 100, Y: 100, W: 100, H: 100}

	tests := []struct {
		name string
		b    Box
		want float32
	}{
		{"identical", a, 1},
		{"disjoint", Box{X: 400, Y: 400, W: 10, H: 10}, 0},
		{"touching", Box{X: 200, Y: 100, W: 100, H: 100}, 0},
		{"shifted right", Box{X: 140, Y: 100, W: 100, H: 100}, 6000.0 / 14000.0},
		{"contained", Box{X: 100, Y: 100, W: 50, H: 50}, 2500.0 / 10000.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, a.IoU(tc.b), 1e-5)
			assert.InDelta(t, tc.want, tc.b.IoU(a), 1e-5)
		})
	}

	// zero area boxes have no union
	assert.Equal(t, float32(0), Box{}.IoU(Box{}))
}

func TestNMSStarThresholds(t *testing.T) {

	tests := []struct {
		thresh float32
		want   int
	}{
		{-1, 0},
		{0, 0},
		{0.1, 2},
		{0.2, 1},
		{0.4, 1},
		{0.45, 0},
		{1, 0},
		{2, 0},
	}

	for _, tc := range tests {
		for _, mode := range []NMSMode{NMSByObject, NMSBySortedClass} {
			before := starDetections()
			after := cloneDetections(before)

			NMS(after, 1, tc.thresh, mode)

			assert.Equal(t, tc.want, suppressed(before, after),
				"thresh=%.2f mode=%s", tc.thresh, mode)

			// the highest scoring detection always survives
			assert.Equal(t, float32(0.9), after[0].Prob[0])
		}
	}
}

func TestNMSMonotonicStarFixture(t *testing.T) {

	for _, mode := range []NMSMode{NMSByObject, NMSBySortedClass} {

		last := -1

		for step := 1; step <= 20; step++ {
			thresh := float32(step) * 0.05

			before := starDetections()
			after := cloneDetections(before)
			NMS(after, 1, thresh, mode)

			count := suppressed(before, after)

			if last >= 0 {
				assert.LessOrEqual(t, count, last, "thresh=%.2f mode=%s", thresh, mode)
			}

			last = count
		}
	}
}

// the greedy sweep is not monotone in general, raising the threshold can
// release a box that then suppresses others
func TestNMSChainThresholds(t *testing.T) {

	newDets := func() []Detection {
		return []Detection{
			{Box: Box{X: -40, Y: 0, W: 100, H: 100}, Prob: []float32{0.9}, Objectness: 0.9},
			{Box: Box{X: 0, Y: 0, W: 100, H: 100}, Prob: []float32{0.8}, Objectness: 0.8},
			{Box: Box{X: 0, Y: 30, W: 100, H: 100}, Prob: []float32{0.7}, Objectness: 0.7},
			{Box: Box{X: 0, Y: -30, W: 100, H: 100}, Prob: []float32{0.6}, Objectness: 0.6},
		}
	}

	low := newDets()
	NMS(low, 1, 0.30, NMSByObject)
	assert.Equal(t, 1, suppressed(newDets(), low))
	assert.Equal(t, float32(0), low[1].Prob[0])

	high := newDets()
	NMS(high, 1, 0.50, NMSByObject)
	assert.Equal(t, 2, suppressed(newDets(), high))
	assert.Equal(t, float32(0.8), high[1].Prob[0])
	assert.Equal(t, float32(0), high[2].Prob[0])
	assert.Equal(t, float32(0), high[3].Prob[0])
}

func TestNMSIdempotent(t *testing.T) {

	for seed := int64(1); seed <= 20; seed++ {
		for _, mode := range []NMSMode{NMSByObject, NMSBySortedClass} {
			for _, thresh := range []float32{0.1, 0.45, 0.7} {

				dets := randomDetections(seed, 40, 4)

				NMS(dets, 4, thresh, mode)
				once := cloneDetections(dets)

				NMS(dets, 4, thresh, mode)

				require.Equal(t, once, dets, "seed=%d mode=%s thresh=%.2f", seed, mode, thresh)
			}
		}
	}
}

func TestNMSDisabledIsIdentity(t *testing.T) {

	dets := randomDetections(7, 25, 3)
	orig := cloneDetections(dets)

	NMS(dets, 3, 0, NMSByObject)
	assert.Equal(t, orig, dets)

	NMS(dets, 3, -0.5, NMSBySortedClass)
	assert.Equal(t, orig, dets)
}

func TestNMSModesRankDifferently(t *testing.T) {

	newDets := func() []Detection {
		return []Detection{
			{Box: Box{X: 50, Y: 50, W: 20, H: 20}, Prob: []float32{0.6}, Objectness: 0.9},
			{Box: Box{X: 50, Y: 50, W: 20, H: 20}, Prob: []float32{0.8}, Objectness: 0.5},
		}
	}

	byObj := newDets()
	NMS(byObj, 1, 0.45, NMSByObject)
	assert.Equal(t, float32(0.6), byObj[0].Prob[0])
	assert.Equal(t, float32(0), byObj[1].Prob[0])

	bySort := newDets()
	NMS(bySort, 1, 0.45, NMSBySortedClass)
	assert.Equal(t, float32(0), bySort[0].Prob[0])
	assert.Equal(t, float32(0.8), bySort[1].Prob[0])
}

func TestNMSClassesIndependent(t *testing.T) {

	dets := []Detection{
		{Box: Box{X: 50, Y: 50, W: 20, H: 20}, Prob: []float32{0.9, 0}, Objectness: 0.9},
		{Box: Box{X: 50, Y: 50, W: 20, H: 20}, Prob: []float32{0, 0.8}, Objectness: 0.8},
	}

	NMS(dets, 2, 0.45, NMSByObject)

	assert.Equal(t, []float32{0.9, 0}, dets[0].Prob)
	assert.Equal(t, []float32{0, 0.8}, dets[1].Prob)
}

func TestParseNMSMode(t *testing.T) {

	mode, err := ParseNMSMode("obj")
	require.NoError(t, err)
	assert.Equal(t, NMSByObject, mode)

	mode, err = ParseNMSMode(" Sort ")
	require.NoError(t, err)
	assert.Equal(t, NMSBySortedClass, mode)

	_, err = ParseNMSMode("greedy")
	assert.Error(t, err)
}
