package aggregation

import (
	"math"
	"sort"
)

// tDigest is a small, approximate quantile sketch backing
// APPROX_MEDIAN (§4.6). It keeps at most maxCentroids (value, weight)
// pairs, merging the closest pair whenever the budget is exceeded —
// a simplified, single-pass variant of the Dunning/Ted t-digest
// sufficient for an approximate median without the full scale-function
// machinery of a production implementation.
type tDigest struct {
	maxCentroids int
	centroids    []centroid
	totalWeight  float64
}

type centroid struct {
	mean   float64
	weight float64
}

func newTDigest(maxCentroids int) *tDigest {
	return &tDigest{maxCentroids: maxCentroids}
}

func (d *tDigest) Empty() bool { return len(d.centroids) == 0 }

// Add folds one observation into the sketch.
func (d *tDigest) Add(value, weight float64) {
	d.centroids = append(d.centroids, centroid{mean: value, weight: weight})
	d.totalWeight += weight
	if len(d.centroids) > d.maxCentroids*4 {
		d.compress()
	}
}

// compress sorts centroids by mean and greedily merges neighbors
// until at most maxCentroids remain.
func (d *tDigest) compress() {
	sort.Slice(d.centroids, func(i, j int) bool { return d.centroids[i].mean < d.centroids[j].mean })
	for len(d.centroids) > d.maxCentroids {
		bestIdx := 0
		bestGap := math.MaxFloat64
		for i := 0; i+1 < len(d.centroids); i++ {
			gap := d.centroids[i+1].mean - d.centroids[i].mean
			if gap < bestGap {
				bestGap = gap
				bestIdx = i
			}
		}
		a, b := d.centroids[bestIdx], d.centroids[bestIdx+1]
		merged := centroid{
			mean:   (a.mean*a.weight + b.mean*b.weight) / (a.weight + b.weight),
			weight: a.weight + b.weight,
		}
		d.centroids = append(d.centroids[:bestIdx], append([]centroid{merged}, d.centroids[bestIdx+2:]...)...)
	}
}

// Quantile returns an approximate value at quantile q in [0, 1].
func (d *tDigest) Quantile(q float64) float64 {
	if len(d.centroids) == 0 {
		return 0
	}
	d.compress()
	target := q * d.totalWeight
	cumulative := 0.0
	for _, c := range d.centroids {
		cumulative += c.weight
		if cumulative >= target {
			return c.mean
		}
	}
	return d.centroids[len(d.centroids)-1].mean
}
