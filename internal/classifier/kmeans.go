package classifier

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const kmeansMaxIterations = 100

// kmeans partitions the rows of x into k clusters, returning the cluster
// assignment of each row and the final centroids. The seed fixes both the
// initialization and therefore the full run, so identical input always
// produces identical assignments.
func kmeans(x *mat.Dense, k int, seed int64) ([]int, *mat.Dense, error) {
	rows, cols := x.Dims()
	if rows < k {
		return nil, nil, fmt.Errorf("kmeans: %d samples for %d clusters", rows, k)
	}

	rng := rand.New(rand.NewSource(seed))
	centers := seedCenters(x, k, rng)

	assignments := make([]int, rows)
	for iter := 0; iter < kmeansMaxIterations; iter++ {
		changed := false
		for i := 0; i < rows; i++ {
			nearest := nearestCenter(x.RawRowView(i), centers)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed = true
			}
		}
		if iter > 0 && !changed {
			break
		}

		// Recompute each centroid as the mean of its members. An emptied
		// cluster takes over the point farthest from its current centroid.
		sizes := make([]int, k)
		next := mat.NewDense(k, cols, nil)
		for i := 0; i < rows; i++ {
			c := assignments[i]
			sizes[c]++
			floats.Add(next.RawRowView(c), x.RawRowView(i))
		}
		for c := 0; c < k; c++ {
			if sizes[c] == 0 {
				i := farthestPoint(x, centers, assignments)
				copy(next.RawRowView(c), x.RawRowView(i))
				assignments[i] = c
				continue
			}
			floats.Scale(1/float64(sizes[c]), next.RawRowView(c))
		}
		centers = next
	}

	return assignments, centers, nil
}

// seedCenters picks initial centroids k-means++ style: the first uniformly,
// the rest weighted by squared distance to the nearest chosen centroid.
func seedCenters(x *mat.Dense, k int, rng *rand.Rand) *mat.Dense {
	rows, cols := x.Dims()
	centers := mat.NewDense(k, cols, nil)
	copy(centers.RawRowView(0), x.RawRowView(rng.Intn(rows)))

	dist := make([]float64, rows)
	for c := 1; c < k; c++ {
		total := 0.0
		for i := 0; i < rows; i++ {
			dist[i] = nearestDistanceSquared(x.RawRowView(i), centers, c)
			total += dist[i]
		}

		var chosen int
		if total == 0 {
			chosen = rng.Intn(rows)
		} else {
			target := rng.Float64() * total
			sum := 0.0
			for i := 0; i < rows; i++ {
				sum += dist[i]
				if sum >= target {
					chosen = i
					break
				}
			}
		}
		copy(centers.RawRowView(c), x.RawRowView(chosen))
	}

	return centers
}

func nearestCenter(point []float64, centers *mat.Dense) int {
	k, _ := centers.Dims()
	best := 0
	bestDist := floats.Distance(point, centers.RawRowView(0), 2)
	for c := 1; c < k; c++ {
		if d := floats.Distance(point, centers.RawRowView(c), 2); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

func nearestDistanceSquared(point []float64, centers *mat.Dense, limit int) float64 {
	best := floats.Distance(point, centers.RawRowView(0), 2)
	for c := 1; c < limit; c++ {
		if d := floats.Distance(point, centers.RawRowView(c), 2); d < best {
			best = d
		}
	}
	return best * best
}

func farthestPoint(x *mat.Dense, centers *mat.Dense, assignments []int) int {
	rows, _ := x.Dims()
	best := 0
	bestDist := -1.0
	for i := 0; i < rows; i++ {
		d := floats.Distance(x.RawRowView(i), centers.RawRowView(assignments[i]), 2)
		if d > bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
