package paintbynumber

import (
	"math"
	"math/rand"
	"sort"

	"github.com/muesli/clusters"
	"gonum.org/v1/gonum/floats"
)

// Cluster movement (squared, in normalized RGB) below which the Lloyd loop
// is considered converged.
const convergenceDelta = 1e-6

// partition clusters dataset into at most k clusters using Lloyd's algorithm
// with k-means++ seeding drawn from a fixed source. The same dataset and
// seed always produce the same clusters, which keeps re-runs of the whole
// pipeline byte-identical. Clusters may come back empty when observations
// coincide; callers are expected to skip those.
func partition(dataset clusters.Observations, k, maxIterations int, seed int64) clusters.Clusters {
	if len(dataset) == 0 || k <= 0 {
		return nil
	}
	if k > len(dataset) {
		k = len(dataset)
	}
	// At least one assignment pass must run, otherwise every cluster stays
	// empty and the caller ends up with no palette.
	if maxIterations < 1 {
		maxIterations = 1
	}
	rng := rand.New(rand.NewSource(seed))

	cc := make(clusters.Clusters, 0, k)
	first := dataset[rng.Intn(len(dataset))].Coordinates()
	cc = append(cc, clusters.Cluster{Center: append(clusters.Coordinates(nil), first...)})

	d2 := make([]float64, len(dataset))
	cum := make([]float64, len(dataset))
	for len(cc) < k {
		for i, obs := range dataset {
			best := math.MaxFloat64
			for _, c := range cc {
				if d := obs.Distance(c.Center); d < best {
					best = d
				}
			}
			d2[i] = best
		}
		floats.CumSum(cum, d2)
		total := cum[len(cum)-1]
		if total <= 0 {
			// Every remaining observation coincides with a chosen center.
			break
		}
		idx := sort.SearchFloat64s(cum, rng.Float64()*total)
		if idx >= len(dataset) {
			idx = len(dataset) - 1
		}
		next := dataset[idx].Coordinates()
		cc = append(cc, clusters.Cluster{Center: append(clusters.Coordinates(nil), next...)})
	}

	for range maxIterations {
		for i := range cc {
			cc[i].Observations = cc[i].Observations[:0]
		}
		for _, obs := range dataset {
			best := 0
			bestD := math.MaxFloat64
			for j := range cc {
				if d := obs.Distance(cc[j].Center); d < bestD {
					bestD = d
					best = j
				}
			}
			cc[best].Observations = append(cc[best].Observations, obs)
		}

		moved := 0.0
		for i := range cc {
			n := len(cc[i].Observations)
			if n == 0 {
				continue
			}
			mean := make(clusters.Coordinates, len(cc[i].Center))
			for _, obs := range cc[i].Observations {
				floats.Add(mean, obs.Coordinates())
			}
			floats.Scale(1/float64(n), mean)
			moved += cc[i].Center.Distance(mean)
			cc[i].Center = mean
		}
		if moved < convergenceDelta {
			break
		}
	}
	return cc
}
