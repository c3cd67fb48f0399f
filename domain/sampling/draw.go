package sampling

import (
	"math/rand"
)

// Draw is one candidate selection: for each pool (same order as the pools
// slice) the chosen row indices, |Draw[g]| == pools[g].N, sampled without
// replacement. Draws are ephemeral; attempts are independent and a rejected
// draw may recur.
type Draw [][]int

// RandomDraw samples one draw: a uniform random permutation of each pool's
// eligible indices, truncated to the first N. The generator must not be
// shared with concurrent callers.
func RandomDraw(rng *rand.Rand, pools []Pool) Draw {
	draw := make(Draw, len(pools))
	for g, pool := range pools {
		perm := rng.Perm(len(pool.Eligible))
		chosen := make([]int, pool.N)
		for i := 0; i < pool.N; i++ {
			chosen[i] = pool.Eligible[perm[i]]
		}
		draw[g] = chosen
	}
	return draw
}

// GroupValues gathers the target column's values at the drawn indices of
// each group a constraint references.
func GroupValues(table *AttributeTable, draw Draw, c Constraint) [][]float64 {
	column := table.Values(c.Column)
	groups := make([][]float64, len(c.Groups))
	for i, g := range c.Groups {
		values := make([]float64, len(draw[g]))
		for j, row := range draw[g] {
			values[j] = column[row]
		}
		groups[i] = values
	}
	return groups
}
