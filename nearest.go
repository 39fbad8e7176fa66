package hclust

import "sync"

// nearestNeighbor finds the candidate closest to tip under m, considering
// only edges strictly below bound. candidates holds repository handles;
// the returned position indexes candidates, or is -1 if nothing beats bound.
//
// Each partition keeps its own running minimum, which doubles as the
// early-exit bound handed to m. Partial results are combined under a mutex,
// preferring the smaller edge and, on equal edges, the left-most position,
// so every worker count returns what the sequential scan returns.
func nearestNeighbor(repo *repository, m method, tip int, candidates []int, bound edge, workers int) (int, edge) {
	tipNode := repo.at(tip)
	pm, paired := m.(pairedMethod)
	bestPos, best := -1, bound

	var mu sync.Mutex
	parallelFor(len(candidates), workers, func(start, end int) {
		pos, local := -1, bound
		for i := start; i < end; i++ {
			c := repo.at(candidates[i])
			e := edge{d: m.distance(tipNode, c, local.d)}
			if paired {
				e.pair = pm.pair(tipNode, c)
			}
			if e.less(local) {
				pos, local = i, e
			}
		}
		if pos < 0 {
			return
		}

		mu.Lock()
		defer mu.Unlock()
		if bestPos < 0 || local.less(best) || (local == best && pos < bestPos) {
			bestPos, best = pos, local
		}
	})
	return bestPos, best
}
