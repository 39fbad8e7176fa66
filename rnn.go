package hclust

// chainState is the phase of the reciprocal-nearest-neighbour chain.
type chainState int

const (
	chainEmpty chainState = iota
	chainSeeking
	chainDone
)

func (s chainState) String() string {
	switch s {
	case chainEmpty:
		return "empty"
	case chainSeeking:
		return "seeking"
	case chainDone:
		return "done"
	}
	return "unknown"
}

// chainEntry is a chained cluster and its edge to the entry below it.
type chainEntry struct {
	handle int
	dist   edge
}

// rnnChain agglomerates clusters with the nearest-neighbour chain. It is
// valid for reducible linkages only (Ward, average, complete, single).
//
// clusters is a permutation of repository handles. Positions before next
// are chained or already merged; positions from next on are candidates.
// next only moves forward and every merged node is appended at the end.
type rnnChain struct {
	repo     *repository
	m        method
	workers  int
	clusters []int
	next     int
	chain    []chainEntry
	state    chainState

	// infMerges counts merges forced at +Inf because no candidate had a
	// finite distance to a fresh tip.
	infMerges int
}

func newRNNChain(repo *repository, m method, workers int) *rnnChain {
	clusters := make([]int, repo.len(), 2*repo.initial-1)
	for i := range clusters {
		clusters[i] = i
	}
	c := &rnnChain{
		repo:     repo,
		m:        m,
		workers:  workers,
		clusters: clusters,
		chain:    make([]chainEntry, 0, repo.initial),
	}
	if repo.complete() {
		c.state = chainDone
	}
	return c
}

func (c *rnnChain) run() {
	for c.state != chainDone {
		c.step()
	}
}

// step performs one transition of the state machine.
func (c *rnnChain) step() {
	switch c.state {
	case chainEmpty:
		c.start()
	case chainSeeking:
		c.seek()
	}
}

// start pushes the next unchained cluster as the tip of a new chain.
func (c *rnnChain) start() {
	c.chain = append(c.chain, chainEntry{handle: c.clusters[c.next], dist: unbounded})
	c.next++
	c.state = chainSeeking
}

// seek grows the chain by the tip's nearest unchained neighbour, or merges
// the top two entries when none is closer than the tip's predecessor.
func (c *rnnChain) seek() {
	tip := c.chain[len(c.chain)-1]
	pos, e := nearestNeighbor(c.repo, c.m, tip.handle, c.clusters[c.next:], tip.dist, c.workers)
	if pos < 0 && len(c.chain) == 1 {
		// Every candidate is at +Inf from a lone tip; pair it with the next.
		pos, e = 0, unbounded
		c.infMerges++
	}
	if pos < 0 {
		c.merge()
		return
	}
	c.extend(c.next+pos, e)
}

// extend moves the cluster at position pos to the front of the candidates
// and chains it at edge e.
func (c *rnnChain) extend(pos int, e edge) {
	c.clusters[c.next], c.clusters[pos] = c.clusters[pos], c.clusters[c.next]
	c.chain = append(c.chain, chainEntry{handle: c.clusters[c.next], dist: e})
	c.next++
}

// merge pops the reciprocal nearest neighbours off the chain and appends
// their merged cluster as a new candidate.
func (c *rnnChain) merge() {
	top := len(c.chain) - 1
	r, l := c.chain[top], c.chain[top-1]
	c.chain = c.chain[:top-1]

	h := c.repo.addMerge(l.handle, r.handle, r.dist.d, c.m)
	c.repo.at(h).pair = r.dist.pair
	c.clusters = append(c.clusters, h)

	switch {
	case c.repo.complete():
		c.state = chainDone
	case len(c.chain) == 0:
		c.state = chainEmpty
	default:
		c.state = chainSeeking
	}
}
