package game

// Board holds the static geometry shared by every snapshot of one planning cycle:
// the spire index and the spire-to-spire distance matrix.
type Board struct {
	IDs   []NodeID       // index → spire id
	index map[NodeID]int // spire id → index
	dist  []int          // flat [i*n + j] step counts; -1 = unreachable
	n     int

	avgDist []int // average distance to every reachable spire, in tenths
	maxAvg  int
}

// NewBoard queries the oracle once per unordered pair and derives centrality.
func NewBoard(ids []NodeID, oracle DistanceOracle) *Board {
	n := len(ids)
	b := &Board{
		IDs:     make([]NodeID, n),
		index:   make(map[NodeID]int, n),
		dist:    make([]int, n*n),
		n:       n,
		avgDist: make([]int, n),
	}
	copy(b.IDs, ids)
	for i, id := range ids {
		b.index[id] = i
	}

	for i := range n {
		for j := i + 1; j < n; j++ {
			d := oracle.Distance(ids[i], ids[j])
			if d < 0 {
				d = -1
			}
			b.dist[i*n+j] = d
			b.dist[j*n+i] = d
		}
	}

	isolated := make([]bool, n)
	for i := range n {
		total, reachable := 0, 0
		for j := range n {
			if d := b.dist[i*n+j]; i != j && d >= 0 {
				total += d
				reachable++
			}
		}
		if reachable == 0 {
			isolated[i] = true
			continue
		}
		b.avgDist[i] = total * 10 / reachable
		b.maxAvg = max(b.maxAvg, b.avgDist[i])
	}
	// A spire reaching nothing is as peripheral as the farthest one
	for i := range n {
		if isolated[i] {
			b.avgDist[i] = b.maxAvg
		}
	}
	return b
}

// Len returns the number of spires on the board.
func (b *Board) Len() int {
	return b.n
}

// Index returns the position of a spire id in every snapshot built on this board.
func (b *Board) Index(id NodeID) (int, bool) {
	i, ok := b.index[id]
	return i, ok
}

// Distance returns the step count between two spire indices, -1 if unreachable.
func (b *Board) Distance(i, j int) int {
	return b.dist[i*b.n+j]
}

// Centrality is higher for spires with a low average distance to the rest of the board.
func (b *Board) Centrality(i int) int {
	return b.maxAvg - b.avgDist[i]
}
