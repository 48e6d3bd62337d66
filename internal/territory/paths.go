package territory

import "container/heap"

// Distance returns the fewest border crossings from one state to another,
// following the directed adjacency as stored. Returns -1 if no path exists.
// The default state is not part of the graph, so paths through it never
// exist.
func (m *Map) Distance(from, to string) int {
	if from == to {
		return 0
	}

	dist := make(map[string]int)
	dist[from] = 0

	pq := &priorityQueue{{state: from, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem)
		if item.state == to {
			return item.dist
		}
		if d, ok := dist[item.state]; ok && item.dist > d {
			continue
		}
		for _, neighbor := range m.Adjacent[item.state] {
			nd := item.dist + 1
			if d, ok := dist[neighbor]; !ok || nd < d {
				dist[neighbor] = nd
				heap.Push(pq, pqItem{state: neighbor, dist: nd})
			}
		}
	}
	return -1
}

// Priority queue for Dijkstra
type pqItem struct {
	state string
	dist  int
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
