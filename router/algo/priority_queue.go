package algo

// Item 优先队列元素，按(Priority[0], Priority[1], Seq)字典序
type Item struct {
	Value    *Solution
	Priority [2]float64
	// 插入序号，相同优先级时先进先出
	Seq int
}

type PriorityQueue []*Item

func (pq PriorityQueue) Len() int { return len(pq) }

func (pq PriorityQueue) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.Priority[0] != b.Priority[0] {
		return a.Priority[0] < b.Priority[0]
	}
	if a.Priority[1] != b.Priority[1] {
		return a.Priority[1] < b.Priority[1]
	}
	return a.Seq < b.Seq
}

func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *PriorityQueue) Push(x any) {
	*pq = append(*pq, x.(*Item))
}

func (pq *PriorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[0 : n-1]
	return item
}
