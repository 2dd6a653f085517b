package algo

import (
	"container/heap"

	"github.com/samber/lo"
)

// SearchContext 三种搜索共享的只读上下文
type SearchContext struct {
	Graph      *Graph
	Cost       IEdgeCost
	Heuristics IHeuristics
}

func NewSearchContext(g *Graph, cost IEdgeCost, h IHeuristics) *SearchContext {
	return &SearchContext{Graph: g, Cost: cost, Heuristics: h}
}

// 标号搜索的优先级策略，返回(时间键, 排放键)
type priorityFunc func(sol *Solution, v int) [2]float64

type labelSearchParams struct {
	maxLabels       int
	maxFrontier     int
	epsilon         float64
	frontierEpsilon float64
	// >0时启用放宽的全局剪枝：估计时间超过 pruneFactor * 已知最短时间的条目直接丢弃
	pruneFactor float64
}

// labelSearch 多目标标号搜索的公共骨架
func (sc *SearchContext) labelSearch(q Query, params labelSearchParams, priority priorityFunc) []*Solution {
	g := sc.Graph
	token := g.rlock()
	defer g.runlock(token)

	labels := make(map[int][]*Solution)
	frontier := make([]*Solution, 0)
	bestTime := INF
	seq := 0

	initial := NewInitialSolution(q.Origin, q.StartTime)
	labels[q.Origin] = []*Solution{initial}
	pq := PriorityQueue{{Value: initial, Priority: priority(initial, q.Origin), Seq: seq}}
	heap.Init(&pq)

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*Item)
		sol := item.Value
		u := sol.Node()

		if params.pruneFactor > 0 && len(frontier) > 0 && item.Priority[0] > bestTime*params.pruneFactor {
			continue
		}
		if u == q.Destination {
			frontier, _ = Admit(frontier, sol, params.maxFrontier, params.frontierEpsilon)
			bestTime = lo.MinBy(frontier, func(a, b *Solution) bool {
				return a.TotalTime < b.TotalTime
			}).TotalTime
			continue
		}
		for _, v := range g.Neighbors(u) {
			// 简单路径约束
			if sol.Visits(v) {
				continue
			}
			_, attr, _ := g.Edge(u, v)
			cost, ok := sc.Cost.Cost(attr, sol.ArrivalClock)
			if !ok {
				continue
			}
			next := sol.Extend(v, cost)
			var accepted bool
			labels[v], accepted = Admit(labels[v], next, params.maxLabels, params.epsilon)
			if accepted {
				seq++
				heap.Push(&pq, &Item{Value: next, Priority: priority(next, v), Seq: seq})
			}
		}
	}
	log.Debugf("label search %s->%s finished with %d solutions, %d labelled nodes",
		g.NodeID(q.Origin), g.NodeID(q.Destination), len(frontier), len(labels))
	return frontier
}
