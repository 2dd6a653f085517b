package algo

type AStarParams struct {
	MaxLabels   int     // 每个结点的标号上限
	MaxFrontier int     // 终点前沿上限
	Epsilon     float64 // s
	PruneFactor float64
}

func DefaultAStarParams() AStarParams {
	return AStarParams{
		MaxLabels:   DEFAULT_ASTAR_LABELS,
		MaxFrontier: DEFAULT_FRONTIER_SIZE,
		Epsilon:     DEFAULT_ASTAR_EPSILON,
		PruneFactor: DEFAULT_ASTAR_PRUNE_FACTOR,
	}
}

// ParetoAStar 多目标A*：按 g + h 的(时间, 排放)扩展，
// 找到终点后丢弃估计时间超过 PruneFactor 倍已知最短时间的条目
func (sc *SearchContext) ParetoAStar(q Query, params AStarParams) []*Solution {
	return sc.labelSearch(q, labelSearchParams{
		maxLabels:       params.MaxLabels,
		maxFrontier:     params.MaxFrontier,
		epsilon:         params.Epsilon,
		frontierEpsilon: params.Epsilon,
		pruneFactor:     params.PruneFactor,
	}, func(sol *Solution, v int) [2]float64 {
		hTime, hCO2 := sc.Heuristics.Estimate(v, q.Destination)
		return [2]float64{sol.TotalTime + hTime, sol.TotalEmissions + hCO2}
	})
}
