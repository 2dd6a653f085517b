package algo

import (
	"math"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

type ACOParams struct {
	Ants        int
	Generations int
	Alpha       float64 // 信息素指数
	Beta        float64 // 启发指数
	Q           float64 // 信息素沉积常数
	Rho         float64 // 蒸发率
	Pheromone   float64 // 初始信息素
	MaxSteps    int
	MaxFrontier int
	Epsilon     float64 // s
	// 随机种子，nil表示使用当前时间
	Seed *int64
	// 同一代内并行行走的蚂蚁数，<=0表示GOMAXPROCS
	Workers int
}

func DefaultACOParams() ACOParams {
	return ACOParams{
		Ants:        DEFAULT_ACO_ANTS,
		Generations: DEFAULT_ACO_GENERATIONS,
		Alpha:       DEFAULT_ACO_ALPHA,
		Beta:        DEFAULT_ACO_BETA,
		Q:           DEFAULT_ACO_Q,
		Rho:         DEFAULT_ACO_RHO,
		Pheromone:   DEFAULT_ACO_PHEROMONE,
		MaxSteps:    DEFAULT_ACO_MAX_STEPS,
		MaxFrontier: DEFAULT_FRONTIER_SIZE,
		Epsilon:     DEFAULT_ACO_EPSILON,
	}
}

// 一次查询内蚁群的全部可变状态，查询结束即丢弃
type colony struct {
	sc     *SearchContext
	q      Query
	params ACOParams
	// 边编号 -> 信息素
	pheromone []float64
	frontier  []*Solution
	rng       *rand.Rand
}

type antCandidate struct {
	v      int
	cost   EdgeCost
	weight float64
}

// AntColony 蚁群搜索：每代的蚂蚁按 信息素^α × 可见度^β 随机行走，
// 代末蒸发信息素，并沿全局前沿中每个解的路径沉积 Q / 总分钟数
func (sc *SearchContext) AntColony(q Query, params ACOParams) []*Solution {
	g := sc.Graph
	token := g.rlock()
	defer g.runlock(token)

	seed := time.Now().UnixNano()
	if params.Seed != nil {
		seed = *params.Seed
	}
	c := &colony{
		sc:        sc,
		q:         q,
		params:    params,
		pheromone: make([]float64, len(g.edges)),
		frontier:  make([]*Solution, 0),
		rng:       rand.New(rand.NewSource(seed)),
	}
	for i := range c.pheromone {
		c.pheromone[i] = params.Pheromone
	}
	workers := params.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	for gen := 0; gen < params.Generations; gen++ {
		// 先在主随机流上为每只蚂蚁派生种子，保证结果与调度无关
		seeds := make([]int64, params.Ants)
		base := c.rng.Int63()
		for i := range seeds {
			seeds[i] = deriveSeed(base, uint64(i))
		}
		results := make([]*Solution, params.Ants)
		var eg errgroup.Group
		eg.SetLimit(workers)
		for i := 0; i < params.Ants; i++ {
			i := i
			eg.Go(func() error {
				results[i] = c.walk(rand.New(rand.NewSource(seeds[i])))
				return nil
			})
		}
		_ = eg.Wait()

		for _, sol := range results {
			if sol != nil {
				c.frontier, _ = Admit(c.frontier, sol, params.MaxFrontier, params.Epsilon)
			}
		}
		c.evaporate()
		c.deposit()
		if gen%ACO_LOG_INTERVAL == 0 {
			log.Debugf("aco generation %d: %d solutions on frontier", gen, len(c.frontier))
		}
	}
	return c.frontier
}

// walk 一只蚂蚁从起点出发的随机行走，未到达终点返回nil
// 只读信息素，可与同代其他蚂蚁并发执行
func (c *colony) walk(rng *rand.Rand) *Solution {
	g := c.sc.Graph
	sol := NewInitialSolution(c.q.Origin, c.q.StartTime)
	visited := map[int]bool{c.q.Origin: true}
	candidates := make([]antCandidate, 0)

	for step := 0; step < c.params.MaxSteps; step++ {
		u := sol.Node()
		if u == c.q.Destination {
			break
		}
		candidates = candidates[:0]
		sum := 0.0
		for _, v := range g.Neighbors(u) {
			if visited[v] {
				continue
			}
			e, attr, _ := g.Edge(u, v)
			cost, ok := c.sc.Cost.Cost(attr, sol.ArrivalClock)
			if !ok {
				// 不可达的边权重为0
				continue
			}
			hTime, _ := c.sc.Heuristics.Estimate(v, c.q.Destination)
			visibility := 1.0 / (cost.Time + hTime + 1)
			w := math.Pow(c.pheromone[e], c.params.Alpha) * math.Pow(visibility, c.params.Beta)
			if w <= 0 || math.IsNaN(w) {
				continue
			}
			candidates = append(candidates, antCandidate{v: v, cost: cost, weight: w})
			sum += w
		}
		if sum == 0 {
			// 死胡同
			return nil
		}
		// 轮盘赌
		r := rng.Float64() * sum
		chosen := candidates[len(candidates)-1]
		for _, cand := range candidates {
			r -= cand.weight
			if r < 0 {
				chosen = cand
				break
			}
		}
		sol = sol.Extend(chosen.v, chosen.cost)
		visited[chosen.v] = true
	}
	if sol.Node() != c.q.Destination {
		return nil
	}
	return sol
}

func (c *colony) evaporate() {
	for i := range c.pheromone {
		c.pheromone[i] *= 1 - c.params.Rho
	}
}

// deposit 对全局前沿（而非仅本代）中的所有解沉积信息素
func (c *colony) deposit() {
	g := c.sc.Graph
	for _, sol := range c.frontier {
		if sol.TotalTime <= 0 {
			continue
		}
		reward := c.params.Q / (sol.TotalTime / 60)
		sol.rangeHops(func(u, v int) {
			if e, _, ok := g.Edge(u, v); ok {
				c.pheromone[e] += reward
			}
		})
	}
}
