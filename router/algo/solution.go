package algo

// 路径链表结点，前缀在多个Solution之间共享，创建后只读
type pathNode struct {
	node   int
	label  string
	clock  float64
	parent *pathNode
	depth  int
}

type PathStep struct {
	Node  int
	Label string
	Clock float64 // 到达该结点的绝对时刻
}

// Solution 一条（部分）路径及其累计代价，不可变
type Solution struct {
	TotalTime      float64 // s
	TotalEmissions float64 // g
	TotalWalk      float64 // km
	ArrivalClock   float64 // 起始时刻 + TotalTime
	tail           *pathNode
}

func NewInitialSolution(origin int, startTime float64) *Solution {
	return &Solution{
		ArrivalClock: startTime,
		tail:         &pathNode{node: origin, label: LABEL_START, clock: startTime, depth: 1},
	}
}

// Extend returns a new solution reaching v through an edge costing c.
// The receiver is left untouched and its path prefix is shared.
func (s *Solution) Extend(v int, c EdgeCost) *Solution {
	clock := s.ArrivalClock + c.Time
	return &Solution{
		TotalTime:      s.TotalTime + c.Time,
		TotalEmissions: s.TotalEmissions + c.Emissions,
		TotalWalk:      s.TotalWalk + c.Walk,
		ArrivalClock:   clock,
		tail: &pathNode{
			node:   v,
			label:  c.Label,
			clock:  clock,
			parent: s.tail,
			depth:  s.tail.depth + 1,
		},
	}
}

// 当前所在结点
func (s *Solution) Node() int {
	return s.tail.node
}

func (s *Solution) Len() int {
	return s.tail.depth
}

// Visits 路径中是否已经经过v
func (s *Solution) Visits(v int) bool {
	for p := s.tail; p != nil; p = p.parent {
		if p.node == v {
			return true
		}
	}
	return false
}

// Path 从起点到终点展开路径
func (s *Solution) Path() []PathStep {
	steps := make([]PathStep, s.tail.depth)
	for p := s.tail; p != nil; p = p.parent {
		steps[p.depth-1] = PathStep{Node: p.node, Label: p.label, Clock: p.clock}
	}
	return steps
}

// 沿路径的有向边(u,v)，按顺序
func (s *Solution) rangeHops(f func(u, v int)) {
	steps := s.Path()
	for i := 1; i < len(steps); i++ {
		f(steps[i-1].Node, steps[i].Node)
	}
}

// WeaklyDominates 时间、排放不劣且步行距离不少
func (s *Solution) WeaklyDominates(o *Solution) bool {
	return s.TotalTime <= o.TotalTime &&
		s.TotalEmissions <= o.TotalEmissions &&
		s.TotalWalk >= o.TotalWalk
}

// Dominates 弱支配且至少一个目标严格更优
func (s *Solution) Dominates(o *Solution) bool {
	return s.WeaklyDominates(o) &&
		(s.TotalTime < o.TotalTime ||
			s.TotalEmissions < o.TotalEmissions ||
			s.TotalWalk > o.TotalWalk)
}
