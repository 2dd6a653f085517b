package algo

import (
	"fmt"
	"sort"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/puzpuzpuz/xsync/v3"
)

type node struct {
	id   string
	p    geometry.Point
	mode Mode
}

type edge struct {
	from, to int
	attr     EdgeAttr
}

// Graph 多模式有向图
// 点为车站与用户起终点，边为公交连接（带时刻表）或步行连接
type Graph struct {
	nodes []node
	index map[string]int
	// 出边：邻居按插入顺序排列，保证搜索结果可复现
	out [][]int
	// in node -> out node -> edge index（同一(u,v)只取第一条边）
	lookup []map[int]int
	edges  []edge

	mu *xsync.RBMutex
}

func NewGraph() *Graph {
	return &Graph{
		nodes:  make([]node, 0),
		index:  make(map[string]int),
		out:    make([][]int, 0),
		lookup: make([]map[int]int, 0),
		edges:  make([]edge, 0),
		mu:     xsync.NewRBMutex(),
	}
}

func (g *Graph) InitNode(id string, p geometry.Point) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.index[id]; ok {
		return -1, fmt.Errorf("%w: %s", ErrDuplicateNode, id)
	}
	g.nodes = append(g.nodes, node{id: id, p: p, mode: ModeOf(id)})
	g.out = append(g.out, make([]int, 0))
	g.lookup = append(g.lookup, make(map[int]int))
	n := len(g.nodes) - 1
	g.index[id] = n
	return n, nil
}

// InitEdge 检查边数据并加入图中，公交班次按出发时间排序
func (g *Graph) InitEdge(from, to int, attr EdgeAttr) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if from < 0 || from >= len(g.nodes) || to < 0 || to >= len(g.nodes) {
		return fmt.Errorf("%w: edge (%d,%d) with %d nodes", ErrNodeNotExists, from, to, len(g.nodes))
	}
	switch attr.Kind {
	case EDGE_KIND_WALK:
		if attr.Walk.TravelTime < 0 || attr.Walk.Distance < 0 {
			return fmt.Errorf("%w: negative walk cost on (%s,%s)", ErrMalformedEdge, g.nodes[from].id, g.nodes[to].id)
		}
	case EDGE_KIND_TRANSIT:
		conns := make([]Connection, len(attr.Transit.Connections))
		copy(conns, attr.Transit.Connections)
		for _, c := range conns {
			if c.TravelTime < 0 || c.Emissions < 0 {
				return fmt.Errorf("%w: negative transit cost on (%s,%s) trip %s", ErrMalformedEdge, g.nodes[from].id, g.nodes[to].id, c.TripID)
			}
		}
		sort.SliceStable(conns, func(i, j int) bool {
			return conns[i].DepartureTime < conns[j].DepartureTime
		})
		attr.Transit.Connections = conns
	default:
		return fmt.Errorf("%w: kind %v on (%s,%s)", ErrMalformedEdge, attr.Kind, g.nodes[from].id, g.nodes[to].id)
	}
	if _, ok := g.lookup[from][to]; ok {
		// 多重边只保留第一条
		log.Debugf("parallel edge (%s,%s) ignored", g.nodes[from].id, g.nodes[to].id)
		return nil
	}
	g.edges = append(g.edges, edge{from: from, to: to, attr: attr})
	g.lookup[from][to] = len(g.edges) - 1
	g.out[from] = append(g.out[from], to)
	return nil
}

func (g *Graph) NodeCount() int {
	token := g.mu.RLock()
	defer g.mu.RUnlock(token)
	return len(g.nodes)
}

func (g *Graph) EdgeCount() int {
	token := g.mu.RLock()
	defer g.mu.RUnlock(token)
	return len(g.edges)
}

func (g *Graph) Index(id string) (int, bool) {
	token := g.mu.RLock()
	defer g.mu.RUnlock(token)
	n, ok := g.index[id]
	return n, ok
}

func (g *Graph) NodeID(u int) string {
	return g.nodes[u].id
}

func (g *Graph) Point(u int) geometry.Point {
	return g.nodes[u].p
}

func (g *Graph) Mode(u int) Mode {
	return g.nodes[u].mode
}

// Neighbors 返回u的所有后继（插入顺序），调用方不得修改
func (g *Graph) Neighbors(u int) []int {
	return g.out[u]
}

// Edge 返回(u,v)的边编号与数据
func (g *Graph) Edge(u, v int) (int, *EdgeAttr, bool) {
	e, ok := g.lookup[u][v]
	if !ok {
		return -1, nil, false
	}
	return e, &g.edges[e].attr, true
}

// 遍历所有边，按插入顺序
func (g *Graph) RangeEdges(f func(e, from, to int, attr *EdgeAttr) bool) {
	token := g.mu.RLock()
	defer g.mu.RUnlock(token)
	for i := range g.edges {
		if !f(i, g.edges[i].from, g.edges[i].to, &g.edges[i].attr) {
			return
		}
	}
}

// 搜索期间持有读锁
func (g *Graph) rlock() *xsync.RToken {
	return g.mu.RLock()
}

func (g *Graph) runlock(t *xsync.RToken) {
	g.mu.RUnlock(t)
}
