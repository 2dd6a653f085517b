package algo_test

import (
	"math/rand"
	"testing"

	"git.fiblab.net/general/common/v2/geometry"
	"git.fiblab.net/sim/ecorouting/router/algo"
	"github.com/stretchr/testify/require"
)

// S -walk-> M -transit-> D
func newScenario(t *testing.T) (*algo.SearchContext, int, int) {
	g := algo.NewGraph()
	s, err := g.InitNode("USER_START", geometry.Point{X: -8.6100, Y: 41.1500})
	require.NoError(t, err)
	m, err := g.InitNode("METRO_M", geometry.Point{X: -8.6070, Y: 41.1500})
	require.NoError(t, err)
	d, err := g.InitNode("USER_END", geometry.Point{X: -8.6000, Y: 41.1550})
	require.NoError(t, err)
	require.NoError(t, g.InitEdge(s, m, algo.EdgeAttr{
		Kind: algo.EDGE_KIND_WALK,
		Walk: algo.WalkAttr{TravelTime: 300, Distance: 0.3},
	}))
	require.NoError(t, g.InitEdge(m, d, algo.EdgeAttr{
		Kind: algo.EDGE_KIND_TRANSIT,
		Transit: algo.TransitAttr{Connections: []algo.Connection{
			{DepartureTime: 1000, TravelTime: 600, Emissions: 50, TripID: "METRO_T2"},
			{DepartureTime: 400, TravelTime: 600, Emissions: 50, TripID: "METRO_T1"},
		}},
	}))
	return newContext(g), s, d
}

func newContext(g *algo.Graph) *algo.SearchContext {
	return algo.NewSearchContext(
		g,
		algo.NewDefaultEdgeCost(),
		algo.NewGreatCircleHeuristics(g, algo.HeuristicParams{MaxSpeedKmh: algo.MAX_NETWORK_SPEED_KMH}),
	)
}

// newGridNetwork 构造一个带多条公交线路和步行换乘的网格
// 结点 "METRO_r_c" 与 "STCP_r_c" 交错，行方向有公交，相邻结点间有步行边
func newGridNetwork(t *testing.T, n int, seed int64) (*algo.SearchContext, int, int) {
	rng := rand.New(rand.NewSource(seed))
	g := algo.NewGraph()
	ids := make([][]int, n)
	for r := 0; r < n; r++ {
		ids[r] = make([]int, n)
		for c := 0; c < n; c++ {
			prefix := "METRO"
			if (r+c)%2 == 1 {
				prefix = "STCP"
			}
			id, err := g.InitNode(
				prefix+"_"+string(rune('a'+r))+string(rune('a'+c)),
				geometry.Point{X: -8.62 + 0.004*float64(c), Y: 41.14 + 0.004*float64(r)},
			)
			require.NoError(t, err)
			ids[r][c] = id
		}
	}
	walk := func(u, v int, transfer bool) {
		km := algo.GreatCircleKm(g.Point(u), g.Point(v))
		require.NoError(t, g.InitEdge(u, v, algo.EdgeAttr{
			Kind: algo.EDGE_KIND_WALK,
			Walk: algo.WalkAttr{TravelTime: km / 5 * 3600, Distance: km, IsTransfer: transfer},
		}))
	}
	transit := func(u, v int, offset float64) {
		km := algo.GreatCircleKm(g.Point(u), g.Point(v))
		factor := algo.EmissionFactor(g.Mode(u))
		if factor == 0 {
			factor = algo.CO2_METRO_GPKM
		}
		conns := make([]algo.Connection, 0)
		for k := 0; k < 12; k++ {
			conns = append(conns, algo.Connection{
				DepartureTime: offset + float64(k)*300 + float64(rng.Intn(60)),
				TravelTime:    60 + float64(rng.Intn(60)),
				Emissions:     km * factor,
				TripID:        string(g.Mode(u)) + "_trip",
			})
		}
		require.NoError(t, g.InitEdge(u, v, algo.EdgeAttr{
			Kind:    algo.EDGE_KIND_TRANSIT,
			Transit: algo.TransitAttr{Connections: conns},
		}))
	}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if c+1 < n {
				transit(ids[r][c], ids[r][c+1], float64(c)*90)
				walk(ids[r][c+1], ids[r][c], false)
			}
			if r+1 < n {
				walk(ids[r][c], ids[r+1][c], (r+c)%2 == 0)
				if c%2 == 0 {
					transit(ids[r][c], ids[r+1][c], float64(r)*120)
				}
			}
		}
	}
	return newContext(g), ids[0][0], ids[n-1][n-1]
}

// 前沿的通用性质
func checkFrontier(t *testing.T, sc *algo.SearchContext, q algo.Query, frontier []*algo.Solution, maxSize int) {
	require.LessOrEqual(t, len(frontier), maxSize)
	for i, a := range frontier {
		for j, b := range frontier {
			if i != j {
				require.False(t, a.Dominates(b), "solution %d dominates %d", i, j)
			}
		}
		path := a.Path()
		require.Equal(t, q.Origin, path[0].Node)
		require.Equal(t, algo.LABEL_START, path[0].Label)
		require.Equal(t, q.StartTime, path[0].Clock)
		require.Equal(t, q.Destination, path[len(path)-1].Node)
		require.InDelta(t, q.StartTime+a.TotalTime, a.ArrivalClock, 1e-6)
		seen := map[int]bool{}
		time, co2, walk := 0.0, 0.0, 0.0
		for k, step := range path {
			require.False(t, seen[step.Node], "node %d repeated", step.Node)
			seen[step.Node] = true
			if k == 0 {
				continue
			}
			_, attr, ok := sc.Graph.Edge(path[k-1].Node, step.Node)
			require.True(t, ok)
			cost, ok := sc.Cost.Cost(attr, path[k-1].Clock)
			require.True(t, ok)
			require.GreaterOrEqual(t, cost.Time, 0.0)
			require.GreaterOrEqual(t, cost.Emissions, 0.0)
			require.GreaterOrEqual(t, cost.Walk, 0.0)
			require.GreaterOrEqual(t, step.Clock, path[k-1].Clock)
			time += cost.Time
			co2 += cost.Emissions
			walk += cost.Walk
		}
		require.InDelta(t, a.TotalTime, time, 1e-6)
		require.InDelta(t, a.TotalEmissions, co2, 1e-6)
		require.InDelta(t, a.TotalWalk, walk, 1e-6)
	}
}

type summary struct {
	Time, CO2, Walk float64
	Path            []algo.PathStep
}

func summarize(frontier []*algo.Solution) []summary {
	out := make([]summary, len(frontier))
	for i, s := range frontier {
		out[i] = summary{s.TotalTime, s.TotalEmissions, s.TotalWalk, s.Path()}
	}
	return out
}
