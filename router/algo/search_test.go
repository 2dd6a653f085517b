package algo_test

import (
	"testing"

	"git.fiblab.net/general/common/v2/geometry"
	"git.fiblab.net/sim/ecorouting/router/algo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(params algo.ACOParams, seed int64) algo.ACOParams {
	params.Seed = &seed
	return params
}

func TestScenarioAStarAndLabelSetting(t *testing.T) {
	sc, s, d := newScenario(t)
	q := algo.Query{Origin: s, Destination: d, StartTime: 0}

	astar := sc.ParetoAStar(q, algo.DefaultAStarParams())
	ls := sc.LabelSetting(q, algo.DefaultLabelSettingParams())
	for _, frontier := range [][]*algo.Solution{astar, ls} {
		require.Len(t, frontier, 1)
		sol := frontier[0]
		assert.Equal(t, 1000.0, sol.TotalTime)
		assert.Equal(t, 50.0, sol.TotalEmissions)
		assert.Equal(t, 0.3, sol.TotalWalk)
		assert.Equal(t, 1000.0, sol.ArrivalClock)
		path := sol.Path()
		require.Len(t, path, 3)
		assert.Equal(t, algo.PathStep{Node: s, Label: algo.LABEL_START, Clock: 0}, path[0])
		assert.Equal(t, algo.LABEL_WALK, path[1].Label)
		assert.Equal(t, 300.0, path[1].Clock)
		assert.Equal(t, "METRO_T1", path[2].Label)
		assert.Equal(t, 1000.0, path[2].Clock)
	}
	assert.Equal(t, summarize(astar), summarize(ls))

	aco := sc.AntColony(q, seeded(algo.DefaultACOParams(), 7))
	require.Len(t, aco, 1)
	assert.Equal(t, 1000.0, aco[0].TotalTime)
}

func TestScenarioUnreachable(t *testing.T) {
	sc, s, d := newScenario(t)
	q := algo.Query{Origin: s, Destination: d, StartTime: 1100}

	assert.Empty(t, sc.ParetoAStar(q, algo.DefaultAStarParams()))
	assert.Empty(t, sc.LabelSetting(q, algo.DefaultLabelSettingParams()))
	assert.Empty(t, sc.AntColony(q, seeded(algo.DefaultACOParams(), 7)))
}

func TestDegenerateQuery(t *testing.T) {
	sc, s, _ := newScenario(t)
	q := algo.Query{Origin: s, Destination: s, StartTime: 3600}

	results := [][]*algo.Solution{
		sc.ParetoAStar(q, algo.DefaultAStarParams()),
		sc.LabelSetting(q, algo.DefaultLabelSettingParams()),
		sc.AntColony(q, seeded(algo.DefaultACOParams(), 1)),
	}
	for _, frontier := range results {
		require.Len(t, frontier, 1)
		sol := frontier[0]
		assert.Equal(t, 0.0, sol.TotalTime)
		assert.Equal(t, 0.0, sol.TotalEmissions)
		assert.Equal(t, 0.0, sol.TotalWalk)
		assert.Equal(t, 3600.0, sol.ArrivalClock)
		assert.Len(t, sol.Path(), 1)
	}
}

func TestGridFrontierProperties(t *testing.T) {
	sc, s, d := newGridNetwork(t, 5, 42)
	q := algo.Query{Origin: s, Destination: d, StartTime: 60}

	astar := sc.ParetoAStar(q, algo.DefaultAStarParams())
	ls := sc.LabelSetting(q, algo.DefaultLabelSettingParams())
	aco := sc.AntColony(q, seeded(algo.DefaultACOParams(), 3))

	require.NotEmpty(t, astar)
	require.NotEmpty(t, ls)
	checkFrontier(t, sc, q, astar, algo.DEFAULT_FRONTIER_SIZE)
	checkFrontier(t, sc, q, ls, algo.DEFAULT_FRONTIER_SIZE)
	checkFrontier(t, sc, q, aco, algo.DEFAULT_FRONTIER_SIZE)
}

func TestDeterminism(t *testing.T) {
	sc, s, d := newGridNetwork(t, 5, 42)
	q := algo.Query{Origin: s, Destination: d, StartTime: 60}

	assert.Equal(t,
		summarize(sc.ParetoAStar(q, algo.DefaultAStarParams())),
		summarize(sc.ParetoAStar(q, algo.DefaultAStarParams())),
	)
	assert.Equal(t,
		summarize(sc.LabelSetting(q, algo.DefaultLabelSettingParams())),
		summarize(sc.LabelSetting(q, algo.DefaultLabelSettingParams())),
	)

	// 并行度不影响固定种子下的结果
	p1 := seeded(algo.DefaultACOParams(), 11)
	p1.Workers = 1
	p2 := seeded(algo.DefaultACOParams(), 11)
	p2.Workers = 8
	assert.Equal(t, summarize(sc.AntColony(q, p1)), summarize(sc.AntColony(q, p2)))
}

func TestLabelSettingLabelCap(t *testing.T) {
	sc, s, d := newGridNetwork(t, 4, 5)
	q := algo.Query{Origin: s, Destination: d, StartTime: 0}
	params := algo.DefaultLabelSettingParams()
	params.MaxFrontier = 2
	frontier := sc.LabelSetting(q, params)
	checkFrontier(t, sc, q, frontier, 2)
}

func TestACOSmallColony(t *testing.T) {
	sc, s, d := newGridNetwork(t, 4, 9)
	q := algo.Query{Origin: s, Destination: d, StartTime: 0}
	params := seeded(algo.DefaultACOParams(), 5)
	params.Ants = 5
	params.Generations = 3
	params.MaxSteps = 2
	// 步数不足以到达对角
	assert.Empty(t, sc.AntColony(q, params))
}

// S -metro-> M -metro-> D 共100s，另有一条1000s的步行直达边
func newPruneScenario(t *testing.T) (*algo.SearchContext, algo.Query) {
	g := algo.NewGraph()
	s, _ := g.InitNode("USER_START", geometry.Point{X: -8.610, Y: 41.15})
	m, _ := g.InitNode("METRO_M", geometry.Point{X: -8.605, Y: 41.15})
	d, _ := g.InitNode("USER_END", geometry.Point{X: -8.600, Y: 41.15})
	transit := func(u, v int, dep float64) {
		require.NoError(t, g.InitEdge(u, v, algo.EdgeAttr{
			Kind: algo.EDGE_KIND_TRANSIT,
			Transit: algo.TransitAttr{Connections: []algo.Connection{
				{DepartureTime: dep, TravelTime: 50, Emissions: 10, TripID: "METRO_T"},
			}},
		}))
	}
	transit(s, m, 0)
	transit(m, d, 50)
	require.NoError(t, g.InitEdge(s, d, algo.EdgeAttr{
		Kind: algo.EDGE_KIND_WALK,
		Walk: algo.WalkAttr{TravelTime: 1000, Distance: 0.84},
	}))
	return newContext(g), algo.Query{Origin: s, Destination: d, StartTime: 0}
}

func TestAStarRelaxedPruning(t *testing.T) {
	sc, q := newPruneScenario(t)

	// 标号设定不剪枝，步行方案排放更低、步行更多，属于前沿
	ls := sc.LabelSetting(q, algo.DefaultLabelSettingParams())
	require.Len(t, ls, 2)
	times := []float64{ls[0].TotalTime, ls[1].TotalTime}
	assert.ElementsMatch(t, []float64{100, 1000}, times)

	// A*中步行方案的估计时间1000超过 1.5 * 100，被丢弃
	astar := sc.ParetoAStar(q, algo.DefaultAStarParams())
	require.Len(t, astar, 1)
	assert.Equal(t, 100.0, astar[0].TotalTime)
	assert.Equal(t, 20.0, astar[0].TotalEmissions)
	assert.Equal(t, 0.0, astar[0].TotalWalk)

	// 关闭剪枝后与标号设定一致
	params := algo.DefaultAStarParams()
	params.PruneFactor = 0
	assert.Len(t, sc.ParetoAStar(q, params), 2)
}
