package router

import (
	"errors"
	"fmt"
	"time"

	"git.fiblab.net/sim/ecorouting/router/algo"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

var (
	ErrUnknownNode   = errors.New("unknown node")
	ErrUnknownEngine = errors.New("unknown engine")
)

// Router 持有只读的多模式网络，对每次查询独立地运行三种多目标搜索
// 查询之间不共享可变状态，可并发调用
type Router struct {
	graph  *algo.Graph
	names  map[string]string
	sc     *algo.SearchContext
	config Config
}

func New(net *Network, config Config) (*Router, error) {
	g, names, err := initGraph(net)
	if err != nil {
		return nil, err
	}
	cost := algo.NewDefaultEdgeCost()
	cost.TransferPenalty = config.TransferPenalty
	h := algo.NewGreatCircleHeuristics(g, config.Heuristic)
	log.Infof("network loaded: %d nodes, %d edges, heuristic speed %.1f km/h, min emission %.1f g/km",
		g.NodeCount(), g.EdgeCount(), h.MaxSpeedKmh(), h.MinEmissionFactor())
	return &Router{
		graph:  g,
		names:  names,
		sc:     algo.NewSearchContext(g, cost, h),
		config: config,
	}, nil
}

func ParseEngine(s string) (Engine, error) {
	for _, e := range ENGINES {
		if string(e) == s {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEngine, s)
}

// getter

func (r *Router) HasNode(id string) bool {
	_, ok := r.graph.Index(id)
	return ok
}

func (r *Router) NodeIDs() []string {
	ids := make([]string, r.graph.NodeCount())
	for i := range ids {
		ids[i] = r.graph.NodeID(i)
	}
	return ids
}

func (r *Router) Stats() (nodes int, edges int) {
	return r.graph.NodeCount(), r.graph.EdgeCount()
}

func (r *Router) query(origin, destination string, startTime float64) (algo.Query, error) {
	o, ok := r.graph.Index(origin)
	if !ok {
		return algo.Query{}, fmt.Errorf("%w: origin %s", ErrUnknownNode, origin)
	}
	d, ok := r.graph.Index(destination)
	if !ok {
		return algo.Query{}, fmt.Errorf("%w: destination %s", ErrUnknownNode, destination)
	}
	return algo.Query{Origin: o, Destination: d, StartTime: startTime}, nil
}

// Search 用指定的引擎计算Pareto前沿，没有路径时返回空前沿
// 图数据违反不变式引起的panic被转换为错误
func (r *Router) Search(
	engine Engine, origin, destination string, startTime float64,
) (frontier []*algo.Solution, err error) {
	q, err := r.query(origin, destination, startTime)
	if err != nil {
		return nil, err
	}
	// panic recover
	defer func() {
		if e := recover(); e != nil {
			frontier = nil
			err = fmt.Errorf("panic: Search %v with input engine=%v, origin=%v, destination=%v, time=%v",
				e, engine, origin, destination, startTime)
			log.Errorln(err)
		}
	}()
	start := time.Now()
	switch engine {
	case ENGINE_ASTAR:
		frontier = r.sc.ParetoAStar(q, r.config.AStar)
	case ENGINE_LABEL_SETTING:
		frontier = r.sc.LabelSetting(q, r.config.LabelSetting)
	case ENGINE_ACO:
		frontier = r.sc.AntColony(q, r.config.ACO)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
	log.Debugf("%s search %s->%s at %s: %d solutions in %v",
		engine, origin, destination, FormatClock(startTime), len(frontier), time.Since(start))
	return frontier, nil
}

// SearchAll 对同一查询并发运行所有引擎
func (r *Router) SearchAll(
	origin, destination string, startTime float64,
) (map[Engine][]*algo.Solution, error) {
	results := make([][]*algo.Solution, len(ENGINES))
	var eg errgroup.Group
	for i, engine := range ENGINES {
		i, engine := i, engine
		eg.Go(func() (err error) {
			results[i], err = r.Search(engine, origin, destination, startTime)
			return
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	frontiers := make(map[Engine][]*algo.Solution, len(ENGINES))
	for i, engine := range ENGINES {
		frontiers[engine] = results[i]
	}
	return frontiers, nil
}

// ToJourney 将解转换为对外的表示
func (r *Router) ToJourney(engine Engine, sol *algo.Solution) Journey {
	return Journey{
		Engine:         engine,
		TotalTime:      sol.TotalTime,
		TotalEmissions: sol.TotalEmissions,
		TotalWalk:      sol.TotalWalk,
		ArrivalClock:   sol.ArrivalClock,
		Steps: lo.Map(sol.Path(), func(step algo.PathStep, _ int) Step {
			id := r.graph.NodeID(step.Node)
			return Step{NodeID: id, Name: r.names[id], Label: step.Label, Clock: step.Clock}
		}),
	}
}

// close
func (r *Router) Close() {}
