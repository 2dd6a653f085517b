package algo

import (
	"math"
)

// IHeuristics 剩余时间与剩余排放的下界估计，不得高估
type IHeuristics interface {
	Estimate(u, destination int) (float64, float64)
}

type HeuristicParams struct {
	// 假设的最高速度（km/h）
	MaxSpeedKmh float64
}

// GreatCircleHeuristics 以大圆距离 / 最高速度估计时间，以大圆距离 * 最低排放因子估计排放
type GreatCircleHeuristics struct {
	g              *Graph
	maxSpeedKmh    float64
	minEmissionGPK float64
}

// NewGreatCircleHeuristics scans the graph once so that both bounds stay
// admissible: the speed is raised to the fastest edge actually observed and
// the emission factor is the lowest over every mode that can be used.
func NewGreatCircleHeuristics(g *Graph, params HeuristicParams) *GreatCircleHeuristics {
	maxSpeed := params.MaxSpeedKmh
	if maxSpeed <= 0 {
		maxSpeed = MAX_NETWORK_SPEED_KMH
	}
	minFactor := math.Inf(1)
	hasEdge := false
	g.RangeEdges(func(_, from, to int, attr *EdgeAttr) bool {
		hasEdge = true
		km := GreatCircleKm(g.Point(from), g.Point(to))
		switch attr.Kind {
		case EDGE_KIND_WALK:
			minFactor = math.Min(minFactor, CO2_WALK_GPKM)
			if attr.Walk.TravelTime > 0 {
				maxSpeed = math.Max(maxSpeed, km/(attr.Walk.TravelTime/3600))
			} else if km > 0 {
				// 零耗时但有距离的边，时间下界只能取0
				maxSpeed = math.Inf(1)
			}
		case EDGE_KIND_TRANSIT:
			mode := g.Mode(from)
			minFactor = math.Min(minFactor, EmissionFactor(mode))
			for _, c := range attr.Transit.Connections {
				if km > 0 {
					// 排放低于模式因子的连接也需要纳入下界
					minFactor = math.Min(minFactor, c.Emissions/km)
				}
				if c.TravelTime > 0 {
					maxSpeed = math.Max(maxSpeed, km/(c.TravelTime/3600))
				} else if km > 0 {
					maxSpeed = math.Inf(1)
				}
			}
		}
		return true
	})
	if !hasEdge || math.IsInf(minFactor, 1) {
		minFactor = 0
	}
	if maxSpeed > params.MaxSpeedKmh && params.MaxSpeedKmh > 0 {
		log.Debugf("heuristic speed raised from %v to %v km/h", params.MaxSpeedKmh, maxSpeed)
	}
	return &GreatCircleHeuristics{
		g:              g,
		maxSpeedKmh:    maxSpeed,
		minEmissionGPK: minFactor,
	}
}

func (h *GreatCircleHeuristics) Estimate(u, destination int) (float64, float64) {
	km := GreatCircleKm(h.g.Point(u), h.g.Point(destination))
	return km / h.maxSpeedKmh * 3600, km * h.minEmissionGPK
}

func (h *GreatCircleHeuristics) MaxSpeedKmh() float64 {
	return h.maxSpeedKmh
}

func (h *GreatCircleHeuristics) MinEmissionFactor() float64 {
	return h.minEmissionGPK
}
