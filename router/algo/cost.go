package algo

import "sort"

// IEdgeCost 时间相关的边代价计算
// 返回false表示当前时刻之后该边已无可用班次（不可达）
type IEdgeCost interface {
	Cost(attr *EdgeAttr, clock float64) (EdgeCost, bool)
}

type DefaultEdgeCost struct {
	// 换乘步行边的额外时间（s）
	TransferPenalty float64
}

func NewDefaultEdgeCost() DefaultEdgeCost {
	return DefaultEdgeCost{TransferPenalty: TRANSFER_PENALTY}
}

func (c DefaultEdgeCost) Cost(attr *EdgeAttr, clock float64) (EdgeCost, bool) {
	switch attr.Kind {
	case EDGE_KIND_WALK:
		cost := EdgeCost{
			Time:  attr.Walk.TravelTime,
			Walk:  attr.Walk.Distance,
			Label: LABEL_WALK,
		}
		if attr.Walk.IsTransfer {
			cost.Time += c.TransferPenalty
			cost.Label = LABEL_TRANSFER
		}
		return cost, true
	case EDGE_KIND_TRANSIT:
		conns := attr.Transit.Connections
		// 第一个出发时间不早于当前时刻的班次
		i := sort.Search(len(conns), func(i int) bool {
			return conns[i].DepartureTime >= clock
		})
		if i == len(conns) {
			return EdgeCost{}, false
		}
		conn := conns[i]
		return EdgeCost{
			Time:      conn.DepartureTime - clock + conn.TravelTime,
			Emissions: conn.Emissions,
			Label:     conn.TripID,
		}, true
	default:
		log.Panicf("unexpected edge kind %v", attr.Kind)
		return EdgeCost{}, false
	}
}
