package router

import (
	"fmt"
	"strings"

	"git.fiblab.net/general/common/v2/geometry"
	"git.fiblab.net/sim/ecorouting/router/algo"
	"github.com/samber/lo"
)

// 将Network中的id转换为图中的结点和边
func initGraph(net *Network) (g *algo.Graph, names map[string]string, err error) {
	g = algo.NewGraph()
	names = make(map[string]string, len(net.Nodes))
	for _, n := range net.Nodes {
		if _, err = g.InitNode(n.ID, geometry.Point{X: n.Lon, Y: n.Lat}); err != nil {
			return nil, nil, err
		}
		if n.Name != "" {
			names[n.ID] = n.Name
		}
	}
	for i, e := range net.Edges {
		from, ok := g.Index(e.From)
		if !ok {
			return nil, nil, fmt.Errorf("edge %d: %w: %s", i, algo.ErrNodeNotExists, e.From)
		}
		to, ok := g.Index(e.To)
		if !ok {
			return nil, nil, fmt.Errorf("edge %d: %w: %s", i, algo.ErrNodeNotExists, e.To)
		}
		attr := algo.EdgeAttr{}
		switch strings.ToLower(e.Type) {
		case "walk":
			attr.Kind = algo.EDGE_KIND_WALK
			attr.Walk = algo.WalkAttr{
				TravelTime: e.TravelTime,
				Distance:   e.Distance,
				IsTransfer: e.IsTransfer,
			}
		case "transit":
			attr.Kind = algo.EDGE_KIND_TRANSIT
			// 未给出排放的班次按距离与模式排放因子计算
			km := algo.GreatCircleKm(g.Point(from), g.Point(to))
			factor := algo.EmissionFactor(g.Mode(from))
			attr.Transit.Connections = lo.Map(e.Connections, func(c NetworkConnection, _ int) algo.Connection {
				emissions := km * factor
				if c.Emissions != nil {
					emissions = *c.Emissions
				}
				return algo.Connection{
					DepartureTime: c.DepartureTime,
					TravelTime:    c.TravelTime,
					Emissions:     emissions,
					TripID:        c.TripID,
				}
			})
		}
		if err = g.InitEdge(from, to, attr); err != nil {
			return nil, nil, fmt.Errorf("edge %d (%s->%s, type %q): %w", i, e.From, e.To, e.Type, err)
		}
	}
	return g, names, nil
}
