package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"connectrpc.com/connect"
	"git.fiblab.net/sim/ecorouting/router"
	"git.fiblab.net/sim/ecorouting/router/algo"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	RoutingServiceName = "ecorouting.v1.RoutingService"

	RoutingServiceGetRoutesProcedure      = "/" + RoutingServiceName + "/GetRoutes"
	RoutingServiceGetNetworkInfoProcedure = "/" + RoutingServiceName + "/GetNetworkInfo"
)

type GetRoutesRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	// 出发时刻（s），Clock非空时以Clock为准
	StartTime float64 `json:"start_time"`
	// HH:MM:SS
	Clock string `json:"clock,omitempty"`
	// 为空表示全部引擎
	Engines []string `json:"engines,omitempty"`
}

type GetRoutesResponse struct {
	QueryID  string           `json:"query_id"`
	Journeys []router.Journey `json:"journeys"`
}

type GetNetworkInfoRequest struct{}

type GetNetworkInfoResponse struct {
	Nodes   int             `json:"nodes"`
	Edges   int             `json:"edges"`
	Engines []router.Engine `json:"engines"`
}

type RoutingServer struct {
	router *router.Router

	// 接口开启true或关闭false
	ok bool
	// 条件变量
	cond *sync.Cond
}

func NewRoutingServer(r *router.Router) *RoutingServer {
	return &RoutingServer{
		router: r,
		ok:     true, cond: sync.NewCond(&sync.Mutex{})}
}

// NewRoutingServiceHandler 返回服务路径前缀与对应的handler，挂载到http.ServeMux上
func NewRoutingServiceHandler(s *RoutingServer, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	getRoutes := connect.NewUnaryHandler(RoutingServiceGetRoutesProcedure, s.GetRoutes, opts...)
	getNetworkInfo := connect.NewUnaryHandler(RoutingServiceGetNetworkInfoProcedure, s.GetNetworkInfo, opts...)
	return "/" + RoutingServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case RoutingServiceGetRoutesProcedure:
			getRoutes.ServeHTTP(w, r)
		case RoutingServiceGetNetworkInfoProcedure:
			getNetworkInfo.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// 暂停-恢复机制
func (s *RoutingServer) wait() {
	s.cond.L.Lock()
	for !s.ok {
		// 暂停中
		s.cond.Wait()
	}
	s.cond.L.Unlock()
}

func (s *RoutingServer) GetRoutes(
	ctx context.Context,
	req *connect.Request[GetRoutesRequest],
) (*connect.Response[GetRoutesResponse], error) {
	in := req.Msg
	s.wait()
	queryID := uuid.NewString()
	qlog := log.WithField("query", queryID)

	// 检查请求
	startTime := in.StartTime
	if in.Clock != "" {
		var err error
		if startTime, err = router.ParseClock(in.Clock); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
	}
	engines := router.ENGINES
	if len(in.Engines) > 0 {
		engines = make([]router.Engine, 0, len(in.Engines))
		for _, name := range lo.Uniq(in.Engines) {
			e, err := router.ParseEngine(name)
			if err != nil {
				return nil, connect.NewError(connect.CodeInvalidArgument, err)
			}
			engines = append(engines, e)
		}
	}
	for _, id := range []string{in.Origin, in.Destination} {
		if !s.router.HasNode(id) {
			return nil, connect.NewError(
				connect.CodeInvalidArgument,
				fmt.Errorf("%w: %s", router.ErrUnknownNode, id),
			)
		}
	}

	qlog.Debugf("search %v from %s to %s at %s", engines, in.Origin, in.Destination, router.FormatClock(startTime))
	results := make(map[router.Engine][]*algo.Solution, len(engines))
	if len(engines) == len(router.ENGINES) {
		var err error
		if results, err = s.router.SearchAll(in.Origin, in.Destination, startTime); err != nil {
			qlog.Errorf("search failed: %v", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
	} else {
		for _, e := range engines {
			frontier, err := s.router.Search(e, in.Origin, in.Destination, startTime)
			if err != nil {
				qlog.Errorf("search failed: %v", err)
				return nil, connect.NewError(connect.CodeInternal, err)
			}
			results[e] = frontier
		}
	}

	// 无法找到通路时返回空列表
	ret := &GetRoutesResponse{QueryID: queryID, Journeys: make([]router.Journey, 0)}
	for _, e := range engines {
		for _, sol := range results[e] {
			ret.Journeys = append(ret.Journeys, s.router.ToJourney(e, sol))
		}
	}
	qlog.Debugf("%d journeys found", len(ret.Journeys))
	return connect.NewResponse(ret), nil
}

func (s *RoutingServer) GetNetworkInfo(
	ctx context.Context,
	req *connect.Request[GetNetworkInfoRequest],
) (*connect.Response[GetNetworkInfoResponse], error) {
	nodes, edges := s.router.Stats()
	return connect.NewResponse(&GetNetworkInfoResponse{
		Nodes:   nodes,
		Edges:   edges,
		Engines: router.ENGINES,
	}), nil
}

// 暂停导航服务
func (s *RoutingServer) Suspend() {
	s.cond.L.Lock()
	defer s.cond.L.Unlock()
	s.ok = false
}

// 恢复导航服务
func (s *RoutingServer) Resume() {
	s.cond.L.Lock()
	defer s.cond.L.Unlock()
	s.ok = true
	s.cond.Broadcast()
}

// 关闭导航服务
func (s *RoutingServer) Close() {
	s.router.Close()
}
