package router

import "git.fiblab.net/sim/ecorouting/router/algo"

// Network 已构建好的多模式网络（车站、用户起终点、公交连接与步行连接）
// 数据由外部的图构建流程生成，这里只做读取和校验
type Network struct {
	Nodes []NetworkNode `json:"nodes" bson:"nodes"`
	Edges []NetworkEdge `json:"edges" bson:"edges"`
}

type NetworkNode struct {
	ID   string  `json:"id" bson:"id"`
	Name string  `json:"name,omitempty" bson:"name,omitempty"`
	Lat  float64 `json:"lat" bson:"lat"`
	Lon  float64 `json:"lon" bson:"lon"`
}

type NetworkConnection struct {
	DepartureTime float64 `json:"departure_time" bson:"departure_time"`
	TravelTime    float64 `json:"travel_time" bson:"travel_time"`
	// 为空时按 站间大圆距离 × 出发站模式的排放因子 计算
	Emissions *float64 `json:"emissions,omitempty" bson:"emissions,omitempty"`
	TripID    string   `json:"trip_id" bson:"trip_id"`
}

type NetworkEdge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
	// "walk" 或 "transit"
	Type string `json:"type" bson:"type"`

	// walk
	TravelTime float64 `json:"travel_time,omitempty" bson:"travel_time,omitempty"`
	Distance   float64 `json:"distance_km,omitempty" bson:"distance_km,omitempty"`
	IsTransfer bool    `json:"is_transfer,omitempty" bson:"is_transfer,omitempty"`

	// transit
	Connections []NetworkConnection `json:"connections,omitempty" bson:"connections,omitempty"`
}

type Engine string

const (
	ENGINE_ASTAR         Engine = "astar"
	ENGINE_LABEL_SETTING Engine = "label_setting"
	ENGINE_ACO           Engine = "aco"
)

var ENGINES = []Engine{ENGINE_ASTAR, ENGINE_LABEL_SETTING, ENGINE_ACO}

type Config struct {
	Heuristic       algo.HeuristicParams
	TransferPenalty float64
	AStar           algo.AStarParams
	LabelSetting    algo.LabelSettingParams
	ACO             algo.ACOParams
}

func DefaultConfig() Config {
	return Config{
		Heuristic:       algo.HeuristicParams{MaxSpeedKmh: algo.MAX_NETWORK_SPEED_KMH},
		TransferPenalty: algo.TRANSFER_PENALTY,
		AStar:           algo.DefaultAStarParams(),
		LabelSetting:    algo.DefaultLabelSettingParams(),
		ACO:             algo.DefaultACOParams(),
	}
}

// Journey 一条前沿解的对外表示
type Journey struct {
	Engine         Engine  `json:"engine"`
	TotalTime      float64 `json:"total_time"`
	TotalEmissions float64 `json:"total_emissions"`
	TotalWalk      float64 `json:"total_walk_km"`
	ArrivalClock   float64 `json:"arrival_clock"`
	Steps          []Step  `json:"steps"`
}

type Step struct {
	NodeID string  `json:"node_id"`
	Name   string  `json:"name,omitempty"`
	Label  string  `json:"label"`
	Clock  float64 `json:"clock"`
}
