package algo

import (
	"errors"
	"math"
)

const (
	// 启发式假设的网络最高速度（km/h），任何实际边都不应超过
	MAX_NETWORK_SPEED_KMH = 50.0

	// 各模式的单位距离排放（g/km）
	CO2_METRO_GPKM = 40.0
	CO2_STCP_GPKM  = 109.9
	CO2_WALK_GPKM  = 0.0

	// 换乘步行的额外时间惩罚（s）
	TRANSFER_PENALTY = 120

	// 地球半径（km）
	EARTH_RADIUS_KM = 6371.0

	// 路径标签
	LABEL_START    = "start"
	LABEL_WALK     = "walk"
	LABEL_TRANSFER = "transfer"

	// 默认的Pareto前沿参数
	DEFAULT_FRONTIER_SIZE = 15

	// A*
	DEFAULT_ASTAR_LABELS       = 10
	DEFAULT_ASTAR_EPSILON      = 120
	DEFAULT_ASTAR_PRUNE_FACTOR = 1.5

	// 标号设定（Dijkstra）
	DEFAULT_LS_LABELS  = 8
	DEFAULT_LS_EPSILON = 60

	// 蚁群
	DEFAULT_ACO_ANTS        = 30
	DEFAULT_ACO_GENERATIONS = 20
	DEFAULT_ACO_ALPHA       = 1.0
	DEFAULT_ACO_BETA        = 3.0
	DEFAULT_ACO_Q           = 100
	DEFAULT_ACO_RHO         = 0.1
	DEFAULT_ACO_PHEROMONE   = 0.1
	DEFAULT_ACO_MAX_STEPS   = 100
	DEFAULT_ACO_EPSILON     = 60
	// 每隔多少代输出一次日志
	ACO_LOG_INTERVAL = 5
)

var (
	// 不可达
	INF = math.Inf(1)

	// 错误：边既不是步行也不是公交
	ErrMalformedEdge = errors.New("malformed edge")
	// 错误：结点不存在
	ErrNodeNotExists = errors.New("node not exists")
	// 错误：结点重复
	ErrDuplicateNode = errors.New("duplicate node")
)
