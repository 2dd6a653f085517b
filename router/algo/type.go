package algo

import "strings"

type EdgeKind int

const (
	EDGE_KIND_UNSPECIFIED EdgeKind = iota
	EDGE_KIND_WALK
	EDGE_KIND_TRANSIT
)

func (k EdgeKind) String() string {
	switch k {
	case EDGE_KIND_WALK:
		return "walk"
	case EDGE_KIND_TRANSIT:
		return "transit"
	default:
		return "unspecified"
	}
}

// 结点模式，由id前缀决定（METRO_xxx, STCP_xxx, USER_START）
type Mode string

const (
	MODE_METRO Mode = "METRO"
	MODE_STCP  Mode = "STCP"
	MODE_USER  Mode = "USER"
	MODE_WALK  Mode = "WALK"
)

// ModeOf derives the mode tag from the identifier namespace.
func ModeOf(id string) Mode {
	if i := strings.IndexByte(id, '_'); i > 0 {
		return Mode(strings.ToUpper(id[:i]))
	}
	return Mode(strings.ToUpper(id))
}

// EmissionFactor returns grams of CO2 per km for the mode, 0 for unknown modes.
func EmissionFactor(mode Mode) float64 {
	switch mode {
	case MODE_METRO:
		return CO2_METRO_GPKM
	case MODE_STCP:
		return CO2_STCP_GPKM
	default:
		return CO2_WALK_GPKM
	}
}

// 一次公交班次
type Connection struct {
	DepartureTime float64 // 距离参考零点的秒数
	TravelTime    float64 // s
	Emissions     float64 // g
	TripID        string
}

type WalkAttr struct {
	TravelTime float64 // s
	Distance   float64 // km
	IsTransfer bool
}

type TransitAttr struct {
	Connections []Connection // 按DepartureTime升序
}

type EdgeAttr struct {
	Kind    EdgeKind
	Walk    WalkAttr
	Transit TransitAttr
}

// 边代价
type EdgeCost struct {
	Time      float64
	Emissions float64
	Walk      float64
	Label     string
}

type Query struct {
	Origin      int
	Destination int
	StartTime   float64
}
