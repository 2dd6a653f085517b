package algo

import (
	"math"

	"git.fiblab.net/general/common/v2/geometry"
)

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

// GreatCircleKm returns the haversine distance in km between two lon/lat points.
func GreatCircleKm(p1, p2 geometry.Point) float64 {
	phi1 := toRadians(p1.Y)
	phi2 := toRadians(p2.Y)
	dPhi := toRadians(p2.Y - p1.Y)
	dLambda := toRadians(p2.X - p1.X)
	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * EARTH_RADIUS_KM * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// SplitMix64 风格的种子派生，用于给每只蚂蚁独立的随机流
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}
