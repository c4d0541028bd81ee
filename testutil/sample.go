package testutil

import "github.com/ehsanranjbar/propmap/schema"

// Region is a sample enum used as a map key in tests.
type Region int

const (
	RegionNorth Region = iota + 1
	RegionSouth
	RegionEast
	RegionWest
)

func (r Region) String() string {
	switch r {
	case RegionNorth:
		return "NORTH"
	case RegionSouth:
		return "SOUTH"
	case RegionEast:
		return "EAST"
	case RegionWest:
		return "WEST"
	default:
		return "UNKNOWN"
	}
}

// Regions is the enum of all regions.
var Regions = schema.NewEnum("Region", RegionNorth, RegionSouth, RegionEast, RegionWest)

// Point is a sample leaf type that is not storable.
type Point struct {
	X, Y int
}
