// Package object holds the configuration and runtime model shared by all
// game object types (characters, map layers).
package object

// Position in world coordinates. X is right, Y is up, Z is depth towards
// the foreground.
type Position struct {
	X float64
	Y float64
	Z float64
}

type Velocity struct {
	X float64
	Y float64
	Z float64
}

// Grounding marks whether an object is on the ground or airborne.
type Grounding int

const (
	OnGround Grounding = iota
	Airborne
)

func (g Grounding) String() string {
	if g == Airborne {
		return "airborne"
	}
	return "on_ground"
}
