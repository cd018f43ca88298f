// Package collision resolves hit interactions against hurt volumes and
// applies the timing rules that gate their effects.
package collision

import "github.com/Lighty0410/autexousious/internal/object"

// Box is an axis-aligned volume in world coordinates.
type Box struct {
	MinX float64
	MinY float64
	MinZ float64
	MaxX float64
	MaxY float64
	MaxZ float64
}

// FromVolume places an object-relative volume into world space. The X
// extent flips around the object origin when the object faces left.
func FromVolume(v object.Volume, pos object.Position, mirrored bool) Box {
	minX := pos.X + v.X
	if mirrored {
		minX = pos.X - v.X - v.W
	}
	return Box{
		MinX: minX,
		MinY: pos.Y + v.Y,
		MinZ: pos.Z + v.Z,
		MaxX: minX + v.W,
		MaxY: pos.Y + v.Y + v.H,
		MaxZ: pos.Z + v.Z + v.D,
	}
}

// Intersects reports strict overlap on all three axes. Touching edges do
// not collide.
func Intersects(a, b Box) bool {
	return a.MinX < b.MaxX && b.MinX < a.MaxX &&
		a.MinY < b.MaxY && b.MinY < a.MaxY &&
		a.MinZ < b.MaxZ && b.MinZ < a.MaxZ
}
