package ppu

import "github.com/jakecoffman/cp"

// Vector is a 2D position, velocity or force in screen space (y grows down).
type Vector = cp.Vector

// Point is a location on a path, e.g. a moving platform waypoint.
type Point = cp.Vector

// AddForce accumulates f into v in place.
func AddForce(v *Vector, f Vector) {
	*v = v.Add(f)
}
