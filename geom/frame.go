// Copyright 2024 The Frame3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// CoincidentTol is the minimum element length; endpoints closer than this
// are considered coincident (spec invariant: ‖end−start‖ > ε ≈ 1e-9 m).
const CoincidentTol = 1e-9

// NearVerticalCos is the |local_x・ẑ| threshold above which the element is
// treated as near-vertical and the reference axis switches from ẑ to ŷ.
// This exact value is required for cross-compatibility of local bases.
const NearVerticalCos = 0.99

// Basis is an orthonormal rotation mapping local axes to global axes.
// Columns (Lx, Ly, Lz) are the local x, y, z axes expressed in global
// coordinates.
type Basis struct {
	Lx, Ly, Lz Vec3
}

// Length returns the length of the element defined by start and end,
// erroring if the endpoints are (numerically) coincident.
func Length(start, end Vec3) (float64, error) {
	l := end.Sub(start).Norm()
	if l <= CoincidentTol {
		return 0, chk.Err("geom: element endpoints are coincident (length=%g <= tol=%g)", l, CoincidentTol)
	}
	return l, nil
}

// LocalBasis constructs the local coordinate frame of a frame element per
// the 0.99-threshold, roll-about-local-x convention: local_x runs from
// start to end; local_z/local_y follow from a reference axis (ẑ_global
// unless the element is near-vertical, in which case ŷ_global); finally a
// roll rotation about local_x is applied to (local_y, local_z).
//
// Roll rotates cleanly about local_x here; the mixed-axis roll of the
// original routine is not reproduced.
func LocalBasis(start, end Vec3, rollRad float64) (Basis, float64, error) {
	l, err := Length(start, end)
	if err != nil {
		return Basis{}, 0, err
	}
	lx := end.Sub(start).Scale(1.0 / l)

	reference := Vec3{0, 0, 1}
	if math.Abs(lx.Dot(Vec3{0, 0, 1})) > NearVerticalCos {
		reference = Vec3{0, 1, 0}
	}

	lz := normalize3d(cross3d(lx, reference))
	ly := normalize3d(cross3d(lz, lx))

	if rollRad != 0 {
		c, s := math.Cos(rollRad), math.Sin(rollRad)
		ly, lz = ly.Scale(c).Add(lz.Scale(s)), lz.Scale(c).Sub(ly.Scale(s))
	}

	return Basis{Lx: lx, Ly: ly, Lz: lz}, l, nil
}

// cross3d and normalize3d route the local-basis cross product and
// normalization through gosl/utl's slice-based 3D vector routines,
// mirroring fem/e_beam.go's Recompute(): utl.Cross3d(vs, v02, v01) /
// utl.Dot3d(vs, vs) building the element's local y/z axes.
func cross3d(a, b Vec3) Vec3 {
	av, bv := []float64{a.X, a.Y, a.Z}, []float64{b.X, b.Y, b.Z}
	out := make([]float64, 3)
	utl.Cross3d(out, av, bv)
	return Vec3{out[0], out[1], out[2]}
}

func normalize3d(a Vec3) Vec3 {
	av := []float64{a.X, a.Y, a.Z}
	n := math.Sqrt(utl.Dot3d(av, av))
	if n < 1e-15 {
		panic("geom: cannot normalize a near-zero vector")
	}
	return Vec3{a.X / n, a.Y / n, a.Z / n}
}
