// Copyright 2024 The Frame3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package element implements the 3D frame element: local stiffness and
// consistent mass matrices, end-releases, and the local-to-global
// transformation. Local DOF ordering is mandatory:
//
//	[u1x u1y u1z r1x r1y r1z u2x u2y u2z r2x r2y r2z]
//
// local x is axial; bending about z governs in-plane (local-xy); bending
// about y governs out-of-plane (local-xz).
package element

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/frame3d/geom"
)

// Releases marks, for one end of an element, which moments are not
// transmitted. Only the three moment DOFs are releasable; axial and shear
// components never are.
type Releases struct {
	MomentX bool // torsion
	MomentY bool
	MomentZ bool
}

// local DOF indices of the moment components at each end, in the mandatory
// ordering above.
var momentDOFsStart = [3]int{3, 4, 5}
var momentDOFsEnd = [3]int{9, 10, 11}

// Properties holds the per-element material and section data already
// converted to SI by the loader (spec.md §9: the kernel never performs the
// mm→m / mm²→m² conversion itself).
type Properties struct {
	E, G     float64 // elastic and shear modulus, Pa
	A        float64 // cross-sectional area, m²
	Iy, Iz   float64 // principal moments of inertia, m⁴
	J        float64 // torsional constant, m⁴
	Rho      float64 // mass density, kg/m³
	RollRad  float64 // roll angle about the element axis, rad
	StartRel Releases
	EndRel   Releases
}

// Validate checks the positivity invariants of spec.md §3.
func (p Properties) Validate() error {
	if p.E <= 0 {
		return chk.Err("element: E must be positive, got %g", p.E)
	}
	if p.A <= 0 {
		return chk.Err("element: A must be positive, got %g", p.A)
	}
	if p.Iy <= 0 || p.Iz <= 0 {
		return chk.Err("element: Iy and Iz must be positive, got Iy=%g Iz=%g", p.Iy, p.Iz)
	}
	if p.J <= 0 {
		return chk.Err("element: J must be positive, got %g", p.J)
	}
	if p.Rho < 0 {
		return chk.Err("element: rho must be non-negative, got %g", p.Rho)
	}
	return nil
}

// Frame is a single 3D Euler-Bernoulli frame element between two nodes.
type Frame struct {
	Start, End geom.Vec3
	Props      Properties

	L     float64
	Basis geom.Basis
}

// New builds a Frame element, computing its length and local basis.
func New(start, end geom.Vec3, props Properties) (*Frame, error) {
	if err := props.Validate(); err != nil {
		return nil, err
	}
	basis, l, err := geom.LocalBasis(start, end, props.RollRad)
	if err != nil {
		return nil, err
	}
	return &Frame{Start: start, End: end, Props: props, L: l, Basis: basis}, nil
}

// Local returns the 12x12 local stiffness and consistent mass matrices,
// with end-releases already applied to the stiffness matrix.
func (f *Frame) Local() (K, M [12][12]float64) {
	K = f.localStiffness()
	M = f.localMass()
	f.applyReleases(&K)
	return
}

func (f *Frame) localStiffness() [12][12]float64 {
	var K [12][12]float64
	p := f.Props
	L := f.L
	L2, L3 := L*L, L*L*L

	EA := p.E * p.A / L
	GJ := p.G * p.J / L

	// axial
	K[0][0], K[6][6] = EA, EA
	K[0][6], K[6][0] = -EA, -EA

	// torsion
	K[3][3], K[9][9] = GJ, GJ
	K[3][9], K[9][3] = -GJ, -GJ

	// bending about z (in-plane, couples uy and rz): DOFs 1,5,7,11
	ez := p.E * p.Iz
	k1, k2, k3, k4 := 12*ez/L3, 6*ez/L2, 4*ez/L, 2*ez/L
	K[1][1], K[7][7] = k1, k1
	K[1][7], K[7][1] = -k1, -k1
	K[5][5], K[11][11] = k3, k3
	K[5][11], K[11][5] = k4, k4
	K[1][5], K[5][1] = k2, k2
	K[1][11], K[11][1] = k2, k2
	K[7][5], K[5][7] = -k2, -k2
	K[7][11], K[11][7] = -k2, -k2

	// bending about y (out-of-plane, couples uz and ry): DOFs 2,4,8,10
	// rotation-translation coupling sign is opposite to the z-case.
	ey := p.E * p.Iy
	j1, j2, j3, j4 := 12*ey/L3, 6*ey/L2, 4*ey/L, 2*ey/L
	K[2][2], K[8][8] = j1, j1
	K[2][8], K[8][2] = -j1, -j1
	K[4][4], K[10][10] = j3, j3
	K[4][10], K[10][4] = j4, j4
	K[2][4], K[4][2] = -j2, -j2
	K[2][10], K[10][2] = -j2, -j2
	K[8][4], K[4][8] = j2, j2
	K[8][10], K[10][8] = j2, j2

	return K
}

func (f *Frame) localMass() [12][12]float64 {
	var M [12][12]float64
	if f.Props.Rho <= 0 {
		return M
	}
	p := f.Props
	L := f.L
	m := p.Rho * p.A * L // total mass of the element

	// axial: classic 2-node consistent mass
	M[0][0], M[6][6] = m/3, m/3
	M[0][6], M[6][0] = m/6, m/6

	// torsion: lumped per spec.md §4.E (compatibility choice, not physically
	// the polar term) — mL/3 diagonal, mL/6 coupling.
	M[3][3], M[9][9] = m/3, m/3
	M[3][9], M[9][3] = m/6, m/6

	// bending about z (uy, rz): 13mL/35, 11mL^2/210, 9mL/70, 13mL^2/420
	L2 := L * L
	setBendingMass(&M, m, L2, 1, 5, 7, 11, 1)

	// bending about y (uz, ry): same pattern, sign of the translation-rotation
	// coupling terms mirrors the z-case per the element's opposite handedness.
	setBendingMass(&M, m, L2, 2, 4, 8, 10, -1)

	return M
}

// setBendingMass fills the classical consistent-mass bending block for a
// translation DOF pair (t1,t2) and rotation DOF pair (r1,r2) with total
// element mass m and length-squared L2. sign (+1 or -1) multiplies every
// translation-rotation coupling term.
func setBendingMass(M *[12][12]float64, m, L2 float64, t1, r1, t2, r2 int, sign float64) {
	L := math.Sqrt(L2)

	M[t1][t1] += 13.0 * m / 35.0
	M[t2][t2] += 13.0 * m / 35.0
	M[t1][t2] += 9.0 * m / 70.0
	M[t2][t1] += 9.0 * m / 70.0

	M[r1][r1] += 1.0 * m * L2 / 105.0
	M[r2][r2] += 1.0 * m * L2 / 105.0
	M[r1][r2] += -1.0 * m * L2 / 140.0
	M[r2][r1] += -1.0 * m * L2 / 140.0

	m11l := sign * 11.0 * m * L / 210.0
	M[t1][r1] += m11l
	M[r1][t1] += m11l
	M[t2][r2] += -m11l
	M[r2][t2] += -m11l

	m13l := sign * 13.0 * m * L / 420.0
	M[t1][r2] += -m13l
	M[r2][t1] += -m13l
	M[t2][r1] += m13l
	M[r1][t2] += m13l
}

// applyReleases zeros the row and column of each released moment DOF of the
// *local* stiffness matrix — not via elimination — before the global
// transform, per spec.md §4.E.
func (f *Frame) applyReleases(K *[12][12]float64) {
	zero := func(d int) {
		for i := 0; i < 12; i++ {
			K[d][i] = 0
			K[i][d] = 0
		}
	}
	rel := [2]Releases{f.Props.StartRel, f.Props.EndRel}
	dofs := [2][3]int{momentDOFsStart, momentDOFsEnd}
	for end := 0; end < 2; end++ {
		if rel[end].MomentX {
			zero(dofs[end][0])
		}
		if rel[end].MomentY {
			zero(dofs[end][1])
		}
		if rel[end].MomentZ {
			zero(dofs[end][2])
		}
	}
}

// Transform returns the 12x12 block-diagonal local-to-global rotation (four
// copies of the 3x3 basis rotation).
func (f *Frame) Transform() [12][12]float64 {
	var T [12][12]float64
	b := f.Basis
	rows := [3]geom.Vec3{b.Lx, b.Ly, b.Lz}
	for block := 0; block < 4; block++ {
		o := block * 3
		for r := 0; r < 3; r++ {
			T[o+r][o+0] = rows[r].X
			T[o+r][o+1] = rows[r].Y
			T[o+r][o+2] = rows[r].Z
		}
	}
	return T
}

// GlobalMatrices returns K_elem = TᵀK_loc T and M_elem = TᵀM_loc T.
func (f *Frame) GlobalMatrices() (Kg, Mg [12][12]float64) {
	Kl, Ml := f.Local()
	T := f.Transform()
	Kg = triTransform(T, Kl)
	Mg = triTransform(T, Ml)
	symmetrize(&Kg)
	symmetrize(&Mg)
	return
}

// triTransform computes Tᵀ A T using gosl/la dense-matrix helpers, mirroring
// the teacher's la.MatTrMul3(K, 1, T, Kl, T) call in fem/e_beam.go.
func triTransform(T, A [12][12]float64) [12][12]float64 {
	Tm := to2D(T)
	Am := to2D(A)
	out := la.MatAlloc(12, 12)
	la.MatTrMul3(out, 1, Tm, Am, Tm)
	var R [12][12]float64
	for i := 0; i < 12; i++ {
		for j := 0; j < 12; j++ {
			R[i][j] = out[i][j]
		}
	}
	return R
}

func to2D(a [12][12]float64) [][]float64 {
	m := la.MatAlloc(12, 12)
	for i := 0; i < 12; i++ {
		for j := 0; j < 12; j++ {
			m[i][j] = a[i][j]
		}
	}
	return m
}

// symmetrize removes floating-point asymmetry introduced by the
// transform chain (spec.md §8: K,M symmetric to within 1e-12 relative
// Frobenius norm).
func symmetrize(A *[12][12]float64) {
	for i := 0; i < 12; i++ {
		for j := i + 1; j < 12; j++ {
			avg := 0.5 * (A[i][j] + A[j][i])
			A[i][j], A[j][i] = avg, avg
		}
	}
}
