// Copyright 2024 The Frame3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assembler

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"

	"github.com/cpmech/frame3d/element"
	"github.com/cpmech/frame3d/geom"
	"github.com/cpmech/frame3d/inp"
)

// PenaltyStiffness is the prescribed penalty value applied to a restrained
// DOF's diagonal: large enough to dominate any physical stiffness, small
// enough not to overflow double-precision condition estimates.
const PenaltyStiffness = 1e12

// System is the assembled global linear system for one load combination:
// stiffness K, consistent mass M (all zeros if no element carries density), load
// vector F, and the DOF map used to build them.
type System struct {
	DOFMap *DOFMap
	K      *mat.SymDense
	M      *mat.SymDense
	F      []float64

	// KOrig and FOrig are the stiffness and load before the penalty
	// boundary-condition treatment: the physical structure's own
	// stiffness and the applied loads, with spring contributions at
	// unrestrained DOFs already folded in. The solver recovers support
	// reactions from these rather than from K/F, since K's restrained
	// rows/columns are zeroed and would otherwise yield a reaction of
	// zero at every support.
	KOrig *mat.SymDense
	FOrig []float64

	// Elements keeps the built element library objects, keyed by element
	// id, so the linear solver can recover local forces without
	// rebuilding geometry.
	Elements map[int64]*element.Frame
	// ElementDOFs is the 12 global DOF indices of each element, keyed by
	// element id.
	ElementDOFs map[int64][12]int
}

// Assemble builds K, M and F for the given model and load combination.
// BCs are applied with the penalty method of spec.md §4.A, identically on
// K and M.
func Assemble(model inp.Model, combo inp.LoadCombination) (*System, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}

	nodeIDs := make([]int64, len(model.Nodes))
	nodesByID := make(map[int64]inp.Node, len(model.Nodes))
	for i, n := range model.Nodes {
		nodeIDs[i] = n.ID
		nodesByID[n.ID] = n
	}
	dofMap := NewDOFMap(nodeIDs)
	n := dofMap.NumDOF()

	materials := make(map[int64]inp.Material, len(model.Materials))
	for _, m := range model.Materials {
		materials[m.ID] = m
	}
	sections := make(map[int64]inp.Section, len(model.Sections))
	for _, s := range model.Sections {
		sections[s.ID] = s
	}

	frames := make(map[int64]*element.Frame, len(model.Elements))
	elemDOFs := make(map[int64][12]int, len(model.Elements))

	// allocate sparse triplets; at most 144 entries per element pair of
	// nodes before compression, per spec.md §5.
	nnz := 144 * len(model.Elements)
	var Kt, Mt la.Triplet
	Kt.Init(n, n, nnz+n)
	Mt.Init(n, n, nnz+n)

	hasMass := false
	for _, e := range model.Elements {
		material := materials[e.MaterialID]
		sec := sections[e.SectionID]
		start := nodesByID[e.StartNodeID]
		end := nodesByID[e.EndNodeID]

		props := element.Properties{
			E: material.E, G: material.G(), A: sec.A, Iy: sec.Iy, Iz: sec.Iz, J: sec.J,
			Rho:      material.Rho,
			RollRad:  e.RollRad,
			StartRel: releasesFromBits(e.ReleaseStartBits),
			EndRel:   releasesFromBits(e.ReleaseEndBits),
		}
		frame, err := element.New(
			geom.Vec3{X: start.X, Y: start.Y, Z: start.Z},
			geom.Vec3{X: end.X, Y: end.Y, Z: end.Z},
			props,
		)
		if err != nil {
			return nil, err
		}
		frames[e.ID] = frame

		dofs, ok := dofMap.ElementDOFs(e.StartNodeID, e.EndNodeID)
		if !ok {
			return nil, chk.Err("assembler: element %d references an unmapped node", e.ID)
		}
		elemDOFs[e.ID] = dofs

		Kg, Mg := frame.GlobalMatrices()
		if material.Rho > 0 {
			hasMass = true
		}
		for i := 0; i < 12; i++ {
			for j := 0; j < 12; j++ {
				Kt.Put(dofs[i], dofs[j], Kg[i][j])
				Mt.Put(dofs[i], dofs[j], Mg[i][j])
			}
		}
	}

	Kdense := Kt.ToMatrix(nil).ToDense()
	var Mdense [][]float64
	if hasMass {
		Mdense = Mt.ToMatrix(nil).ToDense()
	} else {
		Mdense = la.MatAlloc(n, n)
	}

	// springs on non-restrained DOFs
	restrained := make([]bool, n)
	springAt := make([]float64, n)
	for _, bc := range model.BCs {
		for k := 0; k < 6; k++ {
			g, ok := dofMap.GlobalDOF(bc.NodeID, k)
			if !ok {
				continue
			}
			if bc.Restrained(k) {
				restrained[g] = true
			} else if bc.Spring[k] != 0 {
				springAt[g] += bc.Spring[k]
			}
		}
	}
	for d := 0; d < n; d++ {
		if !restrained[d] && springAt[d] != 0 {
			Kdense[d][d] += springAt[d]
		}
	}

	// load vector
	F := make([]float64, n)
	for _, pl := range model.PointLoads {
		factor := combo.Factor(pl.Case)
		if factor == 0 {
			continue
		}
		comps := pl.Components()
		for k := 0; k < 6; k++ {
			g, ok := dofMap.GlobalDOF(pl.NodeID, k)
			if !ok {
				return nil, chk.Err("assembler: point load references unmapped node %d", pl.NodeID)
			}
			F[g] += factor * comps[k]
		}
	}
	for _, u := range model.UDLs {
		factor := combo.Factor(u.Case)
		if factor == 0 {
			continue
		}
		dofs, ok := elemDOFs[u.ElementID]
		if !ok {
			return nil, chk.Err("assembler: distributed load references unmapped element %d", u.ElementID)
		}
		frame := frames[u.ElementID]
		L := frame.L
		wPerLen := [3]float64{u.Wx, u.Wy, u.Wz}
		// half the total goes to each end node's translational DOFs
		for k := 0; k < 3; k++ {
			F[dofs[k]] += factor * wPerLen[k] * L / 2
			F[dofs[6+k]] += factor * wPerLen[k] * L / 2
		}
		// fixed-end moments: wy -> Mz (-start,+end); wz -> My (+start,-end)
		mz := u.Wy * L * L / 12
		my := u.Wz * L * L / 12
		F[dofs[5]] += factor * (-mz)
		F[dofs[11]] += factor * mz
		F[dofs[4]] += factor * my
		F[dofs[10]] += factor * (-my)
	}

	// snapshot the pre-BC stiffness and load before the penalty treatment
	// zeroes restrained rows/columns, so reactions can later be recovered
	// from the structure's genuine stiffness.
	KOrig := denseToSym(Kdense, n)
	FOrig := append([]float64(nil), F...)

	// apply boundary conditions: zero row/col, penalty diagonal on K,
	// zero diagonal on M — identical treatment on both matrices.
	for d := 0; d < n; d++ {
		if !restrained[d] {
			continue
		}
		for j := 0; j < n; j++ {
			Kdense[d][j] = 0
			Kdense[j][d] = 0
			Mdense[d][j] = 0
			Mdense[j][d] = 0
		}
		Kdense[d][d] = PenaltyStiffness
		Mdense[d][d] = 0
		F[d] = 0
	}

	Ksym := denseToSym(Kdense, n)
	Msym := denseToSym(Mdense, n)

	return &System{
		DOFMap:      dofMap,
		K:           Ksym,
		M:           Msym,
		F:           F,
		KOrig:       KOrig,
		FOrig:       FOrig,
		Elements:    frames,
		ElementDOFs: elemDOFs,
	}, nil
}

func releasesFromBits(bits int) element.Releases {
	return element.Releases{
		MomentX: bits&inp.ReleaseBitTorsion != 0,
		MomentY: bits&inp.ReleaseBitBendY != 0,
		MomentZ: bits&inp.ReleaseBitBendZ != 0,
	}
}

// denseToSym packs a (numerically-symmetrized) dense [][]float64 into a
// gonum SymDense.
func denseToSym(a [][]float64, n int) *mat.SymDense {
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := 0.5 * (a[i][j] + a[j][i])
			data[i*n+j] = v
			data[j*n+i] = v
		}
	}
	return mat.NewSymDense(n, data)
}
