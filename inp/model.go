// Copyright 2024 The Frame3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package inp holds the kernel's input value types: nodes, elements,
// materials, sections, boundary conditions, loads and load combinations.
// These are immutable value records produced by an upstream loader; the
// kernel never mutates them. Dynamic string-keyed dictionaries (as the
// source used for releases/load-cases) are replaced here by small
// fixed-shape structs and bitmasks, per SPEC_FULL.md §3.
package inp

import "github.com/cpmech/gosl/chk"

// Node is a point in the structural model, id stable within one analysis.
type Node struct {
	ID int64   `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
}

// ElementKind is a semantic-only classification tag.
type ElementKind string

const (
	KindBeam   ElementKind = "beam"
	KindColumn ElementKind = "column"
	KindBrace  ElementKind = "brace"
)

// ReleaseMask bit positions, matching the wire format of spec.md §6.
const (
	ReleaseBitTorsion = 1 << iota // bit0: moment_x
	ReleaseBitBendY               // bit1: moment_y
	ReleaseBitBendZ                // bit2: moment_z
)

// Element is a line element between two distinct nodes.
type Element struct {
	ID          int64       `json:"id"`
	StartNodeID int64       `json:"start_node_id"`
	EndNodeID   int64       `json:"end_node_id"`
	Kind        ElementKind `json:"kind"`
	RollRad     float64     `json:"roll_rad"`
	MaterialID  int64       `json:"material_id"`
	SectionID   int64       `json:"section_id"`

	ReleaseStartBits int `json:"releases_mask_start_bits"`
	ReleaseEndBits   int `json:"releases_mask_end_bits"`
}

// Validate checks the element-level invariants of spec.md §3 that do not
// require the rest of the model (node/material/section existence is
// checked once by Model.Validate, which has the full id index).
func (e Element) Validate() error {
	if e.StartNodeID == e.EndNodeID {
		return chk.Err("element %d: start and end node must differ", e.ID)
	}
	return nil
}

// Material holds elastic material data. Shear modulus is derived, not
// stored, per spec.md §3.
type Material struct {
	ID  int64   `json:"id"`
	E   float64 `json:"E"`   // Pa
	Nu  float64 `json:"nu"`  // Poisson ratio, 0 < nu < 0.5
	Rho float64 `json:"rho"` // kg/m^3
}

// G returns the derived shear modulus G = E / (2(1+nu)).
func (m Material) G() float64 { return m.E / (2 * (1 + m.Nu)) }

// Validate checks the material invariants of spec.md §3.
func (m Material) Validate() error {
	if m.E <= 0 {
		return chk.Err("material %d: E must be positive, got %g", m.ID, m.E)
	}
	if m.Nu <= 0 || m.Nu >= 0.5 {
		return chk.Err("material %d: nu must satisfy 0 < nu < 0.5, got %g", m.ID, m.Nu)
	}
	if m.Rho < 0 {
		return chk.Err("material %d: rho must be non-negative, got %g", m.ID, m.Rho)
	}
	return nil
}

// Section holds cross-sectional properties, already in SI (m, m^2, m^4).
// Source data given in mm-based units must be converted before reaching
// the kernel — see NewSectionFromMillimetres.
type Section struct {
	ID int64   `json:"id"`
	A  float64 `json:"A"` // m^2
	Iy float64 `json:"Iy"`
	Iz float64 `json:"Iz"`
	J  float64 `json:"J"` // m^4
}

// Validate checks the section invariants of spec.md §3.
func (s Section) Validate() error {
	if s.A <= 0 {
		return chk.Err("section %d: A must be positive, got %g", s.ID, s.A)
	}
	if s.Iy <= 0 || s.Iz <= 0 {
		return chk.Err("section %d: Iy and Iz must be positive, got Iy=%g Iz=%g", s.ID, s.Iy, s.Iz)
	}
	if s.J <= 0 {
		return chk.Err("section %d: J must be positive, got %g", s.ID, s.J)
	}
	return nil
}

// NewSectionFromMillimetres converts mm-based section properties (area in
// mm^2, inertia/torsion constants in mm^4) to the SI section the kernel
// requires. This lives here as a convenience for loaders; the assembler
// never calls it — spec.md §9 forbids interior unit conversions in the
// kernel itself.
func NewSectionFromMillimetres(id int64, aMM2, iyMM4, izMM4, jMM4 float64) Section {
	const mm2ToM2 = 1e-6
	const mm4ToM4 = 1e-12
	return Section{
		ID: id,
		A:  aMM2 * mm2ToM2,
		Iy: iyMM4 * mm4ToM4,
		Iz: izMM4 * mm4ToM4,
		J:  jMM4 * mm4ToM4,
	}
}

// BoundaryCondition restrains or elastically supports a node's six DOFs.
// RestraintBits bit k (k in [0,6)) restrains DOF k; a non-restrained DOF
// may additionally carry an elastic spring, applied additively to K.
type BoundaryCondition struct {
	NodeID        int64      `json:"node_id"`
	RestraintBits int        `json:"restraint_bits"`
	Spring        [6]float64 `json:"spring"` // N/m or N*m/rad, per DOF
}

// Restrained reports whether DOF k (0..5) is restrained.
func (b BoundaryCondition) Restrained(k int) bool { return b.RestraintBits&(1<<uint(k)) != 0 }

// LoadCase is a caller-defined label, e.g. "dead", "live", "EQ-x".
type LoadCase string

// PointLoad applies six force/moment components at a node, in global axes.
type PointLoad struct {
	NodeID int64    `json:"node_id"`
	Case   LoadCase `json:"load_case"`
	Fx     float64  `json:"fx"`
	Fy     float64  `json:"fy"`
	Fz     float64  `json:"fz"`
	Mx     float64  `json:"mx"`
	My     float64  `json:"my"`
	Mz     float64  `json:"mz"`
}

// Components returns the six load components in the canonical DOF order.
func (p PointLoad) Components() [6]float64 {
	return [6]float64{p.Fx, p.Fy, p.Fz, p.Mx, p.My, p.Mz}
}

// UDL is a uniformly distributed element load, three translational
// components per unit length (Wx, Wy, Wz); distributed moments are not
// represented. Components are in GLOBAL axes (spec.md §4.A: the kernel lumps distributed loads
// directly in global axes, a pragmatic simplification inherited from the
// source and reproduced verbatim — it does NOT rotate the load into the
// local frame first).
type UDL struct {
	ElementID int64    `json:"element_id"`
	Case      LoadCase `json:"load_case"`
	Wx        float64  `json:"wx"`
	Wy        float64  `json:"wy"`
	Wz        float64  `json:"wz"`
	StartDist float64  `json:"start_dist"`
	EndDist   float64  `json:"end_dist"` // 0,0 means "whole element"; partial spans are out of scope, see Validate
}

// Forces returns the translational load-per-length components.
func (u UDL) Forces() [3]float64 { return [3]float64{u.Wx, u.Wy, u.Wz} }

// LoadCombination maps load-case label to a scalar factor.
type LoadCombination struct {
	Label   string             `json:"label"`
	Factors map[LoadCase]float64 `json:"factors"`
}

// Factor returns the combination factor for a load case, or 0 if absent
// (spec.md §4.A: "absent factor = 0").
func (c LoadCombination) Factor(lc LoadCase) float64 {
	if c.Factors == nil {
		return 0
	}
	return c.Factors[lc]
}

// Model bundles the whole input record of spec.md §6.
type Model struct {
	Nodes        []Node              `json:"nodes"`
	Elements     []Element           `json:"elements"`
	Materials    []Material          `json:"materials"`
	Sections     []Section           `json:"sections"`
	BCs          []BoundaryCondition `json:"boundary_conditions"`
	PointLoads   []PointLoad         `json:"point_loads"`
	UDLs         []UDL               `json:"udls"`
	Combinations []LoadCombination   `json:"combinations"`
}
