// Copyright 2024 The Frame3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/frame3d/geom"
)

// Validate checks the model-wide invariants of spec.md §3: every element
// references existing nodes/material/section, endpoints are distinct and
// non-coincident, and every material/section is individually valid.
// UnderConstrained restraint counts are NOT an error here — spec.md §7
// treats them as a warning that still permits modal analysis — callers
// should call CountIndependentRestraints separately.
func (m Model) Validate() error {
	nodes := make(map[int64]Node, len(m.Nodes))
	for _, n := range m.Nodes {
		if _, dup := nodes[n.ID]; dup {
			return chk.Err("model: duplicate node id %d", n.ID)
		}
		nodes[n.ID] = n
	}
	materials := make(map[int64]Material, len(m.Materials))
	for _, mat := range m.Materials {
		if err := mat.Validate(); err != nil {
			return err
		}
		materials[mat.ID] = mat
	}
	sections := make(map[int64]Section, len(m.Sections))
	for _, s := range m.Sections {
		if err := s.Validate(); err != nil {
			return err
		}
		sections[s.ID] = s
	}

	ids := make(map[int64]bool, len(m.Elements))
	for _, e := range m.Elements {
		if ids[e.ID] {
			return chk.Err("model: duplicate element id %d", e.ID)
		}
		ids[e.ID] = true

		if err := e.Validate(); err != nil {
			return err
		}
		start, ok := nodes[e.StartNodeID]
		if !ok {
			return chk.Err("element %d: start node %d not found", e.ID, e.StartNodeID)
		}
		end, ok := nodes[e.EndNodeID]
		if !ok {
			return chk.Err("element %d: end node %d not found", e.ID, e.EndNodeID)
		}
		if _, err := geom.Length(geom.Vec3{X: start.X, Y: start.Y, Z: start.Z}, geom.Vec3{X: end.X, Y: end.Y, Z: end.Z}); err != nil {
			return chk.Err("element %d: %v", e.ID, err)
		}
		if _, ok := materials[e.MaterialID]; !ok {
			return chk.Err("element %d: material %d not found", e.ID, e.MaterialID)
		}
		if _, ok := sections[e.SectionID]; !ok {
			return chk.Err("element %d: section %d not found", e.ID, e.SectionID)
		}
	}

	for _, bc := range m.BCs {
		if _, ok := nodes[bc.NodeID]; !ok {
			return chk.Err("boundary condition: node %d not found", bc.NodeID)
		}
	}
	for _, pl := range m.PointLoads {
		if _, ok := nodes[pl.NodeID]; !ok {
			return chk.Err("point load: node %d not found", pl.NodeID)
		}
	}
	for _, u := range m.UDLs {
		if !ids[u.ElementID] {
			return chk.Err("distributed load: element %d not found", u.ElementID)
		}
		if u.StartDist != 0 || u.EndDist != 0 {
			return chk.Err("distributed load on element %d: partial-length distributed loads are out of scope at the kernel level; callers must pre-split elements", u.ElementID)
		}
	}
	return nil
}

// CountIndependentRestraints returns the total number of restrained DOFs
// across all boundary conditions. Spec.md §3/§7: fewer than six is an
// UnderConstrained warning, not a hard error.
func (m Model) CountIndependentRestraints() int {
	count := 0
	for _, bc := range m.BCs {
		for k := 0; k < 6; k++ {
			if bc.Restrained(k) {
				count++
			}
		}
	}
	return count
}
